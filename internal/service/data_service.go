package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Klyucherov/Async-API-sprint-1/internal/cache"
	"github.com/Klyucherov/Async-API-sprint-1/internal/domain"
	"github.com/Klyucherov/Async-API-sprint-1/internal/metrics"
	"github.com/Klyucherov/Async-API-sprint-1/internal/query"
	"github.com/Klyucherov/Async-API-sprint-1/internal/repository"
	"github.com/Klyucherov/Async-API-sprint-1/pkg/log"
)

const cacheWriteTimeout = 2 * time.Second

// DataService is the cache-aside engine behind every catalog read. An
// instance is bound at construction to one entity variant: the partition it
// addresses in both stores and the Go type E its documents decode into. The
// same JSON codec parses backend documents and cached payloads, so a record
// survives the cache round trip unchanged.
//
// The service holds no state beyond its two injected collaborators. Cache
// population is idempotent, so concurrent population races on the same key
// are tolerated rather than locked away.
type DataService[E any] struct {
	cache     cache.Cache
	repo      repository.DocumentRepository
	partition string
	ttl       time.Duration
}

// NewDataService binds a cache-aside engine to one entity variant.
func NewDataService[E any](c cache.Cache, repo repository.DocumentRepository, partition string, ttl time.Duration) *DataService[E] {
	return &DataService[E]{
		cache:     c,
		repo:      repo,
		partition: partition,
		ttl:       ttl,
	}
}

// GetByID returns one entity by identifier, reading the cache first and
// falling back to the search backend on a miss. A successful fallback
// populates the cache under partition+id for the configured TTL without
// blocking the return. Returns domain.ErrNotFound when neither store has
// the document; any other failure propagates unchanged.
func (s *DataService[E]) GetByID(ctx context.Context, id string) (*E, error) {
	l := log.Ctx(ctx)
	key := cache.EntityKey(s.partition, id)

	raw, err := s.cache.Get(ctx, key)
	if err == nil {
		metrics.CacheHits.WithLabelValues(s.partition).Inc()
		l.Debug().Str(log.FieldPartition, s.partition).Str("id", id).Msg("entity served from cache")
		return decodeEntity[E](raw)
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return nil, err
	}
	metrics.CacheMisses.WithLabelValues(s.partition).Inc()

	doc, err := s.repo.GetByID(ctx, s.partition, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Debug().Str(log.FieldPartition, s.partition).Str("id", id).Msg("entity not found in backend")
		}
		return nil, err
	}

	entity, err := decodeEntity[E](doc)
	if err != nil {
		return nil, err
	}
	metrics.BackendFetches.WithLabelValues(s.partition).Inc()
	l.Debug().Str(log.FieldPartition, s.partition).Str("id", id).Msg("entity fetched from backend")

	s.asyncSet(key, entity)

	return entity, nil
}

// Search runs a query body against the bound partition. See SearchIn.
func (s *DataService[E]) Search(ctx context.Context, body query.Body, size int) ([]E, error) {
	return s.SearchIn(ctx, s.partition, body, size)
}

// SearchIn runs a query body against an explicit partition, reading up to
// size records from the cached collection for that query first and falling
// back to the search backend when the collection is empty. Backend hits
// decode into the bound type E and are appended to the collection in backend
// order without blocking the return. Returns domain.ErrNotFound when the
// query matches nothing anywhere; a non-positive size reads nothing and is
// likewise ErrNotFound.
func (s *DataService[E]) SearchIn(ctx context.Context, partition string, body query.Body, size int) ([]E, error) {
	if size < 1 {
		return nil, domain.ErrNotFound
	}

	l := log.Ctx(ctx)

	rendered, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query body: %w", err)
	}
	key := cache.QueryKey(partition, rendered)

	cached, err := s.cache.GetRange(ctx, key, 0, int64(size)-1)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		metrics.CacheHits.WithLabelValues(partition).Inc()
		l.Debug().Str(log.FieldPartition, partition).Int("records", len(cached)).Msg("query served from cache")
		return decodeEntities[E](cached)
	}
	metrics.CacheMisses.WithLabelValues(partition).Inc()

	docs, err := s.repo.Search(ctx, partition, rendered)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Debug().Str(log.FieldPartition, partition).Msg("query partition not found in backend")
		}
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}

	entities := make([]E, 0, len(docs))
	for _, doc := range docs {
		var e E
		if err := json.Unmarshal(doc, &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		entities = append(entities, e)
	}
	metrics.BackendFetches.WithLabelValues(partition).Inc()
	l.Debug().Str(log.FieldPartition, partition).Int("records", len(entities)).Msg("query fetched from backend")

	s.asyncAppend(key, partition, entities)

	return entities, nil
}

// asyncSet populates a single-entity cache entry without blocking the
// caller. Failures are logged and counted, never surfaced.
func (s *DataService[E]) asyncSet(key string, entity *E) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()

		data, err := json.Marshal(entity)
		if err == nil {
			err = s.cache.Set(ctx, key, data, s.ttl)
		}
		if err != nil {
			metrics.CacheWriteErrors.WithLabelValues(s.partition).Inc()
			l := log.L()
			l.Warn().Err(err).Str(log.FieldCacheKey, key).Msg("cache set error")
		}
	}()
}

// asyncAppend populates a query-result collection without blocking the
// caller, preserving record order.
func (s *DataService[E]) asyncAppend(key, partition string, entities []E) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()

		values := make([][]byte, 0, len(entities))
		var err error
		for i := range entities {
			var data []byte
			if data, err = json.Marshal(entities[i]); err != nil {
				break
			}
			values = append(values, data)
		}
		if err == nil {
			err = s.cache.Append(ctx, key, s.ttl, values...)
		}
		if err != nil {
			metrics.CacheWriteErrors.WithLabelValues(partition).Inc()
			l := log.L()
			l.Warn().Err(err).Str(log.FieldCacheKey, key).Msg("cache append error")
		}
	}()
}

func decodeEntity[E any](raw []byte) (*E, error) {
	var e E
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return &e, nil
}

func decodeEntities[E any](raw [][]byte) ([]E, error) {
	entities := make([]E, 0, len(raw))
	for _, item := range raw {
		var e E
		if err := json.Unmarshal(item, &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached record: %w", err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

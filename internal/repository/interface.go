package repository

import (
	"context"
	"encoding/json"
)

// DocumentRepository is the search backend the data access layer falls back
// to on cache misses. Partition selects the backend index to operate on.
type DocumentRepository interface {
	// GetByID returns the raw source document with the given identifier,
	// or domain.ErrNotFound.
	GetByID(ctx context.Context, partition, id string) (json.RawMessage, error)

	// Search executes a query body against a partition and returns the raw
	// source documents in backend order. A query matching nothing yields an
	// empty slice; a missing partition yields domain.ErrNotFound.
	Search(ctx context.Context, partition string, body []byte) ([]json.RawMessage, error)
}

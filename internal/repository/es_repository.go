package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/Klyucherov/Async-API-sprint-1/internal/domain"
)

type esRepository struct {
	client *elasticsearch.Client
}

// NewESRepository creates an Elasticsearch-based document repository.
func NewESRepository(client *elasticsearch.Client) DocumentRepository {
	return &esRepository{client: client}
}

func (r *esRepository) GetByID(ctx context.Context, partition, id string) (json.RawMessage, error) {
	res, err := r.client.Get(partition, id, r.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var doc esDocument
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !doc.Found {
		return nil, domain.ErrNotFound
	}

	return doc.Source, nil
}

func (r *esRepository) Search(ctx context.Context, partition string, body []byte) ([]json.RawMessage, error) {
	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(partition),
		r.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", partition, err)
	}
	defer res.Body.Close()

	// A missing index reports 404; callers treat it the same as no matches.
	if res.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var result esResponse
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	docs := make([]json.RawMessage, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}

// esDocument is the Elasticsearch get-by-id response structure.
type esDocument struct {
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

// esResponse is the generic Elasticsearch search response structure.
type esResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Package retrieval defines the client interface for the vector retrieval
// service: similarity search over embedded knowledge-base documents. An
// unavailable service degrades to zero retrieved documents at the call site;
// only structurally invalid requests fail fast.
package retrieval

import (
	"context"
	"errors"

	"convoscore/internal/domain"
)

var (
	// ErrUnavailable covers transport failures, timeouts, and non-2xx responses.
	ErrUnavailable = errors.New("retrieval service unavailable")

	// ErrInvalidInput is returned for structurally invalid requests (empty
	// query, k < 1). This is the only error class surfaced to callers.
	ErrInvalidInput = errors.New("invalid retrieval input")
)

// Stats describes the state of the backing vector index.
type Stats struct {
	TotalVectors int `json:"totalVectors"`
	Dimension    int `json:"dimension"`
}

// Retriever is the interface to the vector retrieval service.
type Retriever interface {
	// Search returns up to k documents ranked by similarity. filter narrows
	// by metadata fields and may be nil.
	Search(ctx context.Context, query string, k int, filter map[string]string) ([]domain.Document, error)

	// Upsert stores documents in the index, replacing any with the same ID.
	Upsert(ctx context.Context, docs []domain.Document) error

	// Stats returns index statistics.
	Stats(ctx context.Context) (Stats, error)
}

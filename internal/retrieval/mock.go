package retrieval

import (
	"context"

	"convoscore/internal/domain"
)

// MockRetriever is a test double for Retriever.
type MockRetriever struct {
	SearchFunc func(ctx context.Context, query string, k int, filter map[string]string) ([]domain.Document, error)
	UpsertFunc func(ctx context.Context, docs []domain.Document) error
	StatsFunc  func(ctx context.Context) (Stats, error)

	Upserted []domain.Document
}

func (m *MockRetriever) Search(ctx context.Context, query string, k int, filter map[string]string) ([]domain.Document, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, k, filter)
	}
	return nil, nil
}

func (m *MockRetriever) Upsert(ctx context.Context, docs []domain.Document) error {
	m.Upserted = append(m.Upserted, docs...)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, docs)
	}
	return nil
}

func (m *MockRetriever) Stats(ctx context.Context) (Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return Stats{TotalVectors: len(m.Upserted)}, nil
}

// FixedResults returns a mock whose Search always returns the given documents.
func FixedResults(docs []domain.Document) *MockRetriever {
	return &MockRetriever{
		SearchFunc: func(ctx context.Context, query string, k int, filter map[string]string) ([]domain.Document, error) {
			if k < len(docs) {
				return docs[:k], nil
			}
			return docs, nil
		},
	}
}

// Unavailable returns a mock whose every call fails with ErrUnavailable.
func Unavailable() *MockRetriever {
	return &MockRetriever{
		SearchFunc: func(ctx context.Context, query string, k int, filter map[string]string) ([]domain.Document, error) {
			return nil, ErrUnavailable
		},
		UpsertFunc: func(ctx context.Context, docs []domain.Document) error {
			return ErrUnavailable
		},
		StatsFunc: func(ctx context.Context) (Stats, error) {
			return Stats{}, ErrUnavailable
		},
	}
}

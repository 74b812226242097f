package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"convoscore/internal/domain"
	"convoscore/internal/logging"
)

// HTTPRetriever talks to a vector retrieval service over JSON/HTTP.
type HTTPRetriever struct {
	endpoint string
	apiKey   string
	index    string
	client   *http.Client
	log      *logging.Logger
}

// NewHTTPRetriever creates a retriever against the given endpoint.
func NewHTTPRetriever(endpoint, apiKey, index string, timeout time.Duration, log *logging.Logger) *HTTPRetriever {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPRetriever{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		index:    index,
		client:   &http.Client{Timeout: timeout},
		log:      log.Sub("retrieval"),
	}
}

type searchRequest struct {
	Index  string            `json:"index,omitempty"`
	Query  string            `json:"query"`
	K      int               `json:"k"`
	Filter map[string]string `json:"filter,omitempty"`
}

// Search posts a similarity query and returns ranked documents.
func (r *HTTPRetriever) Search(ctx context.Context, query string, k int, filter map[string]string) ([]domain.Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidInput, k)
	}

	body, err := r.post(ctx, "/search", searchRequest{Index: r.index, Query: query, K: k, Filter: filter})
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, fmt.Errorf("%w: parsing search results: %v", ErrUnavailable, err)
	}
	if len(docs) > k {
		docs = docs[:k]
	}
	r.log.Debug().Int("k", k).Int("results", len(docs)).Msg("search complete")
	return docs, nil
}

// Upsert stores documents in the index.
func (r *HTTPRetriever) Upsert(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := r.post(ctx, "/documents", map[string]any{"index": r.index, "documents": docs})
	if err == nil {
		r.log.Info().Int("count", len(docs)).Msg("documents upserted")
	}
	return err
}

// Stats returns index statistics.
func (r *HTTPRetriever) Stats(ctx context.Context) (Stats, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", r.endpoint+"/stats?index="+r.index, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to create request: %w", err)
	}
	r.setHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Stats{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return Stats{}, fmt.Errorf("%w: parsing stats: %v", ErrUnavailable, err)
	}
	return stats, nil
}

func (r *HTTPRetriever) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.endpoint+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	r.setHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("retrieval request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return body, nil
}

func (r *HTTPRetriever) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}
}

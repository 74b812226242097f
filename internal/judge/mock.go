package judge

import (
	"context"
	"encoding/json"
	"sync"
)

// MockClient is a test double for Client. Safe for concurrent use, since the
// quality scorer issues judge calls in parallel.
type MockClient struct {
	ProviderName string
	EvaluateFunc func(ctx context.Context, req Request) (json.RawMessage, error)

	mu       sync.Mutex
	requests []Request
}

// Requests returns a copy of every request received so far, in order.
func (m *MockClient) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockClient) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

func (m *MockClient) EvaluateJSON(ctx context.Context, req Request) (json.RawMessage, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, req)
	}
	return json.RawMessage(`{}`), nil
}

// Failing returns a mock whose every call fails with ErrUnavailable.
func Failing() *MockClient {
	return &MockClient{
		ProviderName: "failing",
		EvaluateFunc: func(ctx context.Context, req Request) (json.RawMessage, error) {
			return nil, ErrUnavailable
		},
	}
}

// Static returns a mock that answers every request with the same JSON object.
func Static(body string) *MockClient {
	return &MockClient{
		ProviderName: "static",
		EvaluateFunc: func(ctx context.Context, req Request) (json.RawMessage, error) {
			return json.RawMessage(body), nil
		},
	}
}

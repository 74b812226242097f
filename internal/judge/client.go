// Package judge defines the client interface for the semantic judge service:
// an LLM-backed endpoint that turns a natural-language instruction into a
// structured JSON judgment. The engine holds a single injected Client so tests
// can substitute a deterministic fake.
package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for the two failure classes callers distinguish. Scoring
// components convert both into their documented fallback values; neither may
// cross a component boundary.
var (
	// ErrUnavailable covers transport failures, timeouts, and non-2xx responses.
	ErrUnavailable = errors.New("judge unavailable")

	// ErrMalformed covers responses that arrive but cannot be parsed into the
	// expected structure.
	ErrMalformed = errors.New("judge returned malformed response")
)

// Request is one judgment request. Instruction is free-form text describing
// the judgment; the response must be a single JSON object.
type Request struct {
	System      string  `json:"system,omitempty"`
	Instruction string  `json:"instruction"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Client is the interface all judge providers must implement.
type Client interface {
	// EvaluateJSON sends an instruction and returns the raw JSON object the
	// judge produced. Implementations must honor ctx cancellation.
	EvaluateJSON(ctx context.Context, req Request) (json.RawMessage, error)

	// Name returns the provider name (e.g., "openai").
	Name() string
}

// Decode unmarshals a raw judgment into out, mapping parse failures to
// ErrMalformed so call sites can treat them uniformly with missing fields.
func Decode(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return ErrMalformed
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// IsFailure reports whether err is any judge failure class (unavailable or
// malformed), both of which trigger the same fallback behavior.
func IsFailure(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrMalformed)
}

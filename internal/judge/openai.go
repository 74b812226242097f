package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"convoscore/internal/logging"
)

// OpenAIClient is a direct HTTP client for an OpenAI-compatible
// chat-completions endpoint, asking for JSON-object responses.
type OpenAIClient struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
	log      *logging.Logger
}

// NewOpenAIClient creates a judge client against an OpenAI-compatible endpoint.
func NewOpenAIClient(endpoint, apiKey, model string, timeout time.Duration, log *logging.Logger) *OpenAIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
		log:      log.Sub("judge"),
	}
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// EvaluateJSON sends the instruction as a chat completion constrained to a
// JSON object and returns the assistant message content.
func (c *OpenAIClient) EvaluateJSON(ctx context.Context, req Request) (json.RawMessage, error) {
	payload, err := json.Marshal(c.buildRequestBody(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).Msg("judge request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("judge returned non-OK status")
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, truncate(string(body), 200))
	}

	var result completionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrMalformed)
	}

	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("%w: content is not a JSON object", ErrMalformed)
	}

	c.log.Debug().
		Dur("latency", time.Since(start)).
		Int("promptTokens", result.Usage.PromptTokens).
		Int("completionTokens", result.Usage.CompletionTokens).
		Msg("judgment received")

	return json.RawMessage(content), nil
}

func (c *OpenAIClient) buildRequestBody(req Request) map[string]any {
	messages := []map[string]string{}
	if req.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.Instruction})

	body := map[string]any{
		"model":           c.model,
		"messages":        messages,
		"response_format": map[string]string{"type": "json_object"},
	}
	if req.Temperature > 0 {
		body["temperature"] = req.Temperature
	}
	return body
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// API response structures

type completionResponse struct {
	Choices []completionChoice `json:"choices"`
	Usage   completionUsage    `json:"usage"`
}

type completionChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

type completionUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

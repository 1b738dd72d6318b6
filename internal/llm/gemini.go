// Package llm wraps the Gemini client and defines the error classes of the
// model-output trust boundary.
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yesroad/daily-briefing-bot/internal/logger"
)

// SchemaError means raw model output failed JSON parsing or the structural
// schema. Fatal; never repaired.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("llm: schema violation: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// GroundingError means structurally valid output lost too much content to
// sanitization to be trustworthy. Fatal; proceeding would misrepresent how
// well the summary is sourced.
type GroundingError struct {
	Reason string
}

func (e *GroundingError) Error() string {
	return fmt.Sprintf("llm: grounding violation: %s", e.Reason)
}

// Client is a thin wrapper over the Gemini API with a per-run request
// budget.
type Client struct {
	client *genai.Client
	model  string

	mu          sync.Mutex
	requests    int
	maxRequests int // 0 = unlimited
}

func NewClient(ctx context.Context, apiKey, model string, maxRequests int) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("llm: create Gemini client: %w", err)
	}
	return &Client{client: client, model: model, maxRequests: maxRequests}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// GenerateJSON runs one schema-constrained round trip and returns the raw
// JSON text. Validation of that text is the caller's job.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if err := c.spendRequest(); err != nil {
		return "", err
	}

	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("llm: generate content: %w", err)
	}
	return extractText(resp)
}

// GenerateText runs one unconstrained round trip.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := c.spendRequest(); err != nil {
		return "", err
	}

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("llm: generate content: %w", err)
	}
	return extractText(resp)
}

func (c *Client) spendRequest() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxRequests > 0 && c.requests >= c.maxRequests {
		return fmt.Errorf("llm: request budget exhausted (%d/%d)", c.requests, c.maxRequests)
	}
	c.requests++
	logger.Debug("gemini request", "n", c.requests, "model", c.model)
	return nil
}

// CleanJSON strips markdown code fences some models wrap around JSON
// payloads. The payload itself is left untouched.
func CleanJSON(raw string) string {
	out := strings.TrimSpace(raw)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}

// extractText pulls the single text payload out of a response. A response
// without one is a hard failure.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("llm: response contains no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("llm: response contains no text part")
	}
	return out, nil
}

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient wraps Google's Generative AI SDK
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiClient creates a new Gemini API client.
// model: e.g. "gemini-2.0-flash", "gemini-1.5-pro"
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger := slog.Default().With("component", "gemini", "model", model)

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Query sends a prompt to Gemini and returns the text response. Failures
// come back as *ServiceError so callers can fall back to heuristics.
func (c *GeminiClient) Query(ctx context.Context, prompt string, maxTokens int) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:     ptrFloat32(0.3),
		TopK:            ptrFloat32(40),
		TopP:            ptrFloat32(0.95),
		MaxOutputTokens: int32(maxTokens),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), genConfig)
	if err != nil {
		kind := KindUnavailable
		if isQuotaError(err) {
			kind = KindQuota
		}
		return "", serviceErr("gemini", kind, err)
	}

	if len(resp.Candidates) == 0 {
		return "", serviceErr("gemini", KindEmpty, fmt.Errorf("no candidates returned"))
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", serviceErr("gemini", KindEmpty, fmt.Errorf("no content parts returned"))
	}

	text := strings.TrimSpace(candidate.Content.Parts[0].Text)
	if text == "" {
		return "", serviceErr("gemini", KindEmpty, fmt.Errorf("empty response text"))
	}

	c.logger.Debug("gemini completion",
		"prompt_length", len(prompt),
		"response_length", len(text),
	)
	return text, nil
}

// Model returns the configured model name
func (c *GeminiClient) Model() string {
	return c.model
}

// Close releases resources held by the Gemini client
func (c *GeminiClient) Close() error {
	// Current SDK versions need no explicit cleanup.
	return nil
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "quota")
}

func ptrFloat32(f float64) *float32 {
	f32 := float32(f)
	return &f32
}

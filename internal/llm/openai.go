package llm

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient wraps the OpenAI chat completions API
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIClient creates an OpenAI client. model: e.g. "gpt-4o-mini".
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: slog.Default().With("component", "openai", "model", model),
	}
}

// Query sends a prompt and returns the completion text. Failures come back
// as *ServiceError.
func (c *OpenAIClient) Query(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		kind := KindUnavailable
		if apiErr, ok := err.(*openai.APIError); ok && apiErr.HTTPStatusCode == 429 {
			kind = KindQuota
		}
		return "", serviceErr("openai", kind, err)
	}

	if len(resp.Choices) == 0 {
		return "", serviceErr("openai", KindEmpty, errNoChoices)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", serviceErr("openai", KindEmpty, errEmptyContent)
	}

	c.logger.Debug("openai completion",
		"prompt_length", len(prompt),
		"response_length", len(text),
		"tokens_used", resp.Usage.TotalTokens,
	)
	return text, nil
}

// Model returns the configured model name
func (c *OpenAIClient) Model() string {
	return c.model
}

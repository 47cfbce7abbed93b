package llm

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/codexplain/codexplain-go/internal/config"
)

// Provider represents the LLM provider
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderNone   Provider = "none" // no API key configured
)

var (
	errNoChoices    = errors.New("no choices returned")
	errEmptyContent = errors.New("empty response content")
	errDisabled     = errors.New("no provider configured")
)

// Querier is the remote collaborator boundary: one prompt in, one text
// response out. Implementations return *ServiceError on failure.
type Querier interface {
	Query(ctx context.Context, prompt string, maxTokens int) (string, error)
	Model() string
}

// Client is the multi-provider remote collaborator. When no API key is
// configured the client is disabled and every Query fails with a
// ServiceError, which downstream code treats like any other outage.
type Client struct {
	provider Provider
	gemini   *GeminiClient
	openai   *OpenAIClient
	limiter  *rate.Limiter
	logger   *slog.Logger
	enabled  bool
	model    string
}

// NewClient creates a client for the provider selected in cfg. Provider
// priority: cfg.Provider ("gemini" default). A missing API key yields a
// disabled client, not an error.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	logger := slog.Default().With("component", "llm")

	rpm := cfg.Limits.RequestsPerMinute
	if rpm <= 0 {
		rpm = 15
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)

	provider := cfg.Provider
	if provider == "" {
		provider = "gemini"
	}

	switch Provider(provider) {
	case ProviderOpenAI:
		return newOpenAIBacked(cfg, limiter, logger)
	case ProviderGemini:
		return newGeminiBacked(ctx, cfg, limiter, logger)
	case ProviderNone:
		return &Client{provider: ProviderNone, logger: logger}, nil
	default:
		logger.Warn("unknown provider, falling back to gemini", "provider", provider)
		return newGeminiBacked(ctx, cfg, limiter, logger)
	}
}

func newGeminiBacked(ctx context.Context, cfg *config.Config, limiter *rate.Limiter, logger *slog.Logger) (*Client, error) {
	if cfg.API.GeminiKey == "" {
		logger.Warn("no Gemini API key configured, remote explanations disabled")
		logger.Info("set GEMINI_API_KEY or run 'cxplain configure'")
		return &Client{provider: ProviderNone, logger: logger, model: cfg.API.GeminiModel}, nil
	}

	gemini, err := NewGeminiClient(ctx, cfg.API.GeminiKey, cfg.API.GeminiModel)
	if err != nil {
		return nil, err
	}

	logger.Info("gemini client initialized", "model", gemini.Model())
	return &Client{
		provider: ProviderGemini,
		gemini:   gemini,
		limiter:  limiter,
		logger:   logger,
		enabled:  true,
		model:    gemini.Model(),
	}, nil
}

func newOpenAIBacked(cfg *config.Config, limiter *rate.Limiter, logger *slog.Logger) (*Client, error) {
	if cfg.API.OpenAIKey == "" {
		logger.Warn("no OpenAI API key configured, remote explanations disabled")
		logger.Info("set OPENAI_API_KEY or run 'cxplain configure'")
		return &Client{provider: ProviderNone, logger: logger, model: cfg.API.OpenAIModel}, nil
	}

	oc := NewOpenAIClient(cfg.API.OpenAIKey, cfg.API.OpenAIModel)
	logger.Info("openai client initialized", "model", oc.Model())
	return &Client{
		provider: ProviderOpenAI,
		openai:   oc,
		limiter:  limiter,
		logger:   logger,
		enabled:  true,
		model:    oc.Model(),
	}, nil
}

// IsEnabled reports whether a provider is configured and ready
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// GetProvider returns the active LLM provider
func (c *Client) GetProvider() Provider {
	return c.provider
}

// Model returns the active model name (set even when disabled, for display)
func (c *Client) Model() string {
	return c.model
}

// Query sends a prompt to the active provider. The client-side rate limiter
// runs first so bursts do not trip the service quota.
func (c *Client) Query(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !c.enabled {
		return "", serviceErr(string(ProviderNone), KindUnavailable, errDisabled)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", serviceErr(string(c.provider), KindUnavailable, err)
	}

	switch c.provider {
	case ProviderGemini:
		return c.gemini.Query(ctx, prompt, maxTokens)
	case ProviderOpenAI:
		return c.openai.Query(ctx, prompt, maxTokens)
	default:
		return "", serviceErr(string(ProviderNone), KindUnavailable, errDisabled)
	}
}

// Close releases provider resources
func (c *Client) Close() error {
	if c.gemini != nil {
		return c.gemini.Close()
	}
	return nil
}

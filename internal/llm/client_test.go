package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexplain/codexplain-go/internal/config"
)

func TestNewClient_NoKeyIsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.API.GeminiKey = ""

	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err, "missing key must not be a construction error")
	assert.False(t, client.IsEnabled())
	assert.Equal(t, ProviderNone, client.GetProvider())
}

func TestNewClient_OpenAINoKeyIsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Provider = "openai"
	cfg.API.OpenAIKey = ""

	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, client.IsEnabled())
}

func TestNewClient_OpenAIWithKey(t *testing.T) {
	cfg := config.Default()
	cfg.Provider = "openai"
	cfg.API.OpenAIKey = "sk-test"

	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, client.IsEnabled())
	assert.Equal(t, ProviderOpenAI, client.GetProvider())
	assert.Equal(t, "gpt-4o-mini", client.Model())
}

func TestDisabledClient_QueryFailsWithServiceError(t *testing.T) {
	cfg := config.Default()
	cfg.API.GeminiKey = ""

	client, err := NewClient(context.Background(), cfg)
	require.NoError(t, err)

	_, err = client.Query(context.Background(), "explain this", 100)
	require.Error(t, err)
	assert.True(t, IsServiceError(err))

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, KindUnavailable, se.Kind)
}

func TestServiceError_IsMatchesByKind(t *testing.T) {
	err := serviceErr("gemini", KindQuota, fmt.Errorf("429 too many requests"))

	assert.True(t, errors.Is(err, &ServiceError{Kind: KindQuota}))
	assert.False(t, errors.Is(err, &ServiceError{Kind: KindEmpty}))
	// Zero-kind target matches any service error.
	assert.True(t, errors.Is(err, &ServiceError{}))
}

func TestServiceError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := serviceErr("gemini", KindUnavailable, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gemini service unavailable")
}

func TestIsQuotaError(t *testing.T) {
	assert.True(t, isQuotaError(fmt.Errorf("googleapi: Error 429: RESOURCE_EXHAUSTED")))
	assert.True(t, isQuotaError(fmt.Errorf("quota exceeded")))
	assert.False(t, isQuotaError(fmt.Errorf("connection reset")))
}

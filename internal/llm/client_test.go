package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/config"
)

type stubProvider struct {
	got    Request
	closed bool
}

func (p *stubProvider) OpenStream(ctx context.Context, req Request) (Stream, error) {
	p.got = req
	return nil, errors.New("stub")
}

func (p *stubProvider) Close() error {
	p.closed = true
	return nil
}

func TestNewClient_MissingKeyIsUnavailable(t *testing.T) {
	c := NewClient(context.Background(), config.Config{
		LLMProvider:  config.ProviderAnthropic,
		LLMMaxTokens: 4096,
	}, zap.NewNop())

	assert.False(t, c.Ready())
	assert.Equal(t, "Claude", c.Service())
	assert.ErrorIs(t, c.InitErr(), ErrMissingAPIKey)

	_, err := c.Open(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.NoError(t, c.Close())
}

func TestNewClient_VertexNeedsProject(t *testing.T) {
	c := NewClient(context.Background(), config.Config{
		LLMProvider:  config.ProviderVertex,
		LLMMaxTokens: 4096,
	}, zap.NewNop())

	assert.False(t, c.Ready())
	assert.Equal(t, "Vertex AI", c.Service())
	assert.ErrorContains(t, c.InitErr(), "GCP_PROJECT_ID")
}

func TestNewClient_UnknownProvider(t *testing.T) {
	c := NewClient(context.Background(), config.Config{LLMProvider: "mystery"}, zap.NewNop())

	assert.False(t, c.Ready())
	assert.Equal(t, "mystery", c.Service())
	assert.ErrorContains(t, c.InitErr(), "unknown provider")
}

func TestNewClient_DefaultModel(t *testing.T) {
	c := NewClient(context.Background(), config.Config{
		LLMProvider:  config.ProviderOpenAI,
		OpenAIAPIKey: "sk-test",
		LLMMaxTokens: 512,
	}, zap.NewNop())

	require.True(t, c.Ready())
	assert.Equal(t, "OpenAI", c.Service())
	assert.Equal(t, ModelConfig{Model: "gpt-4o", MaxTokens: 512}, c.Model())
}

func TestClient_OpenPassesModelConfig(t *testing.T) {
	p := &stubProvider{}
	c := NewReadyClient("Stub", p, ModelConfig{Model: "m-1", MaxTokens: 42})

	_, err := c.Open(context.Background(), "sys", "user")
	require.EqualError(t, err, "stub")
	assert.Equal(t, Request{SystemInstruction: "sys", UserMessage: "user", Model: "m-1", MaxTokens: 42}, p.got)

	require.NoError(t, c.Close())
	assert.True(t, p.closed)
}

func TestUnavailable_DefaultsError(t *testing.T) {
	c := Unavailable("Claude", nil)
	assert.False(t, c.Ready())
	assert.ErrorIs(t, c.InitErr(), ErrNotInitialized)
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "Claude", ServiceName(config.ProviderAnthropic))
	assert.Equal(t, "Gemini", ServiceName(config.ProviderGemini))
	assert.Equal(t, "other", ServiceName("other"))
	assert.Equal(t, "claude-sonnet-4-20250514", DefaultModel(config.ProviderAnthropic))
}

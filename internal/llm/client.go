package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/config"
)

// Default models per provider, used when LLM_MODEL is empty.
var defaultModels = map[string]string{
	config.ProviderAnthropic: "claude-sonnet-4-20250514",
	config.ProviderVertex:    "gemini-2.0-flash-lite-001",
	config.ProviderGemini:    "gemini-2.0-flash",
	config.ProviderOpenAI:    "gpt-4o",
}

// Display names used in diagnostics shown to the user.
var serviceNames = map[string]string{
	config.ProviderAnthropic: "Claude",
	config.ProviderVertex:    "Vertex AI",
	config.ProviderGemini:    "Gemini",
	config.ProviderOpenAI:    "OpenAI",
}

// ServiceName returns the user-facing name of a provider.
func ServiceName(provider string) string {
	if name, ok := serviceNames[provider]; ok {
		return name
	}
	return provider
}

// DefaultModel returns the model used for provider when none is configured.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// Client is the process-wide completion-service handle. It is either ready
// (holds a Provider) or carries the error that prevented initialisation.
// A Client is immutable after construction and safe for concurrent use.
type Client struct {
	service  string
	provider Provider
	model    ModelConfig
	initErr  error
}

// NewReadyClient returns a handle around an initialised provider.
func NewReadyClient(service string, p Provider, model ModelConfig) *Client {
	return &Client{service: service, provider: p, model: model}
}

// Unavailable returns a handle that records a failed initialisation.
func Unavailable(service string, err error) *Client {
	if err == nil {
		err = ErrNotInitialized
	}
	return &Client{service: service, initErr: err}
}

// NewClient builds the provider selected by cfg. It never fails: when the
// provider cannot be built the returned handle reports Ready() == false and
// every request degrades until the process is reconfigured.
func NewClient(ctx context.Context, cfg config.Config, l *zap.Logger) *Client {
	l = l.With(zap.String("component", "llm"), zap.String("provider", cfg.LLMProvider))
	service := ServiceName(cfg.LLMProvider)

	model := ModelConfig{Model: cfg.LLMModel, MaxTokens: cfg.LLMMaxTokens}
	if model.Model == "" {
		model.Model = DefaultModel(cfg.LLMProvider)
	}

	p, err := newProvider(ctx, cfg)
	if err != nil {
		l.Error("completion client not initialized", zap.Error(err))
		return Unavailable(service, err)
	}

	l.Info("completion client initialized",
		zap.String("model", model.Model),
		zap.Int("max_tokens", model.MaxTokens),
	)
	return NewReadyClient(service, p, model)
}

func newProvider(ctx context.Context, cfg config.Config) (Provider, error) {
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		return NewAnthropicProvider(cfg.AnthropicAPIKey)
	case config.ProviderVertex:
		return NewVertexProvider(ctx, cfg.ProjectID, cfg.Location, cfg.CredentialsFile)
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey)
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIAPIKey)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.LLMProvider)
	}
}

// Ready reports whether the client initialised successfully.
func (c *Client) Ready() bool {
	return c.provider != nil
}

// Service is the user-facing name of the completion service.
func (c *Client) Service() string {
	return c.service
}

// InitErr is the initialisation failure, nil when the client is ready.
func (c *Client) InitErr() error {
	return c.initErr
}

// Model is the fixed model configuration used for every session.
func (c *Client) Model() ModelConfig {
	return c.model
}

// Open starts a streaming session with the client's model configuration.
func (c *Client) Open(ctx context.Context, systemInstruction, userMessage string) (Stream, error) {
	if !c.Ready() {
		return nil, ErrNotInitialized
	}
	return c.provider.OpenStream(ctx, Request{
		SystemInstruction: systemInstruction,
		UserMessage:       userMessage,
		Model:             c.model.Model,
		MaxTokens:         c.model.MaxTokens,
	})
}

// Close releases the provider, if any.
func (c *Client) Close() error {
	if c.provider == nil {
		return nil
	}
	return c.provider.Close()
}

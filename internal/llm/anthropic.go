package llm

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"github.com/ahmednasr/askrepo/internal/config"
)

// AnthropicProvider streams Claude completions through the Messages API.
type AnthropicProvider struct {
	client anthropic.Client
}

// NewAnthropicProvider creates a Claude provider. The SDK retries failed
// requests by default; retries are disabled because partial output may
// already have reached the user.
func NewAnthropicProvider(apiKey string, opts ...option.RequestOption) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	return &AnthropicProvider{client: anthropic.NewClient(opts...)}, nil
}

// OpenStream starts a Messages stream. Errors surface from the Stream.
func (p *AnthropicProvider) OpenStream(ctx context.Context, req Request) (Stream, error) {
	s := p.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
		System:    []anthropic.TextBlockParam{{Text: req.SystemInstruction}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserMessage)),
		},
	})
	return &anthropicStream{stream: s}, nil
}

// Close is a no-op; the SDK client holds no releasable resources.
func (p *AnthropicProvider) Close() error {
	return nil
}

type anthropicStream struct {
	stream *ssestream.Stream[anthropic.MessageStreamEventUnion]
	text   string
}

// Next skips every event that is not a text delta.
func (s *anthropicStream) Next() bool {
	for s.stream.Next() {
		event := s.stream.Current()
		delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		if text, ok := delta.Delta.AsAny().(anthropic.TextDelta); ok && text.Text != "" {
			s.text = text.Text
			return true
		}
	}
	return false
}

func (s *anthropicStream) Text() string {
	return s.text
}

func (s *anthropicStream) Err() error {
	return upstreamError(ServiceName(config.ProviderAnthropic), s.stream.Err(), sseStreamError)
}

func (s *anthropicStream) Close() error {
	return s.stream.Close()
}

package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/ahmednasr/askrepo/internal/config"
)

// OpenAIProvider streams chat completions from OpenAI.
type OpenAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider creates an OpenAI provider with SDK retries disabled.
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	return &OpenAIProvider{client: openai.NewClient(opts...)}, nil
}

func (p *OpenAIProvider) OpenStream(ctx context.Context, req Request) (Stream, error) {
	s := p.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemInstruction),
			openai.UserMessage(req.UserMessage),
		},
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
	})
	return &openaiStream{stream: s}, nil
}

func (p *OpenAIProvider) Close() error {
	return nil
}

type openaiStream struct {
	stream *ssestream.Stream[openai.ChatCompletionChunk]
	text   string
}

func (s *openaiStream) Next() bool {
	for s.stream.Next() {
		chunk := s.stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if text := chunk.Choices[0].Delta.Content; text != "" {
			s.text = text
			return true
		}
	}
	return false
}

func (s *openaiStream) Text() string {
	return s.text
}

func (s *openaiStream) Err() error {
	return upstreamError(ServiceName(config.ProviderOpenAI), s.stream.Err(), sseStreamError)
}

func (s *openaiStream) Close() error {
	return s.stream.Close()
}

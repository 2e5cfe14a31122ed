package llm

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"

	"github.com/ahmednasr/askrepo/internal/config"
)

// GeminiProvider streams completions from the Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

// GeminiOption adjusts the client configuration, e.g. the base URL or HTTP client.
type GeminiOption func(*genai.ClientConfig)

// NewGeminiProvider creates a Gemini API client authenticated with an API key.
func NewGeminiProvider(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cc)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// OpenStream turns the SDK's push iterator into a pull stream so the relay
// decides when the next response is read.
func (p *GeminiProvider) OpenStream(ctx context.Context, req Request) (Stream, error) {
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.Text(req.SystemInstruction)[0],
		MaxOutputTokens:   int32(req.MaxTokens),
	}

	ctx, cancel := context.WithCancel(ctx)
	seq := p.client.Models.GenerateContentStream(ctx, req.Model, genai.Text(req.UserMessage), genConfig)
	next, stop := iter.Pull2(seq)
	return &geminiStream{next: next, stop: stop, cancel: cancel}, nil
}

// Close is a no-op; the genai client holds no releasable resources.
func (p *GeminiProvider) Close() error {
	return nil
}

type geminiStream struct {
	next   func() (*genai.GenerateContentResponse, error, bool)
	stop   func()
	cancel context.CancelFunc
	text   string
	err    error
}

func (s *geminiStream) Next() bool {
	if s.err != nil {
		return false
	}
	for {
		resp, err, ok := s.next()
		if !ok {
			return false
		}
		if err != nil {
			s.err = err
			return false
		}
		if text := geminiText(resp); text != "" {
			s.text = text
			return true
		}
	}
}

func (s *geminiStream) Text() string {
	return s.text
}

func (s *geminiStream) Err() error {
	return upstreamError(ServiceName(config.ProviderGemini), s.err, isGeminiAPIError)
}

func (s *geminiStream) Close() error {
	s.cancel()
	s.stop()
	return nil
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func isGeminiAPIError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var apiErrPtr *genai.APIError
	return errors.As(err, &apiErrPtr)
}

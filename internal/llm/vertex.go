package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ahmednasr/askrepo/internal/config"
)

// VertexProvider streams Gemini completions through Vertex AI.
type VertexProvider struct {
	client *genai.Client
}

// NewVertexProvider creates a Vertex AI client for the given project and region.
// credentialsFile may be empty to use application default credentials.
func NewVertexProvider(ctx context.Context, projectID, location, credentialsFile string) (*VertexProvider, error) {
	if projectID == "" {
		return nil, fmt.Errorf("vertex ai: GCP_PROJECT_ID is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}
	return &VertexProvider{client: client}, nil
}

// OpenStream configures a model for this request only; GenerativeModel is
// mutable and must not be shared between sessions.
func (p *VertexProvider) OpenStream(ctx context.Context, req Request) (Stream, error) {
	model := p.client.GenerativeModel(req.Model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstruction)}}
	model.SetMaxOutputTokens(int32(req.MaxTokens))

	ctx, cancel := context.WithCancel(ctx)
	return &vertexStream{
		it:     model.GenerateContentStream(ctx, genai.Text(req.UserMessage)),
		cancel: cancel,
	}, nil
}

// Close releases the Vertex AI client.
func (p *VertexProvider) Close() error {
	return p.client.Close()
}

type vertexStream struct {
	it     *genai.GenerateContentResponseIterator
	cancel context.CancelFunc
	text   string
	err    error
}

func (s *vertexStream) Next() bool {
	if s.err != nil {
		return false
	}
	for {
		resp, err := s.it.Next()
		if errors.Is(err, iterator.Done) {
			return false
		}
		if err != nil {
			s.err = err
			return false
		}
		if text := vertexText(resp); text != "" {
			s.text = text
			return true
		}
	}
}

func (s *vertexStream) Text() string {
	return s.text
}

func (s *vertexStream) Err() error {
	return upstreamError(ServiceName(config.ProviderVertex), s.err, isGRPCStatusError)
}

func (s *vertexStream) Close() error {
	s.cancel()
	return nil
}

func vertexText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// isGRPCStatusError accepts any error carrying a gRPC status other than Unknown.
func isGRPCStatusError(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() != codes.Unknown
}

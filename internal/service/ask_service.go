package service

import (
	"context"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/models"
)

// ---- Repository layer contracts -------------------------------------------

// CorpusProvider returns the current repository/contributor snapshot.
// It is called once per question; implementations must not cache.
type CorpusProvider interface {
	Snapshot(ctx context.Context) (models.Corpus, error)
}

// ---- Service interface + implementation ------------------------------------

// AskService answers questions about the corpus as a stream of text increments.
type AskService interface {
	// Ready reports whether the completion client initialised.
	Ready() bool
	// Service is the user-facing name of the completion service.
	Service() string
	// Ask fetches a fresh snapshot and builds the prompt synchronously; the
	// returned sequence performs the completion lazily. A non-nil error means
	// nothing was streamed yet.
	Ask(ctx context.Context, question string) (iter.Seq[string], error)
}

type askService struct {
	corpus CorpusProvider
	relay  *Relay
	l      *zap.Logger
}

// NewAskService wires dependencies and returns AskService.
func NewAskService(corpus CorpusProvider, relay *Relay, l *zap.Logger) AskService {
	return &askService{
		corpus: corpus,
		relay:  relay,
		l:      l.With(zap.String("component", "ask")),
	}
}

func (s *askService) Ready() bool {
	return s.relay.Ready()
}

func (s *askService) Service() string {
	return s.relay.Service()
}

// Ask never calls the corpus provider for an empty question: the relay
// reports the missing prompt on its own.
func (s *askService) Ask(ctx context.Context, question string) (iter.Seq[string], error) {
	if question == "" {
		return s.relay.Stream(ctx, PromptPair{}), nil
	}

	corpus, err := s.corpus.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch corpus snapshot: %w", err)
	}

	pair, err := BuildPrompt(question, corpus)
	if err != nil {
		return nil, err
	}

	s.l.Debug("prompt built",
		zap.String("system_instruction_version", SystemInstructionVersion),
		zap.Int("repositories", len(corpus.Repositories)),
		zap.Int("contributors", len(corpus.Contributors)),
		zap.Int("user_message_bytes", len(pair.UserMessage)),
	)

	return s.relay.Stream(ctx, pair), nil
}

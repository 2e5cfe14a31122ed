package service

import (
	"context"

	"github.com/ahmednasr/askrepo/internal/models"
)

// CorpusService exposes the raw corpus snapshot to the API.
type CorpusService interface {
	Snapshot(ctx context.Context) (models.Corpus, error)
}

type corpusService struct {
	provider CorpusProvider
}

// NewCorpusService returns a CorpusService reading from provider.
func NewCorpusService(provider CorpusProvider) CorpusService {
	return &corpusService{provider: provider}
}

// Snapshot never returns nil slices so the JSON body always carries arrays.
func (s *corpusService) Snapshot(ctx context.Context) (models.Corpus, error) {
	corpus, err := s.provider.Snapshot(ctx)
	if err != nil {
		return models.Corpus{}, err
	}
	if corpus.Repositories == nil {
		corpus.Repositories = []models.Repository{}
	}
	if corpus.Contributors == nil {
		corpus.Contributors = []models.Contributor{}
	}
	return corpus, nil
}

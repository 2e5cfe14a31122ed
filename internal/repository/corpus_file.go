package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ahmednasr/askrepo/internal/models"
)

// CorpusFile reads corpus snapshots from a JSON or YAML file. The file is
// re-read on every Snapshot so edits show up on the next question.
type CorpusFile struct {
	path string
}

// NewCorpusFile returns a provider for path. The format follows the extension:
// .yaml/.yml for YAML, anything else for JSON.
func NewCorpusFile(path string) *CorpusFile {
	return &CorpusFile{path: path}
}

// Path is the file the provider reads.
func (r *CorpusFile) Path() string {
	return r.path
}

func (r *CorpusFile) Snapshot(ctx context.Context) (models.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return models.Corpus{}, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return models.Corpus{}, fmt.Errorf("read corpus file: %w", err)
	}

	var corpus models.Corpus
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &corpus)
	default:
		err = json.Unmarshal(data, &corpus)
	}
	if err != nil {
		return models.Corpus{}, fmt.Errorf("decode corpus file %s: %w", r.path, err)
	}
	return corpus, nil
}

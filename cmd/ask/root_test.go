package main

import (
	"bytes"
	"context"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/config"
	"github.com/ahmednasr/askrepo/internal/service"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "ask"}
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "")
	cmd.Flags().StringVar(&provider, "provider", "", "")
	cmd.Flags().StringVar(&model, "model", "", "")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestApplyFlags_OverridesEnvironment(t *testing.T) {
	cfg := config.Config{
		MongoURI:     "mongodb://localhost",
		CorpusFile:   "data/corpus.json",
		LLMProvider:  config.ProviderAnthropic,
		LLMMaxTokens: 4096,
	}

	applyFlags(newFlagCmd(t, "--corpus", "other.yaml", "--provider", "Gemini", "--max-tokens", "256"), &cfg)

	assert.Equal(t, "other.yaml", cfg.CorpusFile)
	assert.False(t, cfg.UseMongo())
	assert.Equal(t, config.ProviderGemini, cfg.LLMProvider)
	assert.Empty(t, cfg.LLMModel)
	assert.Equal(t, 256, cfg.LLMMaxTokens)
}

func TestApplyFlags_UnsetFlagsKeepConfig(t *testing.T) {
	cfg := config.Config{MongoURI: "mongodb://localhost", LLMModel: "gpt-4o", LLMMaxTokens: 4096}

	applyFlags(newFlagCmd(t), &cfg)

	assert.True(t, cfg.UseMongo())
	assert.Equal(t, "gpt-4o", cfg.LLMModel)
	assert.Equal(t, 4096, cfg.LLMMaxTokens)
}

func TestAsk_ClientNotConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"repositories": [], "contributors": []}`), 0o600))

	cfg := config.Config{CorpusFile: path, LLMProvider: config.ProviderOpenAI, LLMMaxTokens: 16}
	var out bytes.Buffer

	err := ask(context.Background(), &out, cfg, "who?", zap.NewNop())

	require.ErrorContains(t, err, "OpenAI client not configured")
	assert.Empty(t, out.String())
}

// cancellingAsk cancels the run after the first increment, the way Ctrl-C does.
type cancellingAsk struct {
	cancel context.CancelFunc
}

func (a cancellingAsk) Ready() bool     { return true }
func (a cancellingAsk) Service() string { return "Claude" }
func (a cancellingAsk) Ask(ctx context.Context, _ string) (iter.Seq[string], error) {
	return func(yield func(string) bool) {
		if !yield("partial") {
			return
		}
		a.cancel()
		if ctx.Err() == nil {
			yield(" never sent")
		}
	}, nil
}

var _ service.AskService = cancellingAsk{}

func TestStream_InterruptIsCleanExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out bytes.Buffer

	err := stream(ctx, &out, cancellingAsk{cancel: cancel}, "who?")

	require.NoError(t, err)
	assert.Equal(t, "partial\n", out.String())
}

func TestStream_DeadlineIsReported(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()
	var out bytes.Buffer

	err := stream(ctx, &out, cancellingAsk{cancel: func() {}}, "who?")

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

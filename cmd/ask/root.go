package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/config"
	"github.com/ahmednasr/askrepo/internal/database"
	"github.com/ahmednasr/askrepo/internal/llm"
	"github.com/ahmednasr/askrepo/internal/logger"
	"github.com/ahmednasr/askrepo/internal/repository"
	"github.com/ahmednasr/askrepo/internal/service"
)

var (
	corpusPath string
	provider   string
	model      string
	maxTokens  int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the repositories and contributors in the corpus",
	Long: `ask streams an answer grounded in the corpus to stdout.

The corpus is read from MongoDB when MONGODB_URI is set, otherwise from
CORPUS_FILE (JSON or YAML). --corpus always forces a file.

Example:
  ask "Who fixed the crash in Acme?" --corpus data/corpus.json --provider gemini`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		applyFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		l := zap.NewNop()
		if verbose {
			l = logger.New(cfg)
		}
		defer func() { _ = l.Sync() }()

		return ask(cmd.Context(), cmd.OutOrStdout(), cfg, strings.Join(args, " "), l)
	},
}

func init() {
	rootCmd.Flags().StringVar(&corpusPath, "corpus", "", "Corpus file (JSON or YAML); overrides MONGODB_URI and CORPUS_FILE")
	rootCmd.Flags().StringVar(&provider, "provider", "", "Completion provider: anthropic, vertex, gemini or openai")
	rootCmd.Flags().StringVar(&model, "model", "", "Model id (provider default when empty)")
	rootCmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Maximum output tokens")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("corpus") {
		cfg.CorpusFile = corpusPath
		cfg.MongoURI = ""
	}
	if cmd.Flags().Changed("provider") {
		cfg.LLMProvider = strings.ToLower(provider)
	}
	if cmd.Flags().Changed("model") {
		cfg.LLMModel = model
	}
	if cmd.Flags().Changed("max-tokens") {
		cfg.LLMMaxTokens = maxTokens
	}
}

// ask runs one question through the same service the HTTP API uses and
// copies every increment to out as it arrives.
func ask(ctx context.Context, out io.Writer, cfg config.Config, question string, l *zap.Logger) error {
	corpus, closeCorpus, err := openCorpus(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCorpus()

	client := llm.NewClient(ctx, cfg, l)
	defer client.Close()

	svc := service.NewAskService(corpus, service.NewRelay(client, l), l)
	if !svc.Ready() {
		return fmt.Errorf("%s client not configured: %w", svc.Service(), client.InitErr())
	}

	return stream(ctx, out, svc, question)
}

// stream copies the answer to out. Ctrl-C ends the answer early and is a
// clean exit; a deadline is still reported.
func stream(ctx context.Context, out io.Writer, svc service.AskService, question string) error {
	answer, err := svc.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}

	for chunk := range answer {
		if _, err := io.WriteString(out, chunk); err != nil {
			return err
		}
	}
	_, _ = io.WriteString(out, "\n")

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func openCorpus(ctx context.Context, cfg config.Config) (service.CorpusProvider, func(), error) {
	if !cfg.UseMongo() {
		return repository.NewCorpusFile(cfg.CorpusFile), func() {}, nil
	}

	client, err := database.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	return repository.NewCorpusMongo(client.Database(cfg.DBName)), func() {
		_ = client.Disconnect(context.Background())
	}, nil
}

package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/ahmednasr/askrepo/internal/config"
	"github.com/ahmednasr/askrepo/internal/database"
	"github.com/ahmednasr/askrepo/internal/handler"
	"github.com/ahmednasr/askrepo/internal/llm"
	"github.com/ahmednasr/askrepo/internal/logger"
	"github.com/ahmednasr/askrepo/internal/middleware"
	"github.com/ahmednasr/askrepo/internal/repository"
	"github.com/ahmednasr/askrepo/internal/service"
)

// options is the whole dependency graph of the server.
func options() fx.Option {
	return fx.Options(
		fx.Provide(
			loadConfig,
			logger.New,
			newMongo,
			newCorpusProvider,
			newLLMClient,
			service.NewRelay,
			service.NewAskService,
			service.NewCorpusService,
		),
		fx.Decorate(func(l *zap.Logger) *zap.Logger {
			return l.With(zap.String("service", "askrepo"))
		}),
		fx.Invoke(run),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{
				Logger: l,
			}
		}),
	)
}

func loadConfig() (config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newMongo connects when MONGODB_URI is set and returns nil otherwise.
func newMongo(lc fx.Lifecycle, cfg config.Config, l *zap.Logger) (*mongo.Client, error) {
	if !cfg.UseMongo() {
		return nil, nil
	}

	client, err := database.NewMongo(context.Background(), cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	l.Info("connected to MongoDB", zap.String("database", cfg.DBName))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Info("disconnecting from MongoDB")
			return client.Disconnect(ctx)
		},
	})
	return client, nil
}

func newCorpusProvider(cfg config.Config, db *mongo.Client, l *zap.Logger) service.CorpusProvider {
	if db != nil {
		return repository.NewCorpusMongo(db.Database(cfg.DBName))
	}
	l.Info("reading corpus from file", zap.String("path", cfg.CorpusFile))
	return repository.NewCorpusFile(cfg.CorpusFile)
}

// newLLMClient never fails: a missing credential leaves the client degraded
// and every answer carries the initialisation diagnostic.
func newLLMClient(lc fx.Lifecycle, cfg config.Config, l *zap.Logger) *llm.Client {
	client := llm.NewClient(context.Background(), cfg, l)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client
}

func run(
	lc fx.Lifecycle,
	cfg config.Config,
	l *zap.Logger,
	askSvc service.AskService,
	corpusSvc service.CorpusService,
	db *mongo.Client,
) {
	app := fiber.New(fiber.Config{
		AppName:               "askrepo",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		DisableStartupMessage: !cfg.IsDev(),
	})

	middleware.Use(app, l, cfg.CorsAllowedOrigins)

	corpusFile := ""
	if db == nil {
		corpusFile = cfg.CorpusFile
	}
	handler.RegisterRoutes(app, askSvc, corpusSvc, db, corpusFile, l)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				l.Info("starting API server", zap.String("port", cfg.Port))
				if err := app.Listen(":" + cfg.Port); err != nil {
					l.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Info("shutdown signal received")
			return app.ShutdownWithContext(ctx)
		},
	})
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ReviewLens/internal/config"
	"ReviewLens/internal/infrastructure/loader"
	"ReviewLens/internal/infrastructure/sink"
	"ReviewLens/internal/infrastructure/storage"
	"ReviewLens/internal/logging"
	"ReviewLens/internal/ports"
	"ReviewLens/internal/sentiment"
	"ReviewLens/internal/source"
	"ReviewLens/internal/themes"
	"ReviewLens/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance. Database persistence is only
// wired when a DSN is configured.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := source.NewRegistry()
	registry.Register(loader.NewCSVLoader(baseLogger.With("component", "loader.csv")))
	registry.Register(loader.NewStorePageLoader(&http.Client{Timeout: 20 * time.Second}))

	reviewSource := loader.NewStrategySource(registry, cfg.Sources, baseLogger.With("component", "source"))

	scorer, err := buildScorer(cfg.Sentiment)
	if err != nil {
		return nil, fmt.Errorf("build scorer: %w", err)
	}

	analyzer := themes.NewAnalyzer(themes.Options{
		NTopWords: cfg.Themes.NTopWords,
		MinDF:     cfg.Themes.MinDocFreq,
		MaxDF:     cfg.Themes.MaxDocFreq,
		Seed:      cfg.Seed,
	}, baseLogger.With("component", "themes"))

	var repository ports.ReviewRepository
	if cfg.Database.DSN != "" {
		db, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		repository = storage.NewPostgresRepository(db)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     reviewSource,
		Repository: repository,
		Sink:       sink.NewFileSink(cfg.Output.Dir),
		Scorer:     scorer,
		Analyzer:   analyzer,
		Logger:     baseLogger.With("component", "pipeline"),
		NThemes:    cfg.Themes.NThemes,
		SampleSize: cfg.SampleSize,
		Seed:       cfg.Seed,
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}, nil
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	start := time.Now()
	if err := a.pipeline.Run(ctx); err != nil {
		return err
	}
	a.logger.Info("pipeline finished",
		"reviews", len(a.pipeline.Reviews()),
		"banks", len(a.pipeline.Themes()),
		"elapsed", time.Since(start))
	return nil
}

func buildScorer(cfg config.SentimentConfig) (sentiment.Scorer, error) {
	method, err := sentiment.ParseMethod(cfg.Method)
	if err != nil {
		return nil, err
	}

	switch method {
	case sentiment.MethodRules:
		return sentiment.NewRuleScorer(), nil
	case sentiment.MethodTransformer:
		return sentiment.NewTransformerScorer(cfg.APIURL, cfg.APIKey), nil
	default:
		return sentiment.NewLexiconScorer(), nil
	}
}

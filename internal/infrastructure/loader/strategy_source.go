package loader

import (
	"context"
	"fmt"
	"log/slog"

	"ReviewLens/internal/config"
	"ReviewLens/internal/domain"
	"ReviewLens/internal/ports"
	"ReviewLens/internal/source"
)

// StrategySource implements ReviewSource via registered loader strategies.
type StrategySource struct {
	registry *source.Registry
	sources  []config.SourceConfig
	logger   *slog.Logger
}

var _ ports.ReviewSource = (*StrategySource)(nil)

// NewStrategySource wires the loader registry with config-defined sources.
func NewStrategySource(reg *source.Registry, sources []config.SourceConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sources:  sources,
		logger:   log,
	}
}

// LoadReviews iterates over configured sources and executes their loaders.
func (s *StrategySource) LoadReviews(ctx context.Context) ([]domain.Review, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("source registry is not configured")
	}

	s.debug("load reviews", "sources", len(s.sources))

	var aggregated []domain.Review
	for _, src := range s.sources {
		s.debug("process source", "loader", src.Loader, "location", src.Location, "bank", src.Bank)
		strategy, err := s.registry.Resolve(src.Loader)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Location, err)
		}

		req := source.Request{
			Bank:     src.Bank,
			Location: src.Location,
			Options:  src.Options,
		}

		results, err := strategy.Load(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", src.Location, err)
		}

		s.debug("source produced reviews", "location", src.Location, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	s.debug("strategy source done", "total_reviews", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

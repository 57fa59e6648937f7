package ports

import (
	"context"

	"ReviewLens/internal/domain"
)

// ReviewSource loads the raw review dataset from an external provider
// (CSV export, store review page, database).
type ReviewSource interface {
	LoadReviews(ctx context.Context) ([]domain.Review, error)
}

// ReviewRepository persists annotated reviews for downstream consumers.
type ReviewRepository interface {
	SaveAnnotated(ctx context.Context, reviews []domain.Review) error
}

// ArtifactSink writes the run's reporting artifacts: annotated rows, the
// theme mapping, the aggregate summary, theme counts, and run metrics.
type ArtifactSink interface {
	WriteAnnotated(ctx context.Context, reviews []domain.Review) error
	WriteThemes(ctx context.Context, themes domain.ThemesByBank) error
	WriteSummary(ctx context.Context, rows []domain.SummaryRow) error
	WriteThemeCounts(ctx context.Context, counts []domain.ThemeCount) error
	WriteMetrics(ctx context.Context, metrics domain.RunMetrics) error
}

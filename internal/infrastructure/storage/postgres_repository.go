package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"ReviewLens/internal/domain"
	"ReviewLens/internal/ports"
)

// PostgresRepository persists annotated reviews into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ReviewRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveAnnotated upserts the annotated review snapshot keyed by review_id.
// Re-running the pipeline over the same dataset overwrites the derived
// columns instead of duplicating rows.
func (r *PostgresRepository) SaveAnnotated(ctx context.Context, reviews []domain.Review) error {
	if r.db == nil || len(reviews) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, review := range reviews {
		query, args, err := r.builder.
			Insert("annotated_reviews").
			Columns("review_id", "review_text", "rating", "review_date", "bank_name",
				"cleaned_text", "sentiment_score", "sentiment_label", "identified_theme").
			Values(review.ID, review.Text, review.Rating, nullableDate(review), review.Bank,
				review.CleanedText, nullableScore(review), string(review.SentimentLabel), review.IdentifiedTheme).
			Suffix(`ON CONFLICT (review_id) DO UPDATE
                SET cleaned_text = EXCLUDED.cleaned_text,
                    sentiment_score = EXCLUDED.sentiment_score,
                    sentiment_label = EXCLUDED.sentiment_label,
                    identified_theme = EXCLUDED.identified_theme,
                    updated_at = NOW()`).
			ToSql()
		if err != nil {
			return fmt.Errorf("build upsert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert review %s: %w", review.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func nullableScore(review domain.Review) interface{} {
	if review.SentimentScore == nil {
		return nil
	}
	return *review.SentimentScore
}

func nullableDate(review domain.Review) interface{} {
	if review.Date.IsZero() {
		return nil
	}
	return review.Date
}

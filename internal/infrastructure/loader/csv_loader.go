package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"ReviewLens/internal/domain"
	"ReviewLens/internal/source"
)

// Column names recognised in review CSV files. Raw exports carry the first
// five; annotated files written by the sink carry all of them.
const (
	colReviewID    = "review_id"
	colReviewText  = "review_text"
	colRating      = "rating"
	colReviewDate  = "review_date"
	colBankName    = "bank_name"
	colCleanedText = "review_text_preprocessed"
	colScore       = "sentiment_score"
	colLabel       = "sentiment_label"
	colTheme       = "identified_theme"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CSVLoader reads review datasets from CSV exports. Rows with a missing or
// out-of-range rating are dropped and counted, never fatal.
type CSVLoader struct {
	logger *slog.Logger
}

var _ source.Loader = (*CSVLoader)(nil)

// NewCSVLoader wires an optional logger.
func NewCSVLoader(logger *slog.Logger) *CSVLoader {
	return &CSVLoader{logger: logger}
}

// Name identifies the strategy inside the registry.
func (l *CSVLoader) Name() string {
	return "csv"
}

// Load reads the CSV file at req.Location.
func (l *CSVLoader) Load(ctx context.Context, req source.Request) ([]domain.Review, error) {
	f, err := os.Open(req.Location)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", req.Location, err)
	}
	defer f.Close()

	reviews, err := l.parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.Location, err)
	}
	return reviews, nil
}

func (l *CSVLoader) parse(r io.Reader) ([]domain.Review, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{colReviewText, colRating, colBankName} {
		if _, ok := cols[required]; !ok {
			return nil, &domain.ConfigError{Field: "input", Reason: fmt.Sprintf("missing required column %s", required)}
		}
	}

	field := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var (
		reviews []domain.Review
		dropped int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		rating, err := strconv.Atoi(field(record, colRating))
		if err != nil || rating < 1 || rating > 5 {
			dropped++
			continue
		}

		review := domain.Review{
			ID:              field(record, colReviewID),
			Text:            field(record, colReviewText),
			Rating:          rating,
			Bank:            field(record, colBankName),
			Date:            parseDate(field(record, colReviewDate)),
			CleanedText:     field(record, colCleanedText),
			SentimentLabel:  domain.SentimentLabel(field(record, colLabel)),
			IdentifiedTheme: field(record, colTheme),
		}
		if review.ID == "" {
			review.ID = uuid.NewString()
		}
		if raw := field(record, colScore); raw != "" {
			if score, err := strconv.ParseFloat(raw, 64); err == nil {
				review.SentimentScore = &score
			}
		}

		reviews = append(reviews, review)
	}

	if dropped > 0 && l.logger != nil {
		l.logger.Warn("dropped rows with invalid ratings", "count", dropped)
	}

	return reviews, nil
}

// parseDate tries the known layouts; unparseable dates pass through as the
// zero time.
func parseDate(raw string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

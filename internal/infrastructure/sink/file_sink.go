package sink

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ReviewLens/internal/domain"
	"ReviewLens/internal/ports"
)

// Artifact file names inside the output directory.
const (
	annotatedFile   = "reviews_with_sentiment_and_themes.csv"
	themesFile      = "themes_by_bank.json"
	summaryFile     = "sentiment_summary_by_bank_rating.csv"
	themeCountsFile = "theme_counts.csv"
	metricsFile     = "run_metrics.json"
)

const dateLayout = "2006-01-02"

// FileSink writes run artifacts as CSV and JSON files under a single output
// directory, creating it on demand.
type FileSink struct {
	dir string
}

var _ ports.ArtifactSink = (*FileSink)(nil)

// NewFileSink points the sink at dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// WriteAnnotated stores the full annotated dataset. The column set matches
// what the CSV loader reads back, so annotated exports round-trip.
func (s *FileSink) WriteAnnotated(_ context.Context, reviews []domain.Review) error {
	header := []string{
		"review_id", "review_text", "rating", "review_date", "bank_name",
		"review_text_preprocessed", "sentiment_score", "sentiment_label", "identified_theme",
	}

	records := make([][]string, 0, len(reviews))
	for _, r := range reviews {
		records = append(records, []string{
			r.ID,
			r.Text,
			strconv.Itoa(r.Rating),
			formatDate(r),
			r.Bank,
			r.CleanedText,
			formatScore(r.SentimentScore),
			string(r.SentimentLabel),
			r.IdentifiedTheme,
		})
	}

	return s.writeCSV(annotatedFile, header, records)
}

// WriteThemes stores the bank-to-themes mapping as indented JSON.
func (s *FileSink) WriteThemes(_ context.Context, themes domain.ThemesByBank) error {
	return s.writeJSON(themesFile, themes)
}

// WriteSummary stores the (bank, rating) aggregate table.
func (s *FileSink) WriteSummary(_ context.Context, rows []domain.SummaryRow) error {
	header := []string{"bank_name", "rating", "mean_sentiment_score", "review_count"}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.Bank,
			strconv.Itoa(row.Rating),
			strconv.FormatFloat(row.MeanScore, 'g', -1, 64),
			strconv.Itoa(row.Count),
		})
	}

	return s.writeCSV(summaryFile, header, records)
}

// WriteThemeCounts stores how many reviews carry each identified theme.
func (s *FileSink) WriteThemeCounts(_ context.Context, counts []domain.ThemeCount) error {
	header := []string{"bank_name", "identified_theme", "review_count"}

	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{c.Bank, c.Theme, strconv.Itoa(c.Count)})
	}

	return s.writeCSV(themeCountsFile, header, records)
}

// WriteMetrics stores the run-level metrics document.
func (s *FileSink) WriteMetrics(_ context.Context, metrics domain.RunMetrics) error {
	return s.writeJSON(metricsFile, metrics)
}

func (s *FileSink) writeCSV(name string, header []string, records [][]string) error {
	f, err := s.create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s rows: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return f.Close()
}

func (s *FileSink) writeJSON(name string, v interface{}) error {
	f, err := s.create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}

func (s *FileSink) create(name string) (*os.File, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", s.dir, err)
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	return f, nil
}

func formatScore(score *float64) string {
	if score == nil {
		return ""
	}
	return strconv.FormatFloat(*score, 'g', -1, 64)
}

func formatDate(r domain.Review) string {
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.Format(dateLayout)
}

package domain

import "time"

// Review is the core entity flowing through the pipeline. Derived fields
// (CleanedText, SentimentScore, SentimentLabel, IdentifiedTheme) start empty
// and are filled in by successive pipeline stages; the original fields are
// never mutated after load.
type Review struct {
	ID          string
	Text        string
	Rating      int
	Bank        string
	Date        time.Time
	CleanedText string

	// SentimentScore is nil until the review has been scored; a nil score
	// counts against sentiment coverage.
	SentimentScore *float64
	SentimentLabel SentimentLabel

	// IdentifiedTheme is the comma-joined keyword list of the bank's primary
	// theme, empty when the bank produced no themes.
	IdentifiedTheme string
}

// SentimentLabel is the discrete polarity class attached to each review.
type SentimentLabel string

const (
	LabelPositive SentimentLabel = "positive"
	LabelNeutral  SentimentLabel = "neutral"
	LabelNegative SentimentLabel = "negative"
)

// Theme is an ordered keyword list describing one latent topic, strongest
// keyword first.
type Theme []string

// ThemesByBank maps a bank name to its extracted themes in model order.
// A bank with too small a corpus maps to an empty slice.
type ThemesByBank map[string][]Theme

// SummaryRow is one (bank, rating) cell of the aggregate sentiment summary.
type SummaryRow struct {
	Bank      string
	Rating    int
	MeanScore float64
	Count     int
}

// RunMetrics records dataset-level facts persisted at the end of a run.
type RunMetrics struct {
	TotalReviews      int      `json:"total_reviews"`
	SentimentCoverage float64  `json:"sentiment_coverage"`
	Banks             []string `json:"banks"`
}

// ThemeCount is one row of the theme frequency summary.
type ThemeCount struct {
	Bank  string
	Theme string
	Count int
}

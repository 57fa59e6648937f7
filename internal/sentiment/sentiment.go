// Package sentiment maps cleaned review text to a continuous polarity score
// and a discrete label.
//
// Three scoring methods are provided behind one Scorer interface: an embedded
// opinion-lexicon average, a rule-based scorer adding negation and intensifier
// handling, and a client for a pretrained transformer classifier served over
// HTTP. The score-to-label mapping is shared and fixed: scores above
// PositiveThreshold are positive, below NegativeThreshold negative, neutral
// otherwise.
package sentiment

import (
	"context"
	"fmt"
	"log/slog"

	"ReviewLens/internal/domain"
)

// Method selects a scoring implementation. The set is closed; ParseMethod
// rejects anything else before the pipeline starts.
type Method string

const (
	MethodLexicon     Method = "lexicon"
	MethodRules       Method = "rules"
	MethodTransformer Method = "transformer"
)

// ParseMethod validates a configured method name.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case MethodLexicon, MethodRules, MethodTransformer:
		return Method(name), nil
	}
	return "", &domain.ConfigError{Field: "sentiment.method", Reason: fmt.Sprintf("unknown method %q", name)}
}

// Label thresholds, shared by all methods.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// LabelFor maps a score to its label. Deterministic for a given score.
func LabelFor(score float64) domain.SentimentLabel {
	switch {
	case score > PositiveThreshold:
		return domain.LabelPositive
	case score < NegativeThreshold:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}

// Scorer turns one text into a polarity score in [-1, 1].
type Scorer interface {
	Name() string
	Score(ctx context.Context, text string) (float64, error)
}

// BatchScore scores every review independently over its cleaned text,
// writing only the SentimentScore and SentimentLabel fields. A scorer error
// on one row leaves that row unscored and continues; the caller enforces the
// coverage gate. Returns the number of scored rows.
func BatchScore(ctx context.Context, reviews []domain.Review, scorer Scorer, logger *slog.Logger) int {
	scored := 0
	for i := range reviews {
		score, err := scorer.Score(ctx, reviews[i].CleanedText)
		if err != nil {
			if logger != nil {
				logger.Warn("scoring failed", "review_id", reviews[i].ID, "method", scorer.Name(), "error", err)
			}
			reviews[i].SentimentScore = nil
			reviews[i].SentimentLabel = ""
			continue
		}

		s := score
		reviews[i].SentimentScore = &s
		reviews[i].SentimentLabel = LabelFor(s)
		scored++
	}
	return scored
}

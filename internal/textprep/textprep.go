// Package textprep normalizes raw review text into the canonical cleaned
// form consumed by the sentiment and theme stages.
//
// Clean is pure and idempotent: lower-case, strip URLs, drop everything that
// is not a letter, digit, or whitespace, collapse runs of whitespace, trim.
package textprep

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"ReviewLens/internal/domain"
)

var urlExpr = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)

// Clean returns the canonical cleaned form of raw review text.
// An empty input yields an empty string.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ToLower(raw)
	text = urlExpr.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// CleanReviews fills CleanedText for every review in place. A failure on one
// row falls back to the raw text and never aborts the pass.
func CleanReviews(reviews []domain.Review, logger *slog.Logger) {
	for i := range reviews {
		reviews[i].CleanedText = cleanRow(reviews[i], logger)
	}
}

func cleanRow(review domain.Review, logger *slog.Logger) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Warn("text cleaning failed, keeping raw text", "review_id", review.ID, "cause", r)
			}
			cleaned = strings.TrimSpace(review.Text)
		}
	}()

	return Clean(review.Text)
}

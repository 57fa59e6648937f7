// Package metrics provides the aggregation helpers consumed by the pipeline:
// sentiment coverage and theme frequency summaries.
package metrics

import (
	"sort"

	"ReviewLens/internal/domain"
)

// SentimentCoverage returns the fraction (0-1) of reviews carrying a
// non-null sentiment score. An empty dataset has zero coverage.
func SentimentCoverage(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	scored := 0
	for _, review := range reviews {
		if review.SentimentScore != nil {
			scored++
		}
	}
	return float64(scored) / float64(len(reviews))
}

// ThemeCounts summarizes how many reviews carry each identified theme per
// bank, sorted by bank then theme for stable output. Reviews without a
// theme are skipped.
func ThemeCounts(reviews []domain.Review) []domain.ThemeCount {
	type key struct {
		bank  string
		theme string
	}

	counts := make(map[key]int)
	for _, review := range reviews {
		if review.IdentifiedTheme == "" {
			continue
		}
		counts[key{bank: review.Bank, theme: review.IdentifiedTheme}]++
	}

	result := make([]domain.ThemeCount, 0, len(counts))
	for k, n := range counts {
		result = append(result, domain.ThemeCount{Bank: k.bank, Theme: k.theme, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Bank != result[j].Bank {
			return result[i].Bank < result[j].Bank
		}
		return result[i].Theme < result[j].Theme
	})
	return result
}

// AggregateByBankRating computes mean sentiment score and review count per
// (bank, rating) cell, sorted by bank then rating. Unscored reviews count
// toward Count but not toward the mean.
func AggregateByBankRating(reviews []domain.Review) []domain.SummaryRow {
	type key struct {
		bank   string
		rating int
	}
	type cell struct {
		sum    float64
		scored int
		count  int
	}

	cells := make(map[key]*cell)
	for _, review := range reviews {
		k := key{bank: review.Bank, rating: review.Rating}
		c, ok := cells[k]
		if !ok {
			c = &cell{}
			cells[k] = c
		}
		c.count++
		if review.SentimentScore != nil {
			c.sum += *review.SentimentScore
			c.scored++
		}
	}

	result := make([]domain.SummaryRow, 0, len(cells))
	for k, c := range cells {
		row := domain.SummaryRow{Bank: k.bank, Rating: k.rating, Count: c.count}
		if c.scored > 0 {
			row.MeanScore = c.sum / float64(c.scored)
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Bank != result[j].Bank {
			return result[i].Bank < result[j].Bank
		}
		return result[i].Rating < result[j].Rating
	})
	return result
}

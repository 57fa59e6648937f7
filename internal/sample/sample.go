// Package sample generates a bounded synthetic review dataset so the
// pipeline stays runnable and testable without real data.
package sample

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"ReviewLens/internal/domain"
)

var banks = []string{
	"Commercial Bank of Ethiopia",
	"Bank of Abyssinia",
	"Dashen Bank",
}

var reviewTexts = []string{
	"App crashes when sending money",
	"Login failed multiple times",
	"Very fast transfers and easy to use",
	"Slow UI and occasional timeouts",
	"Customer support was helpful",
	"Payment failed but refunded later",
	"Great app, love the design",
	"Bug when uploading ID documents",
	"Fingerprint login not working",
	"Cannot link bank account",
}

// ratingWeights skews ratings toward the upper end, matching observed
// store-review distributions.
var ratingWeights = []float64{0.15, 0.15, 0.2, 0.25, 0.25}

// GenerateReviews returns n synthetic reviews spread across three banks
// with weighted ratings and dates inside the past year. The same seed
// yields the same dataset apart from the generated IDs.
func GenerateReviews(n int, seed int64) []domain.Review {
	rnd := rand.New(rand.NewSource(seed))
	now := time.Now().UTC()

	reviews := make([]domain.Review, 0, n)
	for i := 0; i < n; i++ {
		reviews = append(reviews, domain.Review{
			ID:     uuid.NewString(),
			Text:   reviewTexts[rnd.Intn(len(reviewTexts))],
			Rating: weightedRating(rnd),
			Bank:   banks[rnd.Intn(len(banks))],
			Date:   now.AddDate(0, 0, -rnd.Intn(365)),
		})
	}
	return reviews
}

func weightedRating(rnd *rand.Rand) int {
	roll := rnd.Float64()
	var cumulative float64
	for i, w := range ratingWeights {
		cumulative += w
		if roll < cumulative {
			return i + 1
		}
	}
	return len(ratingWeights)
}

package metrics

import (
	"testing"

	"ReviewLens/internal/domain"
)

func score(v float64) *float64 { return &v }

func TestSentimentCoverage(t *testing.T) {
	t.Parallel()

	if got := SentimentCoverage(nil); got != 0 {
		t.Fatalf("empty dataset coverage = %v, want 0", got)
	}

	reviews := []domain.Review{
		{SentimentScore: score(0.5)},
		{SentimentScore: score(-0.2)},
		{SentimentScore: nil},
		{SentimentScore: score(0)},
	}
	if got := SentimentCoverage(reviews); got != 0.75 {
		t.Fatalf("coverage = %v, want 0.75", got)
	}
}

func TestAggregateByBankRating(t *testing.T) {
	t.Parallel()

	var reviews []domain.Review
	for i := 0; i < 10; i++ {
		reviews = append(reviews, domain.Review{Bank: "BankA", Rating: 5, SentimentScore: score(0.6)})
	}
	reviews = append(reviews,
		domain.Review{Bank: "BankA", Rating: 1, SentimentScore: score(-0.4)},
		domain.Review{Bank: "BankB", Rating: 3, SentimentScore: nil},
	)

	rows := AggregateByBankRating(reviews)
	if len(rows) != 3 {
		t.Fatalf("expected 3 summary rows, got %d", len(rows))
	}

	// Sorted by bank then rating: (BankA,1), (BankA,5), (BankB,3).
	if rows[1].Bank != "BankA" || rows[1].Rating != 5 || rows[1].Count != 10 {
		t.Fatalf("unexpected row: %+v", rows[1])
	}
	if rows[1].MeanScore != 0.6 {
		t.Fatalf("mean score = %v, want 0.6", rows[1].MeanScore)
	}
	if rows[2].Bank != "BankB" || rows[2].Count != 1 || rows[2].MeanScore != 0 {
		t.Fatalf("unexpected unscored row: %+v", rows[2])
	}
}

func TestThemeCounts(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{
		{Bank: "BankA", IdentifiedTheme: "login, error"},
		{Bank: "BankA", IdentifiedTheme: "login, error"},
		{Bank: "BankA", IdentifiedTheme: "transfer, fast"},
		{Bank: "BankB", IdentifiedTheme: ""},
	}

	counts := ThemeCounts(reviews)
	if len(counts) != 2 {
		t.Fatalf("expected 2 theme rows, got %d", len(counts))
	}
	if counts[0].Theme != "login, error" || counts[0].Count != 2 {
		t.Fatalf("unexpected first row: %+v", counts[0])
	}
	if counts[1].Theme != "transfer, fast" || counts[1].Count != 1 {
		t.Fatalf("unexpected second row: %+v", counts[1])
	}
}

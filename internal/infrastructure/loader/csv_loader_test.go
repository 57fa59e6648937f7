package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ReviewLens/internal/domain"
	"ReviewLens/internal/source"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestCSVLoaderParsesRawExport(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, `review_id,review_text,rating,review_date,bank_name
r-1,Great app!,5,2026-01-15,BankA
r-2,Crashes on login,1,2026-01-16,BankB
`)

	ld := NewCSVLoader(nil)
	reviews, err := ld.Load(context.Background(), source.Request{Location: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(reviews) != 2 {
		t.Fatalf("got %d reviews, want 2", len(reviews))
	}
	if reviews[0].ID != "r-1" || reviews[0].Rating != 5 || reviews[0].Bank != "BankA" {
		t.Errorf("unexpected first review: %+v", reviews[0])
	}
	if reviews[0].Date.IsZero() {
		t.Error("date not parsed")
	}
	if reviews[0].SentimentScore != nil {
		t.Error("raw export should not carry a score")
	}
}

func TestCSVLoaderDropsInvalidRatings(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, `review_text,rating,bank_name
ok review,3,BankA
no rating,,BankA
out of range,9,BankA
not a number,five,BankA
`)

	ld := NewCSVLoader(nil)
	reviews, err := ld.Load(context.Background(), source.Request{Location: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(reviews) != 1 {
		t.Fatalf("got %d reviews, want 1", len(reviews))
	}
	if reviews[0].Text != "ok review" {
		t.Errorf("kept wrong row: %+v", reviews[0])
	}
	if reviews[0].ID == "" {
		t.Error("missing review_id was not generated")
	}
}

func TestCSVLoaderMissingRequiredColumn(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, `review_text,rating
some text,3
`)

	ld := NewCSVLoader(nil)
	_, err := ld.Load(context.Background(), source.Request{Location: path})

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want ConfigError", err)
	}
}

func TestCSVLoaderMissingFile(t *testing.T) {
	t.Parallel()

	ld := NewCSVLoader(nil)
	if _, err := ld.Load(context.Background(), source.Request{Location: "no/such/file.csv"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

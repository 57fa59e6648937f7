package loader

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"ReviewLens/internal/domain"
	"ReviewLens/internal/source"
)

// StorePageLoader parses app-store review page exports. Each review sits in
// a div.review block with .review-text, .review-rating, and .review-date
// children; the bank comes from the request.
type StorePageLoader struct {
	client *http.Client
}

var _ source.Loader = (*StorePageLoader)(nil)

// NewStorePageLoader wires an HTTP client; a nil client gets a 20s timeout
// default.
func NewStorePageLoader(client *http.Client) *StorePageLoader {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &StorePageLoader{client: client}
}

// Name identifies the strategy inside the registry.
func (l *StorePageLoader) Name() string {
	return "storepage"
}

// Load fetches the review page at req.Location and extracts its reviews.
func (l *StorePageLoader) Load(ctx context.Context, req source.Request) ([]domain.Review, error) {
	doc, err := l.fetchDocument(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("bank %s: %w", req.Bank, err)
	}

	var reviews []domain.Review
	doc.Find("div.review").Each(func(i int, sel *goquery.Selection) {
		review, err := parseReview(sel, req.Bank)
		if err != nil {
			return
		}
		reviews = append(reviews, review)
	})

	return reviews, nil
}

func (l *StorePageLoader) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ReviewLens/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func parseReview(sel *goquery.Selection, bank string) (domain.Review, error) {
	text := strings.TrimSpace(sel.Find(".review-text").First().Text())
	if text == "" {
		return domain.Review{}, fmt.Errorf("review block without text")
	}

	ratingText := strings.TrimSpace(sel.Find(".review-rating").First().Text())
	if ratingText == "" {
		ratingText, _ = sel.Find(".review-rating").First().Attr("data-rating")
	}
	rating, err := strconv.Atoi(strings.TrimSpace(ratingText))
	if err != nil || rating < 1 || rating > 5 {
		return domain.Review{}, fmt.Errorf("invalid rating %q", ratingText)
	}

	id, _ := sel.Attr("data-review-id")
	if id == "" {
		id = uuid.NewString()
	}

	return domain.Review{
		ID:     id,
		Text:   text,
		Rating: rating,
		Bank:   bank,
		Date:   parseDate(strings.TrimSpace(sel.Find(".review-date").First().Text())),
	}, nil
}

package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TransformerScorer delegates scoring to a pretrained classifier served over
// HTTP. An unreachable or misbehaving service surfaces as per-row scoring
// errors, which the pipeline's coverage gate turns into a hard failure.
type TransformerScorer struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ Scorer = (*TransformerScorer)(nil)

// NewTransformerScorer creates a reusable HTTP client for the inference
// service.
func NewTransformerScorer(endpoint, apiKey string) *TransformerScorer {
	return &TransformerScorer{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Name identifies the scorer inside logs and config.
func (s *TransformerScorer) Name() string { return string(MethodTransformer) }

// Score posts the text for classification and returns the service's score.
func (s *TransformerScorer) Score(ctx context.Context, text string) (float64, error) {
	if s.endpoint == "" {
		return 0, fmt.Errorf("transformer scorer misconfigured: empty endpoint")
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out struct {
		SentimentScore float64 `json:"sentiment_score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	return clamp(out.SentimentScore), nil
}

package sentiment

import (
	"context"
	"strconv"
	"strings"

	_ "embed"
)

//go:embed lexicon.txt
var lexiconRaw string

// lexicon maps words to polarity weights, built once at init.
var lexicon map[string]float64

func init() {
	lexicon = parseLexicon(lexiconRaw)
}

// parseLexicon parses tab-separated "word\tscore" lines.
func parseLexicon(raw string) map[string]float64 {
	m := make(map[string]float64, 128)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		m[strings.TrimSpace(parts[0])] = score
	}
	return m
}

// LexiconScorer averages the lexicon weights of matched words. Words outside
// the lexicon contribute nothing; a text with no matches scores 0 (neutral).
type LexiconScorer struct{}

var _ Scorer = (*LexiconScorer)(nil)

// NewLexiconScorer returns the embedded-lexicon scorer.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

// Name identifies the scorer inside logs and config.
func (s *LexiconScorer) Name() string { return string(MethodLexicon) }

// Score averages matched word weights; always in [-1, 1].
func (s *LexiconScorer) Score(_ context.Context, text string) (float64, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0, nil
	}

	var sum float64
	matched := 0
	for _, word := range words {
		if weight, ok := lexicon[word]; ok {
			sum += weight
			matched++
		}
	}

	if matched == 0 {
		return 0, nil
	}
	return clamp(sum / float64(matched)), nil
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

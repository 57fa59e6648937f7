package sentiment

import (
	"context"
	"strings"
)

// negationFactor flips and dampens a weight preceded by a negator
// ("not good" reads as mildly negative, not the mirror of "good").
const negationFactor = -0.75

var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "cant": {}, "cannot": {},
	"dont": {}, "doesnt": {}, "didnt": {}, "wont": {}, "isnt": {},
	"wasnt": {}, "couldnt": {}, "without": {},
}

// intensifiers scale the weight of the following lexicon word.
var intensifiers = map[string]float64{
	"very": 1.5, "really": 1.3, "extremely": 1.8, "super": 1.5,
	"so": 1.2, "too": 1.2, "totally": 1.4, "absolutely": 1.7,
	"always": 1.2, "constantly": 1.3,
}

// RuleScorer extends the lexicon average with negation flips and intensifier
// boosts over a one-word lookbehind window.
type RuleScorer struct{}

var _ Scorer = (*RuleScorer)(nil)

// NewRuleScorer returns the rule-based polarity scorer.
func NewRuleScorer() *RuleScorer {
	return &RuleScorer{}
}

// Name identifies the scorer inside logs and config.
func (s *RuleScorer) Name() string { return string(MethodRules) }

// Score averages matched word weights after applying negation and
// intensification; always in [-1, 1].
func (s *RuleScorer) Score(_ context.Context, text string) (float64, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0, nil
	}

	var sum float64
	matched := 0
	for i, word := range words {
		weight, ok := lexicon[word]
		if !ok {
			continue
		}

		if i > 0 {
			prev := words[i-1]
			if _, neg := negators[prev]; neg {
				weight *= negationFactor
			} else if boost, ok := intensifiers[prev]; ok {
				weight *= boost
			}
		}

		sum += weight
		matched++
	}

	if matched == 0 {
		return 0, nil
	}
	return clamp(sum / float64(matched)), nil
}

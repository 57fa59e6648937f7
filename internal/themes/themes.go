// Package themes discovers latent topics in review corpora.
//
// Each bank's cleaned review texts are turned into a TF-IDF weighted
// term-document matrix and factorised with seeded non-negative matrix
// factorisation; the top-weighted terms of each component form one theme.
// Banks are fitted independently and concurrently. Groups whose corpus
// cannot support the requested component count degrade to fewer or zero
// themes instead of failing.
package themes

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"

	"ReviewLens/internal/domain"
)

const (
	defaultTopWords   = 8
	defaultTopN       = 10
	defaultIterations = 200
	defaultMaxDF      = 0.95
)

// Options configures the analyzer. The seed is mandatory for reproducible
// factorisation; the zero value is a valid seed and is never replaced.
type Options struct {
	NTopWords  int     // keywords per theme, default 8
	MinDF      float64 // minimum document-frequency fraction, inclusive
	MaxDF      float64 // maximum document-frequency fraction, inclusive, default 0.95
	Iterations int     // NMF update iterations, default 200
	Seed       int64
}

// Analyzer fits topic models over review corpora.
type Analyzer struct {
	opts   Options
	logger *slog.Logger
}

// NewAnalyzer applies option defaults and returns a ready analyzer.
func NewAnalyzer(opts Options, logger *slog.Logger) *Analyzer {
	if opts.NTopWords <= 0 {
		opts.NTopWords = defaultTopWords
	}
	if opts.MaxDF <= 0 {
		opts.MaxDF = defaultMaxDF
	}
	if opts.Iterations <= 0 {
		opts.Iterations = defaultIterations
	}
	return &Analyzer{opts: opts, logger: logger}
}

// ThemesByBank fits an independent topic model per distinct bank and returns
// up to nThemes themes each, in component order. Every distinct bank appears
// in the result; banks without usable documents map to an empty slice.
func (a *Analyzer) ThemesByBank(reviews []domain.Review, nThemes int) (domain.ThemesByBank, error) {
	if nThemes <= 0 {
		return nil, &domain.ConfigError{Field: "n_themes", Reason: "must be positive"}
	}

	corpora := make(map[string][]string)
	for _, review := range reviews {
		texts := corpora[review.Bank]
		if text := strings.TrimSpace(review.CleanedText); text != "" {
			texts = append(texts, text)
		}
		corpora[review.Bank] = texts
	}

	result := make(domain.ThemesByBank, len(corpora))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for bank, texts := range corpora {
		wg.Add(1)
		go func(bank string, texts []string) {
			defer wg.Done()
			fitted := a.fitCorpus(texts, nThemes)
			mu.Lock()
			result[bank] = fitted
			mu.Unlock()
		}(bank, texts)
	}
	wg.Wait()

	return result, nil
}

// ExtractKeywords returns a flat ranked keyword list for one corpus, using
// the same weighting as theme extraction collapsed over all documents.
func (a *Analyzer) ExtractKeywords(texts []string, topN int) []string {
	if topN <= 0 {
		topN = defaultTopN
	}

	weights, terms, ok := a.vectorise(texts)
	if !ok {
		return nil
	}

	_, docs := weights.Dims()
	scored := make([]termWeight, len(terms))
	for i, term := range terms {
		var sum float64
		for j := 0; j < docs; j++ {
			sum += weights.At(i, j)
		}
		scored[i] = termWeight{term: term, weight: sum}
	}
	sortByWeight(scored)

	keywords := make([]string, 0, topN)
	for _, tw := range scored {
		if tw.weight <= 0 || len(keywords) == topN {
			break
		}
		keywords = append(keywords, tw.term)
	}
	return keywords
}

// fitCorpus extracts up to nThemes themes from one bank's documents.
func (a *Analyzer) fitCorpus(texts []string, nThemes int) []domain.Theme {
	weights, terms, ok := a.vectorise(texts)
	if !ok {
		return []domain.Theme{}
	}

	filtered, kept := a.filterByDocFreq(weights, terms)
	t, docs := filtered.Dims()

	k := nThemes
	if docs < k {
		k = docs
	}
	if t < k {
		k = t
	}
	if k < nThemes && a.logger != nil {
		a.logger.Debug("corpus too small for requested themes", "requested", nThemes, "feasible", k)
	}
	if k == 0 {
		return []domain.Theme{}
	}

	w, _ := factorise(filtered, k, a.opts.Iterations, a.opts.Seed)
	if w == nil {
		return []domain.Theme{}
	}

	result := make([]domain.Theme, 0, k)
	for j := 0; j < k; j++ {
		scored := make([]termWeight, t)
		for i := 0; i < t; i++ {
			scored[i] = termWeight{term: kept[i], weight: w.At(i, j)}
		}
		sortByWeight(scored)

		theme := make(domain.Theme, 0, a.opts.NTopWords)
		for _, tw := range scored {
			if tw.weight <= 0 || len(theme) == a.opts.NTopWords {
				break
			}
			theme = append(theme, tw.term)
		}
		if len(theme) > 0 {
			result = append(result, theme)
		}
	}

	return result
}

// vectorise builds a TF-IDF term-document matrix over the non-empty
// documents. Returns ok=false when the corpus has no usable vocabulary.
func (a *Analyzer) vectorise(texts []string) (*mat.Dense, []string, bool) {
	docs := make([]string, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) != "" {
			docs = append(docs, text)
		}
	}
	if len(docs) == 0 {
		return nil, nil, false
	}

	vectoriser := nlp.NewCountVectoriser(stopwordList...)
	counts, err := vectoriser.FitTransform(docs...)
	if err != nil || len(vectoriser.Vocabulary) == 0 {
		if err != nil && a.logger != nil {
			a.logger.Warn("vectorisation failed", "error", err)
		}
		return nil, nil, false
	}

	weighted, err := nlp.NewTfidfTransformer().FitTransform(counts)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("tfidf weighting failed", "error", err)
		}
		return nil, nil, false
	}

	terms := make([]string, len(vectoriser.Vocabulary))
	for word, idx := range vectoriser.Vocabulary {
		terms[idx] = word
	}

	return mat.DenseCopyOf(weighted), terms, true
}

// filterByDocFreq drops terms whose document frequency falls outside the
// configured [MinDF, MaxDF] fractions. If the filter would empty the
// vocabulary it is skipped, since a degraded model beats none.
func (a *Analyzer) filterByDocFreq(weights *mat.Dense, terms []string) (*mat.Dense, []string) {
	t, docs := weights.Dims()

	keep := make([]int, 0, t)
	for i := 0; i < t; i++ {
		df := 0
		for j := 0; j < docs; j++ {
			if weights.At(i, j) > 0 {
				df++
			}
		}
		frac := float64(df) / float64(docs)
		if frac >= a.opts.MinDF && frac <= a.opts.MaxDF {
			keep = append(keep, i)
		}
	}

	if len(keep) == 0 || len(keep) == t {
		return weights, terms
	}

	filtered := mat.NewDense(len(keep), docs, nil)
	kept := make([]string, len(keep))
	for row, i := range keep {
		kept[row] = terms[i]
		for j := 0; j < docs; j++ {
			filtered.Set(row, j, weights.At(i, j))
		}
	}
	return filtered, kept
}

type termWeight struct {
	term   string
	weight float64
}

// sortByWeight orders by weight descending with lexicographic tie-breaking,
// keeping theme output stable for a given input and seed.
func sortByWeight(scored []termWeight) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].weight != scored[j].weight {
			return scored[i].weight > scored[j].weight
		}
		return scored[i].term < scored[j].term
	})
}

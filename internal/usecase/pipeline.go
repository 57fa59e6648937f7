package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"ReviewLens/internal/domain"
	"ReviewLens/internal/metrics"
	"ReviewLens/internal/ports"
	"ReviewLens/internal/sample"
	"ReviewLens/internal/sentiment"
	"ReviewLens/internal/textprep"
	"ReviewLens/internal/themes"
)

// CoverageThreshold is the minimum fraction of scored reviews required to
// continue past sentiment computation.
const CoverageThreshold = 0.90

// primaryThemeKeywords is how many keywords of the primary theme are joined
// into each review's identified_theme value.
const primaryThemeKeywords = 5

// Stage tracks pipeline progression; transitions run in fixed order.
type Stage int

const (
	StageInit Stage = iota
	StageLoaded
	StageScored
	StageThemed
	StageAttached
	StageAggregated
	StagePersisted
)

var stageNames = map[Stage]string{
	StageInit:       "init",
	StageLoaded:     "loaded",
	StageScored:     "scored",
	StageThemed:     "themed",
	StageAttached:   "attached",
	StageAggregated: "aggregated",
	StagePersisted:  "persisted",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.ReviewSource
	Repository ports.ReviewRepository
	Sink       ports.ArtifactSink
	Scorer     sentiment.Scorer
	Analyzer   *themes.Analyzer
	Logger     *slog.Logger
	NThemes    int
	SampleSize int
	Seed       int64
}

// Pipeline implements the customer-feedback workflow: load reviews, score
// sentiment, extract themes, attach each review's primary theme, aggregate,
// and persist. It owns the in-memory review collection for the run.
type Pipeline struct {
	source     ports.ReviewSource
	repository ports.ReviewRepository
	sink       ports.ArtifactSink
	scorer     sentiment.Scorer
	analyzer   *themes.Analyzer
	logger     *slog.Logger
	nThemes    int
	sampleSize int
	seed       int64

	stage   Stage
	reviews []domain.Review
	themes  domain.ThemesByBank
	summary []domain.SummaryRow
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:     deps.Source,
		repository: deps.Repository,
		sink:       deps.Sink,
		scorer:     deps.Scorer,
		analyzer:   deps.Analyzer,
		logger:     deps.Logger,
		nThemes:    deps.NThemes,
		sampleSize: deps.SampleSize,
		seed:       deps.Seed,
		stage:      StageInit,
	}
}

// Run executes all stages in order.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.Load(ctx); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := p.ComputeSentiment(ctx); err != nil {
		return fmt.Errorf("compute sentiment: %w", err)
	}
	if err := p.ExtractThemes(); err != nil {
		return fmt.Errorf("extract themes: %w", err)
	}
	if err := p.AttachPrimaryTheme(); err != nil {
		return fmt.Errorf("attach primary theme: %w", err)
	}
	if err := p.Aggregate(); err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	if err := p.Persist(ctx); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// Load fills the working dataset from the configured source, falling back
// to a bounded synthetic dataset when the source is absent or unreadable.
func (p *Pipeline) Load(ctx context.Context) error {
	if err := p.requireStage(StageInit); err != nil {
		return err
	}

	if p.source != nil {
		reviews, err := p.source.LoadReviews(ctx)
		if err == nil {
			p.reviews = reviews
			p.stage = StageLoaded
			p.info("loaded reviews", "count", len(reviews))
			return nil
		}
		p.warn("source unavailable, generating sample data", "error", err, "n", p.sampleSize)
	}

	p.reviews = sample.GenerateReviews(p.sampleSize, p.seed)
	p.stage = StageLoaded
	p.info("generated sample reviews", "count", len(p.reviews))
	return nil
}

// ComputeSentiment preprocesses text, scores every review, and enforces the
// coverage gate. A coverage below threshold is fatal: the run must not
// proceed with silently degraded sentiment output.
func (p *Pipeline) ComputeSentiment(ctx context.Context) error {
	if err := p.requireStage(StageLoaded); err != nil {
		return err
	}

	textprep.CleanReviews(p.reviews, p.logger)

	scored := sentiment.BatchScore(ctx, p.reviews, p.scorer, p.logger)
	coverage := metrics.SentimentCoverage(p.reviews)
	p.info("sentiment computed", "method", p.scorer.Name(), "scored", scored, "coverage", coverage)

	if coverage < CoverageThreshold {
		return &domain.CoverageError{Coverage: coverage, Threshold: CoverageThreshold}
	}

	p.stage = StageScored
	return nil
}

// ExtractThemes fits the per-bank topic models.
func (p *Pipeline) ExtractThemes() error {
	if err := p.requireStage(StageScored); err != nil {
		return err
	}

	fitted, err := p.analyzer.ThemesByBank(p.reviews, p.nThemes)
	if err != nil {
		return err
	}

	p.themes = fitted
	p.stage = StageThemed
	p.info("themes extracted", "banks", len(fitted))
	return nil
}

// AttachPrimaryTheme labels each review with the first theme of its bank in
// model order, joining the top keywords. Reviews of banks without themes
// keep an empty identified theme.
func (p *Pipeline) AttachPrimaryTheme() error {
	if err := p.requireStage(StageThemed); err != nil {
		return err
	}

	for i := range p.reviews {
		p.reviews[i].IdentifiedTheme = primaryTheme(p.themes[p.reviews[i].Bank])
	}

	p.stage = StageAttached
	return nil
}

// Aggregate computes the (bank, rating) sentiment summary.
func (p *Pipeline) Aggregate() error {
	if err := p.requireStage(StageAttached); err != nil {
		return err
	}

	p.summary = metrics.AggregateByBankRating(p.reviews)
	p.stage = StageAggregated
	return nil
}

// Persist writes all run artifacts through the sink and, when configured,
// upserts the annotated rows into the repository.
func (p *Pipeline) Persist(ctx context.Context) error {
	if err := p.requireStage(StageAggregated); err != nil {
		return err
	}
	if p.sink == nil {
		return fmt.Errorf("artifact sink is not configured")
	}

	if err := p.sink.WriteAnnotated(ctx, p.reviews); err != nil {
		return fmt.Errorf("write annotated reviews: %w", err)
	}
	if err := p.sink.WriteThemes(ctx, p.themes); err != nil {
		return fmt.Errorf("write themes: %w", err)
	}
	if err := p.sink.WriteSummary(ctx, p.summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := p.sink.WriteThemeCounts(ctx, metrics.ThemeCounts(p.reviews)); err != nil {
		return fmt.Errorf("write theme counts: %w", err)
	}
	if err := p.sink.WriteMetrics(ctx, p.runMetrics()); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}

	if p.repository != nil {
		if err := p.repository.SaveAnnotated(ctx, p.reviews); err != nil {
			return fmt.Errorf("save annotated reviews: %w", err)
		}
	}

	p.stage = StagePersisted
	p.info("artifacts persisted", "reviews", len(p.reviews))
	return nil
}

// Reviews exposes the working dataset; the pipeline retains ownership.
func (p *Pipeline) Reviews() []domain.Review {
	return p.reviews
}

// Themes exposes the extracted theme mapping.
func (p *Pipeline) Themes() domain.ThemesByBank {
	return p.themes
}

// Summary exposes the aggregate rows computed by Aggregate.
func (p *Pipeline) Summary() []domain.SummaryRow {
	return p.summary
}

func (p *Pipeline) runMetrics() domain.RunMetrics {
	banks := make([]string, 0, len(p.themes))
	for bank := range p.themes {
		banks = append(banks, bank)
	}
	sort.Strings(banks)

	return domain.RunMetrics{
		TotalReviews:      len(p.reviews),
		SentimentCoverage: metrics.SentimentCoverage(p.reviews),
		Banks:             banks,
	}
}

func (p *Pipeline) requireStage(want Stage) error {
	if p.stage != want {
		return fmt.Errorf("pipeline stage is %s, want %s", p.stage, want)
	}
	return nil
}

// primaryTheme joins the first keywords of the bank's first theme in model
// order. Picking the first component rather than the heaviest one matches
// the established reporting behavior.
func primaryTheme(bankThemes []domain.Theme) string {
	if len(bankThemes) == 0 {
		return ""
	}
	keywords := bankThemes[0]
	if len(keywords) > primaryThemeKeywords {
		keywords = keywords[:primaryThemeKeywords]
	}
	return strings.Join(keywords, ", ")
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

// Package batch fans site analyses out over a bounded pool and aggregates
// the results into a grader.BatchReport.
package batch

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JakeFAU/sitegrade/internal/grader"
	"github.com/JakeFAU/sitegrade/internal/score"
)

// Default configuration values.
const (
	DefaultConcurrency          = 5
	DefaultTopThreshold         = 8.0
	DefaultImprovementThreshold = 5.0
)

// Config controls Coordinator behavior.
type Config struct {
	// Concurrency caps the number of analyses in flight.
	Concurrency int
	// TopThreshold is the inclusive overall score for a top performer.
	TopThreshold float64
	// ImprovementThreshold is the inclusive overall score at or below which a
	// site needs improvement.
	ImprovementThreshold float64
}

// DefaultConfig returns a Config populated with the default values.
func DefaultConfig() Config {
	return Config{
		Concurrency:          DefaultConcurrency,
		TopThreshold:         DefaultTopThreshold,
		ImprovementThreshold: DefaultImprovementThreshold,
	}
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithClock overrides the clock used for StartedAt and Elapsed.
func WithClock(clock grader.Clock) Option {
	return func(c *Coordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithIDGenerator overrides the report ID source.
func WithIDGenerator(ids grader.IDGenerator) Option {
	return func(c *Coordinator) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// WithObserver routes batch measurements to obs.
func WithObserver(obs grader.Observer) Option {
	return func(c *Coordinator) {
		if obs != nil {
			c.observer = obs
		}
	}
}

// WithTracer sets the tracer used for batch spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Coordinator) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// Coordinator runs an Analyzer over many URLs.
type Coordinator struct {
	analyzer grader.Analyzer
	cfg      Config
	logger   *zap.Logger
	clock    grader.Clock
	ids      grader.IDGenerator
	observer grader.Observer
	tracer   trace.Tracer
}

// New constructs a Coordinator. A non-positive Concurrency falls back to
// DefaultConcurrency; thresholds are used as given, zero included.
func New(analyzer grader.Analyzer, cfg Config, logger *zap.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	c := &Coordinator{
		analyzer: analyzer,
		cfg:      cfg,
		logger:   logger.Named("batch"),
		clock:    grader.SystemClock{},
		ids:      reportIDs{},
		observer: grader.NopObserver{},
		tracer:   noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeBatch analyzes every URL and blocks until all of them resolve. The
// report holds exactly one result per input URL, in input order. Failures
// never abort the batch.
func (c *Coordinator) AnalyzeBatch(ctx context.Context, urls []string) grader.BatchReport {
	ctx, span := c.tracer.Start(ctx, "batch.AnalyzeBatch", trace.WithAttributes(
		attribute.Int("batch.size", len(urls)),
		attribute.Int("batch.concurrency", c.cfg.Concurrency),
	))
	defer span.End()

	start := c.clock.Now()
	reportID, err := c.ids.NewID()
	if err != nil {
		c.logger.Warn("report id unavailable", zap.Error(err))
	}
	c.logger.Info("starting batch",
		zap.String("report_id", reportID),
		zap.Int("total_sites", len(urls)),
		zap.Int("concurrency", c.cfg.Concurrency),
	)

	results := make([]grader.SiteResult, len(urls))
	var g errgroup.Group
	g.SetLimit(c.cfg.Concurrency)
	for i, url := range urls {
		g.Go(func() error {
			results[i] = c.analyzeOne(ctx, url)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors

	report := c.aggregate(results)
	report.ID = reportID
	report.StartedAt = start
	report.Elapsed = c.clock.Now().Sub(start)

	span.SetAttributes(attribute.Int("batch.successes", report.SuccessCount))
	c.logger.Info("batch complete",
		zap.String("report_id", reportID),
		zap.Int("total_sites", report.TotalCount),
		zap.Int("successful_analyses", report.SuccessCount),
		zap.Duration("elapsed", report.Elapsed),
	)
	c.observer.ObserveBatch(report)
	return report
}

func (c *Coordinator) analyzeOne(ctx context.Context, url string) (result grader.SiteResult) {
	defer func() {
		if r := recover(); r != nil {
			normalized := grader.NormalizeURL(url)
			c.logger.Error("analysis task panicked", zap.String("url", normalized), zap.Any("panic", r))
			result = grader.NewFailure(normalized, grader.ErrorKindUnexpected, &grader.AnalysisError{
				Kind: grader.ErrorKindUnexpected,
				URL:  normalized,
				Err:  fmt.Errorf("panic during analysis: %v", r),
			})
		}
	}()
	return c.analyzer.Analyze(ctx, url)
}

func (c *Coordinator) aggregate(results []grader.SiteResult) grader.BatchReport {
	report := grader.BatchReport{
		TotalCount:       len(results),
		Results:          results,
		TopPerformers:    make([]grader.SiteResult, 0),
		NeedsImprovement: make([]grader.SiteResult, 0),
	}
	scores := make([]grader.ScoreSet, 0, len(results))
	for _, r := range results {
		if !r.OK() {
			continue
		}
		scores = append(scores, *r.Scores)
		if r.Scores.Overall >= c.cfg.TopThreshold {
			report.TopPerformers = append(report.TopPerformers, r)
		}
		if r.Scores.Overall <= c.cfg.ImprovementThreshold {
			report.NeedsImprovement = append(report.NeedsImprovement, r)
		}
	}
	report.SuccessCount = len(scores)
	report.Average = score.Average(scores)
	return report
}

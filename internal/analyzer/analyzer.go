// Package analyzer grades a single site: fetch, parse, extract metrics and
// score them. Every call yields exactly one grader.SiteResult.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/JakeFAU/sitegrade/internal/extract"
	"github.com/JakeFAU/sitegrade/internal/grader"
	"github.com/JakeFAU/sitegrade/internal/score"
)

const (
	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent mimics a desktop browser so sites serve their normal markup.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

var errMissingRoot = errors.New("document has no root element")

// Config controls Analyzer behavior.
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithObserver routes fetch and result measurements to obs.
func WithObserver(obs grader.Observer) Option {
	return func(a *Analyzer) {
		if obs != nil {
			a.observer = obs
		}
	}
}

// WithTracer sets the tracer used for analysis spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Analyzer) {
		if tracer != nil {
			a.tracer = tracer
		}
	}
}

// WithClock overrides the clock used to measure load time.
func WithClock(clock grader.Clock) Option {
	return func(a *Analyzer) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// Analyzer implements grader.Analyzer. It is safe for concurrent use as long
// as its Fetcher and Parser are.
type Analyzer struct {
	fetcher   grader.Fetcher
	parser    grader.Parser
	extractor *extract.Extractor
	cfg       Config
	logger    *zap.Logger
	observer  grader.Observer
	tracer    trace.Tracer
	clock     grader.Clock
}

// New constructs an Analyzer.
func New(fetcher grader.Fetcher, parser grader.Parser, cfg Config, logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	a := &Analyzer{
		fetcher:   fetcher,
		parser:    parser,
		extractor: extract.New(),
		cfg:       cfg,
		logger:    logger.Named("analyzer"),
		observer:  grader.NopObserver{},
		tracer:    noop.NewTracerProvider().Tracer(""),
		clock:     grader.SystemClock{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze grades one URL. Transport, parse and unexpected failures, including
// panics, are converted into a failure result rather than returned.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (result grader.SiteResult) {
	url := grader.NormalizeURL(rawURL)
	ctx, span := a.tracer.Start(ctx, "analyzer.Analyze", trace.WithAttributes(attribute.String("site.url", url)))
	defer func() {
		if r := recover(); r != nil {
			err := &grader.AnalysisError{
				Kind: grader.ErrorKindUnexpected,
				URL:  url,
				Err:  fmt.Errorf("panic during analysis: %v", r),
			}
			a.logger.Error("analysis panicked", zap.String("url", url), zap.Any("panic", r))
			result = grader.NewFailure(url, grader.ErrorKindUnexpected, err)
		}
		a.finishSpan(span, result)
		a.observer.ObserveResult(result)
	}()

	scores, metrics, err := a.run(ctx, url)
	if err != nil {
		kind := grader.KindOf(err)
		a.logger.Warn("analysis failed",
			zap.String("url", url),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return grader.NewFailure(url, kind, err)
	}
	a.logger.Debug("analysis complete", zap.String("url", url), zap.Float64("overall", scores.Overall))
	return grader.NewSuccess(url, scores, metrics)
}

func (a *Analyzer) run(ctx context.Context, url string) (grader.ScoreSet, grader.RawMetrics, error) {
	resp, loadTime, err := a.fetch(ctx, url)
	if err != nil {
		return grader.ScoreSet{}, grader.RawMetrics{}, err
	}

	doc, err := a.parse(ctx, url, resp.Body)
	if err != nil {
		return grader.ScoreSet{}, grader.RawMetrics{}, err
	}

	metrics := a.extractor.Extract(extract.Input{
		Response: resp,
		LoadTime: loadTime,
		Document: doc,
	})
	return score.Compute(metrics), metrics, nil
}

func (a *Analyzer) fetch(ctx context.Context, url string) (grader.FetchResponse, time.Duration, error) {
	ctx, span := a.tracer.Start(ctx, "analyzer.fetch")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	start := a.clock.Now()
	resp, err := a.fetcher.Fetch(ctx, grader.FetchRequest{
		URL:     url,
		Headers: http.Header{"User-Agent": {a.cfg.UserAgent}},
		Timeout: a.cfg.Timeout,
	})
	elapsed := a.clock.Now().Sub(start)
	if err != nil {
		span.RecordError(err)
		return grader.FetchResponse{}, 0, &grader.AnalysisError{Kind: grader.ErrorKindTransport, URL: url, Err: err}
	}

	loadTime := resp.Duration
	if loadTime <= 0 {
		loadTime = elapsed
	}
	a.observer.ObserveFetch(url, resp.StatusCode, len(resp.Body), loadTime)
	span.SetAttributes(
		attribute.Int("http.status_code", resp.StatusCode),
		attribute.Int("http.response_size", len(resp.Body)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := grader.StatusError(resp.StatusCode)
		span.RecordError(err)
		return grader.FetchResponse{}, 0, &grader.AnalysisError{Kind: grader.ErrorKindTransport, URL: url, Err: err}
	}
	return resp, loadTime, nil
}

func (a *Analyzer) parse(ctx context.Context, url string, body []byte) (grader.Document, error) {
	_, span := a.tracer.Start(ctx, "analyzer.parse")
	defer span.End()

	doc, err := a.parser.Parse(body)
	if err != nil {
		span.RecordError(err)
		return nil, &grader.AnalysisError{Kind: grader.ErrorKindParse, URL: url, Err: err}
	}
	if _, ok := doc.Root(); !ok {
		span.RecordError(errMissingRoot)
		return nil, &grader.AnalysisError{Kind: grader.ErrorKindParse, URL: url, Err: errMissingRoot}
	}
	return doc, nil
}

func (a *Analyzer) finishSpan(span trace.Span, result grader.SiteResult) {
	defer span.End()
	span.SetAttributes(attribute.String("site.outcome", string(result.Outcome)))
	if result.OK() {
		span.SetAttributes(attribute.Float64("site.overall_score", result.Scores.Overall))
		return
	}
	span.SetAttributes(attribute.String("site.error_kind", string(result.ErrorKind)))
	span.SetStatus(codes.Error, result.Error)
}

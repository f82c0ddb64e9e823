package grader

import (
	"net/http"
	"time"
)

// Category names a scoring dimension.
type Category string

// Scoring categories, in report order.
const (
	CategoryPerformance   Category = "performance"
	CategoryDesign        Category = "design"
	CategorySEO           Category = "seo"
	CategoryAccessibility Category = "accessibility"
)

// Categories lists every scoring category in report order.
var Categories = []Category{
	CategoryPerformance,
	CategoryDesign,
	CategorySEO,
	CategoryAccessibility,
}

// MetricGroup maps a metric name to its 0-10 sub-score.
type MetricGroup map[string]float64

// RawMetrics holds the per-category sub-scores produced by the extractor.
type RawMetrics struct {
	Performance   MetricGroup `json:"performance" yaml:"performance"`
	Design        MetricGroup `json:"design" yaml:"design"`
	SEO           MetricGroup `json:"seo" yaml:"seo"`
	Accessibility MetricGroup `json:"accessibility" yaml:"accessibility"`
}

// Group returns the metric group for a category, or nil if unknown.
func (m RawMetrics) Group(c Category) MetricGroup {
	switch c {
	case CategoryPerformance:
		return m.Performance
	case CategoryDesign:
		return m.Design
	case CategorySEO:
		return m.SEO
	case CategoryAccessibility:
		return m.Accessibility
	default:
		return nil
	}
}

// ScoreSet captures the category scores and the overall score for a site.
type ScoreSet struct {
	Performance   float64 `json:"performance_score" yaml:"performance_score"`
	Design        float64 `json:"design_score" yaml:"design_score"`
	SEO           float64 `json:"seo_score" yaml:"seo_score"`
	Accessibility float64 `json:"accessibility_score" yaml:"accessibility_score"`
	Overall       float64 `json:"overall_score" yaml:"overall_score"`
}

// Category returns the score for a category, or 0 if unknown.
func (s ScoreSet) Category(c Category) float64 {
	switch c {
	case CategoryPerformance:
		return s.Performance
	case CategoryDesign:
		return s.Design
	case CategorySEO:
		return s.SEO
	case CategoryAccessibility:
		return s.Accessibility
	default:
		return 0
	}
}

// Outcome tags a SiteResult as a success or a failure.
type Outcome string

// Outcome values.
const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// SiteResult is the single result produced for one input URL. Build it with
// NewSuccess or NewFailure; Scores and Metrics are only set on success, ErrorKind
// and Error only on failure.
type SiteResult struct {
	URL       string      `json:"url" yaml:"url"`
	Outcome   Outcome     `json:"outcome" yaml:"outcome"`
	Scores    *ScoreSet   `json:"scores,omitempty" yaml:"scores,omitempty"`
	Metrics   *RawMetrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	ErrorKind ErrorKind   `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error     string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewSuccess builds a successful result.
func NewSuccess(url string, scores ScoreSet, metrics RawMetrics) SiteResult {
	return SiteResult{
		URL:     url,
		Outcome: OutcomeSuccess,
		Scores:  &scores,
		Metrics: &metrics,
	}
}

// NewFailure builds a failed result from an error. A nil error still yields a
// failure with a generic message.
func NewFailure(url string, kind ErrorKind, err error) SiteResult {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if kind == "" {
		kind = ErrorKindUnexpected
	}
	return SiteResult{
		URL:       url,
		Outcome:   OutcomeFailure,
		ErrorKind: kind,
		Error:     msg,
	}
}

// OK reports whether the result is a success carrying scores.
func (r SiteResult) OK() bool {
	return r.Outcome == OutcomeSuccess && r.Scores != nil
}

// BatchReport aggregates the results of one batch invocation.
type BatchReport struct {
	ID               string        `json:"id" yaml:"id"`
	StartedAt        time.Time     `json:"started_at" yaml:"started_at"`
	TotalCount       int           `json:"total_sites" yaml:"total_sites"`
	SuccessCount     int           `json:"successful_analyses" yaml:"successful_analyses"`
	Elapsed          time.Duration `json:"elapsed" yaml:"elapsed"`
	Average          *ScoreSet     `json:"average_scores,omitempty" yaml:"average_scores,omitempty"`
	Results          []SiteResult  `json:"detailed_results" yaml:"detailed_results"`
	TopPerformers    []SiteResult  `json:"top_performers" yaml:"top_performers"`
	NeedsImprovement []SiteResult  `json:"needs_improvement" yaml:"needs_improvement"`
}

// FailureCount returns the number of failed analyses.
func (r BatchReport) FailureCount() int {
	return r.TotalCount - r.SuccessCount
}

// FetchRequest captures everything needed to fetch one page.
type FetchRequest struct {
	URL     string
	Headers http.Header
	Timeout time.Duration
}

// FetchResponse is returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	// Duration is the wall-clock time from request start to full body read.
	Duration time.Duration
	// TTFB is the time until the first response byte arrived.
	TTFB time.Duration
}

// Package metrics exposes Prometheus collectors for site analysis.
package metrics

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

var scoreBuckets = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

// Recorder implements grader.Observer on top of Prometheus collectors. It is
// safe for concurrent use.
type Recorder struct {
	fetchesTotal     *prometheus.CounterVec
	fetchBytesTotal  *prometheus.CounterVec
	fetchDuration    prometheus.Histogram
	resultsTotal     *prometheus.CounterVec
	overallScore     prometheus.Histogram
	categoryScore    *prometheus.HistogramVec
	batchesTotal     prometheus.Counter
	batchDuration    prometheus.Histogram
	batchSuccessRate prometheus.Gauge
}

// NewRecorder registers the collectors with reg. A nil reg gets a private
// registry so multiple recorders never collide.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Recorder{
		fetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitegrade_fetches_total",
				Help: "Total number of page fetches, labeled by site and status code.",
			},
			[]string{"site", "code"},
		),
		fetchBytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitegrade_fetch_bytes_total",
				Help: "Total number of body bytes fetched, labeled by site.",
			},
			[]string{"site"},
		),
		fetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitegrade_fetch_duration_seconds",
				Help:    "Histogram of page fetch latencies.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
			},
		),
		resultsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitegrade_results_total",
				Help: "Total number of site results, labeled by outcome and error kind.",
			},
			[]string{"outcome", "kind"},
		),
		overallScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitegrade_overall_score",
				Help:    "Distribution of overall site scores.",
				Buckets: scoreBuckets,
			},
		),
		categoryScore: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitegrade_category_score",
				Help:    "Distribution of category scores, labeled by category.",
				Buckets: scoreBuckets,
			},
			[]string{"category"},
		),
		batchesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sitegrade_batches_total",
				Help: "Total number of batches analyzed.",
			},
		),
		batchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitegrade_batch_duration_seconds",
				Help:    "Histogram of whole-batch wall-clock durations.",
				Buckets: []float64{1, 2, 5, 10, 30, 60, 120},
			},
		),
		batchSuccessRate: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitegrade_last_batch_success_ratio",
				Help: "Share of successful analyses in the most recent batch.",
			},
		),
	}
}

// ObserveFetch implements grader.Observer.
func (r *Recorder) ObserveFetch(site string, statusCode int, bytesFetched int, duration time.Duration) {
	host := SanitizeSite(site)
	r.fetchesTotal.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	if bytesFetched > 0 {
		r.fetchBytesTotal.WithLabelValues(host).Add(float64(bytesFetched))
	}
	r.fetchDuration.Observe(duration.Seconds())
}

// ObserveResult implements grader.Observer.
func (r *Recorder) ObserveResult(result grader.SiteResult) {
	r.resultsTotal.WithLabelValues(string(result.Outcome), string(result.ErrorKind)).Inc()
	if !result.OK() {
		return
	}
	r.overallScore.Observe(result.Scores.Overall)
	for _, c := range grader.Categories {
		r.categoryScore.WithLabelValues(string(c)).Observe(result.Scores.Category(c))
	}
}

// ObserveBatch implements grader.Observer.
func (r *Recorder) ObserveBatch(report grader.BatchReport) {
	r.batchesTotal.Inc()
	r.batchDuration.Observe(report.Elapsed.Seconds())
	if report.TotalCount > 0 {
		r.batchSuccessRate.Set(float64(report.SuccessCount) / float64(report.TotalCount))
	}
}

// SanitizeSite sanitizes a URL to extract a lowercase hostname.
// It returns "unknown" if the URL is invalid.
func SanitizeSite(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// WriteText dumps every metric family in g using the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

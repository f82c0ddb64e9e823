package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

func sampleReport() grader.BatchReport {
	good := grader.NewSuccess("https://good.example",
		grader.ScoreSet{Performance: 9, Design: 8.5, SEO: 9.2, Accessibility: 8.8, Overall: 8.88},
		grader.RawMetrics{
			Performance:   grader.MetricGroup{"load_time": 8, "response_size": 10, "ttfb": 8, "compression": 10},
			Design:        grader.MetricGroup{"color_contrast": 10, "typography": 7, "layout_structure": 9, "responsive_design": 7, "visual_hierarchy": 10},
			SEO:           grader.MetricGroup{"title": 10, "meta_description": 10, "headings": 10, "img_alt": 6.67, "canonical": 10},
			Accessibility: grader.MetricGroup{"lang_attribute": 10, "aria_landmarks": 8, "form_labels": 10, "alt_texts": 6.67, "heading_structure": 10},
		})
	weak := grader.NewSuccess("https://weak.example",
		grader.ScoreSet{Performance: 8, Design: 3, SEO: 4, Accessibility: 5, Overall: 5},
		grader.RawMetrics{
			Performance:   grader.MetricGroup{"load_time": 8},
			Design:        grader.MetricGroup{"typography": 3},
			SEO:           grader.MetricGroup{"title": 4},
			Accessibility: grader.MetricGroup{"lang_attribute": 5},
		})
	failed := grader.NewFailure("https://down.example", grader.ErrorKindTransport, errors.New("dial tcp | refused"))

	return grader.BatchReport{
		ID:               "0190a4f2-7c1e-7000-8000-000000000001",
		StartedAt:        time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		TotalCount:       3,
		SuccessCount:     2,
		Elapsed:          1234 * time.Millisecond,
		Average:          &grader.ScoreSet{Performance: 8.5, Design: 5.75, SEO: 6.6, Accessibility: 6.9, Overall: 6.94},
		Results:          []grader.SiteResult{good, weak, failed},
		TopPerformers:    []grader.SiteResult{good},
		NeedsImprovement: []grader.SiteResult{weak},
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  Class
	}{
		{10, ClassGood},
		{7, ClassGood},
		{6.99, ClassAverage},
		{5, ClassAverage},
		{4.99, ClassPoor},
		{0, ClassPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %v", tt.score)
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	recs := Recommendations(grader.ScoreSet{Performance: 6.99, Design: 7, SEO: 2, Accessibility: 9})
	assert.Equal(t, []string{
		"Improve performance by optimizing load times and resource compression",
		"Improve SEO by adding meta descriptions, proper headings, and canonical tags",
	}, recs)

	assert.Empty(t, Recommendations(grader.ScoreSet{Performance: 7, Design: 7, SEO: 7, Accessibility: 7}))
}

func TestFormatMetrics(t *testing.T) {
	t.Parallel()

	got := FormatMetrics(grader.CategoryPerformance, grader.MetricGroup{
		"compression": 10, "ttfb": 8, "load_time": 6, "response_size": 10, "zz_custom": 1.5,
	})
	assert.Equal(t, "Load Time: 6, Response Size: 10, Ttfb: 8, Compression: 10, Zz Custom: 1.5", got)
	assert.Empty(t, FormatMetrics(grader.CategorySEO, nil))
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Meta Description", TitleCase("meta_description"))
	assert.Equal(t, "Img Alt", TitleCase("img_alt"))
	assert.Equal(t, "Title", TitleCase("title"))
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	for format, want := range map[string]any{
		"markdown": &MarkdownWriter{},
		"MD":       &MarkdownWriter{},
		"json":     &JSONWriter{},
		"yaml":     &YAMLWriter{},
		"yml":      &YAMLWriter{},
	} {
		w, err := NewWriter(format, &bytes.Buffer{})
		require.NoError(t, err, format)
		assert.IsType(t, want, w, format)
	}

	_, err := NewWriter("html", &bytes.Buffer{})
	require.ErrorContains(t, err, "unknown report format")
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewMarkdownWriter(&buf).Write(sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "# Website Analysis Report")
	assert.Contains(t, out, "| Sites Analyzed | 2 / 3 |")
	assert.Contains(t, out, "| Analysis Time | 1.234s |")
	assert.Contains(t, out, "| Generated | 2026-03-04 05:06:07 UTC |")
	assert.Contains(t, out, "1 site(s) could not be analyzed.")
	assert.Contains(t, out, "| Performance | 8.5/10 | good |")
	assert.Contains(t, out, "| Design | 5.8/10 | average |")
	assert.Contains(t, out, "| **Overall** | 6.9/10 | average |")
	assert.Contains(t, out, "| https://good.example | 9.0 | 8.5 | 9.2 | 8.8 | 8.9 |")
	assert.Contains(t, out, "**SEO Metrics:** Title: 10, Meta Description: 10, Headings: 10, Img Alt: 6.67, Canonical: 10")
	assert.Contains(t, out, `| https://down.example | transport | dial tcp \| refused |`)
	assert.Contains(t, out, "- https://good.example (8.9)")
	assert.Contains(t, out, "## Recommendations")
	assert.Contains(t, out, "Enhance design with better typography, layout structure, and visual hierarchy")
	assert.Contains(t, out, "Enhance accessibility with proper ARIA landmarks, form labels, and heading structure")
	assert.NotContains(t, out, "Improve performance by")
}

func TestMarkdownWriterAllFailed(t *testing.T) {
	t.Parallel()

	report := grader.BatchReport{
		TotalCount: 1,
		Results: []grader.SiteResult{
			grader.NewFailure("https://down.example", grader.ErrorKindParse, grader.ErrEmptyDocument),
		},
	}
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownWriter(&buf).Write(report))
	out := buf.String()

	assert.Contains(t, out, "| Sites Analyzed | 0 / 1 |")
	assert.Contains(t, out, "there are no averages")
	assert.Contains(t, out, "No successful analyses.")
	assert.Contains(t, out, "| https://down.example | parse | empty document |")
	assert.NotContains(t, out, "## Recommendations")
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "0190a4f2-7c1e-7000-8000-000000000001", decoded["id"])
	assert.InDelta(t, 3, decoded["total_sites"], 0)
	assert.InDelta(t, 2, decoded["successful_analyses"], 0)
	assert.Equal(t, "1.234s", decoded["analysis_time"])

	avg, ok := decoded["average_scores"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 6.94, avg["overall_score"], 1e-9)

	results, ok := decoded["detailed_results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 3)
	failed := results[2].(map[string]any)
	assert.Equal(t, "failure", failed["outcome"])
	assert.Equal(t, "transport", failed["error_kind"])
	assert.NotContains(t, failed, "scores")
}

func TestJSONWriterEmptyReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(grader.BatchReport{}))
	out := buf.String()
	assert.Contains(t, out, `"detailed_results": []`)
	assert.Contains(t, out, `"top_performers": []`)
	assert.NotContains(t, out, "average_scores")
}

func TestYAMLWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewYAMLWriter(&buf).Write(sampleReport()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "0190a4f2-7c1e-7000-8000-000000000001", decoded["id"])
	assert.Equal(t, 3, decoded["total_sites"])
	assert.Equal(t, "1.234s", decoded["analysis_time"])

	top, ok := decoded["top_performers"].([]any)
	require.True(t, ok)
	require.Len(t, top, 1)
	assert.Equal(t, "https://good.example", top[0].(map[string]any)["url"])
}

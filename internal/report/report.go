package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/JakeFAU/sitegrade/internal/extract"
	"github.com/JakeFAU/sitegrade/internal/grader"
)

// Writer renders a batch report.
type Writer interface {
	Write(report grader.BatchReport) error
}

// Output formats accepted by NewWriter.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// NewWriter returns the Writer for format.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	case FormatYAML, "yml":
		return NewYAMLWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Class buckets a score for display.
type Class string

// Score classes.
const (
	ClassGood    Class = "good"
	ClassAverage Class = "average"
	ClassPoor    Class = "poor"
)

// Classify returns good for scores of 7 and above, average from 5, poor below.
func Classify(score float64) Class {
	switch {
	case score >= 7:
		return ClassGood
	case score >= 5:
		return ClassAverage
	default:
		return ClassPoor
	}
}

const recommendationThreshold = 7.0

var recommendationText = map[grader.Category]string{
	grader.CategoryPerformance:   "Improve performance by optimizing load times and resource compression",
	grader.CategoryDesign:        "Enhance design with better typography, layout structure, and visual hierarchy",
	grader.CategorySEO:           "Improve SEO by adding meta descriptions, proper headings, and canonical tags",
	grader.CategoryAccessibility: "Enhance accessibility with proper ARIA landmarks, form labels, and heading structure",
}

// Recommendations lists one suggestion per category scoring below 7, in
// category order.
func Recommendations(scores grader.ScoreSet) []string {
	var out []string
	for _, c := range grader.Categories {
		if scores.Category(c) < recommendationThreshold {
			out = append(out, recommendationText[c])
		}
	}
	return out
}

// FormatMetrics renders a metric group as "Load Time: 8, Ttfb: 10" in the
// extractor's metric order. Unknown metrics follow in name order.
func FormatMetrics(c grader.Category, group grader.MetricGroup) string {
	parts := make([]string, 0, len(group))
	seen := make(map[string]bool, len(group))
	for _, name := range extract.MetricNames[c] {
		v, ok := group[name]
		if !ok {
			continue
		}
		seen[name] = true
		parts = append(parts, TitleCase(name)+": "+FormatMetricValue(v))
	}
	var extra []string
	for name := range group {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		parts = append(parts, TitleCase(name)+": "+FormatMetricValue(group[name]))
	}
	return strings.Join(parts, ", ")
}

// FormatMetricValue prints v with the fewest digits that round-trip.
func FormatMetricValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TitleCase turns snake_case into "Title Case".
func TitleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func categoryLabel(c grader.Category) string {
	if c == grader.CategorySEO {
		return "SEO"
	}
	return TitleCase(string(c))
}

// Package score turns raw metric groups into category and overall scores.
package score

import (
	"slices"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

// Category returns the mean of the group's values rounded to two decimals.
// Metric groups are fixed and never empty; an empty group is a programming
// error and panics.
func Category(group grader.MetricGroup) float64 {
	if len(group) == 0 {
		panic("score: empty metric group")
	}
	// Summing in key order keeps results bit-identical across runs.
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	slices.Sort(names)
	sum := 0.0
	for _, name := range names {
		sum += grader.Clamp(group[name])
	}
	return grader.Round2(sum / float64(len(group)))
}

// Compute scores every category and derives the overall score as the mean of
// the four category scores.
func Compute(metrics grader.RawMetrics) grader.ScoreSet {
	set := grader.ScoreSet{
		Performance:   Category(metrics.Performance),
		Design:        Category(metrics.Design),
		SEO:           Category(metrics.SEO),
		Accessibility: Category(metrics.Accessibility),
	}
	set.Overall = Overall(set)
	return set
}

// Overall averages the four category scores of set.
func Overall(set grader.ScoreSet) float64 {
	sum := 0.0
	for _, c := range grader.Categories {
		sum += set.Category(c)
	}
	return grader.Round2(sum / float64(len(grader.Categories)))
}

// Average returns the field-wise mean of sets, each rounded to two decimals.
// It returns nil when sets is empty.
func Average(sets []grader.ScoreSet) *grader.ScoreSet {
	if len(sets) == 0 {
		return nil
	}
	var sum grader.ScoreSet
	for _, s := range sets {
		sum.Performance += s.Performance
		sum.Design += s.Design
		sum.SEO += s.SEO
		sum.Accessibility += s.Accessibility
		sum.Overall += s.Overall
	}
	n := float64(len(sets))
	return &grader.ScoreSet{
		Performance:   grader.Round2(sum.Performance / n),
		Design:        grader.Round2(sum.Design / n),
		SEO:           grader.Round2(sum.SEO / n),
		Accessibility: grader.Round2(sum.Accessibility / n),
		Overall:       grader.Round2(sum.Overall / n),
	}
}

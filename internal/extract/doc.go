// Package extract computes the raw per-category sub-scores for a fetched page.
//
// Performance metrics are rated from response timing and size through threshold
// ladders; design, SEO and accessibility metrics are static markup heuristics
// over a grader.Document. Every value lands in [0,10].
package extract

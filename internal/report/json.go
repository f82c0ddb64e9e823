package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

// document adds human-readable fields to the serialized report.
type document struct {
	grader.BatchReport `yaml:",inline"`
	AnalysisTime       string `json:"analysis_time" yaml:"analysis_time"`
}

func newDocument(report grader.BatchReport) document {
	if report.Results == nil {
		report.Results = []grader.SiteResult{}
	}
	if report.TopPerformers == nil {
		report.TopPerformers = []grader.SiteResult{}
	}
	if report.NeedsImprovement == nil {
		report.NeedsImprovement = []grader.SiteResult{}
	}
	return document{BatchReport: report, AnalysisTime: report.Elapsed.String()}
}

// JSONWriter outputs reports as indented JSON.
type JSONWriter struct {
	output io.Writer
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

// Write renders the report.
func (w *JSONWriter) Write(report grader.BatchReport) error {
	enc := json.NewEncoder(w.output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(report)); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

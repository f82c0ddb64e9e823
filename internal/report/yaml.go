package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

// YAMLWriter outputs reports as YAML.
type YAMLWriter struct {
	output io.Writer
}

// NewYAMLWriter creates a YAMLWriter that outputs to the given writer.
func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{output: output}
}

// Write renders the report.
func (w *YAMLWriter) Write(report grader.BatchReport) error {
	enc := yaml.NewEncoder(w.output)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(report)); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush yaml report: %w", err)
	}
	return nil
}

// Package report renders a grader.BatchReport for the command line.
//
// Three writers share the Writer interface:
//   - MarkdownWriter: summary tables, per-site metric details and recommendations
//   - JSONWriter: the full report as indented JSON
//   - YAMLWriter: the full report as YAML
//
// Writers only write to the io.Writer they are given; persisting reports is
// left to the caller.
package report

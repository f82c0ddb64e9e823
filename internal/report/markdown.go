package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"

	"github.com/JakeFAU/sitegrade/internal/grader"
)

// MarkdownWriter outputs reports in Markdown format.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the report.
func (w *MarkdownWriter) Write(report grader.BatchReport) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAverages(md, report)
	w.writeResults(md, report)
	w.writeFailures(md, report)
	w.writeTopPerformers(md, report)
	w.writeRecommendations(md, report)

	if err := md.Build(); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report grader.BatchReport) {
	md.H1("Website Analysis Report")
	md.PlainText("")

	rows := [][]string{}
	if report.ID != "" {
		rows = append(rows, []string{"Report ID", "`" + report.ID + "`"})
	}
	if !report.StartedAt.IsZero() {
		rows = append(rows, []string{"Generated", report.StartedAt.Format("2006-01-02 15:04:05 MST")})
	}
	rows = append(rows,
		[]string{"Analysis Time", report.Elapsed.Round(time.Millisecond).String()},
		[]string{"Sites Analyzed", fmt.Sprintf("%d / %d", report.SuccessCount, report.TotalCount)},
	)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if failed := report.FailureCount(); failed > 0 {
		md.Warningf("%d site(s) could not be analyzed.", failed)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeAverages(md *markdown.Markdown, report grader.BatchReport) {
	md.H2("Average Scores")
	md.PlainText("")

	if report.Average == nil {
		md.Note("No site was analyzed successfully, so there are no averages.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(grader.Categories)+1)
	for _, c := range grader.Categories {
		rows = append(rows, scoreRow(categoryLabel(c), report.Average.Category(c)))
	}
	overall := scoreRow("Overall", report.Average.Overall)
	overall[0] = "**Overall**"
	rows = append(rows, overall)

	md.Table(markdown.TableSet{
		Header:    []string{"Category", "Score", "Rating"},
		Rows:      rows,
		Alignment: []markdown.TableAlignment{markdown.AlignLeft, markdown.AlignRight, markdown.AlignCenter},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report grader.BatchReport) {
	md.H2("Detailed Results")
	md.PlainText("")

	var successes []grader.SiteResult
	for _, r := range report.Results {
		if r.OK() {
			successes = append(successes, r)
		}
	}
	if len(successes) == 0 {
		md.PlainText("No successful analyses.")
		md.PlainText("")
		return
	}

	header := []string{"Website"}
	for _, c := range grader.Categories {
		header = append(header, categoryLabel(c))
	}
	header = append(header, "Overall")

	rows := make([][]string, 0, len(successes))
	for _, r := range successes {
		row := []string{escapeCell(r.URL)}
		for _, c := range grader.Categories {
			row = append(row, formatScore(r.Scores.Category(c)))
		}
		row = append(row, formatScore(r.Scores.Overall))
		rows = append(rows, row)
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")

	for _, r := range successes {
		md.H3(r.URL)
		md.PlainText("")
		items := make([]string, 0, len(grader.Categories))
		for _, c := range grader.Categories {
			items = append(items, fmt.Sprintf("**%s Metrics:** %s", categoryLabel(c), FormatMetrics(c, r.Metrics.Group(c))))
		}
		md.BulletList(items...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report grader.BatchReport) {
	rows := [][]string{}
	for _, r := range report.Results {
		if r.OK() {
			continue
		}
		rows = append(rows, []string{escapeCell(r.URL), string(r.ErrorKind), escapeCell(r.Error)})
	}
	if len(rows) == 0 {
		return
	}
	md.H2("Failures")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Website", "Kind", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeTopPerformers(md *markdown.Markdown, report grader.BatchReport) {
	md.H2("Top Performers")
	md.PlainText("")
	if len(report.TopPerformers) == 0 {
		md.PlainText("None.")
		md.PlainText("")
		return
	}
	items := make([]string, 0, len(report.TopPerformers))
	for _, r := range report.TopPerformers {
		items = append(items, fmt.Sprintf("%s (%s)", r.URL, formatScore(r.Scores.Overall)))
	}
	md.BulletList(items...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report grader.BatchReport) {
	if len(report.NeedsImprovement) == 0 {
		return
	}
	md.H2("Recommendations")
	md.PlainText("")
	for _, r := range report.NeedsImprovement {
		recs := Recommendations(*r.Scores)
		if len(recs) == 0 {
			continue
		}
		md.H3(r.URL)
		md.PlainText("")
		md.BulletList(recs...)
		md.PlainText("")
	}
}

func scoreRow(label string, score float64) []string {
	return []string{label, formatScore(score) + "/10", string(Classify(score))}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

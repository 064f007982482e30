package report

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/resultcheck/internal/model"
	"github.com/nao1215/resultcheck/internal/normalize"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown, for pasting
// into pull requests or CI job summaries.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.VerificationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeResults(md, report)
	w.writeFailures(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.VerificationReport) {
	md.H1("Result Verification")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Directory", "`" + report.Dir + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Cases", strconv.Itoa(report.Total())},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.VerificationReport) string {
	switch {
	case report.AllPassed():
		return "✅ All variants match"
	case report.FailCount() > 0:
		return "❌ Mismatch detected"
	default:
		return "⚠️ Missing result files"
	}
}

// writeSummary writes the outcome counts, a pie chart and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.VerificationReport) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"✅ PASS", strconv.Itoa(report.PassCount())},
			{"❌ FAIL", strconv.Itoa(report.FailCount())},
			{"⚠️ ERROR", strconv.Itoa(report.ErrorCount())},
			{"**Total**", "**" + strconv.Itoa(report.Total()) + "**"},
		},
	})
	md.PlainText("")

	if report.Total() > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of the outcome distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.VerificationReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Outcome Distribution"),
		piechart.WithShowData(true),
	)

	if n := report.PassCount(); n > 0 {
		chart.LabelAndIntValue("PASS", uint64(n))
	}
	if n := report.FailCount(); n > 0 {
		chart.LabelAndIntValue("FAIL", uint64(n))
	}
	if n := report.ErrorCount(); n > 0 {
		chart.LabelAndIntValue("ERROR", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the worst outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.VerificationReport) {
	switch {
	case report.FailCount() > 0:
		md.Cautionf("%d variant(s) do NOT match the sequential result.", report.FailCount())
	case report.ErrorCount() > 0:
		md.Warningf("%d result file(s) could not be read.", report.ErrorCount())
	case report.Total() == 0:
		md.Note("No comparisons were run.")
	default:
		md.Tip("Every variant matches the sequential result.")
	}
	md.PlainText("")
}

// writeResults writes one table row per case in case order.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.VerificationReport) {
	md.H2("Results")
	md.PlainText("")

	if report.Total() == 0 {
		md.PlainText("No results.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Results))
	for i, r := range report.Results {
		rows[i] = []string{
			r.Case.Label,
			"`" + r.Case.ReferencePath + "`",
			"`" + r.Case.CandidatePath + "`",
			outcomeBadge(r.Outcome),
			resultDetail(r),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Variant", "Reference", "Candidate", "Outcome", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes collapsible previews for every failed case.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.VerificationReport) {
	if report.FailCount() == 0 {
		return
	}

	md.H2("Mismatches")
	md.PlainText("")
	for _, r := range report.Results {
		if r.Outcome != model.OutcomeFail {
			continue
		}
		md.Details(r.Case.Label,
			"Reference: `"+r.ReferencePreview+"...`\n\nTest: `"+r.CandidatePreview+"...`")
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [resultcheck](https://github.com/nao1215/resultcheck)*")
}

// outcomeBadge returns the outcome with an emoji marker.
func outcomeBadge(o model.Outcome) string {
	switch o {
	case model.OutcomePass:
		return "✅ PASS"
	case model.OutcomeFail:
		return "❌ FAIL"
	default:
		return "⚠️ ERROR"
	}
}

// resultDetail returns the short per-row detail text.
func resultDetail(r model.CaseResult) string {
	switch r.Outcome {
	case model.OutcomePass:
		return "-"
	case model.OutcomeFail:
		return "differs after whitespace removal"
	default:
		return truncateString(r.Error, 60)
	}
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return normalize.Preview(s, maxLen)
	}
	return normalize.Preview(s, maxLen-3) + "..."
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/resultcheck/internal/model"
)

// Console banner lines. Other tooling greps for these, so they must not change.
const (
	bannerHeader = "========== RESULT VERIFICATION =========="
	bannerFooter = "========================================="
)

// SimpleWriter outputs the console report:
//
//	========== RESULT VERIFICATION ==========
//	[OK] Variant 1 (Standard) matches sequential result
//	[FAIL] Variant 2 (Scatter) does NOT match sequential result!
//	  Reference: 123...
//	  Test: 124...
//	[ERROR] Variant 3 (Async): File not found - open resultAsync.txt: no such file or directory
//	=========================================
//
// The banner is preceded and followed by a blank line.
type SimpleWriter struct {
	baseWriter

	// summary appends a one-line tally after the footer.
	summary bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSummary appends a pass/fail/error tally after the footer.
func WithSummary(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.summary = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in console format.
func (w *SimpleWriter) Write(report *model.VerificationReport) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(bannerHeader)
	sb.WriteString("\n")

	for _, result := range report.Results {
		writeResultLines(&sb, result)
	}

	sb.WriteString(bannerFooter)
	sb.WriteString("\n\n")

	if w.summary {
		sb.WriteString(fmt.Sprintf("%d cases: %d passed, %d failed, %d errors\n",
			report.Total(), report.PassCount(), report.FailCount(), report.ErrorCount()))
	}

	return w.output.Write([]byte(sb.String()))
}

// writeResultLines writes the one or three lines describing a single result.
func writeResultLines(sb *strings.Builder, result model.CaseResult) {
	label := result.Case.Label
	switch result.Outcome {
	case model.OutcomePass:
		sb.WriteString(fmt.Sprintf("[OK] %s matches sequential result\n", label))
	case model.OutcomeFail:
		sb.WriteString(fmt.Sprintf("[FAIL] %s does NOT match sequential result!\n", label))
		sb.WriteString(fmt.Sprintf("  Reference: %s...\n", result.ReferencePreview))
		sb.WriteString(fmt.Sprintf("  Test: %s...\n", result.CandidatePreview))
	default:
		sb.WriteString(fmt.Sprintf("[ERROR] %s: File not found - %s\n", label, result.Error))
	}
}

package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/resultcheck/internal/model"
)

// JSONWriter outputs reports in JSON format.
// Each report is wrapped in a JSONReport carrying the tool version and a
// summary of counts.
type JSONWriter struct {
	baseWriter

	// version is the resultcheck version written into every report.
	version string

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion sets the version recorded in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport is the top-level JSON document.
type JSONReport struct {
	// Version is the resultcheck version that generated this report.
	Version string `json:"version,omitempty"`

	// Summary holds the outcome counts.
	Summary Summary `json:"summary"`

	// Report is the full verification report.
	Report *model.VerificationReport `json:"report"`
}

// Summary holds outcome counts of a report.
type Summary struct {
	Total     int  `json:"total"`
	Passed    int  `json:"passed"`
	Failed    int  `json:"failed"`
	Errors    int  `json:"errors"`
	AllPassed bool `json:"all_passed"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(report *model.VerificationReport, version string) *JSONReport {
	return &JSONReport{
		Version: version,
		Summary: Summary{
			Total:     report.Total(),
			Passed:    report.PassCount(),
			Failed:    report.FailCount(),
			Errors:    report.ErrorCount(),
			AllPassed: report.AllPassed(),
		},
		Report: report,
	}
}

// Write outputs the report wrapped with version and summary.
func (w *JSONWriter) Write(report *model.VerificationReport) (int, error) {
	return w.writeJSON(NewJSONReport(report, w.version))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

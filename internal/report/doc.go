// Package report renders a model.VerificationReport.
//
// This package contains writers for different output formats:
//   - SimpleWriter: the console format with the RESULT VERIFICATION banner
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown with a summary table
//
// Writers implement the Writer interface and can be combined with MultiWriter
// to, for example, print the console report while saving JSON to a file.
package report

package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and the helpers in this
// package. Callers use errors.Is() to tell them apart.
var (
	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidFormat is returned when a format name is not text, json or markdown.
	ErrInvalidFormat = errors.New("invalid report format: must be text, json or markdown")

	// ErrInvalidParallelism is returned when the number of concurrent
	// comparisons is not positive.
	ErrInvalidParallelism = errors.New("invalid parallelism: must be positive")

	// ErrNoDir is returned when the result directory is empty.
	ErrNoDir = errors.New("no result directory specified")

	// ErrNoDBDir is returned when history is enabled without a database directory.
	ErrNoDBDir = errors.New("history enabled but no database directory specified")
)

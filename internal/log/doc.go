// Package log builds the slog loggers used by resultcheck.
//
// Result files can hold numbers with millions of digits. ContentHandler
// wraps any slog.Handler and clips long string attributes so that a single
// debug line never dumps a whole result into the log.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("normalized", "reference", content) // clipped to 80 runes
package log

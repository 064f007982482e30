package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
)

// DefaultMaxValueLen is the number of runes kept from a string attribute.
const DefaultMaxValueLen = 80

// ContentHandler wraps an slog.Handler and clips string attribute values
// longer than maxLen runes. Clipped values end with "...(+N)" where N is the
// number of runes removed.
type ContentHandler struct {
	// handler is the underlying slog handler that receives clipped records.
	handler slog.Handler

	// maxLen is the maximum number of runes kept from a string value.
	maxLen int
}

// NewContentHandler creates a ContentHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used. A non-positive maxLen
// selects DefaultMaxValueLen.
func NewContentHandler(handler slog.Handler, maxLen int) *ContentHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &ContentHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *ContentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle clips the record's attributes and passes it to the underlying handler.
func (h *ContentHandler) Handle(ctx context.Context, r slog.Record) error {
	clipped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		clipped.AddAttrs(h.clipAttr(a))
		return true
	})

	return h.handler.Handle(ctx, clipped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are clipped before being added.
func (h *ContentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clippedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clippedAttrs[i] = h.clipAttr(a)
	}
	return &ContentHandler{handler: h.handler.WithAttrs(clippedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *ContentHandler) WithGroup(name string) slog.Handler {
	return &ContentHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// clipAttr clips a single attribute, recursively handling groups.
func (h *ContentHandler) clipAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		clippedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			clippedAttrs[i] = h.clipAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clippedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, clip(a.Value.String(), h.maxLen))
	}

	return a
}

// clip shortens s to maxLen runes and appends how many runes were dropped.
func clip(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	count := 0
	for i := range s {
		if count == maxLen {
			dropped := len([]rune(s[i:]))
			return s[:i] + "...(+" + strconv.Itoa(dropped) + ")"
		}
		count++
	}
	return s
}

// NewLogger creates a text slog.Logger that clips long values.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFor(verbose),
	}
	return slog.New(NewContentHandler(slog.NewTextHandler(w, opts), DefaultMaxValueLen))
}

// NewJSONLogger creates a JSON slog.Logger that clips long values.
// Useful for structured log aggregation in CI.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelFor(verbose),
	}
	return slog.New(NewContentHandler(slog.NewJSONHandler(w, opts), DefaultMaxValueLen))
}

// levelFor maps the verbose flag to a log level.
func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

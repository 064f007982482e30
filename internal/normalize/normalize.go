package normalize

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FileAccessError is returned when a result file cannot be read.
// It is kept apart from content mismatches so callers can report a missing
// file differently from a wrong result.
type FileAccessError struct {
	// Path is the path that was passed to File.
	Path string

	// Err is the underlying error from the filesystem.
	Err error
}

// Error returns the underlying error text, which already names the path.
func (e *FileAccessError) Error() string {
	if e.Err == nil {
		return "cannot read " + e.Path
	}
	return e.Err.Error()
}

// Unwrap returns the underlying filesystem error.
func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the file does not exist at all, as opposed to
// being unreadable for another reason.
func (e *FileAccessError) NotFound() bool {
	return errors.Is(e.Err, fs.ErrNotExist)
}

// String removes every whitespace rune from s and keeps all other bytes
// unchanged, including bytes that are not valid UTF-8.
func String(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isSeparator(r) {
			i += size
			continue
		}
		sb.WriteString(s[i : i+size])
		i += size
	}
	return sb.String()
}

// isSeparator reports whether r splits tokens in a result file.
// The ASCII file, group, record and unit separators count as whitespace too.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// File reads the whole file at path and returns its normalized content.
// Any failure to read, including path being a directory, is returned as a
// *FileAccessError.
func File(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // result paths are fixed names under a user-chosen directory
	if err != nil {
		return "", &FileAccessError{Path: path, Err: err}
	}
	return String(string(data)), nil
}

// Preview returns the first n runes of s, or s unchanged when it is shorter.
// A non-positive n yields an empty string.
func Preview(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

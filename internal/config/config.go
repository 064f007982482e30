package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "resultcheck"

	// DefaultDir is the directory the fixed result file names are resolved
	// against: the current working directory.
	DefaultDir = "."

	// DefaultParallelism runs comparisons one after another.
	DefaultParallelism = 1
)

// Format selects how the verification report is rendered.
type Format string

const (
	// FormatText is the console format with the RESULT VERIFICATION banner.
	FormatText Format = "text"

	// FormatJSON is a JSON document with summary counts.
	FormatJSON Format = "json"

	// FormatMarkdown is GitHub Flavored Markdown.
	FormatMarkdown Format = "markdown"
)

// ParseFormat converts a format name into a Format.
// The empty string selects FormatText. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// FormatFromFlags maps the --json and --markdown flags to a Format.
func FormatFromFlags(jsonOutput, markdownOutput bool) (Format, error) {
	switch {
	case jsonOutput && markdownOutput:
		return "", ErrConflictingReportFormats
	case jsonOutput:
		return FormatJSON, nil
	case markdownOutput:
		return FormatMarkdown, nil
	default:
		return FormatText, nil
	}
}

// Config holds all configuration options for a verification run.
// It is populated from the config file and CLI flags and passed down
// explicitly rather than kept in global state.
type Config struct {
	// Dir is the directory containing result.txt and the candidate files.
	Dir string

	// Format selects the report rendering.
	Format Format

	// ReportFile is the output file path for the report.
	// When set, the report in Format is written to this file and the text
	// report is still printed to stdout.
	ReportFile string

	// Parallelism is the maximum number of cases compared at once.
	// Report order does not depend on it.
	Parallelism int

	// Strict makes the command fail when any case is not PASS.
	Strict bool

	// SaveHistory stores every run in the SQLite history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to XDG data directory (~/.local/share/resultcheck on Linux).
	DBDir string

	// Verbose enables debug logging.
	Verbose bool

	// LogJSON writes logs as JSON lines instead of text.
	LogJSON bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Dir:         DefaultDir,
		Format:      FormatText,
		Parallelism: DefaultParallelism,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for resultcheck.
// On Linux: ~/.local/share/resultcheck
// On macOS: ~/Library/Application Support/resultcheck
// On Windows: %LOCALAPPDATA%\resultcheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for resultcheck.
// On Linux: ~/.config/resultcheck
// On macOS: ~/Library/Application Support/resultcheck
// On Windows: %APPDATA%\resultcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return ErrNoDir
	}

	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}

	if c.Parallelism <= 0 {
		return ErrInvalidParallelism
	}

	if c.SaveHistory && c.DBDir == "" {
		return ErrNoDBDir
	}

	return nil
}

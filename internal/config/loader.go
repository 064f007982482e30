package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".resultcheck"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .resultcheck configuration file.
// Only run settings live here; the list of compared files is fixed.
type File struct {
	// Dir is the directory containing the result files.
	Dir string `yaml:"dir,omitempty"`

	// Format is text, json or markdown.
	Format string `yaml:"format,omitempty"`

	// Output is the report file path.
	Output string `yaml:"output,omitempty"`

	// Parallel is the number of concurrent comparisons.
	Parallel int `yaml:"parallel,omitempty"`

	// Strict fails the command when any case is not PASS.
	Strict *bool `yaml:"strict,omitempty"`

	// History saves every run to the history database.
	History *bool `yaml:"history,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// Apply copies the values set in the file onto cfg.
// Unset (zero or nil) fields leave cfg untouched.
func (f *File) Apply(cfg *Config) error {
	if f.Dir != "" {
		cfg.Dir = f.Dir
	}
	if f.Format != "" {
		format, err := ParseFormat(f.Format)
		if err != nil {
			return err
		}
		cfg.Format = format
	}
	if f.Output != "" {
		cfg.ReportFile = f.Output
	}
	if f.Parallel != 0 {
		cfg.Parallelism = f.Parallel
	}
	if f.Strict != nil {
		cfg.Strict = *f.Strict
	}
	if f.History != nil {
		cfg.SaveHistory = *f.History
	}
	if f.DBDir != "" {
		cfg.DBDir = f.DBDir
	}
	return nil
}

// LoadConfigFile loads run settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .resultcheck in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .resultcheck in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}

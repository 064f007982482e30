// Package config provides configuration structures and utilities for
// resultcheck: defaults, validation, the optional .resultcheck YAML file and
// XDG directory helpers.
package config

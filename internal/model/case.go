package model

import "path/filepath"

// Fixed result file names.
const (
	// ReferenceFile is the sequential result every variant is checked against.
	ReferenceFile = "result.txt"

	// StandardFile is written by the standard point-to-point variant.
	StandardFile = "result1.txt"

	// ScatterFile is written by the scatter/gather variant.
	ScatterFile = "resultScatter.txt"

	// AsyncFile is written by the asynchronous communication variant.
	AsyncFile = "resultAsync.txt"

	// OptimizedFile is written by the optimized variant.
	OptimizedFile = "resultOptimized.txt"
)

// ComparisonCase names one candidate result and the reference it must match.
type ComparisonCase struct {
	// Label is the human-readable variant name used in report lines.
	Label string `json:"label"`

	// ReferencePath is the path of the trusted baseline result.
	ReferencePath string `json:"reference_path"`

	// CandidatePath is the path of the result being checked.
	CandidatePath string `json:"candidate_path"`
}

// DefaultCases returns the fixed, ordered list of comparisons.
// A new slice is returned on every call.
func DefaultCases() []ComparisonCase {
	return []ComparisonCase{
		{Label: "Variant 1 (Standard)", ReferencePath: ReferenceFile, CandidatePath: StandardFile},
		{Label: "Variant 2 (Scatter)", ReferencePath: ReferenceFile, CandidatePath: ScatterFile},
		{Label: "Variant 3 (Async)", ReferencePath: ReferenceFile, CandidatePath: AsyncFile},
		{Label: "Variant 1.1 (Optimized)", ReferencePath: ReferenceFile, CandidatePath: OptimizedFile},
	}
}

// Resolve returns a copy of c with relative paths joined onto dir.
// An empty dir or "." leaves the paths untouched, so they stay relative to
// the working directory.
func (c ComparisonCase) Resolve(dir string) ComparisonCase {
	if dir == "" || dir == "." {
		return c
	}
	resolved := c
	if !filepath.IsAbs(c.ReferencePath) {
		resolved.ReferencePath = filepath.Join(dir, c.ReferencePath)
	}
	if !filepath.IsAbs(c.CandidatePath) {
		resolved.CandidatePath = filepath.Join(dir, c.CandidatePath)
	}
	return resolved
}

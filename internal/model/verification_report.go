package model

import "time"

// CaseResult is the recorded outcome of one ComparisonCase.
type CaseResult struct {
	// Case is the comparison that was run, with resolved paths.
	Case ComparisonCase `json:"case"`

	// Outcome is PASS, FAIL or ERROR.
	Outcome Outcome `json:"outcome"`

	// ReferencePreview is the start of the normalized reference.
	// Only set when Outcome is OutcomeFail.
	ReferencePreview string `json:"reference_preview,omitempty"`

	// CandidatePreview is the start of the normalized candidate.
	// Only set when Outcome is OutcomeFail.
	CandidatePreview string `json:"candidate_preview,omitempty"`

	// Error describes why a file could not be read.
	// Only set when Outcome is OutcomeError.
	Error string `json:"error,omitempty"`

	// Duration is how long the comparison took.
	Duration time.Duration `json:"duration_ns"`
}

// Passed reports whether the case matched.
func (r CaseResult) Passed() bool {
	return r.Outcome == OutcomePass
}

// VerificationReport collects every CaseResult of one verification pass.
type VerificationReport struct {
	// StartedAt is when the pass began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the last case completed.
	FinishedAt time.Time `json:"finished_at"`

	// Dir is the directory the fixed file names were resolved against.
	Dir string `json:"dir"`

	// Results holds one entry per case, in case order.
	Results []CaseResult `json:"results"`
}

// NewVerificationReport creates an empty report for a pass over dir.
func NewVerificationReport(dir string) *VerificationReport {
	return &VerificationReport{
		StartedAt: time.Now(),
		Dir:       dir,
		Results:   make([]CaseResult, 0),
	}
}

// Total returns the number of recorded results.
func (r *VerificationReport) Total() int {
	return len(r.Results)
}

// PassCount returns the number of PASS results.
func (r *VerificationReport) PassCount() int {
	return r.count(OutcomePass)
}

// FailCount returns the number of FAIL results.
func (r *VerificationReport) FailCount() int {
	return r.count(OutcomeFail)
}

// ErrorCount returns the number of ERROR results.
func (r *VerificationReport) ErrorCount() int {
	return r.count(OutcomeError)
}

// AllPassed reports whether every recorded case passed.
// A report with no results is not considered passed.
func (r *VerificationReport) AllPassed() bool {
	return r.Total() > 0 && r.PassCount() == r.Total()
}

// Elapsed returns the wall time of the pass.
func (r *VerificationReport) Elapsed() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *VerificationReport) count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

package model

import (
	"testing"
	"time"
)

func newReportWith(outcomes ...Outcome) *VerificationReport {
	r := NewVerificationReport(".")
	for i, o := range outcomes {
		r.Results = append(r.Results, CaseResult{
			Case:    ComparisonCase{Label: DefaultCases()[i%4].Label},
			Outcome: o,
		})
	}
	return r
}

func TestVerificationReportCounts(t *testing.T) {
	t.Parallel()

	t.Run("mixed outcomes", func(t *testing.T) {
		t.Parallel()
		r := newReportWith(OutcomePass, OutcomeFail, OutcomeError, OutcomePass)
		if r.Total() != 4 {
			t.Errorf("expected total 4, got %d", r.Total())
		}
		if r.PassCount() != 2 {
			t.Errorf("expected 2 passes, got %d", r.PassCount())
		}
		if r.FailCount() != 1 {
			t.Errorf("expected 1 failure, got %d", r.FailCount())
		}
		if r.ErrorCount() != 1 {
			t.Errorf("expected 1 error, got %d", r.ErrorCount())
		}
		if r.AllPassed() {
			t.Error("expected AllPassed to be false")
		}
	})

	t.Run("all passed", func(t *testing.T) {
		t.Parallel()
		r := newReportWith(OutcomePass, OutcomePass)
		if !r.AllPassed() {
			t.Error("expected AllPassed to be true")
		}
	})

	t.Run("empty report is not passed", func(t *testing.T) {
		t.Parallel()
		r := NewVerificationReport(".")
		if r.AllPassed() {
			t.Error("expected empty report to not be passed")
		}
		if r.Results == nil {
			t.Error("expected Results to be initialized")
		}
	})
}

func TestVerificationReportElapsed(t *testing.T) {
	t.Parallel()

	r := NewVerificationReport(".")
	if r.Elapsed() != 0 {
		t.Errorf("expected zero elapsed before finish, got %v", r.Elapsed())
	}
	r.FinishedAt = r.StartedAt.Add(1500 * time.Millisecond)
	if r.Elapsed() != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", r.Elapsed())
	}
}

func TestCaseResultPassed(t *testing.T) {
	t.Parallel()

	if !(CaseResult{Outcome: OutcomePass}).Passed() {
		t.Error("expected PASS result to be passed")
	}
	if (CaseResult{Outcome: OutcomeError}).Passed() {
		t.Error("expected ERROR result to not be passed")
	}
}

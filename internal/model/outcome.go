package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Outcome is the terminal state of a single comparison.
type Outcome int

const (
	// OutcomePass means the normalized contents are identical.
	OutcomePass Outcome = iota

	// OutcomeFail means both files were read but their normalized contents differ.
	OutcomeFail

	// OutcomeError means at least one of the files could not be read.
	OutcomeError
)

// String returns "PASS", "FAIL" or "ERROR".
func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "PASS"
	case OutcomeFail:
		return "FAIL"
	case OutcomeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseOutcome converts the String form back into an Outcome.
// Matching is case-insensitive.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PASS":
		return OutcomePass, nil
	case "FAIL":
		return OutcomeFail, nil
	case "ERROR":
		return OutcomeError, nil
	default:
		return 0, fmt.Errorf("unknown outcome %q", s)
	}
}

// MarshalJSON encodes the outcome as its string form.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes an outcome from its string form.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseOutcome(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

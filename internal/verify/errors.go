package verify

import (
	"fmt"

	"github.com/nao1215/resultcheck/internal/normalize"
)

// FileAccessError is returned when a reference or candidate file is missing
// or unreadable. It is reported as an ERROR outcome for that case only.
type FileAccessError = normalize.FileAccessError

// MismatchError is returned when both files were read but their normalized
// contents differ. It is reported as a FAIL outcome, not a crash.
type MismatchError struct {
	// ReferencePath is the reference file that was compared.
	ReferencePath string

	// CandidatePath is the candidate file that was compared.
	CandidatePath string

	// ReferencePreview is the start of the normalized reference content.
	ReferencePreview string

	// CandidatePreview is the start of the normalized candidate content.
	CandidatePreview string
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s does not match %s (reference %q..., candidate %q...)",
		e.CandidatePath, e.ReferencePath, e.ReferencePreview, e.CandidatePreview)
}

package verify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/resultcheck/internal/model"
	"github.com/nao1215/resultcheck/internal/normalize"
)

// PreviewLength is the number of normalized characters kept from each side
// of a failed comparison.
const PreviewLength = 50

// NotCheckedPrefix starts the error detail of a case skipped because the
// run was cancelled before it started.
const NotCheckedPrefix = "not checked: "

// Verifier compares candidate result files with their reference.
type Verifier struct {
	// logger is used for per-case debug output.
	logger *slog.Logger

	// concurrency is the maximum number of cases checked at once.
	// Values below 2 mean strictly sequential.
	concurrency int

	// dir is the directory relative case paths are resolved against.
	dir string
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// WithConcurrency sets how many cases may be checked at once.
// Results keep case order regardless of this value.
func WithConcurrency(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// WithDir sets the directory the case paths are resolved against.
func WithDir(dir string) Option {
	return func(v *Verifier) {
		v.dir = dir
	}
}

// New creates a Verifier with the given options.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		concurrency: 1,
		dir:         ".",
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.logger == nil {
		v.logger = slog.Default()
	}

	return v
}

// Compare normalizes both files and compares them.
// It returns nil on a match, a *MismatchError when the contents differ and a
// *FileAccessError when either file cannot be read. The reference is read
// first, so a missing reference is the error reported even when the
// candidate is missing too.
func (v *Verifier) Compare(referencePath, candidatePath string) error {
	reference, err := normalize.File(referencePath)
	if err != nil {
		return err
	}
	candidate, err := normalize.File(candidatePath)
	if err != nil {
		return err
	}

	v.logger.Debug("normalized contents",
		"reference", referencePath,
		"candidate", candidatePath,
		"reference_len", len(reference),
		"candidate_len", len(candidate),
	)

	if reference != candidate {
		v.logger.Debug("content mismatch",
			"candidate", candidatePath,
			"reference_content", reference,
			"candidate_content", candidate,
		)
		return &MismatchError{
			ReferencePath:    referencePath,
			CandidatePath:    candidatePath,
			ReferencePreview: normalize.Preview(reference, PreviewLength),
			CandidatePreview: normalize.Preview(candidate, PreviewLength),
		}
	}
	return nil
}

// Check runs a single case and converts the comparison error, if any, into
// a CaseResult. It never fails.
func (v *Verifier) Check(c model.ComparisonCase) model.CaseResult {
	resolved := c.Resolve(v.dir)
	start := time.Now()

	result := model.CaseResult{Case: resolved}
	err := v.Compare(resolved.ReferencePath, resolved.CandidatePath)

	var mismatch *MismatchError
	var accessErr *FileAccessError
	switch {
	case err == nil:
		result.Outcome = model.OutcomePass
	case errors.As(err, &mismatch):
		result.Outcome = model.OutcomeFail
		result.ReferencePreview = mismatch.ReferencePreview
		result.CandidatePreview = mismatch.CandidatePreview
	case errors.As(err, &accessErr):
		result.Outcome = model.OutcomeError
		result.Error = accessErr.Error()
		v.logger.Debug("result file unreadable",
			"label", resolved.Label,
			"path", accessErr.Path,
			"not_found", accessErr.NotFound(),
		)
	default:
		result.Outcome = model.OutcomeError
		result.Error = err.Error()
	}
	result.Duration = time.Since(start)

	v.logger.Debug("case checked",
		"label", resolved.Label,
		"outcome", result.Outcome.String(),
		"duration", result.Duration,
	)

	return result
}

// Run checks every case and returns a report with one result per case, in
// the order of cases. Once ctx is done, cases not yet started are recorded
// as ERROR with the context error.
func (v *Verifier) Run(ctx context.Context, cases []model.ComparisonCase) *model.VerificationReport {
	report := model.NewVerificationReport(v.dir)
	report.Results = make([]model.CaseResult, len(cases))

	v.logger.Info("starting verification",
		"cases", len(cases),
		"dir", v.dir,
		"concurrency", v.concurrency,
	)

	if v.concurrency <= 1 || len(cases) <= 1 {
		for i, c := range cases {
			report.Results[i] = v.checkWithContext(ctx, c)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(v.concurrency)
		for i, c := range cases {
			i, c := i, c
			g.Go(func() error {
				report.Results[i] = v.checkWithContext(ctx, c)
				return nil
			})
		}
		_ = g.Wait() //nolint:errcheck // goroutines never return errors
	}

	report.FinishedAt = time.Now()

	v.logger.Info("verification finished",
		"passed", report.PassCount(),
		"failed", report.FailCount(),
		"errors", report.ErrorCount(),
		"elapsed", report.Elapsed(),
	)

	return report
}

// checkWithContext runs c unless ctx is already done.
func (v *Verifier) checkWithContext(ctx context.Context, c model.ComparisonCase) model.CaseResult {
	if err := ctx.Err(); err != nil {
		v.logger.Warn("case skipped", "label", c.Label, "reason", err)
		return model.CaseResult{
			Case:    c.Resolve(v.dir),
			Outcome: model.OutcomeError,
			Error:   NotCheckedPrefix + err.Error(),
		}
	}
	return v.Check(c)
}

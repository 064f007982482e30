package verify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/nao1215/resultcheck/internal/model"
)

// writeFiles creates the given files under a new temporary directory.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// quietVerifier returns a Verifier that discards log output.
func quietVerifier(dir string, opts ...Option) *Verifier {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(append([]Option{WithDir(dir), WithLogger(logger)}, opts...)...)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		v := New()
		if v.concurrency != 1 {
			t.Errorf("expected concurrency 1, got %d", v.concurrency)
		}
		if v.dir != "." {
			t.Errorf("expected dir \".\", got %q", v.dir)
		}
		if v.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()
		v := New(WithConcurrency(0), WithConcurrency(-3))
		if v.concurrency != 1 {
			t.Errorf("expected concurrency 1, got %d", v.concurrency)
		}
	})
}

func TestCompare(t *testing.T) {
	t.Parallel()

	t.Run("match ignoring whitespace", func(t *testing.T) {
		t.Parallel()
		dir := writeFiles(t, map[string]string{"result.txt": "1 2 3\n", "result1.txt": "123"})
		v := quietVerifier(dir)
		if err := v.Compare(filepath.Join(dir, "result.txt"), filepath.Join(dir, "result1.txt")); err != nil {
			t.Errorf("expected match, got %v", err)
		}
	})

	t.Run("mismatch returns MismatchError", func(t *testing.T) {
		t.Parallel()
		dir := writeFiles(t, map[string]string{"result.txt": "1 2 3", "resultScatter.txt": "1 2 4"})
		v := quietVerifier(dir)

		err := v.Compare(filepath.Join(dir, "result.txt"), filepath.Join(dir, "resultScatter.txt"))
		var mismatch *MismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected *MismatchError, got %T (%v)", err, err)
		}
		if mismatch.ReferencePreview != "123" || mismatch.CandidatePreview != "124" {
			t.Errorf("unexpected previews %q / %q", mismatch.ReferencePreview, mismatch.CandidatePreview)
		}
		if !strings.Contains(err.Error(), "resultScatter.txt") {
			t.Errorf("expected error to name the candidate, got %q", err.Error())
		}
	})

	t.Run("missing reference reported first", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		v := quietVerifier(dir)

		err := v.Compare(filepath.Join(dir, "result.txt"), filepath.Join(dir, "result1.txt"))
		var accessErr *FileAccessError
		if !errors.As(err, &accessErr) {
			t.Fatalf("expected *FileAccessError, got %T", err)
		}
		if filepath.Base(accessErr.Path) != "result.txt" {
			t.Errorf("expected reference path in error, got %q", accessErr.Path)
		}
	})

	t.Run("missing candidate", func(t *testing.T) {
		t.Parallel()
		dir := writeFiles(t, map[string]string{"result.txt": "1"})
		v := quietVerifier(dir)

		err := v.Compare(filepath.Join(dir, "result.txt"), filepath.Join(dir, "resultAsync.txt"))
		var accessErr *FileAccessError
		if !errors.As(err, &accessErr) {
			t.Fatalf("expected *FileAccessError, got %T", err)
		}
		var mismatch *MismatchError
		if errors.As(err, &mismatch) {
			t.Error("file access error must not be a mismatch")
		}
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		files         map[string]string
		wantOutcome   model.Outcome
		wantRefPrev   string
		wantCandPrev  string
		wantErrSubstr string
	}{
		{
			name:        "exact match scenario",
			files:       map[string]string{"result.txt": "1 2 3\n", "result1.txt": "123"},
			wantOutcome: model.OutcomePass,
		},
		{
			name:        "token boundaries are not compared",
			files:       map[string]string{"result.txt": "12 3", "result1.txt": "1 23"},
			wantOutcome: model.OutcomePass,
		},
		{
			name:         "reordered digits fail",
			files:        map[string]string{"result.txt": "123", "result1.txt": "132"},
			wantOutcome:  model.OutcomeFail,
			wantRefPrev:  "123",
			wantCandPrev: "132",
		},
		{
			name:          "missing candidate",
			files:         map[string]string{"result.txt": "123"},
			wantOutcome:   model.OutcomeError,
			wantErrSubstr: "result1.txt",
		},
		{
			name:        "both empty",
			files:       map[string]string{"result.txt": "\n", "result1.txt": ""},
			wantOutcome: model.OutcomePass,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeFiles(t, tt.files)
			v := quietVerifier(dir)
			got := v.Check(model.DefaultCases()[0])

			if got.Outcome != tt.wantOutcome {
				t.Fatalf("expected %v, got %v (%+v)", tt.wantOutcome, got.Outcome, got)
			}
			if got.ReferencePreview != tt.wantRefPrev {
				t.Errorf("expected reference preview %q, got %q", tt.wantRefPrev, got.ReferencePreview)
			}
			if got.CandidatePreview != tt.wantCandPrev {
				t.Errorf("expected candidate preview %q, got %q", tt.wantCandPrev, got.CandidatePreview)
			}
			if tt.wantErrSubstr == "" && got.Error != "" {
				t.Errorf("expected no error text, got %q", got.Error)
			}
			if tt.wantErrSubstr != "" && !strings.Contains(got.Error, tt.wantErrSubstr) {
				t.Errorf("expected error to contain %q, got %q", tt.wantErrSubstr, got.Error)
			}
			if got.Case.Label != "Variant 1 (Standard)" {
				t.Errorf("unexpected label %q", got.Case.Label)
			}
			if got.Case.CandidatePath != filepath.Join(dir, "result1.txt") {
				t.Errorf("expected resolved candidate path, got %q", got.Case.CandidatePath)
			}
		})
	}
}

func TestCheckPreviewTruncation(t *testing.T) {
	t.Parallel()

	ref := strings.Repeat("1", 200)
	cand := strings.Repeat("1", 199) + "2"
	dir := writeFiles(t, map[string]string{"result.txt": ref, "result1.txt": cand})

	got := quietVerifier(dir).Check(model.DefaultCases()[0])
	if got.Outcome != model.OutcomeFail {
		t.Fatalf("expected FAIL, got %v", got.Outcome)
	}
	if len(got.ReferencePreview) != PreviewLength || len(got.CandidatePreview) != PreviewLength {
		t.Errorf("expected %d character previews, got %d and %d",
			PreviewLength, len(got.ReferencePreview), len(got.CandidatePreview))
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"result.txt":          "1 2 3\n",
		"result1.txt":         "123",
		"resultScatter.txt":   "1 2 4",
		"resultOptimized.txt": "1\n2\n3\n",
	}

	wantOutcomes := []model.Outcome{
		model.OutcomePass,
		model.OutcomeFail,
		model.OutcomeError,
		model.OutcomePass,
	}

	for _, concurrency := range []int{1, 2, 8} {
		concurrency := concurrency
		t.Run("concurrency "+strconv.Itoa(concurrency), func(t *testing.T) {
			t.Parallel()

			dir := writeFiles(t, files)
			report := quietVerifier(dir, WithConcurrency(concurrency)).Run(context.Background(), model.DefaultCases())

			if report.Total() != len(wantOutcomes) {
				t.Fatalf("expected %d results, got %d", len(wantOutcomes), report.Total())
			}
			for i, want := range wantOutcomes {
				if report.Results[i].Outcome != want {
					t.Errorf("case %d (%s): expected %v, got %v",
						i, report.Results[i].Case.Label, want, report.Results[i].Outcome)
				}
				if report.Results[i].Case.Label != model.DefaultCases()[i].Label {
					t.Errorf("case %d: results out of order, got %q", i, report.Results[i].Case.Label)
				}
			}
			if report.FinishedAt.Before(report.StartedAt) {
				t.Error("expected FinishedAt after StartedAt")
			}
			if report.Dir != dir {
				t.Errorf("expected dir %q, got %q", dir, report.Dir)
			}
		})
	}
}

func TestRunAllMissing(t *testing.T) {
	t.Parallel()

	report := quietVerifier(t.TempDir()).Run(context.Background(), model.DefaultCases())
	if report.Total() != 4 {
		t.Fatalf("expected 4 results, got %d", report.Total())
	}
	if report.ErrorCount() != 4 {
		t.Errorf("expected 4 errors, got %d", report.ErrorCount())
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"result.txt": "1", "result1.txt": "1"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := quietVerifier(dir).Run(ctx, model.DefaultCases())
	if report.Total() != 4 {
		t.Fatalf("expected 4 results, got %d", report.Total())
	}
	for _, r := range report.Results {
		if r.Outcome != model.OutcomeError {
			t.Errorf("%s: expected ERROR after cancellation, got %v", r.Case.Label, r.Outcome)
		}
		if want := NotCheckedPrefix + context.Canceled.Error(); r.Error != want {
			t.Errorf("%s: expected error %q, got %q", r.Case.Label, want, r.Error)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	report := quietVerifier(t.TempDir()).Run(context.Background(), nil)
	if report.Total() != 0 {
		t.Errorf("expected no results, got %d", report.Total())
	}
}

func TestCompareInvalidUTF8(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"ref.txt":  "1 2 \xff 3",
		"same.txt": "12\xff3\n",
		"diff.txt": "1 2 \xfe 3",
	})
	v := quietVerifier(dir)

	if err := v.Compare(filepath.Join(dir, "ref.txt"), filepath.Join(dir, "same.txt")); err != nil {
		t.Errorf("expected identical bytes to match, got %v", err)
	}

	err := v.Compare(filepath.Join(dir, "ref.txt"), filepath.Join(dir, "diff.txt"))
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *MismatchError for differing invalid bytes, got %v", err)
	}
}

func TestCheckDebugLogs(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"result.txt":        "1 2 3",
		"resultScatter.txt": "1 2 4",
	})

	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	v := New(WithDir(dir), WithLogger(logger))

	cases := model.DefaultCases()
	v.Check(cases[1])
	v.Check(cases[2])

	out := buf.String()
	for _, want := range []string{
		"content mismatch",
		"reference_content=123",
		"candidate_content=124",
		"result file unreadable",
		"not_found=true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, out)
		}
	}
}

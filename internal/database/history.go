package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/resultcheck/internal/model"
)

// DBFileName is the name of the SQLite file inside the database directory.
const DBFileName = "resultcheck.db"

// HistoryDB provides SQLite-based storage for verification runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// RunSummary is one row of the runs table without its case results.
type RunSummary struct {
	// ID is the unique identifier of the run.
	ID int64 `json:"id"`

	// StartedAt is when the pass began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the pass ended.
	FinishedAt time.Time `json:"finished_at"`

	// Dir is the directory the result files were read from.
	Dir string `json:"dir"`

	// Total, Passed, Failed and Errored are the outcome counts.
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Errored int `json:"errored"`
}

// AllPassed reports whether every case of the run passed.
func (s RunSummary) AllPassed() bool {
	return s.Total > 0 && s.Passed == s.Total
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per verification pass
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		dir TEXT NOT NULL,
		total INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		errored INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Case results keep the order of the pass in position
	CREATE TABLE IF NOT EXISTS case_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		label TEXT NOT NULL,
		reference_path TEXT NOT NULL,
		candidate_path TEXT NOT NULL,
		outcome TEXT NOT NULL,
		reference_preview TEXT,
		candidate_preview TEXT,
		error TEXT,
		duration_ns INTEGER NOT NULL DEFAULT 0,
		UNIQUE(run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_case_results_run ON case_results(run_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores report and all its case results in one transaction and
// returns the new run ID.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.VerificationReport) (id int64, err error) {
	if report == nil {
		return 0, errors.New("cannot save nil report")
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (started_at, finished_at, dir, total, passed, failed, errored)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		formatTimestamp(report.StartedAt),
		formatTimestamp(report.FinishedAt),
		report.Dir,
		report.Total(),
		report.PassCount(),
		report.FailCount(),
		report.ErrorCount(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO case_results (run_id, position, label, reference_path, candidate_path,
		outcome, reference_preview, candidate_preview, error, duration_ns)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare case insert: %w", err)
	}
	defer stmt.Close()

	for i, res := range report.Results {
		_, err = stmt.ExecContext(ctx,
			id,
			i,
			res.Case.Label,
			res.Case.ReferencePath,
			res.Case.CandidatePath,
			res.Outcome.String(),
			res.ReferencePreview,
			res.CandidatePreview,
			res.Error,
			int64(res.Duration),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert case %q: %w", res.Case.Label, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return id, nil
}

// ListRuns returns up to limit runs, newest first.
// A limit of zero or less returns every run.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
	SELECT id, started_at, finished_at, dir, total, passed, failed, errored
	FROM runs
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			s        RunSummary
			started  string
			finished string
		)
		if err := rows.Scan(&s.ID, &started, &finished, &s.Dir, &s.Total, &s.Passed, &s.Failed, &s.Errored); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		s.StartedAt = parseTimestamp(started)
		s.FinishedAt = parseTimestamp(finished)
		runs = append(runs, s)
	}

	return runs, rows.Err()
}

// GetRun loads the run with the given ID and its case results in their
// original order. It returns nil, nil when no such run exists.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*model.VerificationReport, error) {
	var (
		report   model.VerificationReport
		started  string
		finished string
	)
	err := hdb.db.QueryRowContext(ctx, `
	SELECT started_at, finished_at, dir FROM runs WHERE id = ?
	`, id).Scan(&started, &finished, &report.Dir)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	report.StartedAt = parseTimestamp(started)
	report.FinishedAt = parseTimestamp(finished)

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT label, reference_path, candidate_path, outcome,
		reference_preview, candidate_preview, error, duration_ns
	FROM case_results
	WHERE run_id = ?
	ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get case results: %w", err)
	}
	defer rows.Close()

	report.Results = make([]model.CaseResult, 0)
	for rows.Next() {
		var (
			res      model.CaseResult
			outcome  string
			refPrev  sql.NullString
			candPrev sql.NullString
			errText  sql.NullString
			duration int64
		)
		if err := rows.Scan(
			&res.Case.Label,
			&res.Case.ReferencePath,
			&res.Case.CandidatePath,
			&outcome,
			&refPrev,
			&candPrev,
			&errText,
			&duration,
		); err != nil {
			return nil, fmt.Errorf("failed to scan case result: %w", err)
		}

		res.Outcome, err = model.ParseOutcome(outcome)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", id, err)
		}
		res.ReferencePreview = refPrev.String
		res.CandidatePreview = candPrev.String
		res.Error = errText.String
		res.Duration = time.Duration(duration)
		report.Results = append(report.Results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read case results: %w", err)
	}

	return &report, nil
}

// formatTimestamp stores times in UTC with nanosecond precision.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

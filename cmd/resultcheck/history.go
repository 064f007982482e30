package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/resultcheck/internal/config"
	"github.com/nao1215/resultcheck/internal/database"
	"github.com/nao1215/resultcheck/internal/report"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of runs listed when --limit is not set.
const defaultHistoryLimit = 20

// errNoHistory is returned when the history database has not been created yet.
var errNoHistory = errors.New("no history database found")

// NewHistoryCmd creates the history command.
// This command lists and shows verification runs stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or show saved verification runs",
		Long: `History displays verification runs saved with --history.

Without flags the most recent runs are listed with their outcome counts.
Use --show to print one run in the console report format.

Examples:
  # List the latest runs
  resultcheck history

  # List the latest 5 runs as JSON
  resultcheck history --limit 5 --json

  # Show run 3 again
  resultcheck history --show 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().Int64P("show", "i", 0,
		"Show the run with this ID (use the list to see available IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := openHistory(dbDir)
	if errors.Is(err, errNoHistory) {
		fmt.Fprintln(cmd.OutOrStdout(), "No verification history found.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'resultcheck --history' to save a run.")
		return nil
	}
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	if showID > 0 {
		return showRun(ctx, db, out, showID, jsonOutput)
	}
	return listRuns(ctx, db, out, limit, jsonOutput)
}

// openHistory opens an existing history database without creating one.
func openHistory(dbDir string) (*database.HistoryDB, error) {
	if _, err := os.Stat(filepath.Join(dbDir, database.DBFileName)); os.IsNotExist(err) {
		return nil, errNoHistory
	}

	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// listRuns prints the latest runs, newest first.
func listRuns(ctx context.Context, db *database.HistoryDB, out io.Writer, limit int, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if jsonOutput {
		if runs == nil {
			runs = []database.RunSummary{}
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No verification runs found in the database.")
		return nil
	}

	fmt.Fprintf(out, "Verification runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-15s  %-6s  %-26s  %s\n", "ID", "Date", "Age", "Status", "Counts", "Directory")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 96))

	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-15s  %-6s  %-26s  %s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			humanize.Time(run.StartedAt),
			runStatus(run),
			formatCounts(run),
			run.Dir,
		)
	}

	fmt.Fprintln(out, "\nUse 'resultcheck history --show <id>' to see a run in detail.")

	return nil
}

// showRun prints one stored run.
func showRun(ctx context.Context, db *database.HistoryDB, out io.Writer, id int64, jsonOutput bool) error {
	run, err := db.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get run %d: %w", id, err)
	}
	if run == nil {
		return fmt.Errorf("run with ID %d not found", id)
	}

	if jsonOutput {
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithVersion(getVersion())).Write(run)
		return err
	}

	fmt.Fprintf(out, "Run #%d  %s  (%s)\n", id, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.Dir)
	_, err = report.NewSimpleWriter(out, report.WithSummary(true)).Write(run)
	return err
}

// runStatus returns PASS when every case of the run passed and FAIL otherwise.
func runStatus(run database.RunSummary) string {
	if run.AllPassed() {
		return "PASS"
	}
	return "FAIL"
}

// formatCounts formats the outcome counts of a run.
func formatCounts(run database.RunSummary) string {
	return fmt.Sprintf("%d/%d ok, %d fail, %d err", run.Passed, run.Total, run.Failed, run.Errored)
}

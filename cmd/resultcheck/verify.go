package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/resultcheck/internal/config"
	"github.com/nao1215/resultcheck/internal/database"
	rclog "github.com/nao1215/resultcheck/internal/log"
	"github.com/nao1215/resultcheck/internal/model"
	"github.com/nao1215/resultcheck/internal/report"
	"github.com/nao1215/resultcheck/internal/verify"
	"github.com/spf13/cobra"
)

// ErrNotPassed is returned in strict mode when at least one case did not pass.
var ErrNotPassed = errors.New("verification did not pass")

// NewVerifyCmd creates the verify command.
// It does the same as running resultcheck without a subcommand.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare every variant result with the sequential result",
		Long: `Verify reads result.txt and each variant result file, removes all
whitespace and reports whether each variant matches the reference.

A missing or unreadable file is reported as ERROR for that variant only;
the remaining variants are still checked.

Examples:
  # Verify result files in the current directory
  resultcheck verify

  # Verify result files written to another directory
  resultcheck verify --dir out/run1

  # Fail with exit status 1 unless every variant matches
  resultcheck verify --strict

  # Also write a Markdown report
  resultcheck verify --markdown -o reports/verify.md

  # Keep the run in the history database
  resultcheck verify --history`,
		Args: cobra.NoArgs,
		RunE: runVerifyCmd,
	}

	addVerifyFlags(cmd)

	return cmd
}

// addVerifyFlags registers the verification flags on cmd.
// The root command and the verify command share them.
func addVerifyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "d", config.DefaultDir,
		"Directory containing the result files")
	cmd.Flags().IntP("parallel", "p", config.DefaultParallelism,
		"Number of comparisons run at once (report order is unchanged)")
	cmd.Flags().BoolP("strict", "s", false,
		"Exit with status 1 when any variant does not match")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .resultcheck in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("history", false,
		"Save the run to the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
}

// runVerifyCmd executes the verification pass.
func runVerifyCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runVerification(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// newLogger builds the text or JSON logger selected by cfg.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogJSON {
		return rclog.NewJSONLogger(w, cfg.Verbose)
	}
	return rclog.NewLogger(w, cfg.Verbose)
}

// getBoolFlag retrieves a bool flag from the command or the root's
// persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// buildConfig creates a Config from defaults, the config file and the
// command flags, in that order. Only flags set on the command line override
// values from the file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently keep defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("dir") {
		if cfg.Dir, err = flags.GetString("dir"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("json") || flags.Changed("markdown") {
		jsonOutput, err := flags.GetBool("json")
		if err != nil {
			return nil, err
		}
		markdownOutput, err := flags.GetBool("markdown")
		if err != nil {
			return nil, err
		}
		if cfg.Format, err = config.FormatFromFlags(jsonOutput, markdownOutput); err != nil {
			return nil, err
		}
	}

	if flags.Changed("output") {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("parallel") {
		if cfg.Parallelism, err = flags.GetInt("parallel"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("strict") {
		if cfg.Strict, err = flags.GetBool("strict"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("history") {
		if cfg.SaveHistory, err = flags.GetBool("history"); err != nil {
			return nil, err
		}
	}

	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getBoolFlag(cmd, "verbose")
	cfg.LogJSON = getBoolFlag(cmd, "log-json")

	return cfg, nil
}

// runVerification runs every fixed case, prints the report and optionally
// stores the run. The text report always goes to out.
func runVerification(ctx context.Context, cfg *config.Config, out, errOut io.Writer, logger *slog.Logger) error {
	v := verify.New(
		verify.WithLogger(logger),
		verify.WithConcurrency(cfg.Parallelism),
		verify.WithDir(cfg.Dir),
	)

	result := v.Run(ctx, model.DefaultCases())

	if err := outputReport(cfg, out, result); err != nil {
		return err
	}

	if cfg.SaveHistory {
		id, err := saveRun(ctx, cfg.DBDir, result)
		if err != nil {
			return err
		}
		logger.Info("run saved to history", "id", id, "dir", cfg.DBDir)
		fmt.Fprintf(errOut, "Saved run #%d to history\n", id)
	}

	if cfg.Strict && !result.AllPassed() {
		return fmt.Errorf("%w: %d of %d variants matched",
			ErrNotPassed, result.PassCount(), result.Total())
	}

	return nil
}

// newFormatWriter returns the report writer for format.
func newFormatWriter(format config.Format, output io.Writer) report.Writer {
	switch format {
	case config.FormatJSON:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case config.FormatMarkdown:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output)
	}
}

// outputReport writes result in the configured format.
// Without a report file the chosen format goes to out. With a report file,
// out still receives the console report and the file receives the chosen
// format.
func outputReport(cfg *config.Config, out io.Writer, result *model.VerificationReport) error {
	if cfg.ReportFile == "" {
		_, err := newFormatWriter(cfg.Format, out).Write(result)
		return err
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := report.NewMultiWriter(
		report.NewSimpleWriter(out),
		newFormatWriter(cfg.Format, f),
	)
	if _, err := w.Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return f.Close()
}

// saveRun stores result in the history database in dbDir.
func saveRun(ctx context.Context, dbDir string, result *model.VerificationReport) (int64, error) {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// The run is saved even if the pass was interrupted.
	id, err := db.SaveRun(context.WithoutCancel(ctx), result)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for resultcheck.
// Running it without a subcommand performs one verification pass.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resultcheck",
		Short: "Verify variant result files against the sequential result",
		Long: `resultcheck compares the result files written by the parallel variants
of a computation with the sequential reference result.

All whitespace is removed from both files before they are compared, so
line wrapping, indentation and spacing never cause a mismatch.

Checked files (relative to the working directory or --dir):
  result.txt           sequential reference
  result1.txt          Variant 1 (Standard)
  resultScatter.txt    Variant 2 (Scatter)
  resultAsync.txt      Variant 3 (Async)
  resultOptimized.txt  Variant 1.1 (Optimized)`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		RunE:          runVerifyCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	addVerifyFlags(cmd)

	// Add subcommands
	cmd.AddCommand(NewVerifyCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

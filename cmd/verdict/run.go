package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"veridian-hq/verdict/pkg/cli"
)

var runFlags struct {
	workers int
	dryRun  bool
}

var runCmd = &cobra.Command{
	Use:   "run FILE...",
	Short: "Evaluate rules against one or more batch files",
	Long: `Evaluate all configured rules against the records in each batch file.

Each file is processed independently: records are read from CSV, every rule
is evaluated against every record, and violations are written to the
configured sink. Rules that fail to parse or evaluate are reported but never
abort the batch.

Examples:
  # Process a single batch file
  verdict run transactions.csv

  # Process several files with a custom config
  verdict run --config /etc/verdict/config.yaml a.csv b.csv

  # Override evaluation concurrency
  verdict run --workers 8 transactions.csv

  # Validate config without processing
  verdict run --dry-run transactions.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatches,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runFlags.workers, "workers", "w", 0, "override evaluation concurrency")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without processing")
}

func runBatches(cmd *cobra.Command, args []string) error {
	deps, err := buildRuntime(false, runFlags.workers)
	if err != nil {
		return err
	}
	defer deps.Close()

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	ctx := cli.SetupSignalHandler()

	var totalViolations, totalFailures int
	for _, path := range args {
		report, err := deps.processor.ProcessFile(ctx, path)
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("processing %q: %w", path, err))
		}

		fmt.Printf("%s: %d records, %d rules, %d violations",
			path, report.Records, report.Rules, report.Violations)
		if len(report.Failures) > 0 {
			fmt.Printf(", %d rule failures", len(report.Failures))
		}
		if len(report.Skipped) > 0 {
			fmt.Printf(", %d records skipped", len(report.Skipped))
		}
		if report.Partial {
			fmt.Print(" (partial)")
		}
		fmt.Println()

		for _, f := range report.Failures {
			fmt.Printf("  ✗ rule %s (%s): %s\n", f.RuleID, f.Kind, f.Message)
		}

		totalViolations += report.Violations
		totalFailures += len(report.Failures)

		if ctx.Err() != nil {
			return cli.NewCommandError("run", ctx.Err())
		}
	}

	fmt.Printf("Total: %d violation(s), %d rule failure(s)\n", totalViolations, totalFailures)
	return nil
}

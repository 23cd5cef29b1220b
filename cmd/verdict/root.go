package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "verdict",
	Short: "Verdict - batch rule evaluation service",
	Long: `Verdict evaluates data quality rules against batches of records.

It reads batches of typed records from CSV files, evaluates every configured
rule against every record, and records a violation for each record a rule
condition holds true on:
  - Rules are comparison and boolean expressions over record fields
  - A rule that cannot be parsed or evaluated never aborts the batch
  - Violations are persisted to SQLite or streamed as JSON lines`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

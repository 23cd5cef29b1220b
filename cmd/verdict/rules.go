package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veridian-hq/verdict/pkg/cli"
	"veridian-hq/verdict/pkg/config"
	"veridian-hq/verdict/pkg/predicate"
	"veridian-hq/verdict/pkg/rules"
	"veridian-hq/verdict/pkg/rules/source"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate rule definitions",
}

var lintFlags struct {
	file   string
	format string
}

var rulesLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check rule definitions for parse errors",
	Long: `Parse every rule condition and report definitions that are invalid.

The lint command loads rule definitions from a YAML file or directory and
runs each condition through the expression parser. It exits non-zero if any
condition fails to parse.

Examples:
  # Lint a single rule file
  verdict rules lint --file rules.yaml

  # Lint a directory of rule files
  verdict rules lint --file rules/

  # JSON output for CI/CD
  verdict rules lint --file rules.yaml --format json`,
	RunE: lintRules,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rule definitions from the configured source",
	RunE:  listRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesLintCmd)
	rulesCmd.AddCommand(rulesListCmd)

	rulesLintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "rule file or directory to validate")
	rulesLintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult is the lint outcome for a single rule definition.
type LintResult struct {
	RuleID    string `json:"rule_id"`
	Condition string `json:"condition"`
	Valid     bool   `json:"valid"`
	Error     string `json:"error,omitempty"`
}

func lintRules(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" {
		return fmt.Errorf("--file must be specified")
	}

	src := source.NewFileSource(lintFlags.file, nil)
	defs, err := src.LoadRules(cmd.Context())
	if err != nil {
		return cli.NewCommandError("rules lint", err)
	}

	results := make([]LintResult, 0, len(defs))
	var invalid int
	for _, def := range defs {
		result := LintResult{RuleID: def.ID, Condition: def.Condition, Valid: true}
		if _, err := predicate.Parse(def.Condition); err != nil {
			result.Valid = false
			result.Error = err.Error()
			invalid++
		}
		results = append(results, result)
	}

	if lintFlags.format == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		if err := formatter.FormatTo(os.Stdout, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s\n", r.RuleID)
			} else {
				fmt.Printf("✗ %s: %s\n", r.RuleID, r.Error)
			}
		}
		fmt.Printf("Summary: %d rule(s), %d invalid\n", len(results), invalid)
	}

	if invalid > 0 {
		return cli.NewCommandError("rules lint", fmt.Errorf("%d invalid rule(s)", invalid))
	}
	return nil
}

func listRules(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	var defs []rules.Definition
	switch cfg.Rules.Mode {
	case "sqlite":
		src, err := source.NewSQLiteSource(source.SQLiteSourceConfig{Path: cfg.Rules.SQLitePath}, nil)
		if err != nil {
			return cli.NewCommandError("rules list", err)
		}
		defer src.Close()
		defs, err = src.LoadRules(cmd.Context())
		if err != nil {
			return cli.NewCommandError("rules list", err)
		}
	default:
		src := source.NewFileSource(cfg.Rules.FilePath, nil)
		defs, err = src.LoadRules(cmd.Context())
		if err != nil {
			return cli.NewCommandError("rules list", err)
		}
	}

	for _, def := range defs {
		fmt.Printf("%s\t%s\t%s\n", def.ID, def.Condition, def.Description)
	}
	fmt.Printf("%d rule(s)\n", len(defs))
	return nil
}

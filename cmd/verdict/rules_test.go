package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRuleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLintRulesValidFile(t *testing.T) {
	lintFlags.file = writeRuleFile(t, `
rules:
  - id: R-NEG
    description: amount must not be negative
    condition: amount < 0
  - id: R-STATUS
    condition: status == "ERROR"
`)
	lintFlags.format = "text"

	if err := lintRules(rulesLintCmd, nil); err != nil {
		t.Errorf("lintRules() with valid file returned error: %v", err)
	}
}

func TestLintRulesInvalidCondition(t *testing.T) {
	lintFlags.file = writeRuleFile(t, `
rules:
  - id: R-BAD
    condition: amount << 0
`)
	lintFlags.format = "text"

	if err := lintRules(rulesLintCmd, nil); err == nil {
		t.Error("lintRules() with invalid condition should return error")
	}
}

func TestLintRulesNonexistentFile(t *testing.T) {
	lintFlags.file = filepath.Join(t.TempDir(), "absent.yaml")
	lintFlags.format = "text"

	if err := lintRules(rulesLintCmd, nil); err == nil {
		t.Error("lintRules() with nonexistent file should return error")
	}
}

func TestLintRulesNoFile(t *testing.T) {
	lintFlags.file = ""

	if err := lintRules(rulesLintCmd, nil); err == nil {
		t.Error("lintRules() without --file should return error")
	}
}

func TestLintRulesJSONFormat(t *testing.T) {
	lintFlags.file = writeRuleFile(t, `
rules:
  - id: R-OK
    condition: amount > 100
`)
	lintFlags.format = "json"

	if err := lintRules(rulesLintCmd, nil); err != nil {
		t.Errorf("lintRules() JSON output returned error: %v", err)
	}
}

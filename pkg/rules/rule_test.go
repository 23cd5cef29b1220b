package rules

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"veridian-hq/verdict/pkg/batch"
	"veridian-hq/verdict/pkg/predicate"
	"veridian-hq/verdict/pkg/record"
)

func amountBatch(t *testing.T, amounts ...int64) []record.Record {
	t.Helper()
	batch := make([]record.Record, 0, len(amounts))
	for _, a := range amounts {
		batch = append(batch, record.MustRecord(record.Field{Name: "amount", Value: record.Int(a)}))
	}
	return batch
}

func TestNew_ParseFailure(t *testing.T) {
	_, err := New("R1", "broken", "amount << 0")
	if err == nil {
		t.Fatal("New() expected parse error")
	}
	var perr *predicate.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error type = %T, want wrapped *predicate.ParseError", err)
	}
	if !strings.Contains(err.Error(), "R1") {
		t.Errorf("error %q should name the rule", err)
	}
}

func TestApply_NegativeAmounts(t *testing.T) {
	// Scenario: amounts 100, -50, 200, -10 against "amount < 0" flags the two
	// negative records, in batch order.
	rule, err := New("R1", "amount must not be negative", "amount < 0")
	if err != nil {
		t.Fatal(err)
	}

	batch := amountBatch(t, 100, -50, 200, -10)
	violations, skipped, err := rule.Apply(context.Background(), batch)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %d records, want 0", len(skipped))
	}
	if len(violations) != 2 {
		t.Fatalf("violations = %d, want 2", len(violations))
	}

	if got := string(violations[0].RecordSnapshot); got != `{"amount":-50}` {
		t.Errorf("first violation snapshot = %s, want amount -50", got)
	}
	if got := string(violations[1].RecordSnapshot); got != `{"amount":-10}` {
		t.Errorf("second violation snapshot = %s, want amount -10", got)
	}

	for _, v := range violations {
		if v.RuleID != "R1" || v.RuleDescription != "amount must not be negative" {
			t.Errorf("violation identity = %q %q", v.RuleID, v.RuleDescription)
		}
		if v.DetectedAt.IsZero() {
			t.Error("DetectedAt not assigned")
		}
	}
}

func TestApply_NoViolations(t *testing.T) {
	rule, err := New("R1", "", "amount < 0")
	if err != nil {
		t.Fatal(err)
	}

	violations, _, err := rule.Apply(context.Background(), amountBatch(t, 100, 50))
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 0 {
		t.Errorf("violations = %d, want 0", len(violations))
	}
}

func TestApply_MissingFieldIsNotViolation(t *testing.T) {
	// Scenario: second record has no status field; Unknown is not a match.
	rule, err := New("R1", "", "status == 'ERROR'")
	if err != nil {
		t.Fatal(err)
	}

	batch := []record.Record{
		record.MustRecord(record.Field{Name: "status", Value: record.Text("OK")}),
		record.MustRecord(),
	}

	violations, skipped, err := rule.Apply(context.Background(), batch)
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 0 {
		t.Errorf("violations = %d, want 0 (missing field is Unknown)", len(violations))
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %d, want 0 (Unknown is not a fault)", len(skipped))
	}
}

func TestApply_MatchIffEvalTrue(t *testing.T) {
	// apply(rule, [r]) is non-empty iff the predicate evaluates True for r.
	rule, err := New("R1", "", "amount < 0")
	if err != nil {
		t.Fatal(err)
	}
	expr, err := predicate.Parse("amount < 0")
	if err != nil {
		t.Fatal(err)
	}

	records := []record.Record{
		record.MustRecord(record.Field{Name: "amount", Value: record.Int(-1)}),
		record.MustRecord(record.Field{Name: "amount", Value: record.Int(1)}),
		record.MustRecord(record.Field{Name: "amount", Value: record.Null()}),
		record.MustRecord(),
	}

	for i, rec := range records {
		violations, _, err := rule.Apply(context.Background(), []record.Record{rec})
		if err != nil {
			t.Fatal(err)
		}
		want := predicate.Eval(expr, rec) == predicate.True
		if got := len(violations) > 0; got != want {
			t.Errorf("record %d: violation=%v, eval-True=%v", i, got, want)
		}
	}
}

func TestApply_CancellationAtRecordBoundary(t *testing.T) {
	rule, err := New("R1", "", "amount < 0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	violations, _, err := rule.Apply(ctx, amountBatch(t, -1, -2))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Apply() error = %v, want context.Canceled", err)
	}
	if len(violations) != 0 {
		t.Errorf("violations = %d, want 0 for immediate cancellation", len(violations))
	}
}

func TestApply_SnapshotIsolatedFromBatch(t *testing.T) {
	rule, err := New("R1", "", "amount < 0")
	if err != nil {
		t.Fatal(err)
	}

	batch := amountBatch(t, -5)
	violations, _, err := rule.Apply(context.Background(), batch)
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 1 {
		t.Fatal("want one violation")
	}

	snapshot := string(violations[0].RecordSnapshot)
	if snapshot != `{"amount":-5}` {
		t.Errorf("snapshot = %s", snapshot)
	}
}

func TestBuild_SeparatesFailures(t *testing.T) {
	defs := []Definition{
		{ID: "R1", Description: "valid", Condition: "amount < 0"},
		{ID: "R2", Description: "invalid", Condition: "amount << 0"},
		{ID: "R3", Description: "valid", Condition: "status == 'ERROR'"},
	}

	built, failures := Build(defs)
	if len(built) != 2 {
		t.Errorf("built = %d rules, want 2", len(built))
	}
	if len(failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(failures))
	}
	if failures[0].RuleID != "R2" || failures[0].Kind != FailureParse {
		t.Errorf("failure = %+v, want R2/parse", failures[0])
	}
	if built[0].ID() != "R1" || built[1].ID() != "R3" {
		t.Errorf("built order = %s, %s", built[0].ID(), built[1].ID())
	}
}

func TestApply_NonFiniteCSVAmountsNeverFlagged(t *testing.T) {
	// A "NaN" cell comes off the CSV reader as text, so equality against a
	// number is Unknown and the record is not flagged. The literal zero row
	// still is, and its snapshot stays valid JSON.
	records, err := batch.ReadCSV(strings.NewReader("amount\nNaN\nInf\n0\n"))
	if err != nil {
		t.Fatal(err)
	}

	rule, err := New("R1", "amount must not be zero", "amount == 0")
	if err != nil {
		t.Fatal(err)
	}

	violations, skipped, err := rule.Apply(context.Background(), records)
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %d records, want 0", len(skipped))
	}
	if len(violations) != 1 {
		t.Fatalf("violations = %d, want only the zero row", len(violations))
	}
	if got := string(violations[0].RecordSnapshot); got != `{"amount":0}` {
		t.Errorf("snapshot = %s, want the literal zero row", got)
	}
	if !json.Valid(violations[0].RecordSnapshot) {
		t.Errorf("snapshot %s is not valid JSON", violations[0].RecordSnapshot)
	}
}

package rules

import (
	"context"
	"fmt"
	"time"

	"veridian-hq/verdict/pkg/predicate"
	"veridian-hq/verdict/pkg/record"
)

// Definition is the raw form of a rule as supplied by an external rule
// source: an identifier, a free-text description, and a condition text in the
// predicate grammar.
type Definition struct {
	// ID uniquely identifies the rule within a run.
	ID string `yaml:"id" json:"id"`

	// Description is free text explaining what the rule checks.
	Description string `yaml:"description" json:"description"`

	// Condition is the boolean predicate over record fields, e.g.
	// "amount < 0" or "status == 'ERROR'".
	Condition string `yaml:"condition" json:"condition"`
}

// Rule binds an identifier and description to a parsed predicate expression.
// The expression is built once at construction and never mutated; a Rule is
// safe for concurrent use.
type Rule struct {
	id          string
	description string
	expr        predicate.Expr
}

// New parses the condition text and returns the rule. A condition that does
// not match the grammar fails with the wrapped *predicate.ParseError.
func New(id, description, condition string) (*Rule, error) {
	expr, err := predicate.Parse(condition)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", id, err)
	}
	return &Rule{id: id, description: description, expr: expr}, nil
}

// ID returns the rule identifier.
func (r *Rule) ID() string {
	return r.id
}

// Description returns the rule description.
func (r *Rule) Description() string {
	return r.description
}

// Condition returns the canonical rendering of the parsed predicate.
func (r *Rule) Condition() string {
	return r.expr.String()
}

// Apply evaluates the rule against every record of the batch in input order
// and returns a violation for each record the predicate holds True for.
// False and Unknown both mean "no violation".
//
// Apply never panics to its caller: an internal fault while evaluating one
// record is recovered at record granularity and reported as a SkippedRecord,
// and evaluation of the remaining records continues. The only error Apply
// returns is the context's, observed at record boundaries; the violations
// produced so far accompany it.
func (r *Rule) Apply(ctx context.Context, batch []record.Record) ([]Violation, []SkippedRecord, error) {
	var violations []Violation
	var skipped []SkippedRecord

	for i, rec := range batch {
		if err := ctx.Err(); err != nil {
			return violations, skipped, err
		}

		result, err := r.evalRecord(rec)
		if err != nil {
			skipped = append(skipped, SkippedRecord{
				RuleID:  r.id,
				Index:   i,
				Message: err.Error(),
			})
			continue
		}

		if result == predicate.True {
			violations = append(violations, Violation{
				RuleID:          r.id,
				RuleDescription: r.description,
				RecordSnapshot:  rec.Snapshot(),
				DetectedAt:      time.Now().UTC(),
			})
		}
	}

	return violations, skipped, nil
}

// evalRecord evaluates one record, converting an evaluator panic into an
// error so a single bad record cannot abort the batch.
func (r *Rule) evalRecord(rec record.Record) (result predicate.Tribool, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = predicate.Unknown
			err = fmt.Errorf("evaluation fault: %v", p)
		}
	}()

	return predicate.Eval(r.expr, rec), nil
}

// Build constructs rules from definitions. Definitions whose condition text
// does not parse become RuleFailures; the remaining rules are returned in
// definition order.
func Build(defs []Definition) ([]*Rule, []RuleFailure) {
	var built []*Rule
	var failures []RuleFailure

	for _, def := range defs {
		rule, err := New(def.ID, def.Description, def.Condition)
		if err != nil {
			failures = append(failures, RuleFailure{
				RuleID:  def.ID,
				Kind:    FailureParse,
				Message: err.Error(),
			})
			continue
		}
		built = append(built, rule)
	}

	return built, failures
}

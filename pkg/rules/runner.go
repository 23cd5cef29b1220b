package rules

import (
	"context"
	"fmt"
	"sync"

	"veridian-hq/verdict/pkg/record"
)

// Config configures a Runner.
type Config struct {
	// Workers is the number of rules evaluated concurrently. Each worker
	// processes one rule to completion before taking the next; records within
	// a rule are always evaluated sequentially so per-rule output order is
	// preserved. Values below 1 mean sequential evaluation.
	Workers int
}

// DefaultConfig returns the default runner configuration.
func DefaultConfig() Config {
	return Config{Workers: 1}
}

// Result is the aggregate outcome of one run: violations grouped by rule in
// input rule order and, within each rule, in input record order, plus every
// rule failure and skipped-record diagnostic. Nothing is silently dropped.
type Result struct {
	// Violations from all successfully evaluated rules, in rule order then
	// record order.
	Violations []Violation

	// Failures lists rules that could not be evaluated for this batch.
	Failures []RuleFailure

	// Skipped lists single records that faulted during evaluation.
	Skipped []SkippedRecord

	// Partial is true when cancellation stopped the run before every rule was
	// evaluated. Violations of completed rules are still present.
	Partial bool
}

// Runner evaluates an ordered list of rules against a shared, read-only
// batch with per-rule failure isolation. A Runner holds no state between
// Run calls and is safe for concurrent use.
type Runner struct {
	workers int
}

// NewRunner creates a runner.
func NewRunner(cfg Config) *Runner {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Runner{workers: workers}
}

// ruleOutcome is one rule's contribution before deterministic aggregation.
type ruleOutcome struct {
	ran        bool
	violations []Violation
	skipped    []SkippedRecord
	failure    *RuleFailure
}

// Run applies every rule to the batch. One rule's failure never aborts the
// others; cancellation yields a partial result rather than an error.
func (r *Runner) Run(ctx context.Context, rules []*Rule, batch []record.Record) *Result {
	outcomes := make([]ruleOutcome, len(rules))

	if r.workers > 1 && len(rules) > 1 {
		r.runPooled(ctx, rules, batch, outcomes)
	} else {
		r.runSequential(ctx, rules, batch, outcomes)
	}

	return aggregate(outcomes)
}

func (r *Runner) runSequential(ctx context.Context, rules []*Rule, batch []record.Record, outcomes []ruleOutcome) {
	for i, rule := range rules {
		if ctx.Err() != nil {
			return
		}
		outcomes[i] = evaluateRule(ctx, rule, batch)
	}
}

func (r *Runner) runPooled(ctx context.Context, rules []*Rule, batch []record.Record, outcomes []ruleOutcome) {
	workers := r.workers
	if workers > len(rules) {
		workers = len(rules)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				outcomes[i] = evaluateRule(ctx, rules[i], batch)
			}
		}()
	}

feed:
	for i := range rules {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
}

// evaluateRule runs one rule to completion, converting a whole-rule panic
// into an evaluation failure and a cancellation into a cancelled failure.
// Violations of an interrupted rule are discarded; only completed rules
// contribute output, which keeps results reproducible.
func evaluateRule(ctx context.Context, rule *Rule, batch []record.Record) (out ruleOutcome) {
	out.ran = true

	defer func() {
		if p := recover(); p != nil {
			out.violations = nil
			out.skipped = nil
			out.failure = &RuleFailure{
				RuleID:  rule.ID(),
				Kind:    FailureEvaluation,
				Message: fmt.Sprintf("rule evaluation fault: %v", p),
			}
		}
	}()

	violations, skipped, err := rule.Apply(ctx, batch)
	if err != nil {
		out.failure = &RuleFailure{
			RuleID:  rule.ID(),
			Kind:    FailureCancelled,
			Message: err.Error(),
		}
		return out
	}

	out.violations = violations
	out.skipped = skipped
	return out
}

// aggregate assembles per-rule outcomes into a Result in rule order.
func aggregate(outcomes []ruleOutcome) *Result {
	res := &Result{}

	for _, o := range outcomes {
		if !o.ran {
			res.Partial = true
			continue
		}
		if o.failure != nil {
			res.Failures = append(res.Failures, *o.failure)
			if o.failure.Kind == FailureCancelled {
				res.Partial = true
			}
			continue
		}
		res.Violations = append(res.Violations, o.violations...)
		res.Skipped = append(res.Skipped, o.skipped...)
	}

	return res
}

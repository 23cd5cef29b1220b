// Package rules implements the evaluation core: a Rule binds an identifier
// and description to a parsed predicate expression, and a Runner applies an
// ordered list of rules to a batch of records with per-rule failure
// isolation.
//
// # Failure isolation
//
// Failures are recovered at the smallest granularity that preserves forward
// progress. A single record that faults during evaluation becomes a
// SkippedRecord and the rest of the batch continues; a rule whose condition
// does not parse, or that faults wholesale, becomes a RuleFailure and the
// remaining rules continue; cancellation stops the run at a record or rule
// boundary and marks the Result partial. No error or panic escapes Run — all
// failure information comes back as structured data alongside the
// violations, so callers can alert, retry, or skip programmatically instead
// of reading logs.
//
// # Ordering
//
// Violations appear grouped by rule in the input rule order and, within each
// rule, in the batch's record order. Two runs over identical input produce
// identical results except for detection timestamps, regardless of the
// worker count.
//
// The package performs no I/O. Loading rule definitions and persisting
// violations belong to the source and sink packages.
package rules

package rules

import (
	"encoding/json"
	"time"
)

// Violation asserts that a specific rule matched a specific record. It is
// pure data: the runner performs no I/O when creating it, and ownership
// passes to the caller, which typically forwards it to a sink.
type Violation struct {
	// RuleID is the identifier of the rule that matched.
	RuleID string `json:"rule_id"`

	// RuleDescription is the rule's human-readable description.
	RuleDescription string `json:"rule_description"`

	// RecordSnapshot is the deterministic serialization of the offending
	// record's fields, captured at detection time so later mutation of the
	// batch cannot change a reported violation.
	RecordSnapshot json.RawMessage `json:"record_snapshot"`

	// DetectedAt is the timestamp assigned when the violation was created.
	DetectedAt time.Time `json:"detected_at"`
}

// FailureKind classifies why a rule could not be evaluated.
type FailureKind string

const (
	// FailureParse means the rule's condition text did not parse.
	FailureParse FailureKind = "parse"

	// FailureEvaluation means a systemic fault aborted the rule's evaluation.
	FailureEvaluation FailureKind = "evaluation"

	// FailureCancelled means cancellation interrupted the rule before it
	// finished the batch.
	FailureCancelled FailureKind = "cancelled"
)

// RuleFailure reports that one rule could not be evaluated for a batch.
// Failures are returned alongside successful violations; one failed rule
// never aborts the run.
type RuleFailure struct {
	// RuleID is the identifier of the failed rule.
	RuleID string `json:"rule_id"`

	// Kind classifies the failure.
	Kind FailureKind `json:"kind"`

	// Message is the failure detail.
	Message string `json:"message"`
}

// SkippedRecord reports that a single record could not be evaluated against a
// rule due to an internal fault (not a normal Unknown result). The rest of
// the batch still evaluates.
type SkippedRecord struct {
	// RuleID is the rule that was being evaluated.
	RuleID string `json:"rule_id"`

	// Index is the record's position in the input batch.
	Index int `json:"index"`

	// Message is the fault detail.
	Message string `json:"message"`
}

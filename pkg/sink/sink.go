package sink

import (
	"context"

	"veridian-hq/verdict/pkg/rules"
)

// Sink receives the violations produced by a run. Persistence, batching,
// retry, and external identifiers are sink concerns; the evaluation core
// only guarantees logical ordering.
type Sink interface {
	// Write persists the violations. Implementations must preserve the given
	// order.
	Write(ctx context.Context, violations []rules.Violation) error
}

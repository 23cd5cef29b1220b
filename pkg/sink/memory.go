package sink

import (
	"context"
	"sync"

	"veridian-hq/verdict/pkg/rules"
)

// MemorySink collects violations in memory, for tests and dry runs.
type MemorySink struct {
	mu         sync.Mutex
	violations []rules.Violation
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write appends the violations.
func (s *MemorySink) Write(ctx context.Context, violations []rules.Violation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.violations = append(s.violations, violations...)
	return nil
}

// Violations returns a copy of everything written so far.
func (s *MemorySink) Violations() []rules.Violation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]rules.Violation, len(s.violations))
	copy(out, s.violations)
	return out
}

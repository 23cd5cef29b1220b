package source

import (
	"context"

	"veridian-hq/verdict/pkg/rules"
)

// MemorySource is an in-memory rule source for tests and embedding.
type MemorySource struct {
	defs []rules.Definition
}

// NewMemorySource creates a source over the given definitions.
func NewMemorySource(defs ...rules.Definition) *MemorySource {
	return &MemorySource{defs: defs}
}

// LoadRules returns a copy of the definitions.
func (s *MemorySource) LoadRules(ctx context.Context) ([]rules.Definition, error) {
	out := make([]rules.Definition, len(s.defs))
	copy(out, s.defs)
	return out, nil
}

// SetRules replaces the definitions (for tests).
func (s *MemorySource) SetRules(defs []rules.Definition) {
	s.defs = defs
}

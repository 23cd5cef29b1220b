package source

import (
	"context"

	"veridian-hq/verdict/pkg/rules"
)

// Source supplies rule definitions to the pipeline. Parsing the condition
// text into predicates happens downstream (rules.Build), so a source only
// deals in raw definitions and per-rule parse failures never abort a load.
type Source interface {
	// LoadRules loads all rule definitions from the source.
	LoadRules(ctx context.Context) ([]rules.Definition, error)
}

// Package source provides rule definition sources: in-memory, YAML files,
// and a SQLite rules_definition table. A source returns raw definitions;
// condition parsing and per-rule failure isolation happen in package rules.
package source

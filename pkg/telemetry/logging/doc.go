// Package logging builds the process-wide structured logger.
//
// New returns a *slog.Logger configured from the telemetry section of the
// application config: JSON or text output, level filtering, and optional
// source locations. Components take a logger and qualify it with
// With("component", ...).
package logging

// Package metrics exposes Prometheus metrics for evaluation runs.
//
// A Collector owns its registry and records run outcomes, violation counts,
// rule failures, and skipped records. The Handler method serves the registry
// in the Prometheus exposition format.
package metrics

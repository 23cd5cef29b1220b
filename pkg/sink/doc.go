// Package sink delivers evaluation output to its destinations.
//
// A Sink receives the violations produced by one run and persists them in
// order. Three implementations are provided: MemorySink for tests and
// embedding, JSONLSink for streaming to a file or pipe, and SQLiteSink for
// the durable rule_violations store that downstream reporting reads from.
package sink

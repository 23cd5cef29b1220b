// Package pipeline composes ingestion, evaluation, and output.
//
// A Processor runs one batch file end to end: read the CSV, load rule
// definitions from the configured source, evaluate every rule against every
// record, and persist the violations to the configured sink. A Watcher feeds
// the processor from a drop directory as files arrive, and a Scheduler
// sweeps that directory on a cron schedule for files the watcher missed,
// pruning processed files past their retention window.
package pipeline

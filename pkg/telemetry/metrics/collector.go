package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures metric registration.
type Config struct {
	// Namespace is the metric name prefix (e.g. "veridian").
	Namespace string

	// Subsystem is the second name component (e.g. "verdict").
	Subsystem string
}

// Collector registers and records all evaluation metrics.
//
// Metrics:
//   - <ns>_<sub>_runs_total: Completed runs by outcome ("complete", "partial", "error")
//   - <ns>_<sub>_run_duration_seconds: End-to-end run duration histogram
//   - <ns>_<sub>_violations_total: Violations detected, by rule
//   - <ns>_<sub>_rule_failures_total: Rules that produced no verdicts, by failure kind
//   - <ns>_<sub>_records_skipped_total: Records skipped by per-record recovery, by rule
//   - <ns>_<sub>_rules_evaluated_total: Rules evaluated across all runs
//   - <ns>_<sub>_records_ingested_total: Records read from input batches
type Collector struct {
	registry *prometheus.Registry

	runsTotal            *prometheus.CounterVec
	runDuration          prometheus.Histogram
	violationsTotal      *prometheus.CounterVec
	ruleFailuresTotal    *prometheus.CounterVec
	recordsSkippedTotal  *prometheus.CounterVec
	rulesEvaluatedTotal  prometheus.Counter
	recordsIngestedTotal prometheus.Counter
}

// NewCollector creates a collector and registers its metrics.
// If registry is nil, a fresh registry is created.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of evaluation runs",
			},
			[]string{"outcome"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of evaluation runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4.4min
			},
		),

		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "violations_total",
				Help:      "Total number of rule violations detected",
			},
			[]string{"rule_id"},
		),

		ruleFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_failures_total",
				Help:      "Total number of rules that failed to produce verdicts",
			},
			[]string{"kind"},
		),

		recordsSkippedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "records_skipped_total",
				Help:      "Total number of records skipped during evaluation",
			},
			[]string{"rule_id"},
		),

		rulesEvaluatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rules_evaluated_total",
				Help:      "Total number of rules evaluated across all runs",
			},
		),

		recordsIngestedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "records_ingested_total",
				Help:      "Total number of records read from input batches",
			},
		),
	}

	registry.MustRegister(
		c.runsTotal,
		c.runDuration,
		c.violationsTotal,
		c.ruleFailuresTotal,
		c.recordsSkippedTotal,
		c.rulesEvaluatedTotal,
		c.recordsIngestedTotal,
	)

	return c
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordRun records the outcome and duration of a completed run.
func (c *Collector) RecordRun(outcome string, duration time.Duration) {
	c.runsTotal.WithLabelValues(outcome).Inc()
	c.runDuration.Observe(duration.Seconds())
}

// RecordViolations adds to the violation count for a rule.
func (c *Collector) RecordViolations(ruleID string, count int) {
	if count > 0 {
		c.violationsTotal.WithLabelValues(ruleID).Add(float64(count))
	}
}

// RecordRuleFailure counts a rule that produced no verdicts.
func (c *Collector) RecordRuleFailure(kind string) {
	c.ruleFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordSkipped adds to the skipped-record count for a rule.
func (c *Collector) RecordSkipped(ruleID string, count int) {
	if count > 0 {
		c.recordsSkippedTotal.WithLabelValues(ruleID).Add(float64(count))
	}
}

// RecordRulesEvaluated counts rules evaluated in one run.
func (c *Collector) RecordRulesEvaluated(count int) {
	if count > 0 {
		c.rulesEvaluatedTotal.Add(float64(count))
	}
}

// RecordRecordsIngested counts records read from one batch.
func (c *Collector) RecordRecordsIngested(count int) {
	if count > 0 {
		c.recordsIngestedTotal.Add(float64(count))
	}
}

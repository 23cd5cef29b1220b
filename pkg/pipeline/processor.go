package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"veridian-hq/verdict/pkg/batch"
	"veridian-hq/verdict/pkg/record"
	"veridian-hq/verdict/pkg/rules"
	"veridian-hq/verdict/pkg/rules/source"
	"veridian-hq/verdict/pkg/sink"
	"veridian-hq/verdict/pkg/telemetry/metrics"
)

// Processor runs the full evaluation pipeline for a single batch file:
// read records, load rule definitions, evaluate, persist violations.
type Processor struct {
	source    source.Source
	sink      sink.Sink
	runner    *rules.Runner
	logger    *slog.Logger
	collector *metrics.Collector

	// ProcessedDir is where processed files are moved. Empty leaves
	// files in place.
	processedDir string
}

// ProcessorConfig assembles a Processor.
type ProcessorConfig struct {
	// Source supplies rule definitions for each run.
	Source source.Source

	// Sink receives the violations of each run.
	Sink sink.Sink

	// Workers is the rule evaluation concurrency. 1 means sequential.
	Workers int

	// ProcessedDir, when set, is where input files are moved after a
	// successful run.
	ProcessedDir string

	// Logger is the structured logger. Defaults to slog.Default().
	Logger *slog.Logger

	// Collector records run metrics. Nil disables metric recording.
	Collector *metrics.Collector
}

// RunReport summarizes one pipeline run.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID string

	// File is the input file path.
	File string

	// Records is the number of records read from the file.
	Records int

	// Rules is the number of rules evaluated.
	Rules int

	// Violations is the number of violations detected.
	Violations int

	// Failures holds rules that produced no verdicts, parse failures
	// included.
	Failures []rules.RuleFailure

	// Skipped holds records dropped by per-record fault recovery.
	Skipped []rules.SkippedRecord

	// Partial reports that evaluation was interrupted before all rules ran.
	Partial bool

	// Duration is the end-to-end run time.
	Duration time.Duration
}

// NewProcessor creates a pipeline processor.
func NewProcessor(cfg ProcessorConfig) (*Processor, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("rule source is required")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("violation sink is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		source:       cfg.Source,
		sink:         cfg.Sink,
		runner:       rules.NewRunner(rules.Config{Workers: cfg.Workers}),
		logger:       logger.With("component", "pipeline"),
		collector:    cfg.Collector,
		processedDir: cfg.ProcessedDir,
	}, nil
}

// ProcessFile evaluates all rules against the records in a CSV file and
// persists the resulting violations. The file is moved to the processed
// directory afterwards when one is configured.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*RunReport, error) {
	runID := uuid.NewString()
	started := time.Now()
	logger := p.logger.With("run_id", runID, "file", path)

	logger.Info("processing batch file")

	f, err := os.Open(path)
	if err != nil {
		p.recordRun("error", time.Since(started))
		return nil, fmt.Errorf("failed to open batch file %q: %w", path, err)
	}
	records, err := batch.ReadCSV(f)
	f.Close()
	if err != nil {
		p.recordRun("error", time.Since(started))
		return nil, fmt.Errorf("failed to read batch file %q: %w", path, err)
	}

	report, err := p.Process(ctx, runID, records)
	if err != nil {
		p.recordRun("error", time.Since(started))
		return nil, err
	}
	report.File = path

	if p.processedDir != "" {
		if err := p.archive(path); err != nil {
			logger.Warn("failed to move processed file", "error", err)
		}
	}

	report.Duration = time.Since(started)
	outcome := "complete"
	if report.Partial {
		outcome = "partial"
	}
	p.recordRun(outcome, report.Duration)

	logger.Info("batch file processed",
		"records", report.Records,
		"rules", report.Rules,
		"violations", report.Violations,
		"failures", len(report.Failures),
		"skipped", len(report.Skipped),
		"partial", report.Partial,
		"duration_ms", report.Duration.Milliseconds(),
	)

	return report, nil
}

// Process evaluates all rules against an already-loaded batch of records
// and persists the resulting violations.
func (p *Processor) Process(ctx context.Context, runID string, records []record.Record) (*RunReport, error) {
	defs, err := p.source.LoadRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	compiled, parseFailures := rules.Build(defs)

	result := p.runner.Run(ctx, compiled, records)

	failures := append(parseFailures, result.Failures...)

	if len(result.Violations) > 0 {
		if err := p.sink.Write(ctx, result.Violations); err != nil {
			return nil, fmt.Errorf("failed to persist violations: %w", err)
		}
	}

	if p.collector != nil {
		p.collector.RecordRecordsIngested(len(records))
		p.collector.RecordRulesEvaluated(len(compiled))
		byRule := make(map[string]int)
		for _, v := range result.Violations {
			byRule[v.RuleID]++
		}
		for id, n := range byRule {
			p.collector.RecordViolations(id, n)
		}
		for _, f := range failures {
			p.collector.RecordRuleFailure(string(f.Kind))
		}
		skippedByRule := make(map[string]int)
		for _, s := range result.Skipped {
			skippedByRule[s.RuleID]++
		}
		for id, n := range skippedByRule {
			p.collector.RecordSkipped(id, n)
		}
	}

	return &RunReport{
		RunID:      runID,
		Records:    len(records),
		Rules:      len(defs),
		Violations: len(result.Violations),
		Failures:   failures,
		Skipped:    result.Skipped,
		Partial:    result.Partial,
	}, nil
}

// archive moves a processed file into the processed directory.
func (p *Processor) archive(path string) error {
	if err := os.MkdirAll(p.processedDir, 0o755); err != nil {
		return fmt.Errorf("failed to create processed directory: %w", err)
	}
	dest := filepath.Join(p.processedDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("failed to move %q to %q: %w", path, dest, err)
	}
	return nil
}

func (p *Processor) recordRun(outcome string, d time.Duration) {
	if p.collector != nil {
		p.collector.RecordRun(outcome, d)
	}
}

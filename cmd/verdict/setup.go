package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"veridian-hq/verdict/pkg/cli"
	"veridian-hq/verdict/pkg/config"
	"veridian-hq/verdict/pkg/pipeline"
	"veridian-hq/verdict/pkg/rules/source"
	"veridian-hq/verdict/pkg/sink"
	"veridian-hq/verdict/pkg/telemetry/logging"
	"veridian-hq/verdict/pkg/telemetry/metrics"
)

// runtimeDeps holds the assembled service components shared by the run and
// watch commands.
type runtimeDeps struct {
	cfg       *config.Config
	logger    *slog.Logger
	processor *pipeline.Processor
	collector *metrics.Collector
	closers   []io.Closer
}

// Close releases sources and sinks in reverse construction order.
func (d *runtimeDeps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i].Close()
	}
}

// buildRuntime loads configuration and wires the source, sink, metrics, and
// processor together. workersOverride, when positive, replaces the configured
// evaluation concurrency.
func buildRuntime(withMetrics bool, workersOverride int) (*runtimeDeps, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	if workersOverride > 0 {
		cfg.Engine.Workers = workersOverride
	}

	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:  level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	deps := &runtimeDeps{cfg: cfg, logger: logger}

	var src source.Source
	switch cfg.Rules.Mode {
	case "sqlite":
		s, err := source.NewSQLiteSource(source.SQLiteSourceConfig{Path: cfg.Rules.SQLitePath}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open rules database: %w", err)
		}
		deps.closers = append(deps.closers, s)
		src = s
	default:
		src = source.NewFileSource(cfg.Rules.FilePath, logger)
	}

	var snk sink.Sink
	switch cfg.Sink.Backend {
	case "jsonl":
		f, err := os.OpenFile(cfg.Sink.JSONLPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open violation output file: %w", err)
		}
		deps.closers = append(deps.closers, f)
		snk = sink.NewJSONLSink(f)
	default:
		s, err := sink.NewSQLiteSink(sink.SQLiteSinkConfig{Path: cfg.Sink.SQLitePath}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open violation database: %w", err)
		}
		deps.closers = append(deps.closers, s)
		snk = s
	}

	if withMetrics && cfg.Telemetry.Metrics.Enabled {
		deps.collector = metrics.NewCollector(metrics.Config{
			Namespace: cfg.Telemetry.Metrics.Namespace,
			Subsystem: cfg.Telemetry.Metrics.Subsystem,
		}, nil)
	}

	processor, err := pipeline.NewProcessor(pipeline.ProcessorConfig{
		Source:       src,
		Sink:         snk,
		Workers:      cfg.Engine.Workers,
		ProcessedDir: cfg.Ingest.ProcessedDir,
		Logger:       logger,
		Collector:    deps.collector,
	})
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.processor = processor

	return deps, nil
}

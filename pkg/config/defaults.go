package config

import "path/filepath"

// Default values for configuration fields.
const (
	// Engine defaults
	DefaultEngineWorkers = 1

	// Ingest defaults
	DefaultIngestDropDir       = "data/incoming"
	DefaultIngestFilePattern   = "*.csv"
	DefaultIngestSweepSchedule = "*/5 * * * *"
	DefaultIngestRetentionDays = 30

	// Rules defaults
	DefaultRulesMode     = "file"
	DefaultRulesFilePath = "rules.yaml"

	// Sink defaults
	DefaultSinkBackend    = "sqlite"
	DefaultSinkSQLitePath = "data/violations.db"

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsNamespace     = "veridian"
	DefaultMetricsSubsystem     = "verdict"
)

// ApplyDefaults fills in default values for all unset configuration fields.
// It modifies the configuration in place.
func ApplyDefaults(cfg *Config) {
	if cfg.Engine.Workers == 0 {
		cfg.Engine.Workers = DefaultEngineWorkers
	}

	if cfg.Ingest.DropDir == "" {
		cfg.Ingest.DropDir = DefaultIngestDropDir
	}
	if cfg.Ingest.FilePattern == "" {
		cfg.Ingest.FilePattern = DefaultIngestFilePattern
	}
	if cfg.Ingest.ProcessedDir == "" {
		cfg.Ingest.ProcessedDir = filepath.Join(cfg.Ingest.DropDir, "processed")
	}
	if cfg.Ingest.SweepSchedule == "" {
		cfg.Ingest.SweepSchedule = DefaultIngestSweepSchedule
	}
	if cfg.Ingest.RetentionDays == 0 {
		cfg.Ingest.RetentionDays = DefaultIngestRetentionDays
	}

	if cfg.Rules.Mode == "" {
		cfg.Rules.Mode = DefaultRulesMode
	}
	if cfg.Rules.Mode == "file" && cfg.Rules.FilePath == "" {
		cfg.Rules.FilePath = DefaultRulesFilePath
	}

	if cfg.Sink.Backend == "" {
		cfg.Sink.Backend = DefaultSinkBackend
	}
	if cfg.Sink.Backend == "sqlite" && cfg.Sink.SQLitePath == "" {
		cfg.Sink.SQLitePath = DefaultSinkSQLitePath
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

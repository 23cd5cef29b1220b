package config

// Config is the root configuration for the verdict service.
type Config struct {
	// Engine configures rule evaluation.
	Engine EngineConfig `yaml:"engine"`

	// Ingest configures batch file ingestion.
	Ingest IngestConfig `yaml:"ingest"`

	// Rules configures where rule definitions are loaded from.
	Rules RulesConfig `yaml:"rules"`

	// Sink configures where violations are written.
	Sink SinkConfig `yaml:"sink"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EngineConfig configures the rule runner.
type EngineConfig struct {
	// Workers is the number of rules evaluated concurrently.
	// 1 means sequential evaluation.
	Workers int `yaml:"workers"`
}

// IngestConfig configures batch file ingestion.
type IngestConfig struct {
	// DropDir is the directory watched for incoming batch files.
	DropDir string `yaml:"drop_dir"`

	// FilePattern is the glob matched against incoming file names.
	FilePattern string `yaml:"file_pattern"`

	// ProcessedDir is where processed files are moved. Defaults to a
	// "processed" subdirectory of DropDir.
	ProcessedDir string `yaml:"processed_dir"`

	// SweepSchedule is a cron expression for the periodic sweep that picks
	// up files missed by the watcher. Empty disables the sweep.
	SweepSchedule string `yaml:"sweep_schedule"`

	// RetentionDays is how long processed files are kept before the sweep
	// prunes them. 0 disables pruning.
	RetentionDays int `yaml:"retention_days"`
}

// RulesConfig configures the rule definition source.
type RulesConfig struct {
	// Mode selects the source backend: "file" or "sqlite".
	Mode string `yaml:"mode"`

	// FilePath is the YAML file or directory for mode "file".
	FilePath string `yaml:"file_path"`

	// SQLitePath is the database path for mode "sqlite".
	SQLitePath string `yaml:"sqlite_path"`
}

// SinkConfig configures violation output.
type SinkConfig struct {
	// Backend selects the sink: "sqlite" or "jsonl".
	Backend string `yaml:"backend"`

	// SQLitePath is the violation database path for backend "sqlite".
	SQLitePath string `yaml:"sqlite_path"`

	// JSONLPath is the output file path for backend "jsonl".
	JSONLPath string `yaml:"jsonl_path"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled turns the metrics HTTP listener on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics listener address (e.g. ":9090").
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the metric name prefix.
	Namespace string `yaml:"namespace"`

	// Subsystem is the second metric name component.
	Subsystem string `yaml:"subsystem"`
}

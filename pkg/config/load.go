package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values and validates the result. Environment variables
// are not consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// VERDICT_SECTION_FIELD (e.g., VERDICT_RULES_MODE) and take precedence over
// file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies VERDICT_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Engine overrides
	if val := os.Getenv("VERDICT_ENGINE_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Engine.Workers = i
		}
	}

	// Ingest overrides
	if val := os.Getenv("VERDICT_INGEST_DROP_DIR"); val != "" {
		cfg.Ingest.DropDir = val
	}
	if val := os.Getenv("VERDICT_INGEST_FILE_PATTERN"); val != "" {
		cfg.Ingest.FilePattern = val
	}
	if val := os.Getenv("VERDICT_INGEST_PROCESSED_DIR"); val != "" {
		cfg.Ingest.ProcessedDir = val
	}
	if val := os.Getenv("VERDICT_INGEST_SWEEP_SCHEDULE"); val != "" {
		cfg.Ingest.SweepSchedule = val
	}
	if val := os.Getenv("VERDICT_INGEST_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Ingest.RetentionDays = i
		}
	}

	// Rules overrides
	if val := os.Getenv("VERDICT_RULES_MODE"); val != "" {
		cfg.Rules.Mode = val
	}
	if val := os.Getenv("VERDICT_RULES_FILE_PATH"); val != "" {
		cfg.Rules.FilePath = val
	}
	if val := os.Getenv("VERDICT_RULES_SQLITE_PATH"); val != "" {
		cfg.Rules.SQLitePath = val
	}

	// Sink overrides
	if val := os.Getenv("VERDICT_SINK_BACKEND"); val != "" {
		cfg.Sink.Backend = val
	}
	if val := os.Getenv("VERDICT_SINK_SQLITE_PATH"); val != "" {
		cfg.Sink.SQLitePath = val
	}
	if val := os.Getenv("VERDICT_SINK_JSONL_PATH"); val != "" {
		cfg.Sink.JSONLPath = val
	}

	// Telemetry overrides
	if val := os.Getenv("VERDICT_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("VERDICT_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("VERDICT_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("VERDICT_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}

// Package config provides configuration management for the verdict service.
//
// Configuration is loaded from a YAML file, with defaults applied and the
// result validated before use:
//
//	cfg, err := config.LoadConfig("config.yaml")
//
// Environment variables following the convention VERDICT_SECTION_FIELD
// override file values when loading with LoadConfigWithEnvOverrides:
//
//   - VERDICT_ENGINE_WORKERS overrides engine.workers
//   - VERDICT_RULES_MODE overrides rules.mode
//   - VERDICT_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Values are applied in order: defaults, YAML file, environment overrides,
// then validation. Validation errors carry field paths:
//
//	configuration validation failed with 2 errors:
//	  - rules.file_path: file path is required when mode is "file"
//	  - sink.backend: unknown backend "bigquery" (expected "sqlite" or "jsonl")
//
// A minimal configuration file:
//
//	engine:
//	  workers: 4
//
//	ingest:
//	  drop_dir: "data/incoming"
//
//	rules:
//	  mode: "file"
//	  file_path: "rules.yaml"
//
//	sink:
//	  backend: "sqlite"
//	  sqlite_path: "data/violations.db"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfig_Minimal(t *testing.T) {
	path := writeConfigFile(t, `
engine:
  workers: 4
rules:
  mode: file
  file_path: rules.yaml
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Engine.Workers != 4 {
		t.Errorf("Engine.Workers = %d, want 4", cfg.Engine.Workers)
	}
	// Defaults fill the rest.
	if cfg.Sink.Backend != DefaultSinkBackend {
		t.Errorf("Sink.Backend = %q, want default %q", cfg.Sink.Backend, DefaultSinkBackend)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("Logging.Level = %q, want default %q", cfg.Telemetry.Logging.Level, DefaultLoggingLevel)
	}
	if cfg.Ingest.ProcessedDir != filepath.Join(DefaultIngestDropDir, "processed") {
		t.Errorf("Ingest.ProcessedDir = %q", cfg.Ingest.ProcessedDir)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "engine: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfigFile(t, `
rules:
  mode: bigquery
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "rules.mode") {
		t.Errorf("error does not name the failing field: %v", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
rules:
  mode: file
  file_path: rules.yaml
`)

	t.Setenv("VERDICT_ENGINE_WORKERS", "8")
	t.Setenv("VERDICT_RULES_MODE", "sqlite")
	t.Setenv("VERDICT_RULES_SQLITE_PATH", "/var/lib/verdict/rules.db")
	t.Setenv("VERDICT_TELEMETRY_LOGGING_LEVEL", "debug")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Engine.Workers != 8 {
		t.Errorf("Engine.Workers = %d, want 8", cfg.Engine.Workers)
	}
	if cfg.Rules.Mode != "sqlite" {
		t.Errorf("Rules.Mode = %q, want sqlite", cfg.Rules.Mode)
	}
	if cfg.Rules.SQLitePath != "/var/lib/verdict/rules.db" {
		t.Errorf("Rules.SQLitePath = %q", cfg.Rules.SQLitePath)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidAfterOverride(t *testing.T) {
	path := writeConfigFile(t, `
rules:
  mode: file
  file_path: rules.yaml
`)
	t.Setenv("VERDICT_RULES_MODE", "sqlite") // no sqlite_path provided

	if _, err := LoadConfigWithEnvOverrides(path); err == nil {
		t.Error("expected validation error after override")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Engine: EngineConfig{Workers: 0},
		Ingest: IngestConfig{DropDir: "", FilePattern: ""},
		Rules:  RulesConfig{Mode: "nope"},
		Sink:   SinkConfig{Backend: "nope"},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{Level: "loud", Format: "xml"},
		},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	var verr ValidationError
	ok := false
	if v, isVE := err.(ValidationError); isVE {
		verr, ok = v, true
	}
	if !ok {
		t.Fatalf("error type = %T, want ValidationError", err)
	}
	if len(verr.Errors) < 6 {
		t.Errorf("collected %d errors, want at least 6: %v", len(verr.Errors), verr)
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("default configuration is invalid: %v", err)
	}
}

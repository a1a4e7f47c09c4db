package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := New("/data")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Storage.Driver != DriverFile {
		t.Fatalf("expected file driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Storage.FilePath != filepath.Join("/data", ".healthlog", "health-records.json") {
		t.Fatalf("unexpected file path %s", cfg.Storage.FilePath)
	}
	if cfg.DBPath != filepath.Join("/data", ".healthlog", "healthlog.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if !cfg.IndexEnabled() {
		t.Fatalf("index should default to enabled for the file driver")
	}
	if _, err := New(" "); err == nil {
		t.Fatalf("empty data dir should fail")
	}
}

func TestLoadReadsYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	raw := `
storage:
  driver: sqlite
  key: records
index:
  enabled: false
log:
  level: debug
  format: json
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Driver != DriverSQLite || cfg.Storage.Key != "records" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.IndexEnabled() {
		t.Fatalf("index should be disabled")
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Driver != DriverFile {
		t.Fatalf("expected default driver, got %s", cfg.Storage.Driver)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Parallel()
	env := map[string]string{
		"HEALTHLOG_STORAGE_DRIVER": "s3",
		"HEALTHLOG_S3_BUCKET":      "health",
		"HEALTHLOG_S3_PATH_STYLE":  "TRUE",
	}
	cfg := Config{DataDir: "/data"}
	cfg.applyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Storage.Driver != DriverS3 || cfg.Storage.S3.Bucket != "health" || !cfg.Storage.S3.PathStyle {
		t.Fatalf("env overrides not applied: %+v", cfg.Storage)
	}
	if cfg.Storage.S3.Region != "us-east-1" {
		t.Fatalf("expected default region, got %s", cfg.Storage.S3.Region)
	}
}

func TestValidateRejectsIncompleteDrivers(t *testing.T) {
	t.Parallel()
	for _, cfg := range []Config{
		{Storage: StorageConfig{Driver: DriverPostgres}},
		{Storage: StorageConfig{Driver: DriverS3}},
		{Storage: StorageConfig{Driver: "floppy"}},
	} {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", cfg.Storage)
		}
	}
}

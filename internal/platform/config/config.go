package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const FileName = "healthlog.yaml"

type StorageDriver string

const (
	DriverFile     StorageDriver = "file"
	DriverMemory   StorageDriver = "memory"
	DriverSQLite   StorageDriver = "sqlite"
	DriverPostgres StorageDriver = "postgres"
	DriverS3       StorageDriver = "s3"
)

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type StorageConfig struct {
	Driver      StorageDriver `yaml:"driver"`
	Key         string        `yaml:"key"`
	FilePath    string        `yaml:"file_path"`
	PostgresDSN string        `yaml:"postgres_dsn"`
	S3          S3Config      `yaml:"s3"`
}

type IndexConfig struct {
	Enabled *bool `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	DataDir    string        `yaml:"-"`
	DBPath     string        `yaml:"db_path"`
	PluginsDir string        `yaml:"plugins_dir"`
	Storage    StorageConfig `yaml:"storage"`
	Index      IndexConfig   `yaml:"index"`
	Log        LogConfig     `yaml:"log"`
}

// IndexEnabled reports whether the SQLite record index is maintained.
func (c Config) IndexEnabled() bool {
	if c.Index.Enabled == nil {
		return c.Storage.Driver != DriverMemory
	}
	return *c.Index.Enabled
}

// New returns the defaults for dataDir without reading any file.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{DataDir: dataDir}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

// Load reads <dataDir>/healthlog.yaml when present, then applies HEALTHLOG_*
// environment overrides and defaults.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{}
	raw, err := os.ReadFile(filepath.Join(dataDir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", FileName, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}
	cfg.DataDir = dataDir
	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, target *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}
	driver := string(c.Storage.Driver)
	set("HEALTHLOG_STORAGE_DRIVER", &driver)
	c.Storage.Driver = StorageDriver(driver)
	set("HEALTHLOG_STORAGE_KEY", &c.Storage.Key)
	set("HEALTHLOG_POSTGRES_DSN", &c.Storage.PostgresDSN)
	set("HEALTHLOG_S3_BUCKET", &c.Storage.S3.Bucket)
	set("HEALTHLOG_S3_REGION", &c.Storage.S3.Region)
	set("HEALTHLOG_S3_ENDPOINT", &c.Storage.S3.Endpoint)
	set("HEALTHLOG_LOG_LEVEL", &c.Log.Level)
	set("HEALTHLOG_LOG_FORMAT", &c.Log.Format)
	if v, ok := lookup("HEALTHLOG_S3_PATH_STYLE"); ok {
		c.Storage.S3.PathStyle = strings.EqualFold(strings.TrimSpace(v), "true")
	}
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverFile
	}
	if c.Storage.Key == "" {
		c.Storage.Key = "health-records.json"
	}
	if c.Storage.FilePath == "" {
		c.Storage.FilePath = filepath.Join(c.DataDir, ".healthlog", c.Storage.Key)
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, ".healthlog", "healthlog.db")
	}
	if c.PluginsDir == "" {
		c.PluginsDir = c.DataDir
	}
	if c.Storage.S3.Region == "" {
		c.Storage.S3.Region = "us-east-1"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
		}
	case DriverS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	return nil
}

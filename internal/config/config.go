package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration. Values come from an
// optional YAML file (DASHBOARD_CONFIG) with environment variables
// taking precedence.
type Config struct {
	Environment string         `yaml:"environment"`
	HTTPAddr    string         `yaml:"http_addr"`
	DatabaseDSN string         `yaml:"database_dsn"`
	Upload      UploadConfig   `yaml:"upload"`
	Snapshot    SnapshotConfig `yaml:"snapshot"`
	Tracing     TracingConfig  `yaml:"tracing"`
	Bootstrap   Bootstrap      `yaml:"bootstrap"`
}

// UploadConfig bounds the import endpoint.
type UploadConfig struct {
	MaxBytes  int64         `yaml:"max_bytes"`
	RateLimit int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

// SnapshotConfig controls the background metrics snapshot worker.
type SnapshotConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// TracingConfig configures the OTLP trace exporter.
type TracingConfig struct {
	Enabled          bool    `yaml:"enabled"`
	ExporterEndpoint string  `yaml:"exporter_endpoint"`
	ExporterProtocol string  `yaml:"exporter_protocol"`
	SamplingRatio    float64 `yaml:"sampling_ratio"`
}

// Bootstrap controls startup seeding.
type Bootstrap struct {
	SeedDemoData bool `yaml:"seed_demo_data"`
}

// Default returns the baseline configuration for local development.
func Default() Config {
	return Config{
		Environment: "development",
		HTTPAddr:    ":8080",
		DatabaseDSN: "file:dashboard.db?_pragma=busy_timeout(5000)",
		Upload: UploadConfig{
			MaxBytes:   10 << 20,
			RateLimit:  30,
			RateWindow: time.Minute,
		},
		Snapshot: SnapshotConfig{
			PollInterval: 30 * time.Second,
			CacheTTL:     30 * time.Second,
		},
		Tracing: TracingConfig{
			ExporterProtocol: "http",
			SamplingRatio:    1.0,
		},
	}
}

// Load builds the configuration from the optional YAML file plus
// environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("DASHBOARD_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Environment, "DASHBOARD_ENV")
	setString(&cfg.HTTPAddr, "DASHBOARD_HTTP_ADDR")
	setString(&cfg.DatabaseDSN, "DASHBOARD_DATABASE_DSN")
	setInt64(&cfg.Upload.MaxBytes, "DASHBOARD_UPLOAD_MAX_BYTES")
	setInt(&cfg.Upload.RateLimit, "DASHBOARD_UPLOAD_RATE_LIMIT")
	setDuration(&cfg.Snapshot.PollInterval, "DASHBOARD_SNAPSHOT_INTERVAL")
	setDuration(&cfg.Snapshot.CacheTTL, "DASHBOARD_SNAPSHOT_CACHE_TTL")
	setBool(&cfg.Tracing.Enabled, "DASHBOARD_TRACING_ENABLED")
	setString(&cfg.Tracing.ExporterEndpoint, "DASHBOARD_TRACING_ENDPOINT")
	setString(&cfg.Tracing.ExporterProtocol, "DASHBOARD_TRACING_PROTOCOL")
	setFloat(&cfg.Tracing.SamplingRatio, "DASHBOARD_TRACING_SAMPLING_RATIO")
	setBool(&cfg.Bootstrap.SeedDemoData, "DASHBOARD_SEED_DEMO_DATA")
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = parsed
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

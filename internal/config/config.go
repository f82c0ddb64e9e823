// Package config loads sitegrade settings from defaults, an optional file and
// the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Report formats understood by the CLI.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Analyzer  AnalyzerConfig  `mapstructure:"analyzer"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Report    ReportConfig    `mapstructure:"report"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AnalyzerConfig controls how a single site is fetched.
type AnalyzerConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	MaxBodyBytes int           `mapstructure:"max_body_bytes"`
}

// BatchConfig governs fan-out and the report buckets.
type BatchConfig struct {
	Concurrency          int     `mapstructure:"concurrency"`
	TopThreshold         float64 `mapstructure:"top_threshold"`
	ImprovementThreshold float64 `mapstructure:"improvement_threshold"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// ReportConfig selects the output format.
type ReportConfig struct {
	Format string `mapstructure:"format"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
}

// MetricsConfig controls the Prometheus text dump.
type MetricsConfig struct {
	Print bool `mapstructure:"print"`
}

// Load builds a Config from disk/environment. Environment variables use the
// SITEGRADE_ prefix, e.g. SITEGRADE_BATCH_CONCURRENCY.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SITEGRADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analyzer.timeout", 10*time.Second)
	v.SetDefault("analyzer.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("analyzer.max_body_bytes", 0)
	v.SetDefault("batch.concurrency", 5)
	v.SetDefault("batch.top_threshold", 8.0)
	v.SetDefault("batch.improvement_threshold", 5.0)
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("report.format", FormatMarkdown)
	v.SetDefault("telemetry.tracing_enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.service_name", "sitegrade")
	v.SetDefault("metrics.print", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Analyzer.Timeout <= 0 {
		return fmt.Errorf("analyzer.timeout must be > 0")
	}
	if c.Analyzer.MaxBodyBytes < 0 {
		return fmt.Errorf("analyzer.max_body_bytes must be >= 0")
	}
	if c.Batch.Concurrency <= 0 {
		return fmt.Errorf("batch.concurrency must be > 0")
	}
	if !inScoreRange(c.Batch.TopThreshold) {
		return fmt.Errorf("batch.top_threshold must be within [0, 10]")
	}
	if !inScoreRange(c.Batch.ImprovementThreshold) {
		return fmt.Errorf("batch.improvement_threshold must be within [0, 10]")
	}
	if c.Batch.ImprovementThreshold >= c.Batch.TopThreshold {
		return fmt.Errorf("batch.improvement_threshold must be below batch.top_threshold")
	}
	switch c.Report.Format {
	case FormatMarkdown, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("report.format %q is not one of markdown, json, yaml", c.Report.Format)
	}
	if c.Telemetry.TracingEnabled && c.Telemetry.ServiceName == "" {
		return fmt.Errorf("telemetry.service_name must be set when tracing is enabled")
	}
	return nil
}

func inScoreRange(v float64) bool {
	return v >= 0 && v <= 10
}

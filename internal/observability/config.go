package observability

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete observability configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// configFile is the on-disk wrapper around Config.
type configFile struct {
	Observability Config `yaml:"observability"`
}

// DefaultConfig returns the default observability configuration
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled:        true,
			PrometheusPort: 9090,
		},
		Tracing: TracingConfig{
			Enabled:        false,
			Exporter:       "otlp",
			OTLPEndpoint:   "localhost:4318",
			SampleRate:     1.0,
			ServiceName:    "iris",
			ServiceVersion: "1.0.0",
		},
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".iris", "config.yaml")
}

// LoadConfig loads observability configuration from file, merging it
// over the defaults. A missing file is not an error.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = defaultConfigPath()
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.mergeFrom(file.Observability)
	return config, nil
}

// mergeFrom overlays values from a parsed file onto c. String and port
// fields only override when set; the Enabled flags always follow the
// file since false is a meaningful value there.
func (c *Config) mergeFrom(o Config) {
	setString(&c.Logging.Level, o.Logging.Level)
	setString(&c.Logging.Format, o.Logging.Format)

	c.Metrics.Enabled = o.Metrics.Enabled
	if o.Metrics.PrometheusPort > 0 {
		c.Metrics.PrometheusPort = o.Metrics.PrometheusPort
	}

	c.Tracing.Enabled = o.Tracing.Enabled
	setString(&c.Tracing.Exporter, o.Tracing.Exporter)
	setString(&c.Tracing.OTLPEndpoint, o.Tracing.OTLPEndpoint)
	setString(&c.Tracing.ZipkinEndpoint, o.Tracing.ZipkinEndpoint)
	setString(&c.Tracing.ServiceName, o.Tracing.ServiceName)
	setString(&c.Tracing.ServiceVersion, o.Tracing.ServiceVersion)
	if o.Tracing.SampleRate > 0 && o.Tracing.SampleRate <= 1.0 {
		c.Tracing.SampleRate = o.Tracing.SampleRate
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// SaveConfig saves observability configuration to file
func SaveConfig(config Config, configPath string) error {
	if configPath == "" {
		configPath = defaultConfigPath()
		if configPath == "" {
			return errors.New("cannot resolve default config path")
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(configFile{Observability: config})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, yamlData, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

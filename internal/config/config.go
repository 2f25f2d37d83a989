// Package config loads the service configuration for the iris binaries.
// Values come from defaults, then an optional YAML file, then IRIS_*
// environment variables, each layer overriding the previous one.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig configures the HTTP front.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	EnableCORS   bool          `mapstructure:"enable_cors"`
	Debug        bool          `mapstructure:"debug"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// EngineConfig configures the decision engine.
type EngineConfig struct {
	SignalCacheSize int `mapstructure:"signal_cache_size"`
}

// Config is the complete service configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Engine EngineConfig `mapstructure:"engine"`

	// CatalogPath points at a YAML lens catalog. Empty means the
	// compiled-in catalog.
	CatalogPath string `mapstructure:"catalog_path"`

	// ObservabilityPath points at the observability YAML file. Empty
	// falls back to ~/.iris/config.yaml.
	ObservabilityPath string `mapstructure:"observability_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.enable_cors", true)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("engine.signal_cache_size", 512)
	v.SetDefault("catalog_path", "")
	v.SetDefault("observability_path", "")
}

// Load reads the configuration. path may name a specific file; when
// empty the default search locations are used and a missing file is
// fine.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("IRIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("iris")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.iris")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the binaries cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Engine.SignalCacheSize <= 0 {
		return fmt.Errorf("invalid signal cache size %d", c.Engine.SignalCacheSize)
	}
	return nil
}

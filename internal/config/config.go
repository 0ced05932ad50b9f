package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all cdmboard configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DataPath points at the CDM CSV export.
	DataPath string `yaml:"data_path"`

	// DefaultTopN is the bar-chart size when the request does not ask
	// for one. Clamped to the 5–30 range the UI slider allows.
	DefaultTopN int `yaml:"default_top_n"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:      ":8080",
		DataPath:    "CDM.csv",
		DefaultTopN: 10,
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.DefaultTopN < 5 {
		cfg.DefaultTopN = 5
	}
	if cfg.DefaultTopN > 30 {
		cfg.DefaultTopN = 30
	}
	return cfg, nil
}

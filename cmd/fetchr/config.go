package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the CLI configuration, loaded from an optional
// fetchr.yaml.
type Config struct {
	UserAgent string         `mapstructure:"user_agent"`
	ChunkSize int            `mapstructure:"chunk_size"`
	Throttle  ThrottleConfig `mapstructure:"throttle"`
	Logging   LoggingConfig  `mapstructure:"logging"`
}

// ThrottleConfig bounds download bandwidth. Zero disables throttling.
type ThrottleConfig struct {
	BytesPerSec int `mapstructure:"bytes_per_sec"`
	Burst       int `mapstructure:"burst"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from configPath when given, otherwise
// from fetchr.yaml in the working directory or ~/.config/fetchr.
// A missing file is not an error; defaults apply.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("fetchr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/fetchr")
	}

	v.SetDefault("user_agent", "fetchr/1.0")
	v.SetDefault("chunk_size", 8192)
	v.SetDefault("throttle.bytes_per_sec", 0)
	v.SetDefault("throttle.burst", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive")
	}

	if (c.Throttle.BytesPerSec > 0) != (c.Throttle.Burst > 0) {
		return fmt.Errorf("throttle.bytes_per_sec and throttle.burst must be set together")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

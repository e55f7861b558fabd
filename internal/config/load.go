package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. RECALL_SERVER_PORT.
const EnvPrefix = "RECALL"

// defaults lists every known key with its default. Keys without a sensible
// default are still listed (with nil) so that they can be read from the
// environment.
var defaults = map[string]any{
	"server.port":                        8080,
	"server.log_level":                   "info",
	"server.read_timeout_seconds":        15,
	"server.shutdown_timeout_seconds":    10,
	"database.url":                       nil,
	"database.max_open_conns":            10,
	"database.max_idle_conns":            5,
	"database.conn_max_lifetime_minutes": 5,
	"quiz.display_count":                 20,
}

// Load reads configuration from environment variables and, if present, a
// config.yaml in the working directory.
// Environment variables take precedence over values from the file.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is like Load but reads the given config file, which must exist.
// An empty path falls back to the optional ./config.yaml lookup.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		if value != nil {
			v.SetDefault(key, value)
		}
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

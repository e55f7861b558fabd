// Package clientconfig loads the terminal client's TOML configuration.
package clientconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults used when neither the file nor a flag sets a value.
const (
	DefaultAPIURL     = "http://localhost:8080"
	DefaultAPITimeout = 10 * time.Second
	DefaultLogLevel   = "info"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	API     APIConfig     `toml:"api"`
	Player  PlayerConfig  `toml:"player"`
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig maps the recall API connection settings.
type APIConfig struct {
	URL            *string `toml:"url"`
	TimeoutSeconds *int    `toml:"timeout-seconds"`
}

// PlayerConfig maps player defaults.
type PlayerConfig struct {
	Email *string `toml:"email"`
}

// HistoryConfig maps local run history settings.
type HistoryConfig struct {
	Path    *string `toml:"path"`
	Enabled *bool   `toml:"enabled"`
}

// LogConfig maps client logging settings.
type LogConfig struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// Settings is the resolved client configuration.
type Settings struct {
	APIURL         string
	APITimeout     time.Duration
	Email          string
	HistoryPath    string
	HistoryEnabled bool
	LogFile        string
	LogLevel       string
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Resolve applies defaults to the file values.
func (c FileConfig) Resolve() (Settings, error) {
	s := Settings{
		APIURL:         DefaultAPIURL,
		APITimeout:     DefaultAPITimeout,
		HistoryPath:    DefaultHistoryPath(),
		HistoryEnabled: true,
		LogFile:        DefaultLogPath(),
		LogLevel:       DefaultLogLevel,
	}

	if c.API.URL != nil {
		s.APIURL = *c.API.URL
	}
	if c.API.TimeoutSeconds != nil {
		if *c.API.TimeoutSeconds <= 0 {
			return Settings{}, fmt.Errorf("api.timeout-seconds must be positive, got %d", *c.API.TimeoutSeconds)
		}
		s.APITimeout = time.Duration(*c.API.TimeoutSeconds) * time.Second
	}
	if c.Player.Email != nil {
		s.Email = *c.Player.Email
	}
	if c.History.Path != nil {
		s.HistoryPath = *c.History.Path
	}
	if c.History.Enabled != nil {
		s.HistoryEnabled = *c.History.Enabled
	}
	if c.Log.File != nil {
		s.LogFile = *c.Log.File
	}
	if c.Log.Level != nil {
		s.LogLevel = *c.Log.Level
	}
	return s, nil
}

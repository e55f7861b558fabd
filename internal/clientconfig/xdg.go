package clientconfig

import (
	"os"
	"path/filepath"
)

const appDir = "recall-sprint"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// DefaultHistoryPath returns the default path for the run history database.
func DefaultHistoryPath() string {
	return filepath.Join(XDGDataHome(), appDir, "history.db")
}

// DefaultLogPath returns the default client log file.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appDir, "recall.log")
}

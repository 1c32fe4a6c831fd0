package config

import (
	"os"
	"path/filepath"
)

const (
	// MandownHomeEnv is the environment variable overriding the mandown home directory
	MandownHomeEnv = "MANDOWN_HOME"
	// DefaultMandownDir is the default directory name under the user config directory
	DefaultMandownDir = "mandown"
	// LogsSubdir is the subdirectory for log files
	LogsSubdir = "logs"
)

// MandownHome returns the mandown home directory.
// It checks MANDOWN_HOME first, then defaults to <user-config-dir>/mandown.
func MandownHome() (string, error) {
	if home := os.Getenv(MandownHomeEnv); home != "" {
		return home, nil
	}
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, DefaultMandownDir), nil
}

// LogsDir returns the log file directory (<home>/logs).
func LogsDir() (string, error) {
	home, err := MandownHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, LogsSubdir), nil
}

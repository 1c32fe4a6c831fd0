package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// SettingsFileName is the name of the user settings file.
	SettingsFileName = "settings.yaml"

	// envPrefix is the prefix for environment variable overrides.
	envPrefix = "MANDOWN"
)

// settingsEnvKeys are the leaf keys bound to MANDOWN_* environment
// variables. Keep in sync with the Settings schema.
var settingsEnvKeys = []string{
	"convert.command",
	"convert.fallback",
	"render.command",
	"render.enabled",
	"install.prefer_user",
	"install.system_dir",
	"install.user_dir",
	"logging.file_enabled",
	"logging.max_size_mb",
	"logging.max_age_days",
	"logging.max_backups",
}

// SettingsLoader handles loading and saving of user settings.
type SettingsLoader struct {
	path string
}

// NewSettingsLoader creates a new SettingsLoader.
// It resolves the settings path from MANDOWN_HOME or the default location.
func NewSettingsLoader() (*SettingsLoader, error) {
	home, err := MandownHome()
	if err != nil {
		return nil, fmt.Errorf("failed to determine mandown home: %w", err)
	}
	return &SettingsLoader{
		path: filepath.Join(home, SettingsFileName),
	}, nil
}

// Path returns the full path to the settings file.
func (l *SettingsLoader) Path() string {
	return l.path
}

// Exists checks if the settings file exists.
func (l *SettingsLoader) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// Load reads the settings file, applying defaults and MANDOWN_* environment
// overrides. A missing file is not an error; defaults are returned.
func (l *SettingsLoader) Load() (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range settingsEnvKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %q: %w", key, err)
		}
	}

	defaults := DefaultSettings()
	v.SetDefault("convert.command", defaults.Convert.Command)
	v.SetDefault("convert.fallback", defaults.Convert.Fallback)
	v.SetDefault("render.command", defaults.Render.Command)
	v.SetDefault("install.prefer_user", defaults.Install.PreferUser)

	if l.Exists() {
		v.SetConfigFile(l.path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return &settings, nil
}

// Save writes the settings to the file.
// Creates the parent directory if it doesn't exist.
func (l *SettingsLoader) Save(s *Settings) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// EnsureExists creates the settings file with the commented default
// template if it doesn't exist. Returns true if the file was created.
func (l *SettingsLoader) EnsureExists() (bool, error) {
	if l.Exists() {
		return false, nil
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create settings directory: %w", err)
	}

	if err := os.WriteFile(l.path, []byte(DefaultSettingsYAML), 0644); err != nil {
		return false, fmt.Errorf("failed to write settings file: %w", err)
	}

	return true, nil
}

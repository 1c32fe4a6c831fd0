package factory

import (
	"os"
	"sync"

	"github.com/schmitthub/mandown/internal/cmdutil"
	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/iostreams"
)

// New creates a fully-wired Factory with lazy-initialized dependency
// closures. Called exactly once at the CLI entry point.
// Tests should NOT import this package; construct &cmdutil.Factory{}
// directly.
func New(version, buildDate string) *cmdutil.Factory {
	ios := iostreams.NewIOStreams()

	// Respect NO_COLOR and non-TTY output
	if !ios.IsOutputTTY() || os.Getenv("NO_COLOR") != "" {
		ios.SetColorEnabled(false)
	}

	f := &cmdutil.Factory{
		Version:   version,
		BuildDate: buildDate,
		IOStreams: ios,
	}

	// Settings are loaded once and cached for the process lifetime
	var (
		settingsOnce   sync.Once
		settingsLoader *config.SettingsLoader
		settingsData   *config.Settings
		settingsErr    error
	)
	initSettings := func() {
		settingsOnce.Do(func() {
			settingsLoader, settingsErr = config.NewSettingsLoader()
			if settingsErr == nil {
				settingsData, settingsErr = settingsLoader.Load()
			}
		})
	}
	f.SettingsLoader = func() (*config.SettingsLoader, error) {
		initSettings()
		return settingsLoader, settingsErr
	}
	f.Settings = func() (*config.Settings, error) {
		initSettings()
		return settingsData, settingsErr
	}

	return f
}

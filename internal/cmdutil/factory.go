package cmdutil

import (
	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/iostreams"
)

// Factory provides shared dependencies for CLI commands.
// It is a dependency injection container: the struct defines what
// dependencies exist (the contract), while internal/cmd/factory
// wires the real implementations.
//
// Closure fields are set by the factory constructor and use lazy
// initialization internally. Commands extract only the fields they
// need into per-command Options structs.
type Factory struct {
	// Output controls from global flags (set before command execution)
	Verbose bool
	Quiet   bool

	// Version info (set at build time via ldflags)
	Version   string
	BuildDate string

	// IO streams for input/output (for testability)
	IOStreams *iostreams.IOStreams

	// Dependency providers (closures wired by factory constructor)
	SettingsLoader func() (*config.SettingsLoader, error)
	Settings       func() (*config.Settings, error)
}

// ShowProgress reports whether informational progress output is wanted.
// Quiet wins over verbose when both are set.
func (f *Factory) ShowProgress() bool {
	return !f.Quiet
}

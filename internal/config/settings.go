package config

// Settings holds user-level configuration loaded from settings.yaml.
// Every field can be overridden through MANDOWN_* environment variables.
type Settings struct {
	Convert ConvertSettings `yaml:"convert" mapstructure:"convert"`
	Render  RenderSettings  `yaml:"render" mapstructure:"render"`
	Install InstallSettings `yaml:"install" mapstructure:"install"`
	Logging LoggingSettings `yaml:"logging" mapstructure:"logging"`
}

// ConvertSettings configures the README-to-troff converter.
type ConvertSettings struct {
	// Command is the external AI command invoked with the prompt appended
	// as its final argument and the README piped on stdin.
	Command string `yaml:"command" mapstructure:"command"`

	// Fallback names the converter used when no external command is
	// configured or --converter md2man is requested.
	Fallback string `yaml:"fallback" mapstructure:"fallback"`
}

// RenderSettings configures the post-generation render check.
type RenderSettings struct {
	// Command is the troff renderer invoked against the generated page.
	Command string `yaml:"command" mapstructure:"command"`

	// Enabled controls whether the render check runs after generation.
	// Defaults to true.
	Enabled *bool `yaml:"enabled,omitempty" mapstructure:"enabled"`
}

// IsEnabled returns whether the render check is enabled, defaulting to true.
func (r *RenderSettings) IsEnabled() bool {
	if r.Enabled == nil {
		return true
	}
	return *r.Enabled
}

// InstallSettings configures man page installation directories.
type InstallSettings struct {
	// PreferUser forces user-context installs even when running as root.
	PreferUser bool `yaml:"prefer_user" mapstructure:"prefer_user"`

	// SystemDir overrides the system-wide man1 directory.
	SystemDir string `yaml:"system_dir,omitempty" mapstructure:"system_dir"`

	// UserDir overrides the per-user man1 directory.
	UserDir string `yaml:"user_dir,omitempty" mapstructure:"user_dir"`
}

// LoggingSettings configures rotating file logs.
type LoggingSettings struct {
	FileEnabled *bool `yaml:"file_enabled,omitempty" mapstructure:"file_enabled"`
	MaxSizeMB   int   `yaml:"max_size_mb,omitempty" mapstructure:"max_size_mb"`
	MaxAgeDays  int   `yaml:"max_age_days,omitempty" mapstructure:"max_age_days"`
	MaxBackups  int   `yaml:"max_backups,omitempty" mapstructure:"max_backups"`
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() *Settings {
	return &Settings{
		Convert: ConvertSettings{
			Command:  "claude -p",
			Fallback: "md2man",
		},
		Render: RenderSettings{
			Command: "man --warnings -l -Tutf8",
		},
		Install: InstallSettings{},
		Logging: LoggingSettings{},
	}
}

// DefaultSettingsYAML is the commented template written by `mandown init`.
const DefaultSettingsYAML = `# mandown user settings
#
# Every key can be overridden with a MANDOWN_* environment variable,
# e.g. MANDOWN_CONVERT_COMMAND="claude -p".

convert:
  # External AI command used to turn a README into a man page.
  # The prompt is appended as the final argument; the README is piped
  # on stdin and the troff output is read from stdout.
  command: "claude -p"

  # Converter used with --converter md2man (deterministic, offline).
  fallback: "md2man"

render:
  # Renderer used to verify that generated pages parse.
  command: "man --warnings -l -Tutf8"
  enabled: true

install:
  # Install into the per-user directory even when running as root.
  prefer_user: false

logging:
  file_enabled: true
  max_size_mb: 10
  max_age_days: 7
  max_backups: 3
`

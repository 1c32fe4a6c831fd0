package root

import (
	"github.com/schmitthub/mandown/internal/cmd/generate"
	initcmd "github.com/schmitthub/mandown/internal/cmd/init"
	"github.com/schmitthub/mandown/internal/cmd/install"
	"github.com/schmitthub/mandown/internal/cmd/uninstall"
	"github.com/schmitthub/mandown/internal/cmd/validate"
	versioncmd "github.com/schmitthub/mandown/internal/cmd/version"
	"github.com/schmitthub/mandown/internal/cmdutil"
	internalconfig "github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/logger"
	"github.com/spf13/cobra"
)

// NewCmdRoot creates the root command for the mandown CLI.
func NewCmdRoot(f *cmdutil.Factory, version, buildDate string) (*cobra.Command, error) {
	var debug bool

	cmd := &cobra.Command{
		Use:   "mandown <command>",
		Short: "Generate man pages from project READMEs",
		Long: `Mandown (manual + markdown) turns a project README into a man page.

Quick start:
  mandown init                     # Write the settings template
  mandown generate ./bin/mytool    # Generate mytool.1 next to the README
  mandown install ./bin/mytool     # Install it into the man search path
  man mytool                       # Enjoy

Conversion is delegated to an external AI command (claude by default);
without one configured, a built-in markdown converter takes over. Pages
are validated before anything touches the man directories.`,
		SilenceUsage: true,
		Annotations: map[string]string{
			"versionInfo": versioncmd.Format(version, buildDate),
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initializeLogger(debug)

			logger.Debug().
				Str("version", f.Version).
				Bool("debug", debug).
				Msg("mandown starting")

			return nil
		},
		Version: f.Version,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&f.Verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&f.Quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "Enable debug logging")

	// -v is taken, so the version flag gets the capital
	cmd.Flags().BoolP("version", "V", false, "Show mandown version")
	cmd.SetVersionTemplate(versioncmd.Format(version, buildDate))

	cmd.AddCommand(generate.NewCmdGenerate(f, nil))
	cmd.AddCommand(install.NewCmdInstall(f, nil))
	cmd.AddCommand(uninstall.NewCmdUninstall(f, nil))
	cmd.AddCommand(validate.NewCmdValidate(f, nil))
	cmd.AddCommand(initcmd.NewCmdInit(f, nil))
	cmd.AddCommand(versioncmd.NewCmdVersion(f))

	return cmd, nil
}

// initializeLogger sets up file logging when settings allow it, falling
// back to console-only logging on any error.
func initializeLogger(debug bool) {
	loader, err := internalconfig.NewSettingsLoader()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to create settings loader")
		return
	}

	settings, err := loader.Load()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to load settings")
		return
	}

	logsDir, err := internalconfig.LogsDir()
	if err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to get logs directory")
		return
	}

	logCfg := &logger.LoggingConfig{
		FileEnabled: settings.Logging.FileEnabled,
		MaxSizeMB:   settings.Logging.MaxSizeMB,
		MaxAgeDays:  settings.Logging.MaxAgeDays,
		MaxBackups:  settings.Logging.MaxBackups,
	}

	if err := logger.InitWithFile(debug, logsDir, logCfg); err != nil {
		logger.Init(debug)
		logger.Warn().Err(err).Msg("file logging unavailable: failed to initialize file writer")
	}
}

package init

import (
	"context"
	"fmt"

	"github.com/schmitthub/mandown/internal/cmdutil"
	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/iostreams"
	"github.com/spf13/cobra"
)

type InitOptions struct {
	IOStreams      *iostreams.IOStreams
	SettingsLoader func() (*config.SettingsLoader, error)

	Quiet bool
}

func NewCmdInit(f *cmdutil.Factory, runF func(context.Context, *InitOptions) error) *cobra.Command {
	opts := &InitOptions{
		IOStreams:      f.IOStreams,
		SettingsLoader: f.SettingsLoader,
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the mandown settings file",
		Long: `Writes a commented settings template to the user config directory.

An existing settings file is left untouched. All settings are optional;
mandown works without the file, and any value can also come from a
MANDOWN_* environment variable.`,
		Example: `  # Create the settings file
  mandown init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Quiet = !f.ShowProgress()

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return initRun(cmd.Context(), opts)
		},
	}

	return cmd
}

func initRun(_ context.Context, opts *InitOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	loader, err := opts.SettingsLoader()
	if err != nil {
		return fmt.Errorf("failed to create settings loader: %w", err)
	}

	created, err := loader.EnsureExists()
	if err != nil {
		return err
	}

	if !created {
		cmdutil.PrintStatus(ios, opts.Quiet, "%s Settings file already exists at %s", cs.InfoIcon(), loader.Path())
		return nil
	}

	cmdutil.PrintStatus(ios, opts.Quiet, "%s Created %s", cs.SuccessIcon(), loader.Path())
	if !opts.Quiet {
		cmdutil.PrintNextSteps(ios,
			"Edit the file to configure the AI converter command",
			"Run 'mandown generate <target>' to generate your first page",
		)
	}
	return nil
}

package uninstall

import (
	"context"
	"fmt"

	"github.com/schmitthub/mandown/internal/cmdutil"
	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/iostreams"
	"github.com/schmitthub/mandown/internal/manpage"
	"github.com/schmitthub/mandown/internal/resolve"
	"github.com/spf13/cobra"
)

type UninstallOptions struct {
	IOStreams *iostreams.IOStreams
	Settings  func() (*config.Settings, error)

	Quiet bool

	Target    string
	ForceUser bool
}

func NewCmdUninstall(f *cmdutil.Factory, runF func(context.Context, *UninstallOptions) error) *cobra.Command {
	opts := &UninstallOptions{
		IOStreams: f.IOStreams,
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "uninstall <target>",
		Short: "Remove an installed man page",
		Long: `Removes the man page installed for a command from the man search path.

Only the page name matters here, so the target does not need to exist
anymore. Removing a page that was never installed is not an error.`,
		Example: `  # Remove mytool.1 from the install directory
  mandown uninstall mytool`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Quiet = !f.ShowProgress()
			opts.Target = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return uninstallRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ForceUser, "user", false, "Remove from the user man directory even when root")

	return cmd
}

func uninstallRun(ctx context.Context, opts *UninstallOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	settings, err := opts.Settings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	dir, _, err := cmdutil.ResolveInstallDir(settings, opts.ForceUser)
	if err != nil {
		return err
	}

	// The target may be long gone; its basename is all the page name needs.
	pageName := resolve.PageName(opts.Target)

	removed, err := manpage.Uninstall(pageName, dir)
	if err != nil {
		return err
	}

	if removed == "" {
		cmdutil.PrintStatus(ios, opts.Quiet, "%s Nothing to remove: %s is not installed", cs.InfoIcon(), pageName)
		return nil
	}

	cmdutil.PrintStatus(ios, opts.Quiet, "%s Removed %s", cs.SuccessIcon(), removed)
	manpage.RefreshIndex(ctx)
	return nil
}

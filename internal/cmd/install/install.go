package install

import (
	"context"
	"fmt"
	"os"

	"github.com/schmitthub/mandown/internal/cmdutil"
	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/iostreams"
	"github.com/schmitthub/mandown/internal/resolve"
	"github.com/spf13/cobra"
)

type InstallOptions struct {
	IOStreams *iostreams.IOStreams
	Settings  func() (*config.Settings, error)

	Quiet bool

	Target    string
	Readme    string
	ForceUser bool
}

func NewCmdInstall(f *cmdutil.Factory, runF func(context.Context, *InstallOptions) error) *cobra.Command {
	opts := &InstallOptions{
		IOStreams: f.IOStreams,
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "install <target> [readme]",
		Short: "Install a previously generated man page",
		Long: `Installs the man page generated for a command into the man search path.

The page is located next to the command's README as <target-name>.1;
run 'mandown generate' first if it does not exist. Root installs into
/usr/local/share/man/man1, everyone else into the user data directory.
The man database is refreshed afterwards when an indexer is available.`,
		Example: `  # Install mytool.1
  mandown install ./bin/mytool

  # Install into the user directory even as root
  sudo mandown install ./bin/mytool --user`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Quiet = !f.ShowProgress()
			opts.Target = args[0]
			if len(args) > 1 {
				opts.Readme = args[1]
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return installRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ForceUser, "user", false, "Install into the user man directory even when root")

	return cmd
}

func installRun(ctx context.Context, opts *InstallOptions) error {
	ios := opts.IOStreams

	settings, err := opts.Settings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	target, err := resolve.Target(opts.Target)
	if err != nil {
		return err
	}

	readme, err := resolve.Readme(target, opts.Readme)
	if err != nil {
		return err
	}

	page := resolve.PagePath(target, readme)
	if _, err := os.Stat(page); err != nil {
		cmdutil.PrintError(ios, "No generated page at %s", page)
		cmdutil.PrintNextSteps(ios, fmt.Sprintf("Run 'mandown generate %s' to generate it", opts.Target))
		return fmt.Errorf("page not found: %s", page)
	}

	_, err = cmdutil.InstallPage(ctx, ios, settings, page, opts.ForceUser, opts.Quiet)
	return err
}

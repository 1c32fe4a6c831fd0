package validate

import (
	"context"
	"fmt"

	"github.com/schmitthub/mandown/internal/cmdutil"
	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/iostreams"
	"github.com/schmitthub/mandown/internal/manpage"
	"github.com/spf13/cobra"
)

type ValidateOptions struct {
	IOStreams *iostreams.IOStreams
	Settings  func() (*config.Settings, error)

	Quiet bool

	Page          string
	NoRenderCheck bool
}

func NewCmdValidate(f *cmdutil.Factory, runF func(context.Context, *ValidateOptions) error) *cobra.Command {
	opts := &ValidateOptions{
		IOStreams: f.IOStreams,
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:   "validate <page>",
		Short: "Validate an existing man page",
		Long: `Checks a man page for structural problems and prints a report.

A missing title header or NAME section is an error; missing SYNOPSIS or
DESCRIPTION and out-of-order sections are warnings. Unless disabled, the
page is also run through the configured renderer to catch troff errors.
The command fails only on errors, never on warnings.`,
		Example: `  # Validate a generated page
  mandown validate mytool.1

  # Structure checks only
  mandown validate mytool.1 --no-render-check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Quiet = !f.ShowProgress()
			opts.Page = args[0]

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return validateRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoRenderCheck, "no-render-check", false, "Skip the render check")

	return cmd
}

func validateRun(ctx context.Context, opts *ValidateOptions) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	settings, err := opts.Settings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	renderCommand := ""
	if settings.Render.IsEnabled() && !opts.NoRenderCheck {
		renderCommand = settings.Render.Command
	}

	report, err := manpage.ValidateFile(ctx, opts.Page, renderCommand)
	if err != nil {
		return err
	}

	cmdutil.PrintReport(ios, report)

	if !report.Ok() {
		return fmt.Errorf("%s failed validation: %s", opts.Page, report.Summary())
	}

	if len(report.Findings) == 0 {
		cmdutil.PrintStatus(ios, opts.Quiet, "%s %s looks good", cs.SuccessIcon(), opts.Page)
	} else {
		cmdutil.PrintStatus(ios, opts.Quiet, "%s %s passed with %s", cs.SuccessIcon(), opts.Page, report.Summary())
	}
	return nil
}

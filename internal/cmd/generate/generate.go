package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/schmitthub/mandown/internal/cmdutil"
	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/convert"
	"github.com/schmitthub/mandown/internal/gitmeta"
	"github.com/schmitthub/mandown/internal/iostreams"
	"github.com/schmitthub/mandown/internal/logger"
	"github.com/schmitthub/mandown/internal/manpage"
	"github.com/schmitthub/mandown/internal/resolve"
	"github.com/spf13/cobra"
)

type GenerateOptions struct {
	IOStreams *iostreams.IOStreams
	Settings  func() (*config.Settings, error)

	Verbose bool
	Quiet   bool

	Target        string
	Readme        string
	Converter     string
	Install       bool
	ForceUser     bool
	NoRenderCheck bool
	Watch         bool
}

func NewCmdGenerate(f *cmdutil.Factory, runF func(context.Context, *GenerateOptions) error) *cobra.Command {
	opts := &GenerateOptions{
		IOStreams: f.IOStreams,
		Settings:  f.Settings,
	}

	cmd := &cobra.Command{
		Use:     "generate <target> [readme]",
		Aliases: []string{"gen"},
		Short:   "Generate a man page from a project README",
		Long: `Generates a section 1 man page for a command from its project README.

The README is located next to the target command (README.md, Readme.md,
or readme.md) unless an explicit path is given. The page is written next
to the README as <target-name>.1, then validated and optionally
installed into the man search path.

Conversion uses the configured AI command by default and falls back to a
built-in markdown converter when none is configured.`,
		Example: `  # Generate mytool.1 next to mytool's README
  mandown generate ./bin/mytool

  # Use an explicit README and install the result
  mandown generate ./bin/mytool docs/README.md --install

  # Regenerate whenever the README changes
  mandown generate ./bin/mytool --watch`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = f.Verbose
			opts.Quiet = !f.ShowProgress()
			opts.Target = args[0]
			if len(args) > 1 {
				opts.Readme = args[1]
			}

			if opts.Watch && opts.Install {
				return cmdutil.FlagErrorf("--watch cannot be combined with --install")
			}

			if runF != nil {
				return runF(cmd.Context(), opts)
			}
			return generateRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Install, "install", "i", false, "Install the page after generating it")
	cmd.Flags().StringVar(&opts.Converter, "converter", "", "Converter to use: claude or md2man")
	cmd.Flags().BoolVar(&opts.NoRenderCheck, "no-render-check", false, "Skip the render check")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Regenerate whenever the README changes")
	cmd.Flags().BoolVar(&opts.ForceUser, "user", false, "Install into the user man directory even when root")

	return cmd
}

func generateRun(ctx context.Context, opts *GenerateOptions) error {
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

	meta := pageMeta(target, readme)
	conv, err := convert.New(opts.Converter, settings, meta)
	if err != nil {
		return cmdutil.FlagErrorWrap(err)
	}

	logger.Debug().
		Str("target", target).
		Str("readme", readme).
		Str("converter", conv.Name()).
		Msg("generating man page")

	if opts.Verbose {
		ios := opts.IOStreams
		cmdutil.PrintStatus(ios, opts.Quiet, "Target: %s", target)
		cmdutil.PrintStatus(ios, opts.Quiet, "README: %s", readme)
		cmdutil.PrintStatus(ios, opts.Quiet, "Converter: %s", conv.Name())
	}

	if opts.Watch {
		return watchLoop(ctx, opts, settings, conv, target, readme)
	}

	return generateOnce(ctx, opts, settings, conv, target, readme)
}

// pageMeta assembles title-header metadata for target, pulling version
// and date from the enclosing git repository when there is one.
func pageMeta(target, readme string) convert.Meta {
	info := gitmeta.Discover(readme)
	return convert.Meta{
		Name:    filepath.Base(target),
		Section: "1",
		Version: info.Version,
		Date:    info.Date,
	}
}

// generateOnce runs one full convert-write-validate-install cycle.
func generateOnce(ctx context.Context, opts *GenerateOptions, settings *config.Settings, conv convert.Converter, target, readme string) error {
	ios := opts.IOStreams
	cs := ios.ColorScheme()

	source, err := os.ReadFile(readme)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", readme, err)
	}

	var page []byte
	convertFn := func() error {
		var convErr error
		page, convErr = conv.Convert(ctx, source)
		return convErr
	}

	if opts.Quiet {
		err = convertFn()
	} else {
		err = ios.RunWithProgress(fmt.Sprintf("Converting %s...", filepath.Base(readme)), convertFn)
	}
	if err != nil {
		// A ConversionError carries the converter name and its stderr;
		// let it propagate so the failure is reported exactly once.
		return err
	}

	pagePath := resolve.PagePath(target, readme)
	if err := os.WriteFile(pagePath, page, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pagePath, err)
	}
	logger.Debug().Str("page", pagePath).Int("bytes", len(page)).Msg("wrote man page")

	if opts.Verbose {
		cmdutil.PrintStatus(ios, opts.Quiet, "Converted %d bytes of markdown into %d bytes of troff", len(source), len(page))
	}

	renderCommand := ""
	if settings.Render.IsEnabled() && !opts.NoRenderCheck {
		renderCommand = settings.Render.Command
	}
	report, err := manpage.ValidateFile(ctx, pagePath, renderCommand)
	if err != nil {
		return err
	}

	cmdutil.PrintReport(ios, report)
	if !report.Ok() {
		return fmt.Errorf("generated page failed validation: %s", report.Summary())
	}

	cmdutil.PrintStatus(ios, opts.Quiet, "%s Wrote %s", cs.SuccessIcon(), pagePath)

	if opts.Install {
		if _, err := cmdutil.InstallPage(ctx, ios, settings, pagePath, opts.ForceUser, opts.Quiet); err != nil {
			return err
		}
	}

	return nil
}

// watchDebounce batches the event bursts editors produce on save.
const watchDebounce = 200 * time.Millisecond

// watchLoop regenerates the page whenever the README changes, until the
// context is cancelled. Generation failures are reported but never end
// the loop; the next save gets a fresh chance.
func watchLoop(ctx context.Context, opts *GenerateOptions, settings *config.Settings, conv convert.Converter, target, readme string) error {
	ios := opts.IOStreams

	if err := generateOnce(ctx, opts, settings, conv, target, readme); err != nil {
		cmdutil.PrintError(ios, "%v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which would silently drop a file-level watch.
	if err := watcher.Add(filepath.Dir(readme)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(readme), err)
	}

	cmdutil.PrintStatus(ios, opts.Quiet, "Watching %s for changes (Ctrl+C to stop)", readme)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != readme {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().Str("event", event.String()).Msg("readme changed")
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			if err := generateOnce(ctx, opts, settings, conv, target, readme); err != nil {
				cmdutil.PrintError(ios, "%v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

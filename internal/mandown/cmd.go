package mandown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/schmitthub/mandown/internal/cmd/factory"
	"github.com/schmitthub/mandown/internal/cmd/root"
	"github.com/schmitthub/mandown/internal/cmdutil"
	"github.com/schmitthub/mandown/internal/logger"
)

// Build-time variables injected via ldflags
var (
	Version   = "dev"
	BuildDate = ""
)

const (
	exitOk    = 0
	exitError = 1
	exitUsage = 2
)

// Main is the entry point for the mandown CLI.
// It initializes the Factory, creates the root command, and executes it.
func Main() int {
	// Ensure logs are flushed on exit
	defer logger.CloseFileWriter()

	f := factory.New(Version, BuildDate)

	rootCmd, err := root.NewCmdRoot(f, Version, BuildDate)
	if err != nil {
		cmdutil.PrintError(f.IOStreams, "failed to create root command: %v", err)
		return exitError
	}

	// Ctrl+C cancels the command context, which ends watch mode and any
	// running converter cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return exitOk
	}

	if errors.Is(err, cmdutil.SilentError) {
		return exitError
	}

	var flagErr *cmdutil.FlagError
	if errors.As(err, &flagErr) {
		cmdutil.PrintHelpHint(f.IOStreams, cmd.CommandPath())
		return exitUsage
	}

	// Cobra already printed "Error: ..."
	cmdutil.PrintHelpHint(f.IOStreams, cmd.CommandPath())
	return exitError
}

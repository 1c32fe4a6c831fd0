package cmdutil

import (
	"fmt"

	"github.com/schmitthub/mandown/internal/iostreams"
	"github.com/schmitthub/mandown/internal/manpage"
)

// PrintStatus prints an informational message to stderr unless quiet is
// enabled. Errors and warnings are never routed through here; they are
// always shown.
func PrintStatus(ios *iostreams.IOStreams, quiet bool, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(ios.ErrOut, format+"\n", args...)
	}
}

// PrintError prints an error message to stderr. Always shown.
func PrintError(ios *iostreams.IOStreams, format string, args ...any) {
	cs := ios.ColorScheme()
	fmt.Fprintf(ios.ErrOut, "%s "+format+"\n", append([]any{cs.FailureIcon()}, args...)...)
}

// PrintWarning prints a warning message to stderr. Always shown.
func PrintWarning(ios *iostreams.IOStreams, format string, args ...any) {
	cs := ios.ColorScheme()
	fmt.Fprintf(ios.ErrOut, "%s "+format+"\n", append([]any{cs.WarningIcon()}, args...)...)
}

// PrintReport prints validation findings to stderr, one per line, using
// the warning icon for warnings and the failure icon for errors.
// Findings are never quiet-gated.
func PrintReport(ios *iostreams.IOStreams, report *manpage.Report) {
	for _, f := range report.Findings {
		if f.Severity == manpage.Error {
			PrintError(ios, "%s", f.String())
		} else {
			PrintWarning(ios, "%s", f.String())
		}
	}
}

// PrintNextSteps prints a numbered list of suggested next actions to
// stderr. No-op with zero steps.
func PrintNextSteps(ios *iostreams.IOStreams, steps ...string) {
	if len(steps) == 0 {
		return
	}

	fmt.Fprintln(ios.ErrOut, "\nNext Steps:")
	for i, step := range steps {
		fmt.Fprintf(ios.ErrOut, "  %d. %s\n", i+1, step)
	}
}

// PrintHelpHint prints a contextual help hint to stderr.
// cmdPath should be cmd.CommandPath() (e.g., "mandown generate").
func PrintHelpHint(ios *iostreams.IOStreams, cmdPath string) {
	fmt.Fprintf(ios.ErrOut, "\nRun '%s --help' for more information.\n", cmdPath)
}

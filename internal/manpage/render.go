package manpage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/google/shlex"
	"github.com/schmitthub/mandown/internal/logger"
)

// RenderCheck runs the configured troff renderer against the page to
// confirm it parses. The renderer is a black box: a non-zero exit is an
// error finding carrying the tool's diagnostics verbatim, success is a
// clean report. The page path is appended as the final argument.
func RenderCheck(ctx context.Context, page, renderCommand string) (*Report, error) {
	argv, err := shlex.Split(renderCommand)
	if err != nil {
		return nil, fmt.Errorf("invalid render command %q: %w", renderCommand, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("render command is empty")
	}

	if _, err := exec.LookPath(argv[0]); err != nil {
		// Renderer not installed: skip with a warning, don't fail the run
		report := &Report{}
		report.Add(Warning, 0, "renderer %q not found, skipping render check", argv[0])
		return report, nil
	}

	args := append(argv[1:], page)
	logger.Debug().Str("renderer", argv[0]).Str("page", page).Msg("running render check")

	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Stdout = io.Discard

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	report := &Report{}
	if err := cmd.Run(); err != nil {
		msg := "render failed"
		if diag := stderr.String(); diag != "" {
			msg += ": " + diag
		}
		report.Add(Error, 0, "%s", msg)
	}

	return report, nil
}

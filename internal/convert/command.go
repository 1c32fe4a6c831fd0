package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/google/shlex"
	"github.com/schmitthub/mandown/internal/logger"
)

// CommandConverter runs an external AI command to produce the man page.
// The configured command line is split with shell quoting rules, the
// prompt is appended as the final argument, the README is piped on stdin
// and the troff page is read from stdout.
type CommandConverter struct {
	argv   []string
	prompt string
}

// NewCommandConverter parses the configured command line.
func NewCommandConverter(command string, meta Meta) (*CommandConverter, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid converter command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("converter command is empty")
	}

	return &CommandConverter{
		argv:   argv,
		prompt: BuildPrompt(meta),
	}, nil
}

// Name implements Converter.
func (c *CommandConverter) Name() string {
	return c.argv[0]
}

// Prompt returns the instruction appended to the command line.
func (c *CommandConverter) Prompt() string {
	return c.prompt
}

// Convert implements Converter. A non-zero exit or empty output is a
// ConversionError carrying the tool's stderr verbatim.
func (c *CommandConverter) Convert(ctx context.Context, readme []byte) ([]byte, error) {
	args := make([]string, 0, len(c.argv))
	args = append(args, c.argv[1:]...)
	args = append(args, c.prompt)

	logger.Debug().Str("command", c.argv[0]).Int("readme_bytes", len(readme)).Msg("invoking converter")

	cmd := exec.CommandContext(ctx, c.argv[0], args...)
	cmd.Stdin = bytes.NewReader(readme)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ConversionError{
			Converter: c.argv[0],
			Stderr:    stderr.String(),
			Err:       err,
		}
	}

	out := stdout.Bytes()
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, &ConversionError{
			Converter: c.argv[0],
			Stderr:    stderr.String(),
			Err:       fmt.Errorf("converter produced no output"),
		}
	}

	return out, nil
}

package iostreams

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTestIOStreams(t *testing.T) {
	ios := NewTestIOStreams()

	assert.False(t, ios.IsInputTTY())
	assert.False(t, ios.IsOutputTTY())
	assert.False(t, ios.IsStderrTTY())
	assert.False(t, ios.IsInteractive())
	assert.False(t, ios.ColorEnabled())
}

func TestTestIOStreams_Buffers(t *testing.T) {
	ios := NewTestIOStreams()

	fmt.Fprint(ios.Out, "to stdout")
	fmt.Fprint(ios.ErrOut, "to stderr")

	assert.Equal(t, "to stdout", ios.OutBuf.String())
	assert.Equal(t, "to stderr", ios.ErrBuf.String())

	ios.OutBuf.Reset()
	assert.Empty(t, ios.OutBuf.String())
}

func TestTestIOStreams_SetInteractive(t *testing.T) {
	ios := NewTestIOStreams()

	ios.SetInteractive(true)
	assert.True(t, ios.IsInteractive())

	ios.SetInteractive(false)
	assert.False(t, ios.IsInteractive())
}

func TestSetColorEnabled(t *testing.T) {
	ios := NewTestIOStreams()

	ios.IOStreams.SetColorEnabled(true)
	assert.True(t, ios.ColorEnabled())

	ios.IOStreams.SetColorEnabled(false)
	assert.False(t, ios.ColorEnabled())
}

func TestProgressIndicator_DisabledForNonTTY(t *testing.T) {
	ios := NewTestIOStreams()

	// Should be a no-op for non-TTY streams; nothing on stderr.
	ios.StartProgressIndicatorWithLabel("working")
	ios.StopProgressIndicator()

	assert.Empty(t, ios.ErrBuf.String())
}

func TestRunWithProgress(t *testing.T) {
	ios := NewTestIOStreams()

	ran := false
	err := ios.RunWithProgress("label", func() error {
		ran = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, ran)
}

func TestColorScheme_Disabled(t *testing.T) {
	cs := NewColorScheme(false)

	assert.False(t, cs.Enabled())
	assert.Equal(t, "hello", cs.Red("hello"))
	assert.Equal(t, "hello", cs.Bold("hello"))
	assert.Equal(t, "✓", cs.SuccessIcon())
	assert.Equal(t, "!", cs.WarningIcon())
	assert.Equal(t, "✗", cs.FailureIcon())
	assert.Equal(t, "x=1", cs.Cyanf("x=%d", 1))
}

package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Setenv("MANDOWN_HOME", t.TempDir())

	f := New("1.0.0", "2026-08-01")

	assert.Equal(t, "1.0.0", f.Version)
	assert.Equal(t, "2026-08-01", f.BuildDate)
	require.NotNil(t, f.IOStreams)
	require.NotNil(t, f.Settings)
	require.NotNil(t, f.SettingsLoader)

	settings, err := f.Settings()
	require.NoError(t, err)
	assert.Equal(t, "claude -p", settings.Convert.Command)

	// Cached: same pointer on the second call
	again, err := f.Settings()
	require.NoError(t, err)
	assert.Same(t, settings, again)
}

package uninstall

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/shlex"
	"github.com/schmitthub/mandown/internal/cmdutil"
	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/iostreams"
	"github.com/stretchr/testify/require"
)

func TestNewCmdUninstall(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOpts UninstallOptions
		wantErr  bool
	}{
		{
			name:     "target only",
			input:    "mytool",
			wantOpts: UninstallOptions{Target: "mytool"},
		},
		{
			name:     "user flag",
			input:    "--user mytool",
			wantOpts: UninstallOptions{Target: "mytool", ForceUser: true},
		},
		{
			name:    "no arguments",
			input:   "",
			wantErr: true,
		},
		{
			name:    "too many arguments",
			input:   "a b",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &cmdutil.Factory{IOStreams: iostreams.NewTestIOStreams().IOStreams}

			var gotOpts *UninstallOptions
			cmd := NewCmdUninstall(f, func(_ context.Context, opts *UninstallOptions) error {
				gotOpts = opts
				return nil
			})

			argv, err := shlex.Split(tt.input)
			require.NoError(t, err)
			cmd.SetArgs(argv)
			cmd.SetIn(&bytes.Buffer{})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			_, err = cmd.ExecuteC()
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, gotOpts)
			require.Equal(t, tt.wantOpts.Target, gotOpts.Target)
			require.Equal(t, tt.wantOpts.ForceUser, gotOpts.ForceUser)
		})
	}
}

func TestUninstallRun(t *testing.T) {
	installDir := t.TempDir()
	page := filepath.Join(installDir, "mytool.1")
	require.NoError(t, os.WriteFile(page, []byte(".TH MYTOOL 1\n"), 0644))

	settings := config.DefaultSettings()
	settings.Install.UserDir = installDir

	ios := iostreams.NewTestIOStreams()
	opts := &UninstallOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return settings, nil },
		Target:    "mytool",
		ForceUser: true,
	}

	require.NoError(t, uninstallRun(context.Background(), opts))

	_, err := os.Stat(page)
	require.True(t, os.IsNotExist(err))
	require.Contains(t, ios.ErrBuf.String(), "Removed")
}

func TestUninstallRun_NotInstalled(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Install.UserDir = t.TempDir()

	ios := iostreams.NewTestIOStreams()
	opts := &UninstallOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return settings, nil },
		Target:    "mytool",
		ForceUser: true,
	}

	require.NoError(t, uninstallRun(context.Background(), opts))
	require.Contains(t, ios.ErrBuf.String(), "Nothing to remove")
}

func TestUninstallRun_TargetPathUsesBasename(t *testing.T) {
	installDir := t.TempDir()
	page := filepath.Join(installDir, "mytool.1")
	require.NoError(t, os.WriteFile(page, []byte(".TH MYTOOL 1\n"), 0644))

	settings := config.DefaultSettings()
	settings.Install.UserDir = installDir

	ios := iostreams.NewTestIOStreams()
	opts := &UninstallOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return settings, nil },
		Target:    "/long/gone/bin/mytool",
		ForceUser: true,
	}

	require.NoError(t, uninstallRun(context.Background(), opts))

	_, err := os.Stat(page)
	require.True(t, os.IsNotExist(err))
}

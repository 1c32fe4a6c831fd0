package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/shlex"
	"github.com/schmitthub/mandown/internal/cmdutil"
	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/convert"
	"github.com/schmitthub/mandown/internal/iostreams"
	"github.com/stretchr/testify/require"
)

func TestNewCmdGenerate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOpts GenerateOptions
		wantErr  bool
	}{
		{
			name:     "target only",
			input:    "./bin/mytool",
			wantOpts: GenerateOptions{Target: "./bin/mytool"},
		},
		{
			name:     "explicit readme",
			input:    "./bin/mytool docs/README.md",
			wantOpts: GenerateOptions{Target: "./bin/mytool", Readme: "docs/README.md"},
		},
		{
			name:     "install shorthand",
			input:    "-i ./bin/mytool",
			wantOpts: GenerateOptions{Target: "./bin/mytool", Install: true},
		},
		{
			name:     "converter selection",
			input:    "--converter md2man ./bin/mytool",
			wantOpts: GenerateOptions{Target: "./bin/mytool", Converter: "md2man"},
		},
		{
			name:     "skip render check",
			input:    "--no-render-check ./bin/mytool",
			wantOpts: GenerateOptions{Target: "./bin/mytool", NoRenderCheck: true},
		},
		{
			name:     "watch mode",
			input:    "--watch ./bin/mytool",
			wantOpts: GenerateOptions{Target: "./bin/mytool", Watch: true},
		},
		{
			name:     "user install",
			input:    "-i --user ./bin/mytool",
			wantOpts: GenerateOptions{Target: "./bin/mytool", Install: true, ForceUser: true},
		},
		{
			name:    "no arguments",
			input:   "",
			wantErr: true,
		},
		{
			name:    "too many arguments",
			input:   "a b c",
			wantErr: true,
		},
		{
			name:    "watch with install",
			input:   "--watch --install ./bin/mytool",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &cmdutil.Factory{IOStreams: iostreams.NewTestIOStreams().IOStreams}

			var gotOpts *GenerateOptions
			cmd := NewCmdGenerate(f, func(_ context.Context, opts *GenerateOptions) error {
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
			require.Equal(t, tt.wantOpts.Readme, gotOpts.Readme)
			require.Equal(t, tt.wantOpts.Converter, gotOpts.Converter)
			require.Equal(t, tt.wantOpts.Install, gotOpts.Install)
			require.Equal(t, tt.wantOpts.ForceUser, gotOpts.ForceUser)
			require.Equal(t, tt.wantOpts.NoRenderCheck, gotOpts.NoRenderCheck)
			require.Equal(t, tt.wantOpts.Watch, gotOpts.Watch)
		})
	}
}

func TestNewCmdGenerate_OutputControls(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		quiet     bool
		wantQuiet bool
	}{
		{name: "default"},
		{name: "verbose", verbose: true},
		{name: "quiet", quiet: true, wantQuiet: true},
		{name: "quiet wins over verbose", verbose: true, quiet: true, wantQuiet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &cmdutil.Factory{
				IOStreams: iostreams.NewTestIOStreams().IOStreams,
				Verbose:   tt.verbose,
				Quiet:     tt.quiet,
			}

			var gotOpts *GenerateOptions
			cmd := NewCmdGenerate(f, func(_ context.Context, opts *GenerateOptions) error {
				gotOpts = opts
				return nil
			})

			cmd.SetArgs([]string{"./bin/mytool"})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			_, err := cmd.ExecuteC()
			require.NoError(t, err)
			require.NotNil(t, gotOpts)
			require.Equal(t, tt.wantQuiet, gotOpts.Quiet)
			require.Equal(t, tt.verbose, gotOpts.Verbose)
		})
	}
}

func TestCmdGenerate_Properties(t *testing.T) {
	f := &cmdutil.Factory{IOStreams: iostreams.NewTestIOStreams().IOStreams}
	cmd := NewCmdGenerate(f, nil)

	require.Equal(t, "generate <target> [readme]", cmd.Use)
	require.Contains(t, cmd.Aliases, "gen")
	require.NotEmpty(t, cmd.Short)
	require.NotEmpty(t, cmd.Long)
	require.NotEmpty(t, cmd.Example)
	require.NotNil(t, cmd.RunE)

	require.NotNil(t, cmd.Flags().Lookup("install"))
	require.NotNil(t, cmd.Flags().Lookup("converter"))
	require.NotNil(t, cmd.Flags().Lookup("no-render-check"))
	require.NotNil(t, cmd.Flags().Lookup("watch"))
	require.NotNil(t, cmd.Flags().Lookup("user"))
	require.NotNil(t, cmd.Flags().ShorthandLookup("i"))
}

// testSettings disables the render check and leaves the AI command unset
// so conversion falls back to md2man, keeping the run hermetic.
func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	enabled := false
	s := config.DefaultSettings()
	s.Convert.Command = ""
	s.Render.Enabled = &enabled
	return s
}

// writeProject lays out a fake project: a target file and a README.
func writeProject(t *testing.T, readmeName string) (dir, target string) {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	target = filepath.Join(dir, "mytool")
	require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0755))

	readme := "# mytool\n\nmytool frobnicates widgets.\n\n## Synopsis\n\n    mytool [options]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, readmeName), []byte(readme), 0644))
	return dir, target
}

func TestGenerateRun_WritesPageNextToReadme(t *testing.T) {
	dir, target := writeProject(t, "README.md")

	ios := iostreams.NewTestIOStreams()
	opts := &GenerateOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return testSettings(t), nil },
		Target:    target,
	}

	require.NoError(t, generateRun(context.Background(), opts))

	page, err := os.ReadFile(filepath.Join(dir, "mytool.1"))
	require.NoError(t, err)
	require.Contains(t, string(page), ".TH")
	require.Contains(t, string(page), ".SH NAME")
	require.Contains(t, ios.ErrBuf.String(), "Wrote")
}

func TestGenerateRun_ExplicitReadmeWins(t *testing.T) {
	dir, target := writeProject(t, "README.md")

	other := filepath.Join(dir, "MANUAL.md")
	require.NoError(t, os.WriteFile(other, []byte("# mytool\n\nthe real manual.\n"), 0644))

	ios := iostreams.NewTestIOStreams()
	opts := &GenerateOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return testSettings(t), nil },
		Target:    target,
		Readme:    other,
	}

	require.NoError(t, generateRun(context.Background(), opts))

	page, err := os.ReadFile(filepath.Join(dir, "mytool.1"))
	require.NoError(t, err)
	require.Contains(t, string(page), "the real manual")
}

func TestGenerateRun_MissingReadme(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	target := filepath.Join(dir, "mytool")
	require.NoError(t, os.WriteFile(target, []byte("bin"), 0755))

	ios := iostreams.NewTestIOStreams()
	opts := &GenerateOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return testSettings(t), nil },
		Target:    target,
	}

	require.Error(t, generateRun(context.Background(), opts))
}

func TestGenerateRun_MissingTarget(t *testing.T) {
	ios := iostreams.NewTestIOStreams()
	opts := &GenerateOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return testSettings(t), nil },
		Target:    filepath.Join(t.TempDir(), "no-such-tool"),
	}

	require.Error(t, generateRun(context.Background(), opts))
}

func TestGenerateRun_InstallsIntoUserDir(t *testing.T) {
	_, target := writeProject(t, "README.md")

	installDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	settings := testSettings(t)
	settings.Install.UserDir = installDir

	ios := iostreams.NewTestIOStreams()
	opts := &GenerateOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return settings, nil },
		Target:    target,
		Install:   true,
		ForceUser: true,
	}

	require.NoError(t, generateRun(context.Background(), opts))

	installed, err := os.ReadFile(filepath.Join(installDir, "mytool.1"))
	require.NoError(t, err)
	require.Contains(t, string(installed), ".TH")
	require.Contains(t, ios.ErrBuf.String(), "Installed")
}

func TestGenerateRun_InvalidPageFailsValidation(t *testing.T) {
	dir, target := writeProject(t, "README.md")

	// A converter that emits troff with no NAME section.
	settings := testSettings(t)
	settings.Convert.Command = "sh -c 'printf \".TH X 1\\nno sections here\\n\"'"

	ios := iostreams.NewTestIOStreams()
	opts := &GenerateOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return settings, nil },
		Target:    target,
		Converter: "claude",
	}

	err := generateRun(context.Background(), opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed validation")

	// The page is still on disk for inspection.
	_, statErr := os.Stat(filepath.Join(dir, "mytool.1"))
	require.NoError(t, statErr)
}

func TestGenerateRun_VerbosePrintsStepDetail(t *testing.T) {
	dir, target := writeProject(t, "README.md")

	ios := iostreams.NewTestIOStreams()
	opts := &GenerateOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return testSettings(t), nil },
		Target:    target,
		Verbose:   true,
	}

	require.NoError(t, generateRun(context.Background(), opts))

	out := ios.ErrBuf.String()
	require.Contains(t, out, "Target: "+target)
	require.Contains(t, out, "README: "+filepath.Join(dir, "README.md"))
	require.Contains(t, out, "Converter: md2man")
	require.Contains(t, out, "bytes of troff")
}

func TestGenerateRun_QuietSuppressesVerboseDetail(t *testing.T) {
	_, target := writeProject(t, "README.md")

	ios := iostreams.NewTestIOStreams()
	opts := &GenerateOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return testSettings(t), nil },
		Target:    target,
		Verbose:   true,
		Quiet:     true,
	}

	require.NoError(t, generateRun(context.Background(), opts))

	out := ios.ErrBuf.String()
	require.NotContains(t, out, "Converter:")
	require.NotContains(t, out, "Wrote")
}

func TestGenerateRun_ConverterFailureReportedOnce(t *testing.T) {
	_, target := writeProject(t, "README.md")

	settings := testSettings(t)
	settings.Convert.Command = "sh -c 'echo boom >&2; exit 1'"

	ios := iostreams.NewTestIOStreams()
	f := &cmdutil.Factory{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return settings, nil },
	}

	cmd := NewCmdGenerate(f, nil)
	cmd.SetArgs([]string{"--converter", "claude", target})
	cmd.SetOut(&bytes.Buffer{})
	stderr := &bytes.Buffer{}
	cmd.SetErr(stderr)

	_, err := cmd.ExecuteC()
	require.Error(t, err)
	require.Contains(t, err.Error(), `converter "sh" failed`)
	require.Contains(t, err.Error(), "boom")

	// Cobra reports the returned error; the command must not print the
	// failure a second time itself.
	combined := stderr.String() + ios.ErrBuf.String()
	require.Equal(t, 1, strings.Count(combined, `converter "sh" failed`))
}

func TestGenerateRun_UnknownConverter(t *testing.T) {
	_, target := writeProject(t, "README.md")

	ios := iostreams.NewTestIOStreams()
	opts := &GenerateOptions{
		IOStreams: ios.IOStreams,
		Settings:  func() (*config.Settings, error) { return testSettings(t), nil },
		Target:    target,
		Converter: "pandoc",
	}

	err := generateRun(context.Background(), opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown converter")
}

// countingConverter wraps a real converter and counts Convert calls, so
// watch tests can observe regenerations without parsing output.
type countingConverter struct {
	inner convert.Converter
	calls atomic.Int32
}

func (c *countingConverter) Name() string { return c.inner.Name() }

func (c *countingConverter) Convert(ctx context.Context, readme []byte) ([]byte, error) {
	c.calls.Add(1)
	return c.inner.Convert(ctx, readme)
}

func waitForCalls(t *testing.T, conv *countingConverter, want int32) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for conv.calls.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("converter calls = %d, want at least %d", conv.calls.Load(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// startWatchLoop runs watchLoop in the background against a fresh project
// and returns everything a test needs to drive it.
func startWatchLoop(t *testing.T) (readme string, conv *countingConverter, cancel context.CancelFunc, done chan error) {
	t.Helper()

	dir, target := writeProject(t, "README.md")
	readme = filepath.Join(dir, "README.md")

	settings := testSettings(t)
	inner, err := convert.New("md2man", settings, convert.Meta{Name: "mytool"})
	require.NoError(t, err)
	conv = &countingConverter{inner: inner}

	opts := &GenerateOptions{
		IOStreams: iostreams.NewTestIOStreams().IOStreams,
		Settings:  func() (*config.Settings, error) { return settings, nil },
		Target:    target,
		Watch:     true,
		Quiet:     true,
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	done = make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, opts, settings, conv, target, readme)
	}()

	return readme, conv, cancelFn, done
}

// touchUntil rewrites the README until a regeneration is observed. The
// first write can race the watch registration, so it retries, pausing
// long enough between writes for the debounce timer to fire.
func touchUntil(t *testing.T, readme string, content []byte, conv *countingConverter, want int32) {
	t.Helper()
	for i := 0; i < 10 && conv.calls.Load() < want; i++ {
		require.NoError(t, os.WriteFile(readme, content, 0644))
		time.Sleep(3 * watchDebounce)
	}
	waitForCalls(t, conv, want)
}

func TestWatchLoop_RegeneratesOnReadmeChange(t *testing.T) {
	readme, conv, cancel, done := startWatchLoop(t)
	defer cancel()

	// Initial generation runs before watching starts.
	waitForCalls(t, conv, 1)

	touchUntil(t, readme, []byte("# mytool\n\nthe updated manual.\n"), conv, 2)

	// The call count advances when conversion starts; wait for the
	// rewritten page to land on disk.
	pagePath := filepath.Join(filepath.Dir(readme), "mytool.1")
	deadline := time.Now().Add(5 * time.Second)
	for {
		page, err := os.ReadFile(pagePath)
		if err == nil && strings.Contains(string(page), "the updated manual") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("page was not regenerated from the updated README")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Cancellation ends the loop cleanly.
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop on context cancellation")
	}
}

func TestWatchLoop_DebouncesEventBursts(t *testing.T) {
	readme, conv, cancel, done := startWatchLoop(t)
	defer cancel()

	waitForCalls(t, conv, 1)

	// Confirm the watch is live, then let the debounce window drain.
	touchUntil(t, readme, []byte("# mytool\n\nprimed.\n"), conv, 2)
	time.Sleep(3 * watchDebounce)
	before := conv.calls.Load()

	// An editor-style burst of saves inside one debounce window.
	for i := 0; i < 4; i++ {
		require.NoError(t, os.WriteFile(readme, []byte("# mytool\n\nburst edit.\n"), 0644))
		time.Sleep(watchDebounce / 10)
	}

	waitForCalls(t, conv, before+1)
	time.Sleep(3 * watchDebounce)
	require.Equal(t, before+1, conv.calls.Load(), "a burst of events must collapse into one regeneration")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop on context cancellation")
	}
}

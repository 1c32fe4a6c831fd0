package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tempDir returns a symlink-free temp directory so canonicalized paths
// compare equal on platforms where TMPDIR itself is a symlink.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTarget(t *testing.T) {
	dir := tempDir(t)
	target := writeFile(t, filepath.Join(dir, "mytool"), "#!/bin/sh\n")

	got, err := Target(target)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestTarget_FollowsSymlinks(t *testing.T) {
	dir := tempDir(t)
	real := writeFile(t, filepath.Join(dir, "real"), "content")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(real, link))

	got, err := Target(link)
	require.NoError(t, err)
	assert.Equal(t, real, got)
}

func TestTarget_NotFound(t *testing.T) {
	_, err := Target(filepath.Join(t.TempDir(), "missing"))

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Contains(t, nfe.Path, "missing")
}

func TestTarget_Directory(t *testing.T) {
	_, err := Target(t.TempDir())

	var ite *InvalidTargetError
	require.ErrorAs(t, err, &ite)
}

func TestTarget_PreservesSpacesInName(t *testing.T) {
	dir := tempDir(t)
	target := writeFile(t, filepath.Join(dir, "my cmd"), "x")

	got, err := Target(target)
	require.NoError(t, err)
	assert.Equal(t, target, got)
	assert.Equal(t, "my cmd.1", PageName(got))
}

func TestReadme_ExplicitWins(t *testing.T) {
	dir := tempDir(t)
	target := writeFile(t, filepath.Join(dir, "tool"), "x")
	writeFile(t, filepath.Join(dir, "README.md"), "# sibling")
	explicit := writeFile(t, filepath.Join(dir, "docs", "manual.md"), "# explicit")

	got, err := Readme(target, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
}

func TestReadme_ExplicitMissing(t *testing.T) {
	dir := tempDir(t)
	target := writeFile(t, filepath.Join(dir, "tool"), "x")

	_, err := Readme(target, filepath.Join(dir, "nope.md"))

	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestReadme_DirectorySearch(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{
			name:     "standard name",
			files:    []string{"README.md"},
			expected: "README.md",
		},
		{
			name:     "lowercase fallback",
			files:    []string{"readme.md"},
			expected: "readme.md",
		},
		{
			name:     "canonical name preferred",
			files:    []string{"readme.md", "README.md"},
			expected: "README.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tempDir(t)
			target := writeFile(t, filepath.Join(dir, "tool"), "x")
			for _, f := range tt.files {
				writeFile(t, filepath.Join(dir, f), "# doc")
			}

			got, err := Readme(target, "")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.expected), got)
		})
	}
}

func TestReadme_Missing(t *testing.T) {
	dir := tempDir(t)
	target := writeFile(t, filepath.Join(dir, "tool"), "x")

	_, err := Readme(target, "")

	var mre *MissingReadmeError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, dir, mre.Dir)
}

func TestReadme_EmptyFileIsValid(t *testing.T) {
	dir := tempDir(t)
	target := writeFile(t, filepath.Join(dir, "tool"), "x")
	readme := writeFile(t, filepath.Join(dir, "README.md"), "")

	got, err := Readme(target, "")
	require.NoError(t, err)
	assert.Equal(t, readme, got)
}

func TestInstallContextFor(t *testing.T) {
	// forceUser always wins, regardless of privilege
	assert.Equal(t, UserInstall, InstallContextFor(true))

	// Without forceUser the result tracks the effective uid
	if os.Geteuid() == 0 {
		assert.Equal(t, SystemInstall, InstallContextFor(false))
	} else {
		assert.Equal(t, UserInstall, InstallContextFor(false))
	}
}

func TestInstallContext_String(t *testing.T) {
	assert.Equal(t, "system", SystemInstall.String())
	assert.Equal(t, "user", UserInstall.String())
}

func TestInstallDirFor(t *testing.T) {
	dir, err := InstallDirFor(SystemInstall, "")
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/share/man/man1", dir)
}

func TestInstallDirFor_Override(t *testing.T) {
	dir, err := InstallDirFor(SystemInstall, "/opt/man/man1")
	require.NoError(t, err)
	assert.Equal(t, "/opt/man/man1", dir)
}

func TestInstallDirFor_UserXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir, err := InstallDirFor(UserInstall, "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-data/man/man1", dir)
}

func TestInstallDirFor_UserHomeFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	dir, err := InstallDirFor(UserInstall, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "man", "man1"), dir)
}

func TestPagePath(t *testing.T) {
	got := PagePath("/src/proj/bin/my cmd", "/src/proj/README.md")
	assert.Equal(t, "/src/proj/my cmd.1", got)
}

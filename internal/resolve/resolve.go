// Package resolve canonicalizes target and README paths and selects the
// install directory for the current privilege context.
package resolve

import (
	"os"
	"path/filepath"
)

// readmeNames are the conventional README file names searched for in the
// target's directory, in priority order.
var readmeNames = []string{"README.md", "Readme.md", "readme.md"}

// InstallContext selects between a machine-wide and a per-user install.
type InstallContext int

const (
	// SystemInstall places pages under the shared man hierarchy.
	SystemInstall InstallContext = iota
	// UserInstall places pages under the user's data directory.
	UserInstall
)

// String returns the context name for logs and messages.
func (c InstallContext) String() string {
	if c == SystemInstall {
		return "system"
	}
	return "user"
}

// systemManDir is the shared man1 hierarchy used for system installs.
const systemManDir = "/usr/local/share/man/man1"

// Target canonicalizes the path of the command being documented, following
// symlinks. The target must exist and be a regular file; it does not need
// to be executable. Paths are handled byte-for-byte, so names with
// whitespace or punctuation survive intact.
func Target(input string) (string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Path: abs}
		}
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &NotFoundError{Path: resolved}
	}
	if !info.Mode().IsRegular() {
		return "", &InvalidTargetError{Path: resolved, Mode: info.Mode().String()}
	}

	return resolved, nil
}

// Readme locates the README documenting target. An explicit path always
// wins over directory search; it is canonicalized and must exist. With no
// explicit path, the target's directory is searched for a conventionally
// named README. An empty README file is fine; emptiness is the
// converter's concern, not ours.
func Readme(target, explicit string) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", err
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			if os.IsNotExist(err) {
				return "", &NotFoundError{Path: abs}
			}
			return "", err
		}
		if info, err := os.Stat(resolved); err != nil || !info.Mode().IsRegular() {
			return "", &NotFoundError{Path: resolved}
		}
		return resolved, nil
	}

	dir := filepath.Dir(target)
	for _, name := range readmeNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}

	return "", &MissingReadmeError{Dir: dir}
}

// InstallContextFor determines the install context from the effective
// privilege of the running process. forceUser requests user context even
// when privileged. Pure function of process identity, recomputed on every
// invocation and never cached.
func InstallContextFor(forceUser bool) InstallContext {
	if forceUser {
		return UserInstall
	}
	if os.Geteuid() == 0 {
		return SystemInstall
	}
	return UserInstall
}

// InstallDirFor maps an install context to its man1 directory.
// Non-empty override wins (from settings). The directory is not created
// here; the installer creates it on demand.
func InstallDirFor(ctx InstallContext, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if ctx == SystemInstall {
		return systemManDir, nil
	}

	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "man", "man1"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "man", "man1"), nil
}

// PageName returns the man page file name for a target: the target's
// basename with a ".1" suffix, byte-exact even for names with spaces.
func PageName(target string) string {
	return filepath.Base(target) + ".1"
}

// PagePath returns where the generated page for target lives: next to the
// README, named after the target.
func PagePath(target, readme string) string {
	return filepath.Join(filepath.Dir(readme), PageName(target))
}

package manpage

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/schmitthub/mandown/internal/logger"
)

// InstallError reports a failed copy into the install directory.
type InstallError struct {
	Page string
	Dir  string
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("failed to install %s into %s: %v", e.Page, e.Dir, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// Install copies page into dir with mode 644, creating the directory on
// demand. Returns the installed path.
func Install(page, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &InstallError{Page: page, Dir: dir, Err: err}
	}

	data, err := os.ReadFile(page)
	if err != nil {
		return "", &InstallError{Page: page, Dir: dir, Err: err}
	}

	dest := filepath.Join(dir, filepath.Base(page))
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", &InstallError{Page: page, Dir: dir, Err: err}
	}

	logger.Debug().Str("page", page).Str("dest", dest).Msg("installed man page")
	return dest, nil
}

// Uninstall removes the named page from dir. A page that was never
// installed is not an error.
func Uninstall(pageName, dir string) (string, error) {
	dest := filepath.Join(dir, pageName)

	err := os.Remove(dest)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", &InstallError{Page: pageName, Dir: dir, Err: err}
	}
	return dest, nil
}

// indexers are tried in order to refresh the man database after install.
var indexers = [][]string{
	{"mandb", "-q"},
	{"makewhatis"},
}

// RefreshIndex refreshes the man database so the new page is findable.
// Failure is never fatal: a missing or failing indexer is logged and
// swallowed, the installation still counts as successful.
func RefreshIndex(ctx context.Context) {
	for _, argv := range indexers {
		if _, err := exec.LookPath(argv[0]); err != nil {
			continue
		}

		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		if out, err := cmd.CombinedOutput(); err != nil {
			logger.Warn().Err(err).Str("indexer", argv[0]).Bytes("output", out).Msg("man database refresh failed")
		} else {
			logger.Debug().Str("indexer", argv[0]).Msg("man database refreshed")
		}
		return
	}

	logger.Debug().Msg("no man database indexer found, skipping refresh")
}

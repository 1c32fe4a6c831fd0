package cmdutil

import (
	"context"

	"github.com/schmitthub/mandown/internal/config"
	"github.com/schmitthub/mandown/internal/iostreams"
	"github.com/schmitthub/mandown/internal/logger"
	"github.com/schmitthub/mandown/internal/manpage"
	"github.com/schmitthub/mandown/internal/resolve"
)

// ResolveInstallDir determines the install directory for the current
// invocation: privilege context first (with forceUser and the settings
// preference both able to demote to user context), then any per-context
// directory override from settings.
func ResolveInstallDir(settings *config.Settings, forceUser bool) (string, resolve.InstallContext, error) {
	installCtx := resolve.InstallContextFor(forceUser || settings.Install.PreferUser)

	override := settings.Install.UserDir
	if installCtx == resolve.SystemInstall {
		override = settings.Install.SystemDir
	}

	dir, err := resolve.InstallDirFor(installCtx, override)
	if err != nil {
		return "", installCtx, err
	}
	return dir, installCtx, nil
}

// InstallPage copies a generated page into the context-appropriate man1
// directory and refreshes the man database. The refresh is best effort;
// only the copy can fail the install.
func InstallPage(ctx context.Context, ios *iostreams.IOStreams, settings *config.Settings, page string, forceUser, quiet bool) (string, error) {
	dir, installCtx, err := ResolveInstallDir(settings, forceUser)
	if err != nil {
		return "", err
	}

	logger.Debug().Str("page", page).Str("dir", dir).Str("context", installCtx.String()).Msg("installing man page")

	dest, err := manpage.Install(page, dir)
	if err != nil {
		return "", err
	}

	PrintStatus(ios, quiet, "%s Installed %s (%s)", ios.ColorScheme().SuccessIcon(), dest, installCtx)

	manpage.RefreshIndex(ctx)
	return dest, nil
}

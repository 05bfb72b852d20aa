package ports

import (
	"context"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
	plugindomain "github.com/soulstoneaddons/bepinex-installer/internal/core/domain/plugin"
)

// SteamLocator finds the Steam installation and the games it manages
type SteamLocator interface {
	// SteamPath returns the Steam installation root
	SteamPath() (string, error)

	// ListGames returns every installed game across all library folders
	ListGames(steamRoot string) ([]domain.SteamGame, error)

	// ReadAppState reads the manifest state of an installed app
	ReadAppState(game domain.SteamGame) (domain.AppState, error)
}

// RuntimeInstaller installs the mod-loader runtime into a game directory
type RuntimeInstaller interface {
	// IsInstalled reports whether the runtime directory layout is present
	IsInstalled(gameDir string) bool

	// HasRun reports whether the game was started with the runtime at least once
	HasRun(gameDir string) bool

	// Install downloads and unpacks the runtime. It returns false when the
	// runtime was already present and nothing was done.
	Install(ctx context.Context, gameDir string) (bool, error)
}

// PluginCatalog lists and downloads community plugins
type PluginCatalog interface {
	ListPlugins(ctx context.Context) ([]plugindomain.Descriptor, error)
	DownloadPlugin(ctx context.Context, plugin plugindomain.Descriptor, installRoot string) (plugindomain.InstallResult, error)
}

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Reporter prints operator-facing status lines
type Reporter interface {
	Step(msg string)
	Success(msg string)
	Failure(msg string)
	Warn(msg string)
	Info(msg string)
}

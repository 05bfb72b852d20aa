package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
	plugindomain "github.com/soulstoneaddons/bepinex-installer/internal/core/domain/plugin"
	"github.com/soulstoneaddons/bepinex-installer/internal/core/ports"
)

// InstallationOptions selects the target game and what to install
type InstallationOptions struct {
	GameID      string
	GameName    string
	SkipPlugins bool
}

// PluginFailure records a plugin that could not be installed
type PluginFailure struct {
	Plugin plugindomain.Descriptor
	Err    error
}

// Summary describes what a run did
type Summary struct {
	SteamPath        string
	Game             domain.SteamGame
	RuntimeInstalled bool // false when it was already present
	PluginsOffered   int
	Installed        []plugindomain.InstallResult
	Skipped          []plugindomain.Descriptor
	Failed           []PluginFailure
}

// InstallationService drives a full run: find the game, install the
// runtime, then offer each catalog plugin to the operator
type InstallationService struct {
	locator   ports.SteamLocator
	runtime   ports.RuntimeInstaller
	catalog   ports.PluginCatalog
	confirmer ports.Confirmer
	reporter  ports.Reporter
	logger    zerolog.Logger
	opts      InstallationOptions
}

// NewInstallationService creates the installation driver
func NewInstallationService(
	locator ports.SteamLocator,
	runtime ports.RuntimeInstaller,
	catalog ports.PluginCatalog,
	confirmer ports.Confirmer,
	reporter ports.Reporter,
	logger zerolog.Logger,
	opts InstallationOptions,
) *InstallationService {
	return &InstallationService{
		locator:   locator,
		runtime:   runtime,
		catalog:   catalog,
		confirmer: confirmer,
		reporter:  reporter,
		logger:    logger.With().Str("component", "installation").Logger(),
		opts:      opts,
	}
}

// Run performs the installation. Failing to find Steam or the game,
// failing to install the runtime and failing to list the catalog end the
// run with an error. A failing plugin is reported and the run moves on.
func (s *InstallationService) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	game, err := s.locateGame(summary)
	if err != nil {
		return summary, err
	}
	summary.Game = game

	s.checkAppState(game)

	s.reporter.Step("Installing BepInEx...")
	installed, err := s.runtime.Install(ctx, game.Path)
	if err != nil {
		s.reporter.Failure(fmt.Sprintf("BepInEx installation failed: %v", err))
		return summary, fmt.Errorf("failed to install runtime: %w", err)
	}
	summary.RuntimeInstalled = installed
	if installed {
		s.reporter.Success("BepInEx installed!")
	} else {
		s.reporter.Info("BepInEx is already installed, skipping download")
	}
	if !s.runtime.HasRun(game.Path) {
		s.reporter.Info("Start the game once after installing so BepInEx can finish its setup")
	}

	if s.opts.SkipPlugins {
		s.reportSummary(summary)
		return summary, nil
	}

	if err := s.installPlugins(ctx, game, summary); err != nil {
		return summary, err
	}

	s.reportSummary(summary)
	return summary, nil
}

func (s *InstallationService) locateGame(summary *Summary) (domain.SteamGame, error) {
	s.reporter.Step("Checking for Steam...")
	steamPath, err := s.locator.SteamPath()
	if err != nil {
		s.reporter.Failure("Steam not found!")
		return domain.SteamGame{}, err
	}
	summary.SteamPath = steamPath
	s.reporter.Success("Steam found!")

	s.reporter.Step("Checking for games...")
	games, err := s.locator.ListGames(steamPath)
	if err != nil {
		s.reporter.Failure("No games found!")
		return domain.SteamGame{}, err
	}
	s.reporter.Success(fmt.Sprintf("%d Games found!", len(games)))

	for _, game := range games {
		if game.ID == s.opts.GameID {
			s.reporter.Success(fmt.Sprintf("%s found!", s.gameName(game)))
			s.logger.Debug().Str("path", game.Path).Msg("target game")
			return game, nil
		}
	}

	s.reporter.Failure(fmt.Sprintf("%s not found!", s.opts.GameName))
	return domain.SteamGame{}, fmt.Errorf("app %s: %w", s.opts.GameID, domain.ErrGameNotFound)
}

// checkAppState warns when Steam is still installing or updating the game.
// It never stops the run.
func (s *InstallationService) checkAppState(game domain.SteamGame) {
	state, err := s.locator.ReadAppState(game)
	if err != nil {
		s.logger.Debug().Err(err).Msg("could not read app state")
		return
	}
	if !state.FullyInstalled() {
		s.reporter.Warn(fmt.Sprintf("Steam reports %s is not fully installed or has a pending update (state %d)", s.gameName(game), state.StateFlags))
	}
}

func (s *InstallationService) installPlugins(ctx context.Context, game domain.SteamGame, summary *Summary) error {
	s.reporter.Step("Fetching plugin list...")
	plugins, err := s.catalog.ListPlugins(ctx)
	if err != nil {
		if domain.IsRateLimited(err) {
			s.reporter.Failure("Rate limit exceeded, please wait a few minutes and try again.")
		} else {
			s.reporter.Failure(fmt.Sprintf("Could not fetch plugins: %v", err))
		}
		return err
	}
	summary.PluginsOffered = len(plugins)

	if len(plugins) == 0 {
		s.reporter.Info("No plugins available")
		return nil
	}

	for _, plugin := range plugins {
		if err := ctx.Err(); err != nil {
			return err
		}

		if plugin.Description != "" {
			s.reporter.Info(fmt.Sprintf("%s: %s", plugin.Name, plugin.Description))
		}
		ok, err := s.confirmer.Confirm(fmt.Sprintf("Do you want to install %s? (Y/N)", plugin.Name))
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if !ok {
			summary.Skipped = append(summary.Skipped, plugin)
			continue
		}

		s.reporter.Step(fmt.Sprintf("Downloading %s...", plugin.Name))
		result, err := s.catalog.DownloadPlugin(ctx, plugin, game.Path)
		if err != nil {
			s.reporter.Failure(fmt.Sprintf("Error downloading %s: %v", plugin.Name, err))
			summary.Failed = append(summary.Failed, PluginFailure{Plugin: plugin, Err: err})
			continue
		}
		s.reporter.Success(fmt.Sprintf("%s downloaded successfully!", plugin.Name))
		summary.Installed = append(summary.Installed, result)
	}

	return nil
}

func (s *InstallationService) reportSummary(summary *Summary) {
	s.reporter.Info("")
	s.reporter.Info(fmt.Sprintf("Game:    %s", summary.Game.Path))
	if summary.RuntimeInstalled {
		s.reporter.Info("BepInEx: installed")
	} else {
		s.reporter.Info("BepInEx: already present")
	}

	if s.opts.SkipPlugins {
		s.reporter.Info("Plugins: skipped")
		return
	}

	s.reporter.Info(fmt.Sprintf("Plugins: %d installed, %d skipped, %d failed (of %d)",
		len(summary.Installed), len(summary.Skipped), len(summary.Failed), summary.PluginsOffered))
	for _, result := range summary.Installed {
		s.reporter.Success(fmt.Sprintf("  %s (%s)", result.Plugin.Name, result.Asset.Name))
	}
	for _, failure := range summary.Failed {
		s.reporter.Failure(fmt.Sprintf("  %s", failure.Plugin.Name))
	}
}

func (s *InstallationService) gameName(game domain.SteamGame) string {
	if game.Name != "" {
		return game.Name
	}
	return s.opts.GameName
}

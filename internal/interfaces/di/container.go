package di

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/soulstoneaddons/bepinex-installer/internal/application/services"
	"github.com/soulstoneaddons/bepinex-installer/internal/config"
	"github.com/soulstoneaddons/bepinex-installer/internal/core/ports"
	"github.com/soulstoneaddons/bepinex-installer/internal/infrastructure/bepinex"
	"github.com/soulstoneaddons/bepinex-installer/internal/infrastructure/github"
	httpinfra "github.com/soulstoneaddons/bepinex-installer/internal/infrastructure/http"
	"github.com/soulstoneaddons/bepinex-installer/internal/infrastructure/steam"
	"github.com/soulstoneaddons/bepinex-installer/internal/logging"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger zerolog.Logger

	// Infrastructure
	HTTPClient *httpinfra.Client
	Locator    *steam.Locator
	Runtime    *bepinex.Installer
	Catalog    *github.Catalog

	// Application
	Installation *services.InstallationService
}

// UI is the operator-facing side of a run
type UI struct {
	Reporter  ports.Reporter
	Confirmer ports.Confirmer
	LogOutput io.Writer // stderr when nil
}

// NewContainer wires every component from a resolved configuration
func NewContainer(cfg *config.Config, ui UI, opts services.InstallationOptions) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logging.NewConsoleLogger(ui.LogOutput, cfg.Debug),
	}
	c.initializeComponents(ui, opts)

	c.Logger.Debug().
		Str("game_id", cfg.GameID).
		Str("org", cfg.GitHubOrg).
		Str("plugins_dir", cfg.PluginsDir).
		Bool("github_token", cfg.GitHubToken != "").
		Msg("container initialized")
	return c, nil
}

func (c *Container) initializeComponents(ui UI, opts services.InstallationOptions) {
	cfg := c.Config

	// 1. Transport
	c.HTTPClient = httpinfra.NewClient(cfg.UserAgent, cfg.HTTPTimeout, c.Logger,
		httpinfra.WithGitHubToken(cfg.GitHubAPIURL, cfg.GitHubToken))

	// 2. Steam discovery
	c.Locator = steam.NewLocator(cfg.SteamPath, c.Logger)

	// 3. Runtime and plugins
	c.Runtime = bepinex.NewInstaller(bepinex.Options{
		ArchiveURL:  cfg.RuntimeURL,
		ScratchDir:  cfg.ScratchDir,
		SettleDelay: cfg.SettleDelay,
	}, c.HTTPClient, c.Logger)

	c.Catalog = github.NewCatalog(github.Options{
		APIURL:     cfg.GitHubAPIURL,
		Org:        cfg.GitHubOrg,
		Topic:      cfg.PluginTopic,
		PluginsDir: cfg.PluginsDir,
	}, c.HTTPClient, c.Logger)

	// 4. Driver
	if opts.GameID == "" {
		opts.GameID = cfg.GameID
	}
	if opts.GameName == "" {
		opts.GameName = cfg.GameName
	}
	c.Installation = services.NewInstallationService(
		c.Locator,
		c.Runtime,
		c.Catalog,
		ui.Confirmer,
		ui.Reporter,
		c.Logger,
		opts,
	)
}

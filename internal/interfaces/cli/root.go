package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/soulstoneaddons/bepinex-installer/internal/application/services"
	"github.com/soulstoneaddons/bepinex-installer/internal/config"
	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
	"github.com/soulstoneaddons/bepinex-installer/internal/core/ports"
	"github.com/soulstoneaddons/bepinex-installer/internal/interfaces/di"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// IOStreams are the standard streams commands talk through
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// DefaultStreams returns the process standard streams
func DefaultStreams() IOStreams {
	return IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}
}

// RootFlags holds the global command-line flags
type RootFlags struct {
	ConfigPath  string
	SteamPath   string
	GameID      string
	Debug       bool
	Yes         bool
	SkipPlugins bool
	NoPause     bool
}

// NewRootCommand creates the base command. Run without a subcommand it
// performs the full installation.
func NewRootCommand(streams IOStreams) *cobra.Command {
	flags := &RootFlags{}

	rootCmd := &cobra.Command{
		Use:   "soulstone-installer",
		Short: "Install BepInEx and community plugins for Soulstone Survivors",
		Long: `Soulstone Survivors BepInEx Installer finds the game in your Steam
libraries, installs the BepInEx mod loader next to the executable and offers
every plugin published by the SoulstoneAddons organization.

Examples:
  soulstone-installer                       # Interactive installation
  soulstone-installer --yes --no-pause      # Install everything unattended
  soulstone-installer --skip-plugins        # Only install BepInEx
  soulstone-installer games                 # List detected Steam games
  soulstone-installer plugins               # List available plugins
  soulstone-installer config save           # Remember flags for later runs`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, streams, flags)
		},
	}

	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.ErrOut)

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "Config file path (default is ./"+config.DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().StringVar(&flags.SteamPath, "steam-path", "", "Steam installation directory (detected when empty)")
	rootCmd.PersistentFlags().StringVar(&flags.GameID, "game-id", "", "Steam app id of the game")
	rootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging on stderr")
	rootCmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Install every plugin without asking")
	rootCmd.Flags().BoolVar(&flags.SkipPlugins, "skip-plugins", false, "Only install BepInEx")
	rootCmd.Flags().BoolVar(&flags.NoPause, "no-pause", false, "Exit without waiting for a key press")

	rootCmd.AddCommand(NewGamesCommand(streams, flags))
	rootCmd.AddCommand(NewPluginsCommand(streams, flags))
	rootCmd.AddCommand(NewConfigCommand(streams, flags))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// resolveConfig loads the configuration and applies explicitly set flags
// on top of it
func resolveConfig(cmd *cobra.Command, flags *RootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("steam-path") {
		cfg.SteamPath = flags.SteamPath
	}
	if cmd.Flags().Changed("game-id") {
		cfg.GameID = flags.GameID
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = flags.Debug
	}

	return cfg, nil
}

// newContainer resolves the configuration and wires the application
func newContainer(cmd *cobra.Command, streams IOStreams, flags *RootFlags, reporter ports.Reporter, confirmer ports.Confirmer, opts services.InstallationOptions) (*di.Container, error) {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	return di.NewContainer(cfg, di.UI{Reporter: reporter, Confirmer: confirmer, LogOutput: streams.ErrOut}, opts)
}

// runInstall performs the interactive installation
func runInstall(cmd *cobra.Command, streams IOStreams, flags *RootFlags) error {
	console := NewConsole(streams.Out)
	console.Banner(Version)
	defer console.RestoreCursor()

	var confirmer ports.Confirmer = NewLineConfirmer(streams.In, streams.Out)
	if flags.Yes {
		confirmer = NewAutoConfirmer(streams.Out)
	}

	container, err := newContainer(cmd, streams, flags, console, confirmer, services.InstallationOptions{SkipPlugins: flags.SkipPlugins})
	if err != nil {
		console.Failure(err.Error())
		pause(streams, flags)
		return err
	}

	_, err = container.Installation.Run(cmd.Context())
	if err != nil {
		// Rate limiting ends the process right away
		if domain.IsRateLimited(err) {
			return err
		}
		pause(streams, flags)
		return err
	}

	console.Info("Enjoy!")
	pause(streams, flags)
	return nil
}

func pause(streams IOStreams, flags *RootFlags) {
	if flags.NoPause || !isInteractive(streams.In) {
		return
	}
	// A failed pause only means the window closes early
	_ = waitForKey(streams.In, streams.Out)
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context, streams IOStreams) int {
	rootCmd := NewRootCommand(streams)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(streams.ErrOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soulstoneaddons/bepinex-installer/internal/application/services"
	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
)

// NewPluginsCommand creates the plugins command
func NewPluginsCommand(streams IOStreams, rootFlags *RootFlags) *cobra.Command {
	var showAsset bool

	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List the plugins available for installation",
		Long: `List the public repositories of the plugin organization that carry the
plugin topic. Nothing is downloaded.

Examples:
  soulstone-installer plugins
  soulstone-installer plugins --assets   # Also resolve each latest release asset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlugins(cmd, streams, rootFlags, showAsset)
		},
	}

	cmd.Flags().BoolVar(&showAsset, "assets", false, "Show the asset each plugin would install")

	return cmd
}

func runPlugins(cmd *cobra.Command, streams IOStreams, rootFlags *RootFlags, showAsset bool) error {
	console := NewConsole(streams.Out)
	container, err := newContainer(cmd, streams, rootFlags, console, NewAutoConfirmer(nil), services.InstallationOptions{})
	if err != nil {
		return err
	}

	console.Step("Fetching plugin list...")
	plugins, err := container.Catalog.ListPlugins(cmd.Context())
	if err != nil {
		if domain.IsRateLimited(err) {
			console.Failure("Rate limit exceeded, please wait a few minutes and try again.")
		}
		return err
	}

	if len(plugins) == 0 {
		console.Info("No plugins available")
		return nil
	}

	for _, plugin := range plugins {
		console.Success(plugin.Name)
		if plugin.Description != "" {
			console.Info("  " + plugin.Description)
		}
		console.Step("  " + plugin.RepositoryURL)

		if !showAsset {
			continue
		}
		asset, err := container.Catalog.LatestAsset(cmd.Context(), plugin)
		if err != nil {
			console.Warn(fmt.Sprintf("  no installable asset: %v", err))
			continue
		}
		console.Info("  asset: " + asset.Name)
	}
	console.Step(fmt.Sprintf("%d plugins available", len(plugins)))
	return nil
}

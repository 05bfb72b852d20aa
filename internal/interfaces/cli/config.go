package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soulstoneaddons/bepinex-installer/internal/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand(streams IOStreams, rootFlags *RootFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show and save installer settings",
		Long: `Show and save the settings the installer runs with.

Settings come from, lowest precedence first: built-in defaults, a config
file, a .env file, SSI_* environment variables and command-line flags.`,
	}

	configCmd.AddCommand(NewConfigShowCommand(streams, rootFlags))
	configCmd.AddCommand(NewConfigPathCommand(streams, rootFlags))
	configCmd.AddCommand(NewConfigSaveCommand(streams, rootFlags))

	return configCmd
}

// NewConfigShowCommand creates the show subcommand
func NewConfigShowCommand(streams IOStreams, rootFlags *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, rootFlags)
			if err != nil {
				return err
			}

			masked := *cfg
			masked.GitHubToken = maskToken(cfg.GitHubToken)
			data, err := yaml.Marshal(&masked)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprint(streams.Out, string(data))
			return nil
		},
	}
}

// NewConfigPathCommand creates the path subcommand
func NewConfigPathCommand(streams IOStreams, rootFlags *RootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show which configuration file is used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootFlags.ConfigPath
			if path == "" {
				path, _ = config.DiscoverConfigFile()
			}
			if path == "" {
				path = "(none, using defaults)"
			}
			fmt.Fprintf(streams.Out, "Configuration file: %s\n", path)

			if userPath, err := config.UserConfigPath(); err == nil {
				fmt.Fprintf(streams.Out, "User configuration: %s\n", userPath)
			}
			return nil
		},
	}
}

// NewConfigSaveCommand creates the save subcommand
func NewConfigSaveCommand(streams IOStreams, rootFlags *RootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the resolved configuration to the user config file",
		Long: `Write the resolved configuration, flags included, to a config file so
later runs pick it up without flags.

Examples:
  soulstone-installer config save --steam-path "D:\Steam"
  soulstone-installer config save --output ./soulstone-installer.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, rootFlags)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			storage := config.NewStorageWithPath(output)
			if output == "" {
				if storage, err = config.NewStorage(); err != nil {
					return err
				}
			}
			if err := storage.Save(cfg); err != nil {
				return err
			}

			NewConsole(streams.Out).Success(fmt.Sprintf("Configuration saved to %s", storage.Path()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default is the user config file)")

	return cmd
}

// maskToken hides all but the edges of a token
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

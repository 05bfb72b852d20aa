package cli

import (
	"fmt"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/soulstoneaddons/bepinex-installer/internal/application/services"
	"github.com/soulstoneaddons/bepinex-installer/internal/core/domain"
)

// gameReport is what `games --dump` prints for each game
type gameReport struct {
	Game     domain.SteamGame
	State    *domain.AppState
	StateErr string
	Target   bool
}

// NewGamesCommand creates the games command
func NewGamesCommand(streams IOStreams, rootFlags *RootFlags) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List the games installed in every Steam library",
		Long: `List every game found in the Steam libraries, marking the one the
installer targets.

Examples:
  soulstone-installer games
  soulstone-installer games --dump                 # Include manifest details
  soulstone-installer games --steam-path D:\Steam`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGames(cmd, streams, rootFlags, dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Dump games with their manifest state")

	return cmd
}

func runGames(cmd *cobra.Command, streams IOStreams, rootFlags *RootFlags, dump bool) error {
	console := NewConsole(streams.Out)
	container, err := newContainer(cmd, streams, rootFlags, console, NewAutoConfirmer(nil), services.InstallationOptions{})
	if err != nil {
		return err
	}

	steamPath, err := container.Locator.SteamPath()
	if err != nil {
		return err
	}
	games, err := container.Locator.ListGames(steamPath)
	if err != nil {
		return err
	}

	if dump {
		reports := make([]gameReport, 0, len(games))
		for _, game := range games {
			report := gameReport{Game: game, Target: game.ID == container.Config.GameID}
			if state, err := container.Locator.ReadAppState(game); err != nil {
				report.StateErr = err.Error()
			} else {
				report.State = &state
			}
			reports = append(reports, report)
		}
		fmt.Fprintln(streams.Out, litter.Sdump(reports))
		return nil
	}

	console.Step(fmt.Sprintf("Steam: %s", steamPath))
	for _, game := range games {
		line := fmt.Sprintf("%-10s %-40s %s", game.ID, game.Name, game.Path)
		if game.ID == container.Config.GameID {
			console.Success(line)
		} else {
			console.Info(line)
		}
	}
	console.Step(fmt.Sprintf("%d Games found!", len(games)))
	return nil
}

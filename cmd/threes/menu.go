package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-threes/internal/platform/tui"
	"github.com/vovakirdan/tui-threes/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the leaderboard.
Leaving a game returns to the menu.

Examples:
  threes menu
  threes menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.close()
	e.openStore()

	cfg := runtimeConfig()
	opts := tui.Options{Logger: e.logger, TopN: e.cfg.Scores.TopN}

	for {
		menuResult, err := tui.RunMenu(e.store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(e.store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Each game gets a fresh seed unless one was pinned.
		run := cfg
		run.Seed = seedOrNow(flagSeed)
		e.logger.Info("playing", "game", menuResult.GameID)
		if err := tui.Run(game, e.board(menuResult.GameID), run, opts); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}

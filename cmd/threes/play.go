package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-threes/internal/platform/tui"
	"github.com/vovakirdan/tui-threes/internal/registry"
	"github.com/vovakirdan/tui-threes/internal/transport/spectate"
)

var flagSpectate string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant, or the --preset one.

Controls:
  Arrows/WASD/HJKL  - Push
  P                 - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Screenshot to ~/.threes/screenshots
  Esc               - Leave
  Q/Ctrl+C          - Quit

When the game ends you can enter a name for the leaderboard.

With --spectate, every move is streamed as JSON to WebSocket clients
connected to ws://<addr>/watch.

Examples:
  threes play
  threes play mini
  threes play threes_large --seed 42
  threes play --spectate :8090`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a move stream for spectators on this address")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID, err := resolveVariant(args)
	if err != nil {
		return err
	}

	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.close()
	e.openStore()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	opts := tui.Options{Logger: e.logger, TopN: e.cfg.Scores.TopN}
	if flagSpectate != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		hub := spectate.NewHub(e.logger.WithPrefix("spectate"))
		go func() {
			if err := hub.Serve(ctx, flagSpectate); err != nil {
				e.logger.Error("spectator server stopped", "err", err)
			}
		}()
		opts.Observer = hub.Observer()
	}

	e.logger.Info("playing", "game", gameID)
	if err := tui.Run(game, e.board(gameID), runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-threes/internal/registry"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

var (
	flagClearScores bool
	flagScoreLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the leaderboard",
	Long: `Display the best scores and play statistics of a variant.

Examples:
  threes scores
  threes scores mini --limit 20
  threes scores large --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every score of the variant")
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 0, "Rows to show (default: scores.top_n from the rules)")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID, err := resolveVariant(args)
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	e.store = store

	out := cmd.OutOrStdout()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		e.logger.Info("scores cleared", "game", gameID)
		fmt.Fprintf(out, "Cleared scores for %s.\n", game.Title())
		return nil
	}

	limit := flagScoreLimit
	if limit <= 0 {
		limit = e.cfg.Scores.TopN
	}
	scores, err := storage.NewLeaderboard(store, gameID, e.cfg.Scores.MaxNameLen).List(limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'threes play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-8s  %-8s  %-5s  %s\n", "Rank", "Name", "Score", "Top tile", "Moves", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-8s  %-8s  %-5s  %s\n", "----", "----", "-----", "--------", "-----", "----")
	for i, s := range scores {
		fmt.Fprintf(out, "  %-4d  %-16s  %-8d  %-8d  %-5d  %s\n",
			i+1, s.Name, s.Score, s.MaxTile, s.Moves, s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Games: %d  Best: %d  Average: %.0f  Best tile: %d  Total moves: %d\n",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestTile, stats.TotalMoves)
	return nil
}

// threes is the Threes sliding-tile puzzle for the terminal.
//
// Usage:
//
//	threes list               - List board variants
//	threes play [variant]     - Play a variant
//	threes menu               - Pick a variant interactively
//	threes scores [variant]   - Show the leaderboard
//	threes serve              - Start the SSH server for remote play
//	threes sim [variant]      - Play a seeded random game headlessly
//
// Global flags:
//
//	--seed <value>     - RNG seed for reproducible sessions
//	--db <path>        - Scores database (default: ~/.threes/scores.db)
//	--config <path>    - Rules YAML
//	--preset <name>    - Default variant: classic, mini, large
//	--fps <rate>       - Tick rate (default: 30)
//	--log-level <lvl>  - debug, info, warn, error
//	--log-file <path>  - Log file for interactive commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the variants.
	_ "github.com/vovakirdan/tui-threes/internal/games/threes"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "threes",
	Short: "Threes - slide, merge and stack tiles in your terminal",
	Long: `Threes is a sliding-tile puzzle. Every push moves tiles one cell;
1 and 2 merge into 3, equal tiles of 3 and above merge into their double.
A new tile enters from the edge opposite the push. The game ends when no
push can move anything.

Available commands:
  list     - Show the board variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  sim      - Headless random game

Examples:
  threes play
  threes play mini --seed 42
  threes menu
  threes serve --ssh :2222
  threes sim large --seed 7`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.threes/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to a custom rules YAML")
	pf.StringVar(&flagPreset, "preset", "", "Default variant: classic, mini or large")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file for interactive commands (default ~/.threes/threes.log)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

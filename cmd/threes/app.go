package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-threes/internal/config"
	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/games/threes"
	"github.com/vovakirdan/tui-threes/internal/logging"
	"github.com/vovakirdan/tui-threes/internal/platform/tui"
	"github.com/vovakirdan/tui-threes/internal/registry"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

// env is what every command needs: rules, a logger and the score store.
type env struct {
	cfg      config.ThreesConfig
	logger   *log.Logger
	closeLog func() error
	store    *storage.Store
}

// setup loads the rules and builds a logger. Interactive commands log to a
// file because the alt screen owns stdout.
func setup(interactive bool) (*env, error) {
	e := &env{closeLog: func() error { return nil }}

	opts := logging.Options{Level: flagLogLevel, Prefix: "threes"}
	var err error
	if interactive {
		e.logger, e.closeLog, err = logging.NewFile(logFilePath(), opts)
	} else {
		opts.Timestamps = true
		e.logger, err = logging.New(os.Stderr, opts)
	}
	if err != nil {
		return nil, err
	}

	cfg, src, err := config.LoadThreesFrom(flagConfig)
	if err != nil {
		e.closeLog()
		return nil, err
	}
	e.cfg = cfg
	threes.SetRules(cfg.Rules())
	e.logger.Debug("rules loaded", "source", src, "bag", cfg.Bag.Values, "bonus", cfg.Bag.Bonus.Enabled)
	return e, nil
}

// openStore opens the score database. A failure is logged and the game
// runs without a leaderboard.
func (e *env) openStore() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		e.logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return
	}
	e.store = store
}

func (e *env) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("closing scores database", "err", err)
		}
	}
	e.closeLog()
}

// board returns the leaderboard of gameID, or nil without a store.
func (e *env) board(gameID string) tui.ScoreBoard {
	if e.store == nil {
		return nil
	}
	return storage.NewLeaderboard(e.store, gameID, e.cfg.Scores.MaxNameLen)
}

func logFilePath() string {
	if flagLogFile != "" {
		return flagLogFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".threes", "threes.log")
}

// runtimeConfig sizes the session to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   os.Getenv("USER"),
	}
}

// resolveVariant maps an argument to a registry ID. Preset names are
// accepted as shorthands; no argument falls back to --preset.
func resolveVariant(args []string) (string, error) {
	name := flagPreset
	if len(args) > 0 {
		name = args[0]
	}
	if registry.Exists(name) {
		return name, nil
	}
	p, err := config.ParsePreset(name)
	if err != nil {
		return "", fmt.Errorf("unknown variant %q; run 'threes list' to see variants", name)
	}
	return p.GameID(), nil
}

func seedOrNow(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

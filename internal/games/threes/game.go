package threes

import (
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/registry"
)

// Variant IDs in the game registry.
const (
	IDClassic = "threes"
	IDMini    = "threes_mini"
	IDLarge   = "threes_large"
)

// Observer receives every accepted move of a game. It must not block.
type Observer func(gameID string, out MoveOutcome)

// Game adapts an Engine to the frame-driven registry.Game interface.
type Game struct {
	id    string
	title string
	size  int

	eng      *Engine
	tick     uint64
	paused   bool
	tooSmall bool
	last     MoveOutcome

	screenW int
	screenH int

	observer Observer
}

var (
	rulesMu sync.RWMutex
	rules   = DefaultConfig(4)
)

// SetRules replaces the rules used by every session dealt afterwards.
// cfg.GridSize sizes the classic variant only; mini and large keep theirs.
func SetRules(cfg Config) {
	rulesMu.Lock()
	defer rulesMu.Unlock()
	rules = cfg
}

func rulesFor(id string, size int) Config {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	cfg := rules
	if id != IDClassic || cfg.GridSize < 2 {
		cfg.GridSize = size
	}
	return cfg
}

// New creates a game on a size×size grid.
func New(id, title string, size int) *Game {
	return &Game{id: id, title: title, size: size}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New(IDClassic, "Threes", 4)
	})
	registry.Register(IDMini, func() registry.Game {
		return New(IDMini, "Threes (Mini 3x3)", 3)
	})
	registry.Register(IDLarge, func() registry.Game {
		return New(IDLarge, "Threes (Large 5x5)", 5)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	return "Slide tiles, pair 1 with 2, match everything else"
}

// SetObserver installs a callback fired after every accepted move.
func (g *Game) SetObserver(o Observer) {
	g.observer = o
}

// Reset deals a new session seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	rc := rulesFor(g.id, g.size)
	g.size = rc.GridSize
	g.eng = NewEngine(rc, rng)
	g.tick = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.last = MoveOutcome{}
	g.checkScreenSize()
}

// Resize updates the screen dimensions without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	w, h := boardDims(g.size)
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+2
}

// Step advances the game by one tick. At most one move is applied per tick;
// the first move key of the frame wins.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.Over() {
		g.paused = !g.paused
	}
	if g.paused || g.Over() {
		return core.StepResult{State: g.State()}
	}

	action, ok := in.FirstMove()
	if !ok {
		return core.StepResult{State: g.State()}
	}

	out := g.eng.ApplyMove(directionFor(action))
	if out.Accepted {
		g.last = out
		if g.observer != nil {
			g.observer(g.id, out)
		}
	}
	return core.StepResult{State: g.State(), Moved: out.Accepted}
}

func directionFor(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	default:
		return DirRight
	}
}

// Over reports whether the session has ended.
func (g *Game) Over() bool {
	return g.eng != nil && g.eng.State() == StateGameOver
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.eng
}

// LastOutcome returns the most recent accepted move, zero before the first.
func (g *Game) LastOutcome() MoveOutcome {
	return g.last
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	s := g.eng.Session()
	return core.GameState{
		Score:    s.Score,
		GameOver: s.GameOver,
		Paused:   g.paused || g.tooSmall,
		Moves:    s.Moves,
		Highest:  s.Highest,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Push | P: Pause | R: Restart | Q: Quit"
}

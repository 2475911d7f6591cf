package threes

import (
	"fmt"
	"math/rand"
	"slices"
)

// Config holds the rules of a session.
type Config struct {
	GridSize        int
	FillNumerator   int // Initial tiles = GridSize² · FillNumerator / FillDenominator
	FillDenominator int
	BagValues       []int
	Bonus           BonusRule
}

// DefaultConfig returns the classic rules for the given grid size.
func DefaultConfig(size int) Config {
	return Config{
		GridSize:        size,
		FillNumerator:   9,
		FillDenominator: 16,
		BagValues:       slices.Clone(DefaultBagValues),
		Bonus:           DefaultBonusRule,
	}
}

// InitialTiles returns how many tiles a fresh board starts with.
func (c Config) InitialTiles() int {
	if c.FillDenominator <= 0 {
		return 0
	}
	n := c.GridSize * c.GridSize * c.FillNumerator / c.FillDenominator
	// Leave at least one free cell so the first move can spawn.
	return min(n, c.GridSize*c.GridSize-1)
}

// State is the session lifecycle state.
type State int

const (
	StateReady State = iota
	StateInProgress
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateInProgress:
		return "in_progress"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MoveOutcome is the result of one ApplyMove call.
type MoveOutcome struct {
	Accepted  bool       `json:"accepted"`
	Direction Direction  `json:"direction"`
	Board     []Tile     `json:"board"`
	Spawned   *Spawn     `json:"spawned,omitempty"`
	Moves     []TileMove `json:"moves,omitempty"`
	Merges    []Merge    `json:"merges,omitempty"`
	Next      int        `json:"next"`
	MoveCount int        `json:"move_count"`
	Highest   int        `json:"highest"`
	GameOver  bool       `json:"game_over"`
	Score     int        `json:"score"` // Set only when GameOver
}

// Session is a read-only view of the engine's session state.
type Session struct {
	GridSize int
	State    State
	Tiles    []Tile
	Next     int
	Moves    int
	Highest  int
	GameOver bool
	Score    int
}

// Engine runs one Threes session. It owns the board, the bag and the
// random generator. It is not safe for concurrent use; callers apply one
// move at a time.
type Engine struct {
	cfg     Config
	rng     *rand.Rand
	spawner *Spawner

	state   State
	board   *Board
	bag     *Bag
	next    int
	moves   int
	highest int
	score   int
}

// NewEngine creates an engine and deals a fresh session.
func NewEngine(cfg Config, rng *rand.Rand) *Engine {
	if cfg.GridSize < 2 {
		panic(fmt.Sprintf("threes: grid size %d too small", cfg.GridSize))
	}
	if rng == nil {
		panic("threes: nil random source")
	}
	e := &Engine{
		cfg: cfg,
		rng: rng,
	}
	e.Restart()
	return e
}

// Restart discards the current session and deals a new one in StateReady:
// a reshuffled bag, a freshly filled board and zeroed counters.
func (e *Engine) Restart() {
	e.board = NewBoard(e.cfg.GridSize)
	e.bag = NewBag(e.rng, e.cfg.BagValues, e.cfg.Bonus)
	e.spawner = NewSpawner(e.rng, 1)

	for range e.cfg.InitialTiles() {
		e.spawner.PlaceRandom(e.board, e.bag.Draw(0))
	}

	e.highest = e.board.MaxValue()
	e.next = e.bag.Draw(e.highest)
	e.moves = 0
	e.score = 0
	e.state = StateReady
}

// ApplyMove pushes the board toward dir. A move is rejected without any
// state change when the session is over or no tile can move.
func (e *Engine) ApplyMove(dir Direction) MoveOutcome {
	if !dir.Valid() {
		panic(fmt.Errorf("threes: apply move: %w", ErrInvalidDirection))
	}
	if e.state == StateGameOver {
		return e.outcome(dir, false)
	}

	res := ResolveMove(e.board, dir)
	if !res.Moved {
		return e.outcome(dir, false)
	}

	value := e.next
	e.next = e.bag.Draw(e.highest)
	spawn := e.spawner.Place(res.Board, dir, value)
	e.board = res.Board
	e.highest = max(e.highest, e.board.MaxValue())
	e.moves++
	e.state = StateInProgress

	// Merge only after placement so only pairs formed by this slide combine.
	merges := ResolveMerges(e.board)
	e.highest = max(e.highest, e.board.MaxValue())

	if IsTerminal(e.board) {
		e.score = Score(e.board.AllTiles())
		e.state = StateGameOver
	}

	out := e.outcome(dir, true)
	out.Spawned = &spawn
	out.Moves = res.Moves
	out.Merges = merges
	return out
}

// LegalMoves returns the directions that would be accepted.
func (e *Engine) LegalMoves() []Direction {
	if e.state == StateGameOver {
		return nil
	}
	var dirs []Direction
	for _, d := range Directions {
		if CanMove(e.board, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Config returns the rules the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// Session returns a snapshot of the session state.
func (e *Engine) Session() Session {
	return Session{
		GridSize: e.cfg.GridSize,
		State:    e.state,
		Tiles:    e.board.AllTiles(),
		Next:     e.next,
		Moves:    e.moves,
		Highest:  e.highest,
		GameOver: e.state == StateGameOver,
		Score:    e.score,
	}
}

func (e *Engine) outcome(dir Direction, accepted bool) MoveOutcome {
	return MoveOutcome{
		Accepted:  accepted,
		Direction: dir,
		Board:     e.board.AllTiles(),
		Next:      e.next,
		MoveCount: e.moves,
		Highest:   e.highest,
		GameOver:  e.state == StateGameOver,
		Score:     e.score,
	}
}

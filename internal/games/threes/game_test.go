package threes

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     seed,
	}
}

func frameWith(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func actionFor(d Direction) core.Action {
	return map[Direction]core.Action{
		DirUp:    core.ActionUp,
		DirDown:  core.ActionDown,
		DirLeft:  core.ActionLeft,
		DirRight: core.ActionRight,
	}[d]
}

func TestVariantsRegistered(t *testing.T) {
	tests := []struct {
		id   string
		size int
	}{
		{IDClassic, 4},
		{IDMini, 3},
		{IDLarge, 5},
	}
	for _, tt := range tests {
		g, err := registry.Create(tt.id)
		if err != nil {
			t.Fatalf("Create(%q): %v", tt.id, err)
		}
		if g.ID() != tt.id {
			t.Errorf("ID() = %q, want %q", g.ID(), tt.id)
		}
		g.Reset(testConfig(1))
		snap := g.(*Game).Snapshot()
		if snap.GridSize != tt.size {
			t.Errorf("%s grid = %d, want %d", tt.id, snap.GridSize, tt.size)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := New(IDClassic, "Threes", 4)
		g.Reset(testConfig(12345))
		moves := []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight}
		for i := range 300 {
			g.Step(frameWith(moves[i%len(moves)]))
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different sessions:\n%+v\n%+v", a, b)
	}
}

func TestGameOneMovePerTick(t *testing.T) {
	g := New(IDClassic, "Threes", 4)
	g.Reset(testConfig(3))

	legal := g.Engine().LegalMoves()
	if len(legal) == 0 {
		t.Fatal("fresh session has no legal move")
	}
	first := legal[0]

	frame := frameWith(actionFor(first))
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		frame.Set(a)
	}

	res := g.Step(frame)
	if !res.Moved {
		t.Fatal("legal move should be accepted")
	}
	if res.State.Moves != 1 {
		t.Errorf("Moves = %d, want 1", res.State.Moves)
	}
	if got := g.LastOutcome().Direction; got != first {
		t.Errorf("applied %v, want the first move of the frame (%v)", got, first)
	}
}

func TestGamePause(t *testing.T) {
	g := New(IDClassic, "Threes", 4)
	g.Reset(testConfig(7))

	g.Step(frameWith(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	before := g.Snapshot()
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		g.Step(frameWith(a))
	}
	after := g.Snapshot()
	if after.Moves != before.Moves || !reflect.DeepEqual(after.Tiles, before.Tiles) {
		t.Error("moves must be ignored while paused")
	}

	g.Step(frameWith(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameObserverSeesAcceptedMoves(t *testing.T) {
	g := New(IDMini, "Threes (Mini 3x3)", 3)
	g.Reset(testConfig(99))

	var seen []MoveOutcome
	g.SetObserver(func(id string, out MoveOutcome) {
		if id != IDMini {
			t.Errorf("observer got id %q", id)
		}
		seen = append(seen, out)
	})

	accepted := 0
	moves := []core.Action{core.ActionUp, core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
	for i := 0; !g.Over() && i < 10000; i++ {
		if g.Step(frameWith(moves[i%len(moves)])).Moved {
			accepted++
		}
	}

	if !g.Over() {
		t.Fatal("mini session should end")
	}
	if len(seen) != accepted {
		t.Errorf("observer saw %d outcomes, want %d", len(seen), accepted)
	}
	last := seen[len(seen)-1]
	if !last.GameOver || last.Score != g.State().Score {
		t.Errorf("final outcome = %+v, state = %+v", last, g.State())
	}
	if g.State().Score != Score(g.Snapshot().Tiles) {
		t.Error("final score should equal the score of the final board")
	}
}

func TestGameTooSmall(t *testing.T) {
	g := New(IDLarge, "Threes (Large 5x5)", 5)
	cfg := testConfig(1)
	cfg.ScreenW = 20
	cfg.ScreenH = 8
	g.Reset(cfg)

	if !g.State().Paused {
		t.Error("undersized screen should pause the game")
	}

	s := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(s)
	if !strings.Contains(s.String(), "too small") {
		t.Errorf("expected size warning, got:\n%s", s.String())
	}
}

func TestGameResizeKeepsSession(t *testing.T) {
	g := New(IDClassic, "Threes", 4)
	g.Reset(testConfig(5))
	dir := g.Engine().LegalMoves()[0]
	g.Step(frameWith(actionFor(dir)))
	before := g.Snapshot()

	g.Resize(20, 8)
	if !g.State().Paused {
		t.Error("shrinking below the board should pause")
	}
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("growing back should resume")
	}

	after := g.Snapshot()
	if !reflect.DeepEqual(before.Tiles, after.Tiles) || before.Moves != after.Moves {
		t.Error("resize changed the session")
	}
}

func TestGameRender(t *testing.T) {
	g := New(IDClassic, "Threes", 4)
	cfg := testConfig(5)
	g.Reset(cfg)

	s := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(s)
	out := s.String()

	for _, want := range []string{"Threes", "Next:", "Moves: 0", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	// Every tile is drawn in its palette color.
	boardW, _ := boardDims(4)
	boardX := (cfg.ScreenW - boardW) / 2
	for _, tile := range g.Snapshot().Tiles {
		cx := boardX + tile.X*cellWidth + 1
		cy := hudHeight + 1 + tile.Y*cellHeight + 1
		if got := s.GetCell(cx, cy).Color; got != TileColor(tile.Value) {
			t.Errorf("tile %d at (%d,%d) color = %v, want %v", tile.Value, tile.X, tile.Y, got, TileColor(tile.Value))
		}
	}
}

func TestSetRules(t *testing.T) {
	defer SetRules(DefaultConfig(4))

	cfg := DefaultConfig(4)
	cfg.BagValues = []int{3}
	cfg.Bonus.Enabled = false
	SetRules(cfg)

	g := New(IDMini, "Threes (Mini 3x3)", 3)
	g.Reset(testConfig(1))
	snap := g.Snapshot()
	if snap.GridSize != 3 {
		t.Errorf("mini must keep its own grid size, got %d", snap.GridSize)
	}
	for _, tile := range snap.Tiles {
		if tile.Value != 3 {
			t.Errorf("tile value %d, want 3 from custom bag", tile.Value)
		}
	}
}

func TestClassicFollowsConfiguredSize(t *testing.T) {
	defer SetRules(DefaultConfig(4))
	SetRules(DefaultConfig(6))

	tests := []struct {
		id   string
		size int
	}{
		{IDClassic, 6},
		{IDMini, 3},
		{IDLarge, 5},
	}
	for _, tt := range tests {
		g, err := registry.Create(tt.id)
		if err != nil {
			t.Fatal(err)
		}
		cfg := testConfig(2)
		cfg.ScreenH = 40
		g.Reset(cfg)
		snap := g.(*Game).Snapshot()
		if snap.GridSize != tt.size {
			t.Errorf("%s grid = %d, want %d", tt.id, snap.GridSize, tt.size)
		}
		if len(snap.Grid) != tt.size {
			t.Errorf("%s board rows = %d, want %d", tt.id, len(snap.Grid), tt.size)
		}
	}
}

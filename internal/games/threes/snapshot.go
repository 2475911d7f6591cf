package threes

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	GameID   string
	GridSize int
	State    State
	Grid     [][]int
	Tiles    []Tile
	Next     int
	Moves    int
	Highest  int
	Score    int
	Paused   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.eng == nil {
		return Snapshot{GameID: g.id, GridSize: g.size}
	}
	s := g.eng.Session()
	return Snapshot{
		Tick:     g.tick,
		GameID:   g.id,
		GridSize: s.GridSize,
		State:    s.State,
		Grid:     g.eng.board.Grid(),
		Tiles:    s.Tiles,
		Next:     s.Next,
		Moves:    s.Moves,
		Highest:  s.Highest,
		Score:    s.Score,
		Paused:   g.paused,
	}
}

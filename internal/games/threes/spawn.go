package threes

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoLegalPlacement marks a spawn onto a board with no free cell.
var ErrNoLegalPlacement = errors.New("no free cell for spawn")

// Spawn is a newly placed tile. Transition is the push direction that
// produced it; renderers use it to slide the tile in. It carries no
// simulation meaning and is never stored on the board.
type Spawn struct {
	Tile
	Transition Direction `json:"transition"`
}

// Spawner places new tiles and hands out fresh tile ids.
type Spawner struct {
	rng    *rand.Rand
	nextID int
}

// NewSpawner creates a spawner whose first id is firstID.
func NewSpawner(rng *rand.Rand, firstID int) *Spawner {
	return &Spawner{rng: rng, nextID: firstID}
}

// NextID returns a fresh tile id.
func (s *Spawner) NextID() int {
	id := s.nextID
	s.nextID++
	return id
}

// Place puts a tile of the given value on the edge opposite dir, uniformly
// among its free cells. A full edge falls back to any free cell.
func (s *Spawner) Place(b *Board, dir Direction, value int) Spawn {
	if !dir.Valid() {
		panic(fmt.Errorf("threes: spawn: %w", ErrInvalidDirection))
	}
	cells := freeEdgeCells(b, dir)
	if len(cells) == 0 {
		cells = b.FreeCells()
	}
	t := s.placeIn(b, cells, value)
	return Spawn{Tile: t, Transition: dir}
}

// PlaceRandom puts a tile of the given value on any free cell.
func (s *Spawner) PlaceRandom(b *Board, value int) Tile {
	return s.placeIn(b, b.FreeCells(), value)
}

func (s *Spawner) placeIn(b *Board, cells []Cell, value int) Tile {
	if len(cells) == 0 {
		panic(fmt.Errorf("threes: place %d: %w", value, ErrNoLegalPlacement))
	}
	c := cells[s.rng.Intn(len(cells))]
	t := Tile{ID: s.NextID(), X: c.X, Y: c.Y, Value: value}
	b.Place(t)
	return t
}

// SpawnEdge returns the cells of the edge opposite dir.
func SpawnEdge(size int, dir Direction) []Cell {
	cells := make([]Cell, 0, size)
	for i := range size {
		switch dir {
		case DirUp:
			cells = append(cells, Cell{X: i, Y: size - 1})
		case DirDown:
			cells = append(cells, Cell{X: i, Y: 0})
		case DirLeft:
			cells = append(cells, Cell{X: size - 1, Y: i})
		case DirRight:
			cells = append(cells, Cell{X: 0, Y: i})
		}
	}
	return cells
}

func freeEdgeCells(b *Board, dir Direction) []Cell {
	var free []Cell
	for _, c := range SpawnEdge(b.size, dir) {
		if !b.Occupied(c.X, c.Y) {
			free = append(free, c)
		}
	}
	return free
}

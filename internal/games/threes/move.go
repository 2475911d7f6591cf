package threes

import "fmt"

// TileMove records one tile stepping one cell.
type TileMove struct {
	ID      int  `json:"id"`
	FromX   int  `json:"from_x"`
	FromY   int  `json:"from_y"`
	ToX     int  `json:"to_x"`
	ToY     int  `json:"to_y"`
	Merging bool `json:"merging"` // Destination held a compatible tile
}

// MoveResult is the outcome of sliding a board one step.
type MoveResult struct {
	Moved bool
	Board *Board
	Moves []TileMove
}

// ResolveMove slides every tile at most one cell toward dir and returns the
// new board. The input board is not modified.
//
// Cells nearest the destination edge are visited first so tiles never
// overtake each other. A tile may step into an empty cell or onto a single
// compatible tile; the merge itself is left to ResolveMerges.
func ResolveMove(b *Board, dir Direction) MoveResult {
	if !dir.Valid() {
		panic(fmt.Errorf("threes: resolve move: %w", ErrInvalidDirection))
	}
	dx, dy := dir.Delta()
	next := b.Clone()
	var moves []TileMove

	for _, c := range scanOrder(b.size, dir) {
		nx, ny := c.X+dx, c.Y+dy
		if !next.InBounds(nx, ny) {
			continue
		}

		here := next.TilesAt(c.X, c.Y)
		if len(here) != 1 {
			continue
		}
		t := here[0]

		dest := next.TilesAt(nx, ny)
		switch {
		case len(dest) == 0:
		case len(dest) == 1 && Compatible(t.Value, dest[0].Value):
		default:
			continue
		}

		next.Move(t.ID, nx, ny)
		moves = append(moves, TileMove{
			ID:      t.ID,
			FromX:   c.X,
			FromY:   c.Y,
			ToX:     nx,
			ToY:     ny,
			Merging: len(dest) == 1,
		})
	}

	return MoveResult{
		Moved: len(moves) > 0,
		Board: next,
		Moves: moves,
	}
}

// CanMove reports whether pushing dir would move any tile.
func CanMove(b *Board, dir Direction) bool {
	return ResolveMove(b, dir).Moved
}

// scanOrder lists cells so the row or column furthest in the push
// direction comes first.
func scanOrder(size int, dir Direction) []Cell {
	cells := make([]Cell, 0, size*size)
	for i := range size {
		for j := range size {
			switch dir {
			case DirUp:
				cells = append(cells, Cell{X: j, Y: i})
			case DirDown:
				cells = append(cells, Cell{X: j, Y: size - 1 - i})
			case DirLeft:
				cells = append(cells, Cell{X: i, Y: j})
			case DirRight:
				cells = append(cells, Cell{X: size - 1 - i, Y: j})
			}
		}
	}
	return cells
}

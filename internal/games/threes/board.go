package threes

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Board holds the placed tiles of a size×size grid keyed by tile id.
// Every mutation is explicit; the caller controls ordering.
type Board struct {
	size  int
	tiles map[int]Tile
}

// NewBoard creates an empty board.
func NewBoard(size int) *Board {
	if size < 1 {
		panic(fmt.Sprintf("threes: board size %d", size))
	}
	return &Board{
		size:  size,
		tiles: make(map[int]Tile),
	}
}

// Size returns the grid dimension.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether (x, y) is a cell of the grid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// TileAt returns the tile at (x, y). When two tiles coincide mid-move the
// one with the lower id is returned.
func (b *Board) TileAt(x, y int) (Tile, bool) {
	var found Tile
	ok := false
	for _, t := range b.tiles {
		if t.X != x || t.Y != y {
			continue
		}
		if !ok || t.ID < found.ID {
			found = t
			ok = true
		}
	}
	return found, ok
}

// TilesAt returns every tile at (x, y) ordered by id.
func (b *Board) TilesAt(x, y int) []Tile {
	var out []Tile
	for _, t := range b.tiles {
		if t.X == x && t.Y == y {
			out = append(out, t)
		}
	}
	sortByID(out)
	return out
}

// Tile returns the tile with the given id.
func (b *Board) Tile(id int) (Tile, bool) {
	t, ok := b.tiles[id]
	return t, ok
}

// AllTiles returns a copy of every tile ordered by id.
func (b *Board) AllTiles() []Tile {
	out := make([]Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		out = append(out, t)
	}
	sortByID(out)
	return out
}

// Place adds a tile. Out-of-bounds positions, invalid values and duplicate
// ids are contract violations.
func (b *Board) Place(t Tile) {
	if !b.InBounds(t.X, t.Y) {
		panic(fmt.Sprintf("threes: place tile %d at (%d,%d) outside %dx%d board", t.ID, t.X, t.Y, b.size, b.size))
	}
	if !IsTileValue(t.Value) {
		panic(fmt.Errorf("threes: place tile %d: %w", t.ID, ErrInvalidValue))
	}
	if _, exists := b.tiles[t.ID]; exists {
		panic(fmt.Sprintf("threes: tile id %d already on board", t.ID))
	}
	b.tiles[t.ID] = t
}

// Remove deletes the tile with the given id. Unknown ids are ignored.
func (b *Board) Remove(id int) {
	delete(b.tiles, id)
}

// Move relocates a tile.
func (b *Board) Move(id, x, y int) {
	t, ok := b.tiles[id]
	if !ok {
		panic(fmt.Sprintf("threes: move unknown tile %d", id))
	}
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("threes: move tile %d to (%d,%d) outside board", id, x, y))
	}
	t.X, t.Y = x, y
	b.tiles[id] = t
}

// SetValue updates a tile's value.
func (b *Board) SetValue(id, value int) {
	t, ok := b.tiles[id]
	if !ok {
		panic(fmt.Sprintf("threes: set value of unknown tile %d", id))
	}
	if !IsTileValue(value) {
		panic(fmt.Errorf("threes: set tile %d: %w", id, ErrInvalidValue))
	}
	t.Value = value
	b.tiles[id] = t
}

// OccupiedCount returns the number of tiles on the board.
func (b *Board) OccupiedCount() int {
	return len(b.tiles)
}

// Full reports whether every cell holds a tile.
func (b *Board) Full() bool {
	return b.OccupiedCount() >= b.size*b.size
}

// Occupied reports whether any tile sits at (x, y).
func (b *Board) Occupied(x, y int) bool {
	_, ok := b.TileAt(x, y)
	return ok
}

// FreeCells returns the empty cells in row-major order.
func (b *Board) FreeCells() []Cell {
	taken := b.occupancy()
	var cells []Cell
	for y := range b.size {
		for x := range b.size {
			if !taken[y][x] {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// Sum returns the total of all tile values.
func (b *Board) Sum() int {
	total := 0
	for _, t := range b.tiles {
		total += t.Value
	}
	return total
}

// MaxValue returns the highest tile value, or 0 on an empty board.
func (b *Board) MaxValue() int {
	maxVal := 0
	for _, t := range b.tiles {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// Grid returns the values in [y][x] layout, 0 for empty cells.
// Coincident tiles report the lower id's value.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.size)
	for y := range grid {
		grid[y] = make([]int, b.size)
	}
	for _, t := range b.AllTiles() {
		if grid[t.Y][t.X] == 0 {
			grid[t.Y][t.X] = t.Value
		}
	}
	return grid
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	c := &Board{
		size:  b.size,
		tiles: make(map[int]Tile, len(b.tiles)),
	}
	for id, t := range b.tiles {
		c.tiles[id] = t
	}
	return c
}

// Equal reports structural equality: same size and the same ids at the same
// positions with the same values.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size || len(b.tiles) != len(other.tiles) {
		return false
	}
	for id, t := range b.tiles {
		if o, ok := other.tiles[id]; !ok || o != t {
			return false
		}
	}
	return true
}

// String renders the value grid, one row per line, "." for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	for y, row := range b.Grid() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x, v := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if v == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

// occupancy marks occupied cells in [y][x] layout.
func (b *Board) occupancy() [][]bool {
	taken := make([][]bool, b.size)
	for y := range taken {
		taken[y] = make([]bool, b.size)
	}
	for _, t := range b.tiles {
		taken[t.Y][t.X] = true
	}
	return taken
}

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

func sortByID(tiles []Tile) {
	slices.SortFunc(tiles, func(a, b Tile) int {
		return a.ID - b.ID
	})
}

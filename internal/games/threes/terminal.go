package threes

// IsTerminal reports whether the board is full and no right or down
// neighbour pair can merge. Each adjacency is checked once.
func IsTerminal(b *Board) bool {
	if !b.Full() {
		return false
	}
	grid := b.Grid()
	for y := range b.size {
		for x := range b.size {
			v := grid[y][x]
			if v == 0 {
				return false
			}
			if x+1 < b.size && Compatible(v, grid[y][x+1]) {
				return false
			}
			if y+1 < b.size && Compatible(v, grid[y+1][x]) {
				return false
			}
		}
	}
	return true
}

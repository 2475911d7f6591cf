package threes

// Score sums 3^Rank(value) over tiles.
func Score(tiles []Tile) int {
	total := 0
	for _, t := range tiles {
		total += pow3(Rank(t.Value))
	}
	return total
}

func pow3(n int) int {
	result := 1
	for range n {
		result *= 3
	}
	return result
}

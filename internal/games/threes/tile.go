// Package threes implements the Threes sliding tile puzzle: a pure grid
// simulation engine plus the game adapter that drives it from input frames.
package threes

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidValue marks a number that is not a tile value (1, 2 or 3·2^k).
var ErrInvalidValue = errors.New("invalid tile value")

// Tile is a single numbered piece on the board.
// ID is stable for the tile's lifetime and unique within a session.
type Tile struct {
	ID    int `json:"id"`
	X     int `json:"x"`
	Y     int `json:"y"`
	Value int `json:"value"`
}

// IsTileValue reports whether v can appear on a tile.
func IsTileValue(v int) bool {
	if v == 1 || v == 2 {
		return true
	}
	if v < 3 || v%3 != 0 {
		return false
	}
	q := uint(v / 3)
	return q&(q-1) == 0
}

// Compatible reports whether tiles of values a and b merge.
// 1 and 2 merge into 3; equal values above 2 merge into their sum.
func Compatible(a, b int) bool {
	if a+b == 3 && (a == 1 || a == 2) {
		return true
	}
	return a == b && a > 2
}

// Rank returns the position of v in the progression used for scoring:
// 1 and 2 are rank 0, 3 is rank 1 and every doubling adds one.
func Rank(v int) int {
	if !IsTileValue(v) {
		panic(fmt.Errorf("threes: rank of %d: %w", v, ErrInvalidValue))
	}
	if v < 3 {
		return 0
	}
	return 1 + bits.TrailingZeros(uint(v/3))
}

// ValueForRank is the inverse of Rank for ranks >= 1.
func ValueForRank(r int) int {
	if r < 1 {
		panic(fmt.Errorf("threes: value for rank %d: %w", r, ErrInvalidValue))
	}
	return 3 << (r - 1)
}

package threes

import (
	"errors"
	"fmt"
)

// ErrIncompatibleOverlap marks two tiles sharing a cell that cannot merge.
var ErrIncompatibleOverlap = errors.New("incompatible tiles share a cell")

// Merge records one tile absorbing another.
type Merge struct {
	SurvivorID int `json:"survivor_id"`
	DonorID    int `json:"donor_id"`
	X          int `json:"x"`
	Y          int `json:"y"`
	Value      int `json:"value"` // Survivor's value after the merge
}

// ResolveMerges combines every pair of tiles sharing a cell, in place.
// The lower id survives with the summed value; the other tile is removed.
func ResolveMerges(b *Board) []Merge {
	var merges []Merge
	for y := range b.size {
		for x := range b.size {
			here := b.TilesAt(x, y)
			switch {
			case len(here) < 2:
				continue
			case len(here) > 2:
				panic(fmt.Sprintf("threes: %d tiles share (%d,%d)", len(here), x, y))
			}

			survivor, donor := here[0], here[1]
			if !Compatible(survivor.Value, donor.Value) {
				panic(fmt.Errorf("threes: merge %d and %d at (%d,%d): %w",
					survivor.Value, donor.Value, x, y, ErrIncompatibleOverlap))
			}

			value := survivor.Value + donor.Value
			b.SetValue(survivor.ID, value)
			b.Remove(donor.ID)
			merges = append(merges, Merge{
				SurvivorID: survivor.ID,
				DonorID:    donor.ID,
				X:          x,
				Y:          y,
				Value:      value,
			})
		}
	}
	return merges
}

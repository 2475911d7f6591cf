package threes

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

// ErrBagUnderflow marks a draw from an empty bag. Refill on exhaustion makes it unreachable.
var ErrBagUnderflow = errors.New("tile bag underflow")

// DefaultBagValues is the canonical replenishment multiset.
var DefaultBagValues = []int{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3}

// BonusRule controls the bonus tile appended on refill once a high tile exists.
type BonusRule struct {
	Enabled   bool
	Threshold int // Highest value needed before bonuses appear
	MinExp    int // Lowest exponent e of a 3·2^e bonus
	RankGap   int // Highest exponent is Rank(highest) - RankGap
}

// DefaultBonusRule matches the classic game: from 48 upward, 3·2^e with e in [2, rank-3].
var DefaultBonusRule = BonusRule{
	Enabled:   true,
	Threshold: 48,
	MinExp:    2,
	RankGap:   3,
}

// BonusValue draws a bonus tile for the given highest value.
// The second result is false when no bonus applies.
func BonusValue(rng *rand.Rand, highest int, rule BonusRule) (int, bool) {
	if !rule.Enabled || highest < rule.Threshold || !IsTileValue(highest) {
		return 0, false
	}
	hi := Rank(highest) - rule.RankGap
	lo := rule.MinExp
	if hi < lo {
		return 0, false
	}
	exp := lo + rng.Intn(hi-lo+1)
	return 3 << exp, true
}

// Bag supplies upcoming tile values. It is never empty between draws.
type Bag struct {
	rng       *rand.Rand
	canonical []int
	bonus     BonusRule
	pending   []int
}

// NewBag creates a freshly shuffled bag.
func NewBag(rng *rand.Rand, values []int, bonus BonusRule) *Bag {
	if len(values) == 0 {
		panic("threes: empty bag multiset")
	}
	b := &Bag{
		rng:       rng,
		canonical: slices.Clone(values),
		bonus:     bonus,
	}
	b.refill(0)
	return b
}

// Draw removes and returns the next value. When that empties the bag it is
// refilled at once, with a bonus tile if highest qualifies.
func (b *Bag) Draw(highest int) int {
	if len(b.pending) == 0 {
		panic(fmt.Errorf("threes: draw: %w", ErrBagUnderflow))
	}
	v := b.pending[0]
	b.pending = b.pending[1:]
	if len(b.pending) == 0 {
		b.refill(highest)
	}
	return v
}

// Peek returns the next value without drawing it.
func (b *Bag) Peek() int {
	if len(b.pending) == 0 {
		panic(fmt.Errorf("threes: peek: %w", ErrBagUnderflow))
	}
	return b.pending[0]
}

// Len returns the number of pending values.
func (b *Bag) Len() int {
	return len(b.pending)
}

// Pending returns a copy of the pending values in draw order.
func (b *Bag) Pending() []int {
	return slices.Clone(b.pending)
}

func (b *Bag) refill(highest int) {
	fresh := slices.Clone(b.canonical)
	b.rng.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})
	if v, ok := BonusValue(b.rng, highest, b.bonus); ok {
		fresh = append(fresh, v)
	}
	b.pending = append(b.pending, fresh...)
}

package player

import rand "math/rand/v2"

// Selector picks the index of the next light to turn on.
type Selector interface {
	Next(current, count int) int
}

// Cycle walks the lights in order and wraps. Used for diagnostics so every
// button can be checked in turn.
type Cycle struct{}

// Next implements Selector.
func (Cycle) Next(current, count int) int {
	next := current + 1
	if next >= count || next < 0 {
		next = 0
	}
	return next
}

// Random draws uniformly from all lights. The active light may repeat.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random selector backed by rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Next implements Selector.
func (r *Random) Next(_, count int) int {
	return r.rng.IntN(count)
}

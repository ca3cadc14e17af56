// Package randutil builds the seeded generators used for light selection.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG generator derived from seed. The same seed always yields
// the same light sequence, which keeps simulator runs and tests reproducible.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Seed returns *configured when set, otherwise a clock-derived seed.
func Seed(configured *int64) int64 {
	if configured != nil {
		return *configured
	}
	return time.Now().UnixNano()
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Package randutil derives reproducible math/rand/v2 generators for decks
// and simulations.
package randutil

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG-backed *rand.Rand seeded deterministically from seed.
// Both 64-bit PCG seeds are derived from the one value so every call site
// replays the same shuffle for the same seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Resolve returns seed unchanged unless it is zero, in which case a seed is
// taken from the clock. Callers log the resolved value so a game can be
// replayed.
func Resolve(seed int64, clock quartz.Clock) int64 {
	if seed != 0 {
		return seed
	}
	return clock.Now().UnixNano()
}

// Derive returns the seed for the n-th independent stream below base.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n)*goldenRatio64))
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

package kernel

import "math/rand/v2"

// Random is the source of every randomized decision in the engine: live road
// blockages, travel times, lost parcels and delivery outcomes. *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	// IntN returns a uniformly distributed value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSeededRandom returns a deterministic PCG-backed source. Two sources built
// from the same seed produce the same sequence.
func NewSeededRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // simulation, not crypto
}

// Chance reports whether an event with probability numerator/denominator occurs.
// A non-positive numerator never fires; numerator >= denominator always fires.
func Chance(r Random, numerator, denominator int) bool {
	if numerator <= 0 || denominator <= 0 {
		return false
	}
	if numerator >= denominator {
		return true
	}
	return r.IntN(denominator) < numerator
}

// Package randutil centralises construction of seeded random sources.
// All randomness in the engine (shuffling, bot sampling) flows through
// a *rand.Rand created here, so a single int64 seed reproduces a run.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed.
// rand/v2's PCG wants two 64-bit words; both are derived from the one
// seed so all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

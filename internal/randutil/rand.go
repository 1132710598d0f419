// Package randutil centralises deterministic RNG construction. Every hand,
// match and Monte-Carlo worker derives its generator here so a fixed run seed
// replays the whole run exactly.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The two 64-bit PCG seeds are derived with a splitmix-style mixer so that
// nearby seeds (seed, seed+1, ...) still produce unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive combines a base seed with a stream index. Drivers use it to give
// each hand and each match its own independent generator.
func Derive(seed int64, stream int64) int64 {
	return int64(mix(uint64(seed)) ^ mix(uint64(stream)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

package openlist

import "math/rand"

// defaultSeed is the fixed "zero" seed used when a caller passes seed==0,
// matching the determinism policy grounded on tsp/rng.go.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 maps to
// defaultSeed so callers never silently get a random default.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed with a stream id via a SplitMix64-style
// avalanche finalizer, grounded on tsp/rng.go's deriveSeed: every
// PRNG-sampling open list the search engine owns (type-based, weighted,
// pareto) needs its own independent stream carved out of the engine's
// single seeded PRNG, without the streams correlating.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// DeriveRNG returns a fresh deterministic RNG stream derived from a base
// seed and a stream identifier (e.g. the open list's index within an
// alternation). base.Int63() is not consumed; this is a pure function of
// (seed, stream) so it is reproducible independent of call order.
func DeriveRNG(seed int64, stream uint64) *rand.Rand {
	return rngFromSeed(deriveSeed(seed, stream))
}

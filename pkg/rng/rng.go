// Package rng provides deterministic random sources for the simulations.
package rng

import "math/rand/v2"

// New returns a PCG-backed *rand.Rand for seed. Equal seeds produce equal
// streams.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
}

// Uniform returns a value in [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Pick returns a uniformly chosen element of items. items must be non-empty.
func Pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

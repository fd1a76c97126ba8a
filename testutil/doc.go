// Package testutil provides testing utilities for the geometry packages.
//
// This package is intended for use in tests only. It provides a seeded,
// thread-safe random source for generating vectors, ordered corner pairs and
// compacts for property tests.
//
// # Random Generation
//
//	rng := testutil.NewRNG(seed)
//	coords := rng.UniformRange(3, -10, 10)
//	lo, hi := rng.Corners(3, -10, 10)
//	c := rng.Compact(t, 3, -10, 10)
package testutil

// Package testutil provides testing utilities for docpack.
//
// This package is intended for use in tests and benchmarks only. It provides
// a seeded RNG for generating strictly ascending postings lists with
// configurable gap distributions.
//
//	rng := testutil.NewRNG(seed)
//	ids := rng.Ascending(10_000, 100)          // uniform gaps in [1, 100]
//	ids = rng.AscendingSkewed(10_000, 4, 50)   // mostly tiny gaps, rare huge ones
package testutil

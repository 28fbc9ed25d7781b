package testutil

import (
	"math/rand"
	"sync"
)

// maxID keeps generated lists inside the 32-bit identifier range.
const maxID = 1<<32 - 1

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Ascending generates a strictly ascending postings list of n identifiers
// with uniform gaps in [1, maxGap].
func (r *RNG) Ascending(n int, maxGap uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uint32, n)
	var id uint64
	for i := range ids {
		id += uint64(r.rand.Uint32()%maxGap) + 1
		if id > maxID {
			panic("testutil: n*maxGap exceeds the 32-bit identifier range")
		}
		ids[i] = uint32(id)
	}
	return ids
}

// AscendingSkewed generates a strictly ascending postings list where most
// gaps are in [1, smallGap] and roughly one in outlierRate gaps is huge,
// exercising codec exception paths.
func (r *RNG) AscendingSkewed(n int, smallGap uint32, outlierRate int) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uint32, n)
	var id uint64
	for i := range ids {
		var gap uint64
		if outlierRate > 0 && r.rand.Intn(outlierRate) == 0 {
			gap = uint64(r.rand.Uint32()%1_000_000) + 1_000_000
		} else {
			gap = uint64(r.rand.Uint32()%smallGap) + 1
		}
		id += gap
		if id > maxID {
			panic("testutil: generated ids exceed the 32-bit identifier range")
		}
		ids[i] = uint32(id)
	}
	return ids
}

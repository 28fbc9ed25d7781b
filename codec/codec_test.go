package codec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allCodecs() []Codec {
	return []Codec{QMX{}, Roaring{}, LZ4{}, ZSTD{}}
}

// ascendingGaps builds a gap sequence that reconstructs a strictly ascending
// id list: gaps[0] >= 0, gaps[i>0] >= 1, cumulative sum within uint32.
func ascendingGaps(rng *rand.Rand, n int, maxGap uint32) []uint32 {
	gaps := make([]uint32, n)
	var total uint64
	for i := range gaps {
		g := rng.Uint32()%maxGap + 1
		if total+uint64(g) > 1<<32-1 {
			g = 1
		}
		gaps[i] = g
		total += uint64(g)
	}
	return gaps
}

func TestByName(t *testing.T) {
	for _, c := range allCodecs() {
		got, ok := ByName(c.Name())
		require.True(t, ok, c.Name())
		assert.Equal(t, c.Name(), got.Name())
	}

	_, ok := ByName("unknown")
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "qmx", Default.Name())
}

func TestRoundTripAllCodecs(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cases := map[string][]uint32{
		"empty":     {},
		"singleton": {42},
		"dense":     {1, 1, 1, 1, 2, 1, 3, 1},
		"outlier":   {1, 1_000_000_006},
		"random":    ascendingGaps(rng, 1000, 500),
		"sparse":    ascendingGaps(rng, 64, 1<<20),
	}

	for _, c := range allCodecs() {
		for name, gaps := range cases {
			t.Run(c.Name()+"/"+name, func(t *testing.T) {
				dst := make([]byte, c.Bound(len(gaps)))
				n, err := c.Encode(dst, gaps)
				require.NoError(t, err)
				require.LessOrEqual(t, n, c.Bound(len(gaps)))
				if len(gaps) == 0 {
					require.Zero(t, n)
				}

				got := make([]uint32, len(gaps))
				require.NoError(t, c.Decode(got, dst[:n]))
				assert.Equal(t, gaps, got)
			})
		}
	}
}

func TestDeterminismAllCodecs(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	gaps := ascendingGaps(rng, 500, 100)

	for _, c := range allCodecs() {
		t.Run(c.Name(), func(t *testing.T) {
			a := make([]byte, c.Bound(len(gaps)))
			b := make([]byte, c.Bound(len(gaps)))
			na, err := c.Encode(a, gaps)
			require.NoError(t, err)
			nb, err := c.Encode(b, gaps)
			require.NoError(t, err)
			assert.Equal(t, a[:na], b[:nb])
		})
	}
}

func TestCapacityAllCodecs(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	gaps := ascendingGaps(rng, 256, 1<<16)

	for _, c := range allCodecs() {
		t.Run(c.Name(), func(t *testing.T) {
			_, err := c.Encode(make([]byte, 2), gaps)
			assert.ErrorIs(t, err, ErrCapacity)
		})
	}
}

func TestCorruptAllCodecs(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	gaps := ascendingGaps(rng, 128, 1000)

	for _, c := range allCodecs() {
		t.Run(c.Name(), func(t *testing.T) {
			dst := make([]byte, c.Bound(len(gaps)))
			n, err := c.Encode(dst, gaps)
			require.NoError(t, err)

			got := make([]uint32, len(gaps))

			// Truncated stream.
			assert.ErrorIs(t, c.Decode(got, dst[:n/3]), ErrCorrupt)

			// Count mismatch: stream for 128 gaps, caller claims 64.
			short := make([]uint32, 64)
			assert.ErrorIs(t, c.Decode(short, dst[:n]), ErrCorrupt)

			// Nonempty stream against zero count.
			assert.ErrorIs(t, c.Decode(nil, dst[:n]), ErrCorrupt)
		})
	}
}

func TestDecodeEmptyAllCodecs(t *testing.T) {
	for _, c := range allCodecs() {
		assert.NoError(t, c.Decode(nil, nil), c.Name())
	}
}

func TestRoaringRejectsDuplicateIDs(t *testing.T) {
	// A zero gap after the first position collides two ids.
	gaps := []uint32{5, 0}
	dst := make([]byte, Roaring{}.Bound(len(gaps)))
	_, err := Roaring{}.Encode(dst, gaps)
	assert.Error(t, err)
}

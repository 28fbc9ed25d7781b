package docpack

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/docpack/codec"
	"github.com/hupe1980/docpack/testutil"
)

func roundTrip(t *testing.T, docIDs []uint32, opts ...Option) (BlockMeta, []byte) {
	t.Helper()

	meta, data, err := Encode(docIDs, opts...)
	require.NoError(t, err)
	require.Equal(t, uint32(len(docIDs)), meta.Count)
	require.Equal(t, uint32(len(data)), meta.Bytes)
	if len(opts) == 0 {
		require.LessOrEqual(t, len(data), EstimateCapacity(len(docIDs)))
	}

	out := make([]uint32, meta.Count)
	require.NoError(t, Decode(data, meta.Count, out, opts...))
	if len(docIDs) == 0 {
		require.Empty(t, out)
	} else {
		require.Equal(t, docIDs, out)
	}
	return meta, data
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		docIDs []uint32
	}{
		{"Empty", []uint32{}},
		{"Singleton", []uint32{42}},
		{"Starts at zero", []uint32{0, 1, 2, 3}},
		{"Dense run", []uint32{10, 11, 12, 13, 14, 15, 16}},
		{"Huge gap outlier", []uint32{1, 1_000_000_007}},
		{"Max id", []uint32{5, 1<<32 - 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roundTrip(t, tc.docIDs)
		})
	}
}

func TestRoundTripGenerated(t *testing.T) {
	rng := testutil.NewRNG(42)
	for _, n := range []int{1, 2, 3, 4, 5, 100, 1023, 1024, 1025, 50_000} {
		roundTrip(t, rng.Ascending(n, 200))
	}
	roundTrip(t, rng.AscendingSkewed(10_000, 4, 50))
}

func TestRoundTripAllCodecs(t *testing.T) {
	rng := testutil.NewRNG(4)
	docIDs := rng.Ascending(5_000, 300)

	for _, name := range []string{"qmx", "roaring", "lz4", "zstd"} {
		t.Run(name, func(t *testing.T) {
			c, ok := codec.ByName(name)
			require.True(t, ok)
			roundTrip(t, docIDs, WithCodec(c))
		})
	}
}

func TestDeterminism(t *testing.T) {
	rng := testutil.NewRNG(6)
	docIDs := rng.Ascending(7_777, 99)

	_, a := roundTrip(t, docIDs)
	_, b := roundTrip(t, docIDs)
	assert.Equal(t, a, b)
}

func TestEncodeEmpty(t *testing.T) {
	meta, data, err := Encode(nil)
	require.NoError(t, err)
	assert.Zero(t, meta.Count)
	assert.Zero(t, meta.Bytes)
	assert.Empty(t, data)

	// Decoding a zero count is a no-op regardless of the output buffer.
	assert.NoError(t, Decode(nil, 0, nil))
}

func TestEncodeImpact(t *testing.T) {
	meta, _, err := Encode([]uint32{1, 2, 3}, WithImpact(9))
	require.NoError(t, err)
	assert.Equal(t, uint16(9), meta.Impact)
}

func TestEncodeUnsorted(t *testing.T) {
	tests := []struct {
		name   string
		docIDs []uint32
		index  int
	}{
		{"Duplicate", []uint32{1, 5, 5, 9}, 2},
		{"Descending", []uint32{9, 5}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Encode(tc.docIDs)
			require.ErrorIs(t, err, ErrUnsorted)

			var oe *OrderError
			require.ErrorAs(t, err, &oe)
			assert.Equal(t, tc.index, oe.Index)
			assert.Equal(t, tc.docIDs[tc.index-1], oe.Prev)
			assert.Equal(t, tc.docIDs[tc.index], oe.Curr)
		})
	}
}

func TestEncodeToCapacityRetry(t *testing.T) {
	rng := testutil.NewRNG(15)
	docIDs := rng.Ascending(1_000, 1000)

	_, _, err := EncodeTo(make([]byte, 8), docIDs)
	require.ErrorIs(t, err, ErrCapacity)

	// The documented recovery: resize to the estimator's bound and retry.
	buf := make([]byte, EstimateCapacity(len(docIDs)))
	meta, n, err := EncodeTo(buf, docIDs)
	require.NoError(t, err)
	require.Equal(t, uint32(n), meta.Bytes)

	out := make([]uint32, meta.Count)
	require.NoError(t, Decode(buf[:n], meta.Count, out))
	assert.Equal(t, docIDs, out)
}

func TestDecodeShortOutput(t *testing.T) {
	meta, data, err := Encode([]uint32{1, 2, 3, 4})
	require.NoError(t, err)

	err = Decode(data, meta.Count, make([]uint32, 2))
	require.ErrorIs(t, err, ErrCapacity)

	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 4, ce.Need)
	assert.Equal(t, 2, ce.Have)
}

func TestDecodeCorrupt(t *testing.T) {
	rng := testutil.NewRNG(23)
	meta, data := roundTrip(t, rng.Ascending(500, 100))

	out := make([]uint32, meta.Count)
	assert.ErrorIs(t, Decode(data[:len(data)/2], meta.Count, out), ErrCorrupt)
	assert.ErrorIs(t, Decode(data, meta.Count-1, out), ErrCorrupt)
}

func TestDeltaHelpers(t *testing.T) {
	docIDs := []uint32{3, 7, 12, 100}

	deltas, err := ToDeltas(docIDs)
	require.NoError(t, err)
	assert.Equal(t, []uint32{3, 4, 5, 88}, deltas)
	assert.Equal(t, docIDs, FromDeltas(deltas))

	_, err = ToDeltas([]uint32{2, 2})
	assert.ErrorIs(t, err, ErrUnsorted)

	values := []uint32{1, 2, 3}
	PrefixSum(values)
	assert.Equal(t, []uint32{1, 3, 6}, values)
}

func TestConcurrentRoundTrips(t *testing.T) {
	const workers = 32

	rng := testutil.NewRNG(31)
	inputs := make([][]uint32, workers)
	sequential := make([][]byte, workers)
	for i := range inputs {
		inputs[i] = rng.Ascending(2_000+i*17, 64)
		_, data, err := Encode(inputs[i])
		require.NoError(t, err)
		sequential[i] = data
	}

	var wg sync.WaitGroup
	results := make([][]byte, workers)
	decoded := make([][]uint32, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			meta, data, err := Encode(inputs[i])
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = data
			out := make([]uint32, meta.Count)
			if err := Decode(data, meta.Count, out); err != nil {
				t.Error(err)
				return
			}
			decoded[i] = out
		}(i)
	}
	wg.Wait()

	for i := range inputs {
		assert.Equal(t, sequential[i], results[i], "worker %d", i)
		assert.Equal(t, inputs[i], decoded[i], "worker %d", i)
	}
}

func TestEncodeAllDecodeAll(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(40)

	lists := make([][]uint32, 64)
	for i := range lists {
		lists[i] = rng.Ascending(100+i*13, 500)
	}
	lists[7] = nil // empty blocks are fine

	blocks, err := EncodeAll(ctx, lists, WithConcurrency(8), WithImpact(2))
	require.NoError(t, err)
	require.Len(t, blocks, len(lists))
	for i, b := range blocks {
		assert.Equal(t, uint32(len(lists[i])), b.Meta.Count, "block %d", i)
		assert.Equal(t, uint16(2), b.Meta.Impact, "block %d", i)
	}

	got, err := DecodeAll(ctx, blocks, WithConcurrency(8))
	require.NoError(t, err)
	require.Len(t, got, len(lists))
	for i := range lists {
		if len(lists[i]) == 0 {
			assert.Empty(t, got[i], "block %d", i)
			continue
		}
		assert.Equal(t, lists[i], got[i], "block %d", i)
	}
}

func TestEncodeAllPropagatesError(t *testing.T) {
	lists := [][]uint32{
		{1, 2, 3},
		{9, 9}, // unsorted
	}
	_, err := EncodeAll(context.Background(), lists)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsorted)
}

func TestMetricsCollection(t *testing.T) {
	var m BasicMetricsCollector
	rng := testutil.NewRNG(55)
	docIDs := rng.Ascending(1_000, 50)

	meta, data, err := Encode(docIDs, WithMetrics(&m))
	require.NoError(t, err)
	out := make([]uint32, meta.Count)
	require.NoError(t, Decode(data, meta.Count, out, WithMetrics(&m)))

	_, _, err = Encode([]uint32{3, 3}, WithMetrics(&m))
	require.Error(t, err)

	assert.Equal(t, int64(2), m.EncodeCount.Load())
	assert.Equal(t, int64(1), m.EncodeErrors.Load())
	assert.Equal(t, int64(1), m.DecodeCount.Load())
	assert.Equal(t, int64(len(data)), m.EncodedBytes.Load())
	assert.Greater(t, m.CompressionRatio(), 0.0)
}

func TestWithCodecNilFallsBack(t *testing.T) {
	roundTrip(t, []uint32{1, 2, 3}, WithCodec(nil))
}

func TestErrorTaxonomy(t *testing.T) {
	// Corrupt and capacity never alias each other.
	assert.False(t, errors.Is(ErrCorrupt, ErrCapacity))
	assert.False(t, errors.Is(ErrUnsorted, ErrCorrupt))
}

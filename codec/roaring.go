package codec

import (
	"bytes"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/docpack/internal/pool"
	"github.com/hupe1980/docpack/internal/simd"
)

// Roaring encodes a postings block as a serialized roaring bitmap of the
// absolute document identifiers. It trades the dense-gap compression of QMX
// for cheap set operations on the serialized form.
//
// The gap sequence must reconstruct a strictly ascending identifier list
// (every gap after the first >= 1); a sequence with repeated identifiers
// cannot be represented by a bitmap and is rejected.
type Roaring struct{}

var _ Codec = Roaring{}

// Name implements Codec.
func (Roaring) Name() string { return "roaring" }

// Bound implements Codec. Worst case is one array container per value:
// 2 bytes of payload plus 8 bytes of container bookkeeping, under a fixed
// serialization header.
func (Roaring) Bound(n int) int { return 64 + 16*n }

// Encode implements Codec.
func (Roaring) Encode(dst []byte, deltas []uint32) (int, error) {
	if len(deltas) == 0 {
		return 0, nil
	}

	ids := pool.GetUint32(len(deltas))
	defer pool.PutUint32(ids)
	copy(*ids, deltas)
	simd.PrefixSumU32(*ids)

	rb := roaring.New()
	rb.AddMany(*ids)
	if rb.GetCardinality() != uint64(len(deltas)) {
		return 0, fmt.Errorf("roaring: gap sequence does not reconstruct strictly ascending ids")
	}

	data, err := rb.ToBytes()
	if err != nil {
		return 0, fmt.Errorf("roaring: serialize: %w", err)
	}
	if len(data) > len(dst) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrCapacity, len(data), len(dst))
	}
	return copy(dst, data), nil
}

// Decode implements Codec.
func (Roaring) Decode(dst []uint32, src []byte) error {
	if len(dst) == 0 {
		if len(src) != 0 {
			return fmt.Errorf("%w: %d trailing bytes after empty block", ErrCorrupt, len(src))
		}
		return nil
	}

	rb := roaring.New()
	r := bytes.NewReader(src)
	if _, err := rb.ReadFrom(r); err != nil {
		return fmt.Errorf("%w: roaring: %w", ErrCorrupt, err)
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: roaring: %d trailing bytes", ErrCorrupt, r.Len())
	}
	if rb.GetCardinality() != uint64(len(dst)) {
		return fmt.Errorf("%w: roaring: cardinality %d, expected %d", ErrCorrupt, rb.GetCardinality(), len(dst))
	}

	simd.DeltaU32(dst, rb.ToArray())
	return nil
}

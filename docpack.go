package docpack

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/docpack/internal/pool"
	"github.com/hupe1980/docpack/internal/simd"
)

// BlockMeta is the metadata a container stores alongside a compressed block.
// A block is self-describing given Count; Impact is an opaque score bucket
// assigned by the caller.
type BlockMeta struct {
	Impact uint16
	Count  uint32
	Bytes  uint32
}

// Block pairs a compressed payload with its metadata. The payload's lifetime
// is owned by the caller.
type Block struct {
	Meta BlockMeta
	Data []byte
}

// Encode compresses a strictly ascending list of document identifiers into a
// self-describing block. It returns the block metadata and the compressed
// bytes. Identical input always yields identical bytes for a given codec.
//
// Fails with an OrderError when docIDs is not strictly ascending.
func Encode(docIDs []uint32, opts ...Option) (BlockMeta, []byte, error) {
	o := applyOptions(opts)
	meta := BlockMeta{Impact: o.impact}
	n := len(docIDs)
	if n == 0 {
		return meta, nil, nil
	}
	if uint64(n) > math.MaxUint32 {
		return meta, nil, fmt.Errorf("postings list of %d ids exceeds the 32-bit count", n)
	}

	buf := make([]byte, o.codec.Bound(n))
	written, err := encodeTo(&o, buf, docIDs)
	if err != nil {
		return meta, nil, err
	}

	meta.Count = uint32(n)
	meta.Bytes = uint32(written)
	return meta, buf[:written:written], nil
}

// EncodeTo is like Encode but writes into a caller-supplied buffer and
// returns the bytes written. Fails with a CapacityError when dst is too
// small; resize to EstimateCapacity (or the codec's Bound) and retry.
func EncodeTo(dst []byte, docIDs []uint32, opts ...Option) (BlockMeta, int, error) {
	o := applyOptions(opts)
	meta := BlockMeta{Impact: o.impact}
	n := len(docIDs)
	if n == 0 {
		return meta, 0, nil
	}
	if uint64(n) > math.MaxUint32 {
		return meta, 0, fmt.Errorf("postings list of %d ids exceeds the 32-bit count", n)
	}

	written, err := encodeTo(&o, dst, docIDs)
	if err != nil {
		return meta, 0, err
	}

	meta.Count = uint32(n)
	meta.Bytes = uint32(written)
	return meta, written, nil
}

func encodeTo(o *options, dst []byte, docIDs []uint32) (int, error) {
	start := time.Now()
	n := len(docIDs)

	gaps := pool.GetUint32(n)
	defer pool.PutUint32(gaps)

	if bad := simd.DeltaU32(*gaps, docIDs); bad >= 0 {
		err := &OrderError{Index: bad, Prev: docIDs[bad-1], Curr: docIDs[bad]}
		o.metrics.RecordEncode(n, 0, time.Since(start), err)
		o.logger.LogEncode(n, 0, err)
		return 0, err
	}

	written, err := o.codec.Encode(dst, *gaps)
	if err != nil {
		err = translateError(err)
		o.metrics.RecordEncode(n, 0, time.Since(start), err)
		o.logger.LogEncode(n, 0, err)
		return 0, err
	}

	o.metrics.RecordEncode(n, written, time.Since(start), nil)
	o.logger.LogEncode(n, written, nil)
	return written, nil
}

// Decode fills out[0..count) with the document identifiers originally passed
// to Encode. count must match the count recorded at encode time and out must
// have at least count slots. Decode with count zero is a no-op. The input is
// never modified and never read past its length.
//
// Fails with a CapacityError when out is short, and with an error matching
// ErrCorrupt when the stream is truncated, malformed, or disagrees with
// count; in the corrupt case out contents are unspecified and the block must
// be discarded or re-fetched.
func Decode(compressed []byte, count uint32, out []uint32, opts ...Option) error {
	o := applyOptions(opts)
	if count == 0 {
		return nil
	}
	if uint64(len(out)) < uint64(count) {
		return &CapacityError{Need: int(count), Have: len(out)}
	}

	start := time.Now()
	dst := out[:count]
	if err := o.codec.Decode(dst, compressed); err != nil {
		err = translateError(err)
		o.metrics.RecordDecode(int(count), time.Since(start), err)
		o.logger.LogDecode(int(count), err)
		return err
	}
	simd.PrefixSumU32(dst)

	o.metrics.RecordDecode(int(count), time.Since(start), nil)
	o.logger.LogDecode(int(count), nil)
	return nil
}

// ToDeltas converts a strictly ascending identifier list into its gap
// sequence: deltas[0] = ids[0], deltas[i] = ids[i] - ids[i-1]. Fails with an
// OrderError when ids is not strictly ascending.
func ToDeltas(docIDs []uint32) ([]uint32, error) {
	out := make([]uint32, len(docIDs))
	if bad := simd.DeltaU32(out, docIDs); bad >= 0 {
		return nil, &OrderError{Index: bad, Prev: docIDs[bad-1], Curr: docIDs[bad]}
	}
	return out, nil
}

// FromDeltas is the inverse of ToDeltas, returning the absolute identifier
// list reconstructed from a gap sequence.
func FromDeltas(deltas []uint32) []uint32 {
	out := append([]uint32(nil), deltas...)
	simd.PrefixSumU32(out)
	return out
}

// PrefixSum replaces values[i] with values[0]+...+values[i], in place. The
// result is bit-identical to the scalar left-to-right running sum; keeping
// sums inside the 32-bit range is the caller's contract.
func PrefixSum(values []uint32) {
	simd.PrefixSumU32(values)
}

// EstimateCapacity returns a buffer size guaranteed sufficient for encoding
// any n-element postings list with the default codec, regardless of value
// distribution.
func EstimateCapacity(n int) int {
	return defaultOptions().codec.Bound(n)
}

// EncodeAll compresses independent postings lists in parallel and returns one
// block per list, in input order. The whole batch fails on the first error.
func EncodeAll(ctx context.Context, lists [][]uint32, opts ...Option) ([]Block, error) {
	o := applyOptions(opts)
	blocks := make([]Block, len(lists))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, list := range lists {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			meta, data, err := Encode(list, opts...)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			blocks[i] = Block{Meta: meta, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.Debug("batch encode completed", "blocks", len(lists))
	return blocks, nil
}

// DecodeAll decompresses independent blocks in parallel and returns one
// identifier list per block, in input order. The whole batch fails on the
// first error.
func DecodeAll(ctx context.Context, blocks []Block, opts ...Option) ([][]uint32, error) {
	o := applyOptions(opts)
	lists := make([][]uint32, len(blocks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, block := range blocks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := make([]uint32, block.Meta.Count)
			if err := Decode(block.Data, block.Meta.Count, out, opts...); err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			lists[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.Debug("batch decode completed", "blocks", len(blocks))
	return lists, nil
}

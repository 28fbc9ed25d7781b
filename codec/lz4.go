package codec

import (
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/docpack/internal/pool"
)

// Block flag bytes shared by the byte-stream codecs (LZ4, ZSTD).
// A raw block stores the little-endian gap words uncompressed; the encoder
// falls back to raw whenever compression does not shrink the payload.
const (
	flagRaw        = 0
	flagCompressed = 1
)

// LZ4 encodes a postings block as LZ4 block compression over the
// little-endian serialized gap words. Fast with a modest ratio; good for hot
// blocks that decode often.
type LZ4 struct{}

var _ Codec = LZ4{}

// Name implements Codec.
func (LZ4) Name() string { return "lz4" }

// Bound implements Codec.
func (LZ4) Bound(n int) int { return 1 + lz4.CompressBlockBound(4*n) }

// Encode implements Codec.
func (LZ4) Encode(dst []byte, deltas []uint32) (int, error) {
	if len(deltas) == 0 {
		return 0, nil
	}

	raw := pool.GetBytes(4 * len(deltas))
	defer pool.PutBytes(raw)
	putWords(*raw, deltas)

	comp := pool.GetBytes(lz4.CompressBlockBound(len(*raw)))
	defer pool.PutBytes(comp)

	n, err := lz4.CompressBlock(*raw, *comp, nil)
	if err != nil {
		return 0, fmt.Errorf("lz4: compress: %w", err)
	}
	if n == 0 || n >= len(*raw) {
		// Incompressible, store raw.
		return writeFlagged(dst, flagRaw, *raw)
	}
	return writeFlagged(dst, flagCompressed, (*comp)[:n])
}

// Decode implements Codec.
func (LZ4) Decode(dst []uint32, src []byte) error {
	if len(dst) == 0 {
		if len(src) != 0 {
			return fmt.Errorf("%w: %d trailing bytes after empty block", ErrCorrupt, len(src))
		}
		return nil
	}
	if len(src) < 1 {
		return fmt.Errorf("%w: missing block flag", ErrCorrupt)
	}

	switch src[0] {
	case flagRaw:
		if len(src)-1 != 4*len(dst) {
			return fmt.Errorf("%w: raw block is %d bytes, expected %d", ErrCorrupt, len(src)-1, 4*len(dst))
		}
		getWords(dst, src[1:])
		return nil

	case flagCompressed:
		raw := pool.GetBytes(4 * len(dst))
		defer pool.PutBytes(raw)

		n, err := lz4.UncompressBlock(src[1:], *raw)
		if err != nil {
			return fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if n != 4*len(dst) {
			return fmt.Errorf("%w: lz4: decompressed %d bytes, expected %d", ErrCorrupt, n, 4*len(dst))
		}
		getWords(dst, *raw)
		return nil

	default:
		return fmt.Errorf("%w: unknown block flag %d", ErrCorrupt, src[0])
	}
}

// writeFlagged copies a flag byte plus payload into dst with capacity checks.
func writeFlagged(dst []byte, flag byte, payload []byte) (int, error) {
	need := 1 + len(payload)
	if need > len(dst) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrCapacity, need, len(dst))
	}
	dst[0] = flag
	copy(dst[1:], payload)
	return need, nil
}

package codec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/docpack/internal/pool"
)

// ZSTD encoder/decoder pools for efficiency. A zstd.Encoder is safe for
// concurrent EncodeAll use, but pooling avoids contention on its internals.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// ZSTD encodes a postings block as zstd over the little-endian serialized
// gap words. Better ratio than LZ4 at higher CPU cost; good for cold blocks.
type ZSTD struct{}

var _ Codec = ZSTD{}

// Name implements Codec.
func (ZSTD) Name() string { return "zstd" }

// Bound implements Codec. The encoder stores the block raw whenever
// compression does not shrink it, so the bound is the raw size plus the flag.
func (ZSTD) Bound(n int) int { return 1 + 4*n }

// Encode implements Codec.
func (ZSTD) Encode(dst []byte, deltas []uint32) (int, error) {
	if len(deltas) == 0 {
		return 0, nil
	}

	raw := pool.GetBytes(4 * len(deltas))
	defer pool.PutBytes(raw)
	putWords(*raw, deltas)

	enc := getZstdEncoder()
	compressed := enc.EncodeAll(*raw, nil)
	putZstdEncoder(enc)

	if len(compressed) >= len(*raw) {
		// Incompressible, store raw.
		return writeFlagged(dst, flagRaw, *raw)
	}
	return writeFlagged(dst, flagCompressed, compressed)
}

// Decode implements Codec.
func (ZSTD) Decode(dst []uint32, src []byte) error {
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

		dec := getZstdDecoder()
		decoded, err := dec.DecodeAll(src[1:], (*raw)[:0])
		putZstdDecoder(dec)
		if err != nil {
			return fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if len(decoded) != 4*len(dst) {
			return fmt.Errorf("%w: zstd: decompressed %d bytes, expected %d", ErrCorrupt, len(decoded), 4*len(dst))
		}
		getWords(dst, decoded)
		return nil

	default:
		return fmt.Errorf("%w: unknown block flag %d", ErrCorrupt, src[0])
	}
}

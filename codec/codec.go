// Package codec centralizes compressed postings-block encodings.
//
// Docpack intentionally treats codec selection as a breaking-change boundary:
// the wire formats carry no version tag, so blocks written by one codec (or
// codec version) only decode with the same codec on the other side.
package codec

import "errors"

var (
	// ErrCapacity is returned when a destination buffer is too small for the
	// encoded block. Recoverable: resize to Bound and retry.
	ErrCapacity = errors.New("codec: output buffer too small")

	// ErrCorrupt is returned when a compressed block is truncated, malformed,
	// or disagrees with the declared element count. Not recoverable for the
	// affected block.
	ErrCorrupt = errors.New("codec: compressed block corrupt")
)

// Codec encodes and decodes gap sequences of document identifiers.
// Implementations must be safe for concurrent use: any scratch state is
// per-call, never shared.
type Codec interface {
	// Encode compresses the gap sequence into dst and returns the bytes
	// written. Fails with ErrCapacity when dst is too small; never writes
	// past dst. Output is deterministic for identical input.
	Encode(dst []byte, deltas []uint32) (int, error)

	// Decode reconstructs exactly len(dst) gaps from src. Fails with
	// ErrCorrupt on truncated or malformed streams; never reads past src.
	Decode(dst []uint32, src []byte) error

	// Bound returns a buffer size sufficient to encode any n-element gap
	// sequence, regardless of value distribution.
	Bound(n int) int

	// Name returns the codec's stable registry name.
	Name() string
}

// Default is the codec used when callers do not pick one explicitly.
var Default Codec = QMX{}

// ByName returns a built-in codec by its stable name.
//
// This is used by callers that persist the codec name alongside their block
// containers and need to resolve it on the read path.
func ByName(name string) (Codec, bool) {
	switch name {
	case "qmx":
		return QMX{}, true
	case "roaring":
		return Roaring{}, true
	case "lz4":
		return LZ4{}, true
	case "zstd":
		return ZSTD{}, true
	default:
		return nil, false
	}
}

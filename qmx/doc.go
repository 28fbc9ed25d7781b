// Package qmx implements a QMX-style block codec for unsigned 32-bit gap
// sequences.
//
// The codec operates on groups of 4 values (one 128-bit vector register).
// Each group is packed at the narrowest bit width from {0, 1, 2, 4, 8, 16, 32}
// that minimizes its encoded size; values too large for the chosen width are
// dropped from the packed payload and stored at full width in an exception
// list behind the last group.
//
// # Wire format
//
// A stream is a sequence of group records followed by the exception list:
//
//	group record:   selector byte | packed payload
//	selector byte:  bits 4-6 width code (0-6), bits 0-3 exception lane mask
//	packed payload: ceil(4*width/8) bytes, lanes little-endian bit-packed,
//	                exception lanes packed as zero
//	exception list: one little-endian uint32 per exception lane, in stream order
//
// The final group is zero-padded to 4 lanes; the decoder discards padding via
// the caller-declared element count and rejects streams whose padding lanes
// carry nonzero values or exception bits. The stream carries no version tag, so
// encoder and decoder must stay in lock-step.
//
// Encoding is deterministic: identical input always yields identical bytes.
// The decoder never reads past the source buffer and reports truncated or
// malformed streams as ErrCorrupt.
package qmx

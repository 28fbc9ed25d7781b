// Package docpack compresses postings lists (strictly ascending document
// identifiers inside a search index) into compact self-describing blocks.
//
// Encoding converts the identifiers into gaps (d-gaps), then packs the gaps
// with a block codec; decoding unpacks the gaps and reconstructs the absolute
// identifiers with a vectorized prefix sum. Round trips are exact and
// encoding is deterministic.
//
// # Quick Start
//
//	meta, data, _ := docpack.Encode(docIDs, docpack.WithImpact(3))
//	// persist meta.Impact, meta.Count, meta.Bytes and data
//
//	out := make([]uint32, meta.Count)
//	_ = docpack.Decode(data, meta.Count, out)
//
// # Codecs
//
// The default codec is QMX: groups of four gaps packed at a per-group minimal
// bit width, with rare outliers stored in an exception list so the common
// case stays dense while the worst case stays correct. Alternate codecs
// (roaring, lz4, zstd) are available via WithCodec and codec.ByName; encoder
// and decoder must agree on the codec, as blocks carry no version tag.
//
// # Errors
//
// Encode fails with an OrderError on unsorted input. Undersized buffers fail
// with a CapacityError, recoverable by resizing to EstimateCapacity and
// retrying. Corrupt blocks fail with an error matching ErrCorrupt and must be
// discarded or re-fetched; nothing is retried internally and no partial
// results are returned.
//
// # Concurrency
//
// All operations are synchronous, CPU-bound transforms over caller-supplied
// buffers. Independent calls on independent buffers run fully in parallel;
// EncodeAll and DecodeAll batch that pattern over many blocks.
package docpack

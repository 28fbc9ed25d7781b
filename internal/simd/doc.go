// Package simd provides vectorized integer kernels for postings codecs.
//
// # Supported Platforms
//
//   - x86-64: AVX2/AVX-512 class cores use 8-lane block kernels
//   - ARM64: NEON/SVE2 class cores use 4-lane block kernels
//
// Runtime CPU feature detection selects the optimal implementation.
// Set DOCPACK_SIMD (generic|lanes4|lanes8) to override the selection.
//
// # Operations
//
//   - PrefixSumU32: in-place cumulative sum, bit-identical to the scalar scan
//   - DeltaU32: forward gap transform with ordering validation
//
// All kernels are pure Go. The lane-wise prefix sum computes local running
// sums inside fixed-size blocks and propagates each block total as a carry,
// which is exact for uint32 because addition is associative mod 2^32.
package simd

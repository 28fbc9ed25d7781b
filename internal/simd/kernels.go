package simd

// Kernel function pointers - set once at init, zero runtime overhead.
// The generic implementations are the defaults; initKernels swaps in the
// lane-wise variants for the detected kernel family.
var (
	kernelPrefixSumU32 = prefixSumU32Generic
)

// initKernels binds the kernel pointers for the active kernel family.
// Called from initCapabilities after feature detection.
func initKernels() {
	switch activeKind {
	case Lanes8:
		kernelPrefixSumU32 = prefixSumU32Lanes8
	case Lanes4:
		kernelPrefixSumU32 = prefixSumU32Lanes4
	default:
		kernelPrefixSumU32 = prefixSumU32Generic
	}
}

// PrefixSumU32 replaces v[i] with v[0]+...+v[i], in place.
//
// Every kernel family produces output bit-identical to the scalar
// left-to-right running sum. Overflow wraps mod 2^32; keeping sums inside
// the 32-bit range is the caller's contract.
func PrefixSumU32(v []uint32) {
	kernelPrefixSumU32(v)
}

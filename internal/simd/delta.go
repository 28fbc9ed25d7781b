package simd

// DeltaU32 writes the gap transform of src into dst: dst[0] = src[0] and
// dst[i] = src[i] - src[i-1]. dst may alias src. It returns the index of the
// first ordering violation (src[i] <= src[i-1]) or -1 if src is strictly
// ascending. On a violation dst contents are unspecified.
//
// The transform runs in reverse order so the in-place case never reads an
// already overwritten element.
func DeltaU32(dst, src []uint32) int {
	n := len(src)
	if n == 0 {
		return -1
	}
	bad := -1
	for i := n - 1; i > 0; i-- {
		if src[i] <= src[i-1] {
			bad = i
		}
		dst[i] = src[i] - src[i-1]
	}
	dst[0] = src[0]
	return bad
}

package simd

func prefixSumU32Generic(v []uint32) {
	var sum uint32
	for i := range v {
		sum += v[i]
		v[i] = sum
	}
}

// prefixSumU32Lanes4 scans 4-lane blocks: a local unrolled running sum per
// block, then the block total carried into the next block. Matches the
// 128-bit shift-and-add prefix scan layout.
func prefixSumU32Lanes4(v []uint32) {
	var carry uint32
	n := len(v)
	i := 0
	for ; i+4 <= n; i += 4 {
		b := v[i : i+4 : i+4]
		s0 := b[0]
		s1 := s0 + b[1]
		s2 := s1 + b[2]
		s3 := s2 + b[3]
		b[0] = carry + s0
		b[1] = carry + s1
		b[2] = carry + s2
		b[3] = carry + s3
		carry += s3
	}
	for ; i < n; i++ {
		carry += v[i]
		v[i] = carry
	}
}

// prefixSumU32Lanes8 is the 256-bit class variant: 8-lane blocks with carry
// propagation, mirroring an AVX2 cumulative sum.
func prefixSumU32Lanes8(v []uint32) {
	var carry uint32
	n := len(v)
	i := 0
	for ; i+8 <= n; i += 8 {
		b := v[i : i+8 : i+8]
		s0 := b[0]
		s1 := s0 + b[1]
		s2 := s1 + b[2]
		s3 := s2 + b[3]
		s4 := s3 + b[4]
		s5 := s4 + b[5]
		s6 := s5 + b[6]
		s7 := s6 + b[7]
		b[0] = carry + s0
		b[1] = carry + s1
		b[2] = carry + s2
		b[3] = carry + s3
		b[4] = carry + s4
		b[5] = carry + s5
		b[6] = carry + s6
		b[7] = carry + s7
		carry += s7
	}
	for ; i < n; i++ {
		carry += v[i]
		v[i] = carry
	}
}

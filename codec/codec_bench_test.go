package codec

import (
	"fmt"
	"math/rand"
	"testing"
)

func benchGaps(n int, maxGap uint32) []uint32 {
	rng := rand.New(rand.NewSource(1))
	return ascendingGaps(rng, n, maxGap)
}

func BenchmarkEncode(b *testing.B) {
	gaps := benchGaps(1<<16, 64)

	for _, c := range allCodecs() {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			dst := make([]byte, c.Bound(len(gaps)))

			warm, err := c.Encode(dst, gaps)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(gaps) * 4))
			b.ReportMetric(float64(warm)/float64(len(gaps)), "bytes/int")

			b.ResetTimer()
			for b.Loop() {
				if _, err := c.Encode(dst, gaps); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	gaps := benchGaps(1<<16, 64)

	for _, c := range allCodecs() {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			dst := make([]byte, c.Bound(len(gaps)))
			n, err := c.Encode(dst, gaps)
			if err != nil {
				b.Fatal(err)
			}
			out := make([]uint32, len(gaps))

			b.SetBytes(int64(len(gaps) * 4))
			b.ResetTimer()
			for b.Loop() {
				if err := c.Decode(out, dst[:n]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEncodeSizes(b *testing.B) {
	c := Default
	for _, n := range []int{128, 4096, 1 << 18} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			gaps := benchGaps(n, 256)
			dst := make([]byte, c.Bound(n))

			b.SetBytes(int64(n * 4))
			b.ResetTimer()
			for b.Loop() {
				if _, err := c.Encode(dst, gaps); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

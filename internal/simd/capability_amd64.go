//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	hasAVX2 = cpu.X86.HasAVX2
	hasAVX512 = cpu.X86.HasAVX512F
	initCapabilities()
}

package simd

import (
	"os"
	"runtime"
	"strings"
)

// Kind identifies a kernel implementation family.
type Kind uint8

const (
	// Generic is the scalar pure Go implementation.
	Generic Kind = iota
	// Lanes4 processes 4-lane blocks (128-bit vector width class).
	Lanes4
	// Lanes8 processes 8-lane blocks (256-bit vector width class).
	Lanes8
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case Generic:
		return "generic"
	case Lanes4:
		return "lanes4"
	case Lanes8:
		return "lanes8"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind value.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "lanes4":
		return Lanes4, true
	case "lanes8":
		return Lanes8, true
	default:
		return Generic, false
	}
}

// Package-level state - initialized once at package init.
// No mutex needed: Go guarantees init() runs before any other code.
var (
	// activeKind is the selected kernel family.
	activeKind Kind

	// hasOverride is true if DOCPACK_SIMD was set.
	hasOverride bool

	// CPU feature flags (set by platform-specific init)
	hasASIMD  bool // ARM64 NEON
	hasSVE2   bool // ARM64 SVE2
	hasAVX2   bool // x86-64 AVX2
	hasAVX512 bool // x86-64 AVX-512 Foundation
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	// Check for environment override
	if override := os.Getenv("DOCPACK_SIMD"); override != "" {
		if kind, ok := ParseKind(override); ok {
			hasOverride = true
			activeKind = kind
			initKernels()
			return
		}
		// Invalid override - fall through to auto-detection
	}

	activeKind = selectBestKind()
	initKernels()
}

// selectBestKind chooses the optimal kernel family for the current platform.
func selectBestKind() Kind {
	switch runtime.GOARCH {
	case "arm64":
		if hasSVE2 || hasASIMD {
			return Lanes4
		}
		return Generic
	case "amd64":
		if hasAVX512 || hasAVX2 {
			return Lanes8
		}
		return Lanes4
	default:
		return Generic
	}
}

// ActiveKind returns the currently active kernel family.
func ActiveKind() Kind {
	return activeKind
}

// IsOverridden returns true if DOCPACK_SIMD was set.
func IsOverridden() bool {
	return hasOverride
}

// HasAVX2 returns true if x86-64 AVX2 is available.
func HasAVX2() bool {
	return hasAVX2
}

// HasASIMD returns true if ARM64 NEON is available.
func HasASIMD() bool {
	return hasASIMD
}

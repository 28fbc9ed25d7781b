// Package pool provides buffer pools for zero-allocation encode/decode paths.
// Uses sync.Pool for automatic memory reuse; a buffer obtained from the pool
// is exclusively owned by the caller until it is returned.
package pool

import "sync"

const (
	// DefaultUint32Cap is the initial capacity for pooled uint32 buffers.
	// Sized for a typical postings block so most calls avoid reallocation.
	DefaultUint32Cap = 4096

	// DefaultByteCap is the initial capacity for pooled byte buffers.
	DefaultByteCap = 32 << 10
)

// Pools store pointers to slices so Put does not allocate a header box.
var (
	uint32Pool = sync.Pool{
		New: func() any {
			buf := make([]uint32, 0, DefaultUint32Cap)
			return &buf
		},
	}

	bytePool = sync.Pool{
		New: func() any {
			buf := make([]byte, 0, DefaultByteCap)
			return &buf
		},
	}
)

// GetUint32 returns a pooled buffer with length n. Contents are unspecified.
func GetUint32(n int) *[]uint32 {
	p := uint32Pool.Get().(*[]uint32)
	if cap(*p) < n {
		*p = make([]uint32, n)
	}
	*p = (*p)[:n]
	return p
}

// PutUint32 returns a buffer obtained from GetUint32 to the pool.
// The caller must not retain the slice afterwards.
func PutUint32(p *[]uint32) {
	if p == nil {
		return
	}
	*p = (*p)[:0]
	uint32Pool.Put(p)
}

// GetBytes returns a pooled byte buffer with length n. Contents are unspecified.
func GetBytes(n int) *[]byte {
	p := bytePool.Get().(*[]byte)
	if cap(*p) < n {
		*p = make([]byte, n)
	}
	*p = (*p)[:n]
	return p
}

// PutBytes returns a buffer obtained from GetBytes to the pool.
// The caller must not retain the slice afterwards.
func PutBytes(p *[]byte) {
	if p == nil {
		return
	}
	*p = (*p)[:0]
	bytePool.Put(p)
}

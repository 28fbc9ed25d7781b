package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUint32Length(t *testing.T) {
	p := GetUint32(100)
	defer PutUint32(p)

	require.Len(t, *p, 100)
	assert.GreaterOrEqual(t, cap(*p), 100)
}

func TestGetUint32GrowsBeyondDefault(t *testing.T) {
	p := GetUint32(DefaultUint32Cap * 4)
	defer PutUint32(p)

	require.Len(t, *p, DefaultUint32Cap*4)
}

func TestGetBytesLength(t *testing.T) {
	p := GetBytes(1 << 16)
	defer PutBytes(p)

	require.Len(t, *p, 1<<16)
}

func TestPutNilIsSafe(t *testing.T) {
	PutUint32(nil)
	PutBytes(nil)
}

func TestConcurrentGetPut(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				p := GetUint32(seed + i%128)
				for j := range *p {
					(*p)[j] = uint32(seed)
				}
				for j := range *p {
					if (*p)[j] != uint32(seed) {
						t.Errorf("buffer shared across goroutines")
						return
					}
				}
				PutUint32(p)
			}
		}(g)
	}
	wg.Wait()
}

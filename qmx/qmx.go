package qmx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"

	"github.com/hupe1980/docpack/internal/pool"
)

var (
	// ErrCapacity is returned when the destination buffer cannot hold the
	// encoded stream. Recoverable: resize to Bound and retry.
	ErrCapacity = errors.New("qmx: output buffer too small")

	// ErrCorrupt is returned when a compressed stream is truncated or
	// malformed. Not recoverable for the affected block.
	ErrCorrupt = errors.New("qmx: compressed stream corrupt")
)

const (
	// groupLanes is the number of values packed per group, matching a
	// 128-bit vector register of uint32 lanes.
	groupLanes = 4

	// maxWidthCode is the largest valid selector width code.
	maxWidthCode = 6

	// exceptionBytes is the full-width size of one exception value.
	exceptionBytes = 4
)

// widthBits maps a selector width code to bits per lane.
var widthBits = [maxWidthCode + 1]uint{0, 1, 2, 4, 8, 16, 32}

// payloadBytes maps a selector width code to the packed payload size of one
// group: ceil(4*width/8).
var payloadBytes = [maxWidthCode + 1]int{0, 1, 1, 2, 4, 8, 16}

var le = binary.LittleEndian

// Bound returns a buffer size guaranteed to hold the encoding of any
// n-element sequence, regardless of value distribution. The real worst case
// is 17 bytes per 4-lane group; the 8n+512 shape keeps a wide safety margin
// for the selector and exception overhead.
func Bound(n int) int {
	return 8*n + 512
}

// selectWidth picks the width code minimizing the encoded size of one group:
// packed payload plus 4 bytes per exception lane. Ties go to the narrower
// width, which keeps the choice deterministic. Lanes at index >= active are
// zero padding and never count as exceptions.
func selectWidth(v *[groupLanes]uint32, active int) (widthCode int, excMask uint8) {
	bestCost := -1
	for wc := 0; wc <= maxWidthCode; wc++ {
		w := widthBits[wc]
		var mask uint8
		cost := payloadBytes[wc]
		for lane := 0; lane < active; lane++ {
			if uint(bits.Len32(v[lane])) > w {
				mask |= 1 << lane
				cost += exceptionBytes
			}
		}
		if bestCost < 0 || cost < bestCost {
			bestCost = cost
			widthCode = wc
			excMask = mask
		}
	}
	return widthCode, excMask
}

// packGroup writes one group's packed payload. Exception lanes are packed as
// zero so unpacking stays uniform across lanes.
func packGroup(dst []byte, v *[groupLanes]uint32, widthCode int, excMask uint8) {
	w := widthBits[widthCode]
	if w == 0 {
		return
	}
	if w == 32 {
		for lane := 0; lane < groupLanes; lane++ {
			le.PutUint32(dst[lane*4:], v[lane])
		}
		return
	}

	laneMask := uint64(1)<<w - 1
	var acc uint64
	for lane := 0; lane < groupLanes; lane++ {
		if excMask&(1<<lane) != 0 {
			continue
		}
		acc |= (uint64(v[lane]) & laneMask) << (uint(lane) * w)
	}
	for i := 0; i < payloadBytes[widthCode]; i++ {
		dst[i] = byte(acc >> (8 * i))
	}
}

// measure computes the exact encoded size of src and the total number of
// exception lanes, without writing anything.
func measure(src []uint32) (total, exceptions int) {
	var v [groupLanes]uint32
	for i := 0; i < len(src); i += groupLanes {
		active := len(src) - i
		if active > groupLanes {
			active = groupLanes
		}
		for lane := 0; lane < groupLanes; lane++ {
			if lane < active {
				v[lane] = src[i+lane]
			} else {
				v[lane] = 0
			}
		}
		wc, mask := selectWidth(&v, active)
		total += 1 + payloadBytes[wc]
		exceptions += bits.OnesCount8(mask)
	}
	return total + exceptions*exceptionBytes, exceptions
}

// Encode compresses src into dst and returns the number of bytes written.
// It fails with ErrCapacity when dst is smaller than the exact encoded size;
// nothing is written in that case. Encode never writes past dst.
func Encode(dst []byte, src []uint32) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	need, exceptions := measure(src)
	if need > len(dst) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrCapacity, need, len(dst))
	}

	excBuf := pool.GetBytes(exceptions * exceptionBytes)
	defer pool.PutBytes(excBuf)
	exc := (*excBuf)[:0]

	var v [groupLanes]uint32
	pos := 0
	for i := 0; i < len(src); i += groupLanes {
		active := len(src) - i
		if active > groupLanes {
			active = groupLanes
		}
		for lane := 0; lane < groupLanes; lane++ {
			if lane < active {
				v[lane] = src[i+lane]
			} else {
				v[lane] = 0
			}
		}

		wc, mask := selectWidth(&v, active)
		dst[pos] = byte(wc)<<4 | mask
		pos++
		packGroup(dst[pos:], &v, wc, mask)
		pos += payloadBytes[wc]

		for lane := 0; lane < active; lane++ {
			if mask&(1<<lane) != 0 {
				exc = le.AppendUint32(exc, v[lane])
			}
		}
	}

	pos += copy(dst[pos:], exc)
	return pos, nil
}

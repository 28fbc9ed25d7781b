package qmx

import (
	"fmt"

	"github.com/hupe1980/docpack/internal/pool"
)

// Decode decompresses src into dst, producing exactly len(dst) integers.
// The stream must contain exactly the groups and exception list for that
// count; anything truncated, malformed, or trailing fails with ErrCorrupt.
// Decode never reads past src and leaves dst unspecified on failure.
func Decode(dst []uint32, src []byte) error {
	if len(dst) == 0 {
		if len(src) != 0 {
			return fmt.Errorf("%w: %d trailing bytes after empty block", ErrCorrupt, len(src))
		}
		return nil
	}

	idxBuf := pool.GetUint32(0)
	defer pool.PutUint32(idxBuf)
	excIdx := (*idxBuf)[:0]

	n := len(dst)
	pos := 0
	for i := 0; i < n; i += groupLanes {
		if pos >= len(src) {
			return fmt.Errorf("%w: truncated selector at offset %d", ErrCorrupt, pos)
		}
		sel := src[pos]
		wc := int(sel >> 4)
		mask := sel & 0x0f
		if wc > maxWidthCode {
			return fmt.Errorf("%w: unknown width code %d at offset %d", ErrCorrupt, wc, pos)
		}

		active := n - i
		if active > groupLanes {
			active = groupLanes
		}
		if mask>>active != 0 {
			return fmt.Errorf("%w: exception bit on padding lane at offset %d", ErrCorrupt, pos)
		}

		pb := payloadBytes[wc]
		if pos+1+pb > len(src) {
			return fmt.Errorf("%w: truncated payload at offset %d", ErrCorrupt, pos)
		}
		if active < groupLanes && !paddingZero(src[pos+1:pos+1+pb], wc, active) {
			return fmt.Errorf("%w: nonzero padding lane at offset %d", ErrCorrupt, pos)
		}
		unpackGroup(dst[i:i+active], src[pos+1:pos+1+pb], wc)
		pos += 1 + pb

		for lane := 0; lane < active; lane++ {
			if mask&(1<<lane) != 0 {
				excIdx = append(excIdx, uint32(i+lane))
			}
		}
	}

	if rem := len(src) - pos; rem != len(excIdx)*exceptionBytes {
		return fmt.Errorf("%w: exception list is %d bytes, expected %d", ErrCorrupt, len(src)-pos, len(excIdx)*exceptionBytes)
	}
	for _, idx := range excIdx {
		dst[idx] = le.Uint32(src[pos:])
		pos += exceptionBytes
	}

	return nil
}

// unpackGroup reverses packGroup for the active lanes of one group.
// Unpacking is uniform per lane: shift, mask, store. Exception lanes come out
// as zero and are patched afterwards from the exception list.
func unpackGroup(dst []uint32, payload []byte, widthCode int) {
	w := widthBits[widthCode]
	if w == 0 {
		clear(dst)
		return
	}
	if w == 32 {
		for lane := range dst {
			dst[lane] = le.Uint32(payload[lane*4:])
		}
		return
	}

	var acc uint64
	for i, b := range payload {
		acc |= uint64(b) << (8 * i)
	}
	laneMask := uint64(1)<<w - 1
	for lane := range dst {
		dst[lane] = uint32((acc >> (uint(lane) * w)) & laneMask)
	}
}

// paddingZero reports whether every lane at index >= active unpacks to zero.
// The encoder always zero-pads the tail group, so nonzero padding means the
// stream disagrees with the declared count.
func paddingZero(payload []byte, widthCode, active int) bool {
	w := widthBits[widthCode]
	if w == 0 {
		return true
	}
	if w == 32 {
		for _, b := range payload[active*4:] {
			if b != 0 {
				return false
			}
		}
		return true
	}
	var acc uint64
	for i, b := range payload {
		acc |= uint64(b) << (8 * i)
	}
	return acc>>(uint(active)*w) == 0
}

// EncodedSize returns the exact number of bytes Encode will produce for src.
func EncodedSize(src []uint32) int {
	if len(src) == 0 {
		return 0
	}
	total, _ := measure(src)
	return total
}

// exceptionCount is used by tests to assert the outlier path is exercised.
func exceptionCount(src []uint32) int {
	_, exceptions := measure(src)
	return exceptions
}

package codec

import "encoding/binary"

var le = binary.LittleEndian

// putWords serializes values as little-endian 32-bit words into dst.
// dst must have length 4*len(values).
func putWords(dst []byte, values []uint32) {
	for i, v := range values {
		le.PutUint32(dst[i*4:], v)
	}
}

// getWords deserializes little-endian 32-bit words from src into dst.
// src must have length 4*len(dst).
func getWords(dst []uint32, src []byte) {
	for i := range dst {
		dst[i] = le.Uint32(src[i*4:])
	}
}

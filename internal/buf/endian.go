// Package buf contains helpers for endian-safe decoding routines.
package buf

import "encoding/binary"

// Reversed returns a copy of b with its bytes in reverse order. The
// dissector uses this to decode a multi-byte primitive whose peer byte
// order disagrees with the host's: the spec's cursor rule is "copy bytes
// reversed into the scalar slot" rather than a byte-order-tagged read.
func Reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// U16LE reads a little-endian uint16 from the first two bytes of b. Returns
// 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32LE reads a little-endian uint32 from the first four bytes of b.
// Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U16BE reads a big-endian uint16 from the first two bytes of b. Returns 0
// when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// U32BE reads a big-endian uint32 from the first four bytes of b. Returns 0
// when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

package steg

import (
	"errors"
	"fmt"
)

// terminatorLen is the length of the end-of-payload marker in bits.
const terminatorLen = 16

// terminator is the literal bit pattern 1111111111111110 appended after
// the message bits. Extraction scans for its first occurrence; it is not
// a length prefix.
var terminator = [terminatorLen]uint8{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0}

// ErrCharOutOfRange reports a message character whose code point does
// not fit in a single byte and therefore cannot be framed.
var ErrCharOutOfRange = errors.New("message character outside single-byte range")

// payloadBits frames a message for embedding: each character becomes its
// 8-bit MSB-first code point, and the terminator pattern is appended.
//
// Characters are Unicode code points restricted to 0-255. Anything
// larger fails with ErrCharOutOfRange rather than being truncated into
// a malformed byte.
func payloadBits(message string) ([]uint8, error) {
	bits := make([]uint8, 0, 8*len(message)+terminatorLen)
	pos := 0
	for _, r := range message {
		if r > 0xFF {
			return nil, fmt.Errorf("%w: %q at index %d", ErrCharOutOfRange, r, pos)
		}
		b := uint8(r)
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (b>>uint(shift))&1)
		}
		pos++
	}
	bits = append(bits, terminator[:]...)
	return bits, nil
}

// findTerminator returns the index of the first occurrence of the
// terminator pattern in bits, or -1 if the pattern never appears.
func findTerminator(bits []uint8) int {
	for i := 0; i+terminatorLen <= len(bits); i++ {
		match := true
		for j := 0; j < terminatorLen; j++ {
			if bits[i+j] != terminator[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// bitsToMessage decodes MSB-first 8-bit groups into a message string.
// An incomplete trailing group is ignored; grids written by Embed never
// produce one, but arbitrary input may.
func bitsToMessage(bits []uint8) string {
	runes := make([]rune, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var b uint8
		for j := 0; j < 8; j++ {
			b = b<<1 | bits[i+j]
		}
		runes = append(runes, rune(b))
	}
	return string(runes)
}

// withLSB returns v with its least-significant bit forced to bit (0 or
// 1). The upper seven bits are unchanged.
func withLSB(v, bit uint8) uint8 {
	return v&^1 | bit
}

// Package steg implements reversible least-significant-bit message
// embedding over an in-memory pixel grid.
//
// The package operates on Grid, a mode-tagged, geometry-tagged pixel
// buffer that presents grayscale and multi-channel images as one flat,
// bit-addressable channel stream. Embed writes a message's bits into the
// channel LSBs in row-major scan order; Extract reads the LSBs back and
// recovers the message. Both are pure functions: neither mutates its
// input, holds state, or performs I/O, so they are safe to call
// concurrently on independent grids.
//
// # Wire Format
//
// A message is framed as the concatenation of each character's 8-bit
// MSB-first code point (characters must fit in a single byte, 0-255),
// followed by the 16-bit terminator pattern 1111111111111110. The
// terminator is a literal bit pattern, not a length prefix: extraction
// scans the LSB stream for its first occurrence and decodes everything
// before it.
//
// # Capacity
//
// A grid supplies one bit slot per channel value, so capacity is
// width * height * channels bits. When the framed payload exceeds
// capacity, Embed writes as many bits as fit and reports the condition
// through EmbedResult.Truncated rather than failing; a truncated grid
// usually has no complete terminator, so Extract reports no message.
//
// # Error Handling
//
// Absence of a message is an expected outcome, not an error: Extract
// signals it with ExtractResult.Found. Errors are reserved for malformed
// construction input (ErrMalformedPixel) and messages containing
// characters that cannot be encoded in one byte (ErrCharOutOfRange).
package steg

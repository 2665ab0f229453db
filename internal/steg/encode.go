package steg

// EmbedResult contains the stego grid produced by Embed along with
// capacity accounting for the operation.
type EmbedResult struct {
	// Grid is the output grid: same mode and geometry as the input,
	// with payload bits written into channel LSBs in scan order.
	Grid *Grid `json:"-"`

	// Truncated is true when the framed payload exceeded the grid's bit
	// capacity. The bits that fit were written; the terminator may be
	// partial or absent, so the message is usually not recoverable.
	Truncated bool `json:"truncated"`

	// BitsWritten is the number of payload bits actually embedded.
	BitsWritten int `json:"bits_written"`

	// CapacityBits is the grid's total bit capacity.
	CapacityBits int `json:"capacity_bits"`
}

// Embed hides a message in the grid's channel LSBs.
//
// The message is framed by payloadBits (8-bit MSB-first characters plus
// the 16-bit terminator) and written one bit per channel value, walking
// pixels in row-major scan order and channels in declared order within
// each pixel. Channels beyond the payload are copied unchanged; no
// channel's upper seven bits are ever touched. The input grid is not
// modified.
//
// A message needs 8*len(message)+16 bits of capacity. If the grid is
// smaller, the overflow bits are dropped and the result is flagged
// Truncated; this mirrors the historical behavior and is reported, not
// an error. The only error condition is a message character whose code
// point exceeds 255 (ErrCharOutOfRange).
func Embed(g *Grid, message string) (*EmbedResult, error) {
	bits, err := payloadBits(message)
	if err != nil {
		return nil, err
	}

	out := g.Clone()
	n := len(bits)
	if n > len(out.data) {
		n = len(out.data)
	}
	for i := 0; i < n; i++ {
		out.data[i] = withLSB(out.data[i], bits[i])
	}

	return &EmbedResult{
		Grid:         out,
		Truncated:    len(bits) > out.BitCount(),
		BitsWritten:  n,
		CapacityBits: out.BitCount(),
	}, nil
}

package steg

// ExtractResult contains the outcome of scanning a grid for an embedded
// message.
type ExtractResult struct {
	// Message is the recovered text. Empty when Found is false, and
	// also for a successfully extracted empty message; check Found to
	// tell the two apart.
	Message string `json:"message"`

	// Found is false when no terminator pattern occurs in the grid's
	// LSB stream. That is the expected outcome for images that never
	// went through Embed, not an error.
	Found bool `json:"found"`
}

// Extract recovers a message hidden by Embed.
//
// Every channel LSB is read in the same scan order Embed writes them,
// and the accumulated bit stream is searched for the first occurrence
// of the terminator pattern. The bits before it are decoded as 8-bit
// MSB-first characters; an incomplete trailing group is ignored. If the
// terminator never appears the result has Found set to false.
//
// Extract is pure: calling it repeatedly on the same grid yields the
// same result, and the grid is never modified.
func Extract(g *Grid) *ExtractResult {
	bits := make([]uint8, len(g.data))
	for i, v := range g.data {
		bits[i] = v & 1
	}

	end := findTerminator(bits)
	if end < 0 {
		return &ExtractResult{}
	}
	return &ExtractResult{Message: bitsToMessage(bits[:end]), Found: true}
}

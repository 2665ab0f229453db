package steg

import (
	"errors"
	"fmt"
)

// Mode identifies the channel layout of a Grid.
type Mode int

const (
	// Gray is a single intensity channel per pixel.
	Gray Mode = iota

	// Multi is an ordered tuple of channels per pixel (e.g. R, G, B).
	Multi
)

// String returns a short lowercase name for the mode.
func (m Mode) String() string {
	switch m {
	case Gray:
		return "gray"
	case Multi:
		return "multi"
	default:
		return "unknown"
	}
}

// ErrMalformedPixel reports pixel data whose length does not match the
// declared geometry and channel count.
var ErrMalformedPixel = errors.New("pixel data does not match declared channel count")

// Grid is a mode-tagged, geometry-tagged pixel buffer.
//
// Pixels are stored in row-major scan order with channels interleaved:
// channel c of pixel i lives at data[i*channels+c]. Each channel value
// is an 8-bit unsigned integer. A Grid is treated as an immutable
// snapshot once constructed; Embed returns a new Grid rather than
// modifying its input.
type Grid struct {
	mode     Mode
	width    int
	height   int
	channels int
	data     []uint8
}

// NewGray constructs a single-channel grid from row-major intensity
// values. The values slice is copied.
//
// Returns ErrMalformedPixel if len(values) != width*height.
func NewGray(width, height int, values []uint8) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid geometry %dx%d", width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d single-channel grid",
			ErrMalformedPixel, len(values), width, height)
	}
	data := make([]uint8, len(values))
	copy(data, values)
	return &Grid{mode: Gray, width: width, height: height, channels: 1, data: data}, nil
}

// NewMulti constructs a multi-channel grid from row-major,
// channel-interleaved values. The values slice is copied.
//
// Returns ErrMalformedPixel if channels < 1 or if len(values) does not
// equal width*height*channels.
func NewMulti(width, height, channels int, values []uint8) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid geometry %dx%d", width, height)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrMalformedPixel, channels)
	}
	if len(values) != width*height*channels {
		return nil, fmt.Errorf("%w: %d values for %dx%d grid with %d channels",
			ErrMalformedPixel, len(values), width, height, channels)
	}
	data := make([]uint8, len(values))
	copy(data, values)
	return &Grid{mode: Multi, width: width, height: height, channels: channels, data: data}, nil
}

// Mode returns the grid's channel layout tag.
func (g *Grid) Mode() Mode { return g.mode }

// Width returns the grid width in pixels.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in pixels.
func (g *Grid) Height() int { return g.height }

// Channels returns the number of channels per pixel (1 for Gray).
func (g *Grid) Channels() int { return g.channels }

// Pixels returns the number of pixels in the grid.
func (g *Grid) Pixels() int { return g.width * g.height }

// BitCount returns the grid's embedding capacity in bits: one LSB slot
// per channel value.
func (g *Grid) BitCount() int { return len(g.data) }

// Channel returns the value of channel c of the pixel at scan-order
// index i. Indices are not bounds-checked beyond the slice access.
func (g *Grid) Channel(i, c int) uint8 {
	return g.data[i*g.channels+c]
}

// PixelChannels returns the ordered channel values of the pixel at
// scan-order index i as a fresh slice: one element for Gray grids,
// the full tuple for Multi grids.
func (g *Grid) PixelChannels(i int) []uint8 {
	out := make([]uint8, g.channels)
	copy(out, g.data[i*g.channels:(i+1)*g.channels])
	return out
}

// Values returns a copy of the grid's flat channel data in scan order.
func (g *Grid) Values() []uint8 {
	out := make([]uint8, len(g.data))
	copy(out, g.data)
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]uint8, len(g.data))
	copy(data, g.data)
	return &Grid{mode: g.mode, width: g.width, height: g.height, channels: g.channels, data: data}
}

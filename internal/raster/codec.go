package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"

	"golang.org/x/image/bmp"

	"github.com/pixelveil/pixelveil/internal/steg"
)

// SourceInfo describes the image a grid was built from.
type SourceInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected source encoding: "png", "jpeg", "gif", or
	// "bmp". Detection is based on the file's magic bytes.
	Format string `json:"format"`

	// Mode is the grid layout the image normalized to: "gray" or "multi".
	Mode string `json:"mode"`

	// Channels is the channel count per pixel after normalization.
	Channels int `json:"channels"`
}

// Decoded bundles the results of ingesting an image buffer.
type Decoded struct {
	// Grid is the normalized pixel grid for embedding or extraction.
	Grid *steg.Grid

	// Image is the decoded source image, kept for analysis.
	Image image.Image

	// Info describes the source encoding and resulting layout.
	Info SourceInfo
}

// Decode ingests an encoded image buffer and normalizes it into a pixel
// grid. PNG, JPEG, GIF, and BMP inputs are accepted; anything the
// registered decoders reject produces an error without touching the
// core.
func Decode(data []byte) (*Decoded, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	grid, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to build pixel grid: %w", err)
	}

	return &Decoded{
		Grid:  grid,
		Image: img,
		Info: SourceInfo{
			Width:    grid.Width(),
			Height:   grid.Height(),
			Format:   format,
			Mode:     grid.Mode().String(),
			Channels: grid.Channels(),
		},
	}, nil
}

// EncodePNG renders a grid as a PNG buffer. PNG is lossless, so every
// channel value (and therefore every embedded LSB) survives a decode of
// the output byte for byte.
func EncodePNG(g *steg.Grid) ([]byte, error) {
	img, err := ToImage(g)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeBMP renders a grid as an uncompressed BMP buffer. Like PNG it
// preserves channel values exactly.
func EncodeBMP(g *steg.Grid) ([]byte, error) {
	img, err := ToImage(g)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode BMP: %w", err)
	}
	return buf.Bytes(), nil
}

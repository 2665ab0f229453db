package analysis

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

// PlaneResult contains an amplified LSB-plane render encoded as base64
// PNG. Each output channel is 255 where the corresponding source
// channel's LSB is 1, and 0 otherwise.
type PlaneResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// LSBPlane renders the least-significant bit plane of an image at full
// amplitude so it can be reviewed visually. Embedded payload regions
// show up as noise; untouched regions keep the faint structure of the
// source image's low-order bits.
func LSBPlane(img image.Image) (*PlaneResult, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("cannot render LSB plane of empty %dx%d image", w, h)
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			i := out.PixOffset(x, y)
			out.Pix[i] = uint8(r>>8&1) * 255
			out.Pix[i+1] = uint8(g>>8&1) * 255
			out.Pix[i+2] = uint8(b>>8&1) * 255
			out.Pix[i+3] = 255
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode LSB plane: %w", err)
	}

	return &PlaneResult{
		Width:       w,
		Height:      h,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

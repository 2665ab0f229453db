package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/pixelveil/pixelveil/internal/steg"
)

// FromImage flattens a decoded image into a pixel grid.
//
// Grayscale images map to a Gray grid so their full capacity is one bit
// per pixel. That covers *image.Gray as well as paletted images whose
// palette is entirely neutral gray, which is how 8-bit BMP output comes
// back from a decode. Every other color model is normalized to NRGBA
// and mapped to a three-channel RGB grid; the alpha channel is dropped,
// matching the layouts the embedding scheme defines. Color-paletted and
// 16-bit sources lose their indirection or extra depth during
// normalization, which is acceptable for a cover image.
func FromImage(img image.Image) (*steg.Grid, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		values := make([]uint8, w*h)
		for y := 0; y < h; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
			copy(values[y*w:(y+1)*w], row)
		}
		return steg.NewGray(w, h, values)
	}

	if pal, ok := img.(*image.Paletted); ok {
		if levels, allGray := grayLevels(pal.Palette); allGray {
			values := make([]uint8, w*h)
			for y := 0; y < h; y++ {
				row := pal.Pix[y*pal.Stride : y*pal.Stride+w]
				for x, idx := range row {
					values[y*w+x] = levels[idx]
				}
			}
			return steg.NewGray(w, h, values)
		}
	}

	nrgba := imaging.Clone(img)
	values := make([]uint8, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := nrgba.Pix[y*nrgba.Stride+x*4:]
			dst := values[(y*w+x)*3:]
			dst[0] = src[0]
			dst[1] = src[1]
			dst[2] = src[2]
		}
	}
	return steg.NewMulti(w, h, 3, values)
}

// grayLevels reports whether every palette entry is a neutral gray and
// returns the 8-bit level per palette index.
func grayLevels(p color.Palette) ([]uint8, bool) {
	levels := make([]uint8, len(p))
	for i, c := range p {
		r, g, b, _ := c.RGBA()
		if r != g || g != b {
			return nil, false
		}
		levels[i] = uint8(r >> 8)
	}
	return levels, true
}

// ToImage materializes a grid back into an image suitable for lossless
// encoding: *image.Gray for single-channel grids, fully opaque
// *image.NRGBA for three-channel grids.
//
// Grids with a channel count other than 1 or 3 cannot be represented as
// a standard raster and produce an error.
func ToImage(g *steg.Grid) (image.Image, error) {
	w, h := g.Width(), g.Height()
	values := g.Values()

	switch g.Channels() {
	case 1:
		out := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+w], values[y*w:(y+1)*w])
		}
		return out, nil
	case 3:
		out := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				src := values[(y*w+x)*3:]
				dst := out.Pix[y*out.Stride+x*4:]
				dst[0] = src[0]
				dst[1] = src[1]
				dst[2] = src[2]
				dst[3] = 0xFF
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot render %d-channel grid as an image", g.Channels())
	}
}

package analysis

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DistortionResult quantifies the visual difference between a cover
// image and its stego counterpart.
type DistortionResult struct {
	// MeanLabDistance is the average perceptual (CIE Lab) distance per
	// pixel. LSB embedding typically stays well below 0.01.
	MeanLabDistance float64 `json:"mean_lab_distance"`

	// MaxLabDistance is the largest per-pixel Lab distance.
	MaxLabDistance float64 `json:"max_lab_distance"`

	// PixelsChanged counts pixels that differ in any channel.
	PixelsChanged int `json:"pixels_changed"`

	// TotalPixels is the number of pixels compared.
	TotalPixels int `json:"total_pixels"`
}

// Distortion measures how far a stego image has drifted from its cover.
//
// Distances are computed in CIE Lab space, which approximates human
// perception better than raw channel deltas. Both images must have the
// same geometry.
func Distortion(cover, stego image.Image) (*DistortionResult, error) {
	cb, sb := cover.Bounds(), stego.Bounds()
	if cb.Dx() != sb.Dx() || cb.Dy() != sb.Dy() {
		return nil, fmt.Errorf("geometry mismatch: cover %dx%d, stego %dx%d",
			cb.Dx(), cb.Dy(), sb.Dx(), sb.Dy())
	}

	w, h := cb.Dx(), cb.Dy()
	total := w * h
	if total == 0 {
		return nil, fmt.Errorf("cannot compare empty images")
	}

	var sum, max float64
	changed := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cr, cg, cbl, _ := cover.At(x+cb.Min.X, y+cb.Min.Y).RGBA()
			sr, sg, sbl, _ := stego.At(x+sb.Min.X, y+sb.Min.Y).RGBA()

			c1 := colorful.Color{R: float64(cr>>8) / 255, G: float64(cg>>8) / 255, B: float64(cbl>>8) / 255}
			c2 := colorful.Color{R: float64(sr>>8) / 255, G: float64(sg>>8) / 255, B: float64(sbl>>8) / 255}

			d := c1.DistanceLab(c2)
			sum += d
			if d > max {
				max = d
			}
			if cr != sr || cg != sg || cbl != sbl {
				changed++
			}
		}
	}

	return &DistortionResult{
		MeanLabDistance: math.Round(sum/float64(total)*1e6) / 1e6,
		MaxLabDistance:  math.Round(max*1e6) / 1e6,
		PixelsChanged:   changed,
		TotalPixels:     total,
	}, nil
}

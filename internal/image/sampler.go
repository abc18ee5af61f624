package image

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/jmylchreest/nightowl/internal/colour"
)

// DefaultSampleSize is the edge length images are resized to before
// sampling.
const DefaultSampleSize = 200

// Flatten composites img onto an opaque bg so that transparent pixels take
// the background colour instead of black.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	if bg == nil {
		bg = color.White
	}
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// Sampler reduces an image to a fixed grid of colour samples.
type Sampler struct {
	// Size is the edge length of the resized image.
	Size int
	// Background replaces transparency. Nil means white.
	Background color.Color
}

// NewSampler creates a Sampler with the default size and white background.
func NewSampler() *Sampler {
	return &Sampler{Size: DefaultSampleSize}
}

// Sample flattens alpha, resizes to Size x Size with a box filter and
// returns the pixels in row-major order.
func (s *Sampler) Sample(img image.Image) ([]colour.RGB, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("cannot sample an empty image")
	}
	size := s.Size
	if size <= 0 {
		size = DefaultSampleSize
	}

	resized := imaging.Resize(Flatten(img, s.Background), size, size, imaging.Box)

	samples := make([]colour.RGB, 0, size*size)
	for y := range size {
		for x := range size {
			i := resized.PixOffset(x, y)
			samples = append(samples, colour.RGB{
				R: resized.Pix[i],
				G: resized.Pix[i+1],
				B: resized.Pix[i+2],
			})
		}
	}
	return samples, nil
}

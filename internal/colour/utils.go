package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Metrics holds the derived properties of one colour.
type Metrics struct {
	Brightness float64
	Saturation float64
	Hue        float64
}

// Analyse computes brightness, saturation and hue for c.
func Analyse(c RGB) Metrics {
	h, s, _ := c.colorful().Hsv()
	return Metrics{
		Brightness: Brightness(c),
		Saturation: s,
		Hue:        h,
	}
}

// Brightness returns perceived brightness using the Rec. 601 luma weights.
// Returns a value between 0 (black) and 1 (white).
func Brightness(c RGB) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

// Saturation returns HSV saturation in [0, 1].
func Saturation(c RGB) float64 {
	_, s, _ := c.colorful().Hsv()
	return s
}

// Hue returns HSV hue in degrees, [0, 360). Neutral colours report 0.
func Hue(c RGB) float64 {
	h, _, _ := c.colorful().Hsv()
	return h
}

// IsGrayscale reports whether c is too neutral to serve as an accent.
func IsGrayscale(c RGB, threshold float64) bool {
	return Saturation(c) < threshold
}

// PerceptualDistance is the CIE76 distance between a and b in L*a*b* space
// (D65, L in [0, 1]). Black to white is 1.0.
func PerceptualDistance(a, b RGB) float64 {
	return a.colorful().DistanceLab(b.colorful())
}

// RotateHue rotates the HSV hue of c by degrees, leaving saturation and value.
func RotateHue(c RGB, degrees float64) RGB {
	h, s, v := c.colorful().Hsv()
	return fromColorful(colorful.Hsv(normaliseHue(h+degrees), s, v))
}

// FromHSV builds a colour from hue (degrees), saturation and value.
func FromHSV(h, s, v float64) RGB {
	return fromColorful(colorful.Hsv(normaliseHue(h), clamp01(s), clamp01(v)))
}

// ToHSV returns hue (degrees), saturation and value of c.
func ToHSV(c RGB) (h, s, v float64) {
	return c.colorful().Hsv()
}

func (rgb RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func normaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

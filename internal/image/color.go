package imagepkg

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorRGB is an 8-bit per channel color without alpha.
type ColorRGB struct {
	R, G, B uint8
}

// Scale multiplies every channel by f, truncating toward zero the way
// 8-bit channel math does. f is expected to be within [0, 1].
func (c ColorRGB) Scale(f float64) ColorRGB {
	return ColorRGB{
		R: scaleChannel(c.R, f),
		G: scaleChannel(c.G, f),
		B: scaleChannel(c.B, f),
	}
}

// WithAlpha returns c as a non-premultiplied color with the given opacity.
func (c ColorRGB) WithAlpha(a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: scaleChannel(0xff, a)}
}

// Hex formats c as #rrggbb.
func (c ColorRGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func scaleChannel(v uint8, f float64) uint8 {
	s := float64(v) * f
	switch {
	case s <= 0:
		return 0
	case s >= 255:
		return 255
	}
	return uint8(s)
}

package imagepkg

import (
	"image"
	"image/color"
	"image/draw"
)

const (
	// The gradient's coordinate span starts lower than the painted
	// rectangle, so rows in [0.4h, 0.5h) get the transparent first stop.
	scrimFillTop      = 0.4
	scrimGradientFrom = 0.5
)

type gradientStop struct {
	pos   float64
	color ColorRGB
	alpha float64
}

// scrimStops builds the three stops of the bottom scrim from the theme.
func scrimStops(theme ColorRGB) []gradientStop {
	return []gradientStop{
		{pos: 0, color: theme, alpha: 0},
		{pos: 0.6, color: theme.Scale(0.5), alpha: 0.8},
		{pos: 1, color: theme.Scale(0.2), alpha: 1},
	}
}

// colorAt interpolates the stops at t, padding with the end stops outside
// [0, 1]. Channels and alpha are interpolated unpremultiplied and truncated.
func colorAt(stops []gradientStop, t float64) color.NRGBA {
	first, last := stops[0], stops[len(stops)-1]
	if t <= first.pos {
		return first.color.WithAlpha(first.alpha)
	}
	if t >= last.pos {
		return last.color.WithAlpha(last.alpha)
	}
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		if t > s1.pos {
			continue
		}
		f := (t - s0.pos) / (s1.pos - s0.pos)
		return color.NRGBA{
			R: lerp(s0.color.R, s1.color.R, f),
			G: lerp(s0.color.G, s1.color.G, f),
			B: lerp(s0.color.B, s1.color.B, f),
			A: scaleChannel(0xff, s0.alpha+(s1.alpha-s0.alpha)*f),
		}
	}
	return last.color.WithAlpha(last.alpha)
}

func lerp(a, b uint8, f float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*f
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// ApplyGradient paints the vertical scrim over the lower part of canvas.
// The gradient runs from 0.5h to h; the painted rectangle starts at 0.4h.
func ApplyGradient(canvas *image.RGBA, theme ColorRGB) {
	b := canvas.Bounds()
	h := float64(b.Dy())
	from, to := h*scrimGradientFrom, h
	if to <= from {
		return
	}
	stops := scrimStops(theme)

	for y := int(h * scrimFillTop); y < b.Dy(); y++ {
		c := colorAt(stops, (float64(y)+0.5-from)/(to-from))
		if c.A == 0 {
			continue
		}
		row := image.Rect(b.Min.X, b.Min.Y+y, b.Max.X, b.Min.Y+y+1)
		draw.Draw(canvas, row, image.NewUniform(c), image.Point{}, draw.Over)
	}
}

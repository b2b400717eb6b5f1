package imagepkg

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorRGBScale(t *testing.T) {
	c := ColorRGB{R: 255, G: 101, B: 3}
	assert.Equal(t, ColorRGB{R: 127, G: 50, B: 1}, c.Scale(0.5))
	assert.Equal(t, ColorRGB{R: 51, G: 20, B: 0}, c.Scale(0.2))
	assert.Equal(t, "#ff6503", c.Hex())
}

func TestScrimStops(t *testing.T) {
	stops := scrimStops(ColorRGB{R: 200, G: 100, B: 50})
	assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 0}, colorAt(stops, 0))
	assert.Equal(t, color.NRGBA{R: 100, G: 50, B: 25, A: 204}, colorAt(stops, 0.6))
	assert.Equal(t, color.NRGBA{R: 40, G: 20, B: 10, A: 255}, colorAt(stops, 1))

	// padded outside the span
	assert.Equal(t, colorAt(stops, 0), colorAt(stops, -0.2))
	assert.Equal(t, colorAt(stops, 1), colorAt(stops, 1.5))
}

func TestScrimAlphaMonotonic(t *testing.T) {
	stops := scrimStops(ColorRGB{R: 200, G: 100, B: 50})
	prev := -1
	for i := 0; i <= 100; i++ {
		a := int(colorAt(stops, float64(i)/100).A)
		assert.GreaterOrEqual(t, a, prev, "t=%.2f", float64(i)/100)
		prev = a
	}
}

func TestApplyGradient(t *testing.T) {
	canvas := solid(100, 200, color.White)
	ApplyGradient(canvas, ColorRGB{R: 200, G: 100, B: 50})

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	// above the fill rectangle and in [0.4h, 0.5h) nothing changes
	for _, y := range []int{0, 79, 80, 99} {
		assert.Equal(t, white, canvas.RGBAAt(50, y), "row %d", y)
	}

	top := canvas.RGBAAt(50, 100)
	mid := canvas.RGBAAt(50, 160)
	bottom := canvas.RGBAAt(50, 199)
	assert.Greater(t, brightness(top), brightness(mid))
	assert.Greater(t, brightness(mid), brightness(bottom))

	// near-opaque at the end stop
	assert.InDelta(t, 40, int(bottom.R), 2)
	assert.InDelta(t, 20, int(bottom.G), 2)
	assert.InDelta(t, 10, int(bottom.B), 2)

	// rows are uniform across the width
	assert.Equal(t, canvas.RGBAAt(0, 150), canvas.RGBAAt(99, 150))
}

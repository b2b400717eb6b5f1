package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

// stubMeasurer gives every rune a fixed share of the font size.
type stubMeasurer struct {
	em float64
}

func (s stubMeasurer) Measure(text string, spec FontSpec) float64 {
	return float64(utf8.RuneCountInString(text)) * spec.Size * s.em
}

// fixedMeasurer gives every rune the same width regardless of size.
type fixedMeasurer float64

func (f fixedMeasurer) Measure(text string, _ FontSpec) float64 {
	return float64(utf8.RuneCountInString(text)) * float64(f)
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func brightness(c color.RGBA) int {
	return int(c.R) + int(c.G) + int(c.B)
}

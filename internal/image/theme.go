package imagepkg

import (
	"image"
	"math"
)

const (
	// sampleBandRatio is the share of canvas height, measured from the
	// bottom, that the theme color is taken from.
	sampleBandRatio = 0.2
	sampleStride    = 10
)

// SampleDominantColor averages every tenth pixel of the bottom band of canvas.
// The sums are divided by the number of sampled pixels, not the band size.
func SampleDominantColor(canvas *image.RGBA) ColorRGB {
	b := canvas.Bounds()
	w, h := b.Dx(), b.Dy()
	sampleHeight := int(math.Floor(float64(h) * sampleBandRatio))
	total := w * sampleHeight
	if total <= 0 {
		return ColorRGB{}
	}

	top := b.Max.Y - sampleHeight
	var r, g, bl int
	for i := 0; i < total; i += sampleStride {
		off := canvas.PixOffset(b.Min.X+i%w, top+i/w)
		px := canvas.Pix[off : off+4 : off+4]
		r += int(px[0])
		g += int(px[1])
		bl += int(px[2])
	}

	n := int(math.Round(float64(total) / sampleStride))
	if n < 1 {
		n = 1
	}
	return ColorRGB{R: mean(r, n), G: mean(g, n), B: mean(bl, n)}
}

func mean(sum, n int) uint8 {
	v := sum / n
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// DefaultMaxDimension bounds each side of a canvas.
const DefaultMaxDimension = 8192

var errNonPositive = errors.New("dimensions must be positive")

// NewCanvas allocates a width x height canvas filled with opaque black.
// maxDim <= 0 disables the upper bound.
func NewCanvas(width, height, maxDim int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, &RenderSurfaceError{Stage: StageSurface, Width: width, Height: height, Err: errNonPositive}
	}
	if maxDim > 0 && (width > maxDim || height > maxDim) {
		return nil, &RenderSurfaceError{
			Stage:  StageSurface,
			Width:  width,
			Height: height,
			Err:    fmt.Errorf("exceeds limit of %d per side", maxDim),
		}
	}
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, xdraw.Src)
	return canvas, nil
}

// CoverCrop returns the centered region of a srcW x srcH source that fills
// a dstW x dstH canvas without distortion, in source pixel coordinates. One
// axis keeps the full source extent; the other is cropped equally on both
// sides. Fractional edges are widened to whole pixels.
func CoverCrop(srcW, srcH, dstW, dstH int) image.Rectangle {
	imgAspect := float64(srcW) / float64(srcH)
	targetAspect := float64(dstW) / float64(dstH)

	if imgAspect > targetAspect {
		cropW := float64(srcH) * float64(dstW) / float64(dstH)
		x0 := (float64(srcW) - cropW) / 2
		return image.Rect(int(math.Floor(x0)), 0, int(math.Ceil(x0+cropW)), srcH)
	}
	cropH := float64(srcW) * float64(dstH) / float64(dstW)
	y0 := (float64(srcH) - cropH) / 2
	return image.Rect(0, int(math.Floor(y0)), srcW, int(math.Ceil(y0+cropH)))
}

// CompositeBackground draws src over canvas using a cover fit. The source is
// cropped before scaling, so the work is bounded by the canvas size however
// elongated src is. Nothing is letterboxed.
func CompositeBackground(canvas *image.RGBA, src image.Image) {
	sb := src.Bounds()
	if sb.Empty() {
		return
	}
	cb := canvas.Bounds()
	sr := CoverCrop(sb.Dx(), sb.Dy(), cb.Dx(), cb.Dy()).Add(sb.Min).Intersect(sb)
	xdraw.CatmullRom.Scale(canvas, cb, src, sr, xdraw.Over, nil)
}

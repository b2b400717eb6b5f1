package imagepkg

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	titleSizeRatio       = 0.12
	titleMaxWidthRatio   = 0.9
	titleLineHeightRatio = 1.1
	titleBottomRatio     = 0.15
	// Titles longer than this many UTF-16 code units start one line higher,
	// on top of the shift for extra wrapped lines.
	longTitleChars = 15

	providerSizeRatio   = 0.05
	providerBottomRatio = 0.05

	titleShadowBlur = 10
	shadowOffsetY   = 4
	shadowAlpha     = 0.8
)

var (
	titleFill    = ColorRGB{R: 0xff, G: 0xff, B: 0xff}.WithAlpha(1)
	providerFill = ColorRGB{R: 0xff, G: 0xff, B: 0xff}.WithAlpha(0.7)
)

// Line is one laid out line of text. X is the left edge of the pen and
// Baseline the y of the alphabetic baseline, both in canvas pixels.
type Line struct {
	Text     string
	Width    float64
	X        float64
	Baseline float64
}

// Shadow is a drop shadow drawn beneath a text block.
type Shadow struct {
	Color   color.Color
	Blur    float64
	OffsetX int
	OffsetY int
}

// shadowFor is the black drop shadow under text drawn in fill. Its opacity
// is scaled by the fill's.
func shadowFor(fill color.NRGBA, blur float64) Shadow {
	return Shadow{
		Color:   ColorRGB{}.WithAlpha(shadowAlpha * float64(fill.A) / 0xff),
		Blur:    blur,
		OffsetY: shadowOffsetY,
	}
}

// TitleSpec is the title font for a canvas of the given width.
func TitleSpec(width int) FontSpec {
	return FontSpec{Weight: Bold, Size: math.Floor(float64(width) * titleSizeRatio)}
}

// ProviderSpec is the provider font for a canvas of the given width.
func ProviderSpec(width int) FontSpec {
	return FontSpec{Weight: Medium, Size: math.Floor(float64(width) * providerSizeRatio)}
}

// WrapTitle greedily breaks text on single spaces. A word joins the current
// line while the line plus the word and a trailing space measures at most
// maxWidth; otherwise the current line is committed and the word starts the
// next one. A single word wider than maxWidth stays unsplit. The last line is
// always committed, so empty text yields one empty line. Returned lines carry
// no trailing spaces.
func WrapTitle(text string, spec FontSpec, maxWidth float64, m Measurer) []string {
	words := strings.Split(text, " ")
	var lines []string
	line := ""
	for n, word := range words {
		candidate := line + word + " "
		if n > 0 && m.Measure(candidate, spec) > maxWidth {
			lines = append(lines, line)
			line = word + " "
			continue
		}
		line = candidate
	}
	lines = append(lines, line)

	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

// LayoutTitle upper-cases and wraps title for a width x height canvas. The
// last line sits at 0.85h; earlier lines stack upward by 1.1 x font size.
// Titles over longTitleChars characters are raised by one more line.
func LayoutTitle(title string, width, height int, m Measurer) []Line {
	spec := TitleSpec(width)
	lineHeight := spec.Size * titleLineHeightRatio

	y := float64(height) - float64(height)*titleBottomRatio
	if utf16Len(title) > longTitleChars {
		y -= lineHeight
	}

	wrapped := WrapTitle(strings.ToUpper(title), spec, float64(width)*titleMaxWidthRatio, m)
	y -= float64(len(wrapped)-1) * lineHeight

	lines := make([]Line, len(wrapped))
	for i, text := range wrapped {
		lines[i] = centered(text, spec, width, y+float64(i)*lineHeight, m)
	}
	return lines
}

// LayoutProvider places the upper-cased provider on a single line at 0.95h,
// independent of the title.
func LayoutProvider(provider string, width, height int, m Measurer) Line {
	spec := ProviderSpec(width)
	y := float64(height) - float64(height)*providerBottomRatio
	return centered(strings.ToUpper(provider), spec, width, y, m)
}

// utf16Len counts s in UTF-16 code units: runes outside the Basic
// Multilingual Plane count twice.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n++
		if r > 0xffff {
			n++
		}
	}
	return n
}

func centered(text string, spec FontSpec, width int, baseline float64, m Measurer) Line {
	w := m.Measure(text, spec)
	return Line{
		Text:     text,
		Width:    w,
		X:        float64(width)/2 - w/2,
		Baseline: baseline,
	}
}

// ApplyOverlayAndText paints the scrim seeded by theme, then the title block
// and the provider line, each over its own shadow.
func ApplyOverlayAndText(canvas *image.RGBA, theme ColorRGB, title, provider string, fonts *Fonts) error {
	ApplyGradient(canvas, theme)

	b := canvas.Bounds()
	w, h := b.Dx(), b.Dy()
	faces := newFaceSet(fonts)
	defer faces.Close()

	blocks := []struct {
		spec   FontSpec
		lines  func() []Line
		fill   color.Color
		shadow Shadow
	}{
		{
			spec:   TitleSpec(w),
			lines:  func() []Line { return LayoutTitle(title, w, h, faces) },
			fill:   titleFill,
			shadow: shadowFor(titleFill, titleShadowBlur),
		},
		{
			spec:   ProviderSpec(w),
			lines:  func() []Line { return []Line{LayoutProvider(provider, w, h, faces)} },
			fill:   providerFill,
			shadow: shadowFor(providerFill, 0),
		},
	}

	for _, blk := range blocks {
		if blk.spec.Size < 1 {
			continue
		}
		face, err := faces.face(blk.spec)
		if err != nil {
			return &RenderSurfaceError{Stage: StageTypeset, Width: w, Height: h, Err: err}
		}
		DrawTextBlock(canvas, blk.lines(), face, blk.fill, blk.shadow)
	}
	return nil
}

// DrawTextBlock renders lines with face in fill, over shadow. Empty lines
// are skipped.
func DrawTextBlock(canvas *image.RGBA, lines []Line, face font.Face, fill color.Color, shadow Shadow) {
	dots := make([]fixed.Point26_6, len(lines))
	var region image.Rectangle
	for i, l := range lines {
		if l.Text == "" {
			continue
		}
		dots[i] = fixed.Point26_6{X: toFixed(l.X), Y: toFixed(l.Baseline)}
		bb, _ := font.BoundString(face, l.Text)
		r := image.Rect(
			(dots[i].X + bb.Min.X).Floor(),
			(dots[i].Y + bb.Min.Y).Floor(),
			(dots[i].X + bb.Max.X).Ceil(),
			(dots[i].Y + bb.Max.Y).Ceil(),
		)
		region = region.Union(r)
	}
	if region.Empty() {
		return
	}

	// The mask lives in its own coordinates, padded so the blur has a
	// transparent border to spread into.
	region = region.Inset(-(int(math.Ceil(shadow.Blur)) + 2))
	mask := image.NewAlpha(image.Rect(0, 0, region.Dx(), region.Dy()))
	origin := fixed.P(region.Min.X, region.Min.Y)
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face}
	for i, l := range lines {
		if l.Text == "" {
			continue
		}
		d.Dot = dots[i].Sub(origin)
		d.DrawString(l.Text)
	}

	if shadow.Color != nil {
		var sm image.Image = mask
		if shadow.Blur > 0 {
			sm = blur.Gaussian(mask, shadow.Blur/2)
		}
		dr := region.Add(image.Pt(shadow.OffsetX, shadow.OffsetY))
		draw.DrawMask(canvas, dr, image.NewUniform(shadow.Color), image.Point{}, sm, sm.Bounds().Min, draw.Over)
	}
	draw.DrawMask(canvas, region, image.NewUniform(fill), image.Point{}, mask, image.Point{}, draw.Over)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

package imagepkg

import (
	"bytes"
	"errors"
	"image"
	"io"
	"log/slog"

	"github.com/disintegration/imaging"
)

const (
	DefaultWidth  = 1080
	DefaultHeight = 1920
)

// CompositionRequest is the input of one render. Source wins over Data;
// Data is decoded when Source is nil.
type CompositionRequest struct {
	Source   image.Image
	Data     []byte
	Title    string
	Provider string
	Width    int
	Height   int
}

// Result is a rendered canvas and the theme color sampled from it.
type Result struct {
	Image *image.RGBA
	Theme ColorRGB
}

// Compositor renders branded thumbnail cards. It holds no per-render state
// and is safe for concurrent use.
type Compositor struct {
	fonts  *Fonts
	maxDim int
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithFonts replaces the embedded Go fonts.
func WithFonts(f *Fonts) Option {
	return func(c *Compositor) { c.fonts = f }
}

// WithMaxDimension bounds each canvas side; n <= 0 removes the bound.
func WithMaxDimension(n int) Option {
	return func(c *Compositor) { c.maxDim = n }
}

// NewCompositor returns a Compositor using the embedded Go fonts unless
// WithFonts is given.
func NewCompositor(opts ...Option) (*Compositor, error) {
	c := &Compositor{maxDim: DefaultMaxDimension}
	for _, opt := range opts {
		opt(c)
	}
	if c.fonts == nil {
		f, err := DefaultFonts()
		if err != nil {
			return nil, err
		}
		c.fonts = f
	}
	return c, nil
}

// Render runs the pipeline: cover-fit background, theme sampling, then
// scrim and text. Pixel output is identical for identical requests.
func (c *Compositor) Render(req CompositionRequest) (*Result, error) {
	src, err := req.source()
	if err != nil {
		return nil, err
	}
	canvas, err := NewCanvas(req.Width, req.Height, c.maxDim)
	if err != nil {
		return nil, err
	}

	CompositeBackground(canvas, src)
	theme := SampleDominantColor(canvas)
	if err := ApplyOverlayAndText(canvas, theme, req.Title, req.Provider, c.fonts); err != nil {
		return nil, err
	}

	slog.Debug("rendered card", "width", req.Width, "height", req.Height, "theme", theme.Hex())
	return &Result{Image: canvas, Theme: theme}, nil
}

// Compose renders req and returns the PNG encoding of the canvas.
func (c *Compositor) Compose(req CompositionRequest) ([]byte, error) {
	res, err := c.Render(req)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, res.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		b := img.Bounds()
		return &EncodeError{Width: b.Dx(), Height: b.Dy(), Err: err}
	}
	return nil
}

// Decode reads an image in any format imaging understands, applying EXIF
// orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return img, nil
}

func (r CompositionRequest) source() (image.Image, error) {
	if r.Source != nil {
		return r.Source, nil
	}
	if len(r.Data) == 0 {
		return nil, &DecodeError{Err: errors.New("no image data")}
	}
	return Decode(bytes.NewReader(r.Data))
}

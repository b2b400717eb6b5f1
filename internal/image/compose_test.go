package imagepkg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompositor(t *testing.T) *Compositor {
	t.Helper()
	c, err := NewCompositor()
	require.NoError(t, err)
	return c
}

func TestComposeOutputDimensions(t *testing.T) {
	c := newTestCompositor(t)
	src := solid(320, 180, color.RGBA{R: 0x30, G: 0x60, B: 0x90, A: 0xff})

	for _, dims := range [][2]int{{108, 192}, {200, 200}, {300, 100}, {1, 1}} {
		out, err := c.Compose(CompositionRequest{
			Source:   src,
			Title:    "Star Garden",
			Provider: "Acme",
			Width:    dims[0],
			Height:   dims[1],
		})
		require.NoError(t, err, "dims %v", dims)

		img, err := png.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, dims[0], dims[1]), img.Bounds())
	}
}

func TestComposeFromEncodedData(t *testing.T) {
	c := newTestCompositor(t)
	data := encodePNG(t, solid(64, 64, color.RGBA{G: 0xff, A: 0xff}))

	res, err := c.Render(CompositionRequest{Data: data, Width: 90, Height: 160})
	require.NoError(t, err)
	assert.Equal(t, ColorRGB{G: 0xff}, res.Theme)
}

func TestComposeErrors(t *testing.T) {
	c := newTestCompositor(t)

	_, err := c.Compose(CompositionRequest{Data: []byte("not an image"), Width: 10, Height: 10})
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))

	_, err = c.Compose(CompositionRequest{Width: 10, Height: 10})
	assert.True(t, errors.As(err, &decodeErr))

	_, err = c.Compose(CompositionRequest{Source: solid(4, 4, color.White), Width: 0, Height: 10})
	var surfErr *RenderSurfaceError
	require.True(t, errors.As(err, &surfErr))
	assert.Equal(t, 0, surfErr.Width)
	assert.Equal(t, 10, surfErr.Height)

	small, err := NewCompositor(WithMaxDimension(100))
	require.NoError(t, err)
	_, err = small.Compose(CompositionRequest{Source: solid(4, 4, color.White), Width: 101, Height: 10})
	assert.True(t, errors.As(err, &surfErr))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeError(t *testing.T) {
	err := Encode(failingWriter{}, solid(8, 6, color.White))
	var encErr *EncodeError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, 8, encErr.Width)
	assert.Equal(t, 6, encErr.Height)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRenderDeterministic(t *testing.T) {
	c := newTestCompositor(t)
	src := image.NewRGBA(image.Rect(0, 0, 200, 120))
	for i := range src.Pix {
		src.Pix[i] = uint8(i*7 + i/3)
	}
	req := CompositionRequest{Source: src, Title: "Deterministic Output Title", Provider: "Acme", Width: 216, Height: 384}

	first, err := c.Render(req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := c.Render(req)
			if err == nil {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, first.Theme, res.Theme)
		assert.True(t, bytes.Equal(first.Image.Pix, res.Image.Pix))
	}
}

func TestRenderLandscapeScenario(t *testing.T) {
	c := newTestCompositor(t)
	src := solid(1920, 1080, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff})

	res, err := c.Render(CompositionRequest{
		Source:   src,
		Title:    "SUPER GOLD QUEST",
		Provider: "Acme Games",
		Width:    1080,
		Height:   1920,
	})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1080, 1920), res.Image.Bounds())
	assert.Equal(t, ColorRGB{R: 0x80, G: 0x80, B: 0x80}, res.Theme)

	// Go Bold at 129px wraps the title into two lines
	fonts, err := DefaultFonts()
	require.NoError(t, err)
	faces := newFaceSet(fonts)
	defer faces.Close()
	lines := LayoutTitle("SUPER GOLD QUEST", 1080, 1920, faces)
	require.Len(t, lines, 2)
	assert.Equal(t, "SUPER GOLD", lines[0].Text)
	assert.Equal(t, "QUEST", lines[1].Text)
	assert.Less(t, lines[0].Width, 1080*0.9)

	// left edge, clear of the centered text
	mid := res.Image.RGBAAt(4, 961)
	bottom := res.Image.RGBAAt(4, 1915)
	assert.Greater(t, brightness(mid), brightness(bottom))
	assert.InDelta(t, 0x80, int(mid.R), 2)
	assert.InDelta(t, 0x80/5, int(bottom.R), 3)

	// nothing above the scrim was painted on
	top := res.Image.RGBAAt(540, 200)
	assert.InDelta(t, 0x80, int(top.R), 1)
	assert.InDelta(t, 0x80, int(top.B), 1)
}

func TestRenderPortraitScenario(t *testing.T) {
	c := newTestCompositor(t)
	src := solid(500, 1000, color.RGBA{R: 0xc0, G: 0x20, B: 0x20, A: 0xff})

	res, err := c.Render(CompositionRequest{Source: src, Width: 1080, Height: 1920})
	require.NoError(t, err)
	for _, x := range []int{0, 540, 1079} {
		px := res.Image.RGBAAt(x, 10)
		assert.InDelta(t, 0xc0, int(px.R), 2, "x=%d", x)
	}
}

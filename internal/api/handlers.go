package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/thumbcard/internal/cards"
	"github.com/youruser/thumbcard/internal/deck"
	imagepkg "github.com/youruser/thumbcard/internal/image"
)

const (
	maxUploadBytes = 20 << 20
	maxDeckEntries = 100
)

// Fetcher downloads source art.
type Fetcher interface {
	DownloadImage(ctx context.Context, url string) (image.Image, error)
}

// Handler serves the card API.
type Handler struct {
	Store      *cards.Store
	Fetcher    Fetcher
	Compositor *imagepkg.Compositor
	OutputDir  string
	Width      int
	Height     int
	Workers    int
}

// health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "entries": h.Store.Len()})
}

func (h *Handler) listEntries(c *gin.Context) {
	opt := cards.FilterOptions{FreeWords: c.Query("q")}
	if p := c.Query("provider"); p != "" {
		opt.Providers = strings.Split(p, ",")
	}
	out := cards.Filter(h.Store.All(), opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "entries": out})
}

func (h *Handler) filterHandler(c *gin.Context) {
	var opt cards.FilterOptions
	if err := c.BindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := cards.Filter(h.Store.All(), opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "entries": out})
}

// entryCardHandler renders the card of one catalog entry.
func (h *Handler) entryCardHandler(c *gin.Context) {
	entry, ok := h.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	var size struct {
		Width  int `form:"width"`
		Height int `form:"height"`
	}
	if err := c.ShouldBindQuery(&size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, hh := h.dimensions(size.Width, size.Height)
	src, err := h.Fetcher.DownloadImage(c.Request.Context(), entry.ImageURL)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondCard(c, imagepkg.CompositionRequest{
		Source:   src,
		Title:    entry.Title,
		Provider: entry.Provider,
		Width:    w,
		Height:   hh,
	})
}

type composeRequest struct {
	ImageURL    string `json:"image_url" form:"image_url"`
	ImageBase64 string `json:"image_base64" form:"image_base64"`
	Title       string `json:"title" form:"title"`
	Provider    string `json:"provider" form:"provider"`
	Width       int    `json:"width" form:"width"`
	Height      int    `json:"height" form:"height"`
}

// composeHandler accepts JSON with image_url or image_base64, or a
// multipart form with an "image" file, and returns the card PNG.
func (h *Handler) composeHandler(c *gin.Context) {
	var req composeRequest
	var data []byte

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fh, err := c.FormFile("image")
		if err == nil {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			data, err = io.ReadAll(io.LimitReader(f, maxUploadBytes))
			f.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	w, hh := h.dimensions(req.Width, req.Height)

	comp := imagepkg.CompositionRequest{Title: req.Title, Provider: req.Provider, Width: w, Height: hh}
	switch {
	case len(data) > 0:
		comp.Data = data
	case req.ImageBase64 != "":
		b, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64: " + err.Error()})
			return
		}
		comp.Data = b
	case req.ImageURL != "":
		src, err := h.Fetcher.DownloadImage(c.Request.Context(), req.ImageURL)
		if err != nil {
			h.fail(c, err)
			return
		}
		comp.Source = src
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "one of image, image_url or image_base64 is required"})
		return
	}
	h.respondCard(c, comp)
}

// deckRenderHandler renders every entry of a deck to the output directory
// and returns the manifest.
func (h *Handler) deckRenderHandler(c *gin.Context) {
	var d deck.Deck
	if err := c.BindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkDeckSize(c, d) {
		return
	}
	results := deck.Render(c.Request.Context(), d, h.Store, h.Fetcher, h.Compositor, deck.Options{
		OutputDir: h.OutputDir,
		Width:     h.Width,
		Height:    h.Height,
		Workers:   h.Workers,
	})

	type item struct {
		EntryID string `json:"entry_id"`
		File    string `json:"file,omitempty"`
		Theme   string `json:"theme,omitempty"`
		Error   string `json:"error,omitempty"`
	}
	items := make([]item, len(results))
	failed := 0
	for i, r := range results {
		items[i] = item{EntryID: r.EntryID, File: r.File}
		if r.Err != nil {
			items[i].Error = r.Err.Error()
			failed++
			continue
		}
		items[i].Theme = r.Theme.Hex()
	}
	c.JSON(http.StatusOK, gin.H{
		"name":     d.Name,
		"rendered": len(results) - failed,
		"failed":   failed,
		"results":  items,
		"manifest": deck.ExportManifest(d, results),
	})
}

// deckImageHandler renders a deck in memory and returns a preview sheet,
// with a QR code when qr_text is given.
func (h *Handler) deckImageHandler(c *gin.Context) {
	var req struct {
		deck.Deck
		QRText string `json:"qr_text"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkDeckSize(c, req.Deck) {
		return
	}
	results := deck.Render(c.Request.Context(), req.Deck, h.Store, h.Fetcher, h.Compositor, deck.Options{
		Width:     h.Width,
		Height:    h.Height,
		Workers:   h.Workers,
		Thumbnail: imagepkg.SheetThumbnail,
	})
	var rendered []image.Image
	for _, r := range results {
		if r.Err == nil {
			rendered = append(rendered, r.Image)
		}
	}
	var qrImg image.Image
	if req.QRText != "" {
		q, err := imagepkg.GenerateQRImage(req.QRText, 400)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		qrImg = q
	}
	out := imagepkg.ComposeSheet(rendered, qrImg)
	var buf bytes.Buffer
	if err := imagepkg.Encode(&buf, out); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func checkDeckSize(c *gin.Context, d deck.Deck) bool {
	switch n := len(d.EntryIDs); {
	case n == 0:
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry_ids is required"})
		return false
	case n > maxDeckEntries:
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many entries: " + strconv.Itoa(n) + " > " + strconv.Itoa(maxDeckEntries)})
		return false
	}
	return true
}

// qr endpoint returns a PNG of a QR for "text" query param
func (h *Handler) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 2048 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *Handler) respondCard(c *gin.Context, req imagepkg.CompositionRequest) {
	res, err := h.Compositor.Render(req)
	if err != nil {
		h.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := imagepkg.Encode(&buf, res.Image); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("X-Theme-Color", res.Theme.Hex())
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// dimensions falls back to the configured size for zero values.
func (h *Handler) dimensions(w, hh int) (int, int) {
	if w == 0 {
		w = h.Width
	}
	if hh == 0 {
		hh = h.Height
	}
	return w, hh
}

// fail maps pipeline and fetch errors to responses.
func (h *Handler) fail(c *gin.Context, err error) {
	var (
		decodeErr  *imagepkg.DecodeError
		surfaceErr *imagepkg.RenderSurfaceError
		encodeErr  *imagepkg.EncodeError
	)
	status := http.StatusBadGateway
	switch {
	case errors.As(err, &decodeErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &surfaceErr):
		status = http.StatusBadRequest
	case errors.As(err, &encodeErr):
		status = http.StatusInternalServerError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	slog.Warn("card request failed", "path", c.FullPath(), "status", status, "err", err)
	c.JSON(status, gin.H{"error": err.Error()})
}

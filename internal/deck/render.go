package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/youruser/thumbcard/internal/cards"
	imagepkg "github.com/youruser/thumbcard/internal/image"
	"github.com/youruser/thumbcard/internal/util"
)

// ErrUnknownEntry is returned in a Result whose entry id is not in the catalog.
var ErrUnknownEntry = errors.New("unknown entry")

// Catalog looks entries up by id.
type Catalog interface {
	Get(id string) (cards.Entry, bool)
}

// Fetcher downloads source art.
type Fetcher interface {
	DownloadImage(ctx context.Context, url string) (image.Image, error)
}

// Renderer is the compositor as used by a batch.
type Renderer interface {
	Render(req imagepkg.CompositionRequest) (*imagepkg.Result, error)
}

// Options control a batch render.
type Options struct {
	OutputDir string
	Width     int
	Height    int
	Workers   int
	// Thumbnail, when set, reduces each canvas before it is kept in
	// Result.Image.
	Thumbnail func(image.Image) image.Image
}

// Result is the outcome for one entry of a deck. Image holds the canvas
// only when nothing was written to disk, or its Thumbnail when one is set.
type Result struct {
	EntryID string
	File    string
	Theme   imagepkg.ColorRGB
	Image   image.Image
	Err     error
}

// Render renders every entry of d with a bounded pool of workers and writes
// each card to OutputDir as <uuid>.png. Results follow the order of
// d.EntryIDs. A failed entry does not stop the others; cancelling ctx
// marks the entries not yet started as failed.
func Render(ctx context.Context, d Deck, catalog Catalog, fetcher Fetcher, renderer Renderer, opt Options) []Result {
	results := make([]Result, len(d.EntryIDs))
	workers := opt.Workers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker(&wg, jobs, func(idx int) {
			id := d.EntryIDs[idx]
			if err := ctx.Err(); err != nil {
				results[idx] = Result{EntryID: id, Err: err}
				return
			}
			results[idx] = renderOne(ctx, id, catalog, fetcher, renderer, opt)
		})
	}
	for idx := range d.EntryIDs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			slog.Warn("deck entry failed", "deck", d.Name, "entry", r.EntryID, "err", r.Err)
		}
	}
	return results
}

func worker(wg *sync.WaitGroup, jobs <-chan int, do func(int)) {
	defer wg.Done()
	for idx := range jobs {
		do(idx)
	}
}

func renderOne(ctx context.Context, id string, catalog Catalog, fetcher Fetcher, renderer Renderer, opt Options) Result {
	res := Result{EntryID: id}
	entry, ok := catalog.Get(id)
	if !ok {
		res.Err = fmt.Errorf("%w %q", ErrUnknownEntry, id)
		return res
	}
	src, err := fetcher.DownloadImage(ctx, entry.ImageURL)
	if err != nil {
		res.Err = fmt.Errorf("fetch %s: %w", id, err)
		return res
	}
	out, err := renderer.Render(imagepkg.CompositionRequest{
		Source:   src,
		Title:    entry.Title,
		Provider: entry.Provider,
		Width:    opt.Width,
		Height:   opt.Height,
	})
	if err != nil {
		res.Err = fmt.Errorf("render %s: %w", id, err)
		return res
	}
	res.Theme = out.Theme
	switch {
	case opt.Thumbnail != nil:
		res.Image = opt.Thumbnail(out.Image)
	case opt.OutputDir == "":
		res.Image = out.Image
	}

	if opt.OutputDir == "" {
		return res
	}
	var buf bytes.Buffer
	if err := imagepkg.Encode(&buf, out.Image); err != nil {
		res.Err = fmt.Errorf("render %s: %w", id, err)
		return res
	}
	path := filepath.Join(opt.OutputDir, uuid.New().String()+".png")
	if err := util.WriteFileAtomic(path, buf.Bytes()); err != nil {
		res.Err = fmt.Errorf("write %s: %w", id, err)
		return res
	}
	res.File = path
	return res
}

package imagepkg

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"time"

	"github.com/youruser/thumbcard/internal/util"
)

// Fetcher downloads and decodes source art.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher returns a Fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: timeout}}
}

// DownloadImage fetches url and decodes it. Undecodable bodies are reported
// as *DecodeError; transport and status failures are returned as is.
func (f *Fetcher) DownloadImage(ctx context.Context, url string) (image.Image, error) {
	body, err := util.GetBytes(ctx, f.Client, url)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(body))
}

package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor or copy produces.
const DefaultDebounce = 250 * time.Millisecond

type Watcher struct {
	path     string
	match    func(name string) bool
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// New watches the directory at path. match selects the file names whose
// changes trigger the callback passed to Start.
func New(path string, match func(name string) bool) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	if err := fsWatcher.Add(path); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watcher: add %s: %w", path, err)
	}
	return &Watcher{
		path:     path,
		match:    match,
		debounce: DefaultDebounce,
		watcher:  fsWatcher,
	}, nil
}

// SetDebounce changes the quiet period before onChange runs.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start blocks until ctx is done, calling onChange once per burst of
// create, write, rename or remove events on matching files.
func (w *Watcher) Start(ctx context.Context, onChange func()) {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if w.match != nil && !w.match(event.Name) {
				continue
			}
			slog.Debug("catalog file changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
		case <-timer.C:
			onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "path", w.path, "err", err)
		}
	}
}

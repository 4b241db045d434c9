package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long the watcher waits after the last write
// before reloading, so editors that write in several chunks trigger a
// single reload.
const debounceDelay = 500 * time.Millisecond

// Watcher reloads the catalog dataset when the file changes and swaps
// the result into a Provider.
type Watcher struct {
	path     string
	provider *Provider
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	onReload func(*Catalog)

	mu    sync.Mutex
	timer *time.Timer
}

// SetOnReload registers a callback invoked after each successful
// reload, for downstream consumers like the search index. Must be set
// before Start.
func (w *Watcher) SetOnReload(fn func(*Catalog)) {
	w.onReload = fn
}

// NewWatcher creates a watcher for the dataset at path. The parent
// directory is watched rather than the file itself so atomic
// rename-into-place saves are picked up.
func NewWatcher(path string, provider *Provider, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch catalog dir: %w", err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		provider: provider,
		logger:   logger,
		watcher:  fsw,
	}, nil
}

// Start processes events until the context is canceled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

// scheduleReload debounces bursts of write events into one reload.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.reload)
}

// reload loads the dataset and swaps it in. A failed load keeps the
// previous catalog in place.
func (w *Watcher) reload() {
	cat, err := LoadFile(w.path)
	if err != nil {
		w.logger.Error("catalog reload failed, keeping previous catalog",
			"path", w.path, "error", err)
		return
	}

	w.provider.Replace(cat)
	w.logger.Info("catalog reloaded", "path", w.path, "entries", cat.Len())

	if w.onReload != nil {
		w.onReload(cat)
	}
}

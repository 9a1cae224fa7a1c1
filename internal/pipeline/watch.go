package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FolderWatcher calls OnChange after image files in Dir are created,
// written, removed or renamed, once the folder has been quiet for Debounce.
// OnChange always runs on the goroutine that called Run.
type FolderWatcher struct {
	Dir      string
	Debounce time.Duration
	Log      zerolog.Logger
	OnChange func()

	mu    sync.Mutex
	timer *time.Timer
}

// Run watches until ctx is done. It returns an error only when the watch
// cannot be set up.
func (w *FolderWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}
	w.Log.Debug().Str("dir", w.Dir).Msg("watching folder")

	fire := make(chan struct{}, 1)
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !IsImage(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(fire)

		case <-fire:
			w.OnChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn().Err(err).Msg("folder watcher error")
		}
	}
}

// schedule restarts the debounce timer; when it fires a token is sent on
// fire unless one is already pending.
func (w *FolderWatcher) schedule(fire chan<- struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}

func (w *FolderWatcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

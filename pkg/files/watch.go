package files

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce coalesces bursts of events from a single save
const WatchDebounce = 100 * time.Millisecond

// DataWatcher reports changes to a single local data file
type DataWatcher struct {
	watcher  *fsnotify.Watcher
	target   string
	debounce time.Duration
	onChange func()

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WatchData calls onChange, from its own goroutine, after the file at path
// is written, created or replaced. The parent directory is watched so
// editors that save by renaming are seen too. Watching stops when ctx ends
// or Close is called.
func WatchData(ctx context.Context, path string, onChange func()) (*DataWatcher, error) {
	return watchData(ctx, path, WatchDebounce, onChange)
}

func watchData(ctx context.Context, path string, debounce time.Duration, onChange func()) (*DataWatcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	dw := &DataWatcher{
		watcher:  watcher,
		target:   target,
		debounce: debounce,
		onChange: onChange,
		cancel:   cancel,
	}

	dw.wg.Add(1)
	go dw.run(ctx)

	slog.Debug("watching data file", "path", target)
	return dw, nil
}

// Close stops watching and waits for the event loop to exit
func (dw *DataWatcher) Close() error {
	dw.cancel()
	dw.wg.Wait()
	return nil
}

func (dw *DataWatcher) run(ctx context.Context) {
	defer dw.wg.Done()
	defer dw.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != dw.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(dw.debounce)
			} else {
				timer.Stop()
				timer.Reset(dw.debounce)
			}
			fire = timer.C

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("data watcher error", "path", dw.target, "error", err)

		case <-fire:
			fire = nil
			dw.onChange()
		}
	}
}

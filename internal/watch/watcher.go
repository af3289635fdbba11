// Package watch keeps the exported snapshot fresh while property files
// change: an fsnotify watcher with a debounce, a periodic safety-net
// refresh, and a loopback HTTP endpoint for health and metrics.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a fixed set of files and fires a debounced callback when
// any of them change.
type Watcher struct {
	// watched maps parent directory to the base names we care about in it.
	// Watching directories is more reliable than watching files directly:
	// editors and Gradle replace files via rename.
	watched      map[string]map[string]bool
	onChange     func()
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopChan     chan struct{}
	triggerChan  chan struct{}
	debounceTime time.Duration
}

// NewWatcher creates a watcher over the given file paths.
func NewWatcher(paths []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	watched := make(map[string]map[string]bool)
	for _, path := range paths {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to resolve watch path %s: %w", path, absErr)
		}
		dir := filepath.Dir(abs)
		if watched[dir] == nil {
			watched[dir] = make(map[string]bool)
		}
		watched[dir][filepath.Base(abs)] = true
	}

	return &Watcher{
		watched:      watched,
		onChange:     onChange,
		watcher:      fsw,
		stopChan:     make(chan struct{}),
		triggerChan:  make(chan struct{}, 1),
		debounceTime: debounce,
	}, nil
}

// Start begins monitoring the watched files.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range w.watched {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	slog.Info("Starting property-file watcher", "directories", len(w.watched))

	go w.watchLoop(ctx)
	go w.debounceLoop(ctx)

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	slog.Info("Stopping property-file watcher")

	close(w.stopChan)

	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", "error", err)
		}
	}

	return nil
}

// watchLoop filters file system events down to the watched base names.
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			dir := filepath.Dir(event.Name)
			base := filepath.Base(event.Name)
			if names, watchedDir := w.watched[dir]; !watchedDir || !names[base] {
				continue
			}

			switch {
			case event.Op&fsnotify.Write == fsnotify.Write:
				slog.Debug("Watched file write detected", "file", event.Name)
				w.trigger()
			case event.Op&fsnotify.Create == fsnotify.Create:
				slog.Debug("Watched file create detected", "file", event.Name)
				w.trigger()
			case event.Op&fsnotify.Rename == fsnotify.Rename:
				slog.Debug("Watched file rename detected", "file", event.Name)
				w.trigger()
			case event.Op&fsnotify.Remove == fsnotify.Remove:
				// A removed local.properties usually means the opt-in flag
				// just went away; that is a change too.
				slog.Warn("Watched file removed", "file", event.Name)
				w.trigger()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}

// debounceLoop collapses rapid event bursts into one callback.
func (w *Watcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.triggerChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceTime, w.onChange)
		}
	}
}

// trigger requests a debounced callback.
func (w *Watcher) trigger() {
	select {
	case w.triggerChan <- struct{}{}:
		// Callback scheduled
	default:
		// Callback already pending
	}
}

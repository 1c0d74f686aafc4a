package toolchain

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the workspace for source file changes and triggers a
// reformat. Only files covered by the formatter's include globs count.
type Watcher struct {
	root      string
	formatter *Formatter
	logger    *slog.Logger
	Ready     chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a new Watcher for the given workspace root.
func NewWatcher(root string, formatter *Formatter, logger *slog.Logger) *Watcher {
	return &Watcher{
		root:       root,
		formatter:  formatter,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch starts monitoring the workspace for changes. It calls the provided
// callback, debounced, whenever a matching file changes. It blocks until the
// context is cancelled.
func (w *Watcher) Watch(ctx context.Context, callback func(path string)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := w.addRecursive(watcher, w.root); err != nil {
		return err
	}

	w.logger.Info("Watching for changes", "root", w.root)
	if w.Ready != nil {
		close(w.Ready)
	}

	var timer *time.Timer
	const debounceDuration = 100 * time.Millisecond
	var pendingPath string

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if path := w.handleEvent(watcher, event); path != "" {
				if timer != nil {
					timer.Stop()
				}
				pendingPath = path
				timer = time.AfterFunc(debounceDuration, func() {
					callback(pendingPath)
				})
			}
		}
	}
}

// handleEvent processes a single fsnotify event. New directories are added to
// the watch set; matching file changes return the changed path.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) string {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return ""
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if err := w.addRecursive(watcher, event.Name); err != nil {
				w.logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
			}
			return ""
		}
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return ""
	}
	if w.formatter.Matches(rel) {
		return rel
	}
	return ""
}

// addRecursive adds the given path and all its subdirectories to the watcher.
// The environment directory and dot-directories are skipped.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	envDir := w.formatter.venv.Dir()
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path == envDir || (strings.HasPrefix(filepath.Base(path), ".") && path != root) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// Package watch re-runs a callback when markdown files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/docscan/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 100 * time.Millisecond

// ErrNoDirectories is returned by Run when there is nothing to watch.
var ErrNoDirectories = errors.New("no directories to watch")

// Options configures a Watcher.
type Options struct {
	// Dirs are the directories to watch.
	Dirs []string

	// Recursive also watches every non-hidden subdirectory of Dirs.
	Recursive bool

	// Extensions limits events to files with these suffixes. Matching is
	// case-insensitive. Empty means every file.
	Extensions []string

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
}

// Watcher turns file system events into debounced change notifications.
type Watcher struct {
	opts Options
}

// New creates a Watcher.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{opts: opts}
}

// Run watches the configured directories and calls onChange once per burst
// of relevant events. It returns nil when ctx is done and stops early if
// onChange returns an error.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	if len(w.opts.Dirs) == 0 {
		return ErrNoDirectories
	}

	logger := logging.FromContext(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, dir := range w.opts.Dirs {
		if err := w.addDir(fsw, dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	logger.Info("watching for changes", logging.FieldPaths, w.opts.Dirs)

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
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.opts.Recursive && event.Has(fsnotify.Create) {
				w.addNewDir(fsw, event.Name)
			}
			if !w.Relevant(event) {
				continue
			}

			logger.Debug("change detected", logging.FieldPath, event.Name, logging.FieldOperation, event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}

// Relevant reports whether event should trigger a re-run.
func (w *Watcher) Relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}

	if len(w.opts.Extensions) == 0 {
		return true
	}

	lower := strings.ToLower(base)
	for _, ext := range w.opts.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// addDir registers dir, and its subdirectories when recursive.
func (w *Watcher) addDir(fsw *fsnotify.Watcher, dir string) error {
	if !w.opts.Recursive {
		return fsw.Add(dir)
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// addNewDir starts watching a directory created while running.
func (w *Watcher) addNewDir(fsw *fsnotify.Watcher, path string) {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() || strings.HasPrefix(info.Name(), ".") {
		return
	}
	_ = w.addDir(fsw, path)
}

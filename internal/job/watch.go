package job

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a Watcher waits for a burst of writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to a fixed set of files. The parent directories are
// watched so editors that replace files on save are still noticed.
type Watcher struct {
	fs       *fsnotify.Watcher
	wanted   map[string]bool
	debounce time.Duration
	log      *slog.Logger
}

// NewWatcher starts watching files. Changes are observed from the moment it
// returns.
func NewWatcher(files []string, debounce time.Duration, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{fs: fs, wanted: make(map[string]bool, len(files)), debounce: debounce, log: log}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("watch %s: %w", f, err)
		}
		w.wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	log.Info("watching for changes", "files", len(w.wanted))
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error { return w.fs.Close() }

// Run calls rerun every time a watched file changes, until ctx is done.
// Events arriving within the debounce interval of each other trigger a single
// rerun. A failing rerun is logged and watching continues. rerun runs on the
// calling goroutine.
func (w *Watcher) Run(ctx context.Context, rerun func() error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.wanted[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)

		case <-timer.C:
			if err := rerun(); err != nil {
				w.log.Error("rerun failed", "err", err)
			}
		}
	}
}

// Watch watches files and runs rerun on changes until ctx is done.
func Watch(ctx context.Context, files []string, debounce time.Duration, log *slog.Logger, rerun func() error) error {
	w, err := NewWatcher(files, debounce, log)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx, rerun)
}

// Package watch re-runs an action whenever a single file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events editors emit for one save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher observes one file.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a watcher for path. A non-positive debounce uses DefaultDebounce.
func New(path string, debounce time.Duration, logger *zap.Logger) (w *Watcher) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w = &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		logger:   logger,
	}
	return w
}

// Run calls onChange after every settled write, create or rename of the file until ctx is done.
// Errors from onChange are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context) error) (err error) {
	var watcher *fsnotify.Watcher
	watcher, err = fsnotify.NewWatcher()
	if err != nil {
		err = errors.Wrap(err, "failed to create watcher")
		return err
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file by rename keep being seen
	dir := filepath.Dir(w.path)
	err = watcher.Add(dir)
	if err != nil {
		err = errors.Wrapf(err, "failed to watch %s", dir)
		return err
	}

	w.logger.Info("watching", zap.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return err

		case event, ok := <-watcher.Events:
			if !ok {
				return err
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file event", zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return err
			}
			w.logger.Warn("watcher error", zap.Error(watchErr))

		case <-timer.C:
			changeErr := onChange(ctx)
			if changeErr != nil {
				w.logger.Error("change handler failed", zap.Error(changeErr))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) (ok bool) {
	if filepath.Clean(event.Name) != w.path {
		return ok
	}
	ok = event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
	return ok
}

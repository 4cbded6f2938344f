// Package watch reports changes to a single file.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/jwtview/logging"
	"github.com/grovetools/jwtview/util/pathutil"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher calls onChange once a burst of writes to a file has settled.
//
// The parent directory is watched rather than the file itself, so editors that
// save by renaming a temporary file over the original are still seen. When the
// path is a symlink the directory of its target is watched too.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	target   string
	debounce time.Duration
	onChange func(path string)
	logger   *logrus.Entry

	mu    sync.Mutex
	timer *time.Timer
}

// NewFileWatcher starts watching path. Call Start to deliver events.
func NewFileWatcher(path string, debounce time.Duration, onChange func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("watch")

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := abs
	if resolved, err := filepath.EvalSymlinks(abs); err == nil && resolved != abs {
		target = resolved
		if filepath.Dir(resolved) != filepath.Dir(abs) {
			if err := watcher.Add(filepath.Dir(resolved)); err != nil {
				logger.WithError(err).Warnf("Failed to watch symlink target dir %s", filepath.Dir(resolved))
			} else {
				logger.Debugf("Watching symlink target directory: %s", filepath.Dir(resolved))
			}
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &FileWatcher{
		watcher:  watcher,
		path:     abs,
		target:   target,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string { return w.path }

// Start delivers change notifications until ctx is cancelled or the watcher
// is closed.
func (w *FileWatcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			if !w.relevant(event) {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.stopTimer()
			w.watcher.Close()
			return
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == w.path || name == w.target {
		return true
	}
	return pathutil.SamePath(name, w.target)
}

// schedule restarts the debounce timer; onChange fires once it expires.
func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logger.Infof("File changed: %s", filepath.Base(w.path))
		if w.onChange != nil {
			w.onChange(w.path)
		}
	})
}

func (w *FileWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops the watcher and releases resources.
func (w *FileWatcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}

// Package watch reports changes to the directory being browsed so the
// listing can be refreshed without a keypress.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	serr "sxredder/internal/errors"
	"sxredder/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change says that something inside Dir was created, written, removed or
// renamed. Consecutive changes are coalesced: a receiver re-reads the whole
// directory anyway.
type Change struct {
	Dir       string
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher follows one directory at a time using fsnotify
type Watcher struct {
	dir string

	changes  chan Change
	stopChan chan struct{}
	done     chan struct{}

	fsWatcher *fsnotify.Watcher
	logger    *log.Logger

	mutex   sync.RWMutex
	running bool
	closed  bool
}

// New creates a watcher. It watches nothing until Watch is called.
func New(logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Discard()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, serr.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		changes:   make(chan Change, 1),
		fsWatcher: fsWatcher,
		logger:    logger,
	}, nil
}

// Watch switches the watcher to dir, dropping the previous directory
func (w *Watcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return serr.NewFileError("cannot watch directory", dir, serr.DirectoryRead, err)
	}
	if !info.IsDir() {
		return serr.ErrNotADirectory
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.dir == dir {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return serr.NewFileError("cannot watch directory", dir, serr.DirectoryRead, err)
	}
	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			w.logger.With(log.F("directory", w.dir)).WithError(err).Debug("failed to drop previous watch")
		}
	}
	w.dir = dir
	w.logger.With(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Dir returns the directory currently watched
func (w *Watcher) Dir() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dir
}

// Changes returns the channel that delivers change notifications. It is
// closed by Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins forwarding fsnotify events
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running || w.closed {
		w.mutex.Unlock()
		return serr.New("watcher already running or stopped")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	w.mutex.Unlock()

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			dir := w.Dir()
			if filepath.Dir(event.Name) != dir {
				continue
			}
			change := Change{Dir: dir, Path: event.Name, Op: event.Op, Timestamp: time.Now()}

			// A pending notification already covers this one
			select {
			case w.changes <- change:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher, releases the fsnotify handle and closes the change
// channel. A stopped watcher can't be restarted.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if w.closed {
		w.mutex.Unlock()
		return
	}
	w.closed = true
	wasRunning := w.running
	w.running = false
	if wasRunning {
		close(w.stopChan)
	}
	w.mutex.Unlock()

	if wasRunning {
		<-w.done
	}
	if err := w.fsWatcher.Close(); err != nil {
		w.logger.WithError(err).Warn("error closing fsnotify watcher")
	}
	close(w.changes)
}

// IsRunning returns whether the watcher is active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

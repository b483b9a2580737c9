package core

import (
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a small set of files (the scene config, the persisted
// spectrum table) for external changes - e.g. a build step regenerating the
// table offline - and flips an in-memory flag the owner can poll before its
// next read. It never mutates scene state itself: the single-writer model
// described for the scene packer is preserved, the watcher only observes.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	dirty    atomic.Bool
	done     chan struct{}
}

// NewWatcher starts watching the given paths (files or directories).
// Returns an error if any path cannot be watched.
func NewWatcher(paths ...string) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := fsWatch.Add(p); err != nil {
			fsWatch.Close()
			return nil, err
		}
	}
	w := &Watcher{
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.dirty.Store(true)
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			LogError("watcher: %s", err.Error())
		case <-w.done:
			w.fsnotify.Close()
			return
		}
	}
}

// Dirty reports and clears whether a watched path changed since the last call.
func (w *Watcher) Dirty() bool {
	return w.dirty.Swap(false)
}

// Close stops the watcher's goroutine.
func (w *Watcher) Close() {
	close(w.done)
}

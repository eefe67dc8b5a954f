package sheet

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/cellgrid/internal/logging"
)

// Watcher reports external changes to a sheet file.
type Watcher struct {
	mu sync.Mutex

	watcher   *fsnotify.Watcher
	path      string
	onChanged func(path string)
	closeOnce sync.Once
	closed    bool

	// debounce is the quiet period after the last event before a change
	// is reported.
	debounce time.Duration
	// suppress is how long events are ignored after MarkWritten.
	suppress      time.Duration
	suppressUntil time.Time
	timer         *time.Timer
}

// NewWatcher watches path and calls onChanged once a burst of writes,
// creates or renames of it has gone quiet.
func NewWatcher(path string, onChanged func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory rather than the file: editors and our own Save
	// replace the file by rename, which drops a watch on the old inode.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}
	return &Watcher{
		watcher:   watcher,
		path:      abs,
		onChanged: onChanged,
		debounce:  200 * time.Millisecond,
		suppress:  500 * time.Millisecond,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// MarkWritten ignores events for a while so our own save is not reported
// as an external change. A pending report is dropped.
func (w *Watcher) MarkWritten() {
	w.mu.Lock()
	w.suppressUntil = time.Now().Add(w.suppress)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
}

// schedule restarts the quiet-period timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || time.Now().Before(w.suppressUntil) {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
		return
	}
	w.timer.Reset(w.debounce)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	skip := w.closed || time.Now().Before(w.suppressUntil)
	w.mu.Unlock()
	if skip {
		return
	}
	logging.Debug("sheet: %s changed", w.path)
	if w.onChanged != nil {
		w.onChanged(w.path)
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
}

// Run processes file system events until the context is canceled or the
// watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.stopTimer()
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("sheet watcher: %v", err)
		}
	}
}

// Close stops the watcher and releases resources
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.stopTimer()
		err = w.watcher.Close()
	})
	return err
}

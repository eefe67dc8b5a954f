package safego

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"github.com/andyrewlee/cellgrid/internal/logging"
)

// PanicHandler receives panic details from recovered goroutines.
type PanicHandler func(name string, recovered any, stack []byte)

var (
	panicHandlerMu sync.RWMutex
	panicHandler   PanicHandler
)

// SetPanicHandler registers a global handler for recovered panics.
func SetPanicHandler(handler PanicHandler) {
	panicHandlerMu.Lock()
	panicHandler = handler
	panicHandlerMu.Unlock()
}

// Run executes fn and converts panics into logged errors.
// Runtime-fatal errors such as concurrent map writes are not recoverable.
func Run(name string, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if name == "" {
			name = "goroutine"
		}
		stack := debug.Stack()
		logging.Error("panic in %s: %v\n%s", name, r, stack)

		panicHandlerMu.RLock()
		handler := panicHandler
		panicHandlerMu.RUnlock()
		if handler != nil {
			func() {
				defer func() { _ = recover() }()
				handler(name, r, stack)
			}()
		}
	}()
	fn()
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}

// GoContext runs a long-lived loop such as a file watcher in a new
// goroutine. A returned error other than cancellation is logged.
func GoContext(ctx context.Context, name string, fn func(context.Context) error) {
	Go(name, func() {
		if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Warn("%s stopped: %v", name, err)
		}
	})
}

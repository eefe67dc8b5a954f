package safego

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRunCallsFn(t *testing.T) {
	called := false
	Run("test", func() { called = true })
	if !called {
		t.Fatal("function was not called")
	}
}

func TestRunRecoversAndReports(t *testing.T) {
	var (
		mu    sync.Mutex
		name  string
		value any
	)
	SetPanicHandler(func(n string, recovered any, stack []byte) {
		mu.Lock()
		name, value = n, recovered
		mu.Unlock()
	})
	defer SetPanicHandler(nil)

	Run("watcher", func() { panic("oops") })

	mu.Lock()
	defer mu.Unlock()
	if name != "watcher" || value != "oops" {
		t.Fatalf("handler got (%q, %v)", name, value)
	}
}

func TestRunDefaultName(t *testing.T) {
	var got string
	SetPanicHandler(func(n string, recovered any, stack []byte) { got = n })
	defer SetPanicHandler(nil)

	Run("", func() { panic("x") })
	if got != "goroutine" {
		t.Fatalf("expected default name, got %q", got)
	}
}

func TestRunSurvivesPanickingHandler(t *testing.T) {
	SetPanicHandler(func(string, any, []byte) { panic("handler panic") })
	defer SetPanicHandler(nil)
	Run("test", func() { panic("original") })
}

func TestGoRecoversPanic(t *testing.T) {
	done := make(chan string, 1)
	SetPanicHandler(func(n string, recovered any, stack []byte) { done <- n })
	defer SetPanicHandler(nil)

	Go("tick", func() { panic("boom") })

	select {
	case n := <-done:
		if n != "tick" {
			t.Fatalf("unexpected name %q", n)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for panic handler")
	}
}

func TestGoContextStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	GoContext(ctx, "loop", func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return ctx.Err()
	})
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("loop did not observe cancellation")
	}
}

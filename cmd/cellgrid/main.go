package main

import (
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/cellgrid/internal/app"
	"github.com/andyrewlee/cellgrid/internal/cli"
	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/safego"
	"github.com/andyrewlee/cellgrid/internal/sheet"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Size of the sheet shown when no file is given.
const (
	blankColumns = 26
	blankRows    = 100
)

func main() {
	os.Exit(cli.Run(os.Args[1:], cli.BuildInfo{Version: version, Commit: commit, Date: date}, runTUI))
}

func runTUI(opts cli.Options) error {
	cfg := opts.Config
	level, err := logging.ParseLevel(cfg.Grid.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using info\n", err)
	}
	if err := logging.Initialize(cfg.Paths.LogsRoot, level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	s, err := openSheet(opts.Path, opts.SheetName)
	if err != nil {
		logging.Error("Failed to open %s: %v", opts.Path, err)
		return err
	}
	cols, rows := s.Dims()
	logging.Info("Starting cellgrid %s on %q (%dx%d)", version, s.Path, cols, rows)

	startPprof()

	a := app.New(cfg, s, app.Options{Watch: opts.Watch})
	p := tea.NewProgram(a, tea.WithFilter(mouseEventFilter))
	a.SetMsgSender(p.Send)

	_, err = p.Run()
	a.Shutdown()
	if err != nil {
		logging.Error("App exited with error: %v", err)
		return fmt.Errorf("run: %w", err)
	}
	logging.Info("cellgrid shutdown complete")
	return nil
}

// openSheet loads path, or starts a blank sheet that will be saved there
// when the file does not exist yet.
func openSheet(path, name string) (*sheet.Sheet, error) {
	if path == "" {
		return sheet.New(blankColumns, blankRows), nil
	}
	format, err := sheet.FormatFor(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		s := sheet.New(blankColumns, blankRows)
		s.Path = path
		s.Format = format
		if name != "" {
			s.Name = name
		}
		return s, nil
	}
	return sheet.Load(path, name)
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseWheelEvent    time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter drops repeated motion at the same cell and bursts of
// wheel events.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		if msg.X != lastMouseX || msg.Y != lastMouseY {
			lastMouseX = msg.X
			lastMouseY = msg.Y
			lastMouseMotionEvent = time.Now()
			return msg
		}
		now := time.Now()
		if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseMotionEvent = now
	case tea.MouseWheelMsg:
		now := time.Now()
		if now.Sub(lastMouseWheelEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseWheelEvent = now
	}
	return msg
}

func startPprof() {
	raw := strings.TrimSpace(os.Getenv("CELLGRID_PPROF"))
	switch strings.ToLower(raw) {
	case "", "0", "false", "no":
		return
	}

	addr := raw
	if raw == "1" || strings.ToLower(raw) == "true" {
		addr = "127.0.0.1:6060"
	} else if _, err := strconv.Atoi(raw); err == nil {
		addr = "127.0.0.1:" + raw
	}

	safego.Go("pprof", func() {
		logging.Info("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logging.Warn("pprof server stopped: %v", err)
		}
	})
}

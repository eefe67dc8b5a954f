// Package app hosts the spreadsheet grid in a full-screen Bubbletea program
// with a toolbar, a status line and file commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/keymap"
	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/perf"
	"github.com/andyrewlee/cellgrid/internal/safego"
	"github.com/andyrewlee/cellgrid/internal/sheet"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
	"github.com/andyrewlee/cellgrid/internal/ui/grid"
)

// Screen rows taken by the toolbar and the status line.
const (
	toolbarHeight = 1
	statusHeight  = 1
)

// App is the root Bubbletea model.
type App struct {
	cfg    *config.Config
	keymap keymap.KeyMap
	styles common.Styles
	grid   *grid.Model
	zone   *zone.Manager

	width    int
	height   int
	ready    bool
	quitting bool

	summary     string
	status      string
	statusLevel messages.ToastLevel
	err         error

	watch       bool
	watcher     *sheet.Watcher
	cancelWatch context.CancelFunc

	externalMsgs        chan tea.Msg
	externalSender      func(tea.Msg)
	externalOnce        sync.Once
	externalDropLastLog atomic.Int64

	shutdownOnce sync.Once
}

// Options configures a new App.
type Options struct {
	// Watch reloads the sheet when its file changes on disk.
	Watch bool
}

// New creates the app around s using the settings in cfg.
func New(cfg *config.Config, s *sheet.Sheet, opts Options) *App {
	if cfg == nil {
		cfg = &config.Config{Grid: config.DefaultGridSettings()}
	}
	km := keymap.New(cfg.KeyMap)
	styles := common.NewStyles(common.GetTheme(common.ThemeID(cfg.Grid.Theme)))
	return &App{
		cfg:    cfg,
		keymap: km,
		styles: styles,
		grid: grid.New(s,
			grid.WithColumnWidth(cfg.Grid.ColumnWidth),
			grid.WithAutoScrollInterval(cfg.Grid.AutoScrollInterval()),
			grid.WithKeyMap(km),
			grid.WithStyles(styles),
		),
		zone:  zone.New(),
		watch: opts.Watch,
	}
}

// Grid exposes the hosted grid.
func (a *App) Grid() *grid.Model { return a.grid }

// Init starts the grid's tick chain and the file watcher.
func (a *App) Init() tea.Cmd {
	if a.watch {
		if err := a.startWatcher(); err != nil {
			logging.Warn("sheet watcher disabled: %v", err)
		}
	}
	return a.grid.Init()
}

func (a *App) startWatcher() error {
	path := a.grid.Sheet().Path
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	w, err := sheet.NewWatcher(path, func(p string) {
		a.enqueueExternalMsg(messages.SheetChanged{Path: p})
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.watcher = w
	a.cancelWatch = cancel
	safego.GoContext(ctx, "sheet-watcher", w.Run)
	logging.Info("Watching %s", w.Path())
	return nil
}

// Update handles messages and recovers from panics in handlers.
func (a *App) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("panic in app.Update: %v\n%s", r, debug.Stack())
			a.err = fmt.Errorf("internal error: %v", r)
			model = a
			cmd = nil
		}
	}()
	return a.update(msg)
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer perf.Time("update")()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyPressMsg:
		return a, a.handleKey(msg)

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft && msg.Y < toolbarHeight {
			return a, a.handleToolbarClick(msg.X, msg.Y)
		}
		return a, a.updateGrid(msg)

	case messages.SelectionChanged:
		a.summary = msg.Summary
		return a, nil

	case messages.Toast:
		a.setStatus(msg.Message, msg.Level)
		return a, nil

	case messages.Error:
		return a, a.handleError(msg)

	case messages.Copied:
		a.setStatus(fmt.Sprintf("Copied %d cells", msg.Cells), messages.ToastSuccess)
		return a, nil

	case messages.CellEdited:
		a.setStatus(fmt.Sprintf("%s = %q", sheet.CellName(msg.X, msg.Y), msg.Value), messages.ToastInfo)
		return a, nil

	case messages.ResizeActive:
		return a, nil

	case messages.ResizeInactive:
		if msg.Column {
			a.setStatus(fmt.Sprintf("Column %s is %d wide", sheet.ColumnName(msg.Index), msg.Size), messages.ToastInfo)
		} else {
			a.setStatus(fmt.Sprintf("Row %d is %d high", msg.Index+1, msg.Size), messages.ToastInfo)
		}
		return a, nil

	case messages.SheetChanged:
		if a.grid.Sheet().Dirty() {
			a.setStatus("File changed on disk; unsaved edits kept (ctrl+r reloads)", messages.ToastWarning)
			return a, nil
		}
		return a, a.reloadCmd()

	case messages.SheetReloaded:
		s, ok := msg.Sheet.(*sheet.Sheet)
		if !ok || s == nil {
			return a, nil
		}
		a.grid.SetSheet(s)
		a.setStatus("Reloaded "+msg.Path, messages.ToastInfo)
		return a, nil

	case messages.SheetSaved:
		live := a.grid.Sheet()
		if msg.Sheet != any(live) || !live.MarkSaved(msg.Revision) {
			a.setStatus("Saved "+msg.Path+"; newer edits are not saved yet", messages.ToastWarning)
			return a, nil
		}
		a.setStatus("Saved "+msg.Path, messages.ToastSuccess)
		return a, nil
	}

	return a, a.updateGrid(msg)
}

func (a *App) updateGrid(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.grid, cmd = a.grid.Update(msg)
	return cmd
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.grid.SetOrigin(0, toolbarHeight)
	a.grid.SetSize(width, max(0, height-toolbarHeight-statusHeight))
}

func (a *App) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if a.grid.Editing() {
		return a.updateGrid(msg)
	}
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a.quit()
	case key.Matches(msg, a.keymap.Save):
		return a.saveCmd()
	case key.Matches(msg, a.keymap.Reload):
		return a.reloadCmd()
	}
	return a.updateGrid(msg)
}

func (a *App) quit() tea.Cmd {
	if a.grid.Sheet().Dirty() && a.status != unsavedWarning {
		a.setStatus(unsavedWarning, messages.ToastWarning)
		return nil
	}
	a.quitting = true
	return tea.Quit
}

const unsavedWarning = "Unsaved edits; quit again to discard them"

// saveCmd writes a copy of the sheet off the UI goroutine.
func (a *App) saveCmd() tea.Cmd {
	s := a.grid.Sheet()
	if s.Path == "" {
		a.setStatus("No file to save to (start with a path)", messages.ToastWarning)
		return nil
	}
	snapshot := s.Clone()
	rev := snapshot.Revision()
	watcher := a.watcher
	return common.SafeCmd(func() tea.Msg {
		if watcher != nil {
			watcher.MarkWritten()
		}
		if err := snapshot.Save(); err != nil {
			return messages.Error{Err: err, Context: "save"}
		}
		if watcher != nil {
			watcher.MarkWritten()
		}
		logging.Info("Saved %s", snapshot.Path)
		return messages.SheetSaved{Path: snapshot.Path, Sheet: s, Revision: rev}
	})
}

func (a *App) reloadCmd() tea.Cmd {
	current := a.grid.Sheet()
	path, name := current.Path, current.Name
	if path == "" {
		return nil
	}
	return common.SafeCmd(func() tea.Msg {
		s, err := sheet.Load(path, name)
		if err != nil {
			return messages.Error{Err: err, Context: "reload"}
		}
		logging.Info("Reloaded %s", path)
		return messages.SheetReloaded{Path: path, Sheet: s}
	})
}

func (a *App) handleError(msg messages.Error) tea.Cmd {
	if msg.Err == nil {
		return nil
	}
	a.err = msg.Err
	if !msg.Logged {
		logging.Error("Error in %s: %v", msg.Context, msg.Err)
	}
	text := msg.Error()
	if errors.Is(msg.Err, os.ErrNotExist) {
		text = msg.Context + ": file not found"
	}
	a.setStatus(text, messages.ToastError)
	return nil
}

func (a *App) setStatus(text string, level messages.ToastLevel) {
	a.status = text
	a.statusLevel = level
	if level != messages.ToastError {
		a.err = nil
	}
}

// Shutdown releases resources that may outlive the Bubble Tea program.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.cancelWatch != nil {
			a.cancelWatch()
		}
		if a.watcher != nil {
			_ = a.watcher.Close()
		}
		if a.zone != nil {
			a.zone.Close()
		}
		perf.Flush("shutdown")
	})
}

package grid

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/cellgrid/internal/autoscroll"
	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/keymap"
	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/perf"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/sheet"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
	"github.com/andyrewlee/cellgrid/internal/viewport"
)

// DefaultColumnWidth is used when no width is configured.
const DefaultColumnWidth = 12

const doubleClickWindow = 400 * time.Millisecond

// Model is the Bubbletea model for the spreadsheet grid. It owns the
// layout, the selection coordinator and the auto-scroll pump, and paints
// selection events onto its cells.
type Model struct {
	sheet  *sheet.Sheet
	keymap keymap.KeyMap
	styles common.Styles

	// Screen origin and size of the whole grid, header and index included.
	x, y          int
	width, height int

	defaultColWidth int
	colWidths       []int
	rowHeights      []int
	colOffsets      []int
	rowOffsets      []int
	indexWidth      int
	scrollX         int
	scrollY         int

	coordinator *selection.Coordinator
	tracker     *viewport.Tracker
	pump        *autoscroll.Pump
	paint       *paint

	selectionChanged bool

	editing bool
	editX   int
	editY   int
	editor  textinput.Model

	resize    *resizeSession
	lastClick click
	now       func() time.Time
}

type click struct {
	x, y int
	at   time.Time
}

// Option configures a Model.
type Option func(*modelOptions)

type modelOptions struct {
	columnWidth int
	interval    time.Duration
	keymap      *keymap.KeyMap
	styles      *common.Styles
}

// WithColumnWidth sets the default column width.
func WithColumnWidth(w int) Option {
	return func(o *modelOptions) { o.columnWidth = w }
}

// WithAutoScrollInterval sets the delay between auto-scroll steps.
func WithAutoScrollInterval(d time.Duration) Option {
	return func(o *modelOptions) { o.interval = d }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km keymap.KeyMap) Option {
	return func(o *modelOptions) { o.keymap = &km }
}

// WithStyles replaces the default styles.
func WithStyles(s common.Styles) Option {
	return func(o *modelOptions) { o.styles = &s }
}

// New creates a grid over s.
func New(s *sheet.Sheet, opts ...Option) *Model {
	o := modelOptions{columnWidth: DefaultColumnWidth}
	for _, opt := range opts {
		opt(&o)
	}
	if s == nil {
		s = sheet.New(0, 0)
	}

	m := &Model{
		sheet:           s,
		keymap:          keymap.New(config.KeyMapConfig{}),
		styles:          common.DefaultStyles(),
		defaultColWidth: max(minColumnWidth, o.columnWidth),
		paint:           newPaint(),
		now:             time.Now,
	}
	if o.keymap != nil {
		m.keymap = *o.keymap
	}
	if o.styles != nil {
		m.styles = *o.styles
	}

	m.editor = textinput.New()
	m.editor.Prompt = ""

	m.coordinator = selection.NewCoordinator(m)
	m.coordinator.Subscribe(m.onSelection)
	m.tracker = viewport.NewTracker(m)
	m.pump = autoscroll.New(m.tracker, func(d viewport.DragOffGrid) {
		m.coordinator.DragOffGrid(d.Column, d.Row)
	}, autoscroll.WithInterval(o.interval))

	m.relayout()
	return m
}

// Init starts the auto-scroll tick chain. Only the first call starts one.
func (m *Model) Init() tea.Cmd {
	gen, ok := m.pump.Start()
	if !ok {
		return nil
	}
	return m.tick(gen)
}

func (m *Model) tick(gen uint64) tea.Cmd {
	return common.SafeTick(m.pump.Interval(), func(t time.Time) tea.Msg {
		return messages.AutoScrollTick{Gen: gen, At: t}
	})
}

// SetSize sets the grid size.
func (m *Model) SetSize(width, height int) {
	m.width = max(0, width)
	m.height = max(0, height)
	m.relayout()
}

// SetOrigin sets where the grid's top-left corner sits on screen, so mouse
// coordinates can be resolved.
func (m *Model) SetOrigin(x, y int) {
	m.x = x
	m.y = y
}

// SetStyles sets the styles for the grid.
func (m *Model) SetStyles(styles common.Styles) { m.styles = styles }

// Sheet returns the sheet being shown.
func (m *Model) Sheet() *sheet.Sheet { return m.sheet }

// SetSheet replaces the sheet, e.g. after a reload. Column widths and row
// heights are kept; the selection collapses to the old anchor when it is
// still inside the sheet.
func (m *Model) SetSheet(s *sheet.Sheet) {
	if s == nil {
		return
	}
	m.cancelEdit()
	anchor, hadAnchor := m.coordinator.Anchor()
	m.sheet = s
	m.relayout()
	m.coordinator.Deactivate()
	cols, rows := s.Dims()
	if hadAnchor && anchor.X < cols && anchor.Y < rows {
		m.coordinator.Select(anchor.X, anchor.Y)
	}
}

// Coordinator exposes the selection coordinator.
func (m *Model) Coordinator() *selection.Coordinator { return m.coordinator }

// Tracker exposes the viewport tracker.
func (m *Model) Tracker() *viewport.Tracker { return m.tracker }

// Editing reports whether the inline editor is open.
func (m *Model) Editing() bool { return m.editing }

// Resizing reports whether a resize drag is in progress.
func (m *Model) Resizing() bool { return m.resize != nil }

// ColumnWidth returns the width of logical column x.
func (m *Model) ColumnWidth(x int) int { return m.columnWidth(x) }

// RowHeight returns the height of logical row y.
func (m *Model) RowHeight(y int) int { return m.rowHeight(y) }

// Selected reports whether data cell (x, y) is painted as selected.
func (m *Model) Selected(x, y int) bool { return m.paint.marked(x, y) }

// onSelection paints an event. A set also scrolls its anchor fully into
// view along the axes the mode selects on.
func (m *Model) onSelection(ev selection.Event) {
	m.paint.apply(ev)
	m.selectionChanged = true
	if ev.Op != selection.OpSet {
		return
	}
	switch ev.Mode {
	case selection.ModeCells:
		m.tracker.ScrollRowFullyIntoView(ev.Anchor.Y)
		m.tracker.ScrollColumnFullyIntoView(ev.Anchor.X)
	case selection.ModeRows:
		m.tracker.ScrollRowFullyIntoView(ev.Anchor.Y)
	case selection.ModeColumns:
		m.tracker.ScrollColumnFullyIntoView(ev.Anchor.X)
	}
}

// Summary describes the selection for the status line.
func (m *Model) Summary() string {
	s := m.coordinator.Selection()
	switch s.Mode {
	case selection.ModeCells:
		if s.XRange.Len() == 1 && s.YRange.Len() == 1 {
			return sheet.CellName(s.XRange.Low(), s.YRange.Low())
		}
		return fmt.Sprintf("%s:%s (%d cells)",
			sheet.CellName(s.XRange.Low(), s.YRange.Low()),
			sheet.CellName(s.XRange.High(), s.YRange.High()),
			s.XRange.Len()*s.YRange.Len())
	case selection.ModeRows:
		if s.YRange.Len() == 1 {
			return fmt.Sprintf("row %d", s.YRange.Low()+1)
		}
		return fmt.Sprintf("rows %d-%d", s.YRange.Low()+1, s.YRange.High()+1)
	case selection.ModeColumns:
		if s.XRange.Len() == 1 {
			return "column " + sheet.ColumnName(s.XRange.Low())
		}
		return fmt.Sprintf("columns %s-%s", sheet.ColumnName(s.XRange.Low()), sheet.ColumnName(s.XRange.High()))
	}
	return ""
}

// selectionBlock returns the selected rectangle clipped to the sheet.
func (m *Model) selectionBlock() (x0, y0, x1, y1 int, ok bool) {
	cols, rows := m.sheet.Dims()
	s := m.coordinator.Selection()
	switch s.Mode {
	case selection.ModeCells:
		x0, x1 = s.XRange.Low(), s.XRange.High()
		y0, y1 = s.YRange.Low(), s.YRange.High()
	case selection.ModeRows:
		x0, x1 = 0, cols-1
		y0, y1 = s.YRange.Low(), s.YRange.High()
	case selection.ModeColumns:
		x0, x1 = s.XRange.Low(), s.XRange.High()
		y0, y1 = 0, rows-1
	default:
		return 0, 0, 0, 0, false
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, cols-1), min(y1, rows-1)
	return x0, y0, x1, y1, x0 <= x1 && y0 <= y1
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case messages.AutoScrollTick:
		if !m.pump.HandleTick(msg.Gen) {
			logging.Debug("grid: dropped stale tick chain %d", msg.Gen)
			return m, nil
		}
		perf.Count("autoscroll_tick", 1)
		cmd = m.tick(msg.Gen)
	case tea.MouseClickMsg:
		cmd = m.handleMouseClick(msg)
	case tea.MouseMotionMsg:
		cmd = m.handleMouseMotion(msg)
	case tea.MouseReleaseMsg:
		cmd = m.handleMouseRelease(msg)
	case tea.MouseWheelMsg:
		m.handleMouseWheel(msg)
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	case tea.KeyReleaseMsg:
		if isShift(msg.Code) {
			m.coordinator.KeyUp(false)
		}
	default:
		if m.editing {
			m.editor, cmd = m.editor.Update(msg)
		}
	}
	return m, common.SafeBatch(cmd, m.flushSelection())
}

// flushSelection reports a changed selection to the app once per update.
func (m *Model) flushSelection() tea.Cmd {
	if !m.selectionChanged {
		return nil
	}
	m.selectionChanged = false
	summary := m.Summary()
	return func() tea.Msg { return messages.SelectionChanged{Summary: summary} }
}

package selection

import "github.com/andyrewlee/cellgrid/internal/logging"

// CellKind classifies what a pointer interacted with.
type CellKind int

const (
	KindData CellKind = iota
	KindIndex
	KindHeader
)

func (k CellKind) String() string {
	switch k {
	case KindIndex:
		return "index"
	case KindHeader:
		return "header"
	default:
		return "data"
	}
}

// Target is a resolved pointer target. X and Y are the nearest logical
// coordinate: header cells project onto row 0 and index cells onto column 0.
type Target struct {
	Kind CellKind
	X    int
	Y    int
}

// Extents reports the logical grid size: maxX columns by maxY rows.
type Extents interface {
	Extents() (maxX, maxY int)
}

// ExtentsFunc adapts a function to Extents.
type ExtentsFunc func() (int, int)

// Extents calls f.
func (f ExtentsFunc) Extents() (int, int) { return f() }

// Listener receives selection events. It runs after the coordinator has
// finished mutating its state.
type Listener func(Event)

// Snapshot is a read-only copy of the current selection.
type Snapshot struct {
	Mode   Mode
	XRange Range
	YRange Range
	Anchor Coord
}

// Contains reports whether (x, y) is selected in the snapshot.
func (s Snapshot) Contains(x, y int) bool {
	return Event{Mode: s.Mode, XRange: s.XRange, YRange: s.YRange}.Contains(x, y)
}

// Coordinator routes pointer and keyboard input to the axis manager of the
// active mode and publishes the resulting events.
type Coordinator struct {
	extents   Extents
	listeners []Listener

	cells   CellManager
	rows    RowManager
	columns ColumnManager

	mode      Mode
	anchor    Coord
	hasAnchor bool

	held     bool
	shift    bool
	disabled bool
	resizing bool
}

// NewCoordinator creates a coordinator bounded by extents.
func NewCoordinator(extents Extents) *Coordinator {
	return &Coordinator{extents: extents}
}

// Subscribe registers l for every future event.
func (c *Coordinator) Subscribe(l Listener) {
	if l != nil {
		c.listeners = append(c.listeners, l)
	}
}

func (c *Coordinator) emit(evs ...Event) {
	for _, ev := range evs {
		for _, l := range c.listeners {
			l(ev)
		}
	}
}

// Mode returns the active selection mode.
func (c *Coordinator) Mode() Mode { return c.mode }

// Held reports whether a pointer gesture is in progress.
func (c *Coordinator) Held() bool { return c.held }

// Anchor returns the anchor cell, if any.
func (c *Coordinator) Anchor() (Coord, bool) { return c.anchor, c.hasAnchor }

// SetEnabled turns selection handling on or off, e.g. while a cell editor
// owns the keyboard.
func (c *Coordinator) SetEnabled(enabled bool) {
	c.disabled = !enabled
	if !enabled {
		c.held = false
	}
}

// Enabled reports whether input is being handled.
func (c *Coordinator) Enabled() bool { return !c.disabled }

// SetResizeActive suspends pointer selection while a row or column resize
// drag is in progress.
func (c *Coordinator) SetResizeActive(active bool) {
	if active == c.resizing {
		return
	}
	c.resizing = active
	if active {
		c.held = false
	}
	logging.Debug("selection: resize active=%v", active)
}

// ResizeActive reports whether a resize session suspends selection.
func (c *Coordinator) ResizeActive() bool { return c.resizing }

func (c *Coordinator) accepting() bool {
	return !c.disabled && !c.resizing
}

func (c *Coordinator) setMode(mode Mode) {
	if mode == c.mode {
		return
	}
	logging.Debug("selection: mode %s -> %s", c.mode, mode)
	c.mode = mode
	if mode != ModeCells {
		c.cells.Reset()
	}
	if mode != ModeRows {
		c.rows.Reset()
	}
	if mode != ModeColumns {
		c.columns.Reset()
	}
}

// Deactivate cancels the gesture and drops all selection state. Renderers
// receive a set event with ModeNone.
func (c *Coordinator) Deactivate() {
	c.held = false
	c.setMode(ModeNone)
	c.cells.Reset()
	c.rows.Reset()
	c.columns.Reset()
	c.anchor = Coord{}
	c.hasAnchor = false
	logging.Debug("selection: deactivated")
	c.emit(Event{Mode: ModeNone, Op: OpSet})
}

// PointerDown handles a press on t. A press while a gesture is still held is
// treated as a cancel. With shift the existing selection is extended to t;
// otherwise a new selection is anchored at t.
func (c *Coordinator) PointerDown(t Target, shift bool) {
	if !c.accepting() {
		return
	}
	if c.held {
		c.Deactivate()
		return
	}
	c.held = true
	if (shift || c.shift) && c.mode != ModeNone {
		c.extendTo(t)
		return
	}
	c.anchorAt(t)
}

func (c *Coordinator) anchorAt(t Target) {
	anchor := Coord{X: t.X, Y: t.Y}
	var ev Event
	switch t.Kind {
	case KindIndex:
		c.setMode(ModeRows)
		ev = c.rows.SetSelection(t.Y, anchor)
	case KindHeader:
		c.setMode(ModeColumns)
		ev = c.columns.SetSelection(t.X, anchor)
	default:
		c.setMode(ModeCells)
		ev = c.cells.SetSelection(t.X, t.Y, anchor)
	}
	c.anchor = anchor
	c.hasAnchor = true
	c.emit(ev)
}

// PointerEnter handles the pointer moving onto t. buttonDown resynchronises
// the held flag with the real button state.
func (c *Coordinator) PointerEnter(t Target, buttonDown bool) {
	if !c.accepting() {
		return
	}
	if c.held && !buttonDown {
		c.held = false
	} else if !c.held && buttonDown && c.mode != ModeNone {
		c.held = true
	}
	if !c.held {
		return
	}
	c.extendTo(t)
}

// PointerUp ends the gesture. The selection is kept.
func (c *Coordinator) PointerUp() {
	c.held = false
}

// DragOffGrid extends a held selection to the aligned row and column
// reported when the pointer is outside the viewport.
func (c *Coordinator) DragOffGrid(column, row int) {
	if !c.accepting() || !c.held {
		return
	}
	c.extendTo(Target{Kind: KindData, X: column, Y: row})
}

func (c *Coordinator) extendTo(t Target) {
	switch c.mode {
	case ModeCells:
		xEv, yEv := c.cells.UpdateSelectionEnd(t.X, t.Y)
		c.emit(xEv, yEv)
	case ModeRows:
		c.emit(c.rows.UpdateSelectionEnd(t.Y))
	case ModeColumns:
		c.emit(c.columns.UpdateSelectionEnd(t.X))
	}
}

// KeyDown handles a key press. dir is DirNone for keys other than arrows;
// shiftKey marks a bare shift press. Without shift an arrow moves the anchor
// one cell and collapses to a single-cell selection. With shift the active
// axis manager extends its moving edge by one.
func (c *Coordinator) KeyDown(dir Direction, shift, shiftKey bool) {
	if !c.accepting() {
		return
	}
	if shiftKey {
		c.shift = true
	}
	if !shift {
		c.shift = false
	}
	if !c.hasAnchor || dir == DirNone {
		return
	}

	maxX, maxY := c.extents.Extents()
	if shift {
		var (
			ev Event
			ok bool
		)
		switch c.mode {
		case ModeCells:
			ev, ok = c.cells.TranslateSelectionEnd(dir, maxX, maxY)
		case ModeRows:
			ev, ok = c.rows.TranslateSelectionEnd(dir, maxY)
		case ModeColumns:
			ev, ok = c.columns.TranslateSelectionEnd(dir, maxX)
		}
		if ok {
			c.emit(ev)
		}
		return
	}

	x, y := c.anchor.X, c.anchor.Y
	switch dir {
	case DirLeft:
		if x > 0 {
			x--
		}
	case DirRight:
		if x < maxX-1 {
			x++
		}
	case DirUp:
		if y > 0 {
			y--
		}
	case DirDown:
		if y < maxY-1 {
			y++
		}
	}
	c.anchorAt(Target{Kind: KindData, X: x, Y: y})
}

// KeyUp clears the shift flag once shift is no longer held.
func (c *Coordinator) KeyUp(shift bool) {
	if !shift {
		c.shift = false
	}
}

// Select anchors a single-cell selection at (x, y) without a pointer.
func (c *Coordinator) Select(x, y int) {
	if !c.accepting() {
		return
	}
	c.anchorAt(Target{Kind: KindData, X: x, Y: y})
}

// SelectAll selects every cell, keeping the current anchor when there is one.
func (c *Coordinator) SelectAll() {
	if !c.accepting() {
		return
	}
	maxX, maxY := c.extents.Extents()
	if maxX <= 0 || maxY <= 0 {
		return
	}
	anchor := Coord{}
	if c.hasAnchor {
		anchor = c.anchor
	}
	c.setMode(ModeCells)
	ev := c.cells.SetSelectionRange(NewRange(0, maxX-1), NewRange(0, maxY-1), anchor)
	c.anchor = anchor
	c.hasAnchor = true
	c.emit(ev)
}

// Contains reports whether (x, y) is inside the current selection.
func (c *Coordinator) Contains(x, y int) bool {
	switch c.mode {
	case ModeCells:
		return c.cells.Contains(x, y)
	case ModeRows:
		return c.rows.Contains(y)
	case ModeColumns:
		return c.columns.Contains(x)
	default:
		return false
	}
}

// Selection returns a snapshot of the current selection.
func (c *Coordinator) Selection() Snapshot {
	s := Snapshot{Mode: c.mode, Anchor: c.anchor}
	switch c.mode {
	case ModeCells:
		s.XRange, s.YRange = c.cells.Ranges()
	case ModeRows:
		s.YRange = c.rows.Range()
	case ModeColumns:
		s.XRange = c.columns.Range()
	}
	return s
}

// Managers exposes the axis managers for inspection.
func (c *Coordinator) Managers() (*CellManager, *RowManager, *ColumnManager) {
	return &c.cells, &c.rows, &c.columns
}

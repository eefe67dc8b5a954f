package selection

// CellManager owns a rectangular selection.
type CellManager struct {
	x      Range
	y      Range
	anchor Coord
}

// SetSelection starts a new single-cell selection at (x, y).
func (m *CellManager) SetSelection(x, y int, anchor Coord) Event {
	return m.SetSelectionRange(Point(x), Point(y), anchor)
}

// SetSelectionRange starts a new selection spanning the given ranges.
func (m *CellManager) SetSelectionRange(x, y Range, anchor Coord) Event {
	m.x = x
	m.y = y
	m.anchor = anchor
	return Event{
		Mode:   ModeCells,
		Op:     OpSet,
		XRange: m.x,
		YRange: m.y,
		DeltaX: Noop(),
		DeltaY: Noop(),
		Anchor: m.anchor,
	}
}

// UpdateSelectionEnd moves both moving edges and returns one event per axis.
// The x event carries the previous y range and the y event the new x range,
// so applying them in order never toggles a cell twice.
func (m *CellManager) UpdateSelectionEnd(xEnd, yEnd int) (Event, Event) {
	nextX := NewRange(m.x.start, xEnd)
	nextY := NewRange(m.y.start, yEnd)
	deltaX, opX := m.x.mustForwardDelta(nextX)
	deltaY, opY := m.y.mustForwardDelta(nextY)

	xEvent := Event{
		Mode:   ModeCells,
		Op:     opX,
		XRange: nextX,
		YRange: m.y,
		DeltaX: deltaX,
		DeltaY: Noop(),
		Anchor: m.anchor,
	}
	yEvent := Event{
		Mode:   ModeCells,
		Op:     opY,
		XRange: nextX,
		YRange: nextY,
		DeltaX: Noop(),
		DeltaY: deltaY,
		Anchor: m.anchor,
	}
	m.x = nextX
	m.y = nextY
	return xEvent, yEvent
}

// TranslateSelectionEnd moves one moving edge by a single step. It returns
// false without changing anything when the edge is already at the grid
// boundary.
func (m *CellManager) TranslateSelectionEnd(dir Direction, maxX, maxY int) (Event, bool) {
	switch dir {
	case DirLeft:
		if m.x.end > 0 {
			ev, _ := m.UpdateSelectionEnd(m.x.end-1, m.y.end)
			return ev, true
		}
	case DirRight:
		if m.x.end < maxX-1 {
			ev, _ := m.UpdateSelectionEnd(m.x.end+1, m.y.end)
			return ev, true
		}
	case DirUp:
		if m.y.end > 0 {
			_, ev := m.UpdateSelectionEnd(m.x.end, m.y.end-1)
			return ev, true
		}
	case DirDown:
		if m.y.end < maxY-1 {
			_, ev := m.UpdateSelectionEnd(m.x.end, m.y.end+1)
			return ev, true
		}
	}
	return Event{}, false
}

// Contains reports whether (x, y) is selected.
func (m *CellManager) Contains(x, y int) bool {
	return m.x.Contains(x) && m.y.Contains(y)
}

// Active reports whether the manager holds a selection.
func (m *CellManager) Active() bool { return !m.x.IsNoop() }

// Ranges returns the current x and y ranges.
func (m *CellManager) Ranges() (Range, Range) { return m.x, m.y }

// Reset drops the selection.
func (m *CellManager) Reset() { *m = CellManager{} }

// RowManager owns a selection of whole rows.
type RowManager struct {
	y      Range
	anchor Coord
}

// SetSelection starts a new single-row selection.
func (m *RowManager) SetSelection(y int, anchor Coord) Event {
	return m.SetSelectionRange(Point(y), anchor)
}

// SetSelectionRange starts a new selection covering the rows in y.
func (m *RowManager) SetSelectionRange(y Range, anchor Coord) Event {
	m.y = y
	m.anchor = anchor
	return Event{
		Mode:   ModeRows,
		Op:     OpSet,
		YRange: m.y,
		DeltaY: Noop(),
		Anchor: m.anchor,
	}
}

// UpdateSelectionEnd moves the moving edge to yEnd.
func (m *RowManager) UpdateSelectionEnd(yEnd int) Event {
	next := NewRange(m.y.start, yEnd)
	delta, op := m.y.mustForwardDelta(next)
	m.y = next
	return Event{
		Mode:   ModeRows,
		Op:     op,
		YRange: next,
		DeltaY: delta,
		Anchor: m.anchor,
	}
}

// TranslateSelectionEnd steps the moving edge up or down. Other directions
// and steps past the grid boundary report false.
func (m *RowManager) TranslateSelectionEnd(dir Direction, maxY int) (Event, bool) {
	switch dir {
	case DirUp:
		if m.y.end > 0 {
			return m.UpdateSelectionEnd(m.y.end - 1), true
		}
	case DirDown:
		if m.y.end < maxY-1 {
			return m.UpdateSelectionEnd(m.y.end + 1), true
		}
	}
	return Event{}, false
}

// Contains reports whether row y is selected.
func (m *RowManager) Contains(y int) bool { return m.y.Contains(y) }

// Active reports whether the manager holds a selection.
func (m *RowManager) Active() bool { return !m.y.IsNoop() }

// Range returns the selected rows.
func (m *RowManager) Range() Range { return m.y }

// Reset drops the selection.
func (m *RowManager) Reset() { *m = RowManager{} }

// ColumnManager owns a selection of whole columns.
type ColumnManager struct {
	x      Range
	anchor Coord
}

// SetSelection starts a new single-column selection.
func (m *ColumnManager) SetSelection(x int, anchor Coord) Event {
	return m.SetSelectionRange(Point(x), anchor)
}

// SetSelectionRange starts a new selection covering the columns in x.
func (m *ColumnManager) SetSelectionRange(x Range, anchor Coord) Event {
	m.x = x
	m.anchor = anchor
	return Event{
		Mode:   ModeColumns,
		Op:     OpSet,
		XRange: m.x,
		DeltaX: Noop(),
		Anchor: m.anchor,
	}
}

// UpdateSelectionEnd moves the moving edge to xEnd.
func (m *ColumnManager) UpdateSelectionEnd(xEnd int) Event {
	next := NewRange(m.x.start, xEnd)
	delta, op := m.x.mustForwardDelta(next)
	m.x = next
	return Event{
		Mode:   ModeColumns,
		Op:     op,
		XRange: next,
		DeltaX: delta,
		Anchor: m.anchor,
	}
}

// TranslateSelectionEnd steps the moving edge left or right.
func (m *ColumnManager) TranslateSelectionEnd(dir Direction, maxX int) (Event, bool) {
	switch dir {
	case DirLeft:
		if m.x.end > 0 {
			return m.UpdateSelectionEnd(m.x.end - 1), true
		}
	case DirRight:
		if m.x.end < maxX-1 {
			return m.UpdateSelectionEnd(m.x.end + 1), true
		}
	}
	return Event{}, false
}

// Contains reports whether column x is selected.
func (m *ColumnManager) Contains(x int) bool { return m.x.Contains(x) }

// Active reports whether the manager holds a selection.
func (m *ColumnManager) Active() bool { return !m.x.IsNoop() }

// Range returns the selected columns.
func (m *ColumnManager) Range() Range { return m.x }

// Reset drops the selection.
func (m *ColumnManager) Reset() { *m = ColumnManager{} }

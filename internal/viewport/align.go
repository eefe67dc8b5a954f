package viewport

// Edge names which side of the view the pointer left through.
type Edge int

const (
	EdgeMiddle Edge = iota
	EdgeLeft
	EdgeRight
	EdgeAbove
	EdgeBelow
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeAbove:
		return "above"
	case EdgeBelow:
		return "below"
	default:
		return "middle"
	}
}

// DragOffGrid describes a held pointer outside the view: where it is, which
// edges it crossed, and the visible row and column it lines up with.
type DragOffGrid struct {
	PointerX int
	PointerY int
	Column   int
	Row      int
	XEdge    Edge
	YEdge    Edge
}

// Outside reports whether any edge was crossed.
func (d DragOffGrid) Outside() bool {
	return d.XEdge != EdgeMiddle || d.YEdge != EdgeMiddle
}

// Align resolves a pointer position against the view. Inside the view it
// returns the edges as middle and false. Outside, the crossed axis aligns
// to the first or last visible row or column and the other axis to the
// row or column under the pointer. It also returns false when nothing is
// visible to align to.
func (t *Tracker) Align(x, y int) (DragOffGrid, bool) {
	view := t.ViewBounds()
	d := DragOffGrid{PointerX: x, PointerY: y}
	if view.Contains(x, y) {
		return d, false
	}

	rows := t.VisibleRows()
	cols := t.VisibleColumns()
	if len(rows) == 0 || len(cols) == 0 {
		return d, false
	}

	switch {
	case y < view.Top:
		d.YEdge = EdgeAbove
		d.Row = rows[0]
	case y >= view.Bottom:
		d.YEdge = EdgeBelow
		d.Row = rows[len(rows)-1]
	default:
		d.Row = nearest(t.layout.RowIndices(), rows, func(c Cell) bool {
			return y >= c.Bounds.Top && y < c.Bounds.Bottom
		})
	}

	switch {
	case x < view.Left:
		d.XEdge = EdgeLeft
		d.Column = cols[0]
	case x >= view.Right:
		d.XEdge = EdgeRight
		d.Column = cols[len(cols)-1]
	default:
		d.Column = nearest(t.layout.ColumnHeaders(), cols, func(c Cell) bool {
			return x >= c.Bounds.Left && x < c.Bounds.Right
		})
	}
	return d, true
}

// nearest returns the visible cell under the pointer, or the last visible
// index when the pointer is past the end of the grid.
func nearest(cells []Cell, visible []int, under func(Cell) bool) int {
	for _, c := range cells {
		if under(c) && contains(visible, c.Index) {
			return c.Index
		}
	}
	return visible[len(visible)-1]
}

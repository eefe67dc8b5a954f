package viewport

import "sort"

// Rect is a screen rectangle in terminal cells. Left and Top are inclusive,
// Right and Bottom exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Cell is a column header or row index cell: its logical index and where it
// currently sits on screen.
type Cell struct {
	Index  int
	Bounds Rect
}

// Layout is the live geometry of a scrollable grid.
type Layout interface {
	// ScrollBounds is the scroll container's rectangle on screen.
	ScrollBounds() Rect
	// OriginSize is the size of the fixed corner cell: the index column
	// width and the header row height.
	OriginSize() (width, height int)
	// Gutter is the space taken by scrollbars on the far edges.
	Gutter() (x, y int)
	// ColumnHeaders returns every column header cell in logical order.
	ColumnHeaders() []Cell
	// RowIndices returns every row index cell in logical order.
	RowIndices() []Cell
	// ColumnHeader looks up one header cell by logical column.
	ColumnHeader(x int) (Cell, bool)
	// RowIndex looks up one index cell by logical row.
	RowIndex(y int) (Cell, bool)
	// ScrollBy moves the scroll offset by (dx, dy).
	ScrollBy(dx, dy int)
}

// Tracker answers visibility questions about a Layout and scrolls it one
// row or column at a time.
type Tracker struct {
	layout       Layout
	trailingBias int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithTrailingBias adds n to every scroll towards the far edges. Layouts
// measured in fractional units need 1 so rounding does not leave a sliver of
// the next row visible; cell-exact layouts use 0.
func WithTrailingBias(n int) Option {
	return func(t *Tracker) { t.trailingBias = n }
}

// NewTracker creates a tracker over layout.
func NewTracker(layout Layout, opts ...Option) *Tracker {
	t := &Tracker{layout: layout}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ViewBounds returns the scrollable data area: the scroll rectangle inset by
// the header row and index column on the near edges and by the scrollbar
// gutter on the far edges. It is recomputed on every call.
func (t *Tracker) ViewBounds() Rect {
	r := t.layout.ScrollBounds()
	indexWidth, headerHeight := t.layout.OriginSize()
	gutterX, gutterY := t.layout.Gutter()
	return Rect{
		Left:   r.Left + indexWidth,
		Top:    r.Top + headerHeight,
		Right:  r.Right - gutterX,
		Bottom: r.Bottom - gutterY,
	}
}

// Inside reports whether (x, y) is within the view bounds.
func (t *Tracker) Inside(x, y int) bool {
	return t.ViewBounds().Contains(x, y)
}

// RowVisible reports whether cell overlaps view vertically. A cell whose
// edges coincide with the view edges counts as visible.
func RowVisible(view, cell Rect) bool {
	switch {
	case cell.Top >= view.Top && cell.Bottom <= view.Bottom:
		return true
	case cell.Top <= view.Top && cell.Bottom > view.Top:
		return true
	case cell.Top < view.Bottom && cell.Bottom >= view.Bottom:
		return true
	}
	return false
}

// RowFullyVisible reports whether cell lies vertically within view.
func RowFullyVisible(view, cell Rect) bool {
	return cell.Top >= view.Top && cell.Bottom <= view.Bottom
}

// ColumnVisible reports whether cell overlaps view horizontally.
func ColumnVisible(view, cell Rect) bool {
	switch {
	case cell.Left >= view.Left && cell.Right <= view.Right:
		return true
	case cell.Left <= view.Left && cell.Right > view.Left:
		return true
	case cell.Left < view.Right && cell.Right >= view.Right:
		return true
	}
	return false
}

// ColumnFullyVisible reports whether cell lies horizontally within view.
func ColumnFullyVisible(view, cell Rect) bool {
	return cell.Left >= view.Left && cell.Right <= view.Right
}

// CellVisible reports whether cell overlaps view on both axes.
func CellVisible(view, cell Rect) bool {
	return RowVisible(view, cell) && ColumnVisible(view, cell)
}

// CellFullyVisible reports whether cell lies entirely within view.
func CellFullyVisible(view, cell Rect) bool {
	return RowFullyVisible(view, cell) && ColumnFullyVisible(view, cell)
}

func filterIndices(cells []Cell, view Rect, keep func(view, cell Rect) bool) []int {
	var out []int
	for _, c := range cells {
		if keep(view, c.Bounds) {
			out = append(out, c.Index)
		}
	}
	sort.Ints(out)
	return out
}

// VisibleRows returns the logical rows at least partly inside the view, in
// ascending order.
func (t *Tracker) VisibleRows() []int {
	return filterIndices(t.layout.RowIndices(), t.ViewBounds(), RowVisible)
}

// FullyVisibleRows returns the logical rows entirely inside the view.
func (t *Tracker) FullyVisibleRows() []int {
	return filterIndices(t.layout.RowIndices(), t.ViewBounds(), RowFullyVisible)
}

// VisibleColumns returns the logical columns at least partly inside the view.
func (t *Tracker) VisibleColumns() []int {
	return filterIndices(t.layout.ColumnHeaders(), t.ViewBounds(), ColumnVisible)
}

// FullyVisibleColumns returns the logical columns entirely inside the view.
func (t *Tracker) FullyVisibleColumns() []int {
	return filterIndices(t.layout.ColumnHeaders(), t.ViewBounds(), ColumnFullyVisible)
}

// ScrollRowUp scrolls so the row above the fully visible block sits flush
// with the top of the view. It reports false when there is no such row.
func (t *Tracker) ScrollRowUp() bool {
	rows := t.FullyVisibleRows()
	if len(rows) == 0 {
		return false
	}
	prev, ok := t.layout.RowIndex(rows[0] - 1)
	if !ok {
		return false
	}
	t.layout.ScrollBy(0, prev.Bounds.Top-t.ViewBounds().Top)
	return true
}

// ScrollRowDown scrolls so the row below the fully visible block sits flush
// with the bottom of the view.
func (t *Tracker) ScrollRowDown() bool {
	rows := t.FullyVisibleRows()
	if len(rows) == 0 {
		return false
	}
	next, ok := t.layout.RowIndex(rows[len(rows)-1] + 1)
	if !ok {
		return false
	}
	t.layout.ScrollBy(0, next.Bounds.Bottom-t.ViewBounds().Bottom+t.trailingBias)
	return true
}

// ScrollColumnLeft scrolls so the column left of the fully visible block
// sits flush with the left edge of the view.
func (t *Tracker) ScrollColumnLeft() bool {
	cols := t.FullyVisibleColumns()
	if len(cols) == 0 {
		return false
	}
	prev, ok := t.layout.ColumnHeader(cols[0] - 1)
	if !ok {
		return false
	}
	t.layout.ScrollBy(prev.Bounds.Left-t.ViewBounds().Left, 0)
	return true
}

// ScrollColumnRight scrolls so the column right of the fully visible block
// sits flush with the right edge of the view.
func (t *Tracker) ScrollColumnRight() bool {
	cols := t.FullyVisibleColumns()
	if len(cols) == 0 {
		return false
	}
	next, ok := t.layout.ColumnHeader(cols[len(cols)-1] + 1)
	if !ok {
		return false
	}
	t.layout.ScrollBy(next.Bounds.Right-t.ViewBounds().Right+t.trailingBias, 0)
	return true
}

// ScrollRowFullyIntoView steps row by row until y is fully visible.
func (t *Tracker) ScrollRowFullyIntoView(y int) {
	rows := t.FullyVisibleRows()
	if len(rows) == 0 || contains(rows, y) {
		return
	}
	if y < rows[0] {
		for i := 0; i < rows[0]-y; i++ {
			if !t.ScrollRowUp() {
				return
			}
		}
		return
	}
	for i := 0; i < y-rows[len(rows)-1]; i++ {
		if !t.ScrollRowDown() {
			return
		}
	}
}

// ScrollColumnFullyIntoView steps column by column until x is fully visible.
func (t *Tracker) ScrollColumnFullyIntoView(x int) {
	cols := t.FullyVisibleColumns()
	if len(cols) == 0 || contains(cols, x) {
		return
	}
	if x < cols[0] {
		for i := 0; i < cols[0]-x; i++ {
			if !t.ScrollColumnLeft() {
				return
			}
		}
		return
	}
	for i := 0; i < x-cols[len(cols)-1]; i++ {
		if !t.ScrollColumnRight() {
			return
		}
	}
}

func contains(sorted []int, v int) bool {
	i := sort.SearchInts(sorted, v)
	return i < len(sorted) && sorted[i] == v
}

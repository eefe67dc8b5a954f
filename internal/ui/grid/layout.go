package grid

import (
	"sort"
	"strconv"

	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/viewport"
)

const (
	headerHeight   = 1
	minIndexWidth  = 4
	minColumnWidth = 3
	maxColumnWidth = 80
	maxRowHeight   = 20
)

// CoordinateIndex resolves screen positions to logical grid targets and back.
type CoordinateIndex interface {
	// TargetAt returns the header, index or data cell under a screen point.
	TargetAt(x, y int) (selection.Target, bool)
	// CellBounds returns the screen rectangle of logical cell (x, y).
	CellBounds(x, y int) (viewport.Rect, bool)
}

var (
	_ CoordinateIndex   = (*Model)(nil)
	_ viewport.Layout   = (*Model)(nil)
	_ selection.Extents = (*Model)(nil)
)

// Extents returns the number of columns and rows in the sheet.
func (m *Model) Extents() (int, int) {
	return m.sheet.Dims()
}

func (m *Model) columnWidth(x int) int {
	if x >= 0 && x < len(m.colWidths) && m.colWidths[x] > 0 {
		return m.colWidths[x]
	}
	return m.defaultColWidth
}

func (m *Model) rowHeight(y int) int {
	if y >= 0 && y < len(m.rowHeights) && m.rowHeights[y] > 0 {
		return m.rowHeights[y]
	}
	return 1
}

// relayout rebuilds the column and row offsets after the sheet or a size
// changes, then clamps the scroll position.
func (m *Model) relayout() {
	cols, rows := m.sheet.Dims()
	for len(m.colWidths) < cols {
		m.colWidths = append(m.colWidths, 0)
	}
	for len(m.rowHeights) < rows {
		m.rowHeights = append(m.rowHeights, 0)
	}

	m.colOffsets = m.colOffsets[:0]
	offset := 0
	for x := 0; x < cols; x++ {
		m.colOffsets = append(m.colOffsets, offset)
		offset += m.columnWidth(x)
	}
	m.colOffsets = append(m.colOffsets, offset)

	m.rowOffsets = m.rowOffsets[:0]
	offset = 0
	for y := 0; y < rows; y++ {
		m.rowOffsets = append(m.rowOffsets, offset)
		offset += m.rowHeight(y)
	}
	m.rowOffsets = append(m.rowOffsets, offset)

	m.indexWidth = max(minIndexWidth, len(strconv.Itoa(rows))+2)
	m.ScrollBy(0, 0)
}

func (m *Model) contentWidth() int  { return m.colOffsets[len(m.colOffsets)-1] }
func (m *Model) contentHeight() int { return m.rowOffsets[len(m.rowOffsets)-1] }

func (m *Model) viewWidth() int {
	gutterX, _ := m.Gutter()
	return max(0, m.width-m.indexWidth-gutterX)
}

func (m *Model) viewHeight() int {
	return max(0, m.height-headerHeight)
}

// ScrollBounds is the grid's rectangle on screen.
func (m *Model) ScrollBounds() viewport.Rect {
	return viewport.Rect{Left: m.x, Top: m.y, Right: m.x + m.width, Bottom: m.y + m.height}
}

// OriginSize is the size of the corner cell.
func (m *Model) OriginSize() (int, int) {
	return m.indexWidth, headerHeight
}

// Gutter reserves one column for the vertical scrollbar when rows overflow.
func (m *Model) Gutter() (int, int) {
	if m.contentHeight() > m.viewHeight() {
		return 1, 0
	}
	return 0, 0
}

// ScrollBy moves the scroll offset, clamped to the content.
func (m *Model) ScrollBy(dx, dy int) {
	m.scrollX = clamp(m.scrollX+dx, 0, max(0, m.contentWidth()-m.viewWidth()))
	m.scrollY = clamp(m.scrollY+dy, 0, max(0, m.contentHeight()-m.viewHeight()))
}

// ScrollOffset returns the current scroll position in cells.
func (m *Model) ScrollOffset() (int, int) {
	return m.scrollX, m.scrollY
}

// ColumnHeader returns the header cell of logical column x.
func (m *Model) ColumnHeader(x int) (viewport.Cell, bool) {
	if x < 0 || x >= len(m.colOffsets)-1 {
		return viewport.Cell{}, false
	}
	left := m.x + m.indexWidth + m.colOffsets[x] - m.scrollX
	return viewport.Cell{Index: x, Bounds: viewport.Rect{
		Left:   left,
		Top:    m.y,
		Right:  left + m.columnWidth(x),
		Bottom: m.y + headerHeight,
	}}, true
}

// RowIndex returns the index cell of logical row y.
func (m *Model) RowIndex(y int) (viewport.Cell, bool) {
	if y < 0 || y >= len(m.rowOffsets)-1 {
		return viewport.Cell{}, false
	}
	top := m.y + headerHeight + m.rowOffsets[y] - m.scrollY
	return viewport.Cell{Index: y, Bounds: viewport.Rect{
		Left:   m.x,
		Top:    top,
		Right:  m.x + m.indexWidth,
		Bottom: top + m.rowHeight(y),
	}}, true
}

// ColumnHeaders returns the header cells around the view. Columns too far
// away to intersect it are left out.
func (m *Model) ColumnHeaders() []viewport.Cell {
	first, last := window(m.colOffsets, m.scrollX, m.scrollX+m.viewWidth())
	out := make([]viewport.Cell, 0, last-first+1)
	for x := first; x <= last; x++ {
		c, _ := m.ColumnHeader(x)
		out = append(out, c)
	}
	return out
}

// RowIndices returns the index cells around the view.
func (m *Model) RowIndices() []viewport.Cell {
	first, last := window(m.rowOffsets, m.scrollY, m.scrollY+m.viewHeight())
	out := make([]viewport.Cell, 0, last-first+1)
	for y := first; y <= last; y++ {
		c, _ := m.RowIndex(y)
		out = append(out, c)
	}
	return out
}

// window returns the logical span covering content offsets [from, to) plus
// one neighbour on each side. last < first when there is nothing to cover.
func window(offsets []int, from, to int) (int, int) {
	n := len(offsets) - 1
	if n <= 0 {
		return 0, -1
	}
	first := at(offsets, from) - 1
	last := at(offsets, to) + 1
	return max(first, 0), min(last, n-1)
}

// at returns the logical index whose span covers content offset v, or the
// count when v is past the end.
func at(offsets []int, v int) int {
	n := len(offsets) - 1
	return sort.Search(n, func(i int) bool { return offsets[i+1] > v })
}

func (m *Model) columnAtScreen(sx int) (int, bool) {
	view := m.tracker.ViewBounds()
	if sx < view.Left || sx >= view.Right {
		return 0, false
	}
	x := at(m.colOffsets, sx-view.Left+m.scrollX)
	return x, x < len(m.colOffsets)-1
}

func (m *Model) rowAtScreen(sy int) (int, bool) {
	view := m.tracker.ViewBounds()
	if sy < view.Top || sy >= view.Bottom {
		return 0, false
	}
	y := at(m.rowOffsets, sy-view.Top+m.scrollY)
	return y, y < len(m.rowOffsets)-1
}

// TargetAt resolves a screen point. Header cells report row 0 and index
// cells column 0. The corner, the scrollbar and empty space past the last
// row or column resolve to nothing.
func (m *Model) TargetAt(sx, sy int) (selection.Target, bool) {
	if !m.ScrollBounds().Contains(sx, sy) {
		return selection.Target{}, false
	}
	view := m.tracker.ViewBounds()
	if sx >= view.Right || sy >= view.Bottom {
		return selection.Target{}, false
	}
	switch {
	case sy < view.Top && sx < view.Left:
		return selection.Target{}, false
	case sy < view.Top:
		x, ok := m.columnAtScreen(sx)
		return selection.Target{Kind: selection.KindHeader, X: x}, ok
	case sx < view.Left:
		y, ok := m.rowAtScreen(sy)
		return selection.Target{Kind: selection.KindIndex, Y: y}, ok
	}
	x, okX := m.columnAtScreen(sx)
	y, okY := m.rowAtScreen(sy)
	if !okX || !okY {
		return selection.Target{}, false
	}
	return selection.Target{Kind: selection.KindData, X: x, Y: y}, true
}

// CellBounds returns where logical cell (x, y) currently sits on screen.
// The rectangle may lie partly or wholly outside the view.
func (m *Model) CellBounds(x, y int) (viewport.Rect, bool) {
	col, ok := m.ColumnHeader(x)
	if !ok {
		return viewport.Rect{}, false
	}
	row, ok := m.RowIndex(y)
	if !ok {
		return viewport.Rect{}, false
	}
	return viewport.Rect{
		Left:   col.Bounds.Left,
		Top:    row.Bounds.Top,
		Right:  col.Bounds.Right,
		Bottom: row.Bounds.Bottom,
	}, true
}

func (m *Model) inCorner(sx, sy int) bool {
	view := m.tracker.ViewBounds()
	return m.ScrollBounds().Contains(sx, sy) && sx < view.Left && sy < view.Top
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

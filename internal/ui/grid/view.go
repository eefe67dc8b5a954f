package grid

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/cellgrid/internal/perf"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/sheet"
	"github.com/andyrewlee/cellgrid/internal/viewport"
)

const separator = "│"

var controlReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// cellText flattens a value onto one line.
func cellText(v string) string {
	return controlReplacer.Replace(v)
}

// fit truncates s to w cells and pads it on the right.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// center pads s on both sides to w cells.
func center(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "")
	pad := w - ansi.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// View renders the grid.
func (m *Model) View() string {
	defer perf.Time("grid_view")()
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	view := m.tracker.ViewBounds()
	cols := m.tracker.VisibleColumns()
	snap := m.coordinator.Selection()
	gutterX, _ := m.Gutter()

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader(view, cols, snap)+strings.Repeat(" ", gutterX))

	for _, y := range m.tracker.VisibleRows() {
		r, _ := m.RowIndex(y)
		for line := 0; line < r.Bounds.Height(); line++ {
			sy := r.Bounds.Top + line
			if sy < view.Top || sy >= view.Bottom {
				continue
			}
			lines = append(lines, m.renderIndex(y, line, snap)+m.renderRowLine(view, cols, y, line, snap))
		}
	}
	blank := m.styles.Index.Render(strings.Repeat(" ", m.indexWidth)) + strings.Repeat(" ", view.Width())
	for len(lines) < m.height {
		lines = append(lines, blank)
	}

	if gutterX > 0 {
		bar := m.renderScrollbar(view.Height())
		for i := range bar {
			lines[headerHeight+i] += bar[i]
		}
	}
	return strings.Join(lines, "\n")
}

// renderColumns joins the cells of the visible columns and cuts the result
// to the view, so a partly scrolled column shows only its visible part.
func (m *Model) renderColumns(view viewport.Rect, cols []int, render func(x, w int) string) string {
	width := view.Width()
	if len(cols) == 0 || width <= 0 {
		return strings.Repeat(" ", max(0, width))
	}
	first, _ := m.ColumnHeader(cols[0])
	var b strings.Builder
	for _, x := range cols {
		b.WriteString(render(x, m.columnWidth(x)))
	}
	skip := view.Left - first.Bounds.Left
	line := ansi.Cut(b.String(), skip, skip+width)
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

func (m *Model) renderHeader(view viewport.Rect, cols []int, snap selection.Snapshot) string {
	corner := m.styles.Corner.Render(strings.Repeat(" ", m.indexWidth))
	return corner + m.renderColumns(view, cols, func(x, w int) string {
		style := m.styles.Header
		if m.paint.columnMarked(x) || (snap.Mode == selection.ModeCells && snap.XRange.Contains(x)) {
			style = m.styles.HeaderSelected
		}
		return style.Render(center(sheet.ColumnName(x), w-1) + separator)
	})
}

func (m *Model) renderIndex(y, line int, snap selection.Snapshot) string {
	style := m.styles.Index
	if m.paint.rowMarked(y) || (snap.Mode == selection.ModeCells && snap.YRange.Contains(y)) {
		style = m.styles.IndexSelected
	}
	label := ""
	if line == 0 {
		label = strconv.Itoa(y + 1)
	}
	w := m.indexWidth - 1
	return style.Render(strings.Repeat(" ", max(0, w-len(label)))+label) + style.Render(separator)
}

func (m *Model) renderRowLine(view viewport.Rect, cols []int, y, line int, snap selection.Snapshot) string {
	return m.renderColumns(view, cols, func(x, w int) string {
		if m.editing && line == 0 && x == m.editX && y == m.editY {
			return m.styles.Editor.Render(fit(m.editor.View(), w))
		}
		style := m.styles.Cell
		switch {
		case snap.Mode == selection.ModeCells && x == snap.Anchor.X && y == snap.Anchor.Y:
			style = m.styles.CellAnchor
		case m.paint.marked(x, y):
			style = m.styles.CellSelected
		}
		text := ""
		if line == 0 {
			text = cellText(m.sheet.Get(x, y))
		}
		return style.Render(fit(text, w-1) + " ")
	})
}

// renderScrollbar draws a vertical track with a thumb sized to the visible
// share of the rows.
func (m *Model) renderScrollbar(h int) []string {
	if h <= 0 {
		return nil
	}
	content := max(1, m.contentHeight())
	thumb := clamp(h*h/content, 1, h)
	pos := 0
	if maxScroll := content - h; maxScroll > 0 {
		pos = m.scrollY * (h - thumb) / maxScroll
	}
	bar := make([]string, h)
	for i := range bar {
		if i >= pos && i < pos+thumb {
			bar[i] = m.styles.ScrollThumb.Render("┃")
		} else {
			bar[i] = m.styles.ScrollTrack.Render(separator)
		}
	}
	return bar
}

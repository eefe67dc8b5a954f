package grid

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/sheet"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

const wheelStep = 3

// resizeSession tracks a column or row border drag.
type resizeSession struct {
	column bool
	index  int
	// origin is the screen coordinate of the leading edge being resized.
	origin int
	size   int
}

type resizeHandle struct {
	common.HitRegion
	column bool
	index  int
	origin int
}

// resizeHandles returns the borders that can be dragged: the last cell of
// each visible header and the separator of each visible index cell.
func (m *Model) resizeHandles() []resizeHandle {
	view := m.tracker.ViewBounds()
	var handles []resizeHandle
	for _, x := range m.tracker.VisibleColumns() {
		c, _ := m.ColumnHeader(x)
		edge := c.Bounds.Right - 1
		if edge < view.Left || edge >= view.Right {
			continue
		}
		handles = append(handles, resizeHandle{
			HitRegion: common.HitRegion{ID: "col:" + sheet.ColumnName(x), X: edge, Y: c.Bounds.Top, Width: 1, Height: headerHeight},
			column:    true,
			index:     x,
			origin:    c.Bounds.Left,
		})
	}
	for _, y := range m.tracker.VisibleRows() {
		r, _ := m.RowIndex(y)
		top := max(r.Bounds.Top, view.Top)
		bottom := min(r.Bounds.Bottom, view.Bottom)
		handles = append(handles, resizeHandle{
			HitRegion: common.HitRegion{ID: fmt.Sprintf("row:%d", y+1), X: r.Bounds.Right - 1, Y: top, Width: 1, Height: bottom - top},
			index:     y,
			origin:    r.Bounds.Top,
		})
	}
	return handles
}

func (m *Model) resizeHandleAt(sx, sy int) (resizeHandle, bool) {
	for _, h := range m.resizeHandles() {
		if h.Contains(sx, sy) {
			return h, true
		}
	}
	return resizeHandle{}, false
}

func (m *Model) beginResize(h resizeHandle) tea.Cmd {
	size := m.rowHeight(h.index)
	if h.column {
		size = m.columnWidth(h.index)
	}
	m.resize = &resizeSession{column: h.column, index: h.index, origin: h.origin, size: size}
	m.coordinator.SetResizeActive(true)
	m.pump.Release()
	logging.Debug("grid: resize started column=%v index=%d size=%d", h.column, h.index, size)
	msg := messages.ResizeActive{Column: h.column, Index: h.index}
	return func() tea.Msg { return msg }
}

func (m *Model) dragResize(sx, sy int) {
	r := m.resize
	if r.column {
		r.size = clamp(sx-r.origin+1, minColumnWidth, maxColumnWidth)
		m.SetColumnWidth(r.index, r.size)
		return
	}
	r.size = clamp(sy-r.origin+1, 1, maxRowHeight)
	m.SetRowHeight(r.index, r.size)
}

func (m *Model) endResize() tea.Cmd {
	r := m.resize
	m.resize = nil
	m.coordinator.SetResizeActive(false)
	logging.Debug("grid: resize ended column=%v index=%d size=%d", r.column, r.index, r.size)
	msg := messages.ResizeInactive{Column: r.column, Index: r.index, Size: r.size}
	return func() tea.Msg { return msg }
}

// SetColumnWidth sets the width of logical column x.
func (m *Model) SetColumnWidth(x, w int) {
	if x < 0 || x >= len(m.colWidths) {
		return
	}
	m.colWidths[x] = clamp(w, minColumnWidth, maxColumnWidth)
	m.relayout()
}

// SetRowHeight sets the height of logical row y.
func (m *Model) SetRowHeight(y, h int) {
	if y < 0 || y >= len(m.rowHeights) {
		return
	}
	m.rowHeights[y] = clamp(h, 1, maxRowHeight)
	m.relayout()
}

// AutofitColumn sizes column x to its widest value, header included, plus
// the separator.
func (m *Model) AutofitColumn(x int) int {
	widest := runewidth.StringWidth(sheet.ColumnName(x))
	for _, v := range m.sheet.Column(x) {
		widest = max(widest, runewidth.StringWidth(cellText(v)))
	}
	m.SetColumnWidth(x, widest+1)
	return m.columnWidth(x)
}

func (m *Model) isDoubleClick(sx, sy int) bool {
	now := m.now()
	last := m.lastClick
	m.lastClick = click{x: sx, y: sy, at: now}
	return !last.at.IsZero() && last.x == sx && last.y == sy && now.Sub(last.at) <= doubleClickWindow
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) tea.Cmd {
	if msg.Button != tea.MouseLeft {
		return nil
	}
	var cmds []tea.Cmd
	if m.editing {
		cmds = append(cmds, m.commitEdit())
	}
	double := m.isDoubleClick(msg.X, msg.Y)

	if h, ok := m.resizeHandleAt(msg.X, msg.Y); ok {
		if double && h.column {
			w := m.AutofitColumn(h.index)
			logging.Debug("grid: autofit column %s to %d", sheet.ColumnName(h.index), w)
			resized := messages.ResizeInactive{Column: true, Index: h.index, Size: w}
			cmds = append(cmds, func() tea.Msg { return resized })
			return common.SafeBatch(cmds...)
		}
		cmds = append(cmds, m.beginResize(h))
		return common.SafeBatch(cmds...)
	}

	if m.inCorner(msg.X, msg.Y) {
		m.coordinator.SelectAll()
		return common.SafeBatch(cmds...)
	}

	m.pump.Press(msg.X, msg.Y)
	t, ok := m.TargetAt(msg.X, msg.Y)
	if !ok {
		return common.SafeBatch(cmds...)
	}
	m.coordinator.PointerDown(t, msg.Mod.Contains(tea.ModShift))
	if double && t.Kind == selection.KindData {
		m.coordinator.PointerUp()
		m.pump.Release()
		cmds = append(cmds, m.beginEdit(t.X, t.Y))
	}
	return common.SafeBatch(cmds...)
}

func (m *Model) handleMouseMotion(msg tea.MouseMotionMsg) tea.Cmd {
	if m.resize != nil {
		m.dragResize(msg.X, msg.Y)
		return nil
	}
	buttonDown := msg.Button == tea.MouseLeft
	if _, outside := m.pump.Move(msg.X, msg.Y, buttonDown); outside {
		return nil
	}
	if t, ok := m.TargetAt(msg.X, msg.Y); ok {
		m.coordinator.PointerEnter(t, buttonDown)
	}
	return nil
}

func (m *Model) handleMouseRelease(tea.MouseReleaseMsg) tea.Cmd {
	if m.resize != nil {
		return m.endResize()
	}
	m.pump.Release()
	m.coordinator.PointerUp()
	return nil
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) {
	horizontal := msg.Mod.Contains(tea.ModShift)
	for i := 0; i < wheelStep; i++ {
		switch {
		case msg.Button == tea.MouseWheelLeft, msg.Button == tea.MouseWheelUp && horizontal:
			m.tracker.ScrollColumnLeft()
		case msg.Button == tea.MouseWheelRight, msg.Button == tea.MouseWheelDown && horizontal:
			m.tracker.ScrollColumnRight()
		case msg.Button == tea.MouseWheelUp:
			m.tracker.ScrollRowUp()
		case msg.Button == tea.MouseWheelDown:
			m.tracker.ScrollRowDown()
		}
	}
}

func isShift(code rune) bool {
	return code == tea.KeyLeftShift || code == tea.KeyRightShift
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.editing {
		return m.handleEditorKey(msg)
	}
	if isShift(msg.Code) {
		m.coordinator.KeyDown(selection.DirNone, true, true)
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.ExtendUp):
		m.extend(selection.DirUp)
	case key.Matches(msg, m.keymap.ExtendDown):
		m.extend(selection.DirDown)
	case key.Matches(msg, m.keymap.ExtendLeft):
		m.extend(selection.DirLeft)
	case key.Matches(msg, m.keymap.ExtendRight):
		m.extend(selection.DirRight)
	case key.Matches(msg, m.keymap.MoveUp):
		m.coordinator.KeyDown(selection.DirUp, false, false)
	case key.Matches(msg, m.keymap.MoveDown):
		m.coordinator.KeyDown(selection.DirDown, false, false)
	case key.Matches(msg, m.keymap.MoveLeft):
		m.coordinator.KeyDown(selection.DirLeft, false, false)
	case key.Matches(msg, m.keymap.MoveRight):
		m.coordinator.KeyDown(selection.DirRight, false, false)
	case key.Matches(msg, m.keymap.SelectAll):
		m.coordinator.SelectAll()
	case key.Matches(msg, m.keymap.Deselect):
		m.coordinator.Deactivate()
	case key.Matches(msg, m.keymap.Edit):
		if anchor, ok := m.coordinator.Anchor(); ok {
			return m.beginEdit(anchor.X, anchor.Y)
		}
	case key.Matches(msg, m.keymap.Clear):
		return m.clearSelection()
	case key.Matches(msg, m.keymap.Copy):
		return m.copySelection()
	default:
		m.coordinator.KeyDown(selection.DirNone, msg.Mod.Contains(tea.ModShift), false)
	}
	return nil
}

// extend grows the selection by one step and keeps the moving edge on
// screen.
func (m *Model) extend(dir selection.Direction) {
	m.coordinator.KeyDown(dir, true, false)
	s := m.coordinator.Selection()
	if !s.YRange.IsNoop() {
		m.tracker.ScrollRowFullyIntoView(s.YRange.End())
	}
	if !s.XRange.IsNoop() {
		m.tracker.ScrollColumnFullyIntoView(s.XRange.End())
	}
}

func (m *Model) clearSelection() tea.Cmd {
	x0, y0, x1, y1, ok := m.selectionBlock()
	if !ok {
		return nil
	}
	cleared := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if m.sheet.Get(x, y) == "" {
				continue
			}
			if err := m.sheet.Set(x, y, ""); err != nil {
				logging.Warn("grid: clear %s: %v", sheet.CellName(x, y), err)
				continue
			}
			cleared++
		}
	}
	logging.Debug("grid: cleared %d cells", cleared)
	toast := messages.Toast{Message: fmt.Sprintf("Cleared %d cells", cleared), Level: messages.ToastInfo}
	return func() tea.Msg { return toast }
}

func (m *Model) copySelection() tea.Cmd {
	x0, y0, x1, y1, ok := m.selectionBlock()
	if !ok {
		return nil
	}
	block := m.sheet.Block(x0, y0, x1, y1)
	return common.CopyCmd(sheet.TSV(block), (x1-x0+1)*(y1-y0+1))
}

// beginEdit opens the inline editor on (x, y) and suspends selection.
func (m *Model) beginEdit(x, y int) tea.Cmd {
	cols, rows := m.sheet.Dims()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return nil
	}
	m.tracker.ScrollRowFullyIntoView(y)
	m.tracker.ScrollColumnFullyIntoView(x)
	m.editing = true
	m.editX, m.editY = x, y
	m.editor.SetValue(m.sheet.Get(x, y))
	m.editor.CursorEnd()
	m.editor.SetWidth(max(1, m.columnWidth(x)-1))
	m.coordinator.SetEnabled(false)
	logging.Debug("grid: editing %s", sheet.CellName(x, y))
	return m.editor.Focus()
}

func (m *Model) endEdit() {
	m.editing = false
	m.editor.Blur()
	m.coordinator.SetEnabled(true)
}

func (m *Model) cancelEdit() {
	if m.editing {
		m.endEdit()
	}
}

// commitEdit writes the editor value to the sheet and closes the editor.
func (m *Model) commitEdit() tea.Cmd {
	if !m.editing {
		return nil
	}
	x, y, value := m.editX, m.editY, m.editor.Value()
	m.endEdit()
	if err := m.sheet.Set(x, y, value); err != nil {
		logging.Error("grid: set %s: %v", sheet.CellName(x, y), err)
		return func() tea.Msg { return messages.Error{Err: err, Context: "edit", Logged: true} }
	}
	m.relayout()
	edited := messages.CellEdited{X: x, Y: y, Value: value}
	return func() tea.Msg { return edited }
}

func (m *Model) handleEditorKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Commit):
		return m.commitEdit()
	case key.Matches(msg, m.keymap.Cancel):
		m.cancelEdit()
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

package app

import (
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/cellgrid/internal/keymap"
	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/perf"
)

type toolbarAction struct {
	id    string
	label string
}

var toolbarActions = []toolbarAction{
	{id: "save", label: "Save"},
	{id: "reload", label: "Reload"},
	{id: "quit", label: "Quit"},
}

func toolbarZoneID(id string) string { return "toolbar-" + id }

// View renders the toolbar, the grid and the status line.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	view := tea.View{
		AltScreen:            true,
		MouseMode:            tea.MouseModeCellMotion,
		KeyboardEnhancements: tea.KeyboardEnhancements{ReportEventTypes: true},
	}
	view.SetContent(a.render())
	return view
}

func (a *App) render() string {
	switch {
	case a.quitting:
		return ""
	case !a.ready:
		return "Loading..."
	}
	content := strings.Join([]string{a.renderToolbar(), a.grid.View(), a.renderStatus()}, "\n")
	return a.zone.Scan(content)
}

func (a *App) renderToolbar() string {
	s := a.grid.Sheet()
	title := "untitled"
	if s.Path != "" {
		title = filepath.Base(s.Path)
	}
	if s.Dirty() {
		title += " [+]"
	}
	left := a.styles.Title.Render(" cellgrid ") + a.styles.Toolbar.Render(title)

	var buttons []string
	for _, action := range toolbarActions {
		label := a.styles.ToolbarButton.Render("[" + action.label + "]")
		buttons = append(buttons, a.zone.Mark(toolbarZoneID(action.id), label))
	}
	right := strings.Join(buttons, " ") + " "
	return spread(left, right, a.width)
}

func (a *App) renderStatus() string {
	text := a.summary
	style := a.styles.Status
	if a.status != "" {
		text = a.status
		switch a.statusLevel {
		case messages.ToastError:
			style = a.styles.StatusError
		case messages.ToastSuccess:
			style = a.styles.StatusOK
		}
	}
	hint := keymap.HelpLine(a.keymap.Edit, a.keymap.Copy, a.keymap.Save, a.keymap.Quit)
	return spread(style.Render(" "+text), a.styles.Muted.Render(hint+" "), a.width)
}

// spread places left and right on one line of width cells, cutting the
// right part first when they do not fit.
func spread(left, right string, width int) string {
	lw, rw := lipgloss.Width(left), lipgloss.Width(right)
	if lw+rw > width {
		right = ""
		rw = 0
		if lw > width {
			left = ansi.Truncate(left, width, "")
			lw = lipgloss.Width(left)
		}
	}
	return left + strings.Repeat(" ", max(0, width-lw-rw)) + right
}

// handleToolbarClick runs the toolbar action under (x, y), if any.
func (a *App) handleToolbarClick(x, y int) tea.Cmd {
	for _, action := range toolbarActions {
		z := a.zone.Get(toolbarZoneID(action.id))
		if z.IsZero() || x < z.StartX || x > z.EndX || y < z.StartY || y > z.EndY {
			continue
		}
		switch action.id {
		case "save":
			return a.saveCmd()
		case "reload":
			return a.reloadCmd()
		case "quit":
			return a.quit()
		}
	}
	return nil
}

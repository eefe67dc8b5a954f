package common

import "charm.land/lipgloss/v2"

// Styles contains all the application styles
type Styles struct {
	// Grid
	Corner         lipgloss.Style
	Header         lipgloss.Style
	HeaderSelected lipgloss.Style
	Index          lipgloss.Style
	IndexSelected  lipgloss.Style
	Cell           lipgloss.Style
	CellSelected   lipgloss.Style
	CellAnchor     lipgloss.Style
	Editor         lipgloss.Style
	ScrollTrack    lipgloss.Style
	ScrollThumb    lipgloss.Style

	// Chrome
	Toolbar       lipgloss.Style
	ToolbarButton lipgloss.Style
	Title         lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusOK      lipgloss.Style
	Muted         lipgloss.Style
}

// NewStyles builds the style set for theme.
func NewStyles(theme Theme) Styles {
	c := theme.Colors
	band := lipgloss.NewStyle().Background(c.Band).Foreground(c.Muted)
	return Styles{
		Corner:         band,
		Header:         band.Bold(true),
		HeaderSelected: band.Bold(true).Foreground(c.Primary),
		Index:          band,
		IndexSelected:  band.Foreground(c.Primary),
		Cell:           lipgloss.NewStyle().Foreground(c.Foreground),
		CellSelected:   lipgloss.NewStyle().Foreground(c.Foreground).Background(c.Selection),
		CellAnchor:     lipgloss.NewStyle().Foreground(c.Foreground).Background(c.Anchor).Bold(true),
		Editor:         lipgloss.NewStyle().Foreground(c.Background).Background(c.Primary),
		ScrollTrack:    lipgloss.NewStyle().Foreground(c.Border),
		ScrollThumb:    lipgloss.NewStyle().Foreground(c.Muted),

		Toolbar:       lipgloss.NewStyle().Foreground(c.Foreground),
		ToolbarButton: lipgloss.NewStyle().Foreground(c.Primary).Bold(true),
		Title:         lipgloss.NewStyle().Foreground(c.Primary).Bold(true),
		Status:        lipgloss.NewStyle().Foreground(c.Muted),
		StatusError:   lipgloss.NewStyle().Foreground(c.Error),
		StatusOK:      lipgloss.NewStyle().Foreground(c.Success),
		Muted:         lipgloss.NewStyle().Foreground(c.Muted),
	}
}

// DefaultStyles returns the dark style set.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

package common

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// ThemeID identifies a color theme.
type ThemeID string

const (
	ThemeDark  ThemeID = "dark"
	ThemeLight ThemeID = "light"
)

// ThemeColors defines all colors used by the application.
type ThemeColors struct {
	Background color.Color
	Foreground color.Color
	Muted      color.Color
	Border     color.Color

	Primary color.Color
	Warning color.Color
	Error   color.Color
	Success color.Color

	// Header and index bands
	Band color.Color
	// Selected cells and the anchor cell
	Selection color.Color
	Anchor    color.Color
}

// Theme represents a complete color theme.
type Theme struct {
	ID     ThemeID
	Name   string
	Colors ThemeColors
}

// DarkTheme is a Tokyo Night palette.
func DarkTheme() Theme {
	return Theme{
		ID:   ThemeDark,
		Name: "Dark",
		Colors: ThemeColors{
			Background: lipgloss.Color("#1a1b26"),
			Foreground: lipgloss.Color("#a9b1d6"),
			Muted:      lipgloss.Color("#565f89"),
			Border:     lipgloss.Color("#292e42"),
			Primary:    lipgloss.Color("#7aa2f7"),
			Warning:    lipgloss.Color("#e0af68"),
			Error:      lipgloss.Color("#f7768e"),
			Success:    lipgloss.Color("#9ece6a"),
			Band:       lipgloss.Color("#24283b"),
			Selection:  lipgloss.Color("#33467c"),
			Anchor:     lipgloss.Color("#3d59a1"),
		},
	}
}

// LightTheme is a Solarized Light palette.
func LightTheme() Theme {
	return Theme{
		ID:   ThemeLight,
		Name: "Light",
		Colors: ThemeColors{
			Background: lipgloss.Color("#fdf6e3"),
			Foreground: lipgloss.Color("#657b83"),
			Muted:      lipgloss.Color("#93a1a1"),
			Border:     lipgloss.Color("#eee8d5"),
			Primary:    lipgloss.Color("#268bd2"),
			Warning:    lipgloss.Color("#b58900"),
			Error:      lipgloss.Color("#dc322f"),
			Success:    lipgloss.Color("#859900"),
			Band:       lipgloss.Color("#eee8d5"),
			Selection:  lipgloss.Color("#d6e4f0"),
			Anchor:     lipgloss.Color("#a7c7e7"),
		},
	}
}

// GetTheme returns the theme for id, defaulting to dark.
func GetTheme(id ThemeID) Theme {
	if id == ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

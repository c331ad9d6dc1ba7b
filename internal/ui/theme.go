package ui

import "github.com/charmbracelet/lipgloss"

// ThemeName identifies a named color theme.
type ThemeName int

const (
	ThemeClassic ThemeName = iota
	ThemeModern
)

const (
	ThemeNameClassic = "classic"
	ThemeNameModern  = "modern"
)

// ParseThemeName converts a string to a ThemeName, defaulting to
// ThemeClassic for anything unrecognized.
func ParseThemeName(s string) ThemeName {
	if s == ThemeNameModern {
		return ThemeModern
	}
	return ThemeClassic
}

// Theme holds the color values used throughout the GUI.
type Theme struct {
	Name         string
	TitleText    lipgloss.Color
	MenuSelected lipgloss.Color
	MenuNormal   lipgloss.Color
	HelpText     lipgloss.Color
	ErrorText    lipgloss.Color
	StatusText   lipgloss.Color
	BoardBorder  lipgloss.Color
	P0Text       lipgloss.Color
	P1Text       lipgloss.Color
}

var themes = map[ThemeName]Theme{
	ThemeClassic: {
		Name:         ThemeNameClassic,
		TitleText:    lipgloss.Color("33"),
		MenuSelected: lipgloss.Color("212"),
		MenuNormal:   lipgloss.Color("250"),
		HelpText:     lipgloss.Color("245"),
		ErrorText:    lipgloss.Color("160"),
		StatusText:   lipgloss.Color("34"),
		BoardBorder:  lipgloss.Color("240"),
		P0Text:       lipgloss.Color("39"),
		P1Text:       lipgloss.Color("208"),
	},
	ThemeModern: {
		Name:         ThemeNameModern,
		TitleText:    lipgloss.Color("99"),
		MenuSelected: lipgloss.Color("170"),
		MenuNormal:   lipgloss.Color("252"),
		HelpText:     lipgloss.Color("244"),
		ErrorText:    lipgloss.Color("196"),
		StatusText:   lipgloss.Color("42"),
		BoardBorder:  lipgloss.Color("238"),
		P0Text:       lipgloss.Color("81"),
		P1Text:       lipgloss.Color("214"),
	},
}

// GetTheme returns the Theme for name, defaulting to ThemeClassic for an
// unregistered name.
func GetTheme(name ThemeName) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[ThemeClassic]
}

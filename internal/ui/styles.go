// Package ui holds the styling shared by the geopins screens.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#2196F3")
	Accent      = lipgloss.Color("#8BC34A")
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
	Muted       = lipgloss.Color("#6b7280")
)

// Styles contains all the lipgloss styles used by the screens.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Help      lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Prompt    lipgloss.Style
	Grid      lipgloss.Style
	Marker    lipgloss.Style
	Temporary lipgloss.Style
	Highlight lipgloss.Style
	Cursor    lipgloss.Style
	Row       lipgloss.Style
	RowActive lipgloss.Style
	Action    lipgloss.Style
	Delete    lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Header:    lipgloss.NewStyle().Bold(true).Underline(true),
		Help:      lipgloss.NewStyle().Foreground(Muted),
		Notice:    lipgloss.NewStyle().Foreground(Accent),
		Error:     lipgloss.NewStyle().Foreground(Destructive),
		Prompt:    lipgloss.NewStyle().Bold(true).Foreground(Warning),
		Grid:      lipgloss.NewStyle().Foreground(Muted),
		Marker:    lipgloss.NewStyle().Bold(true).Foreground(Destructive),
		Temporary: lipgloss.NewStyle().Bold(true).Foreground(Warning),
		Highlight: lipgloss.NewStyle().Foreground(Primary),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Row:       lipgloss.NewStyle(),
		RowActive: lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Action:    lipgloss.NewStyle().Foreground(Primary),
		Delete:    lipgloss.NewStyle().Foreground(Destructive),
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Primary = lipgloss.Color("#1f6feb")
	Muted   = lipgloss.Color("#8b949e")
	Border  = lipgloss.Color("#30363d")
	Green   = lipgloss.Color("#3fb950")
	Amber   = lipgloss.Color("#d29922")
	Red     = lipgloss.Color("#f85149")
)

// Styles holds the styled components of the desk.
type Styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Panel     lipgloss.Style
	Label     lipgloss.Style
	Help      lipgloss.Style
	Selected  lipgloss.Style

	DialogInfo  lipgloss.Style
	DialogWarn  lipgloss.Style
	DialogError lipgloss.Style
}

func NewStyles() Styles {
	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		MarginTop(1)
	return Styles{
		Tab: lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(Primary).
			Bold(true).
			Padding(0, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(Border).
			Padding(1, 1),
		Label: lipgloss.NewStyle().
			Width(14).
			Foreground(Muted),
		Help: lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1),
		Selected: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true),
		DialogInfo:  dialog.BorderForeground(Green),
		DialogWarn:  dialog.BorderForeground(Amber),
		DialogError: dialog.BorderForeground(Red),
	}
}

// TableStyles matches the bubbles table to the palette.
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#ffffff")).
		Background(Primary)
	return s
}

package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var palette = struct {
	text      lipgloss.Color
	textMuted lipgloss.Color
	border    lipgloss.Color
	accent    lipgloss.Color
	selection lipgloss.Color
	danger    lipgloss.Color
}{
	text:      lipgloss.Color("252"),
	textMuted: lipgloss.Color("245"),
	border:    lipgloss.Color("240"),
	accent:    lipgloss.Color("39"),
	selection: lipgloss.Color("24"),
	danger:    lipgloss.Color("203"),
}

type styles struct {
	title        lipgloss.Style
	panel        lipgloss.Style
	panelFocused lipgloss.Style
	detail       lipgloss.Style
	err          lipgloss.Style
	status       lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(palette.accent),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.border).
			Padding(0, 1),
		panelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.accent).
			Padding(0, 1),
		detail: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(palette.accent).
			Foreground(palette.text).
			Padding(0, 1),
		err: lipgloss.NewStyle().
			Foreground(palette.danger),
		status: lipgloss.NewStyle().
			Foreground(palette.textMuted),
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.textMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(palette.border).
		BorderBottom(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().
		Foreground(palette.text).
		Background(palette.selection)
	return s
}

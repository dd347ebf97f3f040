package tasks

import "github.com/charmbracelet/lipgloss"

type styles struct {
	id       lipgloss.Style
	priority lipgloss.Style
	folder   lipgloss.Style
	context  lipgloss.Style
	goal     lipgloss.Style
	meta     lipgloss.Style
	starred  lipgloss.Style
	title    lipgloss.Style
	note     lipgloss.Style
	empty    lipgloss.Style
}

func newStyles() styles {
	return styles{
		id:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		priority: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		folder:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		context:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		goal:     lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		starred:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		title:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note:     lipgloss.NewStyle().Faint(true),
		empty:    lipgloss.NewStyle().Faint(true),
	}
}

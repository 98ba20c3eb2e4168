package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	mod      lipgloss.Style
	id       lipgloss.Style
	detail   lipgloss.Style
	skip     lipgloss.Style
	reuse    lipgloss.Style
	download lipgloss.Style
	warning  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		mod:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		id:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		skip:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		reuse:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		download: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
	}
}

func (s styles) action(label string, style lipgloss.Style) string {
	return style.Render(label)
}

package monitor

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	muted    lipgloss.Style
	info     lipgloss.Style
	err      lipgloss.Style
	rate     lipgloss.Style
	overrun  lipgloss.Style
	underrun lipgloss.Style
}

// ANSI Color reference
// 0	Black
// 1	Red
// 2	Green
// 3	Yellow
// 4	Blue
// 5	Magenta
// 6	Cyan
// 7	White
// 8	Bright Black (Gray)

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)),
		label:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		value:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		info:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(5)),
		err:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		rate:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		overrun:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1)),
		underrun: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
	}
}

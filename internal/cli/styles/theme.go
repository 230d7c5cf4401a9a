// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds lipgloss colors and styles used by the watch TUI.
type Theme struct {
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Error  lipgloss.Color
	Warn   lipgloss.Color
	Good   lipgloss.Color

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Subtle     lipgloss.Style
	Highlight  lipgloss.Style
	ErrorStyle lipgloss.Style
	GoodStyle  lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Box lipgloss.Style
}

// DefaultTheme returns the dark theme used by the watch screen.
func DefaultTheme() *Theme {
	t := &Theme{
		Text:   lipgloss.Color("#e6e6e6"),
		Muted:  lipgloss.Color("#8a8a8a"),
		Accent: lipgloss.Color("#7aa2f7"),
		Error:  lipgloss.Color("#f7768e"),
		Warn:   lipgloss.Color("#e0af68"),
		Good:   lipgloss.Color("#9ece6a"),
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Subtitle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Normal = lipgloss.NewStyle().Foreground(t.Text)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Highlight = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	t.ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	t.GoodStyle = lipgloss.NewStyle().Foreground(t.Good)

	t.Badge = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1a1b26")).
		Background(t.Good).
		Padding(0, 1).
		Bold(true)
	t.BadgeMuted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1a1b26")).
		Background(t.Muted).
		Padding(0, 1)

	t.HelpKey = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.HelpDesc = lipgloss.NewStyle().Foreground(t.Muted)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(1, 2)

	return t
}

package tui

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    = ac("240", "243")
	colorAccent   = ac("25", "75")
	colorSuccess  = ac("28", "42")
	colorError    = ac("160", "203")
	colorBorder   = ac("250", "243")
	colorSelected = ac("232", "255")

	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleLabel    = lipgloss.NewStyle().Bold(true).Width(12)
	styleFieldErr = lipgloss.NewStyle().Foreground(colorError)
	styleSuccess  = lipgloss.NewStyle().Bold(true).Foreground(ac("255", "232")).Background(colorSuccess).Padding(0, 1)
	styleFailure  = lipgloss.NewStyle().Bold(true).Foreground(ac("255", "232")).Background(colorError).Padding(0, 1)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(30)
	styleCardSelected = styleCard.BorderForeground(colorSelected)

	styleRowSelected = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)

package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dimColor    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	okColor     = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	errColor    = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	codeStyle = lipgloss.NewStyle().Foreground(accentColor)

	selectedStyle = lipgloss.NewStyle().Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(dimColor)

	okStyle = lipgloss.NewStyle().Foreground(okColor)

	errStyle = lipgloss.NewStyle().Foreground(errColor)
)

// boxStyle returns a rounded border, accented when focused.
func boxStyle(focused bool) lipgloss.Style {
	border := lipgloss.AdaptiveColor{Light: "240", Dark: "240"}
	if focused {
		border = accentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

// boxWidth returns the inner width for a box spanning totalWidth,
// or 0 (unconstrained) before the first window size is known.
func boxWidth(totalWidth int) int {
	const chrome = 4 // two border cells plus horizontal padding
	if totalWidth <= chrome {
		return 0
	}
	return totalWidth - chrome
}

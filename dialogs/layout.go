package dialogs

import "github.com/charmbracelet/lipgloss"

const (
	overlayBG = lipgloss.Color("236")
	borderFG  = lipgloss.Color("252")
	boxWidth  = 60
)

// Overlay centres a dialog on a width x height backdrop.
func Overlay(d Dialog, width, height int) string {
	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		d.View(),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(overlayBG),
	)
}

func box() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderFG).
		BorderBackground(overlayBG).
		Padding(1, 2).
		Width(boxWidth)
}

func hint(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}

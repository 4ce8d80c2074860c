package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const appTitle = "Partial Epoch DB"

// renderHeader draws the title on the left and the result count on the right
func renderHeader(width int, count string) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHeader)).
		Bold(true)

	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Width(width)

	title := titleStyle.Render(appTitle)
	right := HeaderStyle.Render(count)

	// -2 for padding
	gap := width - 2 - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerPadding.Render(lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		lipgloss.NewStyle().Width(gap).Render(""),
		right,
	))
}

package styles

import "github.com/charmbracelet/lipgloss"

// Panel returns the bordered box used around the player and the track
// list, sized so that the rendered box is exactly width cells wide.
func Panel(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(T().Border).
		Padding(0, 1).
		Width(max(width-2, 0))
}

// PanelInnerWidth is the content width inside Panel(width).
func PanelInnerWidth(width int) int {
	return max(width-4, 0)
}

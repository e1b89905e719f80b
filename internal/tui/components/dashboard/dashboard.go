// Package dashboard renders the four header cards summarizing a journal.
package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flowplanr/internal/models"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2).
			Align(lipgloss.Center)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type card struct {
	label string
	value string
}

func cards(s models.DashboardSnapshot) []card {
	return []card{
		{"Total entries", fmt.Sprintf("%d", s.TotalEntries)},
		{"Day streak", fmt.Sprintf("%d", s.Streak)},
		{"This week", fmt.Sprintf("%d", s.ThisWeekEntries)},
		{"Completion", fmt.Sprintf("%d%%", s.CompletionRate)},
	}
}

// Render lays the cards out side by side, or in a 2x2 grid when width is
// too narrow for one row. A width of 0 means unlimited.
func Render(s models.DashboardSnapshot, width int) string {
	var rendered []string
	for _, c := range cards(s) {
		rendered = append(rendered, cardStyle.Width(16).Render(
			lipgloss.JoinVertical(lipgloss.Center, valueStyle.Render(c.value), labelStyle.Render(c.label)),
		))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if width == 0 || lipgloss.Width(row) <= width {
		return row
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], rendered[1]),
		lipgloss.JoinHorizontal(lipgloss.Top, rendered[2], rendered[3]),
	)
}

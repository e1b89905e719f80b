package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/tui/components/dashboard"
	"github.com/julianstephens/flowplanr/internal/tui/components/history"
	"github.com/julianstephens/flowplanr/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == StateLogin {
		return docStyle.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			brandStyle.Render(constants.AppName),
			m.viewStatus(),
			m.form.View(),
		))
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateHistory:
		content = docStyle.Render(m.historyModel.View())
	case StateExport:
		content = docStyle.Render(m.exportModel.View())
	case StateSettings:
		content = m.settingsModel.View()
	case StateEditing, StateEditSettings:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewStatus(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, brandStyle.Render(constants.AppName), m.viewTabs()),
		dashboard.Render(m.snapshot, m.width),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		active := m.state == SessionState(i)
		if m.state >= StateEditing {
			active = m.previousState == SessionState(i)
		}
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return dangerStyle.Render("✗ " + m.status)
	}
	return successStyle.Render("✓ " + m.status)
}

func (m Model) viewToday() string {
	heading := "Today · " + utils.FormatLongDate(m.todayDate)
	if m.today.ID == "" {
		return docStyle.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			activeTabStyle.Render(heading),
			"",
			mutedStyle.Render("Nothing written yet today. Press 'e' to plan your day."),
		))
	}
	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		activeTabStyle.Render(heading),
		mutedStyle.Render("Last saved "+humanize.RelTime(m.today.UpdatedAt, m.clock(), "ago", "from now")),
		history.Render(m.today),
	))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-lipgloss.Height(m.viewHeader())-2, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this entry permanently?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

// layout sizes the tab components to the space left under the header.
func (m *Model) layout() {
	height := m.height - lipgloss.Height(m.viewHeader()) - 4
	if height < 3 {
		height = 3
	}
	width := m.width - 4
	m.historyModel.SetSize(width, height)
	m.exportModel.SetSize(width, height)
	m.settingsModel.SetSize(m.width, height)
}

// Package export is the Smart Export tab: pick a report kind, preview the
// generated report, then copy or download it.
package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flowplanr/internal/models"
)

type CopyReportMsg struct {
	Kind models.ReportKind
	Text string
}

// DownloadReportMsg asks the parent to write the full report for Kind.
type DownloadReportMsg struct {
	Kind models.ReportKind
}

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Copy     key.Binding
	Download key.Binding
	Prompt   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev kind"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next kind"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Download: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save file"),
		),
		Prompt: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "report/prompt"),
		),
	}
}

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("236")).
			PaddingRight(2).
			MarginRight(2)
)

const menuWidth = 34

type Model struct {
	reports    map[models.ReportKind]string
	prompts    map[models.ReportKind]string
	cursor     int
	showPrompt bool
	preview    viewport.Model
	keys       KeyMap
}

func New(width, height int) Model {
	m := Model{
		preview: viewport.New(0, height),
		keys:    DefaultKeyMap(),
	}
	m.SetSize(width, height)
	return m
}

// SetContent replaces the generated texts, keeping the selected kind.
func (m *Model) SetContent(reports, prompts map[models.ReportKind]string) {
	m.reports = reports
	m.prompts = prompts
	m.refresh()
}

func (m *Model) SetSize(width, height int) {
	m.preview.Width = max(width-menuWidth-4, 20)
	m.preview.Height = height
}

func (m Model) Selected() models.ReportKind {
	return models.ReportKinds[m.cursor]
}

// Text is the report or prompt currently previewed.
func (m Model) Text() string {
	if m.showPrompt {
		return m.prompts[m.Selected()]
	}
	return m.reports[m.Selected()]
}

func (m *Model) refresh() {
	m.preview.SetContent(m.Text())
	m.preview.GotoTop()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(models.ReportKinds)-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil
		case key.Matches(msg, m.keys.Prompt):
			m.showPrompt = !m.showPrompt
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			kind, text := m.Selected(), m.Text()
			return m, func() tea.Msg { return CopyReportMsg{Kind: kind, Text: text} }
		case key.Matches(msg, m.keys.Download):
			kind := m.Selected()
			return m, func() tea.Msg { return DownloadReportMsg{Kind: kind} }
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var rows []string
	for i, kind := range models.ReportKinds {
		title := kindStyle.Render("  " + kind.Title())
		if i == m.cursor {
			title = selectedStyle.Render("› " + kind.Title())
		}
		rows = append(rows, title, descStyle.Width(menuWidth).Render("  "+kind.Description()), "")
	}
	mode := "Report"
	if m.showPrompt {
		mode = "Prompt only"
	}
	rows = append(rows, descStyle.Render(fmt.Sprintf("Preview: %s", mode)))

	menu := menuStyle.Width(menuWidth).Render(strings.Join(rows, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, menu, m.preview.View())
}

func (m Model) KeyBindings() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Prompt, m.keys.Copy, m.keys.Download}
}

package settings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/flowplanr/internal/models"
)

type EditSettingsMsg struct{}

type LogoutMsg struct{}

// Info is everything the tab shows besides the editable settings.
type Info struct {
	User      models.User
	StorePath string
	LogPath   string
	Entries   int
}

type Model struct {
	settings models.Settings
	info     Info
	width    int
	height   int
	edit     key.Binding
	logout   key.Binding
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

func New(settings models.Settings, info Info, width, height int) Model {
	return Model{
		settings: settings,
		info:     info,
		width:    width,
		height:   height,
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit settings"),
		),
		logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
	}
}

func (m *Model) SetSettings(settings models.Settings, info Info) {
	m.settings = settings
	m.info = info
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.edit):
			return m, func() tea.Msg { return EditSettingsMsg{} }
		case key.Matches(msg, m.logout):
			return m, func() tea.Msg { return LogoutMsg{} }
		}
	}
	return m, nil
}

func row(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var sections []string

	general := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Timezone:", m.settings.Timezone),
		row("Export folder:", m.settings.ExportDir),
	)
	sections = append(sections, sectionStyle.Render(titleStyle.Render("General Settings")+"\n"+general))

	name := m.info.User.Name
	if name == "" {
		name = "(no name)"
	}
	account := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Name:", name),
		row("Email:", m.info.User.Email),
		row("Member since:", humanize.Time(m.info.User.CreatedAt)),
		row("Entries:", humanize.Comma(int64(m.info.Entries))),
	)
	sections = append(sections, sectionStyle.Render(titleStyle.Render("Account")+"\n"+account))

	storage := lipgloss.JoinVertical(
		lipgloss.Left,
		row("Store:", m.info.StorePath),
		row("Log file:", m.info.LogPath),
	)
	sections = append(sections, sectionStyle.Render(titleStyle.Render("Storage")+"\n"+storage))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 4).Render(lipgloss.JoinVertical(lipgloss.Left, sections...)),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) KeyBindings() []key.Binding {
	return []key.Binding{m.edit, m.logout}
}

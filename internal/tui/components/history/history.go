// Package history lists past journal entries in the TUI History tab.
package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flowplanr/internal/journal"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/utils"
)

type EditEntryMsg struct {
	Entry models.JournalEntry
}

type DeleteEntryMsg struct {
	ID string
}

// FilterChangedMsg asks the parent to reload entries for a new filter.
type FilterChangedMsg struct {
	Filter journal.Filter
}

type Item struct {
	Entry models.JournalEntry
}

func (i Item) Title() string {
	s := stats.ForEntry(i.Entry)
	return fmt.Sprintf("%s  %d/%d tasks", utils.FormatLongDate(i.Entry.Date), s.CompletedTasks, s.TotalTasks)
}
func (i Item) Description() string { return journal.Preview(i.Entry) }

// FilterValue feeds the list's built-in fuzzy filter with every text field.
func (i Item) FilterValue() string {
	return i.Entry.Date + " " + strings.Join(i.Entry.TextValues(), " ")
}

type KeyMap struct {
	Open   key.Binding
	Edit   key.Binding
	Delete key.Binding
	Cycle  key.Binding
	Back   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle range"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	fieldStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Model struct {
	list    list.Model
	detail  viewport.Model
	reading bool
	filter  journal.Filter
	keys    KeyMap
}

func New(entries []models.JournalEntry, width, height int) Model {
	l := list.New(items(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "History"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Edit, keys.Delete, keys.Cycle}
	}

	return Model{
		list:   l,
		detail: viewport.New(width, height),
		filter: journal.FilterAll,
		keys:   keys,
	}
}

func items(entries []models.JournalEntry) []list.Item {
	out := make([]list.Item, len(entries))
	for i, e := range entries {
		out[i] = Item{Entry: e}
	}
	return out
}

func (m *Model) SetEntries(entries []models.JournalEntry) {
	m.list.SetItems(items(entries))
}

func (m Model) Filter() journal.Filter { return m.filter }

// Typing reports whether the list's filter input has focus, in which case
// the parent must not treat keys as shortcuts.
func (m Model) Typing() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Reading() bool { return m.reading }

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
	m.detail.Width = width
	m.detail.Height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.reading {
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
			m.reading = false
			return m, nil
		}
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Typing() {
		switch {
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				m.detail.SetContent(Render(i.Entry))
				m.detail.GotoTop()
				m.reading = true
			}
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditEntryMsg(i) }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{ID: i.Entry.ID} }
			}
		case key.Matches(msg, m.keys.Cycle):
			m.filter = next(m.filter)
			f := m.filter
			return m, func() tea.Msg { return FilterChangedMsg{Filter: f} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func next(f journal.Filter) journal.Filter {
	for i, candidate := range journal.Filters {
		if candidate == f {
			return journal.Filters[(i+1)%len(journal.Filters)]
		}
	}
	return journal.FilterAll
}

func (m Model) View() string {
	if m.reading {
		return m.detail.View()
	}
	header := mutedStyle.Render(fmt.Sprintf("Showing: %s  (%d entries)", m.filter.Label(), len(m.list.Items())))
	if len(m.list.Items()) == 0 && !m.Typing() {
		return header + "\n\n  No entries for this range.\n  Press 'f' to widen it."
	}
	return header + "\n" + m.list.View()
}

// Render formats every non-empty field of e for reading.
func Render(e models.JournalEntry) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(utils.FormatLongDate(e.Date)))
	b.WriteString("\n")
	for _, f := range models.EntryFields {
		value := *e.Field(f.Key)
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n%s\n", fieldStyle.Render(f.Icon+" "+f.Label), value)
	}
	if e.IsEmpty() {
		b.WriteString("\n" + mutedStyle.Render("Empty entry") + "\n")
	}
	return b.String()
}

func (m Model) KeyBindings() []key.Binding {
	if m.reading {
		return []key.Binding{m.keys.Back}
	}
	return []key.Binding{m.keys.Open, m.keys.Edit, m.keys.Delete, m.keys.Cycle}
}

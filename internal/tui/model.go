package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flowplanr/internal/auth"
	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/export"
	"github.com/julianstephens/flowplanr/internal/journal"
	"github.com/julianstephens/flowplanr/internal/logger"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
	exporttab "github.com/julianstephens/flowplanr/internal/tui/components/export"
	"github.com/julianstephens/flowplanr/internal/tui/components/history"
	"github.com/julianstephens/flowplanr/internal/tui/components/settings"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHistory
	StateExport
	StateSettings
	StateLogin
	StateEditing
	StateEditSettings
	StateConfirmDelete
)

const tabCount = 4

var tabTitles = []string{"Today", "History", "Smart Export", "Settings"}

type LoginFormModel struct {
	Register bool
	Name     string
	Email    string
	Password string
}

type SettingsFormModel struct {
	Timezone  string
	ExportDir string
}

type Model struct {
	ctx      *cli.Context
	auth     *auth.Service
	journal  *journal.Service
	exporter *export.Service

	user          models.User
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	historyModel  history.Model
	exportModel   exporttab.Model
	settingsModel settings.Model

	form         *huh.Form
	loginForm    *LoginFormModel
	settingsForm *SettingsFormModel
	editing      *models.JournalEntry
	editingDate  string

	todayDate     string
	today         models.JournalEntry
	snapshot      models.DashboardSnapshot
	settings      models.Settings
	entryToDelete string
	status        string
	statusIsError bool
	clock         func() time.Time
	quitting      bool
	width         int
	height        int
}

// NewModel opens on the Today tab for the logged-in user, or on the sign-in
// form when there is no valid session.
func NewModel(ctx *cli.Context) Model {
	m := Model{
		ctx:           ctx,
		auth:          ctx.Auth(),
		journal:       ctx.Journal(),
		exporter:      ctx.Export(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		historyModel:  history.New(nil, 0, 0),
		exportModel:   exporttab.New(0, 0),
		settingsModel: settings.New(models.Settings{}, settings.Info{}, 0, 0),
		clock:         time.Now,
	}

	user, err := m.auth.CurrentUser()
	if err != nil {
		if !errors.Is(err, auth.ErrNotLoggedIn) {
			m.setError(err)
		}
		m.startLogin("")
		return m
	}
	m.user = user
	m.state = StateToday
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// refresh reloads everything shown for the current user.
func (m *Model) refresh() {
	settingsData, err := m.ctx.Store.GetSettings()
	if err != nil {
		m.setError(err)
	}
	models.ApplyDefaultSettings(&settingsData)
	m.settings = settingsData

	m.todayDate, err = m.journal.Today()
	if err != nil {
		m.setError(err)
		return
	}
	m.today, err = m.journal.Get(m.user.ID, m.todayDate)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.setError(err)
		}
		m.today = models.JournalEntry{Date: m.todayDate}
	}

	if m.snapshot, err = m.journal.Snapshot(m.user.ID); err != nil {
		m.setError(err)
	}
	m.reloadHistory()

	reports, err := m.exporter.Reports(m.user.ID)
	if err != nil {
		m.setError(err)
	}
	prompts, err := m.exporter.Prompts(m.user.ID)
	if err != nil {
		m.setError(err)
	}
	m.exportModel.SetContent(reports, prompts)

	m.settingsModel.SetSettings(m.settings, settings.Info{
		User:      m.user,
		StorePath: m.ctx.Store.GetConfigPath(),
		LogPath:   logger.LogFile(m.ctx.ConfigDir),
		Entries:   m.snapshot.TotalEntries,
	})
}

func (m *Model) reloadHistory() {
	entries, err := m.journal.History(m.user.ID, journal.Query{Filter: m.historyModel.Filter()})
	if err != nil {
		m.setError(err)
		return
	}
	m.historyModel.SetEntries(entries)
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusIsError = false
}

func (m *Model) setError(err error) {
	logger.Error("TUI operation failed", "error", err)
	m.status = err.Error()
	m.statusIsError = true
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	return append(keys, m.tabKeys()...)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	return [][]key.Binding{global, m.tabKeys()}
}

func (m Model) tabKeys() []key.Binding {
	switch m.state {
	case StateToday:
		return []key.Binding{m.keys.Write}
	case StateHistory:
		return m.historyModel.KeyBindings()
	case StateExport:
		return m.exportModel.KeyBindings()
	case StateSettings:
		return m.settingsModel.KeyBindings()
	}
	return nil
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flowplanr/internal/export"
	"github.com/julianstephens/flowplanr/internal/models"
	exporttab "github.com/julianstephens/flowplanr/internal/tui/components/export"
	"github.com/julianstephens/flowplanr/internal/tui/components/history"
	"github.com/julianstephens/flowplanr/internal/tui/components/settings"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		m.layout()
	}

	switch m.state {
	case StateLogin, StateEditing, StateEditSettings:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case history.EditEntryMsg:
		m.startEditing(msg.Entry)
		return m, m.form.Init()
	case history.DeleteEntryMsg:
		m.entryToDelete = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil
	case history.FilterChangedMsg:
		m.reloadHistory()
		return m, nil
	case exporttab.CopyReportMsg:
		if err := export.Copy(msg.Text); err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("Copied %s to the clipboard", strings.ToLower(msg.Kind.Title())))
		}
		return m, nil
	case exporttab.DownloadReportMsg:
		path, err := m.exporter.Download(m.user.ID, msg.Kind, "")
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus("Saved " + path)
		}
		return m, nil
	case settings.EditSettingsMsg:
		m.startEditSettings()
		return m, m.form.Init()
	case settings.LogoutMsg:
		if err := m.auth.Logout(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.user = models.User{}
		m.setStatus("Logged out")
		m.startLogin("")
		return m, m.form.Init()

	case tea.KeyMsg:
		// the history filter input gets every key but ctrl+c
		if m.state == StateHistory && m.historyModel.Typing() && msg.String() != "ctrl+c" {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.status = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Write) {
			m.startEditing(m.today)
			return m, m.form.Init()
		}
	case StateHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	case StateExport:
		m.exportModel, cmd = m.exportModel.Update(msg)
	case StateSettings:
		m.settingsModel, cmd = m.settingsModel.Update(msg)
	}
	return m, cmd
}

// updateForm drives whichever huh form is open and applies it once the
// user completes it.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Back) && m.state != StateLogin {
			m.state = m.previousState
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		if m.state == StateLogin {
			m.quitting = true
			return m, tea.Quit
		}
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) completeForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateLogin:
		fm := m.loginForm
		var (
			user models.User
			err  error
		)
		if fm.Register {
			user, err = m.auth.Register(fm.Name, fm.Email, fm.Password)
		} else {
			user, err = m.auth.Login(fm.Email, fm.Password)
		}
		if err != nil {
			m.setError(err)
			m.startLogin(fm.Email)
			return m, m.form.Init()
		}
		m.user = user
		m.state = StateToday
		m.setStatus("Signed in as " + user.Email)
		m.refresh()
		m.layout()

	case StateEditing:
		saved, err := m.journal.Save(m.user.ID, m.editingDate, *m.editing)
		m.state = m.previousState
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Saved entry for " + saved.Date)
		m.refresh()

	case StateEditSettings:
		current, err := m.ctx.Store.GetSettings()
		if err != nil {
			m.setError(err)
			m.state = m.previousState
			return m, nil
		}
		current.Timezone = strings.TrimSpace(m.settingsForm.Timezone)
		current.ExportDir = strings.TrimSpace(m.settingsForm.ExportDir)
		m.state = m.previousState
		if err := m.ctx.Store.SaveSettings(current); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Settings saved")
		m.refresh()
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.state = m.previousState
		if err := m.journal.Delete(m.user.ID, m.entryToDelete); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Entry deleted")
			m.refresh()
		}
		m.entryToDelete = ""
	case key.Matches(keyMsg, m.keys.No):
		m.state = m.previousState
		m.entryToDelete = ""
	}
	return m, nil
}

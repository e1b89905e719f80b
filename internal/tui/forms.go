package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/tui/components/entryform"
	"github.com/julianstephens/flowplanr/internal/utils"
	"github.com/julianstephens/flowplanr/internal/validation"
)

func NewLoginForm(fm *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Welcome to FlowPlanr").
				Options(
					huh.NewOption("Sign in", false),
					huh.NewOption("Create an account", true),
				).
				Value(&fm.Register),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Optional").
				Value(&fm.Name),
		).WithHideFunc(func() bool { return !fm.Register }),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fm.Email).
				Validate(func(s string) error {
					_, err := validation.NormalizeEmail(s)
					return err
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(func(s string) error {
					if !fm.Register {
						if s == "" {
							return fmt.Errorf("password is required")
						}
						return nil
					}
					return validation.ValidatePassword(s)
				}),
		),
	).WithShowHelp(true)
}

func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("IANA name such as Europe/Paris, or Local").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(s) {
						return fmt.Errorf("unknown timezone %q", s)
					}
					return nil
				}),
			huh.NewInput().
				Title("Export folder").
				Value(&fm.ExportDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("export folder cannot be empty")
					}
					return nil
				}),
		),
	).WithShowHelp(true)
}

// startLogin replaces the screen with the sign-in form, keeping email.
func (m *Model) startLogin(email string) {
	m.loginForm = &LoginFormModel{Email: email}
	m.form = NewLoginForm(m.loginForm)
	m.state = StateLogin
}

// startEditing opens the entry form on a copy of entry so an aborted edit
// leaves the shown entry untouched.
func (m *Model) startEditing(entry models.JournalEntry) {
	draft := entry
	m.editing = &draft
	m.editingDate = entry.Date
	m.form = entryform.New(utils.FormatLongDate(entry.Date), m.editing)
	m.previousState = m.state
	m.state = StateEditing
}

func (m *Model) startEditSettings() {
	m.settingsForm = &SettingsFormModel{
		Timezone:  m.settings.Timezone,
		ExportDir: m.settings.ExportDir,
	}
	m.form = NewSettingsForm(m.settingsForm)
	m.previousState = m.state
	m.state = StateEditSettings
}

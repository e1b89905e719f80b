// Package entryform builds the journal entry form shared by the TUI Today
// tab and `flowplanr entry write`.
package entryform

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flowplanr/internal/models"
)

// New returns a form that edits entry's text fields in place. The fields
// are split into a planning page and an evening review page.
func New(date string, entry *models.JournalEntry) *huh.Form {
	var planning, review []huh.Field
	for i, f := range models.EntryFields {
		field := huh.NewText().
			Title(fmt.Sprintf("%s %s", f.Icon, f.Label)).
			Lines(3).
			CharLimit(2000).
			Value(entry.Field(f.Key))
		if i == 0 {
			field.Description(date)
		}
		if i < 5 {
			planning = append(planning, field)
		} else {
			review = append(review, field)
		}
	}

	return huh.NewForm(
		huh.NewGroup(planning...).Title("Plan"),
		huh.NewGroup(review...).Title("Review"),
	).WithShowHelp(true)
}

package entryform

import (
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/flowplanr/internal/models"
)

func TestNewBindsEntry(t *testing.T) {
	entry := models.JournalEntry{PriorityA: "ship", Notes: "quiet day"}
	form := New("2024-01-19", &entry)
	if form == nil {
		t.Fatal("New() returned nil")
	}
	if form.State != huh.StateNormal {
		t.Errorf("new form state = %v, want StateNormal", form.State)
	}
	// values stay bound to the entry until the form writes them back
	if entry.PriorityA != "ship" || entry.Notes != "quiet day" {
		t.Errorf("entry modified by New(): %+v", entry)
	}
}

package models

import (
	"strings"
	"time"
)

// JournalEntry is one user's record for a single calendar date.
// Optional text fields use "" for absent; stored values are trimmed.
type JournalEntry struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"` // YYYY-MM-DD format
	UserID        string    `json:"userId"`
	PriorityA     string    `json:"priorityA,omitempty"`
	DailyTasks    string    `json:"dailyTasks,omitempty"`
	Completed     string    `json:"completed,omitempty"`
	Postponed     string    `json:"postponed,omitempty"`
	WaitingFor    string    `json:"waitingFor,omitempty"`
	Difficulties  string    `json:"difficulties,omitempty"`
	Blockers      string    `json:"blockers,omitempty"`
	Insights      string    `json:"insights,omitempty"`
	TomorrowFocus string    `json:"tomorrowFocus,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EntryField names one of the free-text fields of a JournalEntry.
type EntryField struct {
	Key   string
	Label string
	Icon  string
}

// EntryFields lists the free-text fields in form order.
var EntryFields = []EntryField{
	{Key: "priorityA", Label: "Priority A", Icon: "🚀"},
	{Key: "dailyTasks", Label: "All tasks for the day", Icon: "📋"},
	{Key: "completed", Label: "Completed", Icon: "✅"},
	{Key: "postponed", Label: "Postponed to tomorrow", Icon: "🔄"},
	{Key: "waitingFor", Label: "Waiting for others", Icon: "⏰"},
	{Key: "difficulties", Label: "Difficulties of the day", Icon: "🚧"},
	{Key: "blockers", Label: "Blockers and obstacles", Icon: "🔧"},
	{Key: "insights", Label: "Insights and conclusions", Icon: "💡"},
	{Key: "tomorrowFocus", Label: "Focus for tomorrow", Icon: "🎯"},
	{Key: "notes", Label: "Additional notes", Icon: "📝"},
}

// Field returns a pointer to the text field named by key, or nil.
func (e *JournalEntry) Field(key string) *string {
	switch key {
	case "priorityA":
		return &e.PriorityA
	case "dailyTasks":
		return &e.DailyTasks
	case "completed":
		return &e.Completed
	case "postponed":
		return &e.Postponed
	case "waitingFor":
		return &e.WaitingFor
	case "difficulties":
		return &e.Difficulties
	case "blockers":
		return &e.Blockers
	case "insights":
		return &e.Insights
	case "tomorrowFocus":
		return &e.TomorrowFocus
	case "notes":
		return &e.Notes
	}
	return nil
}

// TextValues returns the free-text field values in form order.
func (e JournalEntry) TextValues() []string {
	values := make([]string, 0, len(EntryFields))
	for _, f := range EntryFields {
		values = append(values, *e.Field(f.Key))
	}
	return values
}

// TrimFields trims surrounding whitespace from every free-text field, so a
// blank field becomes "".
func (e *JournalEntry) TrimFields() {
	for _, f := range EntryFields {
		field := e.Field(f.Key)
		*field = strings.TrimSpace(*field)
	}
}

// IsEmpty reports whether every free-text field is blank.
func (e JournalEntry) IsEmpty() bool {
	for _, v := range e.TextValues() {
		if v != "" {
			return false
		}
	}
	return true
}

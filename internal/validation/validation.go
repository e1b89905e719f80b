package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateDate    ConflictType = "duplicate_date"
	ConflictInvalidDate      ConflictType = "invalid_date"
	ConflictMissingEntryID   ConflictType = "missing_entry_id"
	ConflictOrphanEntry      ConflictType = "orphan_entry"
	ConflictEmptyEntry       ConflictType = "empty_entry"
	ConflictInvalidTimestamp ConflictType = "invalid_timestamp"
)

// Conflict represents a detected problem in stored journal data
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	UserID      string   // owner of the entries involved (if applicable)
	EntryIDs    []string // IDs of entries involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks stored entries for integrity problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateEntries checks entries against each other and against the known
// users. Pass a nil users slice to skip the ownership check.
func (v *Validator) ValidateEntries(entries []models.JournalEntry, users []models.User) ValidationResult {
	result := ValidationResult{}

	var known map[string]bool
	if users != nil {
		known = make(map[string]bool, len(users))
		for _, u := range users {
			known[u.ID] = true
		}
	}

	type dayKey struct{ user, date string }
	byDay := make(map[dayKey][]models.JournalEntry)
	var dayOrder []dayKey

	for _, e := range entries {
		label := e.ID
		if label == "" {
			label = "(no id)"
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingEntryID,
				Description: fmt.Sprintf("Entry dated %s has no ID", e.Date),
				Date:        e.Date,
				UserID:      e.UserID,
			})
		}

		if !utils.ValidateDateFormat(e.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Entry %s has invalid date %q (expected YYYY-MM-DD)", label, e.Date),
				Date:        e.Date,
				UserID:      e.UserID,
				EntryIDs:    []string{e.ID},
			})
		}

		if known != nil && !known[e.UserID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanEntry,
				Description: fmt.Sprintf("Entry %s belongs to unknown user %q", label, e.UserID),
				Date:        e.Date,
				UserID:      e.UserID,
				EntryIDs:    []string{e.ID},
			})
		}

		if e.IsEmpty() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyEntry,
				Description: fmt.Sprintf("Entry %s on %s has no content", label, e.Date),
				Date:        e.Date,
				UserID:      e.UserID,
				EntryIDs:    []string{e.ID},
			})
		}

		if !e.CreatedAt.IsZero() && e.UpdatedAt.Before(e.CreatedAt) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTimestamp,
				Description: fmt.Sprintf("Entry %s was updated before it was created", label),
				Date:        e.Date,
				UserID:      e.UserID,
				EntryIDs:    []string{e.ID},
			})
		}

		k := dayKey{e.UserID, e.Date}
		if _, seen := byDay[k]; !seen {
			dayOrder = append(dayOrder, k)
		}
		byDay[k] = append(byDay[k], e)
	}

	for _, k := range dayOrder {
		group := byDay[k]
		if len(group) < 2 {
			continue
		}
		ids := make([]string, len(group))
		for i, e := range group {
			ids[i] = e.ID
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateDate,
			Description: fmt.Sprintf("%d entries for %s (user %s): %s", len(group), k.date, k.user, strings.Join(ids, ", ")),
			Date:        k.date,
			UserID:      k.user,
			EntryIDs:    ids,
		})
	}

	return result
}

// AutoFixDuplicateDates keeps the earliest created entry of every duplicate
// date group, the one GetEntryByDate already returns, and deletes the rest.
// Returns a slice of FixActions describing what was fixed
func AutoFixDuplicateDates(conflicts []Conflict, entries []models.JournalEntry, deleteFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	entryMap := make(map[string]models.JournalEntry, len(entries))
	for _, e := range entries {
		entryMap[e.ID] = e
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateDate || len(conflict.EntryIDs) <= 1 {
			continue
		}

		var group []models.JournalEntry
		for _, id := range conflict.EntryIDs {
			if e, ok := entryMap[id]; ok {
				group = append(group, e)
			}
		}
		if len(group) <= 1 {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
				return group[i].CreatedAt.Before(group[j].CreatedAt)
			}
			return group[i].ID < group[j].ID
		})

		keep := group[0]
		var deletedIDs, failedIDs []string
		for _, e := range group[1:] {
			if err := deleteFunc(e.ID); err == nil {
				deletedIDs = append(deletedIDs, e.ID)
			} else {
				failedIDs = append(failedIDs, e.ID)
			}
		}

		if len(deletedIDs) > 0 {
			msg := fmt.Sprintf("Removed %d duplicate entries for %s (kept ID: %s, removed: %v)", len(deletedIDs), conflict.Date, keep.ID, deletedIDs)
			if len(failedIDs) > 0 {
				msg += fmt.Sprintf(" (failed to remove: %v)", failedIDs)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		} else if len(failedIDs) > 0 {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicates for %s: %v", conflict.Date, failedIDs),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}

// Package journal saves and retrieves one user's dated entries on top of a
// storage provider.
package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/flowplanr/internal/logger"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/utils"
	"github.com/julianstephens/flowplanr/internal/validation"
)

// Store is the subset of storage.Provider the journal needs.
type Store interface {
	GetSettings() (models.Settings, error)
	GetEntries(userID string) ([]models.JournalEntry, error)
	GetEntry(id string) (models.JournalEntry, error)
	GetEntryByDate(userID, date string) (models.JournalEntry, error)
	SaveEntry(models.JournalEntry) error
	DeleteEntry(id string) error
}

type Service struct {
	store Store
	clock func() time.Time
	newID func() string
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		clock: time.Now,
		newID: uuid.NewString,
	}
}

// Now returns the current time in the configured timezone.
func (s *Service) Now() (time.Time, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return utils.InTimezone(s.clock(), settings.Timezone)
}

// Today returns today's date key in the configured timezone.
func (s *Service) Today() (string, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to load settings: %w", err)
	}
	return utils.TodayFromSettings(s.clock(), settings)
}

// Get returns userID's entry for date. A missing entry wraps storage.ErrNotFound.
func (s *Service) Get(userID, date string) (models.JournalEntry, error) {
	if err := validation.ValidateEntryDate(date); err != nil {
		return models.JournalEntry{}, err
	}
	return s.store.GetEntryByDate(userID, date)
}

// Save writes the form as userID's entry for date. Every text field is
// trimmed. An existing entry for the date keeps its ID and CreatedAt.
func (s *Service) Save(userID, date string, form models.JournalEntry) (models.JournalEntry, error) {
	if err := validation.ValidateEntryDate(date); err != nil {
		return models.JournalEntry{}, err
	}

	var entry models.JournalEntry
	for _, f := range models.EntryFields {
		*entry.Field(f.Key) = *form.Field(f.Key)
	}
	entry.TrimFields()
	if entry.IsEmpty() {
		return models.JournalEntry{}, validation.ErrEmptyEntry
	}

	now := s.clock()
	existing, err := s.store.GetEntryByDate(userID, date)
	switch {
	case err == nil:
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	case errors.Is(err, storage.ErrNotFound):
		entry.ID = s.newID()
		entry.CreatedAt = now
	default:
		return models.JournalEntry{}, fmt.Errorf("failed to look up entry for %s: %w", date, err)
	}

	entry.UserID = userID
	entry.Date = date
	entry.UpdatedAt = now

	if err := s.store.SaveEntry(entry); err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to save entry: %w", err)
	}
	logger.Info("Entry saved", "date", date, "id", entry.ID)
	return entry, nil
}

// Delete permanently removes one of userID's entries.
func (s *Service) Delete(userID, id string) error {
	entry, err := s.store.GetEntry(id)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
	}
	if err := s.store.DeleteEntry(id); err != nil {
		return err
	}
	logger.Info("Entry deleted", "date", entry.Date, "id", id)
	return nil
}

// Entries returns all of userID's entries, newest first.
func (s *Service) Entries(userID string) ([]models.JournalEntry, error) {
	entries, err := s.store.GetEntries(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return stats.NewestFirst(entries), nil
}

func (s *Service) History(userID string, q Query) ([]models.JournalEntry, error) {
	entries, err := s.store.GetEntries(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	now, err := s.Now()
	if err != nil {
		return nil, err
	}
	return Apply(entries, q, now), nil
}

// Snapshot computes the dashboard cards for userID.
func (s *Service) Snapshot(userID string) (models.DashboardSnapshot, error) {
	entries, err := s.store.GetEntries(userID)
	if err != nil {
		return models.DashboardSnapshot{}, fmt.Errorf("failed to load entries: %w", err)
	}
	now, err := s.Now()
	if err != nil {
		return models.DashboardSnapshot{}, err
	}
	return stats.Snapshot(entries, now), nil
}

package storage

import (
	"errors"

	"github.com/julianstephens/flowplanr/internal/models"
)

// ErrNotFound is wrapped by every lookup that finds no matching record.
var ErrNotFound = errors.New("not found")

// ErrNotLoaded is returned when a store is used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Users
	SaveUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetAllUsers() ([]models.User, error)

	// Session holds at most one authenticated user.
	GetSession() (models.Session, error)
	SaveSession(models.Session) error
	ClearSession() error

	// Entries. List results carry no ordering guarantee.
	GetEntries(userID string) ([]models.JournalEntry, error)
	GetAllEntries() ([]models.JournalEntry, error)
	GetEntry(id string) (models.JournalEntry, error)
	// GetEntryByDate returns the user's entry for date. Uniqueness per date
	// is maintained by callers; if several exist the earliest created wins.
	GetEntryByDate(userID, date string) (models.JournalEntry, error)
	// SaveEntry upserts by id.
	SaveEntry(models.JournalEntry) error
	// DeleteEntry removes the entry permanently.
	DeleteEntry(id string) error

	// Utils
	GetConfigPath() string
}

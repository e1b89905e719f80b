package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/flowplanr/internal/models"
)

// JSONUser is a user record in the JSON file. Password is only present in
// dumps exported from the browser version, which kept plaintext passwords.
type JSONUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Password     string    `json:"password,omitempty"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Document is the on-disk layout of the JSON store: one key per collection.
type Document struct {
	Users       []JSONUser            `json:"flowplanr_users"`
	CurrentUser json.RawMessage       `json:"flowplanr_current_user,omitempty"`
	Entries     []models.JournalEntry `json:"flowplanr_entries"`
	Settings    map[string]string     `json:"flowplanr_settings,omitempty"`
}

// ReadDocument parses a JSON store file or browser storage dump.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

type JSONStore struct {
	path string
	doc  *Document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	settings := models.Settings{}
	models.ApplyDefaultSettings(&settings)
	s.doc = &Document{
		Users:    []JSONUser{},
		Entries:  []models.JournalEntry{},
		Settings: models.SettingsToMap(settings),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	doc, err := ReadDocument(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'flowplanr init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a temp file and rename so a crash never leaves a truncated file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.doc == nil {
		return models.Settings{}, ErrNotLoaded
	}
	return models.MapToSettings(s.doc.Settings), nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	s.doc.Settings = models.SettingsToMap(settings)
	return s.save()
}

func (s *JSONStore) SaveUser(user models.User) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	record := JSONUser{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	for i, u := range s.doc.Users {
		if u.ID == user.ID {
			s.doc.Users[i] = record
			return s.save()
		}
	}
	s.doc.Users = append(s.doc.Users, record)
	return s.save()
}

func (u JSONUser) toModel() models.User {
	return models.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (s *JSONStore) GetUser(id string) (models.User, error) {
	if s.doc == nil {
		return models.User{}, ErrNotLoaded
	}
	for _, u := range s.doc.Users {
		if u.ID == id {
			return u.toModel(), nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
}

func (s *JSONStore) GetUserByEmail(email string) (models.User, error) {
	if s.doc == nil {
		return models.User{}, ErrNotLoaded
	}
	for _, u := range s.doc.Users {
		if strings.EqualFold(u.Email, email) {
			return u.toModel(), nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

func (s *JSONStore) GetAllUsers() ([]models.User, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	users := make([]models.User, 0, len(s.doc.Users))
	for _, u := range s.doc.Users {
		users = append(users, u.toModel())
	}
	return users, nil
}

func (s *JSONStore) GetSession() (models.Session, error) {
	if s.doc == nil {
		return models.Session{}, ErrNotLoaded
	}
	var session models.Session
	if len(s.doc.CurrentUser) == 0 || string(s.doc.CurrentUser) == "null" {
		return session, fmt.Errorf("session: %w", ErrNotFound)
	}
	if err := json.Unmarshal(s.doc.CurrentUser, &session); err != nil || session.Token == "" {
		return models.Session{}, fmt.Errorf("session: %w", ErrNotFound)
	}
	return session, nil
}

func (s *JSONStore) SaveSession(session models.Session) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	s.doc.CurrentUser = data
	return s.save()
}

func (s *JSONStore) ClearSession() error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	s.doc.CurrentUser = nil
	return s.save()
}

func (s *JSONStore) GetEntries(userID string) ([]models.JournalEntry, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	entries := []models.JournalEntry{}
	for _, e := range s.doc.Entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *JSONStore) GetAllEntries() ([]models.JournalEntry, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	entries := make([]models.JournalEntry, len(s.doc.Entries))
	copy(entries, s.doc.Entries)
	return entries, nil
}

func (s *JSONStore) GetEntry(id string) (models.JournalEntry, error) {
	if s.doc == nil {
		return models.JournalEntry{}, ErrNotLoaded
	}
	for _, e := range s.doc.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.JournalEntry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
}

func (s *JSONStore) GetEntryByDate(userID, date string) (models.JournalEntry, error) {
	entries, err := s.GetEntries(userID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	for _, e := range entries {
		if e.Date == date {
			return e, nil
		}
	}
	return models.JournalEntry{}, fmt.Errorf("entry for %s: %w", date, ErrNotFound)
}

func (s *JSONStore) SaveEntry(entry models.JournalEntry) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	for i, e := range s.doc.Entries {
		if e.ID == entry.ID {
			s.doc.Entries[i] = entry
			return s.save()
		}
	}
	s.doc.Entries = append(s.doc.Entries, entry)
	return s.save()
}

func (s *JSONStore) DeleteEntry(id string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	for i, e := range s.doc.Entries {
		if e.ID == id {
			s.doc.Entries = append(s.doc.Entries[:i], s.doc.Entries[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("entry %s: %w", id, ErrNotFound)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// Package storagetest holds the behavioral tests every storage.Provider
// implementation must pass.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
)

// Run exercises store, which must already be initialized and empty.
func Run(t *testing.T, store storage.Provider) {
	t.Helper()

	t.Run("settings", func(t *testing.T) { testSettings(t, store) })
	t.Run("users", func(t *testing.T) { testUsers(t, store) })
	t.Run("session", func(t *testing.T) { testSession(t, store) })
	t.Run("entries", func(t *testing.T) { testEntries(t, store) })
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testSettings(t *testing.T, store storage.Provider) {
	want := models.Settings{Timezone: "Europe/Berlin", ExportDir: "/tmp/reports", SessionSecret: "s3cret"}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got != want {
		t.Errorf("GetSettings() = %+v, want %+v", got, want)
	}
}

func testUsers(t *testing.T, store storage.Provider) {
	user := models.User{
		ID:           "user-1",
		Email:        "ada@example.com",
		Name:         "Ada",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    ts("2024-01-01T09:00:00Z"),
	}
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}

	got, err := store.GetUser("user-1")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Email != user.Email || got.PasswordHash != user.PasswordHash || !got.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("GetUser() = %+v, want %+v", got, user)
	}

	byEmail, err := store.GetUserByEmail("ada@example.com")
	if err != nil || byEmail.ID != "user-1" {
		t.Errorf("GetUserByEmail() = %+v, %v", byEmail, err)
	}

	if _, err := store.GetUser("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetUser(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetUserByEmail("nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetUserByEmail(missing) error = %v, want ErrNotFound", err)
	}

	user.Name = "Ada L."
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("SaveUser() update error = %v", err)
	}
	all, err := store.GetAllUsers()
	if err != nil {
		t.Fatalf("GetAllUsers() error = %v", err)
	}
	if len(all) != 1 || all[0].Name != "Ada L." {
		t.Errorf("GetAllUsers() = %+v", all)
	}
}

func testSession(t *testing.T, store storage.Provider) {
	if _, err := store.GetSession(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetSession() on empty store error = %v, want ErrNotFound", err)
	}

	session := models.Session{Token: "tok", CreatedAt: ts("2024-01-02T10:00:00Z")}
	if err := store.SaveSession(session); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}
	session.Token = "tok2"
	if err := store.SaveSession(session); err != nil {
		t.Fatalf("SaveSession() overwrite error = %v", err)
	}
	got, err := store.GetSession()
	if err != nil || got.Token != "tok2" {
		t.Errorf("GetSession() = %+v, %v", got, err)
	}

	if err := store.ClearSession(); err != nil {
		t.Fatalf("ClearSession() error = %v", err)
	}
	if _, err := store.GetSession(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetSession() after clear error = %v, want ErrNotFound", err)
	}
}

func testEntries(t *testing.T, store storage.Provider) {
	first := models.JournalEntry{
		ID:           "e1",
		Date:         "2024-01-15",
		UserID:       "user-1",
		PriorityA:    "Ship the release",
		DailyTasks:   "write notes\nreview PR",
		Completed:    "write notes",
		Difficulties: "context switching",
		CreatedAt:    ts("2024-01-15T08:00:00Z"),
		UpdatedAt:    ts("2024-01-15T08:00:00Z"),
	}
	second := models.JournalEntry{
		ID:        "e2",
		Date:      "2024-01-16",
		UserID:    "user-1",
		Insights:  "mornings work best",
		CreatedAt: ts("2024-01-16T08:00:00Z"),
		UpdatedAt: ts("2024-01-16T08:00:00Z"),
	}
	other := models.JournalEntry{
		ID:        "e3",
		Date:      "2024-01-15",
		UserID:    "user-2",
		Notes:     "someone else",
		CreatedAt: ts("2024-01-15T09:00:00Z"),
		UpdatedAt: ts("2024-01-15T09:00:00Z"),
	}
	for _, e := range []models.JournalEntry{first, second, other} {
		if err := store.SaveEntry(e); err != nil {
			t.Fatalf("SaveEntry(%s) error = %v", e.ID, err)
		}
	}

	got, err := store.GetEntry("e1")
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if got.DailyTasks != first.DailyTasks || got.Postponed != "" || !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("GetEntry() = %+v", got)
	}

	mine, err := store.GetEntries("user-1")
	if err != nil {
		t.Fatalf("GetEntries() error = %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("GetEntries(user-1) returned %d entries, want 2", len(mine))
	}
	all, err := store.GetAllEntries()
	if err != nil || len(all) != 3 {
		t.Errorf("GetAllEntries() = %d entries, %v", len(all), err)
	}

	byDate, err := store.GetEntryByDate("user-2", "2024-01-15")
	if err != nil || byDate.ID != "e3" {
		t.Errorf("GetEntryByDate() = %+v, %v", byDate, err)
	}
	if _, err := store.GetEntryByDate("user-1", "2023-12-31"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetEntryByDate(missing) error = %v, want ErrNotFound", err)
	}

	first.Completed = "write notes\nreview PR"
	first.UpdatedAt = ts("2024-01-15T20:00:00Z")
	if err := store.SaveEntry(first); err != nil {
		t.Fatalf("SaveEntry() update error = %v", err)
	}
	updated, _ := store.GetEntry("e1")
	if updated.Completed != first.Completed || !updated.UpdatedAt.Equal(first.UpdatedAt) {
		t.Errorf("updated entry = %+v", updated)
	}
	if mine, _ := store.GetEntries("user-1"); len(mine) != 2 {
		t.Errorf("upsert created a duplicate: %d entries", len(mine))
	}

	if err := store.DeleteEntry("e2"); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
	if _, err := store.GetEntry("e2"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetEntry(deleted) error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteEntry("e2"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteEntry(deleted) error = %v, want ErrNotFound", err)
	}
}

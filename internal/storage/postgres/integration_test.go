package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage/storagetest"
)

func entryFixture() models.JournalEntry {
	now := time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC)
	return models.JournalEntry{
		ID:        "pg-entry",
		UserID:    "pg-user",
		Date:      "2024-01-17",
		PriorityA: "ship the release",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestStore_Integration needs a disposable database, e.g.
// POSTGRES_TEST_URL="postgres://flowplanr@localhost:5432/flowplanr_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	for _, table := range []string{"entries", "session", "users"} {
		if _, err := store.db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}

	t.Run("DefaultSettings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		if settings.Timezone == "" {
			t.Errorf("expected default timezone %q, got empty", constants.DefaultTimezone)
		}
	})

	storagetest.Run(t, store)

	t.Run("TimestampsRoundTrip", func(t *testing.T) {
		e := entryFixture()
		if err := store.SaveEntry(e); err != nil {
			t.Fatalf("SaveEntry() error = %v", err)
		}
		got, err := store.GetEntry(e.ID)
		if err != nil {
			t.Fatalf("GetEntry() error = %v", err)
		}
		if !got.CreatedAt.Equal(e.CreatedAt) || got.PriorityA != e.PriorityA {
			t.Errorf("GetEntry() = %+v, want %+v", got, e)
		}
	})
}

package backup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/storage/sqlite"
)

func seed(t *testing.T, store storage.Provider, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		date := time.Date(2024, 1, 1+i, 12, 0, 0, 0, time.UTC)
		if err := store.SaveEntry(models.JournalEntry{
			ID:        "e" + date.Format("0102"),
			UserID:    "u1",
			Date:      date.Format(constants.DateFormat),
			Completed: "backups",
			CreatedAt: date,
			UpdatedAt: date,
		}); err != nil {
			t.Fatalf("SaveEntry() error = %v", err)
		}
	}
}

func setupSQLite(t *testing.T, entries int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowplanr.db")
	store := sqlite.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	seed(t, store, entries)
	store.Close()
	return path
}

func setupJSON(t *testing.T, entries int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowplanr.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	seed(t, store, entries)
	return path
}

// tickingManager returns a manager whose clock advances a minute per call.
func tickingManager(path string) *Manager {
	m := NewManager(path)
	ts := time.Date(2024, 1, 17, 8, 0, 0, 0, time.Local)
	m.now = func() time.Time {
		ts = ts.Add(time.Minute)
		return ts
	}
	return m
}

func TestCreateBackup(t *testing.T) {
	for name, setup := range map[string]func(*testing.T, int) string{"sqlite": setupSQLite, "json": setupJSON} {
		t.Run(name, func(t *testing.T) {
			m := tickingManager(setup(t, 3))
			path, err := m.CreateBackup()
			if err != nil {
				t.Fatalf("CreateBackup() error = %v", err)
			}
			if filepath.Dir(path) != m.GetBackupDir() || !strings.HasPrefix(filepath.Base(path), "flowplanr-20240117-080100") {
				t.Errorf("backup path = %q", path)
			}

			backups, err := m.ListBackups()
			if err != nil || len(backups) != 1 {
				t.Fatalf("ListBackups() = %v, %v", backups, err)
			}
			backups = m.WithEntryCounts(backups)
			if backups[0].Entries != 3 || backups[0].Size == 0 {
				t.Errorf("backup info = %+v", backups[0])
			}
		})
	}
}

func TestBackupRotation(t *testing.T) {
	m := tickingManager(setupSQLite(t, 1))
	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := m.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d error = %v", i, err)
		}
	}

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	m := NewManager(setupSQLite(t, 1))
	fixed := time.Date(2024, 1, 17, 8, 0, 0, 0, time.Local)
	m.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := m.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %q", path)
		}
		seen[path] = true
	}
	backups, _ := m.ListBackups()
	if len(backups) != 3 {
		t.Errorf("ListBackups() found %d, want 3 (counter-suffixed names must parse)", len(backups))
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	m := tickingManager(setupSQLite(t, 1))
	if _, err := m.CreateBackup(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "flowplanr-yesterday.db", "flowplanr-20240117-080100-x.db"} {
		os.WriteFile(filepath.Join(m.GetBackupDir(), name), []byte("x"), 0600)
	}
	backups, err := m.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Errorf("ListBackups() = %d backups, %v; want 1", len(backups), err)
	}
}

func TestListBackupsWithoutDirectory(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "flowplanr.db"))
	backups, err := m.ListBackups()
	if err != nil || len(backups) != 0 {
		t.Errorf("ListBackups() = %v, %v", backups, err)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupSQLite(t, 2)
	m := tickingManager(dbPath)
	backupPath, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	seed(t, store, 5)
	store.Close()

	preRestore, err := m.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if preRestore == "" {
		t.Error("RestoreBackup() did not snapshot the current store")
	}

	restored := sqlite.NewStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	entries, _ := restored.GetAllEntries()
	if len(entries) != 2 {
		t.Errorf("restored store has %d entries, want 2", len(entries))
	}

	counts := m.WithEntryCounts([]BackupInfo{{Path: preRestore}})
	if counts[0].Entries != 5 {
		t.Errorf("pre-restore snapshot has %d entries, want 5", counts[0].Entries)
	}
}

func TestRestoreRejectsInvalidBackups(t *testing.T) {
	m := tickingManager(setupSQLite(t, 1))

	if _, err := m.RestoreBackup(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("RestoreBackup(missing) should fail")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.db")
	os.WriteFile(garbage, []byte("not a database"), 0600)
	if _, err := m.RestoreBackup(garbage); err == nil {
		t.Error("RestoreBackup(garbage) should fail")
	}
}

func TestBackupWithNoDatabase(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := m.CreateBackup(); err == nil {
		t.Error("CreateBackup() should fail without a database")
	}
}

func TestBackupUnsupportedStore(t *testing.T) {
	if Supported("postgresql") || Supported("postgres://u@localhost/db") {
		t.Error("PostgreSQL stores should not be supported")
	}
	m := NewManager("postgresql")
	if _, err := m.CreateBackup(); !errors.Is(err, ErrUnsupportedStore) {
		t.Errorf("CreateBackup() = %v, want ErrUnsupportedStore", err)
	}
}

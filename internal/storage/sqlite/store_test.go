package sqlite

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/storage/storagetest"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "flowplanr.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, setupStore(t))
}

func TestInitWritesDefaultSettings(t *testing.T) {
	store := setupStore(t)
	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.Timezone != constants.DefaultTimezone || settings.ExportDir != constants.DefaultExportDir {
		t.Errorf("default settings = %+v", settings)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store := setupStore(t)
	if err := store.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if current != latest || current < 1 {
		t.Errorf("SchemaVersion() = %d, %d", current, latest)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "flowplanr init") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestLoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowplanr.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	store.Close()

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer reopened.Close()
	if reopened.GetDB() == nil {
		t.Error("GetDB() is nil after Load")
	}
	if _, err := reopened.GetAllEntries(); err != nil {
		t.Errorf("GetAllEntries() error = %v", err)
	}
}

package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/storage/storagetest"
)

func TestJSONStoreContract(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "flowplanr.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	storagetest.Run(t, store)
}

func TestJSONStoreLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowplanr.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, key := range []string{constants.StorageKeyUsers, constants.StorageKeyEntries} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("store file missing %q collection: %s", key, data)
		}
	}

	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0600 {
		t.Errorf("store file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestJSONStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowplanr.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	settings, _ := store.GetSettings()
	settings.Timezone = "Asia/Tokyo"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	reopened := storage.NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, _ := reopened.GetSettings()
	if got.Timezone != "Asia/Tokyo" {
		t.Errorf("reloaded timezone = %q", got.Timezone)
	}
}

func TestJSONStoreNotInitialized(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "flowplanr init") {
		t.Errorf("Load() error = %v", err)
	}
	if _, err := store.GetEntries("u"); err != storage.ErrNotLoaded {
		t.Errorf("GetEntries() before load error = %v, want ErrNotLoaded", err)
	}
}

func TestReadDocumentBrowserDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")
	dump := `{
  "flowplanr_users": [{"id": "1", "email": "a@b.c", "name": "A", "password": "plain", "createdAt": "2024-01-01T00:00:00Z"}],
  "flowplanr_current_user": {"id": "1", "email": "a@b.c"},
  "flowplanr_entries": [{"id": "e", "date": "2024-01-02", "userId": "1", "dailyTasks": "a\nb", "createdAt": "2024-01-02T00:00:00Z", "updatedAt": "2024-01-02T00:00:00Z"}]
}`
	if err := os.WriteFile(path, []byte(dump), 0600); err != nil {
		t.Fatal(err)
	}
	doc, err := storage.ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error = %v", err)
	}
	if len(doc.Users) != 1 || doc.Users[0].Password != "plain" {
		t.Errorf("users = %+v", doc.Users)
	}
	if len(doc.Entries) != 1 || doc.Entries[0].DailyTasks != "a\nb" {
		t.Errorf("entries = %+v", doc.Entries)
	}
}

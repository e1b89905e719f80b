package journal

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/validation"
)

type mockStore struct {
	settings  models.Settings
	entries   map[string]models.JournalEntry
	saveCalls int
	failSave  error
}

func newMockStore(entries ...models.JournalEntry) *mockStore {
	m := &mockStore{
		settings: models.Settings{Timezone: "UTC"},
		entries:  map[string]models.JournalEntry{},
	}
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return m
}

func (m *mockStore) GetSettings() (models.Settings, error) { return m.settings, nil }

func (m *mockStore) GetEntries(userID string) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockStore) GetEntry(id string) (models.JournalEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return models.JournalEntry{}, fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
	}
	return e, nil
}

func (m *mockStore) GetEntryByDate(userID, date string) (models.JournalEntry, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.Date == date {
			return e, nil
		}
	}
	return models.JournalEntry{}, fmt.Errorf("entry: %w", storage.ErrNotFound)
}

func (m *mockStore) SaveEntry(e models.JournalEntry) error {
	m.saveCalls++
	if m.failSave != nil {
		return m.failSave
	}
	m.entries[e.ID] = e
	return nil
}

func (m *mockStore) DeleteEntry(id string) error {
	if _, ok := m.entries[id]; !ok {
		return fmt.Errorf("entry %s: %w", id, storage.ErrNotFound)
	}
	delete(m.entries, id)
	return nil
}

// Friday
var now = time.Date(2024, 1, 19, 10, 0, 0, 0, time.UTC)

func newTestService(store *mockStore) *Service {
	s := NewService(store)
	s.clock = func() time.Time { return now }
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func TestSaveCreatesEntry(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)

	got, err := svc.Save("u1", "2024-01-19", models.JournalEntry{
		PriorityA: "  ship it \n",
		Notes:     "   ",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got.ID != "id-1" || got.UserID != "u1" || got.Date != "2024-01-19" {
		t.Errorf("Save() = %+v", got)
	}
	if got.PriorityA != "ship it" || got.Notes != "" {
		t.Errorf("fields not trimmed: %q %q", got.PriorityA, got.Notes)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestSaveReusesExistingEntryForDate(t *testing.T) {
	created := now.Add(-8 * time.Hour)
	store := newMockStore(models.JournalEntry{
		ID: "existing", UserID: "u1", Date: "2024-01-19",
		PriorityA: "old", Insights: "kept?", CreatedAt: created, UpdatedAt: created,
	})
	svc := newTestService(store)

	got, err := svc.Save("u1", "2024-01-19", models.JournalEntry{PriorityA: "new"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got.ID != "existing" || !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(now) {
		t.Errorf("Save() = %+v", got)
	}
	if got.Insights != "" {
		t.Errorf("Save() should replace the whole form, Insights = %q", got.Insights)
	}
	if len(store.entries) != 1 {
		t.Errorf("store has %d entries, want 1", len(store.entries))
	}
}

func TestSaveRejectsEmptyForm(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)

	_, err := svc.Save("u1", "2024-01-19", models.JournalEntry{Completed: " \n\t"})
	if !errors.Is(err, validation.ErrEmptyEntry) {
		t.Errorf("Save() error = %v, want ErrEmptyEntry", err)
	}
	if store.saveCalls != 0 {
		t.Error("empty form should not reach the store")
	}
}

func TestSaveRejectsBadDate(t *testing.T) {
	svc := newTestService(newMockStore())
	if _, err := svc.Save("u1", "19/01/2024", models.JournalEntry{Notes: "x"}); !errors.Is(err, validation.ErrInvalidDate) {
		t.Errorf("Save() error = %v, want ErrInvalidDate", err)
	}
}

func TestSaveStoreFailure(t *testing.T) {
	store := newMockStore()
	store.failSave = errors.New("disk full")
	svc := newTestService(store)
	if _, err := svc.Save("u1", "2024-01-19", models.JournalEntry{Notes: "x"}); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Save() error = %v", err)
	}
}

func TestDeleteChecksOwner(t *testing.T) {
	store := newMockStore(models.JournalEntry{ID: "e1", UserID: "u1", Date: "2024-01-19", Notes: "x"})
	svc := newTestService(store)

	if err := svc.Delete("u2", "e1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Delete() by other user = %v, want ErrNotFound", err)
	}
	if err := svc.Delete("u1", "e1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := store.entries["e1"]; ok {
		t.Error("entry still present after Delete")
	}
	if err := svc.Delete("u1", "e1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestTodayUsesConfiguredTimezone(t *testing.T) {
	store := newMockStore()
	store.settings.Timezone = "Pacific/Kiritimati" // UTC+14
	svc := newTestService(store)
	svc.clock = func() time.Time { return time.Date(2024, 1, 19, 12, 0, 0, 0, time.UTC) }

	today, err := svc.Today()
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if today != "2024-01-20" {
		t.Errorf("Today() = %q, want 2024-01-20", today)
	}
}

func historyFixture() []models.JournalEntry {
	mk := func(id, date, priority string) models.JournalEntry {
		return models.JournalEntry{ID: id, UserID: "u1", Date: date, PriorityA: priority}
	}
	return []models.JournalEntry{
		mk("a", "2024-01-14", "read book"),
		mk("b", "2024-01-19", "Deploy the API"),
		mk("c", "2023-12-31", "gym"),
		mk("d", "2024-01-17", "call mom"),
		mk("e", "2024-01-02", "gym"),
		mk("f", "2024-01-16", "read book"),
		mk("g", "2024-01-15", "gym"),
	}
}

func ids(entries []models.JournalEntry) string {
	var out []string
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return strings.Join(out, ",")
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		filter Filter
		want   string
	}{
		{FilterAll, "b,d,f,g,a,e,c"},
		{FilterRecent, "b,d"},
		{FilterThisWeek, "b,d,f,g"},
		{FilterThisMonth, "b,d,f,g,a,e"},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := Apply(historyFixture(), Query{Filter: tt.filter}, now)
			if ids(got) != tt.want {
				t.Errorf("Apply(%s) = %s, want %s", tt.filter, ids(got), tt.want)
			}
		})
	}
}

func TestApplySearch(t *testing.T) {
	tests := []struct {
		search string
		want   string
	}{
		{"api", "b"},
		{"READ", "f,a"},
		{"2024-01-15", "g"},
		{"nothing here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := Apply(historyFixture(), Query{Filter: FilterAll, Search: tt.search}, now)
			if ids(got) != tt.want {
				t.Errorf("search %q = %s, want %s", tt.search, ids(got), tt.want)
			}
		})
	}
}

func TestApplyFuzzy(t *testing.T) {
	got := Apply(historyFixture(), Query{Filter: FilterAll, Search: "dply", Fuzzy: true}, now)
	if ids(got) != "b" {
		t.Errorf("fuzzy search = %s, want b", ids(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	entries := historyFixture()
	Apply(entries, Query{Filter: FilterAll}, now)
	if entries[0].ID != "a" {
		t.Error("Apply reordered its input")
	}
}

func TestParseFilter(t *testing.T) {
	tests := map[string]Filter{
		"":           FilterAll,
		"all":        FilterAll,
		"recent":     FilterRecent,
		"this-week":  FilterThisWeek,
		"thisWeek":   FilterThisWeek,
		"this-month": FilterThisMonth,
	}
	for in, want := range tests {
		got, err := ParseFilter(in)
		if err != nil || got != want {
			t.Errorf("ParseFilter(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFilter("yesterday"); err == nil {
		t.Error("ParseFilter(yesterday) should fail")
	}
}

func TestPreview(t *testing.T) {
	e := models.JournalEntry{PriorityA: "ship", Completed: "tests", Notes: "ignored"}
	if got := Preview(e); got != "ship tests" {
		t.Errorf("Preview() = %q", got)
	}
	if got := Preview(models.JournalEntry{Notes: "only notes"}); got != constants.EmptyEntryPreview {
		t.Errorf("Preview(notes only) = %q", got)
	}
	long := models.JournalEntry{Insights: strings.Repeat("é", 200)}
	if got := []rune(Preview(long)); len(got) != constants.PreviewMaxLen {
		t.Errorf("Preview() length = %d, want %d", len(got), constants.PreviewMaxLen)
	}
}

func TestHistoryAndSnapshot(t *testing.T) {
	store := newMockStore(historyFixture()...)
	store.entries["x"] = models.JournalEntry{ID: "x", UserID: "u2", Date: "2024-01-19"}
	svc := newTestService(store)

	got, err := svc.History("u1", Query{Filter: FilterRecent})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if ids(got) != "b,d" {
		t.Errorf("History() = %s", ids(got))
	}

	snap, err := svc.Snapshot("u1")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	// 19 present, 18 missing ends the streak
	if snap.TotalEntries != 7 || snap.ThisWeekEntries != 4 || snap.Streak != 1 {
		t.Errorf("Snapshot() = %+v", snap)
	}
}

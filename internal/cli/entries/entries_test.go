package entries

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/errors"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
)

func strPtr(s string) *string { return &s }

func setupTestContext(t *testing.T) (*cli.Context, models.User) {
	t.Helper()
	gokeyring.MockInit()

	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "flowplanr.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	ctx := &cli.Context{Store: store, ConfigDir: dir}
	user, err := ctx.Auth().Register("Ada", "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	return ctx, user
}

func TestEntryWriteMergesFlags(t *testing.T) {
	ctx, user := setupTestContext(t)

	first := &EntryWriteCmd{Date: "2024-01-15", PriorityA: strPtr("  ship release  "), DailyTasks: strPtr("a\nb")}
	if err := first.Run(ctx); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	second := &EntryWriteCmd{Date: "2024-01-15", Completed: strPtr("a")}
	if err := second.Run(ctx); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	entries, err := ctx.Store.GetEntries(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.PriorityA != "ship release" || e.DailyTasks != "a\nb" || e.Completed != "a" {
		t.Errorf("entry = %+v", e)
	}
}

func TestEntryWriteOpensForm(t *testing.T) {
	ctx, user := setupTestContext(t)

	orig := editEntry
	t.Cleanup(func() { editEntry = orig })
	var gotDate string
	editEntry = func(date string, entry *models.JournalEntry) error {
		gotDate = date
		entry.Insights = "mornings work best"
		return nil
	}

	if err := (&EntryWriteCmd{Date: "2024-01-16"}).Run(ctx); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if gotDate != "2024-01-16" {
		t.Errorf("form opened for %q", gotDate)
	}
	e, err := ctx.Store.GetEntryByDate(user.ID, "2024-01-16")
	if err != nil {
		t.Fatalf("entry not saved: %v", err)
	}
	if e.Insights != "mornings work best" {
		t.Errorf("insights = %q", e.Insights)
	}
}

func TestEntryWriteRejectsEmpty(t *testing.T) {
	ctx, _ := setupTestContext(t)
	err := (&EntryWriteCmd{Date: "2024-01-16", Notes: strPtr("   ")}).Run(ctx)
	if err == nil {
		t.Fatal("expected error for an empty entry")
	}
}

func TestEntryShow(t *testing.T) {
	ctx, _ := setupTestContext(t)

	err := (&EntryShowCmd{Date: "2024-01-15"}).Run(ctx)
	if err == nil || errors.Hint(err) == "" {
		t.Fatalf("show missing entry = %v, want error with hint", err)
	}

	if err := (&EntryWriteCmd{Date: "2024-01-15", Notes: strPtr("n")}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&EntryShowCmd{Date: "2024-01-15"}).Run(ctx); err != nil {
		t.Errorf("show failed: %v", err)
	}
}

func TestFormatEntry(t *testing.T) {
	e := models.JournalEntry{
		ID:         "e1",
		Date:       "2024-01-15",
		DailyTasks: "a\nb",
		Completed:  "a",
		Blockers:   "flaky CI",
		UpdatedAt:  time.Now(),
	}
	out := formatEntry(e)
	for _, want := range []string{"Monday, January 15, 2024", "Blockers and obstacles", "flaky CI", "1/2 tasks completed (50%)", "id e1"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatEntry() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Insights") {
		t.Errorf("formatEntry() printed an empty field:\n%s", out)
	}
}

func TestEntryDelete(t *testing.T) {
	ctx, user := setupTestContext(t)
	if err := (&EntryWriteCmd{Date: "2024-01-15", Notes: strPtr("n")}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	e, err := ctx.Store.GetEntryByDate(user.ID, "2024-01-15")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("declined", func(t *testing.T) {
		ctx.In = strings.NewReader("n\n")
		if err := (&EntryDeleteCmd{ID: e.ID}).Run(ctx); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := ctx.Store.GetEntry(e.ID); err != nil {
			t.Errorf("entry removed despite declining: %v", err)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		if err := (&EntryDeleteCmd{ID: e.ID, Yes: true}).Run(ctx); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := ctx.Store.GetEntry(e.ID); !stderrors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetEntry() after delete = %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if err := (&EntryDeleteCmd{ID: e.ID, Yes: true}).Run(ctx); err == nil {
			t.Error("expected error deleting a missing entry")
		}
	})
}

func TestHistory(t *testing.T) {
	ctx, _ := setupTestContext(t)
	for _, d := range []string{"2024-01-10", "2024-01-11", "2024-01-12"} {
		if err := (&EntryWriteCmd{Date: d, PriorityA: strPtr("work on " + d)}).Run(ctx); err != nil {
			t.Fatal(err)
		}
	}

	tests := []HistoryCmd{
		{Filter: "all"},
		{Filter: "all", Search: "01-11", ShowIDs: true},
		{Filter: "all", Search: "wrk", Fuzzy: true},
		{Filter: "this-week", Limit: 1},
	}
	for _, cmd := range tests {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("history %+v failed: %v", cmd, err)
		}
	}

	if err := (&HistoryCmd{Filter: "yesterday"}).Run(ctx); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestFormatHistoryLine(t *testing.T) {
	e := models.JournalEntry{ID: "e1", Date: "2024-01-15", PriorityA: "ship"}
	if out := formatHistoryLine(e, false); strings.Contains(out, "e1") || !strings.Contains(out, "ship") {
		t.Errorf("formatHistoryLine(no ids) = %q", out)
	}
	if out := formatHistoryLine(e, true); !strings.Contains(out, "id: e1") {
		t.Errorf("formatHistoryLine(ids) = %q", out)
	}
}

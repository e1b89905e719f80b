package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/flowplanr/internal/analysis"
	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/storage"
)

var testNow = time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)

// newestFirstEntries returns n entries ending on 2024-01-16, newest first.
func newestFirstEntries(n int) []models.JournalEntry {
	var entries []models.JournalEntry
	for i := 0; i < n; i++ {
		date := testNow.AddDate(0, 0, -1-i).Format(constants.DateFormat)
		entries = append(entries, models.JournalEntry{
			ID:           fmt.Sprintf("e%d", i),
			UserID:       "u1",
			Date:         date,
			DailyTasks:   "write\nreview",
			Completed:    "write",
			Difficulties: "slow build on " + date,
			Insights:     map[bool]string{true: "batch the reviews", false: ""}[i%2 == 0],
		})
	}
	return entries
}

func generate(kind models.ReportKind, entries []models.JournalEntry) string {
	chronological := stats.SortedByDate(entries)
	return GenerateReport(kind, stats.ComputeAt(chronological, testNow), analysis.Compute(chronological), entries)
}

func TestGenerateReportEmpty(t *testing.T) {
	for _, kind := range models.ReportKinds {
		got := GenerateReport(kind, models.UserStats{}, models.AnalysisData{}, nil)
		if got != constants.EmptyExportPlaceholder {
			t.Errorf("GenerateReport(%s, nil) = %q", kind, got)
		}
	}
}

func TestGenerateReportSections(t *testing.T) {
	entries := newestFirstEntries(4)
	for _, kind := range models.ReportKinds {
		t.Run(string(kind), func(t *testing.T) {
			got := generate(kind, entries)
			title := "=== " + strings.ToUpper(kind.Title()) + " ==="
			if !strings.HasPrefix(got, title) {
				t.Errorf("report does not start with %q:\n%s", title, got)
			}
			prompt := strings.Index(got, "=== PROMPT FOR CLAUDE ===")
			instructions := strings.Index(got, "=== INSTRUCTIONS ===")
			if prompt < 0 || instructions < prompt {
				t.Errorf("prompt/instructions sections out of order:\n%s", got)
			}
		})
	}
}

func TestProductivityReportMetrics(t *testing.T) {
	got := generate(models.ReportProductivity, newestFirstEntries(3))
	for _, want := range []string{
		"Total entries: 3",
		"Journaling streak: 3 days",
		"Average tasks per day: 2",
		"Completion rate: 50%",
		"Analysis period: Sunday, January 14, 2024 - Tuesday, January 16, 2024",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("productivity report missing %q:\n%s", want, got)
		}
	}
}

func TestBlockersExcerptNewestFirst(t *testing.T) {
	got := generate(models.ReportBlockers, newestFirstEntries(8))
	if n := strings.Count(got, "🚧 Difficulties:"); n != 5 {
		t.Errorf("blockers excerpt has %d records, want 5", n)
	}
	if !strings.Contains(got, "📅 January 16, 2024") || strings.Contains(got, "📅 January 10, 2024") {
		t.Errorf("blockers excerpt should hold the newest five entries:\n%s", got)
	}
	if strings.Contains(got, "🔧 Blockers:") {
		t.Error("absent blockers field should be omitted")
	}
}

func TestInsightsExcerptSkipsEmpty(t *testing.T) {
	got := generate(models.ReportInsights, newestFirstEntries(6))
	if n := strings.Count(got, "💡 batch the reviews"); n != 3 {
		t.Errorf("insights excerpt has %d records, want 3:\n%s", n, got)
	}
}

func TestInsightsExcerptCap(t *testing.T) {
	// every other entry has insights: 24 entries give 12 candidates
	got := generate(models.ReportInsights, newestFirstEntries(24))
	if n := strings.Count(got, "💡 batch the reviews"); n != 10 {
		t.Errorf("insights excerpt has %d records, want 10", n)
	}
	if !strings.Contains(got, "📅 December 29, 2023") {
		t.Errorf("tenth insight (December 29) missing:\n%s", got)
	}
	if strings.Contains(got, "📅 December 27, 2023") {
		t.Errorf("eleventh insight should be cut:\n%s", got)
	}
}

func TestPlanningExcerpt(t *testing.T) {
	entries := newestFirstEntries(5)
	entries[0].PriorityA = "ship the release"
	entries[0].TomorrowFocus = "demo"
	entries[1].Completed = ""

	got := generate(models.ReportPlanning, entries)
	if n := strings.Count(got, "📋 Tasks:"); n != 3 {
		t.Errorf("planning excerpt has %d records, want 3:\n%s", n, got)
	}
	if strings.Contains(got, "📅 January 13, 2024") {
		t.Errorf("planning excerpt should hold only the newest three entries:\n%s", got)
	}
	for want, count := range map[string]int{
		"🚀 Priorities: ship the release": 1,
		"🎯 Tomorrow: demo":               1,
		"✅ Completed:":                   2,
	} {
		if n := strings.Count(got, want); n != count {
			t.Errorf("%q appears %d times, want %d", want, n, count)
		}
	}
	if n := strings.Count(got, "🚀"); n != 1 {
		t.Errorf("absent priorities should be omitted, found %d", n)
	}
}

func TestTrendsExcerptLine(t *testing.T) {
	got := generate(models.ReportTrends, newestFirstEntries(9))
	if !strings.Contains(got, "📅 January 16, 2024 | Tasks: 2 | Completed: 1 | 50%") {
		t.Errorf("trends excerpt missing timeline line:\n%s", got)
	}
	if n := strings.Count(got, "| Tasks:"); n != 7 {
		t.Errorf("trends excerpt has %d lines, want 7", n)
	}
}

func TestGeneratePromptsCoversEveryKind(t *testing.T) {
	prompts := GeneratePrompts(models.UserStats{DateRange: "x"}, models.AnalysisData{TrendAnalysis: constants.TrendStable})
	for _, kind := range models.ReportKinds {
		if prompts[kind] == "" {
			t.Errorf("missing prompt for %s", kind)
		}
	}
	if !strings.HasPrefix(prompts[models.ReportTrends], constants.TrendStable) {
		t.Errorf("trends prompt = %q", prompts[models.ReportTrends])
	}
}

func TestFileName(t *testing.T) {
	got := FileName(models.ReportPlanning, testNow)
	if got != "flowplanr-planning-2024-01-17.txt" {
		t.Errorf("FileName() = %q", got)
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := Write(dir, models.ReportTrends, "report body", testNow)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if filepath.Base(path) != "flowplanr-trends-2024-01-17.txt" {
		t.Errorf("Write() path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "report body" {
		t.Errorf("written file = %q, %v", data, err)
	}
}

func TestCopy(t *testing.T) {
	orig := clipboardWrite
	t.Cleanup(func() { clipboardWrite = orig })

	var copied string
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	if err := Copy("prompt"); err != nil || copied != "prompt" {
		t.Errorf("Copy() = %v, copied %q", err, copied)
	}

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	if err := Copy("prompt"); err == nil {
		t.Error("Copy() should surface clipboard failures")
	}
}

func newTestService(t *testing.T, entries []models.JournalEntry) *Service {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "flowplanr.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.SaveSettings(models.Settings{Timezone: "UTC", ExportDir: t.TempDir()}); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	for _, e := range entries {
		if err := store.SaveEntry(e); err != nil {
			t.Fatalf("SaveEntry() error = %v", err)
		}
	}
	svc := NewService(store)
	svc.clock = func() time.Time { return testNow }
	return svc
}

func TestServiceLoadOrdering(t *testing.T) {
	// Two old entries with nothing done, then seven fully completed days.
	entries := newestFirstEntries(9)
	for i := range entries {
		entries[i].DailyTasks = "one task"
		entries[i].Completed = "one task"
		if i >= 7 {
			entries[i].Completed = ""
		}
	}
	entries = append(entries, models.JournalEntry{ID: "other", UserID: "u2", Date: "2024-01-16"})
	svc := newTestService(t, entries)

	b, err := svc.Load("u1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Stats.TotalEntries != 9 || b.Stats.StreakDays != 9 {
		t.Errorf("Stats = %+v", b.Stats)
	}
	if b.Analysis.TrendAnalysis != constants.TrendImproving {
		t.Errorf("TrendAnalysis = %q, want %q", b.Analysis.TrendAnalysis, constants.TrendImproving)
	}
	if b.Entries[0].Date != "2024-01-16" || b.Entries[len(b.Entries)-1].Date != "2024-01-08" {
		t.Errorf("Entries not newest first: %s .. %s", b.Entries[0].Date, b.Entries[len(b.Entries)-1].Date)
	}
}

func TestServiceSaveUsesRenderedArtifact(t *testing.T) {
	svc := newTestService(t, newestFirstEntries(3))
	a, err := svc.Render("u1", models.ReportTrends)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// a later clock must not change what was already rendered
	svc.clock = func() time.Time { return testNow.AddDate(0, 0, 2) }
	dir := t.TempDir()
	path, err := svc.Save(a, dir)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.Base(path) != FileName(models.ReportTrends, testNow) {
		t.Errorf("Save() file = %q, want the render date", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != a.Text {
		t.Error("saved file differs from the rendered text")
	}
}

func TestServiceDownload(t *testing.T) {
	svc := newTestService(t, newestFirstEntries(3))
	dir := t.TempDir()
	path, err := svc.Download("u1", models.ReportInsights, dir)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Download() wrote to %q, want dir %q", path, dir)
	}

	empty, err := svc.Report("nobody", models.ReportInsights)
	if err != nil || empty != constants.EmptyExportPlaceholder {
		t.Errorf("Report(nobody) = %q, %v", empty, err)
	}
}

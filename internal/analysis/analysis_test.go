package analysis

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
)

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)
	if got.CompletionRate != 0 || got.TrendAnalysis != constants.InsufficientAnalysis {
		t.Errorf("Compute(nil) = %+v", got)
	}
	if got.TopChallenges == nil || len(got.TopChallenges) != 0 {
		t.Errorf("TopChallenges = %#v, want empty non-nil", got.TopChallenges)
	}
	if len(got.MostProductiveDays)+len(got.BlockerPatterns)+len(got.InsightKeywords) != 0 {
		t.Errorf("Compute(nil) lists should be empty: %+v", got)
	}
}

func TestTopChallenges(t *testing.T) {
	entries := []models.JournalEntry{
		{Date: "2024-01-01", Difficulties: "Meetings ran long", Blockers: "waiting on review"},
		{Date: "2024-01-02", Difficulties: "too many meetings", Blockers: "Review queue, REVIEW again"},
		{Date: "2024-01-03", Difficulties: "meetings; focus; sleep; lunch; email; calls"},
	}
	got := TopChallenges(entries)
	want := []string{"meetings", "review", "long", "waiting", "many"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopChallenges() = %v, want %v", got, want)
	}
	for _, w := range got {
		if len(w) <= 3 {
			t.Errorf("token %q is too short", w)
		}
	}
}

func TestTopChallengesTiesKeepFirstSeen(t *testing.T) {
	entries := []models.JournalEntry{{Date: "2024-01-01", Difficulties: "zeta alpha gamma"}}
	got := TopChallenges(entries)
	want := []string{"zeta", "alpha", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopChallenges() = %v, want %v", got, want)
	}
}

func TestInsightKeywords(t *testing.T) {
	entries := []models.JournalEntry{
		{Date: "2024-01-01", Insights: "Small tasks help. Plan mornings, plan focus."},
		{Date: "2024-01-02", Insights: "Mornings are best for focus work"},
		{Date: "2024-01-03", Insights: "alpha bravo charlie delta echoes foxtrot golfing hotels"},
	}
	got := InsightKeywords(entries)
	if len(got) > constants.InsightKeywordsLimit {
		t.Fatalf("InsightKeywords() returned %d items", len(got))
	}
	if got[0] != "mornings" {
		t.Errorf("InsightKeywords()[0] = %q, want mornings", got[0])
	}
	for _, w := range got {
		if len(w) <= 4 {
			t.Errorf("token %q is too short", w)
		}
	}
}

func TestBlockerPatterns(t *testing.T) {
	long := strings.Repeat("x", 60)
	entries := []models.JournalEntry{
		{Date: "2024-01-01", Blockers: "Waiting for design review. Short one! " + long},
		{Date: "2024-01-02", Blockers: "waiting for design review? CI is broken again"},
		{Date: "2024-01-03", Blockers: "ci is broken again. " + long + "yyy"},
		{Date: "2024-01-04"},
	}
	got := BlockerPatterns(entries)
	want := []string{"waiting for design review", strings.Repeat("x", 50), "ci is broken again"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BlockerPatterns() = %v, want %v", got, want)
	}
}

func TestMostProductiveDays(t *testing.T) {
	entries := []models.JournalEntry{
		{Date: "2024-01-01", DailyTasks: "a\nb", Completed: "a"},      // Monday 50
		{Date: "2024-01-08", DailyTasks: "a\nb", Completed: "a\nb"},   // Monday 100 -> avg 75
		{Date: "2024-01-02", DailyTasks: "a", Completed: "a"},         // Tuesday 100
		{Date: "2024-01-03", DailyTasks: "a\nb\nc\nd", Completed: ""}, // Wednesday 0
		{Date: "2024-01-04", Completed: "a\nb"},                       // Thursday 200
		{Date: "not-a-date", Completed: "a"},
	}
	got := MostProductiveDays(entries)
	want := []string{"Thursday", "Tuesday", "Monday"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MostProductiveDays() = %v, want %v", got, want)
	}
}

func TestListLimits(t *testing.T) {
	var entries []models.JournalEntry
	for i := 1; i <= 14; i++ {
		entries = append(entries, models.JournalEntry{
			Date:         fmt.Sprintf("2024-01-%02d", i),
			DailyTasks:   "a",
			Completed:    "a",
			Difficulties: fmt.Sprintf("word%02d", i),
			Insights:     fmt.Sprintf("insight%02d", i),
			Blockers:     fmt.Sprintf("blocker sentence %02d.", i),
		})
	}
	got := Compute(entries)
	if len(got.TopChallenges) > 5 || len(got.MostProductiveDays) > 3 || len(got.InsightKeywords) > 7 || len(got.BlockerPatterns) > 3 {
		t.Errorf("Compute() exceeded limits: %+v", got)
	}
}

// trendEntries builds n entries of 10 tasks with done completed lines each.
func trendEntries(n, done int) []models.JournalEntry {
	tasks := strings.TrimSuffix(strings.Repeat("t\n", 10), "\n")
	completed := strings.TrimSuffix(strings.Repeat("c\n", done), "\n")
	entries := make([]models.JournalEntry, n)
	for i := range entries {
		entries[i] = models.JournalEntry{Date: fmt.Sprintf("2024-02-%02d", i+1), DailyTasks: tasks, Completed: completed}
	}
	return entries
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		older  int
		recent int
		want   string
	}{
		{"improving", 5, 9, constants.TrendImproving},
		{"declining", 9, 5, constants.TrendDeclining},
		{"stable", 6, 7, constants.TrendStable},
		{"ten point gap is stable", 5, 6, constants.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := append(trendEntries(7, tt.older), trendEntries(7, tt.recent)...)
			if got := Trend(entries); got != tt.want {
				t.Errorf("Trend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrendInsufficient(t *testing.T) {
	if got := Trend(trendEntries(2, 5)); got != constants.InsufficientTrend {
		t.Errorf("Trend() = %q", got)
	}
}

func TestTrendShortListsOverlap(t *testing.T) {
	// Three entries: older window is empty, so its rate is 0.
	if got := Trend(trendEntries(3, 5)); got != constants.TrendImproving {
		t.Errorf("Trend(3 entries) = %q, want %q", got, constants.TrendImproving)
	}
	// Five entries: older is the first three, recent is all five.
	entries := append(trendEntries(3, 2), trendEntries(2, 10)...)
	if got := Trend(entries); got != constants.TrendImproving {
		t.Errorf("Trend(5 entries) = %q, want %q", got, constants.TrendImproving)
	}
}

func TestJSSlice(t *testing.T) {
	entries := trendEntries(5, 0)
	tests := []struct {
		start, end, want int
	}{
		{-7, 5, 5},
		{0, -2, 3},
		{0, -10, 0},
		{0, 7, 5},
		{3, 1, 0},
	}
	for _, tt := range tests {
		if got := len(jsSlice(entries, tt.start, tt.end)); got != tt.want {
			t.Errorf("jsSlice(%d, %d) len = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestComputeDoesNotMutate(t *testing.T) {
	entries := trendEntries(5, 3)
	before := fmt.Sprint(entries)
	Compute(entries)
	if fmt.Sprint(entries) != before {
		t.Error("Compute modified its input")
	}
}

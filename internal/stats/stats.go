// Package stats derives aggregate journal metrics from an entry list.
// Every function here is pure: the input slice is never modified.
package stats

import (
	"sort"
	"time"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/utils"
)

// Compute returns UserStats for entries relative to the current local time.
func Compute(entries []models.JournalEntry) models.UserStats {
	return ComputeAt(entries, time.Now())
}

// ComputeAt returns UserStats with the streak measured back from now.
// "Today" is now's calendar date in now's location.
func ComputeAt(entries []models.JournalEntry, now time.Time) models.UserStats {
	if len(entries) == 0 {
		return models.UserStats{DateRange: constants.NoDataRange}
	}

	totalTasks := 0
	for _, e := range entries {
		totalTasks += utils.CountLines(e.DailyTasks)
	}

	return models.UserStats{
		TotalEntries:   len(entries),
		DateRange:      DateRange(entries),
		StreakDays:     Streak(entries, now),
		AvgTasksPerDay: utils.Round(float64(totalTasks) / float64(len(entries))),
		CompletionRate: CompletionRate(entries),
	}
}

// DateRange formats the earliest and latest entry dates as "<first> - <last>".
func DateRange(entries []models.JournalEntry) string {
	if len(entries) == 0 {
		return constants.NoDataRange
	}
	sorted := SortedByDate(entries)
	first := utils.FormatLongDate(sorted[0].Date)
	last := utils.FormatLongDate(sorted[len(sorted)-1].Date)
	return first + " - " + last
}

// Streak counts consecutive days with an entry, scanning back from today for
// at most StreakWindowDays days. A missing entry for today does not end the
// scan; a missing entry on any earlier day does.
func Streak(entries []models.JournalEntry, now time.Time) int {
	dates := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		dates[e.Date] = struct{}{}
	}

	streak := 0
	for i := 0; i < constants.StreakWindowDays; i++ {
		if _, ok := dates[utils.DaysBefore(now, i)]; ok {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// CompletionRate is the share of task lines marked completed across all
// entries, as a rounded percentage. It is 0 when there are no task lines.
func CompletionRate(entries []models.JournalEntry) int {
	totalTasks, completed := 0, 0
	for _, e := range entries {
		totalTasks += utils.CountLines(e.DailyTasks)
		completed += utils.CountLines(e.Completed)
	}
	if totalTasks == 0 {
		return 0
	}
	rate := utils.Percent(completed, totalTasks)
	if rate > 100 {
		rate = 100
	}
	return rate
}

// ForEntry returns the task counts shown next to a single entry.
func ForEntry(e models.JournalEntry) models.EntryStats {
	total := utils.CountLines(e.DailyTasks)
	done := utils.CountLines(e.Completed)
	return models.EntryStats{
		TotalTasks:     total,
		CompletedTasks: done,
		CompletionRate: utils.Percent(done, total),
	}
}

// Snapshot computes the dashboard header cards. The week starts on Monday.
func Snapshot(entries []models.JournalEntry, now time.Time) models.DashboardSnapshot {
	weekStart := utils.StartOfWeek(now)
	thisWeek := 0
	for _, e := range entries {
		if e.Date >= weekStart {
			thisWeek++
		}
	}
	return models.DashboardSnapshot{
		TotalEntries:    len(entries),
		Streak:          Streak(entries, now),
		ThisWeekEntries: thisWeek,
		CompletionRate:  CompletionRate(entries),
	}
}

// SortedByDate returns a copy of entries in ascending date order.
func SortedByDate(entries []models.JournalEntry) []models.JournalEntry {
	sorted := make([]models.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// NewestFirst returns a copy of entries in descending date order.
func NewestFirst(entries []models.JournalEntry) []models.JournalEntry {
	sorted := make([]models.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

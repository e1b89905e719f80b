package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/utils"
)

// Filter narrows history to a date window relative to today.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterRecent    Filter = "recent"
	FilterThisWeek  Filter = "thisWeek"
	FilterThisMonth Filter = "thisMonth"
)

var Filters = []Filter{FilterAll, FilterRecent, FilterThisWeek, FilterThisMonth}

// ParseFilter accepts the camelCase names and their kebab-case CLI spelling.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "")) {
	case "", "all":
		return FilterAll, nil
	case "recent":
		return FilterRecent, nil
	case "thisweek":
		return FilterThisWeek, nil
	case "thismonth":
		return FilterThisMonth, nil
	}
	return "", fmt.Errorf("unknown history filter %q (use all, recent, this-week or this-month)", s)
}

func (f Filter) Label() string {
	switch f {
	case FilterRecent:
		return "Last 3 days"
	case FilterThisWeek:
		return "This week"
	case FilterThisMonth:
		return "This month"
	default:
		return "All entries"
	}
}

// since returns the first date key inside the window, or "" for no bound.
func (f Filter) since(now time.Time) string {
	switch f {
	case FilterRecent:
		return utils.DaysBefore(now, constants.RecentFilterDays-1)
	case FilterThisWeek:
		return utils.StartOfWeek(now)
	case FilterThisMonth:
		return utils.StartOfMonth(now)
	}
	return ""
}

// Query selects history entries.
type Query struct {
	Filter Filter
	Search string
	// Fuzzy ranks matches by fuzzy score instead of requiring a substring.
	Fuzzy bool
}

// Apply filters entries by q relative to now. Results are newest first,
// except fuzzy searches which come back best match first.
func Apply(entries []models.JournalEntry, q Query, now time.Time) []models.JournalEntry {
	since := q.Filter.since(now)
	var windowed []models.JournalEntry
	for _, e := range stats.NewestFirst(entries) {
		if since == "" || e.Date >= since {
			windowed = append(windowed, e)
		}
	}

	search := strings.TrimSpace(q.Search)
	if search == "" {
		return windowed
	}
	if q.Fuzzy {
		return fuzzyRank(windowed, search)
	}

	var matched []models.JournalEntry
	needle := utils.Lower(search)
	for _, e := range windowed {
		if strings.Contains(utils.Lower(searchText(e)), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}

func searchText(e models.JournalEntry) string {
	return e.Date + "\n" + strings.Join(e.TextValues(), "\n")
}

type entrySource []models.JournalEntry

func (s entrySource) String(i int) string { return utils.Lower(searchText(s[i])) }
func (s entrySource) Len() int            { return len(s) }

func fuzzyRank(entries []models.JournalEntry, search string) []models.JournalEntry {
	matches := fuzzy.FindFrom(utils.Lower(search), entrySource(entries))
	ranked := make([]models.JournalEntry, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, entries[m.Index])
	}
	return ranked
}

// Preview is the one-paragraph summary shown in history lists.
func Preview(e models.JournalEntry) string {
	var parts []string
	for _, v := range []string{e.PriorityA, e.DailyTasks, e.Completed, e.Insights} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	text := strings.Join(parts, " ")
	if text == "" {
		return constants.EmptyEntryPreview
	}
	return utils.Truncate(text, constants.PreviewMaxLen)
}

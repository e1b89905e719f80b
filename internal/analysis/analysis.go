// Package analysis extracts recurring themes and trends from journal text.
//
// The heuristics are intentionally simple word and phrase frequency counts.
// Their thresholds live in the constants package and feed straight into
// report text, so changing any of them changes exported reports.
package analysis

import (
	"sort"
	"strings"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/utils"
)

// Compute runs every heuristic over entries. Order matters only for the
// trend verdict, which treats the tail of the slice as the recent window.
func Compute(entries []models.JournalEntry) models.AnalysisData {
	if len(entries) == 0 {
		return models.AnalysisData{
			TopChallenges:      []string{},
			MostProductiveDays: []string{},
			BlockerPatterns:    []string{},
			InsightKeywords:    []string{},
			TrendAnalysis:      constants.InsufficientAnalysis,
		}
	}

	return models.AnalysisData{
		CompletionRate:     stats.CompletionRate(entries),
		TopChallenges:      TopChallenges(entries),
		MostProductiveDays: MostProductiveDays(entries),
		BlockerPatterns:    BlockerPatterns(entries),
		InsightKeywords:    InsightKeywords(entries),
		TrendAnalysis:      Trend(entries),
	}
}

// TopChallenges returns the most frequent words from difficulties and blockers.
func TopChallenges(entries []models.JournalEntry) []string {
	c := newCounter()
	for _, e := range entries {
		for _, w := range utils.Words(e.Difficulties+" "+e.Blockers, constants.ChallengeMinWordLen) {
			c.add(w)
		}
	}
	return c.top(constants.TopChallengesLimit)
}

// InsightKeywords returns the most frequent longer words from insights.
func InsightKeywords(entries []models.JournalEntry) []string {
	c := newCounter()
	for _, e := range entries {
		for _, w := range utils.Words(e.Insights, constants.InsightMinWordLen) {
			c.add(w)
		}
	}
	return c.top(constants.InsightKeywordsLimit)
}

// BlockerPatterns returns the most frequent blocker sentences, keyed by their
// first BlockerPhraseKeyLen characters.
func BlockerPatterns(entries []models.JournalEntry) []string {
	c := newCounter()
	for _, e := range entries {
		if e.Blockers == "" {
			continue
		}
		fragments := strings.FieldsFunc(utils.Lower(e.Blockers), func(r rune) bool {
			return r == '.' || r == '!' || r == '?'
		})
		for _, f := range fragments {
			f = strings.TrimSpace(f)
			if len([]rune(f)) > constants.BlockerMinPhraseLen {
				c.add(utils.Truncate(f, constants.BlockerPhraseKeyLen))
			}
		}
	}
	return c.top(constants.BlockerPatternsLimit)
}

// MostProductiveDays ranks weekdays by their average per-entry completion
// score. An entry scores completed/max(tasks,1)*100.
func MostProductiveDays(entries []models.JournalEntry) []string {
	var order []string
	sums := map[string]float64{}
	counts := map[string]int{}

	for _, e := range entries {
		day, err := utils.WeekdayName(e.Date)
		if err != nil {
			continue
		}
		tasks := utils.CountLines(e.DailyTasks)
		if tasks < 1 {
			tasks = 1
		}
		score := float64(utils.CountLines(e.Completed)) / float64(tasks) * 100

		if _, seen := counts[day]; !seen {
			order = append(order, day)
		}
		sums[day] += score
		counts[day]++
	}

	avg := func(day string) float64 { return sums[day] / float64(counts[day]) }
	sort.SliceStable(order, func(i, j int) bool {
		return avg(order[i]) > avg(order[j])
	})
	return limit(order, constants.ProductiveDaysLimit)
}

// Trend compares completion of the last TrendWindow entries against the
// first min(TrendWindow, n-TrendWindow) entries, with JS slice indexing. Below
// 2*TrendWindow entries the older window shrinks; below TrendWindow its end
// index goes negative and the windows overlap.
func Trend(entries []models.JournalEntry) string {
	n := len(entries)
	if n < constants.TrendMinEntries {
		return constants.InsufficientTrend
	}

	recent := jsSlice(entries, -constants.TrendWindow, n)
	older := jsSlice(entries, 0, min(constants.TrendWindow, n-constants.TrendWindow))

	recentRate := stats.CompletionRate(recent)
	olderRate := stats.CompletionRate(older)

	switch {
	case recentRate > olderRate+constants.TrendDeadBand:
		return constants.TrendImproving
	case recentRate < olderRate-constants.TrendDeadBand:
		return constants.TrendDeclining
	default:
		return constants.TrendStable
	}
}

// jsSlice slices with negative bounds counted from the end, clamped to the
// slice, and an empty result when start >= end.
func jsSlice(entries []models.JournalEntry, start, end int) []models.JournalEntry {
	n := len(entries)
	clamp := func(i int) int {
		if i < 0 {
			i += n
		}
		return max(0, min(i, n))
	}
	start, end = clamp(start), clamp(end)
	if start >= end {
		return nil
	}
	return entries[start:end]
}

// counter counts keys and ranks them by frequency, breaking ties by first
// appearance.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) top(n int) []string {
	ranked := make([]string, len(c.order))
	copy(ranked, c.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return c.counts[ranked[i]] > c.counts[ranked[j]]
	})
	return limit(ranked, n)
}

func limit(s []string, n int) []string {
	if s == nil {
		return []string{}
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

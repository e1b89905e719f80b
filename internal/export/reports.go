// Package export renders statistics, analysis and entry excerpts into
// plain-text reports meant to be pasted into an AI assistant.
package export

import (
	"fmt"
	"strings"

	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/utils"
)

const (
	blockersExcerptLen = 5
	insightsExcerptLen = 10
	planningExcerptLen = 3
	trendsExcerptLen   = 7
)

// GenerateReports renders every report kind. Excerpts take entries from the
// front of the slice, so callers pass them newest first.
func GenerateReports(s models.UserStats, a models.AnalysisData, entries []models.JournalEntry) map[models.ReportKind]string {
	reports := make(map[models.ReportKind]string, len(models.ReportKinds))
	for _, kind := range models.ReportKinds {
		reports[kind] = GenerateReport(kind, s, a, entries)
	}
	return reports
}

// GenerateReport renders a single report. With no entries every kind
// returns the same placeholder.
func GenerateReport(kind models.ReportKind, s models.UserStats, a models.AnalysisData, entries []models.JournalEntry) string {
	if len(entries) == 0 {
		return constants.EmptyExportPlaceholder
	}

	prompt := GeneratePrompts(s, a)[kind]
	var b strings.Builder
	section := func(title string) {
		fmt.Fprintf(&b, "=== %s ===\n\n", title)
	}

	section(strings.ToUpper(kind.Title()))

	switch kind {
	case models.ReportProductivity:
		fmt.Fprintf(&b, "Analysis period: %s\n", s.DateRange)
		fmt.Fprintf(&b, "Total entries: %d\n", s.TotalEntries)
		fmt.Fprintf(&b, "Journaling streak: %d days\n", s.StreakDays)
		fmt.Fprintf(&b, "Average tasks per day: %d\n", s.AvgTasksPerDay)
		fmt.Fprintf(&b, "Completion rate: %d%%\n\n", a.CompletionRate)
		fmt.Fprintf(&b, "Most productive days: %s\n", strings.Join(a.MostProductiveDays, ", "))
		fmt.Fprintf(&b, "Main challenges: %s\n", strings.Join(a.TopChallenges, ", "))
		fmt.Fprintf(&b, "Trend: %s\n\n", a.TrendAnalysis)
		writePrompt(&b, prompt)
		b.WriteString("=== INSTRUCTIONS ===\n")
		b.WriteString("Copy the prompt above and send it to Claude AI for a personal productivity analysis.")

	case models.ReportBlockers:
		fmt.Fprintf(&b, "Analysis period: %s\n", s.DateRange)
		fmt.Fprintf(&b, "Recurring blocker patterns:\n%s\n\n", bullets(a.BlockerPatterns))
		fmt.Fprintf(&b, "Main difficulties:\n%s\n\n", bullets(a.TopChallenges))
		writePrompt(&b, prompt)
		section("DETAILED DIFFICULTY RECORDS")
		b.WriteString(blockersExcerpt(entries))
		b.WriteString("\n\n=== INSTRUCTIONS ===\n")
		b.WriteString("Copy the prompt and send it to Claude for an analysis of your blockers and advice on overcoming them.")

	case models.ReportInsights:
		fmt.Fprintf(&b, "Analysis period: %s\n", s.DateRange)
		fmt.Fprintf(&b, "Key insight themes: %s\n\n", strings.Join(a.InsightKeywords, ", "))
		writePrompt(&b, prompt)
		section("INSIGHT COLLECTION")
		b.WriteString(insightsExcerpt(entries))
		b.WriteString("\n\n=== INSTRUCTIONS ===\n")
		b.WriteString("Send the prompt to Claude to deepen your insights and get practical recommendations.")

	case models.ReportPlanning:
		b.WriteString("Planning statistics:\n")
		fmt.Fprintf(&b, "• Average tasks per day: %d\n", s.AvgTasksPerDay)
		fmt.Fprintf(&b, "• Completion rate: %d%%\n", a.CompletionRate)
		fmt.Fprintf(&b, "• Most productive days: %s\n", strings.Join(a.MostProductiveDays, ", "))
		fmt.Fprintf(&b, "• Journaling streak: %d days\n\n", s.StreakDays)
		writePrompt(&b, prompt)
		section("PLANNING EXAMPLES")
		b.WriteString(planningExcerpt(entries))
		b.WriteString("\n\n=== INSTRUCTIONS ===\n")
		b.WriteString("Use the prompt to get recommendations on improving your planning and work structure.")

	case models.ReportTrends:
		fmt.Fprintf(&b, "Analysis period: %s\n", s.DateRange)
		fmt.Fprintf(&b, "Dynamics: %s\n", a.TrendAnalysis)
		fmt.Fprintf(&b, "Completion rate: %d%%\n\n", a.CompletionRate)
		writePrompt(&b, prompt)
		section("ENTRY TIMELINE")
		b.WriteString(trendsExcerpt(entries))
		b.WriteString("\n\n=== INSTRUCTIONS ===\n")
		b.WriteString("Send the prompt to get an analysis of your trends and strategic recommendations.")
	}

	return b.String()
}

func writePrompt(b *strings.Builder, prompt string) {
	b.WriteString("=== PROMPT FOR CLAUDE ===\n\n")
	b.WriteString(prompt)
	b.WriteString("\n\n")
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

func excerptDate(date string) string {
	return utils.FormatDate(date, constants.ExcerptDateFormat)
}

func head(entries []models.JournalEntry, n int) []models.JournalEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

func blockersExcerpt(entries []models.JournalEntry) string {
	var parts []string
	for _, e := range head(entries, blockersExcerptLen) {
		text := fmt.Sprintf("📅 %s\n", excerptDate(e.Date))
		if e.Difficulties != "" {
			text += fmt.Sprintf("🚧 Difficulties: %s\n", e.Difficulties)
		}
		if e.Blockers != "" {
			text += fmt.Sprintf("🔧 Blockers: %s\n", e.Blockers)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n---\n")
}

func insightsExcerpt(entries []models.JournalEntry) string {
	var withInsights []models.JournalEntry
	for _, e := range entries {
		if e.Insights != "" {
			withInsights = append(withInsights, e)
		}
	}
	var parts []string
	for _, e := range head(withInsights, insightsExcerptLen) {
		parts = append(parts, fmt.Sprintf("📅 %s\n💡 %s", excerptDate(e.Date), e.Insights))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func planningExcerpt(entries []models.JournalEntry) string {
	var parts []string
	for _, e := range head(entries, planningExcerptLen) {
		text := fmt.Sprintf("📅 %s\n", excerptDate(e.Date))
		if e.PriorityA != "" {
			text += fmt.Sprintf("🚀 Priorities: %s\n", e.PriorityA)
		}
		if e.DailyTasks != "" {
			text += fmt.Sprintf("📋 Tasks: %s\n", e.DailyTasks)
		}
		if e.Completed != "" {
			text += fmt.Sprintf("✅ Completed: %s\n", e.Completed)
		}
		if e.TomorrowFocus != "" {
			text += fmt.Sprintf("🎯 Tomorrow: %s\n", e.TomorrowFocus)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n---\n")
}

func trendsExcerpt(entries []models.JournalEntry) string {
	var lines []string
	for _, e := range head(entries, trendsExcerptLen) {
		es := stats.ForEntry(e)
		lines = append(lines, fmt.Sprintf("📅 %s | Tasks: %d | Completed: %d | %d%%",
			excerptDate(e.Date), es.TotalTasks, es.CompletedTasks, es.CompletionRate))
	}
	return strings.Join(lines, "\n")
}

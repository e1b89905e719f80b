package export

import (
	"fmt"
	"strings"

	"github.com/julianstephens/flowplanr/internal/models"
)

// GeneratePrompts builds the short assistant prompt for every report kind.
func GeneratePrompts(s models.UserStats, a models.AnalysisData) map[models.ReportKind]string {
	return map[models.ReportKind]string{
		models.ReportProductivity: fmt.Sprintf(
			"Analyze my productivity for %s. I have %d entries, task completion %d%%, journaling streak %d days. Main challenges: %s. What can I improve?",
			s.DateRange, s.TotalEntries, a.CompletionRate, s.StreakDays, strings.Join(a.TopChallenges, ", ")),
		models.ReportBlockers: fmt.Sprintf(
			"Help me work through the blockers in my work. Recurring patterns: %s. How can I turn these obstacles into opportunities?",
			strings.Join(a.BlockerPatterns, "; ")),
		models.ReportInsights: fmt.Sprintf(
			"Develop my insights into concrete actions. Key themes: %s. How can I apply these learnings to grow?",
			strings.Join(a.InsightKeywords, ", ")),
		models.ReportPlanning: fmt.Sprintf(
			"Optimize my planning. Most productive days: %s. Average tasks per day: %d. How can I structure the work week better?",
			strings.Join(a.MostProductiveDays, ", "), s.AvgTasksPerDay),
		models.ReportTrends: fmt.Sprintf(
			"%s. Analyze the dynamics and give recommendations for the next period.",
			a.TrendAnalysis),
	}
}

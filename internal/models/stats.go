package models

// UserStats summarizes an entry list.
type UserStats struct {
	TotalEntries   int    `json:"totalEntries"`
	DateRange      string `json:"dateRange"`
	StreakDays     int    `json:"streakDays"`
	AvgTasksPerDay int    `json:"avgTasksPerDay"`
	CompletionRate int    `json:"completionRate"`
}

// AnalysisData holds the text heuristics derived from an entry list.
type AnalysisData struct {
	CompletionRate     int      `json:"completionRate"`
	TopChallenges      []string `json:"topChallenges"`
	MostProductiveDays []string `json:"mostProductiveDays"`
	BlockerPatterns    []string `json:"blockerPatterns"`
	InsightKeywords    []string `json:"insightKeywords"`
	TrendAnalysis      string   `json:"trendAnalysis"`
}

// DashboardSnapshot backs the dashboard header cards.
type DashboardSnapshot struct {
	TotalEntries    int `json:"totalEntries"`
	Streak          int `json:"streak"`
	ThisWeekEntries int `json:"thisWeekEntries"`
	CompletionRate  int `json:"completionRate"`
}

// EntryStats are the per-entry task counts shown in history.
type EntryStats struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`
	CompletionRate int `json:"completionRate"`
}

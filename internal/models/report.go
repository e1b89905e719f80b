package models

import "fmt"

// ReportKind selects one of the five export reports.
type ReportKind string

const (
	ReportProductivity ReportKind = "productivity"
	ReportBlockers     ReportKind = "blockers"
	ReportInsights     ReportKind = "insights"
	ReportPlanning     ReportKind = "planning"
	ReportTrends       ReportKind = "trends"
)

// ReportKinds lists every report kind in display order.
var ReportKinds = []ReportKind{
	ReportProductivity,
	ReportBlockers,
	ReportInsights,
	ReportPlanning,
	ReportTrends,
}

// ParseReportKind validates a report kind name.
func ParseReportKind(s string) (ReportKind, error) {
	for _, k := range ReportKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown report kind %q", s)
}

// Title returns the human-readable report title.
func (k ReportKind) Title() string {
	switch k {
	case ReportProductivity:
		return "Productivity Analysis"
	case ReportBlockers:
		return "Blocker Analysis"
	case ReportInsights:
		return "Insights and Learnings"
	case ReportPlanning:
		return "Planning Optimization"
	case ReportTrends:
		return "Trend Analysis"
	}
	return string(k)
}

// Description is the one-line summary shown next to the export option.
func (k ReportKind) Description() string {
	switch k {
	case ReportProductivity:
		return "Overall productivity and completion metrics"
	case ReportBlockers:
		return "Recurring obstacles and how to address them"
	case ReportInsights:
		return "Themes and lessons from your insights"
	case ReportPlanning:
		return "How to structure the work week better"
	case ReportTrends:
		return "Productivity dynamics over time"
	}
	return ""
}

package reports

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/export"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/tui/components/dashboard"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type StatsCmd struct {
	JSON bool `help:"Print machine-readable JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	b, err := ctx.Export().Load(user.ID)
	if err != nil {
		return err
	}
	snapshot := stats.Snapshot(b.Entries, b.Now)

	if c.JSON {
		out, err := json.MarshalIndent(struct {
			Dashboard models.DashboardSnapshot `json:"dashboard"`
			Stats     models.UserStats         `json:"stats"`
			Analysis  models.AnalysisData      `json:"analysis"`
		}{snapshot, b.Stats, b.Analysis}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(renderStats(snapshot, b))
	return nil
}

func renderStats(snapshot models.DashboardSnapshot, b export.Bundle) string {
	var sb strings.Builder
	sb.WriteString(dashboard.Render(snapshot, 0))
	sb.WriteString("\n")

	section := func(title string, lines ...string) {
		sb.WriteString(sectionStyle.Render(title))
		sb.WriteString("\n")
		if len(lines) == 0 {
			sb.WriteString(mutedStyle.Render("  none yet"))
			sb.WriteString("\n")
		}
		for _, l := range lines {
			sb.WriteString("  ")
			sb.WriteString(l)
			sb.WriteString("\n")
		}
	}

	section("Overview",
		fmt.Sprintf("Period:           %s", b.Stats.DateRange),
		fmt.Sprintf("Avg tasks/day:    %d", b.Stats.AvgTasksPerDay),
		fmt.Sprintf("Trend:            %s", b.Analysis.TrendAnalysis),
	)
	section("Top challenges", b.Analysis.TopChallenges...)
	section("Most productive days", b.Analysis.MostProductiveDays...)
	section("Blocker patterns", b.Analysis.BlockerPatterns...)
	section("Insight keywords", b.Analysis.InsightKeywords...)
	return strings.TrimRight(sb.String(), "\n")
}

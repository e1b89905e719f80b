package entries

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/journal"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type HistoryCmd struct {
	Filter  string `help:"Date window: all, recent, this-week or this-month." default:"all" enum:"all,recent,this-week,this-month"`
	Search  string `short:"s" help:"Only entries containing this text."`
	Fuzzy   bool   `help:"Rank entries by fuzzy match instead of substring search."`
	ShowIDs bool   `name:"show-ids" help:"Print entry IDs."`
	Limit   int    `short:"n" help:"Show at most this many entries (0 for all)." default:"0"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	filter, err := journal.ParseFilter(c.Filter)
	if err != nil {
		return err
	}

	results, err := ctx.Journal().History(user.ID, journal.Query{Filter: filter, Search: c.Search, Fuzzy: c.Fuzzy})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Printf("No entries found (%s).\n", filter.Label())
		return nil
	}

	fmt.Printf("%s: %d entries\n", filter.Label(), len(results))
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}
	for _, e := range results {
		fmt.Print(formatHistoryLine(e, c.ShowIDs))
	}
	return nil
}

func formatHistoryLine(e models.JournalEntry, showID bool) string {
	es := stats.ForEntry(e)
	header := titleStyle.Render(utils.FormatLongDate(e.Date))
	if es.TotalTasks > 0 {
		header += mutedStyle.Render(fmt.Sprintf("  %d/%d tasks (%d%%)", es.CompletedTasks, es.TotalTasks, es.CompletionRate))
	}
	line := fmt.Sprintf("\n%s\n  %s\n", header, journal.Preview(e))
	if showID {
		line += mutedStyle.Render("  id: "+e.ID) + "\n"
	}
	return line
}

package entries

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/errors"
	"github.com/julianstephens/flowplanr/internal/journal"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/tui/components/entryform"
	"github.com/julianstephens/flowplanr/internal/utils"
)

// editEntry opens the interactive entry form.
var editEntry = func(date string, entry *models.JournalEntry) error {
	return entryform.New(date, entry).Run()
}

// resolveDate returns date, or today in the configured timezone.
func resolveDate(svc *journal.Service, date string) (string, error) {
	if date == "" || date == "today" {
		return svc.Today()
	}
	return date, nil
}

type EntryWriteCmd struct {
	Date string `help:"Entry date (YYYY-MM-DD). Defaults to today."`

	PriorityA     *string `name:"priority-a" help:"The one thing that must get done."`
	DailyTasks    *string `help:"All tasks for the day, one per line."`
	Completed     *string `help:"Completed tasks, one per line."`
	Postponed     *string `help:"Tasks moved to tomorrow."`
	WaitingFor    *string `help:"Things waiting on other people."`
	Difficulties  *string `help:"Difficulties of the day."`
	Blockers      *string `help:"Blockers and obstacles."`
	Insights      *string `help:"Insights and conclusions."`
	TomorrowFocus *string `help:"Focus for tomorrow."`
	Notes         *string `help:"Additional notes."`
}

// flags maps each set field flag to its entry field key.
func (c *EntryWriteCmd) flags() map[string]*string {
	all := map[string]*string{
		"priorityA":     c.PriorityA,
		"dailyTasks":    c.DailyTasks,
		"completed":     c.Completed,
		"postponed":     c.Postponed,
		"waitingFor":    c.WaitingFor,
		"difficulties":  c.Difficulties,
		"blockers":      c.Blockers,
		"insights":      c.Insights,
		"tomorrowFocus": c.TomorrowFocus,
		"notes":         c.Notes,
	}
	for k, v := range all {
		if v == nil {
			delete(all, k)
		}
	}
	return all
}

// Run merges the given field flags into the entry for the date. Without
// any field flags the entry form opens, prefilled with the saved entry.
func (c *EntryWriteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	svc := ctx.Journal()
	date, err := resolveDate(svc, c.Date)
	if err != nil {
		return err
	}

	form, err := svc.Get(user.ID, date)
	if err != nil && !stderrors.Is(err, storage.ErrNotFound) {
		return err
	}

	if set := c.flags(); len(set) > 0 {
		for key, value := range set {
			*form.Field(key) = *value
		}
	} else if err := editEntry(date, &form); err != nil {
		return err
	}

	saved, err := svc.Save(user.ID, date, form)
	if err != nil {
		return err
	}

	es := stats.ForEntry(saved)
	fmt.Printf("✓ Saved entry for %s (%d/%d tasks completed)\n", utils.FormatLongDate(saved.Date), es.CompletedTasks, es.TotalTasks)
	return nil
}

type EntryShowCmd struct {
	Date string `help:"Entry date (YYYY-MM-DD). Defaults to today."`
}

func (c *EntryShowCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	svc := ctx.Journal()
	date, err := resolveDate(svc, c.Date)
	if err != nil {
		return err
	}

	entry, err := svc.Get(user.ID, date)
	if stderrors.Is(err, storage.ErrNotFound) {
		return errors.WithHint(fmt.Errorf("no entry for %s", date), "Write one with 'flowplanr entry write --date "+date+"'.")
	}
	if err != nil {
		return err
	}

	fmt.Print(formatEntry(entry))
	return nil
}

func formatEntry(e models.JournalEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(utils.FormatLongDate(e.Date)))
	for _, f := range models.EntryFields {
		value := *e.Field(f.Key)
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "\n%s %s\n", f.Icon, labelStyle.Render(f.Label))
		for _, line := range strings.Split(value, "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	es := stats.ForEntry(e)
	fmt.Fprintf(&b, "\n%s\n", mutedStyle.Render(fmt.Sprintf(
		"%d/%d tasks completed (%d%%) · updated %s · id %s",
		es.CompletedTasks, es.TotalTasks, es.CompletionRate, humanize.Time(e.UpdatedAt), e.ID)))
	return b.String()
}

type EntryDeleteCmd struct {
	ID  string `arg:"" help:"ID of the entry to delete (see 'flowplanr history --show-ids')."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete entry %s permanently?", c.ID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Journal().Delete(user.ID, c.ID); err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("entry %s not found", c.ID)
		}
		return err
	}
	fmt.Println("✓ Entry deleted")
	return nil
}

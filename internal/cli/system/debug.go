package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/logger"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/utils"
	"github.com/julianstephens/flowplanr/internal/validation"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" help:"Show store and log paths."`
	DumpEntry    DebugDumpEntryCmd    `cmd:"" help:"Dump the current user's entry for a date as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
	DumpStats    DebugDumpStatsCmd    `cmd:"" help:"Dump the raw statistics and analysis as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// machine-readable
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
		"log":  logger.LogFile(ctx.ConfigDir),
	})
}

type DebugDumpEntryCmd struct {
	Date string `arg:"" help:"Date of the entry to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	svc := ctx.Journal()

	date := cmd.Date
	if date == "today" {
		if date, err = svc.Today(); err != nil {
			return err
		}
	}
	if !utils.ValidateDateFormat(date) {
		return fmt.Errorf("%w: %s (expected YYYY-MM-DD or 'today')", validation.ErrInvalidDate, date)
	}

	entry, err := svc.Get(user.ID, date)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no entry found for date: %s", date)
	}
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}
	return printJSON(entry)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(redactSettings(settings))
}

func redactSettings(s models.Settings) models.Settings {
	if s.SessionSecret != "" {
		s.SessionSecret = "****"
	}
	return s
}

type DebugDumpStatsCmd struct{}

func (cmd *DebugDumpStatsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	b, err := ctx.Export().Load(user.ID)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"now":      b.Now,
		"stats":    b.Stats,
		"analysis": b.Analysis,
	})
}

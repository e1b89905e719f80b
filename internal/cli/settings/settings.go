package settings

import (
	"fmt"

	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone  *string `help:"IANA timezone used to decide what 'today' is, or Local."`
	ExportDir *string `help:"Directory exported reports are written to."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	if c.List {
		now, err := utils.NowInTimezone(settings.Timezone)
		if err != nil {
			return err
		}
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:   %s (today is %s)\n", settings.Timezone, utils.DateKey(now))
		fmt.Printf("  Export Dir: %s\n", settings.ExportDir)
		fmt.Printf("  Store:      %s\n", ctx.Store.GetConfigPath())
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s (use an IANA name like Europe/Berlin, or Local)", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.ExportDir != nil {
		if *c.ExportDir == "" {
			return fmt.Errorf("export directory cannot be empty")
		}
		if _, err := utils.ExpandHome(*c.ExportDir); err != nil {
			return err
		}
		settings.ExportDir = *c.ExportDir
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

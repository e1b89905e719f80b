package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store file before initialization."`
	Source string `help:"Store path or connection string to copy users, entries and settings from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// close first so the file is not held open
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized flowplanr storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) error {
	location, err := cli.ResolveConfig(c.Source)
	if err != nil {
		return err
	}
	source := cli.OpenStore(location)
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	return copyStore(source, ctx.Store)
}

// copyStore copies settings, users and entries. Sessions stay behind so
// the destination starts logged out.
func copyStore(src, dst storage.Provider) error {
	fmt.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating users...")
	users, err := src.GetAllUsers()
	if err != nil {
		return fmt.Errorf("failed to get users from source: %w", err)
	}
	for _, user := range users {
		if err := dst.SaveUser(user); err != nil {
			return fmt.Errorf("failed to save user %s: %w", user.ID, err)
		}
	}
	fmt.Printf("    Migrated %d users\n", len(users))

	fmt.Println("  Migrating entries...")
	entries, err := src.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to get entries from source: %w", err)
	}
	for _, entry := range entries {
		if err := dst.SaveEntry(entry); err != nil {
			return fmt.Errorf("failed to save entry %s: %w", entry.ID, err)
		}
	}
	fmt.Printf("    Migrated %d entries\n", len(entries))

	return nil
}

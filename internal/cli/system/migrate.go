package system

import (
	"fmt"

	"github.com/julianstephens/flowplanr/internal/cli"
)

// schemaStore is implemented by the SQL stores.
type schemaStore interface {
	SchemaVersion() (current, latest int, err error)
	Migrate(logFn func(string)) (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	store, ok := ctx.Store.(schemaStore)
	if !ok {
		fmt.Println("The JSON store has no schema. Nothing to migrate.")
		return nil
	}

	count, err := store.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}

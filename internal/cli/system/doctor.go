package system

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/flowplanr/internal/backup"
	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/keyring"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/utils"
	"github.com/julianstephens/flowplanr/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Delete duplicate entries for the same date, keeping the earliest."`
}

// check is one diagnostic. needsDB checks are skipped when the store
// cannot be loaded; warnOnly checks never fail the run.
type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

func (cmd *DoctorCmd) checks() []check {
	return []check{
		{name: "Database reachable", run: checkDBReachable},
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Settings", needsDB: true, run: checkSettings},
		{name: "Data validation", needsDB: true, run: cmd.checkValidation},
		{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
		{name: "OS keyring", warnOnly: true, run: func(*cli.Context) error { return checkKeyring() }},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	for i, c := range cmd.checks() {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				dbReachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

// sqlStore exposes the SQLite connection for direct queries.
type sqlStore interface {
	GetDB() *sql.DB
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(sqlStore); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(schemaStore)
	if !ok {
		// JSON store doesn't have schema version
		return nil
	}

	currentVersion, latestVersion, err := store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	store, ok := ctx.Store.(schemaStore)
	if !ok {
		return nil
	}

	currentVersion, latestVersion, err := store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'flowplanr migrate')", currentVersion, latestVersion)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !backup.Supported(ctx.Store.GetConfigPath()) {
		return fmt.Errorf("automatic backups are not available for PostgreSQL; use pg_dump")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'flowplanr backup create'")
	}

	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q (fix with 'flowplanr settings --timezone')", settings.Timezone)
	}
	if _, err := utils.ExpandHome(settings.ExportDir); err != nil {
		return err
	}
	return nil
}

func (cmd *DoctorCmd) checkValidation(ctx *cli.Context) error {
	users, err := ctx.Store.GetAllUsers()
	if err != nil {
		return fmt.Errorf("failed to get users: %w", err)
	}
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}

	result := validation.New().ValidateEntries(entries, users)
	if !result.HasConflicts() {
		return nil
	}
	if !cmd.Fix {
		return fmt.Errorf("%s", result.FormatReport())
	}

	actions := validation.AutoFixDuplicateDates(result.Conflicts, entries, ctx.Store.DeleteEntry)
	for _, a := range actions {
		fmt.Printf("   fixed: %s\n", a.Action)
	}

	// re-run to surface anything the fix could not handle
	if entries, err = ctx.Store.GetAllEntries(); err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	if result = validation.New().ValidateEntries(entries, users); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := utils.LoadLocation(constants.DefaultTimezone); err != nil {
		return fmt.Errorf("failed to load local timezone: %w", err)
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("%w; session secrets are kept in settings instead", keyring.ErrKeyringUnavailable)
	}
	return nil
}

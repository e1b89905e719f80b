package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/cli/account"
	"github.com/julianstephens/flowplanr/internal/cli/backups"
	"github.com/julianstephens/flowplanr/internal/cli/entries"
	"github.com/julianstephens/flowplanr/internal/cli/reports"
	"github.com/julianstephens/flowplanr/internal/cli/settings"
	"github.com/julianstephens/flowplanr/internal/cli/system"
	"github.com/julianstephens/flowplanr/internal/constants"
	"github.com/julianstephens/flowplanr/internal/errors"
	"github.com/julianstephens/flowplanr/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, .json store file, PostgreSQL connection string, or 'keyring'. Connection strings on the command line must not embed a password; use the keyring or FLOWPLANR_DB_CONNECTION." default:"${defaultConfig}" env:"FLOWPLANR_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize flowplanr storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Tools   system.DebugCmd   `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Import  system.ImportCmd  `cmd:"" help:"Import users and entries from a browser storage dump."`

	Register account.RegisterCmd `cmd:"" help:"Create an account and log in."`
	Login    account.LoginCmd    `cmd:"" help:"Log in to an existing account."`
	Logout   account.LogoutCmd   `cmd:"" help:"Log out."`
	Whoami   account.WhoamiCmd   `cmd:"" help:"Show the logged-in user."`

	Entry struct {
		Write  entries.EntryWriteCmd  `cmd:"" help:"Write or update the entry for a date." default:"1"`
		Show   entries.EntryShowCmd   `cmd:"" help:"Show the entry for a date."`
		Delete entries.EntryDeleteCmd `cmd:"" help:"Delete an entry."`
	} `cmd:"" help:"Manage journal entries."`
	History entries.HistoryCmd `cmd:"" help:"Browse past entries."`

	Stats   reports.StatsCmd   `cmd:"" help:"Show journal statistics and analysis."`
	Export  reports.ExportCmd  `cmd:"" help:"Export an analysis report."`
	Prompts reports.PromptsCmd `cmd:"" help:"Show assistant prompts built from your journal."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage journal backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete stored credentials."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

// noLoad lists commands that run before, or without, a loaded store.
var noLoad = map[string]bool{
	"init":           true,
	"doctor":         true,
	"migrate":        true,
	"tui":            true,
	"keyring set":    true,
	"keyring get":    true,
	"keyring delete": true,
	"keyring status": true,
	"debug db-path":  true,
}

// commandPath drops positional placeholders such as "<date>" from a kong
// command string.
func commandPath(command string) string {
	var words []string
	for _, w := range strings.Fields(command) {
		if !strings.HasPrefix(w, "<") {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily work journal with productivity analysis and AI-ready reports"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"defaultConfig": constants.DefaultConfigPath,
		},
	)

	location, err := cli.ResolveConfig(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	configDir, err := cli.ConfigDir(location)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	store := cli.OpenStore(location)
	appCtx := &cli.Context{
		Store:     store,
		ConfigDir: configDir,
	}

	if !noLoad[commandPath(ctx.Command())] {
		if err := store.Load(); err != nil {
			errors.Fatal(errors.WithHint(err, "Run 'flowplanr init' to create the journal, or 'flowplanr doctor' to diagnose it."))
		}
	}

	err = ctx.Run(appCtx)
	store.Close()
	errors.Fatal(err)
}

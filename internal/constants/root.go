package constants

const (
	AppName            = "flowplanr"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-secret"
	DefaultConfigPath  = "~/.config/flowplanr/flowplanr.db"
	Version            = "v0.1.0"

	// Environment variables
	EnvDBConnection = "FLOWPLANR_DB_CONNECTION"
	EnvConfig       = "FLOWPLANR_CONFIG"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "flowplanr-"
	BackupFileSuffix = ".db"

	// Instance lock constants
	InstanceLockfileName = "flowplanr-tui.lock"

	// JSON store collection keys, matching the browser storage layout
	StorageKeyUsers       = "flowplanr_users"
	StorageKeyCurrentUser = "flowplanr_current_user"
	StorageKeyEntries     = "flowplanr_entries"

	// Export file naming: flowplanr-<kind>-<YYYY-MM-DD>.txt
	ExportFilePrefix = "flowplanr-"
	ExportFileSuffix = ".txt"
)

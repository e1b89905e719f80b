package constants

const (
	SettingTimezone      = "timezone"
	SettingExportDir     = "export_dir"
	SettingSessionSecret = "session_secret"

	DefaultTimezone  = "Local" // Use system local timezone by default
	DefaultExportDir = "~/Downloads"
)

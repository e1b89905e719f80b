package models

// Settings represents application-wide settings
type Settings struct {
	Timezone      string `json:"timezone"`       // IANA timezone name, or "Local" for the system timezone
	ExportDir     string `json:"export_dir"`     // where exported reports are written
	SessionSecret string `json:"session_secret"` // signing secret used when the OS keyring is unavailable
}

package constants

import "time"

const (
	AppName            = "sober"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/sober"
	DefaultStoragePath = "~/.config/sober/sober.db"
	DefaultConfigFile  = "~/.config/sober/config.toml"
	Version            = "v0.3.0"

	// StorageKey is the single key the whole SobrietyData aggregate lives under.
	StorageKey = "sobriety-data"

	// ExportVersion is the only envelope version importData accepts.
	ExportVersion = 1

	// ExportFileName is the default file name for exports.
	ExportFileName = "sobriety-data.json"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used for the calendar --month flag (YYYY-MM)
	MonthFormat = "2006-01"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "sober-"

	// Environment overrides
	EnvStorage    = "SOBER_STORAGE"
	EnvDBPassword = "SOBER_DB_PASSWORD"

	// Config defaults
	DefaultTimezone   = "Local"
	DefaultWeekStart  = "monday"
	DefaultAutoBackup = true

	// MidnightSlack is added to the day-boundary timer so the re-check lands
	// safely inside the new day.
	MidnightSlack = 2 * time.Second
)

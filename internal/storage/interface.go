package storage

// Provider is a key/value store holding string blobs. Every backend keeps
// the sobriety record under constants.StorageKey; last write wins.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	// Exists reports whether Init has already run for this target.
	Exists() bool

	// Blobs
	Get(key string) (value string, found bool, err error)
	Put(key, value string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by SQL backends with a versioned schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

// FileBacked is implemented by backends whose whole state is one local
// file, which makes them eligible for file backups.
type FileBacked interface {
	FilePath() string
}

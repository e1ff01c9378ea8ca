package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/sober/internal/logger"
	"github.com/julianstephens/sober/internal/storage/jsonfile"
	"github.com/julianstephens/sober/internal/storage/postgres"
	"github.com/julianstephens/sober/internal/storage/sqlite"
	"github.com/julianstephens/sober/internal/utils"
)

// Kind names a storage backend.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindJSON     Kind = "json"
)

// KindOf classifies a storage target: a postgres URL or DSN, a *.json file,
// or otherwise a SQLite database path.
func KindOf(target string) Kind {
	t := strings.TrimSpace(target)
	switch {
	case strings.HasPrefix(t, "postgres://"), strings.HasPrefix(t, "postgresql://"):
		return KindPostgres
	case strings.Contains(t, "host=") || strings.Contains(t, "dbname="):
		return KindPostgres
	case strings.EqualFold(filepath.Ext(t), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

type options struct {
	trustedCredentials bool
}

// Option configures New and Open.
type Option func(*options)

// WithTrustedCredentials accepts a PostgreSQL connection string that embeds
// a password. Only targets read from the OS keyring should use it.
func WithTrustedCredentials() Option {
	return func(o *options) { o.trustedCredentials = true }
}

// New returns the backend for target without opening it.
func New(target string, opts ...Option) (Provider, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("storage target cannot be empty")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch KindOf(target) {
	case KindPostgres:
		if ok, err := postgres.ValidateConnString(target); !ok {
			if !o.trustedCredentials || !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return postgres.New(target), nil
	case KindJSON:
		path, err := utils.ExpandPath(target)
		if err != nil {
			return nil, err
		}
		return jsonfile.New(path), nil
	default:
		path, err := utils.ExpandPath(target)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}

// Open returns a ready-to-use backend for target, initializing it on first
// use.
func Open(target string, opts ...Option) (Provider, error) {
	p, err := New(target, opts...)
	if err != nil {
		return nil, err
	}

	if !p.Exists() {
		logger.Info("Initializing storage", "path", p.GetConfigPath())
		if err := p.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return p, nil
	}
	if err := p.Load(); err != nil {
		return nil, fmt.Errorf("failed to load storage: %w", err)
	}
	return p, nil
}

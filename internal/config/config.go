package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gookit/validate"

	"github.com/julianstephens/sober/internal/constants"
	"github.com/julianstephens/sober/internal/utils"
)

// Config is the on-disk configuration for sober.
type Config struct {
	Storage    string       `toml:"storage" validate:"required"`
	Timezone   string       `toml:"timezone" validate:"timezone"`
	WeekStart  string       `toml:"week_start" validate:"required|in:monday,sunday"`
	AutoBackup bool         `toml:"auto_backup"`
	Log        LogConfig    `toml:"log"`
	Export     ExportConfig `toml:"export"`

	// Path is where the config was read from. Not persisted.
	Path string `toml:"-"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Debug bool `toml:"debug"`
}

// ExportConfig holds defaults for `sober export`.
type ExportConfig struct {
	Compress bool `toml:"compress"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage:    constants.DefaultStoragePath,
		Timezone:   constants.DefaultTimezone,
		WeekStart:  constants.DefaultWeekStart,
		AutoBackup: constants.DefaultAutoBackup,
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from r. Keys missing from the document keep their
// default values.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Write encodes cfg to w.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads the config at path, falling back to defaults when the file
// does not exist, then applies the SOBER_STORAGE override and validates.
func Load(path string) (*Config, error) {
	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	f, err := os.Open(expanded)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer f.Close()
		m := &Manager{}
		if cfg, err = m.Read(f); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", expanded, err)
		}
	}
	cfg.Path = expanded

	if override := os.Getenv(constants.EnvStorage); override != "" {
		cfg.Storage = override
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config against its validation tags.
func (c *Config) Validate() error {
	v := validate.Struct(c)
	v.AddValidator("timezone", func(val any) bool {
		tz, ok := val.(string)
		return ok && utils.ValidateTimezone(tz)
	})
	v.AddMessages(map[string]string{
		"timezone": "{field} is not a known IANA timezone",
	})
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}
	return nil
}

// Init writes cfg to path. An existing file is only replaced with force.
func Init(path string, cfg *Config, force bool) error {
	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil && !force {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := writeToFile(expanded, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Package jsonfile is a storage backend that keeps every key in one
// human-readable JSON document.
package jsonfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/sober/internal/constants"
)

const documentVersion = 1

// document is the on-disk layout. Values that are themselves JSON are
// embedded as-is so the file stays readable; anything else is kept as text.
type document struct {
	Version int              `json:"version"`
	Entries map[string]entry `json:"entries"`
}

type entry struct {
	Value     json.RawMessage `json:"value,omitempty"`
	Text      *string         `json:"text,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Store struct {
	mu   sync.Mutex
	path string
	doc  *document
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{Version: documentVersion, Entries: map[string]entry{}}
	return s.save()
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > documentVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade %s", doc.Version, documentVersion, constants.AppName)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]entry{}
	}
	s.doc = doc
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	e, ok := s.doc.Entries[key]
	if !ok {
		return "", false, nil
	}
	if e.Text != nil {
		return *e.Text, true, nil
	}
	return string(e.Value), true, nil
}

// Put replaces key and rewrites the file. On a failed write the in-memory
// document is rolled back so Get keeps matching what is on disk.
func (s *Store) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	next := entry{UpdatedAt: time.Now().UTC()}
	if json.Valid([]byte(value)) {
		next.Value = json.RawMessage(value)
	} else {
		text := value
		next.Text = &text
	}

	prev, had := s.doc.Entries[key]
	s.doc.Entries[key] = next
	if err := s.save(); err != nil {
		if had {
			s.doc.Entries[key] = prev
		} else {
			delete(s.doc.Entries, key)
		}
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// save writes to a temp file and renames it over the document.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmpFile := s.path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}
	return os.Rename(tmpFile, s.path)
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// FilePath is the document file, used for backups.
func (s *Store) FilePath() string {
	return s.path
}

package testutil

import (
	"errors"
	"sync"
)

// ErrInjected is returned by MemoryStore when a failure was requested.
var ErrInjected = errors.New("injected storage failure")

// MemoryStore is an in-memory key/value store with fault injection. It
// satisfies both the engine's gateway and storage.Provider.
type MemoryStore struct {
	mu      sync.Mutex
	data    map[string]string
	puts    int
	failPut error
	failGet error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

// Seed stores value under key without counting as a Put.
func (m *MemoryStore) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// FailPuts makes every Put return err (nil clears it).
func (m *MemoryStore) FailPuts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPut = err
}

// FailGets makes every Get return err (nil clears it).
func (m *MemoryStore) FailGets(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failGet = err
}

// Puts returns the number of successful Put calls.
func (m *MemoryStore) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// Value returns the raw stored value for key.
func (m *MemoryStore) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return "", false, m.failGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.data[key] = value
	m.puts++
	return nil
}

func (m *MemoryStore) Init() error           { return nil }
func (m *MemoryStore) Load() error           { return nil }
func (m *MemoryStore) Close() error          { return nil }
func (m *MemoryStore) Exists() bool          { return true }
func (m *MemoryStore) GetConfigPath() string { return "memory" }

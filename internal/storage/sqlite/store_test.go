package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/sober/internal/constants"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "sober.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitCreatesSchema(t *testing.T) {
	store := setupTestStore(t)

	assert.True(t, store.Exists())
	current, latest, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, latest, current)
	assert.GreaterOrEqual(t, current, 1)
}

func TestGetMissingKey(t *testing.T) {
	store := setupTestStore(t)

	value, found, err := store.Get(constants.StorageKey)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestPutOverwrites(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Put(constants.StorageKey, `{"streak":1}`))
	require.NoError(t, store.Put(constants.StorageKey, `{"streak":2}`))

	value, found, err := store.Get(constants.StorageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"streak":2}`, value)
}

func TestReloadPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sober.db")
	first := NewStore(path)
	require.NoError(t, first.Init())
	require.NoError(t, first.Put(constants.StorageKey, "payload"))
	require.NoError(t, first.Close())

	second := NewStore(path)
	require.NoError(t, second.Load())
	defer second.Close()

	value, found, err := second.Get(constants.StorageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "payload", value)
	assert.Equal(t, path, second.GetConfigPath())
	assert.Equal(t, path, second.FilePath())
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))

	assert.False(t, store.Exists())
	err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sober init")
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sober.db")
	store := NewStore(path)
	require.NoError(t, store.Init())
	_, err := store.GetDB().Exec("UPDATE schema_version SET version = 999")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := NewStore(path)
	defer reopened.Close()
	err = reopened.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}

func TestGetPutBeforeLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "sober.db"))

	_, _, err := store.Get(constants.StorageKey)
	assert.Error(t, err)
	assert.Error(t, store.Put(constants.StorageKey, "x"))
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := setupTestStore(t)

	applied, err := store.Migrate(nil)
	require.NoError(t, err)
	assert.Zero(t, applied)
}

package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/sober/internal/constants"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sober.json")
	store := New(path)
	require.NoError(t, store.Init())
	return store, path
}

func TestInitCreatesDocument(t *testing.T) {
	store, path := setupTestStore(t)

	assert.True(t, store.Exists())
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, documentVersion, doc.Version)
	assert.Empty(t, doc.Entries)

	assert.Error(t, store.Init(), "second Init should refuse to overwrite")
}

func TestPutGetJSONValue(t *testing.T) {
	store, path := setupTestStore(t)

	blob := `{"streak":3,"history":["2024-01-01T00:00:00Z"]}`
	require.NoError(t, store.Put(constants.StorageKey, blob))

	value, found, err := store.Get(constants.StorageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, blob, value)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `\"streak\"`, "JSON values are embedded, not escaped")
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not be left behind")
}

func TestPutGetTextValue(t *testing.T) {
	store, _ := setupTestStore(t)

	for _, value := range []string{"not json", ""} {
		require.NoError(t, store.Put("k", value))
		got, found, err := store.Get("k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, got)
	}
}

func TestJSONStringValueRoundTrips(t *testing.T) {
	store, _ := setupTestStore(t)

	require.NoError(t, store.Put("k", `"quoted"`))
	got, _, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `"quoted"`, got)
}

func TestReloadPersists(t *testing.T) {
	store, path := setupTestStore(t)
	require.NoError(t, store.Put(constants.StorageKey, `{"streak":1}`))

	reopened := New(path)
	require.NoError(t, reopened.Load())
	value, found, err := reopened.Get(constants.StorageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"streak":1}`, value)

	_, found, err = reopened.Get("other")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	missing := New(filepath.Join(dir, "missing.json"))
	err := missing.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sober init")

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{"), 0600))
	assert.Error(t, New(corrupt).Load())

	newer := filepath.Join(dir, "newer.json")
	require.NoError(t, os.WriteFile(newer, []byte(`{"version":9,"entries":{}}`), 0600))
	assert.Error(t, New(newer).Load())
}

func TestPutFailureRollsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	store := New(filepath.Join(dir, "sober.json"))
	require.NoError(t, store.Init())
	require.NoError(t, store.Put("k", `{"v":1}`))

	require.NoError(t, os.RemoveAll(dir))

	assert.Error(t, store.Put("k", `{"v":2}`))
	got, found, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"v":1}`, got)
}

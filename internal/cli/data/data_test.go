package data

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/sober/internal/backup"
	"github.com/julianstephens/sober/internal/cli"
	"github.com/julianstephens/sober/internal/config"
	"github.com/julianstephens/sober/internal/storage"
	"github.com/julianstephens/sober/internal/streak"
	"github.com/julianstephens/sober/internal/testutil"
	"github.com/julianstephens/sober/internal/transfer"
)

func newContext(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	engine := streak.New(store, streak.WithClock(testutil.FixedClock()), streak.WithLocation(time.UTC))
	require.NoError(t, engine.Load())
	out := &bytes.Buffer{}
	return &cli.Context{
		Engine: engine,
		Store:  store,
		Config: config.Default(),
		Out:    out,
	}, out
}

func autoConfirm(t *testing.T) {
	t.Helper()
	orig := cli.Confirm
	cli.Confirm = func(string, string) (bool, error) { return true, nil }
	t.Cleanup(func() { cli.Confirm = orig })
}

func seed(t *testing.T, e *streak.Engine) {
	t.Helper()
	today := e.Today()
	for _, d := range []time.Time{today, today.AddDate(0, 0, -1), today.AddDate(0, 0, -5)} {
		_, err := e.ToggleDate(d)
		require.NoError(t, err)
	}
}

func TestExportCmd_Stdout(t *testing.T) {
	ctx, out := newContext(t, testutil.NewMemoryStore())
	seed(t, ctx.Engine)

	require.NoError(t, (&ExportCmd{}).Run(ctx))
	want, err := ctx.Engine.ExportData()
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out.String())
}

func TestExportCmd_CompressedRequiresFile(t *testing.T) {
	ctx, _ := newContext(t, testutil.NewMemoryStore())

	err := (&ExportCmd{Output: "-", Compress: true}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")
}

func TestExportImport_RoundTripThroughFile(t *testing.T) {
	autoConfirm(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "export.json.zst")

	src, _ := newContext(t, testutil.NewMemoryStore())
	seed(t, src.Engine)
	require.NoError(t, (&ExportCmd{Output: file, Compress: true}).Run(src))

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, transfer.IsCompressed(raw))

	dst, out := newContext(t, testutil.NewMemoryStore())
	require.NoError(t, (&ImportCmd{File: file}).Run(dst))
	assert.Contains(t, out.String(), "Imported 3 confirmed day(s). 2 days sober")
	assert.Equal(t, src.Engine.State().History, dst.Engine.State().History)
}

func TestImportCmd_InvalidFileLeavesStateUnchanged(t *testing.T) {
	autoConfirm(t)
	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"version":2,"data":{}}`), 0600))

	ctx, _ := newContext(t, testutil.NewMemoryStore())
	seed(t, ctx.Engine)
	before := ctx.Engine.State()

	err := (&ImportCmd{File: file}).Run(ctx)
	assert.ErrorIs(t, err, streak.ErrInvalidPayload)
	assert.Equal(t, before, ctx.Engine.State())
}

func TestImportCmd_InvalidFileSkipsPromptAndBackup(t *testing.T) {
	prompted := false
	orig := cli.Confirm
	cli.Confirm = func(string, string) (bool, error) {
		prompted = true
		return true, nil
	}
	t.Cleanup(func() { cli.Confirm = orig })

	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "sober.json"))
	require.NoError(t, err)
	ctx, _ := newContext(t, store)
	seed(t, ctx.Engine)

	file := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`not json`), 0600))

	err = (&ImportCmd{File: file}).Run(ctx)
	assert.ErrorIs(t, err, streak.ErrInvalidPayload)
	assert.False(t, prompted, "a malformed file must not reach the confirmation prompt")

	backups, err := backup.NewManager(filepath.Join(dir, "sober.json")).ListBackups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestImportCmd_MissingFile(t *testing.T) {
	ctx, _ := newContext(t, testutil.NewMemoryStore())
	err := (&ImportCmd{File: filepath.Join(t.TempDir(), "nope.json"), Yes: true}).Run(ctx)
	assert.Error(t, err)
}

func TestImportCmd_Declined(t *testing.T) {
	orig := cli.Confirm
	cli.Confirm = func(string, string) (bool, error) { return false, nil }
	t.Cleanup(func() { cli.Confirm = orig })

	file := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"version":1,"data":{"history":["2024-01-15T00:00:00Z"]}}`), 0600))

	store := testutil.NewMemoryStore()
	ctx, out := newContext(t, store)
	require.NoError(t, (&ImportCmd{File: file}).Run(ctx))
	assert.Contains(t, out.String(), "Import cancelled.")
	assert.Zero(t, store.Puts())
}

func TestImportCmd_BacksUpFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "sober.json"))
	require.NoError(t, err)

	ctx, out := newContext(t, store)
	seed(t, ctx.Engine)

	file := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"version":1,"data":{"history":["2024-01-15T00:00:00Z"]}}`), 0600))

	require.NoError(t, (&ImportCmd{File: file, Yes: true}).Run(ctx))
	assert.Contains(t, out.String(), "Previous data saved to backup")
	assert.Equal(t, 1, ctx.Engine.State().Streak)

	backups, err := backup.NewManager(filepath.Join(dir, "sober.json")).ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestImportCmd_Stdin(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(`{"version":1,"data":{"history":["2024-01-14T00:00:00Z","2024-01-15T00:00:00Z"]}}`)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	t.Cleanup(func() { r.Close() })

	ctx, _ := newContext(t, testutil.NewMemoryStore())
	ctx.In = r
	require.NoError(t, (&ImportCmd{File: "-", Yes: true}).Run(ctx))
	assert.Equal(t, 2, ctx.Engine.State().Streak)
}

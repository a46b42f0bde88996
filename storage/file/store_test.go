package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/storage"
	"github.com/poiesic/nightdex/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreConformance(t *testing.T) {
	storagetest.RunCacheStoreTests(t, func(t *testing.T) storage.CacheStore {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)
		return store
	})
}

func TestStoreLayout(t *testing.T) {
	dir := t.TempDir()
	store, err := newStore(dir)
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	entry := storagetest.Entry("https://example.com/gladius", "Gladius")
	require.NoError(t, store.WriteEntry(ctx, entry))
	require.NoError(t, store.SaveIndex(ctx, storage.Index{entry.SourceID: storagetest.Metadata(entry.SourceID, true)}))

	assert.FileExists(t, filepath.Join(dir, "index.json"))
	assert.FileExists(t, filepath.Join(dir, "entries", core.CacheFileName(entry.SourceID)))

	files, err := os.ReadDir(filepath.Join(dir, "entries"))
	require.NoError(t, err)
	assert.Len(t, files, 1, "temp files must not be left behind")

	data, err := os.ReadFile(filepath.Join(dir, "index.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sourceId": "https://example.com/gladius"`)
}

func TestStoreReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveIndex(ctx, storage.Index{"a": storagetest.Metadata("a", false)}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()
	idx, err := reopened.LoadIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, "transform failed", idx["a"].Error)
}

func TestStoreClosed(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.LoadIndex(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.WriteEntry(context.Background(), storagetest.Entry("a", "A")), storage.ErrStorageClosed)
}

func TestStoreCorruptIndex(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"), []byte("{oops"), 0644))
	_, err = store.LoadIndex(context.Background())
	assert.ErrorIs(t, err, storage.ErrSerializationFailed)
}

func TestNewStoreRequiresDir(t *testing.T) {
	_, err := NewStore("")
	assert.ErrorIs(t, err, storage.ErrPathRequired)
}

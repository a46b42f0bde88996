package badger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/nightdex/storage"
	"github.com/poiesic/nightdex/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", InMemory())
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.DirExists(t, tmpDir)
}

func TestOpenBackend_NotADirectory(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(tmpFile, []byte("x"), 0644))

	_, err := OpenBackend(tmpFile)
	assert.Error(t, err)
}

func TestOpenBackend_Options(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	backend, err := OpenBackend(t.TempDir(),
		WithSyncWrites(true),
		WithCompression(options.None),
		WithBackendLogger(logger),
	)
	require.NoError(t, err)
	defer backend.Close()

	require.NoError(t, backend.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte("k"), []byte("v"))
	}))
	keys, err := backend.KeysWithPrefix([]byte("k"))
	require.NoError(t, err)
	assert.Len(t, keys, 1)
	assert.Contains(t, buf.String(), "component=badger")
}

func TestOpenBackend_PathRequired(t *testing.T) {
	_, err := OpenBackend("")
	assert.ErrorIs(t, err, storage.ErrPathRequired)
}

func TestBadgerLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := &badgerLoggerAdapter{logger: slog.New(slog.NewTextHandler(&buf, nil))}

	adapter.Warningf("value log %d rotated\n", 3)
	assert.Contains(t, buf.String(), `msg="value log 3 rotated"`)
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", InMemory())
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	_, err = backend.KeysWithPrefix([]byte("x"))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestCacheStoreConformance(t *testing.T) {
	storagetest.RunCacheStoreTests(t, func(t *testing.T) storage.CacheStore {
		store, err := NewMemoryCacheStore()
		require.NoError(t, err)
		return store
	})
}

func TestCacheStore_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewCacheStore(dir)
	require.NoError(t, err)
	entry := storagetest.Entry("gladius", "Gladius")
	require.NoError(t, store.WriteEntry(ctx, entry))
	require.NoError(t, store.SaveIndex(ctx, storage.Index{"gladius": storagetest.Metadata("gladius", true)}))
	require.NoError(t, store.Close())

	reopened, err := NewCacheStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	idx, err := reopened.LoadIndex(ctx)
	require.NoError(t, err)
	assert.True(t, idx["gladius"].Success)

	got, err := reopened.ReadEntry(ctx, "gladius")
	require.NoError(t, err)
	assert.Equal(t, "Gladius", got.Data.RecordName())
}

func TestCacheStore_SharedBackend(t *testing.T) {
	backend, err := OpenBackend("", InMemory())
	require.NoError(t, err)
	defer backend.Close()

	store := NewCacheStoreWithBackend(backend)
	require.NoError(t, store.Close())
	assert.False(t, backend.IsClosed(), "shared backend stays open")

	vectors := NewVectorStore(backend)
	require.NoError(t, vectors.Put(context.Background(), "boss:gladius:overview", []float32{1, 2}))

	// clearing the cache leaves vectors alone
	require.NoError(t, NewCacheStoreWithBackend(backend).Clear(context.Background()))
	n, err := vectors.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestVectorStore(t *testing.T) {
	store, err := NewMemoryVectorStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	v := []float32{0.25, -0.5, 1}
	require.NoError(t, store.Put(ctx, "boss:gladius:overview", v))
	require.NoError(t, store.Put(ctx, "boss:gladius:combat", []float32{0}))

	got, err := store.Get(ctx, "boss:gladius:overview")
	require.NoError(t, err)
	assert.Equal(t, v, got)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

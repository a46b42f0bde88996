// Package storagetest provides fixtures and a conformance suite shared by
// the storage.CacheStore implementations.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Entry builds a valid boss cache entry for sourceID.
func Entry(sourceID, name string) *core.CacheEntry {
	boss := &core.Boss{
		Header:     core.NewHeader(core.EntityBoss, name),
		BossFields: core.BossFields{Category: "Night Lord", Stance: core.NewNumber(160)},
	}
	boss.SetTags([]string{"high-stance", "night-lord"})
	return &core.CacheEntry{
		SourceID:    sourceID,
		ContentType: core.EntityBoss,
		Data:        boss,
		Chunks: []core.Chunk{{
			Type:    core.EntityBoss,
			Name:    name,
			Section: core.SectionOverview,
			Content: name + " is a Night Lord.",
			Tags:    []string{"high-stance", "night-lord"},
		}},
		SourceHash:    core.HashContent([]byte(sourceID)),
		SchemaVersion: core.SchemaVersion,
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Model:         "mock-embedder",
	}
}

// Metadata builds a metadata record for sourceID.
func Metadata(sourceID string, success bool) core.CacheMetadata {
	meta := core.CacheMetadata{
		SourceID:      sourceID,
		ContentType:   core.EntityBoss,
		Success:       success,
		SourceHash:    core.HashContent([]byte(sourceID)),
		SchemaVersion: core.SchemaVersion,
		UpdatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if !success {
		meta.Error = "transform failed"
	}
	return meta
}

// RunCacheStoreTests exercises the storage.CacheStore contract. newStore
// must return an empty store; the suite closes it.
func RunCacheStoreTests(t *testing.T, newStore func(t *testing.T) storage.CacheStore) {
	ctx := context.Background()

	t.Run("empty index", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		idx, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		assert.NotNil(t, idx)
		assert.Empty(t, idx)
	})

	t.Run("index round trip", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		idx := storage.Index{
			"gladius": Metadata("gladius", true),
			"broken":  Metadata("broken", false),
		}
		require.NoError(t, store.SaveIndex(ctx, idx))

		loaded, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		assert.Equal(t, idx, loaded)

		// whole-index overwrite
		require.NoError(t, store.SaveIndex(ctx, storage.Index{"gladius": Metadata("gladius", true)}))
		loaded, err = store.LoadIndex(ctx)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
		assert.Contains(t, loaded, "gladius")
	})

	t.Run("entry round trip", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		entry := Entry("https://example.com/gladius", "Gladius")
		require.NoError(t, store.WriteEntry(ctx, entry))

		got, err := store.ReadEntry(ctx, entry.SourceID)
		require.NoError(t, err)
		assert.Equal(t, entry.Data, got.Data)
		assert.Equal(t, entry.Chunks, got.Chunks)
		assert.Equal(t, entry.SourceHash, got.SourceHash)
		assert.True(t, entry.Timestamp.Equal(got.Timestamp))

		size, err := store.EntrySize(ctx, entry.SourceID)
		require.NoError(t, err)
		assert.Positive(t, size)

		replacement := Entry(entry.SourceID, "Adel")
		require.NoError(t, store.WriteEntry(ctx, replacement))
		got, err = store.ReadEntry(ctx, entry.SourceID)
		require.NoError(t, err)
		assert.Equal(t, "Adel", got.Data.RecordName())
	})

	t.Run("missing entry", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		_, err := store.ReadEntry(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = store.EntrySize(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		assert.NoError(t, store.DeleteEntry(ctx, "nope"))
	})

	t.Run("delete entry", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		entry := Entry("gladius", "Gladius")
		require.NoError(t, store.WriteEntry(ctx, entry))
		require.NoError(t, store.DeleteEntry(ctx, "gladius"))

		_, err := store.ReadEntry(ctx, "gladius")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("nil entry rejected", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		assert.ErrorIs(t, store.WriteEntry(ctx, nil), storage.ErrInvalidEntry)
	})

	t.Run("clear", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		require.NoError(t, store.WriteEntry(ctx, Entry("a", "A")))
		require.NoError(t, store.WriteEntry(ctx, Entry("b", "B")))
		require.NoError(t, store.SaveIndex(ctx, storage.Index{
			"a": Metadata("a", true),
			"b": Metadata("b", true),
		}))

		require.NoError(t, store.Clear(ctx))

		idx, err := store.LoadIndex(ctx)
		require.NoError(t, err)
		assert.Empty(t, idx)
		_, err = store.ReadEntry(ctx, "a")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		// store stays usable
		require.NoError(t, store.WriteEntry(ctx, Entry("c", "C")))
		_, err = store.ReadEntry(ctx, "c")
		assert.NoError(t, err)
	})
}

package storage

import (
	"context"

	"github.com/poiesic/nightdex/core"
)

// Index maps source ids to their cache metadata.
type Index map[string]core.CacheMetadata

// Clone returns a shallow copy of idx.
func (idx Index) Clone() Index {
	out := make(Index, len(idx))
	for k, v := range idx {
		out[k] = v
	}
	return out
}

// CacheStore persists the cache metadata index and cache entries.
// Implementations must be thread-safe and support concurrent access.
type CacheStore interface {
	// LoadIndex reads the whole metadata index. A store with no index yet
	// returns an empty, non-nil Index.
	LoadIndex(ctx context.Context) (Index, error)

	// SaveIndex replaces the stored index with idx in one atomic write.
	// Readers never observe a partially written index.
	SaveIndex(ctx context.Context, idx Index) error

	// ReadEntry returns the entry for sourceID.
	// Returns ErrNotFound if no entry is stored.
	ReadEntry(ctx context.Context, sourceID string) (*core.CacheEntry, error)

	// WriteEntry stores entry under entry.SourceID, replacing any previous
	// entry atomically.
	WriteEntry(ctx context.Context, entry *core.CacheEntry) error

	// DeleteEntry removes the entry for sourceID. Deleting a missing entry
	// is not an error.
	DeleteEntry(ctx context.Context, sourceID string) error

	// EntrySize returns the stored size of the entry in bytes.
	// Returns ErrNotFound if no entry is stored.
	EntrySize(ctx context.Context, sourceID string) (int64, error)

	// Clear removes the index and every entry.
	Clear(ctx context.Context) error

	// Close releases the store's resources.
	Close() error
}

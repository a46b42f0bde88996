package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/storage"
)

// CacheStore implements storage.CacheStore on BadgerDB. The whole metadata
// index lives under one key so SaveIndex is a single atomic Set.
type CacheStore struct {
	backend     *Backend
	ownsBackend bool
	logger      *slog.Logger
}

var _ storage.CacheStore = (*CacheStore)(nil)

// NewCacheStore opens a BadgerDB database at path and returns a cache store
// that owns it.
//
// Returns storage.CacheStore interface to enforce abstraction.
func NewCacheStore(path string) (storage.CacheStore, error) {
	backend, err := OpenBackend(path)
	if err != nil {
		return nil, err
	}
	return newCacheStore(backend, true), nil
}

// NewCacheStoreWithBackend returns a cache store sharing backend. Closing
// the store leaves the backend open.
func NewCacheStoreWithBackend(backend *Backend) storage.CacheStore {
	return newCacheStore(backend, false)
}

func newCacheStore(backend *Backend, owns bool) *CacheStore {
	return &CacheStore{
		backend:     backend,
		ownsBackend: owns,
		logger:      slog.Default().With("component", "badger-cache"),
	}
}

// LoadIndex decodes the index key. A missing key is an empty index.
func (s *CacheStore) LoadIndex(ctx context.Context) (storage.Index, error) {
	idx := storage.Index{}
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(cacheIndexKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := storage.UnmarshalIndex(val)
			if err != nil {
				return err
			}
			idx = decoded
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// SaveIndex overwrites the index key.
func (s *CacheStore) SaveIndex(ctx context.Context, idx storage.Index) error {
	data := storage.MarshalIndex(idx)
	return s.backend.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(cacheIndexKey), data)
	})
}

// ReadEntry decodes the entry stored for sourceID.
func (s *CacheStore) ReadEntry(ctx context.Context, sourceID string) (*core.CacheEntry, error) {
	var entry *core.CacheEntry
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEntryKey(sourceID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			entry, err = storage.UnmarshalEntry(val)
			return err
		})
	}, false)
	return entry, err
}

// WriteEntry stores entry as JSON under its source id.
func (s *CacheStore) WriteEntry(ctx context.Context, entry *core.CacheEntry) error {
	data, err := storage.MarshalEntry(entry)
	if err != nil {
		return err
	}
	return s.backend.Update(func(tx *badger.Txn) error {
		return tx.Set(makeEntryKey(entry.SourceID), data)
	})
}

// DeleteEntry removes the entry key.
func (s *CacheStore) DeleteEntry(ctx context.Context, sourceID string) error {
	return s.backend.Update(func(tx *badger.Txn) error {
		return tx.Delete(makeEntryKey(sourceID))
	})
}

// EntrySize returns the stored value size of the entry.
func (s *CacheStore) EntrySize(ctx context.Context, sourceID string) (int64, error) {
	var size int64
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEntryKey(sourceID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		size = item.ValueSize()
		return nil
	}, false)
	return size, err
}

// Clear deletes the index and every entry key.
func (s *CacheStore) Clear(ctx context.Context) error {
	keys, err := s.backend.KeysWithPrefix([]byte(cacheEntryPrefix))
	if err != nil {
		return err
	}
	keys = append(keys, []byte(cacheIndexKey))
	if err := s.backend.DeleteKeys(keys); err != nil {
		return err
	}
	s.logger.Info("cache cleared", "entries", len(keys)-1)
	return nil
}

// Close closes the backend if the store owns it.
func (s *CacheStore) Close() error {
	if !s.ownsBackend || s.backend.IsClosed() {
		return nil
	}
	return s.backend.Close()
}

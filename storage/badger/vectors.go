package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/nightdex/embedding"
	"github.com/poiesic/nightdex/storage"
)

// VectorStore persists chunk embeddings keyed by core.Chunk.ID, encoded
// with embedding.ToBytes.
type VectorStore struct {
	backend     *Backend
	ownsBackend bool
}

// OpenVectorStore opens a BadgerDB database at path for chunk vectors.
func OpenVectorStore(path string) (*VectorStore, error) {
	backend, err := OpenBackend(path)
	if err != nil {
		return nil, err
	}
	return &VectorStore{backend: backend, ownsBackend: true}, nil
}

// NewVectorStore returns a vector store sharing backend.
func NewVectorStore(backend *Backend) *VectorStore {
	return &VectorStore{backend: backend}
}

// Put stores vector under chunkID, replacing any previous value.
func (s *VectorStore) Put(ctx context.Context, chunkID string, vector []float32) error {
	data := embedding.ToBytes(vector)
	return s.backend.Update(func(tx *badger.Txn) error {
		return tx.Set(makeVectorKey(chunkID), data)
	})
}

// Get returns the vector stored under chunkID.
// Returns storage.ErrNotFound if none is stored.
func (s *VectorStore) Get(ctx context.Context, chunkID string) ([]float32, error) {
	var vector []float32
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(chunkID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			vector, err = embedding.FromBytes(val)
			return err
		})
	}, false)
	return vector, err
}

// Count returns the number of stored vectors.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	keys, err := s.backend.KeysWithPrefix([]byte(chunkVectorPrefix))
	return len(keys), err
}

// Close closes the backend if the store owns it.
func (s *VectorStore) Close() error {
	if !s.ownsBackend || s.backend.IsClosed() {
		return nil
	}
	return s.backend.Close()
}

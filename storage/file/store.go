package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/storage"
)

const (
	indexFile  = "index.json"
	entriesDir = "entries"
)

// Store keeps the cache as plain files:
//
//	<dir>/index.json          source id -> metadata
//	<dir>/entries/<hash>.json one entry per source id
//
// Every write goes to a temp file in the target directory and is renamed
// over the destination.
type Store struct {
	dir    string
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewStore opens (creating if needed) a file store rooted at dir.
//
// Returns storage.CacheStore interface to enforce abstraction.
func NewStore(dir string) (storage.CacheStore, error) {
	return newStore(dir)
}

func newStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, storage.ErrPathRequired
	}
	if err := os.MkdirAll(filepath.Join(dir, entriesDir), 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: slog.Default().With("component", "file-store", "dir", dir),
	}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) entryPath(sourceID string) string {
	return filepath.Join(s.dir, entriesDir, core.CacheFileName(sourceID))
}

func (s *Store) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrStorageClosed
	}
	return nil
}

// LoadIndex reads index.json. A missing file is an empty index.
func (s *Store) LoadIndex(ctx context.Context) (storage.Index, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if errors.Is(err, fs.ErrNotExist) {
		return storage.Index{}, nil
	}
	if err != nil {
		return nil, err
	}
	idx := storage.Index{}
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", storage.ErrSerializationFailed, indexFile, err)
	}
	return idx, nil
}

// SaveIndex rewrites index.json as a whole.
func (s *Store) SaveIndex(ctx context.Context, idx storage.Index) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if idx == nil {
		idx = storage.Index{}
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return writeAtomic(filepath.Join(s.dir, indexFile), data)
}

// ReadEntry reads entries/<hash>.json for sourceID.
func (s *Store) ReadEntry(ctx context.Context, sourceID string) (*core.CacheEntry, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.entryPath(sourceID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return storage.UnmarshalEntry(data)
}

// WriteEntry replaces the entry file for entry.SourceID.
func (s *Store) WriteEntry(ctx context.Context, entry *core.CacheEntry) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	data, err := storage.MarshalEntry(entry)
	if err != nil {
		return err
	}
	return writeAtomic(s.entryPath(entry.SourceID), data)
}

// DeleteEntry removes the entry file if present.
func (s *Store) DeleteEntry(ctx context.Context, sourceID string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	err := os.Remove(s.entryPath(sourceID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// EntrySize stats the entry file.
func (s *Store) EntrySize(ctx context.Context, sourceID string) (int64, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	info, err := os.Stat(s.entryPath(sourceID))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, storage.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Clear removes index.json and the entries directory, then recreates the
// empty layout.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, indexFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.dir, entriesDir)); err != nil {
		return err
	}
	s.logger.Info("cache cleared")
	return os.MkdirAll(filepath.Join(s.dir, entriesDir), 0755)
}

// Close marks the store closed. Files are left in place.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// writeAtomic writes data to a temp file next to path and renames it into
// place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

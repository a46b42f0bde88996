// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/storage"
)

// Reason explains a Check decision.
type Reason string

const (
	ReasonNew            Reason = "new"
	ReasonFailed         Reason = "failed"
	ReasonSchemaMismatch Reason = "schema-mismatch"
	ReasonHashMismatch   Reason = "hash-mismatch"
	ReasonForced         Reason = "forced"
	ReasonFresh          Reason = "fresh"
)

// Decision is the outcome of Check for one source id.
type Decision struct {
	Reason Reason

	// SourceHash is the hash of the source passed to Check.
	SourceHash string

	// Previous is the stored metadata, nil for ReasonNew.
	Previous *core.CacheMetadata
}

// NeedsNormalization reports whether the source must be (re)processed.
func (d Decision) NeedsNormalization() bool {
	return d.Reason != ReasonFresh
}

// Stats summarizes the cache contents.
type Stats struct {
	Total          int
	Successful     int
	Failed         int
	OutdatedSchema int
	TotalBytes     int64
}

// Cache decides whether a source needs normalization and stores the
// results. The metadata index is loaded whole on Open and consulted before
// any entry is read; every mutation rewrites it whole.
type Cache struct {
	store         storage.CacheStore
	schemaVersion int
	logger        *slog.Logger
	now           func() time.Time

	mu    sync.RWMutex
	index storage.Index
}

// Option configures a Cache.
type Option func(*Cache) error

// WithSchemaVersion overrides core.SchemaVersion.
func WithSchemaVersion(v int) Option {
	return func(c *Cache) error {
		if v < 0 {
			return fmt.Errorf("schema version cannot be negative: %d", v)
		}
		c.schemaVersion = v
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger.With("component", "cache")
		return nil
	}
}

// WithClock sets the time source for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		c.now = now
		return nil
	}
}

// Open loads the metadata index from store.
func Open(ctx context.Context, store storage.CacheStore, opts ...Option) (*Cache, error) {
	if store == nil {
		return nil, errors.New("cache store cannot be nil")
	}
	c := &Cache{
		store:         store,
		schemaVersion: core.SchemaVersion,
		logger:        slog.Default().With("component", "cache"),
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	idx, err := store.LoadIndex(ctx)
	if err != nil {
		c.logger.Error("failed to load cache index", "err", err)
		return nil, &CacheIOError{Op: "load index", Err: err}
	}
	c.index = idx
	c.logger.Debug("cache index loaded", "entries", len(idx), "schemaVersion", c.schemaVersion)
	return c, nil
}

// SchemaVersion returns the version new entries are written with.
func (c *Cache) SchemaVersion() int {
	return c.schemaVersion
}

// CheckOption modifies a single Check call.
type CheckOption func(*checkOptions)

type checkOptions struct {
	force bool
}

// WithForceReprocess makes Check report ReasonForced for any id.
func WithForceReprocess() CheckOption {
	return func(o *checkOptions) {
		o.force = true
	}
}

// Check compares source against the cached metadata for id. The source
// hash and the schema version are compared separately so each cause is
// reported on its own.
func (c *Cache) Check(ctx context.Context, id string, source []byte, opts ...CheckOption) Decision {
	var o checkOptions
	for _, opt := range opts {
		opt(&o)
	}

	hash := core.HashContent(source)
	c.mu.RLock()
	meta, ok := c.index[id]
	c.mu.RUnlock()

	d := Decision{SourceHash: hash}
	if ok {
		d.Previous = &meta
	}
	switch {
	case o.force:
		d.Reason = ReasonForced
	case !ok:
		d.Reason = ReasonNew
	case !meta.Success:
		d.Reason = ReasonFailed
	case meta.SchemaVersion != c.schemaVersion:
		d.Reason = ReasonSchemaMismatch
	case meta.SourceHash != hash:
		d.Reason = ReasonHashMismatch
	default:
		d.Reason = ReasonFresh
	}
	return d
}

// NeedsNormalization reports whether id must be (re)processed for source.
func (c *Cache) NeedsNormalization(ctx context.Context, id string, source []byte, opts ...CheckOption) bool {
	return c.Check(ctx, id, source, opts...).NeedsNormalization()
}

// Has reports whether any metadata, success or failure, exists for id.
func (c *Cache) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[id]
	return ok
}

// Metadata returns the stored metadata for id.
func (c *Cache) Metadata(id string) (core.CacheMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	meta, ok := c.index[id]
	return meta, ok
}

// Get returns the cached entry for id. Ids that are unknown or whose last
// attempt failed return ErrMiss without touching the entry store.
func (c *Cache) Get(ctx context.Context, id string) (*core.CacheEntry, error) {
	meta, ok := c.Metadata(id)
	if !ok || !meta.Success {
		return nil, ErrMiss
	}
	entry, err := c.store.ReadEntry(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		c.logger.Warn("index lists an entry that is missing", "sourceId", id)
		return nil, ErrMiss
	}
	if err != nil {
		c.logger.Error("failed to read cache entry", "sourceId", id, "err", err)
		return nil, &CacheIOError{Op: "read entry", SourceID: id, Err: err}
	}
	return entry, nil
}

// Set stores a successful normalization. The entry is written before the
// metadata, so a crash between the two leaves id uncached rather than
// pointing at a missing entry.
func (c *Cache) Set(ctx context.Context, id string, t core.EntityType, data core.NormalizedRecord,
	chunks []core.Chunk, source []byte, model string) error {
	if id == "" {
		return core.ErrEmptySourceID
	}
	now := c.now()
	hash := core.HashContent(source)
	entry := &core.CacheEntry{
		SourceID:      id,
		ContentType:   t,
		Data:          data,
		Chunks:        chunks,
		SourceHash:    hash,
		SchemaVersion: c.schemaVersion,
		Timestamp:     now,
		Model:         model,
	}
	if err := core.ValidateCacheEntry(entry); err != nil {
		return err
	}

	if err := c.store.WriteEntry(ctx, entry); err != nil {
		c.logger.Error("failed to write cache entry", "sourceId", id, "err", err)
		return &CacheIOError{Op: "write entry", SourceID: id, Err: err}
	}
	return c.putMetadata(ctx, core.CacheMetadata{
		SourceID:      id,
		ContentType:   t,
		Success:       true,
		SourceHash:    hash,
		SchemaVersion: c.schemaVersion,
		UpdatedAt:     now,
	})
}

// SetFailed records a failed normalization. Only metadata is written; a
// failed id always needs normalization on the next Check.
func (c *Cache) SetFailed(ctx context.Context, id string, t core.EntityType, source []byte, message string) error {
	if id == "" {
		return core.ErrEmptySourceID
	}
	return c.putMetadata(ctx, core.CacheMetadata{
		SourceID:      id,
		ContentType:   t,
		Success:       false,
		SourceHash:    core.HashContent(source),
		SchemaVersion: c.schemaVersion,
		Error:         message,
		UpdatedAt:     c.now(),
	})
}

// Remove deletes the entry and metadata for id.
func (c *Cache) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.DeleteEntry(ctx, id); err != nil {
		c.logger.Error("failed to delete cache entry", "sourceId", id, "err", err)
		return &CacheIOError{Op: "delete entry", SourceID: id, Err: err}
	}
	if _, ok := c.index[id]; !ok {
		return nil
	}
	next := c.index.Clone()
	delete(next, id)
	return c.saveLocked(ctx, next, id)
}

// Clear removes every entry and the index.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error("failed to clear cache", "err", err)
		return &CacheIOError{Op: "clear", Err: err}
	}
	c.index = storage.Index{}
	return nil
}

// Stats counts the indexed ids and sums the size of successful entries.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	c.mu.RLock()
	snapshot := c.index.Clone()
	c.mu.RUnlock()

	var s Stats
	for id, meta := range snapshot {
		s.Total++
		if !meta.Success {
			s.Failed++
			continue
		}
		s.Successful++
		if meta.SchemaVersion != c.schemaVersion {
			s.OutdatedSchema++
		}
		size, err := c.store.EntrySize(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return Stats{}, &CacheIOError{Op: "stat entry", SourceID: id, Err: err}
		}
		s.TotalBytes += size
	}
	return s, nil
}

// IDs returns the indexed source ids in sorted order.
func (c *Cache) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.index))
	for id := range c.index {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// AllByType returns the fresh successful entries of type t, ordered by
// source id. Entries written under another schema version are skipped.
func (c *Cache) AllByType(ctx context.Context, t core.EntityType) ([]*core.CacheEntry, error) {
	return c.collect(ctx, func(meta core.CacheMetadata) bool {
		return meta.ContentType == t
	})
}

// All returns every fresh successful entry, ordered by source id.
func (c *Cache) All(ctx context.Context) ([]*core.CacheEntry, error) {
	return c.collect(ctx, func(core.CacheMetadata) bool { return true })
}

func (c *Cache) collect(ctx context.Context, keep func(core.CacheMetadata) bool) ([]*core.CacheEntry, error) {
	var entries []*core.CacheEntry
	for _, id := range c.IDs() {
		meta, ok := c.Metadata(id)
		if !ok || !meta.Success || meta.SchemaVersion != c.schemaVersion || !keep(meta) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := c.Get(ctx, id)
		if errors.Is(err, ErrMiss) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *Cache) putMetadata(ctx context.Context, meta core.CacheMetadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.index.Clone()
	next[meta.SourceID] = meta
	return c.saveLocked(ctx, next, meta.SourceID)
}

// saveLocked persists next and swaps it in only after the write succeeds.
// Must be called with mu held.
func (c *Cache) saveLocked(ctx context.Context, next storage.Index, id string) error {
	if err := c.store.SaveIndex(ctx, next); err != nil {
		c.logger.Error("failed to write cache index", "sourceId", id, "err", err)
		return &CacheIOError{Op: "write index", SourceID: id, Err: err}
	}
	c.index = next
	return nil
}

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

package nightdex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blevesearch/bleve/v2"
	"github.com/poiesic/nightdex/ai"
	"github.com/poiesic/nightdex/ai/openai"
	"github.com/poiesic/nightdex/cache"
	"github.com/poiesic/nightdex/embedding"
	"github.com/poiesic/nightdex/ingestion"
	"github.com/poiesic/nightdex/normalize"
	"github.com/poiesic/nightdex/search"
	"github.com/poiesic/nightdex/storage"
	"github.com/poiesic/nightdex/storage/badger"
	"github.com/poiesic/nightdex/storage/file"
)

// Cache store backends accepted by WithStore.
const (
	StoreFile   = "file"
	StoreBadger = "badger"
)

// ErrUnknownStore is returned by Open for a store kind other than file or
// badger.
var ErrUnknownStore = errors.New("unknown cache store")

// Database ties a cache directory to the normalization engine and the
// embedding generator.
type Database struct {
	store     storage.CacheStore
	cache     *cache.Cache
	engine    *normalize.Engine
	aiConfig  *ai.Config
	generator *embedding.Generator
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig      *ai.Config
	store         string
	loader        ai.PipelineLoader
	schemaVersion int
	logger        *slog.Logger
}

// WithAIConfig sets the embedding configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = cfg
	}
}

// WithStore selects the cache backend, StoreFile or StoreBadger.
// Default is StoreFile.
func WithStore(kind string) DatabaseOption {
	return func(o *databaseOptions) {
		o.store = kind
	}
}

// WithLoader replaces the OpenAI-compatible pipeline loader.
func WithLoader(loader ai.PipelineLoader) DatabaseOption {
	return func(o *databaseOptions) {
		o.loader = loader
	}
}

// WithSchemaVersion overrides the cache schema version.
func WithSchemaVersion(v int) DatabaseOption {
	return func(o *databaseOptions) {
		o.schemaVersion = v
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// Open opens (or creates) the cache at dir. The embedding model is not
// loaded until the first embedding call.
func Open(ctx context.Context, dir string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
		store:    StoreFile,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.aiConfig == nil {
		return nil, ai.ErrInvalidConfig
	}
	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	store, err := openStore(options.store, dir)
	if err != nil {
		return nil, err
	}

	cacheOpts := []cache.Option{cache.WithLogger(options.logger)}
	if options.schemaVersion > 0 {
		cacheOpts = append(cacheOpts, cache.WithSchemaVersion(options.schemaVersion))
	}
	c, err := cache.Open(ctx, store, cacheOpts...)
	if err != nil {
		store.Close()
		return nil, err
	}

	engine, err := normalize.NewEngine(normalize.WithLogger(options.logger))
	if err != nil {
		store.Close()
		return nil, err
	}

	loader := options.loader
	if loader == nil {
		if loader, err = openai.NewLoader(options.aiConfig); err != nil {
			store.Close()
			return nil, err
		}
	}
	generator, err := embedding.NewGenerator(options.aiConfig, loader, embedding.WithLogger(options.logger))
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Database{
		store:     store,
		cache:     c,
		engine:    engine,
		aiConfig:  options.aiConfig,
		generator: generator,
		logger:    options.logger,
	}, nil
}

func openStore(kind, dir string) (storage.CacheStore, error) {
	switch kind {
	case StoreFile:
		return file.NewStore(dir)
	case StoreBadger:
		return badger.NewCacheStore(dir)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, kind)
	}
}

// Close releases the embedding pipeline and the cache store.
func (db *Database) Close() error {
	// Dispose the model first
	if err := db.generator.Dispose(); err != nil {
		db.logger.Error("error disposing embedding pipeline", "err", err)
	}

	if err := db.store.Close(); err != nil {
		db.logger.Error("error closing cache store", "err", err)
		return err
	}
	return nil
}

func (db *Database) Cache() *cache.Cache {
	return db.cache
}

func (db *Database) Engine() *normalize.Engine {
	return db.engine
}

func (db *Database) Generator() *embedding.Generator {
	return db.generator
}

// NewIngestionPipeline returns a pipeline writing to this cache. Entries
// record the configured embedding model.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	defaults := []ingestion.Option{
		ingestion.WithModel(db.aiConfig.EmbeddingModel),
		ingestion.WithLogger(db.logger),
	}
	return ingestion.NewPipeline(db.cache, db.engine, append(defaults, opts...)...)
}

func (db *Database) NewEmbedder() (*ingestion.Embedder, error) {
	return ingestion.NewEmbedder(db.generator, db.logger)
}

// NewSearcher returns a searcher over index. The searcher takes ownership
// of index.
func (db *Database) NewSearcher(index bleve.Index, opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(index, append([]search.Option{search.WithLogger(db.logger)}, opts...)...)
}

// VectorSink adapts a badger vector store to an embedding sink.
func VectorSink(vs *badger.VectorStore) ingestion.Sink {
	return ingestion.SinkFunc(func(ctx context.Context, e ingestion.ChunkEmbedding) error {
		return vs.Put(ctx, e.ChunkID, e.Vector)
	})
}

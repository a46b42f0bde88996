package ingestion

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/embedding"
)

// BatchEmbedder turns texts into vectors. *embedding.Generator satisfies it.
type BatchEmbedder interface {
	EmbedBatch(ctx context.Context, texts []string, onProgress embedding.ProgressFunc) (*embedding.BatchResult, error)
	Model() string
}

// ChunkEmbedding is one chunk vector handed to a Sink.
type ChunkEmbedding struct {
	ChunkID  string          `json:"chunkId"`
	SourceID string          `json:"sourceId"`
	Type     core.EntityType `json:"type"`
	Name     string          `json:"name"`
	Section  core.Section    `json:"section"`
	Tags     []string        `json:"tags"`
	Model    string          `json:"model,omitempty"`
	Vector   []float32       `json:"vector"`
}

// Sink receives chunk embeddings.
type Sink interface {
	Put(ctx context.Context, e ChunkEmbedding) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e ChunkEmbedding) error

func (f SinkFunc) Put(ctx context.Context, e ChunkEmbedding) error {
	return f(ctx, e)
}

// EmbedFailure is one chunk that could not be embedded or stored.
type EmbedFailure struct {
	ChunkID  string
	SourceID string
	Err      error
}

// EmbedSummary reports an embedding run.
type EmbedSummary struct {
	Entries  int
	Chunks   int
	Embedded int
	Failures []EmbedFailure
	Elapsed  time.Duration
}

// Embedder embeds the chunks of cached entries and writes them to a sink.
type Embedder struct {
	embedder BatchEmbedder
	logger   *slog.Logger
}

// NewEmbedder creates a chunk embedder over e.
func NewEmbedder(e BatchEmbedder, logger *slog.Logger) (*Embedder, error) {
	if e == nil {
		return nil, ErrEmbedderRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Embedder{
		embedder: e,
		logger:   logger.With("component", "embedder"),
	}, nil
}

// Run embeds every chunk of entries in one EmbedBatch call and hands each
// vector to sink, in entry then chunk order. A chunk that fails to embed
// or store is reported in the summary. Model load failure and context
// cancellation abort the run.
func (e *Embedder) Run(ctx context.Context, entries []*core.CacheEntry, sink Sink, onProgress embedding.ProgressFunc) (*EmbedSummary, error) {
	if sink == nil {
		return nil, ErrSinkRequired
	}
	start := time.Now()

	var (
		texts []string
		metas []ChunkEmbedding
	)
	summary := &EmbedSummary{}
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		summary.Entries++
		for _, c := range entry.Chunks {
			texts = append(texts, c.Content)
			metas = append(metas, ChunkEmbedding{
				ChunkID:  c.ID(entry.SourceID),
				SourceID: entry.SourceID,
				Type:     c.Type,
				Name:     c.Name,
				Section:  c.Section,
				Tags:     c.Tags,
			})
		}
	}
	summary.Chunks = len(texts)

	result, err := e.embedder.EmbedBatch(ctx, texts, onProgress)
	if err != nil {
		e.logger.Error("embedding run aborted", "chunks", len(texts), "err", err)
		return nil, err
	}

	failed := make(map[int]error, len(result.Errors))
	for _, be := range result.Errors {
		failed[be.Index] = be.Err
	}

	model := e.embedder.Model()
	for i, meta := range metas {
		if err, ok := failed[i]; ok {
			summary.Failures = append(summary.Failures, EmbedFailure{ChunkID: meta.ChunkID, SourceID: meta.SourceID, Err: err})
			continue
		}
		meta.Model = model
		meta.Vector = result.Results[i]
		if err := sink.Put(ctx, meta); err != nil {
			e.logger.Warn("sink rejected embedding", "chunk", meta.ChunkID, "err", err)
			summary.Failures = append(summary.Failures, EmbedFailure{ChunkID: meta.ChunkID, SourceID: meta.SourceID, Err: err})
			continue
		}
		summary.Embedded++
	}
	summary.Elapsed = time.Since(start)

	e.logger.Info("embedding complete", "entries", summary.Entries, "chunks", summary.Chunks,
		"embedded", summary.Embedded, "failed", len(summary.Failures), "elapsed", summary.Elapsed)
	return summary, nil
}

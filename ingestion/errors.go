package ingestion

import "errors"

var (
	// ErrCacheRequired is returned when a cache is not provided.
	ErrCacheRequired = errors.New("cache required")

	// ErrEngineRequired is returned when a normalization engine is not provided.
	ErrEngineRequired = errors.New("normalization engine required")

	// ErrEmbedderRequired is returned when a batch embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrSinkRequired is returned when no embedding sink is provided.
	ErrSinkRequired = errors.New("embedding sink required")

	// ErrMissingRecord is returned for an input with neither a parsed record
	// nor raw record JSON.
	ErrMissingRecord = errors.New("input has no record")
)

package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline is a loaded embedding model bound to one device.
type Pipeline interface {
	Embedder

	// Device reports where inference runs.
	Device() Device

	// Model returns the model identifier, recorded alongside cached output.
	Model() string

	// Close releases the model. The pipeline must not be used afterwards.
	Close() error
}

// PipelineLoader constructs pipelines. Load is the expensive step (model
// weights, runtime startup) and is called at most once per device by a
// generator until the pipeline is disposed.
type PipelineLoader interface {
	Load(ctx context.Context, device Device, opts InferenceOptions) (Pipeline, error)
}

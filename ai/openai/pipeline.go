package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/nightdex/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Pipeline implements ai.Pipeline against an OpenAI-compatible embedding
// endpoint. One pipeline talks to one host, which stands for one device.
type Pipeline struct {
	embedder embeddings.Embedder
	device   ai.Device
	model    string
	logger   *slog.Logger
}

// EmbedText generates a vector embedding for a single text string.
func (p *Pipeline) EmbedText(ctx context.Context, text string) ([]float32, error) {
	p.logger.Debug("generating embedding for single text", "length", len(text))

	vectors, err := p.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		p.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("embedding service returned no vectors")
	}
	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (p *Pipeline) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	p.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors, err := p.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		p.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}
	return vectors, nil
}

// Device reports which device this pipeline was loaded for.
func (p *Pipeline) Device() ai.Device {
	return p.device
}

// Model returns the embedding model identifier.
func (p *Pipeline) Model() string {
	return p.model
}

// Close is a no-op; the HTTP client holds no per-pipeline resources.
func (p *Pipeline) Close() error {
	return nil
}

// newClient builds the langchaingo embedder for host.
// Use "none" as token for local OpenAI-compatible services that don't require authentication
func newClient(host, model string) (embeddings.Embedder, error) {
	client, err := openai.New(
		openai.WithBaseURL(host),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
}

package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/nightdex/ai"
)

// probeText is embedded once per load to confirm the endpoint serves the
// configured model.
const probeText = "nightdex"

// Loader implements ai.PipelineLoader. Each device maps to a host via
// ai.Config.HostFor.
type Loader struct {
	config *ai.Config
	logger *slog.Logger
}

// NewLoader validates config and returns a loader for it.
//
// Returns ai.PipelineLoader interface to enforce abstraction.
func NewLoader(config *ai.Config) (ai.PipelineLoader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Loader{
		config: config,
		logger: slog.Default().With("component", "openai-loader"),
	}, nil
}

// Load connects to the host for device and verifies it with a probe
// request. A device without a configured host fails immediately.
//
// The remote service owns precision and threading, so opts.DType and
// opts.Threads are logged but never sent; requests are identical whatever
// opts holds. Choose the precision on the server side.
func (l *Loader) Load(ctx context.Context, device ai.Device, opts ai.InferenceOptions) (ai.Pipeline, error) {
	host := l.config.HostFor(device)
	if host == "" {
		return nil, fmt.Errorf("no embedding host configured for device %s", device)
	}

	logger := slog.Default().With("component", "openai-embedder", "device", device)
	l.logger.Info("loading embedding pipeline", "device", device, "host", host,
		"model", l.config.EmbeddingModel, "dtype", opts.DType, "threads", opts.Threads)

	client, err := newClient(host, l.config.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("create embedding client: %w", err)
	}

	if _, err := client.EmbedDocuments(ctx, []string{probeText}); err != nil {
		return nil, fmt.Errorf("probe %s: %w", host, err)
	}

	return &Pipeline{
		embedder: client,
		device:   device,
		model:    l.config.EmbeddingModel,
		logger:   logger,
	}, nil
}

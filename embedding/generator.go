package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/nightdex/ai"
	"golang.org/x/sync/singleflight"
)

// ProgressFunc receives (completed, total) after every sub-batch.
type ProgressFunc func(completed, total int)

// BatchError is the failure of one input of EmbedBatch.
type BatchError struct {
	Index int
	Err   error
}

func (e BatchError) Error() string {
	return fmt.Sprintf("input %d: %v", e.Index, e.Err)
}

func (e BatchError) Unwrap() error {
	return e.Err
}

// BatchResult is the outcome of EmbedBatch. Results is index-aligned with
// the input; entries for failed inputs are nil and have a matching
// BatchError.
type BatchResult struct {
	Results [][]float32
	Errors  []BatchError
	Elapsed time.Duration
}

// Succeeded returns the number of inputs that produced a vector.
func (r *BatchResult) Succeeded() int {
	return len(r.Results) - len(r.Errors)
}

// Generator produces embeddings through a lazily loaded pipeline.
// It is safe for concurrent use.
type Generator struct {
	config *ai.Config
	loader ai.PipelineLoader
	logger *slog.Logger
	retry  Backoff

	loads      singleflight.Group
	mu         sync.RWMutex
	pipeline   ai.Pipeline
	generation uint64 // bumped by Dispose
}

// Option configures a Generator.
type Option func(*Generator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger.With("component", "embedding")
		return nil
	}
}

// WithMaxRetries sets the attempts made per item after a sub-batch fails.
// Default is 3.
func WithMaxRetries(n int) Option {
	return func(g *Generator) error {
		if n <= 0 {
			return ErrInvalidMaxAttempts
		}
		g.retry.MaxAttempts = n
		return nil
	}
}

// WithRetryDelay sets the base backoff delay between per-item attempts.
// Default is 500ms.
func WithRetryDelay(d time.Duration) Option {
	return func(g *Generator) error {
		if d < 0 {
			return errors.New("retry delay cannot be negative")
		}
		g.retry.BaseDelay = d
		return nil
	}
}

// NewGenerator validates config and returns a generator. Nothing is loaded
// until Initialize or the first embedding call.
func NewGenerator(config *ai.Config, loader ai.PipelineLoader, opts ...Option) (*Generator, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config cannot be nil", ai.ErrInvalidConfig)
	}
	if loader == nil {
		return nil, errors.New("pipeline loader cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		config: config,
		loader: loader,
		logger: slog.Default().With("component", "embedding"),
		retry: Backoff{
			MaxAttempts: 3,
			BaseDelay:   500 * time.Millisecond,
			MaxDelay:    10 * time.Second,
		},
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	g.retry.Logger = g.logger
	return g, nil
}

// Initialize loads the pipeline if it is not loaded yet. Concurrent calls
// share one load. Fails with *ModelLoadError when no candidate device can
// load the model.
func (g *Generator) Initialize(ctx context.Context) error {
	_, err := g.acquire(ctx)
	return err
}

// Device reports the device of the loaded pipeline, or "" before
// initialization.
func (g *Generator) Device() ai.Device {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.pipeline == nil {
		return ""
	}
	return g.pipeline.Device()
}

// Model reports the model of the loaded pipeline, falling back to the
// configured model name before initialization.
func (g *Generator) Model() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.pipeline == nil {
		return g.config.EmbeddingModel
	}
	return g.pipeline.Model()
}

// Dispose releases the loaded pipeline. Later calls load it again. A load
// still in flight when Dispose runs is discarded when it completes; its
// waiters get ErrDisposed.
func (g *Generator) Dispose() error {
	g.mu.Lock()
	p := g.pipeline
	g.pipeline = nil
	g.generation++
	g.mu.Unlock()

	if p == nil {
		return nil
	}
	g.logger.Info("disposing embedding pipeline", "device", p.Device())
	return p.Close()
}

// Embed returns the vector for a single text.
// Empty or whitespace-only text fails with ErrEmptyInput without loading
// the model.
func (g *Generator) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	p, err := g.acquire(ctx)
	if err != nil {
		return nil, err
	}

	var vector []float32
	err = g.retry.Do(ctx, func(ctx context.Context) error {
		v, err := p.EmbedText(ctx, text)
		if err != nil {
			return err
		}
		vector, err = g.finish(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// EmbedBatch embeds texts in sub-batches of the configured batch size,
// one sub-batch at a time. A failing sub-batch is retried item by item so
// one bad input only costs its own slot. onProgress may be nil.
//
// The returned error is non-nil only when the model cannot be loaded or ctx
// is done; per-item failures are reported in BatchResult.Errors.
func (g *Generator) EmbedBatch(ctx context.Context, texts []string, onProgress ProgressFunc) (*BatchResult, error) {
	start := time.Now()
	result := &BatchResult{Results: make([][]float32, len(texts))}
	if len(texts) == 0 {
		result.Elapsed = time.Since(start)
		return result, nil
	}

	p, err := g.acquire(ctx)
	if err != nil {
		return nil, err
	}

	size := g.config.BatchSize
	total := len(texts)
	for lo := 0; lo < total; lo += size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hi := min(lo+size, total)
		g.embedSubBatch(ctx, p, texts, lo, hi, result)
		if onProgress != nil {
			onProgress(hi, total)
		}
	}

	result.Elapsed = time.Since(start)
	g.logger.Debug("batch embedded", "count", total, "failed", len(result.Errors),
		"device", p.Device(), "elapsed", result.Elapsed)
	return result, nil
}

func (g *Generator) embedSubBatch(ctx context.Context, p ai.Pipeline, texts []string, lo, hi int, result *BatchResult) {
	var (
		indices []int
		inputs  []string
	)
	for i := lo; i < hi; i++ {
		if strings.TrimSpace(texts[i]) == "" {
			result.Errors = append(result.Errors, BatchError{Index: i, Err: ErrEmptyInput})
			continue
		}
		indices = append(indices, i)
		inputs = append(inputs, texts[i])
	}
	if len(inputs) == 0 {
		return
	}

	vectors, err := p.EmbedTexts(ctx, inputs)
	if err == nil && len(vectors) != len(inputs) {
		err = fmt.Errorf("embedding count mismatch: expected %d, got %d", len(inputs), len(vectors))
	}
	if err == nil {
		finished := make([][]float32, len(vectors))
		for j, v := range vectors {
			if finished[j], err = g.finish(v); err != nil {
				break
			}
		}
		if err == nil {
			for j, i := range indices {
				result.Results[i] = finished[j]
			}
			return
		}
	}

	g.logger.Warn("sub-batch failed, retrying items individually", "from", lo, "to", hi, "err", err)
	for _, i := range indices {
		var vector []float32
		err := g.retry.Do(ctx, func(ctx context.Context) error {
			v, err := p.EmbedText(ctx, texts[i])
			if err != nil {
				return err
			}
			vector, err = g.finish(v)
			return err
		})
		if err != nil {
			result.Errors = append(result.Errors, BatchError{Index: i, Err: err})
			continue
		}
		result.Results[i] = vector
	}
}

// finish applies the configured post-processing to a model vector.
func (g *Generator) finish(v []float32) ([]float32, error) {
	if len(v) == 0 {
		return nil, ErrEmptyVector
	}
	if g.config.NormalizeVectors {
		return NormalizeVector(v), nil
	}
	return v, nil
}

// acquire returns the loaded pipeline, loading it once if needed. The
// shared load is detached from any single caller's cancellation; each
// caller stops waiting when its own ctx is done and gets ctx.Err().
func (g *Generator) acquire(ctx context.Context) (ai.Pipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.RLock()
	p, gen := g.pipeline, g.generation
	g.mu.RUnlock()
	if p != nil {
		return p, nil
	}

	key := "pipeline-" + strconv.FormatUint(gen, 10)
	ch := g.loads.DoChan(key, func() (any, error) {
		return g.loadGeneration(context.WithoutCancel(ctx), gen)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(ai.Pipeline), nil
	}
}

// loadGeneration loads a pipeline and installs it unless Dispose ran since
// generation gen was observed, in which case the new pipeline is closed.
func (g *Generator) loadGeneration(ctx context.Context, gen uint64) (ai.Pipeline, error) {
	g.mu.RLock()
	p := g.pipeline
	g.mu.RUnlock()
	if p != nil {
		return p, nil
	}

	p, err := g.load(ctx)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	if g.generation != gen {
		g.mu.Unlock()
		g.logger.Info("discarding pipeline loaded before dispose", "device", p.Device())
		if cerr := p.Close(); cerr != nil {
			g.logger.Error("error closing discarded pipeline", "err", cerr)
		}
		return nil, ErrDisposed
	}
	if g.pipeline == nil {
		g.pipeline = p
	}
	installed := g.pipeline
	g.mu.Unlock()

	if installed != p {
		p.Close()
	}
	return installed, nil
}

// load walks the configured device candidates until one loads.
func (g *Generator) load(ctx context.Context) (ai.Pipeline, error) {
	candidates := g.config.Candidates()
	var errs []error
	for i, device := range candidates {
		opts := g.config.InferenceOptionsFor(device)
		p, err := g.loader.Load(ctx, device, opts)
		if err == nil {
			g.logger.Info("embedding pipeline loaded", "device", device, "model", p.Model(),
				"dtype", opts.DType, "threads", opts.Threads)
			return p, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", device, err))
		if i+1 < len(candidates) {
			g.logger.Warn("embedding pipeline unavailable, falling back", "device", device,
				"fallback", candidates[i+1], "err", err)
		}
	}
	g.logger.Error("failed to load embedding pipeline", "devices", candidates, "err", errors.Join(errs...))
	return nil, &ModelLoadError{Devices: candidates, Err: errors.Join(errs...)}
}

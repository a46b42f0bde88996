package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/nightdex/cache"
	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/normalize"
)

// Input is one record to normalize. Record takes precedence; RawRecord is
// decoded with the engine when Record is nil.
type Input struct {
	SourceID  string
	Source    []byte
	Record    core.ParsedRecord
	RawRecord json.RawMessage
}

// Failure describes one record that could not be normalized or cached.
type Failure struct {
	SourceID string
	Type     core.EntityType
	Name     string
	Err      error
}

// Summary reports a batch run. Failures and NeedsFallback are in input
// order.
type Summary struct {
	Processed     int
	Skipped       int
	Succeeded     int
	Failed        int
	Failures      []Failure
	NeedsFallback []string
	Reasons       map[cache.Reason]int
	Elapsed       time.Duration
}

// RunOptions holds optional parameters for Run.
type RunOptions struct {
	// Force reprocesses every input regardless of the cache.
	Force bool

	// OnProgress is called after each input completes with
	// (completed, total). Calls may come from worker goroutines but are
	// serialized.
	OnProgress func(completed, total int)
}

// Pipeline normalizes batches of inputs into the cache.
type Pipeline struct {
	cache  *cache.Cache
	engine *normalize.Engine
	pool   *ants.Pool
	model  string
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "ingestion")
		return nil
	}
}

// WithModel sets the model id recorded on cache entries.
func WithModel(model string) Option {
	return func(p *Pipeline) error {
		p.model = model
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(c *cache.Cache, engine *normalize.Engine, opts ...Option) (*Pipeline, error) {
	if c == nil {
		return nil, ErrCacheRequired
	}
	if engine == nil {
		return nil, ErrEngineRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cache:  c,
		engine: engine,
		pool:   pool,
		logger: slog.Default().With("component", "ingestion"),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Run processes inputs on the worker pool and waits for all of them.
// Per-record errors are reported in the Summary; the returned error is
// non-nil only if ctx is done or the pool rejects work.
func (p *Pipeline) Run(ctx context.Context, inputs []Input, opts *RunOptions) (*Summary, error) {
	if opts == nil {
		opts = &RunOptions{}
	}
	start := time.Now()
	proc := &recordProcessor{cache: p.cache, engine: p.engine, model: p.model, logger: p.logger}

	outcomes := make([]outcome, len(inputs))
	done := make([]bool, len(inputs))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
		submitErr error
	)
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			o := proc.process(ctx, in, opts.Force)

			mu.Lock()
			defer mu.Unlock()
			outcomes[i] = o
			done[i] = true
			completed++
			if opts.OnProgress != nil {
				opts.OnProgress(completed, len(inputs))
			}
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()

	summary := &Summary{Reasons: make(map[cache.Reason]int)}
	for i, o := range outcomes {
		if !done[i] {
			continue
		}
		summary.Processed++
		summary.Reasons[o.reason]++
		switch o.status {
		case statusSkipped:
			summary.Skipped++
		case statusSucceeded:
			summary.Succeeded++
		case statusFallback:
			summary.NeedsFallback = append(summary.NeedsFallback, inputs[i].SourceID)
		case statusFailed:
			summary.Failed++
			summary.Failures = append(summary.Failures, Failure{
				SourceID: inputs[i].SourceID,
				Type:     o.typ,
				Name:     o.name,
				Err:      o.err,
			})
		}
	}
	summary.Elapsed = time.Since(start)

	p.logger.Info("batch complete", "inputs", len(inputs), "processed", summary.Processed,
		"skipped", summary.Skipped, "succeeded", summary.Succeeded, "failed", summary.Failed,
		"fallback", len(summary.NeedsFallback), "elapsed", summary.Elapsed)

	if submitErr == nil {
		submitErr = ctx.Err()
	}
	if submitErr != nil {
		if errors.Is(submitErr, context.Canceled) || errors.Is(submitErr, context.DeadlineExceeded) {
			return summary, submitErr
		}
		p.logger.Error("worker pool rejected work", "err", submitErr)
		return summary, submitErr
	}
	return summary, nil
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

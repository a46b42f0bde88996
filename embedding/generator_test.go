package embedding

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/nightdex/ai"
	"github.com/poiesic/nightdex/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, loader ai.PipelineLoader, opts ...ai.ConfigOption) *Generator {
	t.Helper()
	cfg := ai.NewConfig(append([]ai.ConfigOption{ai.WithDevice(ai.DeviceCPU), ai.WithBatchSize(4)}, opts...)...)
	g, err := NewGenerator(cfg, loader, WithMaxRetries(2), WithRetryDelay(time.Millisecond))
	require.NoError(t, err)
	return g
}

func TestNewGenerator_Validation(t *testing.T) {
	_, err := NewGenerator(nil, mock.NewMockLoader())
	assert.ErrorIs(t, err, ai.ErrInvalidConfig)

	_, err = NewGenerator(ai.DefaultConfig(), nil)
	assert.Error(t, err)

	_, err = NewGenerator(ai.NewConfig(ai.WithBatchSize(0)), mock.NewMockLoader())
	assert.ErrorIs(t, err, ai.ErrInvalidConfig)

	_, err = NewGenerator(ai.DefaultConfig(), mock.NewMockLoader(), WithMaxRetries(0))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestGenerator_LazyInitialization(t *testing.T) {
	loader := mock.NewMockLoader()
	g := newTestGenerator(t, loader)

	assert.Equal(t, 0, loader.TotalLoads())
	assert.Equal(t, ai.Device(""), g.Device())

	v, err := g.Embed(context.Background(), "Gladius is a Night Lord.")
	require.NoError(t, err)
	assert.Len(t, v, mock.DefaultDimension)
	assert.Equal(t, 1, loader.LoadCount(ai.DeviceCPU))
	assert.Equal(t, ai.DeviceCPU, g.Device())

	require.NoError(t, g.Initialize(context.Background()))
	_, err = g.Embed(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, 1, loader.TotalLoads(), "initialize must be idempotent")
}

func TestGenerator_ConcurrentInitializeLoadsOnce(t *testing.T) {
	release := make(chan struct{})
	loader := mock.NewMockLoader()
	loader.LoadFunc = func(ctx context.Context, d ai.Device, opts ai.InferenceOptions) (ai.Pipeline, error) {
		<-release
		return mock.NewMockPipeline(d), nil
	}
	g := newTestGenerator(t, loader)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = g.Initialize(context.Background())
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, loader.TotalLoads())
}

func TestGenerator_EmbedDeterministicAndNormalized(t *testing.T) {
	g := newTestGenerator(t, mock.NewMockLoader())
	ctx := context.Background()

	a, err := g.Embed(ctx, "Fire damage")
	require.NoError(t, err)
	b, err := g.Embed(ctx, "Fire damage")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	var sum float64
	for _, x := range a {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, sum, 1e-4)
}

func TestGenerator_EmbedWithoutNormalization(t *testing.T) {
	loader := mock.NewMockLoader()
	loader.LoadFunc = func(ctx context.Context, d ai.Device, opts ai.InferenceOptions) (ai.Pipeline, error) {
		p := mock.NewMockPipeline(d)
		p.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			out := make([][]float32, len(texts))
			for i := range texts {
				out[i] = []float32{3, 4}
			}
			return out, nil
		}
		return p, nil
	}
	g := newTestGenerator(t, loader, ai.WithNormalizeVectors(false))

	v, err := g.Embed(context.Background(), "raw")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4}, v)
}

func TestGenerator_EmbedEmptyInput(t *testing.T) {
	loader := mock.NewMockLoader()
	g := newTestGenerator(t, loader)

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := g.Embed(context.Background(), in)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
	assert.Equal(t, 0, loader.TotalLoads(), "empty input must not load the model")
}

func TestGenerator_EmbedBatchEmpty(t *testing.T) {
	loader := mock.FailingOn(ai.DeviceCPU, errors.New("broken"))
	g := newTestGenerator(t, loader)

	called := false
	res, err := g.EmbedBatch(context.Background(), nil, func(int, int) { called = true })
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Empty(t, res.Errors)
	assert.Less(t, res.Elapsed, time.Second)
	assert.False(t, called)
	assert.Equal(t, 0, loader.TotalLoads())
}

func TestGenerator_EmbedBatchProgress(t *testing.T) {
	loader := mock.NewMockLoader()
	g := newTestGenerator(t, loader)

	texts := make([]string, 10)
	for i := range texts {
		texts[i] = strings.Repeat("x", i+1)
	}

	var calls [][2]int
	res, err := g.EmbedBatch(context.Background(), texts, func(done, total int) {
		calls = append(calls, [2]int{done, total})
	})
	require.NoError(t, err)
	assert.Len(t, res.Results, 10)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 10, res.Succeeded())
	assert.Equal(t, [][2]int{{4, 10}, {8, 10}, {10, 10}}, calls)

	pipeline := loader.Pipelines()[0]
	assert.Equal(t, 3, pipeline.CallCount(), "one model call per sub-batch")

	for i, text := range texts {
		single, err := g.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, single, res.Results[i])
	}
}

func TestGenerator_EmbedBatchDegradesPerItem(t *testing.T) {
	loader := mock.NewMockLoader()
	loader.LoadFunc = func(ctx context.Context, d ai.Device, opts ai.InferenceOptions) (ai.Pipeline, error) {
		p := mock.NewMockPipeline(d)
		p.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			for _, text := range texts {
				if text == "poison" {
					return nil, errors.New("model rejected input")
				}
			}
			out := make([][]float32, len(texts))
			for i, text := range texts {
				out[i] = mock.Vector(text, 8)
			}
			return out, nil
		}
		return p, nil
	}
	g := newTestGenerator(t, loader)

	texts := []string{"a", "poison", "", "b", "c"}
	res, err := g.EmbedBatch(context.Background(), texts, nil)
	require.NoError(t, err)

	require.Len(t, res.Results, 5)
	assert.NotNil(t, res.Results[0])
	assert.Nil(t, res.Results[1])
	assert.Nil(t, res.Results[2])
	assert.NotNil(t, res.Results[3])
	assert.NotNil(t, res.Results[4])

	require.Len(t, res.Errors, 2)
	byIndex := map[int]error{}
	for _, e := range res.Errors {
		byIndex[e.Index] = e.Err
	}
	assert.ErrorIs(t, byIndex[2], ErrEmptyInput)
	assert.EqualError(t, byIndex[1], "model rejected input")
	assert.Equal(t, 3, res.Succeeded())
}

func TestGenerator_EmbedBatchCountMismatch(t *testing.T) {
	loader := mock.NewMockLoader()
	loader.LoadFunc = func(ctx context.Context, d ai.Device, opts ai.InferenceOptions) (ai.Pipeline, error) {
		p := mock.NewMockPipeline(d)
		p.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{mock.Vector(texts[0], 8)}, nil
		}
		return p, nil
	}
	g := newTestGenerator(t, loader)

	res, err := g.EmbedBatch(context.Background(), []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Errors, "per-item retry recovers from a short batch")
	assert.NotNil(t, res.Results[0])
	assert.NotNil(t, res.Results[1])
}

func TestGenerator_ModelLoadFailureAbortsBatch(t *testing.T) {
	loader := mock.FailingOn(ai.DeviceCPU, errors.New("runtime missing"))
	g := newTestGenerator(t, loader)

	res, err := g.EmbedBatch(context.Background(), []string{"a", "b"}, nil)
	assert.Nil(t, res)
	var mle *ModelLoadError
	require.ErrorAs(t, err, &mle)
	assert.Equal(t, []ai.Device{ai.DeviceCPU}, mle.Devices)
	assert.Contains(t, err.Error(), "runtime missing")

	_, err = g.Embed(context.Background(), "a")
	assert.ErrorAs(t, err, &mle)
}

func TestGenerator_GPUFallsBackToCPU(t *testing.T) {
	loader := mock.FailingOn(ai.DeviceGPU, errors.New("no cuda"))
	g := newTestGenerator(t, loader,
		ai.WithDevice(ai.DeviceGPU),
		ai.WithGPUEmbeddingHost("http://gpu:8080"),
	)

	require.NoError(t, g.Initialize(context.Background()))
	assert.Equal(t, ai.DeviceCPU, g.Device())
	assert.Equal(t, 1, loader.LoadCount(ai.DeviceGPU))
	assert.Equal(t, 1, loader.LoadCount(ai.DeviceCPU))

	opts := loader.Options()
	require.Len(t, opts, 2)
	assert.Equal(t, ai.DTypeFP16, opts[0].DType)
	assert.Equal(t, ai.DTypeFP32, opts[1].DType)
}

func TestGenerator_StrictGPUFailsFast(t *testing.T) {
	loader := mock.FailingOn(ai.DeviceGPU, errors.New("no cuda"))
	g := newTestGenerator(t, loader,
		ai.WithDevice(ai.DeviceGPU),
		ai.WithGPUEmbeddingHost("http://gpu:8080"),
		ai.WithStrictDevice(true),
	)

	err := g.Initialize(context.Background())
	var mle *ModelLoadError
	require.ErrorAs(t, err, &mle)
	assert.Equal(t, []ai.Device{ai.DeviceGPU}, mle.Devices)
	assert.Equal(t, 0, loader.LoadCount(ai.DeviceCPU))
}

func TestGenerator_AutoPrefersGPU(t *testing.T) {
	loader := mock.NewMockLoader()
	g := newTestGenerator(t, loader,
		ai.WithDevice(ai.DeviceAuto),
		ai.WithGPUEmbeddingHost("http://gpu:8080"),
	)
	require.NoError(t, g.Initialize(context.Background()))
	assert.Equal(t, ai.DeviceGPU, g.Device())
}

func TestGenerator_DisposeReinitializes(t *testing.T) {
	loader := mock.NewMockLoader()
	g := newTestGenerator(t, loader)
	ctx := context.Background()

	require.NoError(t, g.Dispose(), "dispose before load is a no-op")

	_, err := g.Embed(ctx, "first")
	require.NoError(t, err)
	first := loader.Pipelines()[0]

	require.NoError(t, g.Dispose())
	assert.True(t, first.Closed())
	assert.Equal(t, ai.Device(""), g.Device())

	_, err = g.EmbedBatch(ctx, []string{"second"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.LoadCount(ai.DeviceCPU))
}

func TestGenerator_Model(t *testing.T) {
	g := newTestGenerator(t, mock.NewMockLoader(), ai.WithEmbeddingModel("gemma"))
	assert.Equal(t, "gemma", g.Model())
	require.NoError(t, g.Initialize(context.Background()))
	assert.Equal(t, "mock-embedder", g.Model())
}

func TestGenerator_CanceledContext(t *testing.T) {
	g := newTestGenerator(t, mock.NewMockLoader())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.EmbedBatch(ctx, []string{"a"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// blockingLoader hands out one mock pipeline per load once release is closed.
func blockingLoader() (*mock.MockLoader, chan struct{}, chan struct{}, *[]*mock.MockPipeline) {
	started := make(chan struct{}, 8)
	release := make(chan struct{})
	var (
		mu        sync.Mutex
		pipelines []*mock.MockPipeline
	)
	loader := mock.NewMockLoader()
	loader.LoadFunc = func(ctx context.Context, d ai.Device, opts ai.InferenceOptions) (ai.Pipeline, error) {
		started <- struct{}{}
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := mock.NewMockPipeline(d)
		mu.Lock()
		pipelines = append(pipelines, p)
		mu.Unlock()
		return p, nil
	}
	return loader, started, release, &pipelines
}

func TestGenerator_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	loader, started, release, _ := blockingLoader()
	g := newTestGenerator(t, loader)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() { errA <- g.Initialize(ctxA) }()
	<-started

	errB := make(chan error, 1)
	go func() { errB <- g.Initialize(context.Background()) }()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	err := <-errA
	assert.ErrorIs(t, err, context.Canceled)
	var mle *ModelLoadError
	assert.False(t, errors.As(err, &mle), "caller cancellation is not a model load failure")

	close(release)
	require.NoError(t, <-errB)
	assert.Equal(t, ai.DeviceCPU, g.Device())
	assert.Equal(t, 1, loader.TotalLoads())
}

func TestGenerator_DisposeDuringLoad(t *testing.T) {
	loader, started, release, pipelines := blockingLoader()
	g := newTestGenerator(t, loader)

	errCh := make(chan error, 1)
	go func() { errCh <- g.Initialize(context.Background()) }()
	<-started

	require.NoError(t, g.Dispose())
	close(release)

	assert.ErrorIs(t, <-errCh, ErrDisposed)
	assert.Equal(t, ai.Device(""), g.Device(), "disposed load must not be installed")
	require.Len(t, *pipelines, 1)
	assert.True(t, (*pipelines)[0].Closed())

	require.NoError(t, g.Initialize(context.Background()))
	assert.Equal(t, ai.DeviceCPU, g.Device())
	assert.Equal(t, 2, loader.TotalLoads())
}

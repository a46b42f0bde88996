package mock

import (
	"context"
	"sync"

	"github.com/poiesic/nightdex/ai"
)

// MockLoader is a test double for ai.PipelineLoader.
type MockLoader struct {
	// LoadFunc is called by Load if set. If nil, Load returns a new
	// MockPipeline for the requested device.
	LoadFunc func(ctx context.Context, device ai.Device, opts ai.InferenceOptions) (ai.Pipeline, error)

	mu        sync.Mutex
	loads     map[ai.Device]int
	options   []ai.InferenceOptions
	pipelines []*MockPipeline
}

// NewMockLoader creates a loader with default behavior.
func NewMockLoader() *MockLoader {
	return &MockLoader{loads: make(map[ai.Device]int)}
}

// FailingOn returns a loader whose loads for the given device fail with err.
// Other devices get the default mock pipeline.
func FailingOn(device ai.Device, err error) *MockLoader {
	l := NewMockLoader()
	l.LoadFunc = func(ctx context.Context, d ai.Device, opts ai.InferenceOptions) (ai.Pipeline, error) {
		if d == device {
			return nil, err
		}
		return l.track(NewMockPipeline(d)), nil
	}
	return l
}

// Load records the attempt and returns a pipeline.
func (l *MockLoader) Load(ctx context.Context, device ai.Device, opts ai.InferenceOptions) (ai.Pipeline, error) {
	l.mu.Lock()
	if l.loads == nil {
		l.loads = make(map[ai.Device]int)
	}
	l.loads[device]++
	l.options = append(l.options, opts)
	l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.LoadFunc != nil {
		return l.LoadFunc(ctx, device, opts)
	}
	return l.track(NewMockPipeline(device)), nil
}

func (l *MockLoader) track(p *MockPipeline) *MockPipeline {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pipelines = append(l.pipelines, p)
	return p
}

// LoadCount returns how many times Load was called for device.
func (l *MockLoader) LoadCount(device ai.Device) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads[device]
}

// TotalLoads returns the number of Load calls across all devices.
func (l *MockLoader) TotalLoads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, n := range l.loads {
		total += n
	}
	return total
}

// Options returns the inference options passed to each Load call.
func (l *MockLoader) Options() []ai.InferenceOptions {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ai.InferenceOptions(nil), l.options...)
}

// Pipelines returns the default pipelines handed out so far.
func (l *MockLoader) Pipelines() []*MockPipeline {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*MockPipeline(nil), l.pipelines...)
}

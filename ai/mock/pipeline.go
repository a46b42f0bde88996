package mock

import (
	"context"
	"hash/fnv"
	"math"
	"sync/atomic"

	"github.com/poiesic/nightdex/ai"
)

// DefaultDimension is the vector length produced by the default behavior.
const DefaultDimension = 384

// MockPipeline is a test double for ai.Pipeline.
// It allows custom behavior injection via function fields.
type MockPipeline struct {
	// EmbedTextsFunc is called by EmbedTexts and EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// CloseFunc is called by Close if set.
	CloseFunc func() error

	DeviceValue ai.Device
	ModelValue  string
	Dimension   int

	calls  atomic.Int64
	texts  atomic.Int64
	closed atomic.Bool
}

// NewMockPipeline creates a mock pipeline bound to device d with default
// deterministic behavior.
func NewMockPipeline(d ai.Device) *MockPipeline {
	return &MockPipeline{
		DeviceValue: d,
		ModelValue:  "mock-embedder",
		Dimension:   DefaultDimension,
	}
}

// EmbedText generates a deterministic embedding based on text hash.
func (m *MockPipeline) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (m *MockPipeline) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls.Add(1)
	m.texts.Add(int64(len(texts)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	dim := m.Dimension
	if dim <= 0 {
		dim = DefaultDimension
	}
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = Vector(text, dim)
	}
	return embeddings, nil
}

// Device reports the device the mock was loaded for.
func (m *MockPipeline) Device() ai.Device {
	return m.DeviceValue
}

// Model returns the configured model name.
func (m *MockPipeline) Model() string {
	return m.ModelValue
}

// Close marks the pipeline closed.
func (m *MockPipeline) Close() error {
	m.closed.Store(true)
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// CallCount returns the number of EmbedTexts calls, including those made
// through EmbedText.
func (m *MockPipeline) CallCount() int {
	return int(m.calls.Load())
}

// TextCount returns the total number of texts embedded.
func (m *MockPipeline) TextCount() int {
	return int(m.texts.Load())
}

// Closed reports whether Close was called.
func (m *MockPipeline) Closed() bool {
	return m.closed.Load()
}

// Vector creates a deterministic unit-length embedding from text.
// The same text always produces the same vector.
func Vector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := range vector {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000)/1000.0 - 0.5
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		norm := float32(1 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}
	return vector
}

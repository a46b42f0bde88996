package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name     string
		input    []float32
		expected []float32
	}{
		{
			name:     "unit vector remains unchanged",
			input:    []float32{1.0, 0.0, 0.0},
			expected: []float32{1.0, 0.0, 0.0},
		},
		{
			name:     "scale non-unit vector",
			input:    []float32{3.0, 4.0},
			expected: []float32{0.6, 0.8},
		},
		{
			name:     "negative values",
			input:    []float32{-1.0, 1.0},
			expected: []float32{-1.0 / float32(math.Sqrt(2)), 1.0 / float32(math.Sqrt(2))},
		},
		{
			name:     "zero vector stays zero",
			input:    []float32{0, 0, 0},
			expected: []float32{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVector(tt.input)
			require.Len(t, got, len(tt.expected))
			for i := range got {
				assert.InDelta(t, tt.expected[i], got[i], 1e-6)
			}
		})
	}
}

func TestNormalizeVector_DoesNotMutateInput(t *testing.T) {
	in := []float32{3, 4}
	NormalizeVector(in)
	assert.Equal(t, []float32{3, 4}, in)
}

func TestBytesRoundTrip(t *testing.T) {
	vectors := [][]float32{
		{},
		{1.5},
		{0.1, -0.2, 0.3, float32(math.Pi), -0},
		{math.MaxFloat32, math.SmallestNonzeroFloat32, float32(math.Inf(1))},
	}
	for _, v := range vectors {
		b := ToBytes(v)
		assert.Len(t, b, 4*len(v))

		got, err := FromBytes(b)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestToBytes_LittleEndian(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, ToBytes([]float32{1.0}))
}

func TestFromBytes_InvalidLength(t *testing.T) {
	_, err := FromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidVectorBytes)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"scale invariant", []float32{1, 1}, []float32{5, 5}, 1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	var dm *DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Left)
	assert.Equal(t, 3, dm.Right)
}

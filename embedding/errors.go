package embedding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/poiesic/nightdex/ai"
)

var (
	// ErrEmptyInput is returned for empty or whitespace-only text.
	ErrEmptyInput = errors.New("empty embedding input")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrInvalidVectorBytes is returned when a byte slice is not a whole
	// number of float32 values.
	ErrInvalidVectorBytes = errors.New("vector bytes length is not a multiple of 4")

	// ErrEmptyVector is returned when the model yields a zero-length vector.
	ErrEmptyVector = errors.New("model returned an empty vector")

	// ErrDisposed is returned to callers waiting on a load that Dispose
	// invalidated.
	ErrDisposed = errors.New("embedding pipeline disposed during load")
)

// ModelLoadError reports that no pipeline could be loaded on any candidate
// device.
type ModelLoadError struct {
	Devices []ai.Device
	Err     error
}

func (e *ModelLoadError) Error() string {
	names := make([]string, len(e.Devices))
	for i, d := range e.Devices {
		names[i] = string(d)
	}
	return fmt.Sprintf("load embedding model (tried %s): %v", strings.Join(names, ", "), e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// DimensionMismatchError is returned when two vectors of different lengths
// are compared.
type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: %d != %d", e.Left, e.Right)
}

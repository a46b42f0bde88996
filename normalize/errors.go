package normalize

import (
	"errors"
	"fmt"

	"github.com/poiesic/nightdex/core"
)

var (
	// ErrNegativeValue is returned when a stat that cannot be negative is.
	ErrNegativeValue = errors.New("value cannot be negative")

	// ErrInvalidGrade is returned for a scaling or attribute grade outside S-E.
	ErrInvalidGrade = errors.New("invalid grade")

	// ErrInvalidThreshold is returned for a phase health threshold outside 0-100.
	ErrInvalidThreshold = errors.New("health threshold must be between 0 and 100")

	// ErrInvalidLevel is returned for a progression row with a non-positive level.
	ErrInvalidLevel = errors.New("level must be positive")

	// ErrUnexpectedRecord is returned when a handler receives the wrong Go type.
	ErrUnexpectedRecord = errors.New("unexpected record type")

	// ErrPanic wraps a panic recovered from a transform.
	ErrPanic = errors.New("transform panicked")
)

// NormalizationError reports a failed transform for one record. No partial
// record accompanies it.
type NormalizationError struct {
	Type core.EntityType
	Name string
	Err  error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s %q: %v", e.Type, e.Name, e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError reports a record type with no registered transform.
// It is the signal for a caller to route the record to a fallback path.
type UnsupportedTypeError struct {
	Type core.EntityType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("no direct normalizer for type %q", e.Type)
}

// NeedsFallback reports whether err means the record should be handed to a
// fallback normalizer rather than counted as a failure.
func NeedsFallback(err error) bool {
	var ute *UnsupportedTypeError
	return errors.As(err, &ute)
}

package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff_Success(t *testing.T) {
	attempts := 0
	b := Backoff{MaxAttempts: 3, BaseDelay: time.Millisecond}

	err := b.Do(context.Background(), func(context.Context) error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts, "should succeed on first try")
}

func TestBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	b := Backoff{MaxAttempts: 5, BaseDelay: time.Millisecond}

	err := b.Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestBackoff_AllAttemptsFail(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("persistent error")
	b := Backoff{MaxAttempts: 3, BaseDelay: time.Millisecond}

	err := b.Do(context.Background(), func(context.Context) error {
		attempts++
		return expectedErr
	})
	assert.Equal(t, expectedErr, err, "should return the last error")
	assert.Equal(t, 3, attempts, "should attempt exactly MaxAttempts times")
}

func TestBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	b := Backoff{MaxAttempts: 10, BaseDelay: 10 * time.Millisecond}

	err := b.Do(ctx, func(context.Context) error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("error")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, attempts, "should stop when context is canceled")
}

func TestBackoff_InvalidMaxAttempts(t *testing.T) {
	err := Backoff{}.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestBackoff_Delay(t *testing.T) {
	b := Backoff{BaseDelay: 100 * time.Millisecond, MaxDelay: 350 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, b.delay(1))
	assert.Equal(t, 200*time.Millisecond, b.delay(2))
	assert.Equal(t, 350*time.Millisecond, b.delay(3))
	assert.Equal(t, 350*time.Millisecond, b.delay(10))

	uncapped := Backoff{BaseDelay: time.Millisecond}
	assert.Equal(t, 8*time.Millisecond, uncapped.delay(4))
}

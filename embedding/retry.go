// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package embedding

import (
	"context"
	"log/slog"
	"time"
)

// Backoff retries an operation with exponential backoff.
type Backoff struct {
	// MaxAttempts is the total number of attempts (must be > 0).
	MaxAttempts int

	// BaseDelay is the wait after the first failure; it doubles after each
	// further failure.
	BaseDelay time.Duration

	// MaxDelay caps a single wait. Zero means uncapped.
	MaxDelay time.Duration

	Logger *slog.Logger
}

// Do runs operation until it succeeds, the attempts are exhausted or ctx is
// done. Returns the error from the last attempt if all attempts fail.
func (b Backoff) Do(ctx context.Context, operation func(ctx context.Context) error) error {
	if b.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error
	for attempt := 1; attempt <= b.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = operation(ctx)
		if lastErr == nil {
			if attempt > 1 {
				logger.Debug("operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}

		logger.Debug("operation failed", "attempt", attempt, "maxAttempts", b.MaxAttempts, "err", lastErr)

		// Don't sleep after the last attempt
		if attempt == b.MaxAttempts {
			break
		}

		timer := time.NewTimer(b.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}

// delay returns BaseDelay * 2^(attempt-1), capped at MaxDelay.
func (b Backoff) delay(attempt int) time.Duration {
	d := b.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if b.MaxDelay > 0 && d >= b.MaxDelay {
			return b.MaxDelay
		}
	}
	if b.MaxDelay > 0 && d > b.MaxDelay {
		return b.MaxDelay
	}
	return d
}

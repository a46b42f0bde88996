package cache

import (
	"errors"
	"fmt"
)

// ErrMiss is returned by Get when no successful entry is cached.
var ErrMiss = errors.New("cache miss")

// CacheIOError reports a failed read or write against the cache store.
// The affected id is treated as not cached.
type CacheIOError struct {
	Op       string
	SourceID string
	Err      error
}

func (e *CacheIOError) Error() string {
	if e.SourceID == "" {
		return fmt.Sprintf("cache %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.SourceID, e.Err)
}

func (e *CacheIOError) Unwrap() error {
	return e.Err
}

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

package core

import (
	"fmt"
	"strings"
)

// ValidateParsedRecord validates a ParsedRecord according to domain rules.
//
// Validation rules:
//   - Kind must be a known entity type
//   - Name must not be blank
//
// Everything else is optional and left to the normalizer.
func ValidateParsedRecord(rec ParsedRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidParsedRecord)
	}
	if !rec.Kind().Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidParsedRecord, ErrUnknownEntityType, rec.Kind())
	}
	if strings.TrimSpace(rec.RecordName()) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidParsedRecord, ErrEmptyName)
	}
	return nil
}

// ValidateChunk validates a Chunk. Content must not be blank.
func ValidateChunk(c Chunk) error {
	if !c.Type.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidChunk, ErrUnknownEntityType, c.Type)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyName)
	}
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}
	return nil
}

// ValidateCacheEntry validates a CacheEntry before it is persisted.
//
// Validation rules:
//   - SourceID must not be empty
//   - Data must be present and match ContentType
//   - Chunks must contain at least an overview chunk and all must be valid
func ValidateCacheEntry(e *CacheEntry) error {
	if e == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidCacheEntry)
	}
	if e.SourceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCacheEntry, ErrEmptySourceID)
	}
	if e.Data == nil {
		return fmt.Errorf("%w: data is nil", ErrInvalidCacheEntry)
	}
	if e.Data.Kind() != e.ContentType {
		return fmt.Errorf("%w: data is %s, content type is %s", ErrInvalidCacheEntry, e.Data.Kind(), e.ContentType)
	}
	if len(e.Chunks) == 0 {
		return fmt.Errorf("%w: no chunks", ErrInvalidCacheEntry)
	}
	for _, c := range e.Chunks {
		if err := ValidateChunk(c); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCacheEntry, err)
		}
	}
	return nil
}

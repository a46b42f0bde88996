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
	"encoding/json"
	"fmt"
	"time"
)

// SchemaVersion pins the normalization, tagging and chunking rule set.
// Bump it whenever any of those rules change; every cached success written
// under an older version is then treated as stale.
const SchemaVersion = 1

// CacheEntry is the full persisted result of one successful normalization.
type CacheEntry struct {
	SourceID      string           `json:"sourceId"`
	ContentType   EntityType       `json:"contentType"`
	Data          NormalizedRecord `json:"data"`
	Chunks        []Chunk          `json:"chunks"`
	SourceHash    string           `json:"sourceHash"`
	SchemaVersion int              `json:"schemaVersion"`
	Timestamp     time.Time        `json:"timestamp"`
	Model         string           `json:"model,omitempty"`
}

// UnmarshalJSON decodes Data into the concrete record named by ContentType.
func (e *CacheEntry) UnmarshalJSON(data []byte) error {
	type plain CacheEntry
	var aux struct {
		plain
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = CacheEntry(aux.plain)
	if len(aux.Data) == 0 || string(aux.Data) == "null" {
		return fmt.Errorf("%w: missing data", ErrInvalidCacheEntry)
	}
	rec, err := DecodeNormalized(e.ContentType, aux.Data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCacheEntry, err)
	}
	e.Data = rec
	return nil
}

// CacheMetadata is the lightweight index record kept for every known source
// id, written on both success and failure.
type CacheMetadata struct {
	SourceID      string     `json:"sourceId"`
	ContentType   EntityType `json:"contentType"`
	Success       bool       `json:"success"`
	SourceHash    string     `json:"sourceHash"`
	SchemaVersion int        `json:"schemaVersion"`
	Error         string     `json:"error,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

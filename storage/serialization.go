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

package storage

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/nightdex/core"
)

// MarshalCacheMetadata serializes one metadata record to bytes.
func MarshalCacheMetadata(meta core.CacheMetadata) []byte {
	buf := make([]byte, core.CacheMetadataMUS.Size(meta))
	core.CacheMetadataMUS.Marshal(meta, buf)
	return buf
}

// UnmarshalCacheMetadata deserializes one metadata record from bytes.
// UpdatedAt is returned in UTC.
func UnmarshalCacheMetadata(data []byte) (core.CacheMetadata, error) {
	meta, _, err := core.CacheMetadataMUS.Unmarshal(data)
	if err != nil {
		return core.CacheMetadata{}, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	meta.UpdatedAt = meta.UpdatedAt.UTC()
	return meta, nil
}

// MarshalIndex serializes an index as a record count followed by the
// records in source id order, so equal indexes encode identically.
func MarshalIndex(idx Index) []byte {
	ids := make([]string, 0, len(idx))
	for id := range idx {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	size := varint.Int.Size(len(ids))
	for _, id := range ids {
		size += core.CacheMetadataMUS.Size(idx[id])
	}
	buf := make([]byte, size)
	n := varint.Int.Marshal(len(ids), buf)
	for _, id := range ids {
		n += core.CacheMetadataMUS.Marshal(idx[id], buf[n:])
	}
	return buf
}

// UnmarshalIndex deserializes the output of MarshalIndex. Records are keyed
// by their SourceID.
func UnmarshalIndex(data []byte) (Index, error) {
	if len(data) == 0 {
		return Index{}, nil
	}
	count, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: index length: %w", ErrSerializationFailed, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative index length", ErrSerializationFailed)
	}

	idx := make(Index, count)
	for i := 0; i < count; i++ {
		if n >= len(data) {
			return nil, fmt.Errorf("%w: index record %d of %d", ErrTruncatedData, i, count)
		}
		meta, m, err := core.CacheMetadataMUS.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: index record %d: %w", ErrSerializationFailed, i, err)
		}
		n += m
		meta.UpdatedAt = meta.UpdatedAt.UTC()
		idx[meta.SourceID] = meta
	}
	return idx, nil
}

// MarshalEntry encodes an entry as indented JSON.
func MarshalEntry(entry *core.CacheEntry) ([]byte, error) {
	if entry == nil {
		return nil, fmt.Errorf("%w: nil entry", ErrInvalidEntry)
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalEntry decodes an entry written by MarshalEntry.
func UnmarshalEntry(data []byte) (*core.CacheEntry, error) {
	var entry core.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &entry, nil
}

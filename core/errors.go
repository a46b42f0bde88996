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

import "errors"

// Domain validation errors
var (
	// ErrUnknownEntityType indicates a type discriminator outside the known set.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrInvalidParsedRecord indicates a parsed record failed validation.
	ErrInvalidParsedRecord = errors.New("invalid parsed record")

	// ErrEmptyName indicates the name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidChunk indicates a chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyContent indicates a chunk's content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidCacheEntry indicates a cache entry failed validation.
	ErrInvalidCacheEntry = errors.New("invalid cache entry")

	// ErrInvalidNumber indicates a numeric field could not be parsed.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrEmptySourceID indicates the source identifier is empty.
	ErrEmptySourceID = errors.New("source id cannot be empty")
)

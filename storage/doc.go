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

// Package storage provides the persistence layer for the normalization cache.
//
// CacheStore decouples the cache state machine from where the metadata index
// and entries live. Two backends are provided:
//
//   - storage/file: the on-disk layout, index.json plus entries/<hash>.json
//   - storage/badger: a BadgerDB store, index encoded with the mus serializer
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.CacheStore interface to enforce
// abstraction:
//
//	store, err := file.NewStore(dir)     // returns storage.CacheStore
//	store, err := badger.NewCacheStore(path)
//
// # Atomicity
//
// SaveIndex and WriteEntry replace the stored value in one step. The file
// backend writes to a temp file and renames it; the badger backend commits a
// single transaction.
//
// # Thread Safety
//
// All implementations must be safe for concurrent use.
package storage

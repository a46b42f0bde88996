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
// Package search indexes normalized chunks in a bleve full-text index.
//
// Chunks are indexed with their content, name, type, section and tags.
// Queries match content and name; type and tag filters narrow the hits,
// and chunks containing every query word get a verbatim boost on top of
// the bleve score. Vector querying is left to external indexes that
// consume the embedding output.
package search

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

// Package ai provides abstractions for the embedding model used by nightdex.
//
// The package defines the Embedder, Pipeline and PipelineLoader interfaces
// and the Config that selects an execution device. Callers depend on these
// abstractions rather than on a concrete model runtime.
//
// # Implementation Packages
//
//   - ai/openai: Production loader using OpenAI-compatible embedding APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Device Selection
//
// Config.Device is cpu, gpu or auto. Config.Candidates lists the devices a
// generator should try in order: a gpu preference falls back to cpu unless
// StrictDevice is set, and auto only tries gpu when GPUEmbeddingHost is
// configured. Each device gets its own InferenceOptions (fp32 on cpu, fp16
// on gpu by default).
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewLoader) return INTERFACE types to enforce
// abstraction. Test utility constructors (mock.NewMockPipeline,
// mock.NewMockLoader) return CONCRETE types to enable test assertions and
// behavior injection via function fields and call counters.
//
// # Usage Example
//
//	cfg, err := ai.ConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loader, err := openai.NewLoader(cfg)
//	pipeline, err := loader.Load(ctx, ai.DeviceCPU, cfg.InferenceOptionsFor(ai.DeviceCPU))
//	defer pipeline.Close()
//
//	vector, err := pipeline.EmbedText(ctx, "Gladius is a Night Lord.")
package ai

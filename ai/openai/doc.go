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

// Package openai provides the embedding pipeline loader for
// OpenAI-compatible APIs.
//
// The loader uses the langchaingo library to talk to OpenAI or to a
// compatible service (Ollama, LocalAI, vLLM). CPU and GPU are modelled as
// two hosts: ai.Config.EmbeddingHost and ai.Config.GPUEmbeddingHost.
// ai.InferenceOptions have no effect on a remote host and are only logged.
//
// # Usage
//
//	cfg := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434"), // /v1 added automatically
//	    ai.WithGPUEmbeddingHost("http://gpu-box:8080"),
//	    ai.WithDevice(ai.DeviceAuto),
//	)
//
//	loader, err := openai.NewLoader(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gen := embedding.NewGenerator(cfg, loader)
package openai

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

package ai

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvDevice           = "NIGHTDEX_DEVICE"
	EnvEmbeddingHost    = "NIGHTDEX_EMBEDDING_HOST"
	EnvGPUEmbeddingHost = "NIGHTDEX_GPU_EMBEDDING_HOST"
	EnvEmbeddingModel   = "NIGHTDEX_EMBEDDING_MODEL"
	EnvDType            = "NIGHTDEX_DTYPE"
	EnvThreads          = "NIGHTDEX_THREADS"
)

// Config holds configuration for the embedding pipeline.
type Config struct {
	// EmbeddingHost is the base URL of the CPU embedding service.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// GPUEmbeddingHost is the base URL of a GPU-backed embedding service.
	// Empty means no GPU is available; "auto" then resolves to CPU.
	GPUEmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// Device selects cpu, gpu or auto. GPU is a preference: when the GPU
	// pipeline cannot be loaded the generator falls back to CPU unless
	// StrictDevice is set.
	// Default: auto
	Device Device

	// StrictDevice turns a failed GPU load into an error instead of a
	// CPU fallback.
	StrictDevice bool

	// DType overrides the per-device precision default.
	DType string

	// Threads caps inference threads. Zero uses the runtime default.
	Threads int

	// NormalizeVectors L2-normalizes every returned vector.
	// Default: true
	NormalizeVectors bool

	// BatchSize is the number of texts sent to the model per call.
	// Default: 32
	BatchSize int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the CPU embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithGPUEmbeddingHost sets the GPU embedding service host URL.
func WithGPUEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.GPUEmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithDevice sets the preferred execution device.
func WithDevice(d Device) ConfigOption {
	return func(c *Config) {
		c.Device = d
	}
}

// WithStrictDevice disables the CPU fallback when the GPU pipeline fails.
func WithStrictDevice(strict bool) ConfigOption {
	return func(c *Config) {
		c.StrictDevice = strict
	}
}

// WithInferenceOptions overrides the precision and thread count.
func WithInferenceOptions(opts InferenceOptions) ConfigOption {
	return func(c *Config) {
		c.DType = opts.DType
		c.Threads = opts.Threads
	}
}

// WithNormalizeVectors toggles L2 normalization of returned vectors.
func WithNormalizeVectors(normalize bool) ConfigOption {
	return func(c *Config) {
		c.NormalizeVectors = normalize
	}
}

// WithBatchSize sets the number of texts per model call.
func WithBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.BatchSize = size
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible service on CPU.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:    "http://localhost:11434/v1",
		EmbeddingModel:   "embeddinggemma",
		Device:           DeviceAuto,
		NormalizeVectors: true,
		BatchSize:        32,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithEmbeddingHost("http://localhost:11434/v1"),
//	    WithGPUEmbeddingHost("http://gpu-box:8080/v1"),
//	    WithDevice(DeviceGPU),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ConfigFromEnv returns DefaultConfig with the NIGHTDEX_* environment
// variables applied.
func ConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup has the
// signature of os.LookupEnv; unset variables leave fields untouched.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDevice); ok {
		d, err := ParseDevice(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDevice, err)
		}
		c.Device = d
	}
	if v, ok := lookup(EnvEmbeddingHost); ok && v != "" {
		c.EmbeddingHost = v
	}
	if v, ok := lookup(EnvGPUEmbeddingHost); ok {
		c.GPUEmbeddingHost = v
	}
	if v, ok := lookup(EnvEmbeddingModel); ok && v != "" {
		c.EmbeddingModel = v
	}
	if v, ok := lookup(EnvDType); ok {
		c.DType = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvThreads); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvThreads, err)
		}
		c.Threads = n
	}
	return nil
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	c.EmbeddingHost = withV1(c.EmbeddingHost)
	c.GPUEmbeddingHost = withV1(c.GPUEmbeddingHost)
	if c.Device == "" {
		c.Device = DeviceAuto
	}
	c.DType = strings.ToLower(strings.TrimSpace(c.DType))
}

func withV1(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	// Remove trailing slash if present before adding /v1
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return fmt.Errorf("%w: EmbeddingHost is required", ErrInvalidConfig)
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("%w: EmbeddingModel is required", ErrInvalidConfig)
	}
	if _, err := ParseDevice(string(c.Device)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Device == DeviceGPU && c.GPUEmbeddingHost == "" {
		return fmt.Errorf("%w: GPUEmbeddingHost is required for device gpu", ErrInvalidConfig)
	}
	if c.DType != "" && !slices.Contains([]string{DTypeFP32, DTypeFP16, DTypeQ8}, c.DType) {
		return fmt.Errorf("%w: unsupported dtype %q", ErrInvalidConfig, c.DType)
	}
	if c.Threads < 0 {
		return fmt.Errorf("%w: Threads cannot be negative", ErrInvalidConfig)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: BatchSize must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// HostFor returns the service URL for a concrete device.
func (c *Config) HostFor(d Device) string {
	if d == DeviceGPU {
		return c.GPUEmbeddingHost
	}
	return c.EmbeddingHost
}

// InferenceOptionsFor returns the device defaults with any configured
// overrides applied.
func (c *Config) InferenceOptionsFor(d Device) InferenceOptions {
	opts := DefaultInferenceOptions(d)
	if c.DType != "" {
		opts.DType = c.DType
	}
	if c.Threads > 0 {
		opts.Threads = c.Threads
	}
	return opts
}

// Candidates returns the devices to try, in order, for the configured
// preference.
func (c *Config) Candidates() []Device {
	switch c.Device {
	case DeviceCPU:
		return []Device{DeviceCPU}
	case DeviceGPU:
		if c.StrictDevice {
			return []Device{DeviceGPU}
		}
		return []Device{DeviceGPU, DeviceCPU}
	default:
		if c.GPUEmbeddingHost == "" {
			return []Device{DeviceCPU}
		}
		return []Device{DeviceGPU, DeviceCPU}
	}
}

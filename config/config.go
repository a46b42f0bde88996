package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/nightdex/ai"
)

// Store backends for the cache.
const (
	StoreFile   = "file"
	StoreBadger = "badger"
)

// Environment variables read by ApplyEnv, in addition to the ai.Env*
// embedding variables.
const (
	EnvCacheDir = "NIGHTDEX_CACHE_DIR"
	EnvStore    = "NIGHTDEX_STORE"
	EnvWorkers  = "NIGHTDEX_WORKERS"
	EnvLogLevel = "NIGHTDEX_LOG_LEVEL"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full nightdex configuration.
type Config struct {
	LogLevel  string          `toml:"log_level"`
	Cache     CacheConfig     `toml:"cache"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
}

type CacheConfig struct {
	Dir   string `toml:"dir"`
	Store string `toml:"store"`
}

type EmbeddingConfig struct {
	Host      string `toml:"host"`
	GPUHost   string `toml:"gpu_host"`
	Model     string `toml:"model"`
	Device    string `toml:"device"`
	Strict    bool   `toml:"strict_device"`
	DType     string `toml:"dtype"`
	Threads   int    `toml:"threads"`
	Normalize bool   `toml:"normalize"`
	BatchSize int    `toml:"batch_size"`
}

type PipelineConfig struct {
	Workers int `toml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	aiCfg := ai.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Cache: CacheConfig{
			Dir:   ".nightdex/cache",
			Store: StoreFile,
		},
		Embedding: embeddingFromAI(aiCfg),
	}
}

// Load returns Default overlaid with the TOML file at path. An empty path
// skips the file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := cfg.Decode(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML from r onto c. Keys absent from r keep their
// current values.
func (c *Config) Decode(r io.Reader) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(c)
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	return enc.Encode(c)
}

// ApplyEnv overrides fields from the environment. lookup has the
// signature of os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		c.Cache.Dir = v
	}
	if v, ok := lookup(EnvStore); ok && v != "" {
		c.Cache.Store = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Pipeline.Workers = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}

	aiCfg := c.AIConfig()
	if err := aiCfg.ApplyEnv(lookup); err != nil {
		return err
	}
	c.Embedding = embeddingFromAI(aiCfg)
	return nil
}

// Validate checks the cache and pipeline settings and the embedding
// settings via ai.Config.Validate.
func (c *Config) Validate() error {
	switch c.Cache.Store {
	case StoreFile, StoreBadger:
	default:
		return fmt.Errorf("%w: unknown cache store %q", ErrInvalidConfig, c.Cache.Store)
	}
	if c.Cache.Dir == "" {
		return fmt.Errorf("%w: cache dir is required", ErrInvalidConfig)
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if err := c.AIConfig().Validate(); err != nil {
		return fmt.Errorf("%w: embedding: %w", ErrInvalidConfig, err)
	}
	return nil
}

// AIConfig converts the embedding table to an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	e := c.Embedding
	return &ai.Config{
		EmbeddingHost:    e.Host,
		GPUEmbeddingHost: e.GPUHost,
		EmbeddingModel:   e.Model,
		Device:           ai.Device(strings.ToLower(strings.TrimSpace(e.Device))),
		StrictDevice:     e.Strict,
		DType:            e.DType,
		Threads:          e.Threads,
		NormalizeVectors: e.Normalize,
		BatchSize:        e.BatchSize,
	}
}

func embeddingFromAI(a *ai.Config) EmbeddingConfig {
	return EmbeddingConfig{
		Host:      a.EmbeddingHost,
		GPUHost:   a.GPUEmbeddingHost,
		Model:     a.EmbeddingModel,
		Device:    string(a.Device),
		Strict:    a.StrictDevice,
		DType:     a.DType,
		Threads:   a.Threads,
		Normalize: a.NormalizeVectors,
		BatchSize: a.BatchSize,
	}
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/nightdex/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, StoreFile, cfg.Cache.Store)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Embedding.Normalize)
	assert.Equal(t, 32, cfg.Embedding.BatchSize)
	require.NoError(t, cfg.Validate())

	aiCfg := cfg.AIConfig()
	assert.Equal(t, ai.DefaultConfig().EmbeddingModel, aiCfg.EmbeddingModel)
	assert.Equal(t, ai.DeviceAuto, aiCfg.Device)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nightdex.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[cache]
dir = "/var/cache/nightdex"
store = "badger"

[embedding]
gpu_host = "http://gpu-box:8080"
device = "gpu"
batch_size = 8

[pipeline]
workers = 6
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/cache/nightdex", cfg.Cache.Dir)
	assert.Equal(t, StoreBadger, cfg.Cache.Store)
	assert.Equal(t, 6, cfg.Pipeline.Workers)
	assert.Equal(t, 8, cfg.Embedding.BatchSize)
	assert.Equal(t, "embeddinggemma", cfg.Embedding.Model, "absent keys keep defaults")
	assert.True(t, cfg.Embedding.Normalize)
	require.NoError(t, cfg.Validate())

	aiCfg := cfg.AIConfig()
	require.NoError(t, aiCfg.Validate())
	assert.Equal(t, "http://gpu-box:8080/v1", aiCfg.GPUEmbeddingHost)
	assert.Equal(t, []ai.Device{ai.DeviceGPU, ai.DeviceCPU}, aiCfg.Candidates())
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, os.IsNotExist(err))

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache]\ncolour = \"blue\"\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err, "unknown keys are rejected")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "from-file"
	cfg.Embedding.Model = "from-file"

	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvCacheDir:          "from-env",
		EnvStore:             " Badger ",
		EnvWorkers:           "3",
		EnvLogLevel:          "warn",
		ai.EnvEmbeddingModel: "nomic-embed-text",
		ai.EnvDevice:         "cpu",
		ai.EnvThreads:        "4",
	}))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Cache.Dir)
	assert.Equal(t, StoreBadger, cfg.Cache.Store)
	assert.Equal(t, 3, cfg.Pipeline.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, "cpu", cfg.Embedding.Device)
	assert.Equal(t, 4, cfg.Embedding.Threads)
}

func TestApplyEnv_Errors(t *testing.T) {
	assert.Error(t, Default().ApplyEnv(envMap(map[string]string{EnvWorkers: "many"})))
	assert.ErrorIs(t, Default().ApplyEnv(envMap(map[string]string{ai.EnvDevice: "tpu"})), ai.ErrInvalidDevice)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown store", func(c *Config) { c.Cache.Store = "redis" }},
		{"empty dir", func(c *Config) { c.Cache.Dir = "" }},
		{"negative workers", func(c *Config) { c.Pipeline.Workers = -1 }},
		{"zero batch size", func(c *Config) { c.Embedding.BatchSize = 0 }},
		{"gpu without host", func(c *Config) { c.Embedding.Device = "gpu" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	cfg := Default()
	cfg.Embedding.BatchSize = 0
	assert.ErrorIs(t, cfg.Validate(), ai.ErrInvalidConfig)
}

func TestEncodeDecode(t *testing.T) {
	cfg := Default()
	cfg.Cache.Store = StoreBadger
	cfg.Pipeline.Workers = 2

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	assert.Contains(t, buf.String(), "[cache]")
	assert.Contains(t, buf.String(), "badger")

	got := Default()
	require.NoError(t, got.Decode(strings.NewReader(buf.String())))
	assert.Equal(t, cfg, got)
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/nightdex"
	"github.com/poiesic/nightdex/ai"
	"github.com/poiesic/nightdex/config"
	"github.com/poiesic/nightdex/core"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func newApp() *cli.App {
	return &cli.App{
		Name:  "nightdex",
		Usage: "Normalize, chunk and embed Nightreign game entities",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "normalize",
				Usage:  "Normalize JSON Lines records into the cache",
				Action: normalizeCommand,
				Flags: append(cacheFlags(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "JSON Lines file of {sourceId, source, record} (- for stdin)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Reprocess every record regardless of the cache",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size (0 uses half the CPUs)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
				),
			},
			{
				Name:   "embed",
				Usage:  "Embed every cached chunk",
				Action: embedCommand,
				Flags: append(cacheFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write embeddings as JSON Lines to this file (- for stdout)",
					},
					&cli.StringFlag{
						Name:  "vectors",
						Usage: "Write embeddings to a BadgerDB vector store at this directory",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Only embed entries of this entity type",
					},
					&cli.StringFlag{
						Name:  "device",
						Usage: "Inference device (cpu, gpu, auto)",
					},
					&cli.BoolFlag{
						Name:  "strict-device",
						Usage: "Fail instead of falling back to CPU when the GPU is unavailable",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
					},
					&cli.StringFlag{
						Name:  "gpu-embedding-host",
						Usage: "GPU embedding service host URL",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks sent to the model per call",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
				),
			},
			{
				Name:   "index",
				Usage:  "Index cached chunks for full-text search",
				Action: indexCommand,
				Flags: append(cacheFlags(),
					indexFlag(),
					&cli.StringFlag{
						Name:  "type",
						Usage: "Only index entries of this entity type",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search indexed chunks",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					indexFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
					&cli.StringSliceFlag{
						Name:  "type",
						Usage: "Only return chunks of these entity types",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Only return chunks carrying every given tag",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show cache statistics",
				Action: statsCommand,
				Flags:  cacheFlags(),
			},
			{
				Name:   "clear",
				Usage:  "Delete every cached entry",
				Action: clearCommand,
				Flags:  cacheFlags(),
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration as TOML",
				Action: configCommand,
			},
		},
	}
}

func cacheFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			Aliases: []string{"d"},
			Usage:   "Cache directory",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Cache backend (file, badger)",
		},
	}
}

func indexFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "index",
		Usage:    "Path to the bleve index directory",
		Required: true,
	}
}

// setup loads the configuration and installs the logger. Precedence is
// defaults, file, environment, then flags.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[configKey] = cfg
	return setupLogger(cfg.LogLevel, c.App.ErrWriter)
}

func setupLogger(levelStr string, w io.Writer) error {
	level, err := parseLevel(levelStr)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stderr
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	// Normalize to lowercase
	levelStr := strings.ToLower(strings.TrimSpace(s))

	switch levelStr {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
}

// commandConfig returns the loaded configuration with this command's
// flags applied.
func commandConfig(c *cli.Context) (*config.Config, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}
	if c.IsSet("cache") {
		cfg.Cache.Dir = c.String("cache")
	}
	if c.IsSet("store") {
		cfg.Cache.Store = strings.ToLower(c.String("store"))
	}
	if c.IsSet("workers") {
		cfg.Pipeline.Workers = c.Int("workers")
	}
	if c.IsSet("device") {
		cfg.Embedding.Device = c.String("device")
	}
	if c.IsSet("strict-device") {
		cfg.Embedding.Strict = c.Bool("strict-device")
	}
	if c.IsSet("embedding-host") {
		cfg.Embedding.Host = c.String("embedding-host")
	}
	if c.IsSet("gpu-embedding-host") {
		cfg.Embedding.GPUHost = c.String("gpu-embedding-host")
	}
	if c.IsSet("embedding-model") {
		cfg.Embedding.Model = c.String("embedding-model")
	}
	if c.IsSet("batch-size") {
		cfg.Embedding.BatchSize = c.Int("batch-size")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDatabase opens the configured cache. Extra options let tests swap
// the embedding loader.
var databaseOptions []nightdex.DatabaseOption

func openDatabase(ctx context.Context, cfg *config.Config, aiCfg *ai.Config) (*nightdex.Database, error) {
	opts := append([]nightdex.DatabaseOption{
		nightdex.WithStore(cfg.Cache.Store),
		nightdex.WithAIConfig(aiCfg),
	}, databaseOptions...)
	db, err := nightdex.Open(ctx, cfg.Cache.Dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", cfg.Cache.Dir, err)
	}
	return db, nil
}

// cachedEntries returns every current success, or those of one type.
func cachedEntries(ctx context.Context, db *nightdex.Database, typeName string) ([]*core.CacheEntry, error) {
	if typeName == "" {
		return db.Cache().All(ctx)
	}
	t, err := core.ParseEntityType(typeName)
	if err != nil {
		return nil, err
	}
	return db.Cache().AllByType(ctx, t)
}

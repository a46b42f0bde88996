package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/poiesic/nightdex"
	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/ingestion"
	"github.com/poiesic/nightdex/search"
	"github.com/poiesic/nightdex/storage/badger"
	"github.com/urfave/cli/v2"
)

func normalizeCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := commandConfig(c)
	if err != nil {
		return err
	}

	inputs, err := readInputs(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	db, err := openDatabase(ctx, cfg, cfg.AIConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []ingestion.Option
	if cfg.Pipeline.Workers > 0 {
		opts = append(opts, ingestion.WithPoolSize(cfg.Pipeline.Workers))
	}
	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	errOut := c.App.ErrWriter
	fmt.Fprintf(errOut, "Cache: %s (%s)\n", cfg.Cache.Dir, cfg.Cache.Store)
	fmt.Fprintf(errOut, "Records: %d\n", len(inputs))

	tracker := ingestion.NewProgressTracker(errOut, "normalize", "records", c.Int("report-interval"))
	tracker.Start(len(inputs))
	summary, err := pipeline.Run(ctx, inputs, &ingestion.RunOptions{
		Force:      c.Bool("force"),
		OnProgress: tracker.Update,
	})
	tracker.Finish()
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	out := c.App.Writer
	fmt.Fprintf(out, "processed=%d succeeded=%d skipped=%d failed=%d fallback=%d elapsed=%s\n",
		summary.Processed, summary.Succeeded, summary.Skipped, summary.Failed,
		len(summary.NeedsFallback), summary.Elapsed.Round(time.Millisecond))
	for _, f := range summary.Failures {
		fmt.Fprintf(out, "failed %s [%s %q]: %v\n", f.SourceID, f.Type, f.Name, f.Err)
	}
	for _, id := range summary.NeedsFallback {
		fmt.Fprintf(out, "fallback %s\n", id)
	}
	return nil
}

func readInputs(path string) ([]ingestion.Input, error) {
	if path == "-" {
		return ingestion.DecodeInputs(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingestion.DecodeInputs(f)
}

func embedCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := commandConfig(c)
	if err != nil {
		return err
	}
	output, vectorsDir := c.String("output"), c.String("vectors")
	if (output == "") == (vectorsDir == "") {
		return fmt.Errorf("exactly one of --output or --vectors is required")
	}

	aiCfg := cfg.AIConfig()
	db, err := openDatabase(ctx, cfg, aiCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := cachedEntries(ctx, db, c.String("type"))
	if err != nil {
		return err
	}

	var sink ingestion.Sink
	if vectorsDir != "" {
		vectors, err := badger.OpenVectorStore(vectorsDir)
		if err != nil {
			return fmt.Errorf("failed to open vector store: %w", err)
		}
		defer vectors.Close()
		sink = nightdex.VectorSink(vectors)
	} else {
		w, closeFn, err := openOutput(c, output)
		if err != nil {
			return err
		}
		defer closeFn()
		sink = ingestion.NewJSONLSink(w)
	}

	embedder, err := db.NewEmbedder()
	if err != nil {
		return err
	}

	errOut := c.App.ErrWriter
	fmt.Fprintf(errOut, "Cache: %s (%s)\n", cfg.Cache.Dir, cfg.Cache.Store)
	fmt.Fprintf(errOut, "Embedding host: %s\n", aiCfg.EmbeddingHost)
	if aiCfg.GPUEmbeddingHost != "" {
		fmt.Fprintf(errOut, "GPU embedding host: %s\n", aiCfg.GPUEmbeddingHost)
	}
	fmt.Fprintf(errOut, "Embedding model: %s\n", aiCfg.EmbeddingModel)
	fmt.Fprintf(errOut, "Device: %s\n", aiCfg.Device)
	fmt.Fprintln(errOut)

	tracker := ingestion.NewProgressTracker(errOut, "embed", "chunks", c.Int("report-interval"))
	tracker.Start(0)
	summary, err := embedder.Run(ctx, entries, sink, tracker.Update)
	tracker.Finish()
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	fmt.Fprintf(errOut, "entries=%d chunks=%d embedded=%d failed=%d device=%s elapsed=%s\n",
		summary.Entries, summary.Chunks, summary.Embedded, len(summary.Failures),
		db.Generator().Device(), summary.Elapsed.Round(time.Millisecond))
	for _, f := range summary.Failures {
		fmt.Fprintf(errOut, "failed %s: %v\n", f.ChunkID, f.Err)
	}
	return nil
}

func openOutput(c *cli.Context, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return c.App.Writer, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, f.Close, nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := commandConfig(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg, cfg.AIConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := cachedEntries(ctx, db, c.String("type"))
	if err != nil {
		return err
	}

	index, err := search.OpenIndex(c.String("index"))
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	searcher, err := db.NewSearcher(index)
	if err != nil {
		index.Close()
		return err
	}
	defer searcher.Close()

	n, err := searcher.Index(ctx, entries)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	total, err := searcher.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "indexed=%d entries=%d total=%d\n", n, len(entries), total)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()
	query := strings.Join(c.Args().Slice(), " ")

	var opts []search.QueryOption
	for _, name := range c.StringSlice("type") {
		t, err := core.ParseEntityType(name)
		if err != nil {
			return err
		}
		opts = append(opts, search.WithTypes(t))
	}
	if tags := c.StringSlice("tag"); len(tags) > 0 {
		opts = append(opts, search.WithTags(tags...))
	}

	index, err := search.OpenIndex(c.String("index"))
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	searcher, err := search.NewSearcher(index)
	if err != nil {
		index.Close()
		return err
	}
	defer searcher.Close()

	results, err := searcher.Search(ctx, query, c.Int("limit"), opts...)
	if err != nil {
		return err
	}
	out := c.App.Writer
	for i, r := range results {
		fmt.Fprintf(out, "%d. %s (%.3f) %s\n", i+1, r.ChunkID, r.Score, r.SourceID)
		fmt.Fprintf(out, "   %s\n", r.Content)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := commandConfig(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg, cfg.AIConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.Cache().Stats(ctx)
	if err != nil {
		return err
	}
	out := c.App.Writer
	fmt.Fprintf(out, "Cache: %s (%s)\n", cfg.Cache.Dir, cfg.Cache.Store)
	fmt.Fprintf(out, "Schema version: %d\n", db.Cache().SchemaVersion())
	fmt.Fprintf(out, "Total: %d\n", stats.Total)
	fmt.Fprintf(out, "Successful: %d\n", stats.Successful)
	fmt.Fprintf(out, "Failed: %d\n", stats.Failed)
	fmt.Fprintf(out, "Outdated schema: %d\n", stats.OutdatedSchema)
	fmt.Fprintf(out, "Total bytes: %d\n", stats.TotalBytes)
	return nil
}

func clearCommand(c *cli.Context) error {
	ctx := context.Background()
	cfg, err := commandConfig(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg, cfg.AIConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Cache().Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Cleared %s\n", cfg.Cache.Dir)
	return nil
}

func configCommand(c *cli.Context) error {
	cfg, err := commandConfig(c)
	if err != nil {
		return err
	}
	return cfg.Encode(c.App.Writer)
}

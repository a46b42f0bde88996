package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/poiesic/nightdex/core"
)

const (
	defaultBatchSize = 100
	verbatimBoost    = 0.3
	nameBoost        = 2.0
	maxChunksPerID   = 1000
)

// Result is one chunk hit.
type Result struct {
	ChunkID  string
	SourceID string
	Type     core.EntityType
	Name     string
	Section  core.Section
	Content  string
	Tags     []string
	Score    float64
}

// Searcher indexes chunks in a bleve index and queries them.
type Searcher struct {
	index     bleve.Index
	batchSize int
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "search")
		return nil
	}
}

// WithBatchSize sets how many chunks are written per bleve batch.
func WithBatchSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		s.batchSize = size
		return nil
	}
}

// NewIndexMapping returns the chunk document mapping: content and name are
// English text, everything else is an exact keyword.
func NewIndexMapping() mapping.IndexMapping {
	textField := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = en.AnalyzerName
		return f
	}

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("content", textField())
	doc.AddFieldMappingsAt("name", textField())
	for _, field := range []string{"type", "section", "tags", "sourceId"} {
		doc.AddFieldMappingsAt(field, bleve.NewKeywordFieldMapping())
	}

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	im.DefaultAnalyzer = en.AnalyzerName
	return im
}

// OpenIndex opens the bleve index at path, creating it if it does not exist.
func OpenIndex(path string) (bleve.Index, error) {
	index, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		return bleve.New(path, NewIndexMapping())
	}
	return index, err
}

// NewMemIndex creates an in-memory index, useful for tests.
func NewMemIndex() (bleve.Index, error) {
	return bleve.NewMemOnly(NewIndexMapping())
}

// NewSearcher creates a searcher over index. The searcher owns the index and
// closes it on Close.
func NewSearcher(index bleve.Index, opts ...Option) (*Searcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}

	s := &Searcher{
		index:     index,
		batchSize: defaultBatchSize,
		logger:    slog.Default().With("component", "search"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Index adds every chunk of entries, replacing chunks previously indexed
// for the same source ids. Returns the number of chunks written.
func (s *Searcher) Index(ctx context.Context, entries []*core.CacheEntry) (int, error) {
	batch := s.index.NewBatch()
	indexed := 0

	flush := func() error {
		if batch.Size() == 0 {
			return nil
		}
		if err := s.index.Batch(batch); err != nil {
			s.logger.Error("failed to write index batch", "size", batch.Size(), "err", err)
			return err
		}
		batch.Reset()
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		if entry == nil {
			continue
		}

		stale, err := s.chunkIDs(ctx, entry.SourceID)
		if err != nil {
			return indexed, err
		}
		for _, c := range entry.Chunks {
			id := c.ID(entry.SourceID)
			delete(stale, id)
			if err := batch.Index(id, document(entry.SourceID, c)); err != nil {
				return indexed, err
			}
			indexed++
		}
		for id := range stale {
			batch.Delete(id)
		}

		if batch.Size() >= s.batchSize {
			if err := flush(); err != nil {
				return indexed, err
			}
		}
	}
	if err := flush(); err != nil {
		return indexed, err
	}

	s.logger.Info("indexed chunks", "entries", len(entries), "chunks", indexed)
	return indexed, nil
}

// Remove deletes every chunk indexed for sourceID.
func (s *Searcher) Remove(ctx context.Context, sourceID string) error {
	ids, err := s.chunkIDs(ctx, sourceID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	batch := s.index.NewBatch()
	for id := range ids {
		batch.Delete(id)
	}
	return s.index.Batch(batch)
}

// Count returns the number of indexed chunks.
func (s *Searcher) Count() (uint64, error) {
	return s.index.DocCount()
}

// Close closes the underlying index.
func (s *Searcher) Close() error {
	return s.index.Close()
}

// Search returns up to limit chunks matching q, best first.
func (s *Searcher) Search(ctx context.Context, q string, limit int, opts ...QueryOption) ([]*Result, error) {
	return s.SearchWithMonitor(ctx, q, limit, nil, opts...)
}

// SearchWithMonitor is Search with callbacks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, q string, limit int, monitor SearchMonitor, opts ...QueryOption) ([]*Result, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	qo := &queryOptions{}
	for _, opt := range opts {
		opt(qo)
	}
	bq, err := buildQuery(q, qo)
	if err != nil {
		return nil, err
	}

	monitor.Start(q)

	// Over-fetch so the verbatim boost can reorder near-ties.
	req := bleve.NewSearchRequestOptions(bq, limit*2, 0, false)
	req.Fields = []string{"content", "name", "type", "section", "tags", "sourceId"}
	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		s.logger.Error("search failed", "query", q, "err", err)
		return nil, err
	}
	monitor.AfterQuery(res.Total, len(res.Hits))

	results := make([]*Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r := &Result{
			ChunkID:  hit.ID,
			SourceID: fieldString(hit.Fields, "sourceId"),
			Type:     core.EntityType(fieldString(hit.Fields, "type")),
			Name:     fieldString(hit.Fields, "name"),
			Section:  core.Section(fieldString(hit.Fields, "section")),
			Content:  fieldString(hit.Fields, "content"),
			Tags:     fieldStrings(hit.Fields, "tags"),
			Score:    hit.Score,
		}
		if q != "" && containsAllQueryWords(r.Name+" "+r.Content, q) {
			r.Score += verbatimBoost
			monitor.VerbatimHit(r)
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	monitor.Finish(results)

	s.logger.Debug("search complete", "query", q, "total", res.Total, "returned", len(results))
	return results, nil
}

// chunkIDs returns the ids of chunks currently indexed for sourceID.
func (s *Searcher) chunkIDs(ctx context.Context, sourceID string) (map[string]struct{}, error) {
	tq := bleve.NewTermQuery(sourceID)
	tq.SetField("sourceId")
	req := bleve.NewSearchRequestOptions(tq, maxChunksPerID, 0, false)
	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(res.Hits))
	for _, hit := range res.Hits {
		ids[hit.ID] = struct{}{}
	}
	return ids, nil
}

func buildQuery(q string, qo *queryOptions) (query.Query, error) {
	var must []query.Query
	if q != "" {
		content := bleve.NewMatchQuery(q)
		content.SetField("content")
		name := bleve.NewMatchQuery(q)
		name.SetField("name")
		name.SetBoost(nameBoost)
		must = append(must, bleve.NewDisjunctionQuery(content, name))
	}
	if len(qo.types) > 0 {
		var anyOf []query.Query
		for _, t := range qo.types {
			tq := bleve.NewTermQuery(string(t))
			tq.SetField("type")
			anyOf = append(anyOf, tq)
		}
		must = append(must, bleve.NewDisjunctionQuery(anyOf...))
	}
	if qo.section != "" {
		sq := bleve.NewTermQuery(string(qo.section))
		sq.SetField("section")
		must = append(must, sq)
	}
	for _, tag := range qo.tags {
		tq := bleve.NewTermQuery(tag)
		tq.SetField("tags")
		must = append(must, tq)
	}

	switch len(must) {
	case 0:
		return nil, ErrEmptyQuery
	case 1:
		return must[0], nil
	default:
		return bleve.NewConjunctionQuery(must...), nil
	}
}

func document(sourceID string, c core.Chunk) map[string]any {
	return map[string]any{
		"sourceId": sourceID,
		"type":     string(c.Type),
		"name":     c.Name,
		"section":  string(c.Section),
		"content":  c.Content,
		"tags":     c.Tags,
	}
}

func fieldString(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

// fieldStrings reads a multi-valued stored field; bleve returns a bare
// string when only one value was indexed.
func fieldStrings(fields map[string]any, name string) []string {
	switch v := fields[name].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

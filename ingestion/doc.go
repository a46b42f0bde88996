// Package ingestion orchestrates batch runs of the normalization pipeline.
//
// Pipeline.Run takes a batch of inputs (source id, raw source, parsed
// record) and, for each one:
//   - asks the cache whether the source needs normalization
//   - normalizes it with the engine
//   - stores the result, or the failure, in the cache
//
// Records are processed concurrently on an ants worker pool. A failing
// record never aborts the batch; its cause is reported in the Summary.
//
// Embedder.Run takes cached entries, embeds every chunk through a batch
// embedder and hands the vectors to a Sink. A model load failure aborts the
// run, since no chunk could be embedded without it.
package ingestion

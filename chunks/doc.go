// Package chunks slices normalized records into retrieval chunks.
//
// Each builder returns a lazy, restartable iter.Seq. The overview chunk is
// always first and always present; other sections are emitted only when
// they render to non-blank text. Builders leave Tags empty for the caller
// to fill.
package chunks

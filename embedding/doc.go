// Package embedding turns chunk text into vectors.
//
// A Generator owns one loaded ai.Pipeline. The pipeline is loaded lazily on
// first use, concurrent first calls share a single load, and Dispose
// releases it so the next call loads again. Device selection follows
// ai.Config: GPU is tried first when configured and a failed GPU load falls
// back to CPU with a warning unless the config is strict.
//
// The package also holds the vector utilities used by storage and search
// consumers: byte conversion, cosine similarity and L2 normalization.
package embedding

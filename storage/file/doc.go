// Package file implements storage.CacheStore on the local filesystem.
//
// The layout is an index.json holding every source id's metadata and an
// entries directory with one JSON file per successful normalization, named
// by the hex content id of the source id. Files are replaced by rename so a
// crash never leaves a half-written index or entry behind.
package file

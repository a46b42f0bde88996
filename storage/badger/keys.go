package badger

import (
	"github.com/poiesic/nightdex/core"
)

// Key prefixes for different data types
const (
	cacheIndexKey     = "cacheidx"
	cacheEntryPrefix  = "cacheent:"
	chunkVectorPrefix = "chunkvec:"
)

// makeEntryKey generates the key of a cache entry. The source id is hashed
// the same way the file store names entry files.
func makeEntryKey(sourceID string) []byte {
	return []byte(cacheEntryPrefix + core.IDFromContent(sourceID).Hex())
}

// makeVectorKey generates the key of a chunk vector.
// Format: prefix<chunk id>
func makeVectorKey(chunkID string) []byte {
	return []byte(chunkVectorPrefix + chunkID)
}

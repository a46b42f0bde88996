package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// ID is a 64-bit content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Hex returns the zero-padded hexadecimal form of id.
func (id ID) Hex() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// HashContent returns the hex BLAKE2b-256 digest of the exact source bytes.
func HashContent(source []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}

// CacheFileName returns the entry file name for a source id.
func CacheFileName(sourceID string) string {
	return IDFromContent(sourceID).Hex() + ".json"
}

package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheEntryJSON(t *testing.T) {
	boss := &Boss{
		Header:     NewHeader(EntityBoss, "Gladius"),
		BossFields: BossFields{Category: "Night Lord", Stance: NewNumber(160)},
	}
	boss.SetTags([]string{"high-stance", "night-lord"})

	entry := CacheEntry{
		SourceID:    "https://example.com/gladius",
		ContentType: EntityBoss,
		Data:        boss,
		Chunks: []Chunk{{
			Type: EntityBoss, Name: "Gladius", Section: SectionOverview,
			Content: "Gladius is a Night Lord.", Tags: []string{"night-lord"},
		}},
		SourceHash:    HashContent([]byte("<html>")),
		SchemaVersion: SchemaVersion,
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Model:         "embeddinggemma",
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"contentType":"boss"`)
	assert.Contains(t, string(data), `"tags":["high-stance","night-lord"]`)

	var decoded CacheEntry
	require.NoError(t, json.Unmarshal(data, &decoded))

	got, ok := decoded.Data.(*Boss)
	require.True(t, ok)
	assert.Equal(t, boss, got)
	assert.Equal(t, entry.Chunks, decoded.Chunks)
	assert.Equal(t, entry.SourceHash, decoded.SourceHash)
	assert.True(t, entry.Timestamp.Equal(decoded.Timestamp))
}

func TestCacheEntryJSONMissingData(t *testing.T) {
	var e CacheEntry
	err := json.Unmarshal([]byte(`{"sourceId":"x","contentType":"boss"}`), &e)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCacheEntry))
}

func TestDecodeNormalizedNilTags(t *testing.T) {
	rec, err := DecodeNormalized(EntityItem, []byte(`{"type":"item","name":"Flask of Crimson Tears"}`))
	require.NoError(t, err)
	assert.NotNil(t, rec.RecordTags())
	assert.Empty(t, rec.RecordTags())

	_, err = DecodeNormalized("dragon", []byte(`{}`))
	assert.True(t, errors.Is(err, ErrUnknownEntityType))
}

func TestCacheMetadataMUS(t *testing.T) {
	meta := CacheMetadata{
		SourceID:      "https://example.com/gladius",
		ContentType:   EntityBoss,
		Success:       false,
		SourceHash:    HashContent([]byte("<html>")),
		SchemaVersion: 3,
		Error:         "transform failed",
		UpdatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	buf := make([]byte, CacheMetadataMUS.Size(meta))
	n := CacheMetadataMUS.Marshal(meta, buf)
	assert.Equal(t, len(buf), n)

	decoded, read, err := CacheMetadataMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, read)
	assert.True(t, meta.UpdatedAt.Equal(decoded.UpdatedAt))
	decoded.UpdatedAt = meta.UpdatedAt
	assert.Equal(t, meta, decoded)

	skipped, err := CacheMetadataMUS.Skip(buf)
	require.NoError(t, err)
	assert.Equal(t, n, skipped)
}

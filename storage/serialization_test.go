package storage

import (
	"testing"
	"time"

	"github.com/poiesic/nightdex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalCacheMetadata(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		meta core.CacheMetadata
	}{
		{
			name: "success",
			meta: core.CacheMetadata{
				SourceID:      "https://example.com/wiki/Gladius",
				ContentType:   core.EntityBoss,
				Success:       true,
				SourceHash:    core.HashContent([]byte("<html>gladius</html>")),
				SchemaVersion: core.SchemaVersion,
				UpdatedAt:     now,
			},
		},
		{
			name: "failure with error",
			meta: core.CacheMetadata{
				SourceID:      "relic-42",
				ContentType:   core.EntityRelic,
				SourceHash:    core.HashContent([]byte("relic")),
				SchemaVersion: 7,
				Error:         "normalize relic \"Bad\": negative value",
				UpdatedAt:     now,
			},
		},
		{
			name: "zero value",
			meta: core.CacheMetadata{UpdatedAt: time.UnixMicro(0).UTC()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalCacheMetadata(tt.meta)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalCacheMetadata(data)
			require.NoError(t, err)
			assert.Equal(t, tt.meta, decoded)
		})
	}
}

func TestMarshalCacheMetadata_Encoding(t *testing.T) {
	meta := core.CacheMetadata{
		SourceID:      "a",
		ContentType:   core.EntityBoss,
		Success:       true,
		SourceHash:    "h",
		SchemaVersion: 3,
		UpdatedAt:     time.UnixMicro(1).UTC(),
	}
	want := []byte{
		0x01, 'a',
		0x04, 'b', 'o', 's', 's',
		0x01,
		0x01, 'h',
		0x06,
		0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	data := MarshalCacheMetadata(meta)
	assert.Equal(t, want, data)

	decoded, err := UnmarshalCacheMetadata(want)
	require.NoError(t, err)
	assert.Equal(t, meta, decoded)
}

func TestUnmarshalCacheMetadata_Invalid(t *testing.T) {
	_, err := UnmarshalCacheMetadata([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalIndex(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	idx := Index{}
	for i, id := range []string{"b", "a", "c"} {
		idx[id] = core.CacheMetadata{
			SourceID:      id,
			ContentType:   core.AllEntityTypes[i],
			Success:       i%2 == 0,
			SourceHash:    core.HashContent([]byte(id)),
			SchemaVersion: core.SchemaVersion,
			UpdatedAt:     now,
		}
	}

	data := MarshalIndex(idx)
	decoded, err := UnmarshalIndex(data)
	require.NoError(t, err)
	assert.Equal(t, idx, decoded)

	assert.Equal(t, data, MarshalIndex(idx.Clone()), "encoding must be deterministic")
}

func TestUnmarshalIndex_Empty(t *testing.T) {
	idx, err := UnmarshalIndex(nil)
	require.NoError(t, err)
	assert.NotNil(t, idx)
	assert.Empty(t, idx)

	idx, err = UnmarshalIndex(MarshalIndex(Index{}))
	require.NoError(t, err)
	assert.Empty(t, idx)
}

func TestUnmarshalIndex_Truncated(t *testing.T) {
	idx := Index{"a": {SourceID: "a", ContentType: core.EntityItem, UpdatedAt: time.UnixMicro(0).UTC()}}
	data := MarshalIndex(idx)

	_, err := UnmarshalIndex(data[:1])
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestMarshalUnmarshalEntry(t *testing.T) {
	item := &core.Item{Header: core.NewHeader(core.EntityItem, "Flask of Crimson Tears")}
	item.SetTags([]string{"consumable"})
	entry := &core.CacheEntry{
		SourceID:    "flask",
		ContentType: core.EntityItem,
		Data:        item,
		Chunks: []core.Chunk{{
			Type: core.EntityItem, Name: item.Name, Section: core.SectionOverview,
			Content: "Flask of Crimson Tears is an item.", Tags: []string{"consumable"},
		}},
		SourceHash:    core.HashContent([]byte("flask")),
		SchemaVersion: core.SchemaVersion,
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := MarshalEntry(entry)
	require.NoError(t, err)

	decoded, err := UnmarshalEntry(data)
	require.NoError(t, err)
	assert.Equal(t, entry.Data, decoded.Data)
	assert.Equal(t, entry.Chunks, decoded.Chunks)

	_, err = MarshalEntry(nil)
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = UnmarshalEntry([]byte("{not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCacheEntry(t *testing.T) {
	overview := Chunk{Type: EntityItem, Name: "Flask", Section: SectionOverview, Content: "Flask is an item."}
	item := &Item{Header: NewHeader(EntityItem, "Flask")}

	tests := []struct {
		name    string
		entry   *CacheEntry
		wantErr error
	}{
		{
			name:  "valid entry",
			entry: &CacheEntry{SourceID: "flask", ContentType: EntityItem, Data: item, Chunks: []Chunk{overview}},
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidCacheEntry,
		},
		{
			name:    "empty source id",
			entry:   &CacheEntry{ContentType: EntityItem, Data: item, Chunks: []Chunk{overview}},
			wantErr: ErrEmptySourceID,
		},
		{
			name:    "type mismatch",
			entry:   &CacheEntry{SourceID: "flask", ContentType: EntityBoss, Data: item, Chunks: []Chunk{overview}},
			wantErr: ErrInvalidCacheEntry,
		},
		{
			name: "blank chunk",
			entry: &CacheEntry{SourceID: "flask", ContentType: EntityItem, Data: item,
				Chunks: []Chunk{{Type: EntityItem, Name: "Flask", Section: SectionEffects, Content: "  "}}},
			wantErr: ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCacheEntry(tt.entry)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

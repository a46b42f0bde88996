package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeParsed(t *testing.T) {
	t.Run("boss", func(t *testing.T) {
		data := []byte(`{
			"type": "boss",
			"name": " Gladius ",
			"category": "Night Lord",
			"weaknesses": ["fire"],
			"stance": 160,
			"parryInfo": {"canParry": false}
		}`)

		rec, err := DecodeParsed(data)
		require.NoError(t, err)

		boss, ok := rec.(*ParsedBoss)
		require.True(t, ok)
		assert.Equal(t, EntityBoss, boss.Kind())
		assert.Equal(t, EntityBoss, boss.Type)
		assert.Equal(t, "Gladius", boss.RecordName())
		assert.Equal(t, "Night Lord", boss.Category)
		assert.Equal(t, []string{"fire"}, boss.Weaknesses)
		require.NotNil(t, boss.Stance)
		assert.Equal(t, 160, boss.Stance.Int())
		require.NotNil(t, boss.ParryInfo)
		assert.False(t, boss.ParryInfo.CanParry)
	})

	t.Run("character alias", func(t *testing.T) {
		rec, err := DecodeParsed([]byte(`{"type":"Character","name":"Wylder","role":"Vanguard"}`))
		require.NoError(t, err)

		nf, ok := rec.(*ParsedNightfarer)
		require.True(t, ok)
		assert.Equal(t, EntityNightfarer, nf.Type)
		assert.Equal(t, "Vanguard", nf.Role)
	})

	t.Run("merchant inventory", func(t *testing.T) {
		rec, err := DecodeParsed([]byte(`{"type":"merchant","name":"Roundtable Merchant",
			"inventory":[{"name":"Flask","price":"1,200","currency":"runes"}]}`))
		require.NoError(t, err)

		m := rec.(*ParsedMerchant)
		require.Len(t, m.Inventory, 1)
		require.NotNil(t, m.Inventory[0].Price)
		assert.Equal(t, 1200, m.Inventory[0].Price.Int())
	})
}

func TestDecodeParsedErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"unknown type", `{"type":"dragon","name":"x"}`, ErrUnknownEntityType},
		{"missing type", `{"name":"x"}`, ErrUnknownEntityType},
		{"blank name", `{"type":"boss","name":"   "}`, ErrEmptyName},
		{"malformed json", `{"type":`, ErrInvalidParsedRecord},
		{"bad number", `{"type":"boss","name":"x","stance":"huge"}`, ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeParsed([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

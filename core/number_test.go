package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Number
	}{
		{"integer", `160`, 160},
		{"float truncated", `4.9`, 4},
		{"numeric string", `"160"`, 160},
		{"thousands separator", `"12,500"`, 12500},
		{"padded with percent", `" 35% "`, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestNumberOptionalField(t *testing.T) {
	var v struct {
		Stance *Number `json:"stance,omitempty"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"stance":null}`), &v))
	assert.Nil(t, v.Stance)

	require.NoError(t, json.Unmarshal([]byte(`{"stance":"1,000"}`), &v))
	require.NotNil(t, v.Stance)
	assert.Equal(t, 1000, v.Stance.Int())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stance":1000}`, string(out))
}

func TestNumberInvalid(t *testing.T) {
	var n Number
	err := json.Unmarshal([]byte(`"lots"`), &n)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidNumber))
}

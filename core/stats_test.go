package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseJSON_OmitsAbsentName(t *testing.T) {
	threshold := Number(50)
	out, err := json.Marshal(Phase{Description: "Splits into three wolves.", HealthThreshold: &threshold})
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"Splits into three wolves.","healthThreshold":50}`, string(out))

	out, err = json.Marshal(Phase{Name: "Phase 2"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Phase 2"}`, string(out))
}

package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/poiesic/nightdex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInputs(t *testing.T) {
	in := strings.Join([]string{
		`{"sourceId":"a","source":"<h1>Gladius</h1>","record":{"type":"boss","name":"Gladius"}}`,
		``,
		`{"sourceId":"b","record":{"type":"item","name":"Flask"}}`,
		`{"sourceId":"c","source":{"html":"x"},"record":{"type":"relic","name":"Ruby"}}`,
	}, "\n")

	inputs, err := DecodeInputs(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	assert.Equal(t, "a", inputs[0].SourceID)
	assert.Equal(t, []byte("<h1>Gladius</h1>"), inputs[0].Source)
	assert.JSONEq(t, `{"type":"boss","name":"Gladius"}`, string(inputs[0].RawRecord))
	assert.Nil(t, inputs[0].Record)

	assert.Equal(t, []byte(`{"type":"item","name":"Flask"}`), inputs[1].Source, "record bytes stand in for a missing source")
	assert.Equal(t, []byte(`{"html":"x"}`), inputs[2].Source)
}

func TestDecodeInputs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid json", `{"sourceId":`, "line 1"},
		{"missing id", `{"record":{"type":"boss","name":"X"}}`, "missing sourceId"},
		{"missing record", "\n" + `{"sourceId":"a"}`, "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInputs(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestJSONLSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONLSink(&buf)
	e := ChunkEmbedding{
		ChunkID:  "boss:gladius:overview",
		SourceID: "a",
		Type:     core.EntityBoss,
		Name:     "Gladius",
		Section:  core.SectionOverview,
		Tags:     []string{"night-lord"},
		Vector:   []float32{0.5, -0.5},
	}
	require.NoError(t, sink.Put(context.Background(), e))
	require.NoError(t, sink.Put(context.Background(), e))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var got ChunkEmbedding
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, e, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sink.Put(ctx, e), context.Canceled)
}

package ingestion

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// maxLineSize bounds one JSON Lines record.
const maxLineSize = 16 << 20

type inputLine struct {
	SourceID string          `json:"sourceId"`
	Source   json.RawMessage `json:"source"`
	Record   json.RawMessage `json:"record"`
}

// DecodeInputs reads JSON Lines of {"sourceId", "source", "record"}.
// Blank lines are skipped. A missing source falls back to the record bytes,
// so the hash still tracks content. source may be a JSON string (its text is
// hashed) or any other JSON value (its raw bytes are hashed).
func DecodeInputs(r io.Reader) ([]Input, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var inputs []Input
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		var l inputLine
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if l.SourceID == "" {
			return nil, fmt.Errorf("line %d: missing sourceId", line)
		}
		if len(l.Record) == 0 || string(l.Record) == "null" {
			return nil, fmt.Errorf("line %d: %w", line, ErrMissingRecord)
		}
		in := Input{
			SourceID:  l.SourceID,
			Source:    sourceBytes(l.Source, l.Record),
			RawRecord: append(json.RawMessage(nil), l.Record...),
		}
		inputs = append(inputs, in)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return inputs, nil
}

func sourceBytes(source, record json.RawMessage) []byte {
	if len(source) == 0 || string(source) == "null" {
		return append([]byte(nil), record...)
	}
	var s string
	if err := json.Unmarshal(source, &s); err == nil {
		return []byte(s)
	}
	return append([]byte(nil), source...)
}

// JSONLSink writes each embedding as one JSON line. It is safe for
// concurrent use.
type JSONLSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLSink returns a sink writing to w.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{enc: json.NewEncoder(w)}
}

func (s *JSONLSink) Put(ctx context.Context, e ChunkEmbedding) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(e)
}

package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/nightdex/core"
)

// Result is a normalized record with its chunks. Every chunk carries the
// record's tags.
type Result struct {
	Data   core.NormalizedRecord
	Chunks []core.Chunk
}

// Engine dispatches parsed records to their registered handlers.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithRegistry replaces the default registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) error {
		if r == nil {
			return errors.New("registry cannot be nil")
		}
		e.registry = r
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "normalizer")
		return nil
	}
}

// NewEngine creates an engine backed by DefaultRegistry unless overridden.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		registry: defaultRegistry(),
		logger:   slog.Default().With("component", "normalizer"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// SupportsDirect reports whether this engine has a handler for t.
func (e *Engine) SupportsDirect(t core.EntityType) bool {
	return e.registry.Supports(t)
}

// Normalize transforms one parsed record.
//
// Unregistered types fail with *UnsupportedTypeError (see NeedsFallback).
// Transform errors and panics fail with *NormalizationError. On error the
// Result is always nil.
func (e *Engine) Normalize(rec core.ParsedRecord) (res *Result, err error) {
	var (
		kind core.EntityType
		name string
	)
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("transform panicked", "type", kind, "name", name, "panic", r)
			res = nil
			err = &NormalizationError{Type: kind, Name: name, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()

	if rec == nil {
		return nil, &NormalizationError{Err: fmt.Errorf("%w: record is nil", core.ErrInvalidParsedRecord)}
	}
	kind, name = rec.Kind(), rec.RecordName()

	h, ok := e.registry.lookup(kind)
	if !ok {
		return nil, &UnsupportedTypeError{Type: kind}
	}
	if err := core.ValidateParsedRecord(rec); err != nil {
		return nil, &NormalizationError{Type: kind, Name: name, Err: err}
	}

	data, seq, err := h(rec)
	if err != nil {
		return nil, &NormalizationError{Type: kind, Name: name, Err: err}
	}

	recordTags := data.RecordTags()
	out := []core.Chunk{}
	for c := range seq {
		c.Tags = slices.Clone(recordTags)
		out = append(out, c)
	}
	if len(out) == 0 || out[0].Section != core.SectionOverview {
		return nil, &NormalizationError{Type: kind, Name: name, Err: errors.New("no overview chunk")}
	}

	e.logger.Debug("normalized record", "type", kind, "name", name, "tags", len(recordTags), "chunks", len(out))
	return &Result{Data: data, Chunks: out}, nil
}

// NormalizeJSON decodes a parsed record with core.DecodeParsed and
// normalizes it. An unknown "type" discriminator is reported as
// *UnsupportedTypeError so the record can take the fallback path; other
// decode failures are returned as *NormalizationError.
func (e *Engine) NormalizeJSON(data []byte) (*Result, error) {
	rec, err := core.DecodeParsed(data)
	if err == nil {
		return e.Normalize(rec)
	}
	var probe struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	_ = json.Unmarshal(data, &probe)
	if errors.Is(err, core.ErrUnknownEntityType) {
		return nil, &UnsupportedTypeError{Type: core.EntityType(probe.Type)}
	}
	kind, _ := core.ParseEntityType(probe.Type)
	return nil, &NormalizationError{Type: kind, Name: probe.Name, Err: err}
}

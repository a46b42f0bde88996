// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingestion

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/nightdex/cache"
	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/normalize"
)

// status is the outcome of processing one input.
type status int

const (
	statusSkipped status = iota
	statusSucceeded
	statusFailed
	statusFallback
)

// outcome records what happened to one input.
type outcome struct {
	status status
	reason cache.Reason
	typ    core.EntityType
	name   string
	err    error
}

// recordProcessor runs one input through cache check, normalization and
// cache write.
type recordProcessor struct {
	cache  *cache.Cache
	engine *normalize.Engine
	model  string
	logger *slog.Logger
}

func (rp *recordProcessor) process(ctx context.Context, in Input, force bool) outcome {
	var checkOpts []cache.CheckOption
	if force {
		checkOpts = append(checkOpts, cache.WithForceReprocess())
	}
	decision := rp.cache.Check(ctx, in.SourceID, in.Source, checkOpts...)
	if !decision.NeedsNormalization() {
		rp.logger.Debug("source unchanged, skipping", "sourceId", in.SourceID)
		return outcome{status: statusSkipped, reason: decision.Reason}
	}

	res, err := rp.normalize(in)
	if normalize.NeedsFallback(err) {
		var ute *normalize.UnsupportedTypeError
		errors.As(err, &ute)
		rp.logger.Info("no direct normalizer, needs fallback", "sourceId", in.SourceID, "type", ute.Type)
		return outcome{status: statusFallback, reason: decision.Reason, typ: ute.Type, err: err}
	}
	if err != nil {
		typ, name := describe(err)
		rp.logger.Warn("normalization failed", "sourceId", in.SourceID, "type", typ, "name", name, "err", err)
		if cacheErr := rp.cache.SetFailed(ctx, in.SourceID, typ, in.Source, err.Error()); cacheErr != nil {
			err = errors.Join(err, cacheErr)
		}
		return outcome{status: statusFailed, reason: decision.Reason, typ: typ, name: name, err: err}
	}

	typ, name := res.Data.Kind(), res.Data.RecordName()
	if err := rp.cache.Set(ctx, in.SourceID, typ, res.Data, res.Chunks, in.Source, rp.model); err != nil {
		return outcome{status: statusFailed, reason: decision.Reason, typ: typ, name: name, err: err}
	}
	return outcome{status: statusSucceeded, reason: decision.Reason, typ: typ, name: name}
}

func (rp *recordProcessor) normalize(in Input) (*normalize.Result, error) {
	switch {
	case in.Record != nil:
		return rp.engine.Normalize(in.Record)
	case len(in.RawRecord) > 0:
		return rp.engine.NormalizeJSON(in.RawRecord)
	default:
		return nil, ErrMissingRecord
	}
}

// describe returns the type and name carried by a normalization error.
func describe(err error) (core.EntityType, string) {
	var ne *normalize.NormalizationError
	if errors.As(err, &ne) {
		return ne.Type, ne.Name
	}
	return "", ""
}

// Package cache implements the content-addressed normalization cache.
//
// Each source id moves through unknown, needs-normalization and then either
// cached-success or cached-failure. A cached success stays fresh while both
// the BLAKE2b hash of the source bytes and the schema version match; a
// cached failure always needs normalization again.
//
//	c, err := cache.Open(ctx, store)
//	if c.NeedsNormalization(ctx, id, html) {
//	    res, err := engine.Normalize(rec)
//	    if err != nil {
//	        c.SetFailed(ctx, id, rec.Kind(), html, err.Error())
//	    } else {
//	        c.Set(ctx, id, rec.Kind(), res.Data, res.Chunks, html, model)
//	    }
//	}
package cache

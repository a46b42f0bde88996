// Package normalize turns parsed records into normalized records and
// chunks.
//
// Each entity type is handled by a transform, a tag function and a chunk
// function registered together with Register. Adding a type touches only
// those three functions and one Register call in DefaultRegistry.
//
//	engine, err := normalize.NewEngine()
//	res, err := engine.Normalize(parsed)
//	if normalize.NeedsFallback(err) {
//	    // hand the record to a slower normalizer
//	}
package normalize

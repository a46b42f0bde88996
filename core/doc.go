// Package core defines the nightdex data model: entity types, parsed and
// normalized records, content chunks and the cache entry/metadata records.
//
// Parsed and normalized records are discriminated unions. Each entity kind
// has one concrete struct per shape, and callers switch on Kind() or use a
// type switch rather than a shared base type.
package core

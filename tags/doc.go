// Package tags derives deterministic search tags from normalized records.
//
// Every function is pure: the same record always yields the same sorted,
// deduplicated slice, and every tag matches [a-z0-9-]+. Missing optional
// fields contribute nothing.
package tags

package search

import (
	"strings"

	"github.com/poiesic/nightdex/core"
)

type queryOptions struct {
	types   []core.EntityType
	section core.Section
	tags    []string
}

// QueryOption narrows a search.
type QueryOption func(*queryOptions)

// WithTypes keeps hits of any of the given entity types.
func WithTypes(types ...core.EntityType) QueryOption {
	return func(o *queryOptions) {
		o.types = append(o.types, types...)
	}
}

// WithSection keeps hits from one chunk section.
func WithSection(section core.Section) QueryOption {
	return func(o *queryOptions) {
		o.section = section
	}
}

// WithTags keeps hits carrying every given tag.
func WithTags(tags ...string) QueryOption {
	return func(o *queryOptions) {
		for _, t := range tags {
			if t = strings.TrimSpace(t); t != "" {
				o.tags = append(o.tags, t)
			}
		}
	}
}

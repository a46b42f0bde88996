package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryTerms(t *testing.T) {
	assert.Equal(t, []string{"gladius", "night", "lord"}, queryTerms("Gladius is a Night Lord."))
	assert.Equal(t, []string{"scarlet", "rot"}, queryTerms("Scarlet-Rot"))
	assert.Equal(t, []string{"gladius", "drops"}, queryTerms("Gladius's drops"))
	assert.Empty(t, queryTerms("the of and"))
}

func TestContainsAllQueryWords(t *testing.T) {
	tests := []struct {
		name     string
		document string
		query    string
		want     bool
	}{
		{"all words present", "Gladius is a Night Lord.", "night lord", true},
		{"punctuation and case ignored", "Weak to: Fire!", "fire", true},
		{"hyphenated query", "Inflicts scarlet rot on hit.", "scarlet-rot", true},
		{"missing word", "Gladius is a Night Lord.", "night king", false},
		{"filler only", "Gladius is a Night Lord.", "the a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsAllQueryWords(tt.document, tt.query))
		})
	}
}

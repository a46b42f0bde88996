package search

import (
	"strings"
	"unicode"
)

// fillerWords never count toward a verbatim match. Besides English stop
// words this covers the connective prose every overview chunk is written in.
var fillerWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "do": {}, "for": {}, "from": {}, "has": {},
	"have": {}, "in": {}, "is": {}, "it": {}, "its": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "s": {}, "that": {}, "the": {}, "this": {}, "to": {},
	"was": {}, "with": {}, "you": {},
}

// queryTerms lowercases text and splits it on anything that is not a letter
// or digit, dropping filler words. "Scarlet-Rot" and "scarlet rot" yield the
// same terms, as do "Gladius's" and "Gladius".
func queryTerms(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := words[:0]
	for _, w := range words {
		if _, filler := fillerWords[w]; !filler {
			terms = append(terms, w)
		}
	}
	return terms
}

// containsAllQueryWords reports whether every non-filler term of query
// appears in document. A query made only of filler never matches.
func containsAllQueryWords(document, query string) bool {
	want := queryTerms(query)
	if len(want) == 0 {
		return false
	}

	have := make(map[string]struct{})
	for _, w := range queryTerms(document) {
		have[w] = struct{}{}
	}
	for _, w := range want {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}

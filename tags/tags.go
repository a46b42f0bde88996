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

package tags

import (
	"slices"
	"strings"
	"unicode"
)

// Normalize converts s into tag form: lower-case, trimmed, whitespace runs
// collapsed to a single hyphen, and every character outside [a-z0-9-]
// removed. Repeated hyphens collapse and leading or trailing hyphens are
// dropped, so "Scarlet Rot" and "scarlet-rot " both become "scarlet-rot".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Set accumulates tags. Values are normalized on insert and empty results
// are dropped. The zero value is ready to use.
type Set struct {
	seen map[string]struct{}
}

// Add normalizes and inserts each value.
func (s *Set) Add(values ...string) {
	for _, v := range values {
		tag := Normalize(v)
		if tag == "" {
			continue
		}
		if s.seen == nil {
			s.seen = make(map[string]struct{})
		}
		s.seen[tag] = struct{}{}
	}
}

// AddIf inserts tag when cond holds.
func (s *Set) AddIf(cond bool, tag string) {
	if cond {
		s.Add(tag)
	}
}

// AddSuffixed inserts "<value>-<suffix>" for every non-blank value.
func (s *Set) AddSuffixed(suffix string, values ...string) {
	for _, v := range values {
		if Normalize(v) != "" {
			s.Add(v + "-" + suffix)
		}
	}
}

// Has reports whether tag (normalized) is present.
func (s *Set) Has(tag string) bool {
	_, ok := s.seen[Normalize(tag)]
	return ok
}

// Len returns the number of distinct tags.
func (s *Set) Len() int {
	return len(s.seen)
}

// Slice returns the tags in sorted order. The result is never nil.
func (s *Set) Slice() []string {
	out := make([]string, 0, len(s.seen))
	for tag := range s.seen {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

// Of builds a sorted tag slice from raw values.
func Of(values ...string) []string {
	var s Set
	s.Add(values...)
	return s.Slice()
}

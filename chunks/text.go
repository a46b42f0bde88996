package chunks

import (
	"iter"
	"strconv"
	"strings"

	"github.com/poiesic/nightdex/core"
)

// part is one candidate section. render runs only when the sequence is
// pulled that far.
type part struct {
	section core.Section
	render  func() string
}

// sequence yields one chunk per part whose rendered content is not blank.
func sequence(t core.EntityType, name string, parts ...part) iter.Seq[core.Chunk] {
	return func(yield func(core.Chunk) bool) {
		for _, p := range parts {
			content := strings.TrimSpace(p.render())
			if content == "" {
				continue
			}
			c := core.Chunk{
				Type:    t,
				Name:    name,
				Section: p.section,
				Content: content,
				Tags:    []string{},
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Collect materializes seq. The result is never nil.
func Collect(seq iter.Seq[core.Chunk]) []core.Chunk {
	out := []core.Chunk{}
	for c := range seq {
		out = append(out, c)
	}
	return out
}

// text accumulates prose lines, skipping blank values.
type text struct {
	b strings.Builder
}

func (t *text) line(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if t.b.Len() > 0 {
		t.b.WriteByte('\n')
	}
	t.b.WriteString(s)
}

func (t *text) field(label, value string) {
	if strings.TrimSpace(value) != "" {
		t.line(label + ": " + strings.TrimSpace(value))
	}
}

func (t *text) number(label string, n *core.Number) {
	if n != nil {
		t.line(label + ": " + n.String())
	}
}

func (t *text) list(label string, values []string) {
	t.field(label, joinList(values))
}

func (t *text) bullets(values []string) {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			t.line("- " + v)
		}
	}
}

func (t *text) values(label string, entries []core.NamedValue) {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Name + " " + strconv.Itoa(e.Value)
	}
	t.field(label, strings.Join(parts, ", "))
}

func (t *text) grades(label string, entries []core.NamedGrade) {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Name + " " + e.Grade
	}
	t.field(label, strings.Join(parts, ", "))
}

func (t *text) weight(w *float64) {
	if w != nil {
		t.line("Weight: " + formatFloat(*w))
	}
}

func (t *text) String() string {
	return t.b.String()
}

func joinList(values []string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, ", ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// identity renders the opening sentence of an overview:
// "<name> is a <kind>." where kind falls back to the entity type.
func identity(name, kind string, t core.EntityType) string {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		kind = string(t)
	}
	return name + " is " + article(kind) + " " + kind + "."
}

func article(word string) string {
	if word == "" {
		return "a"
	}
	switch strings.ToLower(word[:1]) {
	case "a", "e", "i", "o", "u":
		return "an"
	}
	return "a"
}

func sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}

func foundIn(locations []string) string {
	if loc := joinList(locations); loc != "" {
		return "Found in " + loc + "."
	}
	return ""
}

package core

import (
	"strings"
	"unicode"
)

// Section labels one retrievable slice of a record.
type Section string

const (
	SectionOverview    Section = "overview"
	SectionStats       Section = "stats"
	SectionCombat      Section = "combat"
	SectionPhases      Section = "phases"
	SectionStrategy    Section = "strategy"
	SectionAbilities   Section = "abilities"
	SectionProgression Section = "progression"
	SectionEffects     Section = "effects"
	SectionSkill       Section = "skill"
	SectionLocation    Section = "location"
	SectionDrops       Section = "drops"
	SectionInventory   Section = "inventory"
	SectionServices    Section = "services"
	SectionDialogue    Section = "dialogue"
	SectionLore        Section = "lore"
)

// Chunk is one unit of text about one entity, offered to a search index.
type Chunk struct {
	Type    EntityType `json:"type"`
	Name    string     `json:"name"`
	Section Section    `json:"section"`
	Content string     `json:"content"`
	Tags    []string   `json:"tags"`
}

// ID returns the chunk's stable identifier within sourceID, of the form
// <hex(IDFromContent(sourceID))>:<type>:<slug(name)>:<section>. Two sources
// describing entities of the same name get distinct ids.
func (c Chunk) ID(sourceID string) string {
	return IDFromContent(sourceID).Hex() + ":" + string(c.Type) + ":" + Slug(c.Name) + ":" + string(c.Section)
}

// Slug lower-cases s and joins its alphanumeric runs with single hyphens.
func Slug(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

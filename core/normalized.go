package core

import (
	"encoding/json"
	"fmt"
)

// NormalizedRecord is the canonical, type-tagged output of normalization.
type NormalizedRecord interface {
	Kind() EntityType
	RecordName() string
	RecordTags() []string
	SetTags(tags []string)
}

// Header carries the fields every normalized record has. Tags is never nil
// once a record has been through SetTags, so it always encodes as an array.
type Header struct {
	Type EntityType `json:"type"`
	Name string     `json:"name"`
	Tags []string   `json:"tags"`
}

// NewHeader returns a header with an empty, non-nil tag set.
func NewHeader(t EntityType, name string) Header {
	return Header{Type: t, Name: name, Tags: []string{}}
}

func (h Header) RecordName() string {
	return h.Name
}

func (h Header) RecordTags() []string {
	return h.Tags
}

// SetTags replaces the tag set. A nil slice is stored as empty.
func (h *Header) SetTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	h.Tags = tags
}

// Boss is a normalized boss record. Types with a Locations list also carry
// Location, the same list joined for display.
type Boss struct {
	Header
	BossFields
	Location string `json:"location,omitempty"`
}

type Weapon struct {
	Header
	WeaponFields
	Location string `json:"location,omitempty"`
}

type Enemy struct {
	Header
	EnemyFields
	Location string `json:"location,omitempty"`
}

type Relic struct {
	Header
	RelicFields
	Location string `json:"location,omitempty"`
}

type Nightfarer struct {
	Header
	NightfarerFields
}

type Skill struct {
	Header
	SkillFields
}

type Talisman struct {
	Header
	TalismanFields
	Location string `json:"location,omitempty"`
}

type Spell struct {
	Header
	SpellFields
	Location string `json:"location,omitempty"`
}

type Armor struct {
	Header
	ArmorFields
	Location string `json:"location,omitempty"`
}

type Shield struct {
	Header
	ShieldFields
	Location string `json:"location,omitempty"`
}

type NPC struct {
	Header
	NPCFields
	Location string `json:"location,omitempty"`
}

type Merchant struct {
	Header
	MerchantFields
	Location string `json:"location,omitempty"`
}

type Location struct {
	Header
	LocationFields
}

type Expedition struct {
	Header
	ExpeditionFields
}

type Item struct {
	Header
	ItemFields
	Location string `json:"location,omitempty"`
}

func (Boss) Kind() EntityType       { return EntityBoss }
func (Weapon) Kind() EntityType     { return EntityWeapon }
func (Enemy) Kind() EntityType      { return EntityEnemy }
func (Relic) Kind() EntityType      { return EntityRelic }
func (Nightfarer) Kind() EntityType { return EntityNightfarer }
func (Skill) Kind() EntityType      { return EntitySkill }
func (Talisman) Kind() EntityType   { return EntityTalisman }
func (Spell) Kind() EntityType      { return EntitySpell }
func (Armor) Kind() EntityType      { return EntityArmor }
func (Shield) Kind() EntityType     { return EntityShield }
func (NPC) Kind() EntityType        { return EntityNPC }
func (Merchant) Kind() EntityType   { return EntityMerchant }
func (Location) Kind() EntityType   { return EntityLocation }
func (Expedition) Kind() EntityType { return EntityExpedition }
func (Item) Kind() EntityType       { return EntityItem }

var normalizedFactories = map[EntityType]func() NormalizedRecord{
	EntityBoss:       func() NormalizedRecord { return &Boss{} },
	EntityWeapon:     func() NormalizedRecord { return &Weapon{} },
	EntityEnemy:      func() NormalizedRecord { return &Enemy{} },
	EntityRelic:      func() NormalizedRecord { return &Relic{} },
	EntityNightfarer: func() NormalizedRecord { return &Nightfarer{} },
	EntitySkill:      func() NormalizedRecord { return &Skill{} },
	EntityTalisman:   func() NormalizedRecord { return &Talisman{} },
	EntitySpell:      func() NormalizedRecord { return &Spell{} },
	EntityArmor:      func() NormalizedRecord { return &Armor{} },
	EntityShield:     func() NormalizedRecord { return &Shield{} },
	EntityNPC:        func() NormalizedRecord { return &NPC{} },
	EntityMerchant:   func() NormalizedRecord { return &Merchant{} },
	EntityLocation:   func() NormalizedRecord { return &Location{} },
	EntityExpedition: func() NormalizedRecord { return &Expedition{} },
	EntityItem:       func() NormalizedRecord { return &Item{} },
}

// DecodeNormalized rebuilds a typed normalized record from its JSON form.
func DecodeNormalized(t EntityType, data []byte) (NormalizedRecord, error) {
	factory, ok := normalizedFactories[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, t)
	}
	rec := factory()
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", t, err)
	}
	rec.SetTags(rec.RecordTags())
	return rec, nil
}

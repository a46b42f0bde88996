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

package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParsedRecord is the type-tagged input produced by an external parser.
// Each entity kind has its own concrete struct; Kind is constant per struct.
type ParsedRecord interface {
	Kind() EntityType
	RecordName() string
}

// ParsedHeader carries the identifying fields every parsed record has.
type ParsedHeader struct {
	Type EntityType `json:"type"`
	Name string     `json:"name"`
	URL  string     `json:"url,omitempty"`
}

// RecordName returns the record's display name.
func (h ParsedHeader) RecordName() string {
	return h.Name
}

func (h *ParsedHeader) parsedHeader() *ParsedHeader {
	return h
}

type ParsedBoss struct {
	ParsedHeader
	BossFields
}

type ParsedWeapon struct {
	ParsedHeader
	WeaponFields
}

type ParsedEnemy struct {
	ParsedHeader
	EnemyFields
}

type ParsedRelic struct {
	ParsedHeader
	RelicFields
}

type ParsedNightfarer struct {
	ParsedHeader
	NightfarerFields
}

type ParsedSkill struct {
	ParsedHeader
	SkillFields
}

type ParsedTalisman struct {
	ParsedHeader
	TalismanFields
}

type ParsedSpell struct {
	ParsedHeader
	SpellFields
}

type ParsedArmor struct {
	ParsedHeader
	ArmorFields
}

type ParsedShield struct {
	ParsedHeader
	ShieldFields
}

type ParsedNPC struct {
	ParsedHeader
	NPCFields
}

type ParsedMerchant struct {
	ParsedHeader
	MerchantFields
}

type ParsedLocation struct {
	ParsedHeader
	LocationFields
}

type ParsedExpedition struct {
	ParsedHeader
	ExpeditionFields
}

type ParsedItem struct {
	ParsedHeader
	ItemFields
}

func (ParsedBoss) Kind() EntityType       { return EntityBoss }
func (ParsedWeapon) Kind() EntityType     { return EntityWeapon }
func (ParsedEnemy) Kind() EntityType      { return EntityEnemy }
func (ParsedRelic) Kind() EntityType      { return EntityRelic }
func (ParsedNightfarer) Kind() EntityType { return EntityNightfarer }
func (ParsedSkill) Kind() EntityType      { return EntitySkill }
func (ParsedTalisman) Kind() EntityType   { return EntityTalisman }
func (ParsedSpell) Kind() EntityType      { return EntitySpell }
func (ParsedArmor) Kind() EntityType      { return EntityArmor }
func (ParsedShield) Kind() EntityType     { return EntityShield }
func (ParsedNPC) Kind() EntityType        { return EntityNPC }
func (ParsedMerchant) Kind() EntityType   { return EntityMerchant }
func (ParsedLocation) Kind() EntityType   { return EntityLocation }
func (ParsedExpedition) Kind() EntityType { return EntityExpedition }
func (ParsedItem) Kind() EntityType       { return EntityItem }

var parsedFactories = map[EntityType]func() ParsedRecord{
	EntityBoss:       func() ParsedRecord { return &ParsedBoss{} },
	EntityWeapon:     func() ParsedRecord { return &ParsedWeapon{} },
	EntityEnemy:      func() ParsedRecord { return &ParsedEnemy{} },
	EntityRelic:      func() ParsedRecord { return &ParsedRelic{} },
	EntityNightfarer: func() ParsedRecord { return &ParsedNightfarer{} },
	EntitySkill:      func() ParsedRecord { return &ParsedSkill{} },
	EntityTalisman:   func() ParsedRecord { return &ParsedTalisman{} },
	EntitySpell:      func() ParsedRecord { return &ParsedSpell{} },
	EntityArmor:      func() ParsedRecord { return &ParsedArmor{} },
	EntityShield:     func() ParsedRecord { return &ParsedShield{} },
	EntityNPC:        func() ParsedRecord { return &ParsedNPC{} },
	EntityMerchant:   func() ParsedRecord { return &ParsedMerchant{} },
	EntityLocation:   func() ParsedRecord { return &ParsedLocation{} },
	EntityExpedition: func() ParsedRecord { return &ParsedExpedition{} },
	EntityItem:       func() ParsedRecord { return &ParsedItem{} },
}

// NewParsedRecord returns an empty parsed record for the given type.
func NewParsedRecord(t EntityType) (ParsedRecord, error) {
	factory, ok := parsedFactories[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, t)
	}
	return factory(), nil
}

// DecodeParsed decodes a JSON object into the parsed record selected by its
// "type" field. The returned record has passed ValidateParsedRecord.
func DecodeParsed(data []byte) (ParsedRecord, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParsedRecord, err)
	}
	t, err := ParseEntityType(probe.Type)
	if err != nil {
		return nil, err
	}
	rec, err := NewParsedRecord(t)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParsedRecord, err)
	}
	h := rec.(interface{ parsedHeader() *ParsedHeader }).parsedHeader()
	h.Type = t
	h.Name = strings.TrimSpace(h.Name)
	if err := ValidateParsedRecord(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

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
	"fmt"
	"strings"
)

// EntityType is the discriminator shared by parsed and normalized records.
type EntityType string

const (
	EntityBoss       EntityType = "boss"
	EntityWeapon     EntityType = "weapon"
	EntityEnemy      EntityType = "enemy"
	EntityRelic      EntityType = "relic"
	EntityNightfarer EntityType = "nightfarer"
	EntitySkill      EntityType = "skill"
	EntityTalisman   EntityType = "talisman"
	EntitySpell      EntityType = "spell"
	EntityArmor      EntityType = "armor"
	EntityShield     EntityType = "shield"
	EntityNPC        EntityType = "npc"
	EntityMerchant   EntityType = "merchant"
	EntityLocation   EntityType = "location"
	EntityExpedition EntityType = "expedition"
	EntityItem       EntityType = "item"
)

// AllEntityTypes lists every entity type in a fixed order.
var AllEntityTypes = []EntityType{
	EntityBoss,
	EntityWeapon,
	EntityEnemy,
	EntityRelic,
	EntityNightfarer,
	EntitySkill,
	EntityTalisman,
	EntitySpell,
	EntityArmor,
	EntityShield,
	EntityNPC,
	EntityMerchant,
	EntityLocation,
	EntityExpedition,
	EntityItem,
}

// entityAliases maps alternate spellings onto canonical types.
var entityAliases = map[string]EntityType{
	"character": EntityNightfarer,
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	for _, known := range AllEntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType converts a discriminator string to an EntityType.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseEntityType(s string) (EntityType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := entityAliases[key]; ok {
		return alias, nil
	}
	t := EntityType(key)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
	}
	return t, nil
}

package normalize

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/poiesic/nightdex/chunks"
	"github.com/poiesic/nightdex/core"
	"github.com/poiesic/nightdex/tags"
)

// handler runs the transform, tagger and chunker registered for one type.
type handler func(core.ParsedRecord) (core.NormalizedRecord, iter.Seq[core.Chunk], error)

// Registry maps entity types to their normalization handlers.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[core.EntityType]handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[core.EntityType]handler)}
}

// Register wires a transform, a tag function and a chunk function under t.
// Registering a type again replaces the previous handler.
//
// P is the pointer type DecodeParsed produces for t (for example
// *core.ParsedBoss); a record of any other Go type fails with
// ErrUnexpectedRecord.
func Register[P core.ParsedRecord, N core.NormalizedRecord](
	r *Registry,
	t core.EntityType,
	transform func(P) (N, error),
	tagger func(N) []string,
	chunker func(N) iter.Seq[core.Chunk],
) {
	h := func(rec core.ParsedRecord) (core.NormalizedRecord, iter.Seq[core.Chunk], error) {
		p, ok := rec.(P)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %T registered as %s", ErrUnexpectedRecord, rec, t)
		}
		n, err := transform(p)
		if err != nil {
			return nil, nil, err
		}
		n.SetTags(tagger(n))
		return n, chunker(n), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = h
}

func (r *Registry) lookup(t core.EntityType) (handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[t]
	return h, ok
}

// Supports reports whether a handler is registered for t.
func (r *Registry) Supports(t core.EntityType) bool {
	_, ok := r.lookup(t)
	return ok
}

// Types returns the registered types in sorted order.
func (r *Registry) Types() []core.EntityType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.EntityType, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// DefaultRegistry returns a registry with every built-in entity type wired.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	Register(r, core.EntityBoss, transformBoss, tags.Boss, chunks.Boss)
	Register(r, core.EntityWeapon, transformWeapon, tags.Weapon, chunks.Weapon)
	Register(r, core.EntityEnemy, transformEnemy, tags.Enemy, chunks.Enemy)
	Register(r, core.EntityRelic, transformRelic, tags.Relic, chunks.Relic)
	Register(r, core.EntityNightfarer, transformNightfarer, tags.Nightfarer, chunks.Nightfarer)
	Register(r, core.EntitySkill, transformSkill, tags.Skill, chunks.Skill)
	Register(r, core.EntityTalisman, transformTalisman, tags.Talisman, chunks.Talisman)
	Register(r, core.EntitySpell, transformSpell, tags.Spell, chunks.Spell)
	Register(r, core.EntityArmor, transformArmor, tags.Armor, chunks.Armor)
	Register(r, core.EntityShield, transformShield, tags.Shield, chunks.Shield)
	Register(r, core.EntityNPC, transformNPC, tags.NPC, chunks.NPC)
	Register(r, core.EntityMerchant, transformMerchant, tags.Merchant, chunks.Merchant)
	Register(r, core.EntityLocation, transformLocation, tags.Location, chunks.Location)
	Register(r, core.EntityExpedition, transformExpedition, tags.Expedition, chunks.Expedition)
	Register(r, core.EntityItem, transformItem, tags.Item, chunks.Item)
	return r
}

var defaultRegistry = sync.OnceValue(DefaultRegistry)

// SupportsDirect reports whether the built-in registry normalizes t
// deterministically. When it returns false the record needs a fallback.
func SupportsDirect(t core.EntityType) bool {
	return defaultRegistry().Supports(t)
}

package tags

import (
	"strings"

	"github.com/poiesic/nightdex/core"
)

// Boss derives tags for a boss: category, weaknesses, stance, parry,
// phase count and status effects mentioned in its description.
func Boss(b *core.Boss) []string {
	var s Set
	s.Add(b.Category)
	s.AddSuffixed("weak", b.Weaknesses...)
	s.AddSuffixed("resistant", b.StrongAgainst...)
	if b.Stance != nil {
		stance := b.Stance.Int()
		s.AddIf(stance >= HighStanceThreshold, "high-stance")
		s.AddIf(stance > 0, "stance-breakable")
	}
	if b.ParryInfo != nil {
		if b.ParryInfo.CanParry {
			s.Add("parryable")
		} else {
			s.Add("non-parryable")
		}
	}
	s.AddIf(len(b.Phases) > 1, "multi-phase")
	s.AddIf(strings.EqualFold(b.Category, "night lord") || b.Expedition != "", "expedition-boss")
	scanStatus(&s, b.Description)
	scanElements(&s, b.Description)
	return s.Slice()
}

func Weapon(w *core.Weapon) []string {
	var s Set
	s.Add(w.Category, w.Rarity)
	addDamageElements(&s, w.Attack)
	addHighScaling(&s, w.Scaling)
	addWeightClass(&s, w.Weight, "weapon")
	addExclusive(&s, w.Nightfarer)
	s.AddIf(w.Skill != "", "has-skill")
	scanStatus(&s, append([]string{w.Description}, w.Passives...)...)
	scanElements(&s, w.Passives...)
	return s.Slice()
}

func Enemy(e *core.Enemy) []string {
	var s Set
	s.Add(e.Category)
	s.AddSuffixed("weak", e.Weaknesses...)
	s.AddIf(len(e.Drops) > 0, "has-drops")
	scanStatus(&s, append([]string{e.Description}, e.Attacks...)...)
	scanElements(&s, e.Attacks...)
	return s.Slice()
}

// Relic tags carry the relic's color and size ("burning", "grand") as-is.
func Relic(r *core.Relic) []string {
	var s Set
	s.Add(r.Color, r.Size)
	addExclusive(&s, r.Nightfarer)
	scanStatus(&s, r.Effects...)
	scanElements(&s, r.Effects...)
	return s.Slice()
}

func Nightfarer(n *core.Nightfarer) []string {
	var s Set
	s.Add(n.Role)
	s.AddSuffixed("difficulty", n.Difficulty)
	for _, g := range n.Attributes.Entries() {
		s.AddIf(isHighGrade(g.Grade), "high-"+g.Name)
	}
	s.AddIf(n.UltimateArt != "", "has-ultimate-art")
	return s.Slice()
}

func Skill(sk *core.Skill) []string {
	var s Set
	s.Add(sk.Category)
	s.Add(sk.WeaponTypes...)
	addExclusive(&s, sk.Nightfarer)
	addFPCost(&s, sk.FPCost)
	if sk.CooldownSeconds != nil {
		s.AddIf(sk.CooldownSeconds.Int() >= LongCooldownSeconds, "long-cooldown")
	}
	scanStatus(&s, sk.Effect, sk.Description)
	scanElements(&s, sk.Effect, sk.Description)
	return s.Slice()
}

func Talisman(t *core.Talisman) []string {
	var s Set
	s.Add(t.Rarity)
	scanStatus(&s, t.Effect)
	scanElements(&s, t.Effect)
	return s.Slice()
}

func Spell(sp *core.Spell) []string {
	var s Set
	s.Add(sp.Category, sp.School)
	addFPCost(&s, sp.FPCost)
	if sp.Slots != nil {
		s.AddIf(sp.Slots.Int() > 1, "multi-slot")
	}
	for _, r := range sp.Requirements.Entries() {
		s.AddIf(r.Value > 0, "requires-"+r.Name)
	}
	scanStatus(&s, sp.Effect, sp.Description)
	scanElements(&s, sp.Effect, sp.Description)
	return s.Slice()
}

func Armor(a *core.Armor) []string {
	var s Set
	s.Add(a.Category)
	s.AddSuffixed("set", a.Set)
	if a.Poise != nil {
		s.AddIf(a.Poise.Int() >= HighPoiseThreshold, "high-poise")
	}
	addWeightClass(&s, a.Weight, "armor")
	scanStatus(&s, a.Effect)
	return s.Slice()
}

func Shield(sh *core.Shield) []string {
	var s Set
	s.Add(sh.Category, sh.Rarity)
	if sh.GuardBoost != nil {
		s.AddIf(sh.GuardBoost.Int() >= HighGuardBoostThreshold, "high-guard-boost")
	}
	addDamageElements(&s, sh.Attack)
	addHighScaling(&s, sh.Scaling)
	addWeightClass(&s, sh.Weight, "shield")
	s.AddIf(sh.Skill != "", "has-skill")
	scanStatus(&s, sh.Passives...)
	return s.Slice()
}

func NPC(n *core.NPC) []string {
	var s Set
	s.Add(n.Role)
	s.Add(n.Services...)
	s.AddIf(n.Quest != "", "quest-giver")
	return s.Slice()
}

// Merchant tags the currency accepted and flags large inventories.
func Merchant(m *core.Merchant) []string {
	var s Set
	s.Add("merchant")
	s.AddSuffixed("currency", m.Currency)
	s.AddIf(len(m.Inventory) >= LargeInventoryThreshold, "large-inventory")
	return s.Slice()
}

// Location tags summarize what can be found there.
func Location(l *core.Location) []string {
	var s Set
	s.Add(l.Category, l.Region)
	s.AddIf(len(l.Bosses) > 0, "has-bosses")
	s.AddIf(len(l.Enemies) > 0, "has-enemies")
	s.AddIf(len(l.Items) > 0, "has-items")
	s.AddIf(len(l.Events) > 0, "has-events")
	return s.Slice()
}

func Expedition(e *core.Expedition) []string {
	var s Set
	s.Add(e.NightLord)
	s.AddSuffixed("weak", e.Weaknesses...)
	s.AddIf(len(e.DayBosses) > 0, "has-day-bosses")
	return s.Slice()
}

func Item(it *core.Item) []string {
	var s Set
	s.Add(it.Category, it.Rarity)
	if it.MaxHeld != nil {
		s.AddIf(it.MaxHeld.Int() > 1, "stackable")
	}
	scanStatus(&s, it.Effect, it.Description)
	scanElements(&s, it.Effect, it.Description)
	return s.Slice()
}

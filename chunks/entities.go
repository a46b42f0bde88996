package chunks

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/poiesic/nightdex/core"
)

// Boss emits overview, combat, phases, strategy, drops and location chunks.
func Boss(b *core.Boss) iter.Seq[core.Chunk] {
	return sequence(core.EntityBoss, b.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(b.Name, b.Category, core.EntityBoss))
			t.line(foundIn(b.Locations))
			if b.Expedition != "" {
				t.line("Fought during the " + b.Expedition + " expedition.")
			}
			t.line(sentence(b.Description))
			return t.String()
		}},
		part{core.SectionCombat, func() string {
			var t text
			t.number("Health", b.Health)
			t.number("Stance", b.Stance)
			t.list("Weaknesses", b.Weaknesses)
			t.list("Strong against", b.StrongAgainst)
			t.values("Resistances", b.Resistances.Entries())
			if p := b.ParryInfo; p != nil {
				if p.CanParry {
					t.line("Parryable")
				} else {
					t.line("Not parryable")
				}
				t.line(sentence(p.Notes))
			}
			return t.String()
		}},
		part{core.SectionPhases, func() string {
			var t text
			for i, ph := range b.Phases {
				head := fmt.Sprintf("Phase %d", i+1)
				if ph.Name != "" {
					head += " (" + ph.Name + ")"
				}
				if ph.HealthThreshold != nil {
					head += " at " + ph.HealthThreshold.String() + "% health"
				}
				if ph.Description != "" {
					head += ": " + ph.Description
				}
				t.line(head)
			}
			return t.String()
		}},
		part{core.SectionStrategy, func() string { return b.Strategy }},
		part{core.SectionDrops, func() string {
			var t text
			t.list("Drops", b.Drops)
			return t.String()
		}},
		part{core.SectionLocation, func() string {
			var t text
			t.list("Locations", b.Locations)
			t.field("Expedition", b.Expedition)
			return t.String()
		}},
	)
}

func Weapon(w *core.Weapon) iter.Seq[core.Chunk] {
	return sequence(core.EntityWeapon, w.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(w.Name, w.Category, core.EntityWeapon))
			t.field("Rarity", w.Rarity)
			if w.Nightfarer != "" {
				t.line("Exclusive to " + w.Nightfarer + ".")
			}
			t.line(sentence(w.Description))
			return t.String()
		}},
		part{core.SectionStats, func() string {
			var t text
			t.values("Attack", w.Attack.Entries())
			t.grades("Scaling", w.Scaling.Entries())
			t.values("Requirements", w.Requirements.Entries())
			t.weight(w.Weight)
			return t.String()
		}},
		part{core.SectionSkill, func() string {
			var t text
			t.field("Skill", w.Skill)
			return t.String()
		}},
		part{core.SectionEffects, func() string {
			var t text
			t.bullets(w.Passives)
			return t.String()
		}},
		part{core.SectionLocation, func() string { return foundIn(w.Locations) }},
	)
}

func Enemy(e *core.Enemy) iter.Seq[core.Chunk] {
	return sequence(core.EntityEnemy, e.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(e.Name, e.Category, core.EntityEnemy))
			t.line(foundIn(e.Locations))
			t.line(sentence(e.Description))
			return t.String()
		}},
		part{core.SectionCombat, func() string {
			var t text
			t.number("Health", e.Health)
			t.list("Weaknesses", e.Weaknesses)
			t.values("Resistances", e.Resistances.Entries())
			return t.String()
		}},
		part{core.SectionAbilities, func() string {
			var t text
			t.bullets(e.Attacks)
			return t.String()
		}},
		part{core.SectionStrategy, func() string { return e.Strategy }},
		part{core.SectionDrops, func() string {
			var t text
			t.list("Drops", e.Drops)
			return t.String()
		}},
	)
}

func Relic(r *core.Relic) iter.Seq[core.Chunk] {
	return sequence(core.EntityRelic, r.Name,
		part{core.SectionOverview, func() string {
			var t text
			kind := joinWords(r.Color, r.Size, "relic")
			t.line(identity(r.Name, kind, core.EntityRelic))
			if r.Nightfarer != "" {
				t.line("Usable only by " + r.Nightfarer + ".")
			}
			t.line(sentence(r.Description))
			return t.String()
		}},
		part{core.SectionEffects, func() string {
			var t text
			t.bullets(r.Effects)
			return t.String()
		}},
		part{core.SectionLocation, func() string { return foundIn(r.Locations) }},
	)
}

func Nightfarer(n *core.Nightfarer) iter.Seq[core.Chunk] {
	return sequence(core.EntityNightfarer, n.Name,
		part{core.SectionOverview, func() string {
			var t text
			kind := "nightfarer"
			if n.Role != "" {
				kind = n.Role + " nightfarer"
			}
			t.line(identity(n.Name, kind, core.EntityNightfarer))
			t.field("Difficulty", n.Difficulty)
			t.line(sentence(n.Description))
			return t.String()
		}},
		part{core.SectionAbilities, func() string {
			var t text
			t.field("Passive", n.Passive)
			t.field("Character skill", n.Skill)
			t.field("Ultimate art", n.UltimateArt)
			return t.String()
		}},
		part{core.SectionStats, func() string {
			var t text
			t.grades("Attributes", n.Attributes.Entries())
			t.field("Starting weapon", n.StartingWeapon)
			return t.String()
		}},
		part{core.SectionProgression, func() string {
			var t text
			for _, lv := range n.Progression {
				var stats []core.NamedValue
				for _, s := range []struct {
					name string
					v    *core.Number
				}{{"HP", lv.HP}, {"FP", lv.FP}, {"stamina", lv.Stamina}} {
					if s.v != nil {
						stats = append(stats, core.NamedValue{Name: s.name, Value: s.v.Int()})
					}
				}
				t.values("Level "+lv.Level.String(), stats)
			}
			return t.String()
		}},
	)
}

func Skill(s *core.Skill) iter.Seq[core.Chunk] {
	return sequence(core.EntitySkill, s.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(s.Name, joinWords(s.Category, "skill"), core.EntitySkill))
			if s.Nightfarer != "" {
				t.line("Exclusive to " + s.Nightfarer + ".")
			}
			t.line(sentence(s.Description))
			return t.String()
		}},
		part{core.SectionEffects, func() string { return s.Effect }},
		part{core.SectionStats, func() string {
			var t text
			t.number("FP cost", s.FPCost)
			if s.CooldownSeconds != nil {
				t.line("Cooldown: " + s.CooldownSeconds.String() + "s")
			}
			t.list("Weapon types", s.WeaponTypes)
			return t.String()
		}},
	)
}

func Talisman(tl *core.Talisman) iter.Seq[core.Chunk] {
	return sequence(core.EntityTalisman, tl.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(tl.Name, "talisman", core.EntityTalisman))
			t.field("Rarity", tl.Rarity)
			t.line(sentence(tl.Description))
			return t.String()
		}},
		part{core.SectionEffects, func() string { return tl.Effect }},
		part{core.SectionStats, func() string {
			var t text
			t.weight(tl.Weight)
			return t.String()
		}},
		part{core.SectionLocation, func() string { return foundIn(tl.Locations) }},
	)
}

func Spell(sp *core.Spell) iter.Seq[core.Chunk] {
	return sequence(core.EntitySpell, sp.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(sp.Name, firstNonEmpty(sp.Category, "spell"), core.EntitySpell))
			t.field("School", sp.School)
			t.line(sentence(sp.Description))
			return t.String()
		}},
		part{core.SectionEffects, func() string { return sp.Effect }},
		part{core.SectionStats, func() string {
			var t text
			t.number("FP cost", sp.FPCost)
			t.number("Slots", sp.Slots)
			t.values("Requirements", sp.Requirements.Entries())
			return t.String()
		}},
		part{core.SectionLocation, func() string { return foundIn(sp.Locations) }},
	)
}

func Armor(a *core.Armor) iter.Seq[core.Chunk] {
	return sequence(core.EntityArmor, a.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(a.Name, firstNonEmpty(a.Category, "armor piece"), core.EntityArmor))
			if a.Set != "" {
				t.line("Part of the " + a.Set + " set.")
			}
			t.line(sentence(a.Description))
			return t.String()
		}},
		part{core.SectionStats, func() string {
			var t text
			t.weight(a.Weight)
			t.number("Poise", a.Poise)
			t.values("Damage negation", a.Negation.Entries())
			t.values("Resistances", a.Resistances.Entries())
			return t.String()
		}},
		part{core.SectionEffects, func() string { return a.Effect }},
		part{core.SectionLocation, func() string { return foundIn(a.Locations) }},
	)
}

func Shield(sh *core.Shield) iter.Seq[core.Chunk] {
	return sequence(core.EntityShield, sh.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(sh.Name, firstNonEmpty(sh.Category, "shield"), core.EntityShield))
			t.field("Rarity", sh.Rarity)
			t.line(sentence(sh.Description))
			return t.String()
		}},
		part{core.SectionStats, func() string {
			var t text
			t.values("Guarded negation", sh.Guard.Entries())
			t.number("Guard boost", sh.GuardBoost)
			t.values("Attack", sh.Attack.Entries())
			t.grades("Scaling", sh.Scaling.Entries())
			t.values("Requirements", sh.Requirements.Entries())
			t.weight(sh.Weight)
			return t.String()
		}},
		part{core.SectionSkill, func() string {
			var t text
			t.field("Skill", sh.Skill)
			return t.String()
		}},
		part{core.SectionEffects, func() string {
			var t text
			t.bullets(sh.Passives)
			return t.String()
		}},
		part{core.SectionLocation, func() string { return foundIn(sh.Locations) }},
	)
}

func NPC(n *core.NPC) iter.Seq[core.Chunk] {
	return sequence(core.EntityNPC, n.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(n.Name, firstNonEmpty(n.Role, "character"), core.EntityNPC))
			t.line(foundIn(n.Locations))
			t.line(sentence(n.Description))
			return t.String()
		}},
		part{core.SectionServices, func() string {
			var t text
			t.list("Services", n.Services)
			return t.String()
		}},
		part{core.SectionLore, func() string {
			var t text
			t.field("Quest", n.Quest)
			return t.String()
		}},
		part{core.SectionDialogue, func() string {
			var t text
			for _, d := range n.Dialogue {
				if d != "" {
					t.line(strconv.Quote(d))
				}
			}
			return t.String()
		}},
	)
}

func Merchant(m *core.Merchant) iter.Seq[core.Chunk] {
	return sequence(core.EntityMerchant, m.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(m.Name, "merchant", core.EntityMerchant))
			t.line(foundIn(m.Locations))
			t.field("Accepts", m.Currency)
			t.line(sentence(m.Description))
			return t.String()
		}},
		part{core.SectionInventory, func() string {
			var t text
			for _, it := range m.Inventory {
				if it.Name == "" {
					continue
				}
				line := it.Name
				if it.Price != nil {
					line += ": " + it.Price.String()
					if cur := firstNonEmpty(it.Currency, m.Currency); cur != "" {
						line += " " + cur
					}
				}
				if it.Stock != nil {
					line += " (stock " + it.Stock.String() + ")"
				}
				t.line("- " + line)
			}
			return t.String()
		}},
	)
}

func Location(l *core.Location) iter.Seq[core.Chunk] {
	return sequence(core.EntityLocation, l.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(l.Name, firstNonEmpty(l.Category, "location"), core.EntityLocation))
			if l.Region != "" {
				t.line("Located in " + l.Region + ".")
			}
			t.line(sentence(l.Description))
			return t.String()
		}},
		part{core.SectionCombat, func() string {
			var t text
			t.list("Bosses", l.Bosses)
			t.list("Enemies", l.Enemies)
			return t.String()
		}},
		part{core.SectionDrops, func() string {
			var t text
			t.list("Items", l.Items)
			return t.String()
		}},
		part{core.SectionLocation, func() string {
			var t text
			t.field("Region", l.Region)
			t.list("Connects to", l.Connections)
			return t.String()
		}},
		part{core.SectionLore, func() string {
			var t text
			t.bullets(l.Events)
			return t.String()
		}},
	)
}

func Expedition(e *core.Expedition) iter.Seq[core.Chunk] {
	return sequence(core.EntityExpedition, e.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(e.Name, "expedition", core.EntityExpedition))
			if e.NightLord != "" {
				t.line("The Night Lord of this expedition is " + e.NightLord + ".")
			}
			t.line(sentence(e.Description))
			return t.String()
		}},
		part{core.SectionCombat, func() string {
			var t text
			t.list("Weaknesses", e.Weaknesses)
			t.list("Day bosses", e.DayBosses)
			t.number("Recommended level", e.RecommendedLevel)
			return t.String()
		}},
		part{core.SectionDrops, func() string {
			var t text
			t.list("Rewards", e.Rewards)
			return t.String()
		}},
	)
}

func Item(it *core.Item) iter.Seq[core.Chunk] {
	return sequence(core.EntityItem, it.Name,
		part{core.SectionOverview, func() string {
			var t text
			t.line(identity(it.Name, firstNonEmpty(it.Category, "item"), core.EntityItem))
			t.field("Rarity", it.Rarity)
			t.line(sentence(it.Description))
			return t.String()
		}},
		part{core.SectionEffects, func() string { return it.Effect }},
		part{core.SectionStats, func() string {
			var t text
			t.number("Max held", it.MaxHeld)
			t.number("Sell price", it.SellPrice)
			return t.String()
		}},
		part{core.SectionLocation, func() string { return foundIn(it.Locations) }},
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinWords(words ...string) string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

package normalize

import (
	"github.com/poiesic/nightdex/core"
)

// Transforms map one parsed record onto its normalized shape. They never
// mutate their input and return no record alongside an error.

func transformBoss(p *core.ParsedBoss) (*core.Boss, error) {
	health, err := count("health", p.Health)
	if err != nil {
		return nil, err
	}
	stance, err := count("stance", p.Stance)
	if err != nil {
		return nil, err
	}
	res, err := resistances(p.Resistances)
	if err != nil {
		return nil, err
	}
	ph, err := phases(p.Phases)
	if err != nil {
		return nil, err
	}
	locs := list(p.Locations)
	return &core.Boss{
		Header: core.NewHeader(core.EntityBoss, text(p.Name)),
		BossFields: core.BossFields{
			Category:      text(p.Category),
			Description:   prose(p.Description),
			Locations:     locs,
			Health:        health,
			Stance:        stance,
			Weaknesses:    lowerList(p.Weaknesses),
			StrongAgainst: lowerList(p.StrongAgainst),
			Resistances:   res,
			Phases:        ph,
			ParryInfo:     parry(p.ParryInfo),
			Drops:         list(p.Drops),
			Strategy:      prose(p.Strategy),
			Expedition:    text(p.Expedition),
		},
		Location: display(locs),
	}, nil
}

func transformWeapon(p *core.ParsedWeapon) (*core.Weapon, error) {
	sc, err := scaling(p.Scaling)
	if err != nil {
		return nil, err
	}
	req, err := requirements(p.Requirements)
	if err != nil {
		return nil, err
	}
	w, err := weight(p.Weight)
	if err != nil {
		return nil, err
	}
	locs := list(p.Locations)
	return &core.Weapon{
		Header: core.NewHeader(core.EntityWeapon, text(p.Name)),
		WeaponFields: core.WeaponFields{
			Category:     text(p.Category),
			Rarity:       text(p.Rarity),
			Description:  prose(p.Description),
			Attack:       damage(p.Attack),
			Scaling:      sc,
			Requirements: req,
			Skill:        text(p.Skill),
			Passives:     list(p.Passives),
			Weight:       w,
			Locations:    locs,
			Nightfarer:   text(p.Nightfarer),
		},
		Location: display(locs),
	}, nil
}

func transformEnemy(p *core.ParsedEnemy) (*core.Enemy, error) {
	health, err := count("health", p.Health)
	if err != nil {
		return nil, err
	}
	res, err := resistances(p.Resistances)
	if err != nil {
		return nil, err
	}
	locs := list(p.Locations)
	return &core.Enemy{
		Header: core.NewHeader(core.EntityEnemy, text(p.Name)),
		EnemyFields: core.EnemyFields{
			Category:    text(p.Category),
			Description: prose(p.Description),
			Locations:   locs,
			Health:      health,
			Weaknesses:  lowerList(p.Weaknesses),
			Resistances: res,
			Attacks:     list(p.Attacks),
			Drops:       list(p.Drops),
			Strategy:    prose(p.Strategy),
		},
		Location: display(locs),
	}, nil
}

func transformRelic(p *core.ParsedRelic) (*core.Relic, error) {
	locs := list(p.Locations)
	return &core.Relic{
		Header: core.NewHeader(core.EntityRelic, text(p.Name)),
		RelicFields: core.RelicFields{
			Color:       text(p.Color),
			Size:        text(p.Size),
			Description: prose(p.Description),
			Effects:     list(p.Effects),
			Nightfarer:  text(p.Nightfarer),
			Locations:   locs,
		},
		Location: display(locs),
	}, nil
}

func transformNightfarer(p *core.ParsedNightfarer) (*core.Nightfarer, error) {
	attrs, err := attributes(p.Attributes)
	if err != nil {
		return nil, err
	}
	prog, err := progression(p.Progression)
	if err != nil {
		return nil, err
	}
	return &core.Nightfarer{
		Header: core.NewHeader(core.EntityNightfarer, text(p.Name)),
		NightfarerFields: core.NightfarerFields{
			Role:           text(p.Role),
			Description:    prose(p.Description),
			Passive:        prose(p.Passive),
			Skill:          prose(p.Skill),
			UltimateArt:    prose(p.UltimateArt),
			Attributes:     attrs,
			Progression:    prog,
			StartingWeapon: text(p.StartingWeapon),
			Difficulty:     text(p.Difficulty),
		},
	}, nil
}

func transformSkill(p *core.ParsedSkill) (*core.Skill, error) {
	fp, err := count("fp cost", p.FPCost)
	if err != nil {
		return nil, err
	}
	cd, err := count("cooldown", p.CooldownSeconds)
	if err != nil {
		return nil, err
	}
	return &core.Skill{
		Header: core.NewHeader(core.EntitySkill, text(p.Name)),
		SkillFields: core.SkillFields{
			Category:        text(p.Category),
			Description:     prose(p.Description),
			Effect:          prose(p.Effect),
			FPCost:          fp,
			CooldownSeconds: cd,
			Nightfarer:      text(p.Nightfarer),
			WeaponTypes:     list(p.WeaponTypes),
		},
	}, nil
}

func transformTalisman(p *core.ParsedTalisman) (*core.Talisman, error) {
	w, err := weight(p.Weight)
	if err != nil {
		return nil, err
	}
	locs := list(p.Locations)
	return &core.Talisman{
		Header: core.NewHeader(core.EntityTalisman, text(p.Name)),
		TalismanFields: core.TalismanFields{
			Rarity:      text(p.Rarity),
			Description: prose(p.Description),
			Effect:      prose(p.Effect),
			Weight:      w,
			Locations:   locs,
		},
		Location: display(locs),
	}, nil
}

func transformSpell(p *core.ParsedSpell) (*core.Spell, error) {
	fp, err := count("fp cost", p.FPCost)
	if err != nil {
		return nil, err
	}
	slots, err := count("slots", p.Slots)
	if err != nil {
		return nil, err
	}
	req, err := requirements(p.Requirements)
	if err != nil {
		return nil, err
	}
	locs := list(p.Locations)
	return &core.Spell{
		Header: core.NewHeader(core.EntitySpell, text(p.Name)),
		SpellFields: core.SpellFields{
			Category:     text(p.Category),
			School:       text(p.School),
			Description:  prose(p.Description),
			Effect:       prose(p.Effect),
			FPCost:       fp,
			Slots:        slots,
			Requirements: req,
			Locations:    locs,
		},
		Location: display(locs),
	}, nil
}

func transformArmor(p *core.ParsedArmor) (*core.Armor, error) {
	w, err := weight(p.Weight)
	if err != nil {
		return nil, err
	}
	poise, err := count("poise", p.Poise)
	if err != nil {
		return nil, err
	}
	res, err := resistances(p.Resistances)
	if err != nil {
		return nil, err
	}
	locs := list(p.Locations)
	return &core.Armor{
		Header: core.NewHeader(core.EntityArmor, text(p.Name)),
		ArmorFields: core.ArmorFields{
			Category:    text(p.Category),
			Set:         text(p.Set),
			Description: prose(p.Description),
			Weight:      w,
			Poise:       poise,
			Negation:    damage(p.Negation),
			Resistances: res,
			Effect:      prose(p.Effect),
			Locations:   locs,
		},
		Location: display(locs),
	}, nil
}

func transformShield(p *core.ParsedShield) (*core.Shield, error) {
	boost, err := count("guard boost", p.GuardBoost)
	if err != nil {
		return nil, err
	}
	sc, err := scaling(p.Scaling)
	if err != nil {
		return nil, err
	}
	req, err := requirements(p.Requirements)
	if err != nil {
		return nil, err
	}
	w, err := weight(p.Weight)
	if err != nil {
		return nil, err
	}
	locs := list(p.Locations)
	return &core.Shield{
		Header: core.NewHeader(core.EntityShield, text(p.Name)),
		ShieldFields: core.ShieldFields{
			Category:     text(p.Category),
			Rarity:       text(p.Rarity),
			Description:  prose(p.Description),
			Guard:        damage(p.Guard),
			GuardBoost:   boost,
			Attack:       damage(p.Attack),
			Scaling:      sc,
			Requirements: req,
			Skill:        text(p.Skill),
			Passives:     list(p.Passives),
			Weight:       w,
			Locations:    locs,
		},
		Location: display(locs),
	}, nil
}

func transformNPC(p *core.ParsedNPC) (*core.NPC, error) {
	locs := list(p.Locations)
	var dialogue []string
	for _, d := range p.Dialogue {
		if d = text(d); d != "" {
			dialogue = append(dialogue, d)
		}
	}
	return &core.NPC{
		Header: core.NewHeader(core.EntityNPC, text(p.Name)),
		NPCFields: core.NPCFields{
			Role:        text(p.Role),
			Description: prose(p.Description),
			Locations:   locs,
			Services:    list(p.Services),
			Quest:       prose(p.Quest),
			Dialogue:    dialogue,
		},
		Location: display(locs),
	}, nil
}

func transformMerchant(p *core.ParsedMerchant) (*core.Merchant, error) {
	inv, err := inventory(p.Inventory)
	if err != nil {
		return nil, err
	}
	locs := list(p.Locations)
	return &core.Merchant{
		Header: core.NewHeader(core.EntityMerchant, text(p.Name)),
		MerchantFields: core.MerchantFields{
			Description: prose(p.Description),
			Locations:   locs,
			Currency:    text(p.Currency),
			Inventory:   inv,
		},
		Location: display(locs),
	}, nil
}

func transformLocation(p *core.ParsedLocation) (*core.Location, error) {
	return &core.Location{
		Header: core.NewHeader(core.EntityLocation, text(p.Name)),
		LocationFields: core.LocationFields{
			Category:    text(p.Category),
			Region:      text(p.Region),
			Description: prose(p.Description),
			Bosses:      list(p.Bosses),
			Enemies:     list(p.Enemies),
			Items:       list(p.Items),
			Connections: list(p.Connections),
			Events:      list(p.Events),
		},
	}, nil
}

func transformExpedition(p *core.ParsedExpedition) (*core.Expedition, error) {
	level, err := count("recommended level", p.RecommendedLevel)
	if err != nil {
		return nil, err
	}
	return &core.Expedition{
		Header: core.NewHeader(core.EntityExpedition, text(p.Name)),
		ExpeditionFields: core.ExpeditionFields{
			NightLord:        text(p.NightLord),
			Description:      prose(p.Description),
			Weaknesses:       lowerList(p.Weaknesses),
			DayBosses:        list(p.DayBosses),
			Rewards:          list(p.Rewards),
			RecommendedLevel: level,
		},
	}, nil
}

func transformItem(p *core.ParsedItem) (*core.Item, error) {
	held, err := count("max held", p.MaxHeld)
	if err != nil {
		return nil, err
	}
	price, err := count("sell price", p.SellPrice)
	if err != nil {
		return nil, err
	}
	locs := list(p.Locations)
	return &core.Item{
		Header: core.NewHeader(core.EntityItem, text(p.Name)),
		ItemFields: core.ItemFields{
			Category:    text(p.Category),
			Rarity:      text(p.Rarity),
			Description: prose(p.Description),
			Effect:      prose(p.Effect),
			MaxHeld:     held,
			SellPrice:   price,
			Locations:   locs,
		},
		Location: display(locs),
	}, nil
}

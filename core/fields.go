package core

// The *Fields structs carry the entity-specific attributes shared by the
// parsed and normalized shapes. Parsed records hold them as scraped;
// normalized records hold the cleaned values.

type BossFields struct {
	Category      string       `json:"category,omitempty"`
	Description   string       `json:"description,omitempty"`
	Locations     []string     `json:"locations,omitempty"`
	Health        *Number      `json:"health,omitempty"`
	Stance        *Number      `json:"stance,omitempty"`
	Weaknesses    []string     `json:"weaknesses,omitempty"`
	StrongAgainst []string     `json:"strongAgainst,omitempty"`
	Resistances   *Resistances `json:"resistances,omitempty"`
	Phases        []Phase      `json:"phases,omitempty"`
	ParryInfo     *ParryInfo   `json:"parryInfo,omitempty"`
	Drops         []string     `json:"drops,omitempty"`
	Strategy      string       `json:"strategy,omitempty"`
	Expedition    string       `json:"expedition,omitempty"`
}

type WeaponFields struct {
	Category     string        `json:"category,omitempty"`
	Rarity       string        `json:"rarity,omitempty"`
	Description  string        `json:"description,omitempty"`
	Attack       *DamageStats  `json:"attack,omitempty"`
	Scaling      *Scaling      `json:"scaling,omitempty"`
	Requirements *Requirements `json:"requirements,omitempty"`
	Skill        string        `json:"skill,omitempty"`
	Passives     []string      `json:"passives,omitempty"`
	Weight       *float64      `json:"weight,omitempty"`
	Locations    []string      `json:"locations,omitempty"`
	Nightfarer   string        `json:"nightfarer,omitempty"`
}

type EnemyFields struct {
	Category    string       `json:"category,omitempty"`
	Description string       `json:"description,omitempty"`
	Locations   []string     `json:"locations,omitempty"`
	Health      *Number      `json:"health,omitempty"`
	Weaknesses  []string     `json:"weaknesses,omitempty"`
	Resistances *Resistances `json:"resistances,omitempty"`
	Attacks     []string     `json:"attacks,omitempty"`
	Drops       []string     `json:"drops,omitempty"`
	Strategy    string       `json:"strategy,omitempty"`
}

type RelicFields struct {
	Color       string   `json:"color,omitempty"`
	Size        string   `json:"size,omitempty"`
	Description string   `json:"description,omitempty"`
	Effects     []string `json:"effects,omitempty"`
	Nightfarer  string   `json:"nightfarer,omitempty"`
	Locations   []string `json:"locations,omitempty"`
}

type NightfarerFields struct {
	Role           string       `json:"role,omitempty"`
	Description    string       `json:"description,omitempty"`
	Passive        string       `json:"passive,omitempty"`
	Skill          string       `json:"skill,omitempty"`
	UltimateArt    string       `json:"ultimateArt,omitempty"`
	Attributes     *Attributes  `json:"attributes,omitempty"`
	Progression    []LevelStats `json:"progression,omitempty"`
	StartingWeapon string       `json:"startingWeapon,omitempty"`
	Difficulty     string       `json:"difficulty,omitempty"`
}

type SkillFields struct {
	Category        string   `json:"category,omitempty"`
	Description     string   `json:"description,omitempty"`
	Effect          string   `json:"effect,omitempty"`
	FPCost          *Number  `json:"fpCost,omitempty"`
	CooldownSeconds *Number  `json:"cooldownSeconds,omitempty"`
	Nightfarer      string   `json:"nightfarer,omitempty"`
	WeaponTypes     []string `json:"weaponTypes,omitempty"`
}

type TalismanFields struct {
	Rarity      string   `json:"rarity,omitempty"`
	Description string   `json:"description,omitempty"`
	Effect      string   `json:"effect,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Locations   []string `json:"locations,omitempty"`
}

type SpellFields struct {
	Category     string        `json:"category,omitempty"`
	School       string        `json:"school,omitempty"`
	Description  string        `json:"description,omitempty"`
	Effect       string        `json:"effect,omitempty"`
	FPCost       *Number       `json:"fpCost,omitempty"`
	Slots        *Number       `json:"slots,omitempty"`
	Requirements *Requirements `json:"requirements,omitempty"`
	Locations    []string      `json:"locations,omitempty"`
}

type ArmorFields struct {
	Category    string       `json:"category,omitempty"`
	Set         string       `json:"set,omitempty"`
	Description string       `json:"description,omitempty"`
	Weight      *float64     `json:"weight,omitempty"`
	Poise       *Number      `json:"poise,omitempty"`
	Negation    *DamageStats `json:"negation,omitempty"`
	Resistances *Resistances `json:"resistances,omitempty"`
	Effect      string       `json:"effect,omitempty"`
	Locations   []string     `json:"locations,omitempty"`
}

type ShieldFields struct {
	Category     string        `json:"category,omitempty"`
	Rarity       string        `json:"rarity,omitempty"`
	Description  string        `json:"description,omitempty"`
	Guard        *DamageStats  `json:"guard,omitempty"`
	GuardBoost   *Number       `json:"guardBoost,omitempty"`
	Attack       *DamageStats  `json:"attack,omitempty"`
	Scaling      *Scaling      `json:"scaling,omitempty"`
	Requirements *Requirements `json:"requirements,omitempty"`
	Skill        string        `json:"skill,omitempty"`
	Passives     []string      `json:"passives,omitempty"`
	Weight       *float64      `json:"weight,omitempty"`
	Locations    []string      `json:"locations,omitempty"`
}

type NPCFields struct {
	Role        string   `json:"role,omitempty"`
	Description string   `json:"description,omitempty"`
	Locations   []string `json:"locations,omitempty"`
	Services    []string `json:"services,omitempty"`
	Quest       string   `json:"quest,omitempty"`
	Dialogue    []string `json:"dialogue,omitempty"`
}

type MerchantFields struct {
	Description string     `json:"description,omitempty"`
	Locations   []string   `json:"locations,omitempty"`
	Currency    string     `json:"currency,omitempty"`
	Inventory   []ShopItem `json:"inventory,omitempty"`
}

type LocationFields struct {
	Category    string   `json:"category,omitempty"`
	Region      string   `json:"region,omitempty"`
	Description string   `json:"description,omitempty"`
	Bosses      []string `json:"bosses,omitempty"`
	Enemies     []string `json:"enemies,omitempty"`
	Items       []string `json:"items,omitempty"`
	Connections []string `json:"connections,omitempty"`
	Events      []string `json:"events,omitempty"`
}

type ExpeditionFields struct {
	NightLord        string   `json:"nightLord,omitempty"`
	Description      string   `json:"description,omitempty"`
	Weaknesses       []string `json:"weaknesses,omitempty"`
	DayBosses        []string `json:"dayBosses,omitempty"`
	Rewards          []string `json:"rewards,omitempty"`
	RecommendedLevel *Number  `json:"recommendedLevel,omitempty"`
}

type ItemFields struct {
	Category    string   `json:"category,omitempty"`
	Rarity      string   `json:"rarity,omitempty"`
	Description string   `json:"description,omitempty"`
	Effect      string   `json:"effect,omitempty"`
	MaxHeld     *Number  `json:"maxHeld,omitempty"`
	SellPrice   *Number  `json:"sellPrice,omitempty"`
	Locations   []string `json:"locations,omitempty"`
}

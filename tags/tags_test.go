package tags

import (
	"regexp"
	"testing"

	"github.com/poiesic/nightdex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tagPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Scarlet Rot", "scarlet-rot"},
		{"scarlet-rot ", "scarlet-rot"},
		{"  Night   Lord\t", "night-lord"},
		{"Night's Cavalry", "nights-cavalry"},
		{"--Fire--", "fire"},
		{"Colossal Sword (Great)", "colossal-sword-great"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestSet(t *testing.T) {
	var s Set
	s.Add("Fire", "fire ", "", "  ", "Holy")
	s.AddSuffixed("weak", "Lightning", "")
	s.AddIf(false, "never")

	assert.Equal(t, []string{"fire", "holy", "lightning-weak"}, s.Slice())
	assert.True(t, s.Has("FIRE"))
	assert.Equal(t, 3, s.Len())

	var empty Set
	assert.NotNil(t, empty.Slice())
	assert.Empty(t, empty.Slice())
}

func TestBossGladius(t *testing.T) {
	b := &core.Boss{
		Header: core.NewHeader(core.EntityBoss, "Gladius"),
		BossFields: core.BossFields{
			Category:   "Night Lord",
			Weaknesses: []string{"fire"},
			Stance:     core.NewNumber(160),
			ParryInfo:  &core.ParryInfo{CanParry: false},
		},
	}

	got := Boss(b)
	for _, want := range []string{"night-lord", "fire-weak", "high-stance", "stance-breakable", "non-parryable"} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "parryable")
	assert.NotContains(t, got, "multi-phase")
	assert.Equal(t, got, Boss(b))
}

func TestBossThresholds(t *testing.T) {
	tests := []struct {
		name   string
		stance *core.Number
		want   []string
		absent []string
	}{
		{"no stance", nil, nil, []string{"high-stance", "stance-breakable"}},
		{"zero stance", core.NewNumber(0), nil, []string{"high-stance", "stance-breakable"}},
		{"low stance", core.NewNumber(80), []string{"stance-breakable"}, []string{"high-stance"}},
		{"boundary", core.NewNumber(150), []string{"high-stance", "stance-breakable"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Boss(&core.Boss{BossFields: core.BossFields{Stance: tt.stance}})
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
		})
	}
}

func TestStatusKeywordScan(t *testing.T) {
	w := &core.Weapon{WeaponFields: core.WeaponFields{
		Category: "Katana",
		Passives: []string{"Causes blood loss buildup (55)", "Adds Frostbite on hit"},
		Attack:   &core.DamageStats{Physical: core.NewNumber(115), Fire: core.NewNumber(0), Holy: core.NewNumber(40)},
		Scaling:  &core.Scaling{Strength: "C", Dexterity: "A"},
		Weight:   floatPtr(5.5),
	}}

	got := Weapon(w)
	assert.Equal(t, []string{"bleed", "dexterity-scaling", "frost", "holy-damage", "katana"}, got)
}

func TestKeywordScanWholeWords(t *testing.T) {
	it := &core.Item{ItemFields: core.ItemFields{Effect: "Protects against bleeding? No. Improves poisonous resolve."}}
	got := Item(it)
	assert.Contains(t, got, "bleed")
	assert.NotContains(t, got, "poison")
}

func TestAllTaggersProduceValidTags(t *testing.T) {
	messy := "  Weird -- Value!! (Ünïcode) "
	outputs := [][]string{
		Boss(&core.Boss{BossFields: core.BossFields{Category: messy, Weaknesses: []string{messy, ""}, StrongAgainst: []string{"Holy"}}}),
		Weapon(&core.Weapon{WeaponFields: core.WeaponFields{Category: messy, Nightfarer: "Wylder", Weight: floatPtr(12)}}),
		Enemy(&core.Enemy{EnemyFields: core.EnemyFields{Weaknesses: []string{"Scarlet Rot"}}}),
		Relic(&core.Relic{RelicFields: core.RelicFields{Color: "Burning", Size: "Grand", Effects: []string{"Improves fire attack power"}}}),
		Nightfarer(&core.Nightfarer{NightfarerFields: core.NightfarerFields{Role: messy, Attributes: &core.Attributes{Vigor: "S"}}}),
		Skill(&core.Skill{SkillFields: core.SkillFields{FPCost: core.NewNumber(35), WeaponTypes: []string{"Greatsword"}}}),
		Talisman(&core.Talisman{TalismanFields: core.TalismanFields{Effect: "Raises sleep resistance"}}),
		Spell(&core.Spell{SpellFields: core.SpellFields{School: "Carian Sorcery", Slots: core.NewNumber(2)}}),
		Armor(&core.Armor{ArmorFields: core.ArmorFields{Set: "Night's Cavalry", Poise: core.NewNumber(60)}}),
		Shield(&core.Shield{ShieldFields: core.ShieldFields{GuardBoost: core.NewNumber(70)}}),
		NPC(&core.NPC{NPCFields: core.NPCFields{Services: []string{"Level Up"}, Quest: "x"}}),
		Merchant(&core.Merchant{MerchantFields: core.MerchantFields{Currency: "Murk"}}),
		Location(&core.Location{LocationFields: core.LocationFields{Region: "Limveld", Bosses: []string{"x"}}}),
		Expedition(&core.Expedition{ExpeditionFields: core.ExpeditionFields{NightLord: "Gladius"}}),
		Item(&core.Item{ItemFields: core.ItemFields{MaxHeld: core.NewNumber(3)}}),
	}

	for i, got := range outputs {
		require.NotNil(t, got, "output %d", i)
		assert.IsIncreasing(t, got, "output %d", i)
		for _, tag := range got {
			assert.Regexp(t, tagPattern, tag, "output %d", i)
		}
	}
}

func TestEmptyRecordsNeverFail(t *testing.T) {
	assert.Empty(t, Boss(&core.Boss{}))
	assert.Empty(t, Weapon(&core.Weapon{}))
	assert.Empty(t, Nightfarer(&core.Nightfarer{}))
	assert.Equal(t, []string{"merchant"}, Merchant(&core.Merchant{}))
}

func floatPtr(f float64) *float64 {
	return &f
}

package tags

import (
	"regexp"
	"strings"

	"github.com/poiesic/nightdex/core"
)

// Thresholds used by the per-type rules.
const (
	HighStanceThreshold     = 150
	HighFPCostThreshold     = 30
	LowFPCostThreshold      = 10
	HighPoiseThreshold      = 50
	HighGuardBoostThreshold = 60
	LargeInventoryThreshold = 10
	LongCooldownSeconds     = 60
	HeavyWeightThreshold    = 10.0
	LightWeightThreshold    = 4.0
)

// statusKeywords maps free-text phrases onto status-effect tags. Matching
// is whole-word and case-insensitive.
var statusKeywords = []struct {
	tag     string
	pattern *regexp.Regexp
}{
	{"bleed", wordPattern("bleed", "bleeds", "bleeding", "blood loss", "hemorrhage")},
	{"frost", wordPattern("frost", "frostbite")},
	{"poison", wordPattern("poison", "poisoned")},
	{"scarlet-rot", wordPattern("scarlet rot", "rot buildup")},
	{"sleep", wordPattern("sleep")},
	{"madness", wordPattern("madness")},
	{"death-blight", wordPattern("death blight", "deathblight")},
}

var elements = []string{"magic", "fire", "lightning", "holy"}

var elementKeywords = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(elements))
	for _, el := range elements {
		m[el] = wordPattern(el+" damage", el+" attack", el+" attacks")
	}
	return m
}()

func wordPattern(phrases ...string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// scanStatus adds a tag for every status effect mentioned in texts.
func scanStatus(s *Set, texts ...string) {
	text := strings.Join(texts, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, kw := range statusKeywords {
		s.AddIf(kw.pattern.MatchString(text), kw.tag)
	}
}

// scanElements adds "<element>-damage" for every element named as a
// damage source in texts.
func scanElements(s *Set, texts ...string) {
	text := strings.Join(texts, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, el := range elements {
		s.AddIf(elementKeywords[el].MatchString(text), el+"-damage")
	}
}

// addDamageElements adds "<element>-damage" for every non-physical element
// with a positive value.
func addDamageElements(s *Set, d *core.DamageStats) {
	for _, e := range d.Entries() {
		if e.Name != "physical" && e.Value > 0 {
			s.Add(e.Name + "-damage")
		}
	}
}

// addHighScaling adds "<attribute>-scaling" for S and A grades.
func addHighScaling(s *Set, sc *core.Scaling) {
	for _, g := range sc.Entries() {
		if isHighGrade(g.Grade) {
			s.Add(g.Name + "-scaling")
		}
	}
}

func isHighGrade(grade string) bool {
	switch strings.ToUpper(strings.TrimSpace(grade)) {
	case "S", "A":
		return true
	}
	return false
}

func addWeightClass(s *Set, weight *float64, kind string) {
	if weight == nil {
		return
	}
	switch {
	case *weight >= HeavyWeightThreshold:
		s.Add("heavy-" + kind)
	case *weight > 0 && *weight < LightWeightThreshold:
		s.Add("light-" + kind)
	}
}

func addFPCost(s *Set, cost *core.Number) {
	if cost == nil {
		return
	}
	switch c := cost.Int(); {
	case c == 0:
		s.Add("no-fp-cost")
	case c >= HighFPCostThreshold:
		s.Add("high-fp-cost")
	case c <= LowFPCostThreshold:
		s.Add("low-fp-cost")
	}
}

func addExclusive(s *Set, nightfarer string) {
	s.AddSuffixed("only", nightfarer)
}

package normalize

import (
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/nightdex/core"
)

// text trims s and collapses internal whitespace runs to one space.
func text(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// prose cleans multi-line text line by line and drops blank lines.
func prose(s string) string {
	lines := strings.Split(s, "\n")
	var kept []string
	for _, l := range lines {
		if l = text(l); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// list cleans every value, drops blanks and removes case-insensitive
// duplicates keeping the first occurrence. An empty result is nil.
func list(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = text(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// lowerList is list with lower-cased values, for fields that feed tags.
func lowerList(values []string) []string {
	out := list(values)
	for i, v := range out {
		out[i] = strings.ToLower(v)
	}
	return out
}

func display(values []string) string {
	return strings.Join(values, ", ")
}

func number(n *core.Number) *core.Number {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

func count(field string, n *core.Number) (*core.Number, error) {
	if n != nil && *n < 0 {
		return nil, fmt.Errorf("%s: %w: %d", field, ErrNegativeValue, *n)
	}
	return number(n), nil
}

func weight(w *float64) (*float64, error) {
	if w == nil {
		return nil, nil
	}
	if *w < 0 {
		return nil, fmt.Errorf("weight: %w: %g", ErrNegativeValue, *w)
	}
	v := *w
	return &v, nil
}

func damage(d *core.DamageStats) *core.DamageStats {
	if d.IsEmpty() {
		return nil
	}
	return &core.DamageStats{
		Physical:  number(d.Physical),
		Magic:     number(d.Magic),
		Fire:      number(d.Fire),
		Lightning: number(d.Lightning),
		Holy:      number(d.Holy),
	}
}

func resistances(r *core.Resistances) (*core.Resistances, error) {
	if r.IsEmpty() {
		return nil, nil
	}
	for _, e := range r.Entries() {
		if e.Value < 0 {
			return nil, fmt.Errorf("resistance %s: %w: %d", e.Name, ErrNegativeValue, e.Value)
		}
	}
	return &core.Resistances{
		Poison:      number(r.Poison),
		ScarletRot:  number(r.ScarletRot),
		Bleed:       number(r.Bleed),
		Frost:       number(r.Frost),
		Sleep:       number(r.Sleep),
		Madness:     number(r.Madness),
		DeathBlight: number(r.DeathBlight),
	}, nil
}

func requirements(r *core.Requirements) (*core.Requirements, error) {
	if r.IsEmpty() {
		return nil, nil
	}
	for _, e := range r.Entries() {
		if e.Value < 0 {
			return nil, fmt.Errorf("requirement %s: %w: %d", e.Name, ErrNegativeValue, e.Value)
		}
	}
	return &core.Requirements{
		Strength:     number(r.Strength),
		Dexterity:    number(r.Dexterity),
		Intelligence: number(r.Intelligence),
		Faith:        number(r.Faith),
		Arcane:       number(r.Arcane),
	}, nil
}

// grade upper-cases a letter grade. "-" and blanks mean no grade.
func grade(field, g string) (string, error) {
	g = strings.ToUpper(strings.TrimSpace(g))
	switch g {
	case "", "-":
		return "", nil
	case "S", "A", "B", "C", "D", "E":
		return g, nil
	}
	return "", fmt.Errorf("%s: %w: %q", field, ErrInvalidGrade, g)
}

func grades(fields []string, values []*string) error {
	for i, v := range values {
		g, err := grade(fields[i], *v)
		if err != nil {
			return err
		}
		*v = g
	}
	return nil
}

func scaling(s *core.Scaling) (*core.Scaling, error) {
	if s == nil {
		return nil, nil
	}
	out := *s
	err := grades(
		[]string{"strength", "dexterity", "intelligence", "faith", "arcane"},
		[]*string{&out.Strength, &out.Dexterity, &out.Intelligence, &out.Faith, &out.Arcane},
	)
	if err != nil || out.IsEmpty() {
		return nil, err
	}
	return &out, nil
}

func attributes(a *core.Attributes) (*core.Attributes, error) {
	if a == nil {
		return nil, nil
	}
	out := *a
	err := grades(
		[]string{"vigor", "mind", "endurance", "strength", "dexterity", "intelligence", "faith", "arcane"},
		[]*string{&out.Vigor, &out.Mind, &out.Endurance, &out.Strength, &out.Dexterity, &out.Intelligence, &out.Faith, &out.Arcane},
	)
	if err != nil || out.IsEmpty() {
		return nil, err
	}
	return &out, nil
}

func parry(p *core.ParryInfo) *core.ParryInfo {
	if p == nil {
		return nil
	}
	return &core.ParryInfo{CanParry: p.CanParry, Notes: text(p.Notes)}
}

func phases(in []core.Phase) ([]core.Phase, error) {
	var out []core.Phase
	for i, p := range in {
		ph := core.Phase{Name: text(p.Name), Description: prose(p.Description), HealthThreshold: number(p.HealthThreshold)}
		if ph.Name == "" && ph.Description == "" {
			continue
		}
		if t := ph.HealthThreshold; t != nil && (*t < 0 || *t > 100) {
			return nil, fmt.Errorf("phase %d: %w: %d", i+1, ErrInvalidThreshold, *t)
		}
		out = append(out, ph)
	}
	return out, nil
}

// progression validates levels and orders rows by level.
func progression(in []core.LevelStats) ([]core.LevelStats, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]core.LevelStats, 0, len(in))
	for _, row := range in {
		if row.Level <= 0 {
			return nil, fmt.Errorf("progression: %w: %d", ErrInvalidLevel, row.Level)
		}
		out = append(out, core.LevelStats{
			Level:   row.Level,
			HP:      number(row.HP),
			FP:      number(row.FP),
			Stamina: number(row.Stamina),
		})
	}
	slices.SortStableFunc(out, func(a, b core.LevelStats) int {
		return int(a.Level) - int(b.Level)
	})
	return out, nil
}

func inventory(in []core.ShopItem) ([]core.ShopItem, error) {
	var out []core.ShopItem
	for _, it := range in {
		name := text(it.Name)
		if name == "" {
			continue
		}
		price, err := count("price of "+name, it.Price)
		if err != nil {
			return nil, err
		}
		stock, err := count("stock of "+name, it.Stock)
		if err != nil {
			return nil, err
		}
		out = append(out, core.ShopItem{Name: name, Price: price, Currency: text(it.Currency), Stock: stock})
	}
	return out, nil
}

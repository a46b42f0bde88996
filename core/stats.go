package core

// DamageStats holds per-element values (attack power, negation or guard).
// Field order is the canonical display order.
type DamageStats struct {
	Physical  *Number `json:"physical,omitempty"`
	Magic     *Number `json:"magic,omitempty"`
	Fire      *Number `json:"fire,omitempty"`
	Lightning *Number `json:"lightning,omitempty"`
	Holy      *Number `json:"holy,omitempty"`
}

// NamedValue is one labelled entry of a fixed-order stat block.
type NamedValue struct {
	Name  string
	Value int
}

// Entries returns the populated damage values in canonical order.
func (d *DamageStats) Entries() []NamedValue {
	if d == nil {
		return nil
	}
	return collectInts([]string{"physical", "magic", "fire", "lightning", "holy"},
		[]*Number{d.Physical, d.Magic, d.Fire, d.Lightning, d.Holy})
}

// IsEmpty reports whether no value is set.
func (d *DamageStats) IsEmpty() bool {
	return len(d.Entries()) == 0
}

// Resistances holds status-effect resistance values.
type Resistances struct {
	Poison      *Number `json:"poison,omitempty"`
	ScarletRot  *Number `json:"scarletRot,omitempty"`
	Bleed       *Number `json:"bleed,omitempty"`
	Frost       *Number `json:"frost,omitempty"`
	Sleep       *Number `json:"sleep,omitempty"`
	Madness     *Number `json:"madness,omitempty"`
	DeathBlight *Number `json:"deathBlight,omitempty"`
}

// Entries returns the populated resistances in canonical order.
func (r *Resistances) Entries() []NamedValue {
	if r == nil {
		return nil
	}
	return collectInts([]string{"poison", "scarlet rot", "bleed", "frost", "sleep", "madness", "death blight"},
		[]*Number{r.Poison, r.ScarletRot, r.Bleed, r.Frost, r.Sleep, r.Madness, r.DeathBlight})
}

// IsEmpty reports whether no value is set.
func (r *Resistances) IsEmpty() bool {
	return len(r.Entries()) == 0
}

// Scaling holds attribute scaling grades (S, A, B, C, D, E).
type Scaling struct {
	Strength     string `json:"strength,omitempty"`
	Dexterity    string `json:"dexterity,omitempty"`
	Intelligence string `json:"intelligence,omitempty"`
	Faith        string `json:"faith,omitempty"`
	Arcane       string `json:"arcane,omitempty"`
}

// NamedGrade is one labelled letter grade.
type NamedGrade struct {
	Name  string
	Grade string
}

// Entries returns the populated grades in canonical order.
func (s *Scaling) Entries() []NamedGrade {
	if s == nil {
		return nil
	}
	names := []string{"strength", "dexterity", "intelligence", "faith", "arcane"}
	values := []string{s.Strength, s.Dexterity, s.Intelligence, s.Faith, s.Arcane}
	var out []NamedGrade
	for i, v := range values {
		if v != "" {
			out = append(out, NamedGrade{Name: names[i], Grade: v})
		}
	}
	return out
}

// IsEmpty reports whether no grade is set.
func (s *Scaling) IsEmpty() bool {
	return len(s.Entries()) == 0
}

// Requirements holds minimum attribute values.
type Requirements struct {
	Strength     *Number `json:"strength,omitempty"`
	Dexterity    *Number `json:"dexterity,omitempty"`
	Intelligence *Number `json:"intelligence,omitempty"`
	Faith        *Number `json:"faith,omitempty"`
	Arcane       *Number `json:"arcane,omitempty"`
}

// Entries returns the populated requirements in canonical order.
func (r *Requirements) Entries() []NamedValue {
	if r == nil {
		return nil
	}
	return collectInts([]string{"strength", "dexterity", "intelligence", "faith", "arcane"},
		[]*Number{r.Strength, r.Dexterity, r.Intelligence, r.Faith, r.Arcane})
}

// IsEmpty reports whether no requirement is set.
func (r *Requirements) IsEmpty() bool {
	return len(r.Entries()) == 0
}

// Attributes holds a nightfarer's attribute growth grades.
type Attributes struct {
	Vigor        string `json:"vigor,omitempty"`
	Mind         string `json:"mind,omitempty"`
	Endurance    string `json:"endurance,omitempty"`
	Strength     string `json:"strength,omitempty"`
	Dexterity    string `json:"dexterity,omitempty"`
	Intelligence string `json:"intelligence,omitempty"`
	Faith        string `json:"faith,omitempty"`
	Arcane       string `json:"arcane,omitempty"`
}

// Entries returns the populated grades in canonical order.
func (a *Attributes) Entries() []NamedGrade {
	if a == nil {
		return nil
	}
	names := []string{"vigor", "mind", "endurance", "strength", "dexterity", "intelligence", "faith", "arcane"}
	values := []string{a.Vigor, a.Mind, a.Endurance, a.Strength, a.Dexterity, a.Intelligence, a.Faith, a.Arcane}
	var out []NamedGrade
	for i, v := range values {
		if v != "" {
			out = append(out, NamedGrade{Name: names[i], Grade: v})
		}
	}
	return out
}

// IsEmpty reports whether no grade is set.
func (a *Attributes) IsEmpty() bool {
	return len(a.Entries()) == 0
}

// ParryInfo describes whether an enemy's attacks can be parried.
type ParryInfo struct {
	CanParry bool   `json:"canParry"`
	Notes    string `json:"notes,omitempty"`
}

// Phase is one stage of a multi-phase fight.
type Phase struct {
	Name            string  `json:"name,omitempty"`
	Description     string  `json:"description,omitempty"`
	HealthThreshold *Number `json:"healthThreshold,omitempty"`
}

// LevelStats is one row of a level progression table.
type LevelStats struct {
	Level   Number  `json:"level"`
	HP      *Number `json:"hp,omitempty"`
	FP      *Number `json:"fp,omitempty"`
	Stamina *Number `json:"stamina,omitempty"`
}

// ShopItem is one merchant inventory line.
type ShopItem struct {
	Name     string  `json:"name"`
	Price    *Number `json:"price,omitempty"`
	Currency string  `json:"currency,omitempty"`
	Stock    *Number `json:"stock,omitempty"`
}

func collectInts(names []string, values []*Number) []NamedValue {
	var out []NamedValue
	for i, v := range values {
		if v != nil {
			out = append(out, NamedValue{Name: names[i], Value: int(*v)})
		}
	}
	return out
}

package model

// WeaponType is the category a weapon belongs to. It selects the weapon
// rank a unit needs and the side of the weapon triangle it sits on.
type WeaponType string

const (
	WeaponNone        WeaponType = ""
	WeaponSword       WeaponType = "sword"
	WeaponLance       WeaponType = "lance"
	WeaponAxe         WeaponType = "axe"
	WeaponBow         WeaponType = "bow"
	WeaponGauntlet    WeaponType = "gauntlet"
	WeaponHidden      WeaponType = "hidden"
	WeaponTome        WeaponType = "tome"
	WeaponFire        WeaponType = "fire"
	WeaponWind        WeaponType = "wind"
	WeaponThunder     WeaponType = "thunder"
	WeaponDark        WeaponType = "dark"
	WeaponLight       WeaponType = "light"
	WeaponAnima       WeaponType = "anima"
	WeaponBlack       WeaponType = "black"
	WeaponWhite       WeaponType = "white"
	WeaponStaff       WeaponType = "staff"
	WeaponDragonstone WeaponType = "dragonstone"
	WeaponBeast       WeaponType = "beast"
	WeaponSpecial     WeaponType = "special"
)

// IsMagic reports whether the type is a spell tome.
func (t WeaponType) IsMagic() bool {
	switch t {
	case WeaponTome, WeaponFire, WeaponThunder, WeaponWind, WeaponDark,
		WeaponLight, WeaponAnima, WeaponBlack, WeaponWhite:
		return true
	}
	return false
}

// Valid reports whether t is a known weapon type.
func (t WeaponType) Valid() bool {
	switch t {
	case WeaponSword, WeaponLance, WeaponAxe, WeaponBow, WeaponGauntlet, WeaponHidden,
		WeaponTome, WeaponFire, WeaponWind, WeaponThunder, WeaponDark, WeaponLight,
		WeaponAnima, WeaponBlack, WeaponWhite, WeaponStaff, WeaponDragonstone,
		WeaponBeast, WeaponSpecial:
		return true
	}
	return false
}

// WeaponRank is a weapon proficiency letter.
type WeaponRank string

const (
	RankSS   WeaponRank = "SS"
	RankS    WeaponRank = "S"
	RankA    WeaponRank = "A"
	RankB    WeaponRank = "B"
	RankC    WeaponRank = "C"
	RankD    WeaponRank = "D"
	RankE    WeaponRank = "E"
	RankPrf  WeaponRank = "Prf"
	RankNone WeaponRank = "--"
)

// Value returns the ordering value of the rank; higher is better.
// Prf sorts below every letter rank.
func (r WeaponRank) Value() int {
	switch r {
	case RankSS:
		return 140
	case RankS:
		return 120
	case RankA:
		return 100
	case RankB:
		return 80
	case RankC:
		return 60
	case RankD:
		return 40
	case RankE:
		return 20
	case RankPrf:
		return -1
	}
	return 0
}

// DamageType selects which defensive stat mitigates an attack.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagical  DamageType = "magical"
	DamageFixed    DamageType = "fixed"
)

// BreakBehavior says what happens to a weapon whose uses run out.
type BreakBehavior string

const (
	BreakIntoSuccessor BreakBehavior = "B"
	BreakRemove        BreakBehavior = "R"
)

// WeaponTemplate is catalog data for a weapon. Uses of -1 means unbreakable.
type WeaponTemplate struct {
	ID          int             `yaml:"id" toml:"id" json:"id"`
	Name        string          `yaml:"name" toml:"name" json:"name"`
	Description string          `yaml:"description" toml:"description" json:"description,omitempty"`
	Type        WeaponType      `yaml:"type" toml:"type" json:"type"`
	Rank        WeaponRank      `yaml:"rank" toml:"rank" json:"rank"`
	DamageType  DamageType      `yaml:"damage_type" toml:"damage_type" json:"damage_type"`
	Mt          int             `yaml:"mt" toml:"mt" json:"mt"`
	Hit         int             `yaml:"hit" toml:"hit" json:"hit"`
	Crit        int             `yaml:"crit" toml:"crit" json:"crit"`
	Wt          int             `yaml:"wt" toml:"wt" json:"wt"`
	MinRange    int             `yaml:"min_range" toml:"min_range" json:"min_range"`
	MaxRange    int             `yaml:"max_range" toml:"max_range" json:"max_range"`
	Uses        int             `yaml:"uses" toml:"uses" json:"uses"`
	Usable      bool            `yaml:"usable" toml:"usable" json:"usable"`
	PrfUsers    []string        `yaml:"prf_users" toml:"prf_users" json:"prf_users,omitempty"`
	BreaksInto  int             `yaml:"breaks_into" toml:"breaks_into" json:"breaks_into,omitempty"`
	SkillNames  []string        `yaml:"skills" toml:"skills" json:"skills,omitempty"`
	Successor   *WeaponTemplate `yaml:"-" toml:"-" json:"-"`
	Skills      []*Skill        `yaml:"-" toml:"-" json:"-"`
}

// InRange reports whether distance lies inside the weapon's range band.
func (w *WeaponTemplate) InRange(distance int) bool {
	return distance >= w.MinRange && distance <= w.MaxRange
}

// IsPrfUser reports whether the named unit is listed as a personal user.
func (w *WeaponTemplate) IsPrfUser(unitName string) bool {
	for _, n := range w.PrfUsers {
		if n == unitName {
			return true
		}
	}
	return false
}

// ItemTemplate is catalog data for a non-weapon item.
type ItemTemplate struct {
	ID          int      `yaml:"id" toml:"id" json:"id"`
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Description string   `yaml:"description" toml:"description" json:"description,omitempty"`
	Wt          int      `yaml:"wt" toml:"wt" json:"wt"`
	Uses        int      `yaml:"uses" toml:"uses" json:"uses"`
	Equippable  bool     `yaml:"equippable" toml:"equippable" json:"equippable"`
	Usable      bool     `yaml:"usable" toml:"usable" json:"usable"`
	PrfUsers    []string `yaml:"prf_users" toml:"prf_users" json:"prf_users,omitempty"`
	SkillNames  []string `yaml:"skills" toml:"skills" json:"skills,omitempty"`
	Skills      []*Skill `yaml:"-" toml:"-" json:"-"`
}

// IsPrfUser reports whether the named unit may hold the item exclusively.
func (it *ItemTemplate) IsPrfUser(unitName string) bool {
	for _, n := range it.PrfUsers {
		if n == unitName {
			return true
		}
	}
	return false
}

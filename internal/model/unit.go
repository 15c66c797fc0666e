package model

// Affinity is the elemental alignment that drives support bonuses.
type Affinity string

const (
	AffinityNone    Affinity = ""
	AffinityFire    Affinity = "fire"
	AffinityThunder Affinity = "thunder"
	AffinityWind    Affinity = "wind"
	AffinityIce     Affinity = "ice"
	AffinityDark    Affinity = "dark"
	AffinityLight   Affinity = "light"
	AffinityAnima   Affinity = "anima"
)

// UnitTemplate is catalog data for a character.
type UnitTemplate struct {
	ID         int                `yaml:"id" toml:"id" json:"id"`
	Name       string             `yaml:"name" toml:"name" json:"name"`
	Game       string             `yaml:"game" toml:"game" json:"game"`
	Affinity   Affinity           `yaml:"affinity" toml:"affinity" json:"affinity,omitempty"`
	Bases      StatBlock          `yaml:"bases" toml:"bases" json:"bases"`
	Growths    StatBlock          `yaml:"growths" toml:"growths" json:"growths"`
	Max        Caps               `yaml:"max" toml:"max" json:"max,omitempty"`
	ModMax     StatBlock          `yaml:"mod_max" toml:"mod_max" json:"mod_max"`
	RankBases  map[WeaponType]int `yaml:"ranks" toml:"ranks" json:"ranks,omitempty"`
	SkillNames []string           `yaml:"skills" toml:"skills" json:"skills,omitempty"`
	Skills     []*Skill           `yaml:"-" toml:"-" json:"-"`
}

// ClassTemplate is catalog data for a class.
type ClassTemplate struct {
	ID            int                       `yaml:"id" toml:"id" json:"id"`
	Name          string                    `yaml:"name" toml:"name" json:"name"`
	Game          string                    `yaml:"game" toml:"game" json:"game"`
	Bases         StatBlock                 `yaml:"bases" toml:"bases" json:"bases"`
	Growths       StatBlock                 `yaml:"growths" toml:"growths" json:"growths"`
	Max           Caps                      `yaml:"max" toml:"max" json:"max,omitempty"`
	RankBases     map[WeaponType]int        `yaml:"ranks" toml:"ranks" json:"ranks,omitempty"`
	MaxRanks      map[WeaponType]WeaponRank `yaml:"max_ranks" toml:"max_ranks" json:"max_ranks,omitempty"`
	ClassEXP      int                       `yaml:"class_exp" toml:"class_exp" json:"class_exp"`
	ClassStrength int                       `yaml:"class_strength" toml:"class_strength" json:"class_strength"`
	Promoted      bool                      `yaml:"promoted" toml:"promoted" json:"promoted"`
	PromotesTo    []string                  `yaml:"promotes_to" toml:"promotes_to" json:"promotes_to,omitempty"`
	Cavalry       bool                      `yaml:"cavalry" toml:"cavalry" json:"cavalry"`
	Flying        bool                      `yaml:"flying" toml:"flying" json:"flying"`
	Armored       bool                      `yaml:"armored" toml:"armored" json:"armored"`
	Wyvern        bool                      `yaml:"wyvern" toml:"wyvern" json:"wyvern"`
	Dragon        bool                      `yaml:"dragon" toml:"dragon" json:"dragon"`
	SkillNames    []string                  `yaml:"skills" toml:"skills" json:"skills,omitempty"`
	Skills        []*Skill                  `yaml:"-" toml:"-" json:"-"`
}

// ClassLevels records levels a built unit spent in one class.
type ClassLevels struct {
	Class  *ClassTemplate `json:"-"`
	Levels int            `json:"levels"`
}

// Support is a support bond with another unit, identified by template name.
type Support struct {
	Partner string `yaml:"partner" toml:"partner" json:"partner"`
	Rank    int    `yaml:"rank" toml:"rank" json:"rank"`
}

// Tactician carries the per-team tactician bonus inputs.
type Tactician struct {
	Rank     int      `yaml:"rank" toml:"rank" json:"rank"`
	Affinity Affinity `yaml:"affinity" toml:"affinity" json:"affinity,omitempty"`
}

// BuiltUnit is a unit assembled by a player: a character in a class at a
// level, with stat boosts, weapon rank boosts and a starting inventory.
type BuiltUnit struct {
	ID          int                `json:"id"`
	Nickname    string             `json:"nickname"`
	Unit        *UnitTemplate      `json:"unit"`
	Class       *ClassTemplate     `json:"class"`
	Level       int                `json:"level"`
	History     []ClassLevels      `json:"history"`
	Boosts      StatBlock          `json:"boosts"`
	RankBoosts  map[WeaponType]int `json:"rank_boosts,omitempty"`
	ExtraSkills []*Skill           `json:"extra_skills,omitempty"`
	Weapons     []*WeaponTemplate  `json:"weapons,omitempty"`
	Items       []*ItemTemplate    `json:"items,omitempty"`
	Supports    []Support          `json:"supports,omitempty"`
	Validated   bool               `json:"validated"`
}

// DisplayName returns the nickname, falling back to the character name.
func (b *BuiltUnit) DisplayName() string {
	if b.Nickname != "" {
		return b.Nickname
	}
	if b.Unit != nil {
		return b.Unit.Name
	}
	return ""
}

// TotalLevels sums the levels across the unit's class history.
func (b *BuiltUnit) TotalLevels() int {
	n := 0
	for _, h := range b.History {
		n += h.Levels
	}
	return n
}

// BuiltTeam is a roster owned by a player.
type BuiltTeam struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Owner     string       `json:"owner"`
	Game      *Game        `json:"-"`
	Units     []*BuiltUnit `json:"units"`
	Tactician Tactician    `json:"tactician"`
}

package model

// Stat names one of a unit's numeric attributes.
type Stat string

const (
	StatHP  Stat = "hp"
	StatStr Stat = "str"
	StatMag Stat = "mag"
	StatSkl Stat = "skl"
	StatSpd Stat = "spd"
	StatLuk Stat = "luk"
	StatDef Stat = "def"
	StatRes Stat = "res"
	StatCha Stat = "cha"
	StatMov Stat = "mov"
	StatCon Stat = "con"
)

// AllStats lists every stat in display order.
var AllStats = []Stat{StatHP, StatStr, StatMag, StatSkl, StatSpd, StatLuk, StatDef, StatRes, StatCha, StatMov, StatCon}

// Uncapped marks a stat cap that does not limit the stat.
const Uncapped = -1

// StatBlock holds one integer per stat. It is used for bases, growths,
// boosts and transient modifiers alike.
type StatBlock struct {
	HP  int `yaml:"hp" toml:"hp" json:"hp"`
	Str int `yaml:"str" toml:"str" json:"str"`
	Mag int `yaml:"mag" toml:"mag" json:"mag"`
	Skl int `yaml:"skl" toml:"skl" json:"skl"`
	Spd int `yaml:"spd" toml:"spd" json:"spd"`
	Luk int `yaml:"luk" toml:"luk" json:"luk"`
	Def int `yaml:"def" toml:"def" json:"def"`
	Res int `yaml:"res" toml:"res" json:"res"`
	Cha int `yaml:"cha" toml:"cha" json:"cha"`
	Mov int `yaml:"mov" toml:"mov" json:"mov"`
	Con int `yaml:"con" toml:"con" json:"con"`
}

func (b *StatBlock) field(s Stat) *int {
	switch s {
	case StatHP:
		return &b.HP
	case StatStr:
		return &b.Str
	case StatMag:
		return &b.Mag
	case StatSkl:
		return &b.Skl
	case StatSpd:
		return &b.Spd
	case StatLuk:
		return &b.Luk
	case StatDef:
		return &b.Def
	case StatRes:
		return &b.Res
	case StatCha:
		return &b.Cha
	case StatMov:
		return &b.Mov
	case StatCon:
		return &b.Con
	}
	return nil
}

// Get returns the value for s, or 0 for an unknown stat.
func (b StatBlock) Get(s Stat) int {
	if p := b.field(s); p != nil {
		return *p
	}
	return 0
}

// Set overwrites the value for s.
func (b *StatBlock) Set(s Stat, v int) {
	if p := b.field(s); p != nil {
		*p = v
	}
}

// Add adds delta to the value for s.
func (b *StatBlock) Add(s Stat, delta int) {
	if p := b.field(s); p != nil {
		*p += delta
	}
}

// Caps holds stat maximums. A stat missing from the map is uncapped.
type Caps map[Stat]int

// Get returns the cap for s, or Uncapped.
func (c Caps) Get(s Stat) int {
	if v, ok := c[s]; ok {
		return v
	}
	return Uncapped
}

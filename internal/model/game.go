package model

// Formula selectors. The string values are the catalog spelling and double
// as the formula written out in Fire Emblem shorthand.

type AttackSpeedMethod string

const (
	ASSpd                   AttackSpeedMethod = "Spd"
	ASSpdMinusWt            AttackSpeedMethod = "Spd-Wt"
	ASSpdMinusWtConPhysical AttackSpeedMethod = "Spd-(Wt-Con);Spd-Wt"
	ASSpdMinusWtCon         AttackSpeedMethod = "Spd-(Wt-Con)"
	ASSpdMinusWtStr         AttackSpeedMethod = "Spd-(Wt-Str)"
	ASSpdMinusWtStrOverFive AttackSpeedMethod = "Spd-(Wt-Str/5)"
)

type HitMethod string

const (
	HitSklPhysical          HitMethod = "Skl+Hit;Hit"
	HitSklTimes2            HitMethod = "Skl*2+Hit"
	HitSklTimes2Luk         HitMethod = "Skl*2+Hit+Luk"
	HitSklTimes2HalfLuk     HitMethod = "Skl*2+Hit+Luk/2"
	HitSklTimes2HalfLukRank HitMethod = "Skl*2+Hit+Luk/2+Rank"
	HitSklHalfLukRank       HitMethod = "Skl+Hit+Luk/2+Rank"
	HitSkl15HalfLukRank     HitMethod = "Skl*1.5+Hit+Luk/2+Rank"
	HitSklOrHalfSklLuk      HitMethod = "Skl+Hit;(Skl+Luk)/2+Hit"
)

type StaffHitMethod string

const (
	StaffHitAlways          StaffHitMethod = "Always"
	StaffHitMagSklRank      StaffHitMethod = "Mag+Skl+Hit+Rank"
	StaffHitMagTimes5       StaffHitMethod = "Mag*5+Skl+30"
	StaffHitMagMinusResDist StaffHitMethod = "(Mag-Res)*6+Skl+30-Dist"
	StaffHitSklTimes4       StaffHitMethod = "Skl*4+Hit"
	StaffHitMagExceedsRes   StaffHitMethod = "Mag>Res"
)

type AvoidMethod string

const (
	AvoidASOrLuk        AvoidMethod = "AS;Luk"
	AvoidASOrSpdLuk     AvoidMethod = "AS;Spd+Luk"
	AvoidSpdLuk         AvoidMethod = "Spd+Luk"
	AvoidASTimes2Luk    AvoidMethod = "AS*2+Luk"
	AvoidASHalfLuk      AvoidMethod = "AS+Luk/2"
	AvoidAS15HalfLuk    AvoidMethod = "AS*1.5+Luk/2"
	AvoidASOrHalfSpdLuk AvoidMethod = "AS;(Spd+Luk)/2"
)

type CritMethod string

const (
	CritHalfSklLuk          CritMethod = "Crit+(Skl+Luk)/2"
	CritSkl                 CritMethod = "Crit+Skl"
	CritZero                CritMethod = "0"
	CritHalfSkl             CritMethod = "Crit+Skl/2"
	CritHalfSklRank         CritMethod = "Crit+Skl/2+Rank"
	CritHalfSklOrSklMinus10 CritMethod = "Crit+max(Skl/2,Skl-10)"
	CritHalfSklMinus4       CritMethod = "Crit+(Skl-4)/2"
)

type CritAvoidMethod string

const (
	DdgZero    CritAvoidMethod = "0"
	DdgLuk     CritAvoidMethod = "Luk"
	DdgHalfLuk CritAvoidMethod = "Luk/2"
)

type AttackMethod string

const (
	AttackNoTriangle   AttackMethod = "Str+Mt"
	AttackTriangle     AttackMethod = "Str+Mt+WT"
	AttackTriangleRank AttackMethod = "Str+Mt+WT+Rank"
)

type TriangleType string

const (
	TriangleNone        TriangleType = "None"
	TrianglePhysical    TriangleType = "Sword<Lance<Axe"
	TriangleAnimaSingle TriangleType = "(Fire<Thunder<Wind)<(Light=Dark)"
	TriangleTrinity     TriangleType = "Anima<Light<Dark"
	TriangleMagicDouble TriangleType = "(Fire<Thunder<Wind)<Light<Dark"
	TriangleAll         TriangleType = "Sword/Magic<Lance/Hidden<Axe/Bow"
)

type EffectiveMethod string

const (
	EffectiveNone EffectiveMethod = "None"
	EffectiveMt   EffectiveMethod = "Mt"
	EffectiveDmg  EffectiveMethod = "Str+Mt"
	EffectiveMtWT EffectiveMethod = "Mt+WT"
)

type CritDamageMethod string

const (
	CritAtkTimes2 CritDamageMethod = "ATK*2"
	CritDmgTimes3 CritDamageMethod = "DMG*3"
)

type RNGMethod string

const (
	RNGOne    RNGMethod = "1RN"
	RNGTwo    RNGMethod = "2RN"
	RNGHybrid RNGMethod = "Hybrid"
)

type EXPFormula string

const (
	EXPFE1        EXPFormula = "FE1"
	EXPFE2        EXPFormula = "FE2"
	EXPFE3        EXPFormula = "FE3"
	EXPFE4        EXPFormula = "FE4"
	EXPFE5        EXPFormula = "FE5"
	EXPGBAHard    EXPFormula = "FE6"
	EXPGBAEasy    EXPFormula = "FE7-FE8"
	EXPFE9        EXPFormula = "FE9 (Normal)"
	EXPFE9Easy    EXPFormula = "FE9 (Easy)"
	EXPFE9Hard    EXPFormula = "FE9 (Hard)"
	EXPFE9Maniac  EXPFormula = "FE9 (Maniac)"
	EXPFE10       EXPFormula = "FE10 (Normal)"
	EXPFE10Hard   EXPFormula = "FE10 (Hard)"
	EXPFE11       EXPFormula = "FE11"
	EXPFE12       EXPFormula = "FE12"
	EXPFE13       EXPFormula = "FE13"
	EXPFE16       EXPFormula = "FE16 (Normal)"
	EXPFE16Hard   EXPFormula = "FE16 (Hard)"
	EXPFE16Madden EXPFormula = "FE16 (Maddening)"
)

type BondSupportBehavior string

const (
	BondNone          BondSupportBehavior = "None"
	BondHitAvoCrit    BondSupportBehavior = "FE3"
	BondHitAvoCritDdg BondSupportBehavior = "FE5"
	BondUnitSpecific  BondSupportBehavior = "FE15"
	BondFE16Flat      BondSupportBehavior = "FE16"
)

type RankedSupportBehavior string

const (
	RankedNone   RankedSupportBehavior = "None"
	RankedGBA    RankedSupportBehavior = "GBA"
	RankedFE9    RankedSupportBehavior = "FE9"
	RankedFE10   RankedSupportBehavior = "FE10"
	RankedDSFlat RankedSupportBehavior = "DS"
	RankedFE13   RankedSupportBehavior = "FE13"
	RankedFE14   RankedSupportBehavior = "FE14"
	RankedFE15   RankedSupportBehavior = "FE15"
	RankedFE16   RankedSupportBehavior = "FE16"
)

// RankThreshold is the weapon experience needed to reach a rank.
type RankThreshold struct {
	Rank   WeaponRank `yaml:"rank" toml:"rank" json:"rank"`
	Points int        `yaml:"points" toml:"points" json:"points"`
}

// RankBonus is the flat bonus granted for wielding a weapon type at a rank.
type RankBonus struct {
	Type WeaponType `yaml:"type" toml:"type" json:"type"`
	Rank WeaponRank `yaml:"rank" toml:"rank" json:"rank"`
	Hit  int        `yaml:"hit" toml:"hit" json:"hit"`
	Atk  int        `yaml:"atk" toml:"atk" json:"atk"`
	Crit int        `yaml:"crit" toml:"crit" json:"crit"`
}

// TriangleBonus is the weapon triangle swing granted at a rank.
type TriangleBonus struct {
	Rank WeaponRank `yaml:"rank" toml:"rank" json:"rank"`
	Hit  int        `yaml:"hit" toml:"hit" json:"hit"`
	Atk  int        `yaml:"atk" toml:"atk" json:"atk"`
}

// Game is the rule set one Fire Emblem title uses. Every formula the
// engine evaluates is chosen by a field here.
type Game struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Abbrev string `yaml:"abbrev" toml:"abbrev" json:"abbrev"`

	AttackSpeed     AttackSpeedMethod     `yaml:"attack_speed" toml:"attack_speed" json:"attack_speed"`
	Hit             HitMethod             `yaml:"hit" toml:"hit" json:"hit"`
	StaffHit        StaffHitMethod        `yaml:"staff_hit" toml:"staff_hit" json:"staff_hit"`
	Avoid           AvoidMethod           `yaml:"avoid" toml:"avoid" json:"avoid"`
	Crit            CritMethod            `yaml:"crit" toml:"crit" json:"crit"`
	CritAvoid       CritAvoidMethod       `yaml:"crit_avoid" toml:"crit_avoid" json:"crit_avoid"`
	Attack          AttackMethod          `yaml:"attack" toml:"attack" json:"attack"`
	Triangle        TriangleType          `yaml:"triangle" toml:"triangle" json:"triangle"`
	EffectiveMethod EffectiveMethod       `yaml:"effective_method" toml:"effective_method" json:"effective_method"`
	EffectiveMod    int                   `yaml:"effective_mod" toml:"effective_mod" json:"effective_mod"`
	FollowUp        int                   `yaml:"follow_up" toml:"follow_up" json:"follow_up"`
	CritDamage      CritDamageMethod      `yaml:"crit_damage" toml:"crit_damage" json:"crit_damage"`
	RNG             RNGMethod             `yaml:"rng" toml:"rng" json:"rng"`
	EXP             EXPFormula            `yaml:"exp" toml:"exp" json:"exp"`
	BondSupport     BondSupportBehavior   `yaml:"bond_support" toml:"bond_support" json:"bond_support"`
	RankedSupport   RankedSupportBehavior `yaml:"ranked_support" toml:"ranked_support" json:"ranked_support"`
	WeaponBreak     BreakBehavior         `yaml:"weapon_break" toml:"weapon_break" json:"weapon_break"`

	HasMagStat             bool `yaml:"has_mag_stat" toml:"has_mag_stat" json:"has_mag_stat"`
	UseMagAsRes            bool `yaml:"use_mag_as_res" toml:"use_mag_as_res" json:"use_mag_as_res"`
	TriangleSuppressesRank bool `yaml:"triangle_suppresses_rank" toml:"triangle_suppresses_rank" json:"triangle_suppresses_rank"`

	MinDamagePerAttack int        `yaml:"min_damage_per_attack" toml:"min_damage_per_attack" json:"min_damage_per_attack"`
	MaxWeaponRank      WeaponRank `yaml:"max_weapon_rank" toml:"max_weapon_rank" json:"max_weapon_rank"`
	MaxInventory       int        `yaml:"max_inventory" toml:"max_inventory" json:"max_inventory"`
	MaxWeapons         int        `yaml:"max_weapons" toml:"max_weapons" json:"max_weapons"`
	MaxItems           int        `yaml:"max_items" toml:"max_items" json:"max_items"`
	TeamSize           int        `yaml:"team_size" toml:"team_size" json:"team_size"`

	RankThresholds  []RankThreshold `yaml:"rank_thresholds" toml:"rank_thresholds" json:"rank_thresholds"`
	RankBonuses     []RankBonus     `yaml:"rank_bonuses" toml:"rank_bonuses" json:"rank_bonuses"`
	TriangleBonuses []TriangleBonus `yaml:"triangle_bonuses" toml:"triangle_bonuses" json:"triangle_bonuses"`
}

// RankBonusFor returns the bonus row for (t, r), if the game defines one.
func (g *Game) RankBonusFor(t WeaponType, r WeaponRank) (RankBonus, bool) {
	for _, b := range g.RankBonuses {
		if b.Type == t && b.Rank == r {
			return b, true
		}
	}
	return RankBonus{}, false
}

// TriangleBonusFor returns the triangle bonus row for rank r, if any.
func (g *Game) TriangleBonusFor(r WeaponRank) (TriangleBonus, bool) {
	for _, b := range g.TriangleBonuses {
		if b.Rank == r {
			return b, true
		}
	}
	return TriangleBonus{}, false
}

// InventoryFull reports whether a unit holding the given counts can take one more entry.
func (g *Game) InventoryFull(weapons, items int) bool {
	if g.MaxInventory > 0 && weapons+items >= g.MaxInventory {
		return true
	}
	return false
}

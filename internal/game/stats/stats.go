// Package stats resolves the final attribute values and weapon ranks of
// deployed units from their built templates.
package stats

import "github.com/udisondev/linkarena/internal/model"

// Resolve computes one final stat for u.
//
// The raw value is unit base + class base + accumulated growth points / 100
// + permanent boosts. It is clamped by the unit cap and by the class cap
// (class max plus the unit's cap modifier); a negative cap means uncapped.
// Transient modifiers are added after clamping.
func Resolve(u *model.ActiveUnit, s model.Stat) int {
	b := u.Template
	unitBase := b.Unit.Bases.Get(s)
	classBase := b.Class.Bases.Get(s)

	growthLevels := b.TotalLevels()
	unitGrowth := b.Unit.Growths.Get(s) * growthLevels
	classGrowth := 0
	for _, h := range b.History {
		if h.Class == nil {
			continue
		}
		classGrowth += h.Levels * h.Class.Growths.Get(s)
	}

	raw := unitBase + classBase + (unitGrowth+classGrowth)/100 + b.Boosts.Get(s)

	unitCap := b.Unit.Max.Get(s)
	if unitCap < 0 {
		unitCap = raw
	}
	classCap := b.Class.Max.Get(s)
	if classCap >= 0 {
		classCap += b.Unit.ModMax.Get(s)
	}
	if classCap < 0 {
		classCap = raw
	}

	return min(raw, unitCap, classCap) + u.Mods.Get(s)
}

// All resolves every stat of u into a block.
func All(u *model.ActiveUnit) model.StatBlock {
	var out model.StatBlock
	for _, s := range model.AllStats {
		out.Set(s, Resolve(u, s))
	}
	return out
}

// MaxHP is u's final maximum HP.
func MaxHP(u *model.ActiveUnit) int { return Resolve(u, model.StatHP) }

// Str is u's final strength.
func Str(u *model.ActiveUnit) int { return Resolve(u, model.StatStr) }

// Mag is u's final magic.
func Mag(u *model.ActiveUnit) int { return Resolve(u, model.StatMag) }

// Skl is u's final skill.
func Skl(u *model.ActiveUnit) int { return Resolve(u, model.StatSkl) }

// Spd is u's final speed.
func Spd(u *model.ActiveUnit) int { return Resolve(u, model.StatSpd) }

// Luk is u's final luck.
func Luk(u *model.ActiveUnit) int { return Resolve(u, model.StatLuk) }

// Def is u's final defence.
func Def(u *model.ActiveUnit) int { return Resolve(u, model.StatDef) }

// Res is u's final resistance.
func Res(u *model.ActiveUnit) int { return Resolve(u, model.StatRes) }

// Con is u's final constitution.
func Con(u *model.ActiveUnit) int { return Resolve(u, model.StatCon) }

// Level is the unit's level in its current class.
func Level(u *model.ActiveUnit) int {
	return u.Template.Level
}

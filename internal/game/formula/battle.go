// Package formula selects and evaluates the per-game battle formulas:
// attack speed, hit, avoid, crit, crit avoid, attack, defence and experience.
//
// Each formula switches on the game's configured method. An unrecognised
// method is a *model.ConfigError and is never defaulted.
package formula

import (
	"math"

	"github.com/udisondev/linkarena/internal/game/stats"
	"github.com/udisondev/linkarena/internal/model"
)

func weaponType(w *model.ActiveWeapon) model.WeaponType {
	if w == nil {
		return ""
	}
	return w.Template.Type
}

func isMagical(w *model.ActiveWeapon) bool {
	return w != nil && w.Template.DamageType == model.DamageMagical
}

// AttackSpeed is u's speed after weapon weight. Without a weapon it is plain
// Spd, except under Spd-(Wt-Str/5) where an equipped item still weighs.
func AttackSpeed(g *model.Game, u *model.ActiveUnit, w *model.ActiveWeapon) (int, error) {
	spd := stats.Spd(u)
	method := g.AttackSpeed
	if method == model.ASSpd {
		return spd, nil
	}
	if w == nil && method != model.ASSpdMinusWtStrOverFive {
		switch method {
		case model.ASSpdMinusWt, model.ASSpdMinusWtCon, model.ASSpdMinusWtConPhysical, model.ASSpdMinusWtStr:
			return spd, nil
		}
		return 0, model.NewConfigError(g, "attack speed method", method)
	}

	switch method {
	case model.ASSpdMinusWt:
		return spd - w.Template.Wt, nil
	case model.ASSpdMinusWtCon:
		return spd - max(w.Template.Wt-stats.Con(u), 0), nil
	case model.ASSpdMinusWtConPhysical:
		if w.Template.Type.IsMagic() {
			return spd - w.Template.Wt, nil
		}
		return spd - max(w.Template.Wt-stats.Con(u), 0), nil
	case model.ASSpdMinusWtStr:
		return spd - max(w.Template.Wt-stats.Str(u), 0), nil
	case model.ASSpdMinusWtStrOverFive:
		itemWt := 0
		for _, it := range u.EquippedItems() {
			itemWt = it.Template.Wt
		}
		weaponWt := 0
		if w != nil {
			weaponWt = w.Template.Wt
		}
		return spd - max(weaponWt+itemWt-stats.Str(u)/5, 0), nil
	}
	return 0, model.NewConfigError(g, "attack speed method", method)
}

// Hit is u's accuracy with w against an opponent wielding oppType ("" when
// unarmed). Without a weapon Hit is 0.
func Hit(a *model.Arena, u *model.ActiveUnit, w *model.ActiveWeapon,
	opp *model.ActiveUnit, oppType model.WeaponType) (int, error) {
	if w == nil {
		return 0, nil
	}
	g := a.Game
	skl, luk := stats.Skl(u), stats.Luk(u)
	wt := w.Template

	var hit int
	switch g.Hit {
	case model.HitSklPhysical:
		if isMagical(w) {
			hit = wt.Hit
		} else {
			hit = skl + wt.Hit
		}
	case model.HitSklTimes2:
		hit = skl*2 + wt.Hit
	case model.HitSklTimes2Luk:
		hit = skl*2 + luk + wt.Hit
	case model.HitSklTimes2HalfLuk:
		hit = skl*2 + FloorDiv(luk, 2) + wt.Hit
	case model.HitSklTimes2HalfLukRank:
		hit = skl*2 + FloorDiv(luk, 2) + wt.Hit + RankHitBonus(g, u, wt.Type, oppType)
	case model.HitSklHalfLukRank:
		hit = skl + FloorDiv(luk, 2) + wt.Hit + RankHitBonus(g, u, wt.Type, oppType)
	case model.HitSkl15HalfLukRank:
		hit = int(math.Floor(float64(skl)*1.5+float64(luk)/2)) + wt.Hit + RankHitBonus(g, u, wt.Type, oppType)
	case model.HitSklOrHalfSklLuk:
		if isMagical(w) {
			hit = wt.Hit + FloorDiv(skl+luk, 2)
		} else {
			hit = wt.Hit + skl
		}
	default:
		return 0, model.NewConfigError(g, "hit method", g.Hit)
	}

	hit += Support(a, u).Hit
	if oppType != "" {
		hit += TriangleHitBonus(g, u, wt.Type, opp, oppType)
	}
	return hit, nil
}

// StaffHit is the chance for u's staff w to affect target at the given distance.
func StaffHit(a *model.Arena, u *model.ActiveUnit, w *model.ActiveWeapon,
	target *model.ActiveUnit, distance int) (int, error) {
	if w == nil {
		return 0, nil
	}
	g := a.Game
	switch g.StaffHit {
	case model.StaffHitAlways:
		return 100, nil
	case model.StaffHitMagSklRank:
		return stats.Mag(u) + stats.Skl(u) + w.Template.Hit + RankHitBonus(g, u, w.Template.Type, ""), nil
	case model.StaffHitMagTimes5:
		return stats.Mag(u)*5 + stats.Skl(u) + 30, nil
	case model.StaffHitMagMinusResDist:
		return (stats.Mag(u)-stats.Res(target))*6 + stats.Skl(u) + 30 - distance, nil
	case model.StaffHitSklTimes4:
		return stats.Skl(u)*4 + w.Template.Hit, nil
	case model.StaffHitMagExceedsRes:
		if stats.Mag(u) > stats.Res(target) {
			return 100, nil
		}
		return 0, nil
	}
	return 0, model.NewConfigError(g, "staff hit method", g.StaffHit)
}

// Avoid is u's evasion while holding w.
func Avoid(a *model.Arena, u *model.ActiveUnit, w *model.ActiveWeapon) (int, error) {
	g := a.Game
	bonus := Support(a, u).Avo
	as, err := AttackSpeed(g, u, w)
	if err != nil {
		return 0, err
	}
	spd, luk := stats.Spd(u), stats.Luk(u)

	switch g.Avoid {
	case model.AvoidASOrLuk:
		if isMagical(w) {
			return bonus + luk, nil
		}
		return bonus + as, nil
	case model.AvoidASOrSpdLuk:
		if isMagical(w) {
			return bonus + spd + luk, nil
		}
		return bonus + as, nil
	case model.AvoidSpdLuk:
		return bonus + spd + luk, nil
	case model.AvoidASTimes2Luk:
		return bonus + 2*as + luk, nil
	case model.AvoidASHalfLuk:
		return bonus + as + FloorDiv(luk, 2), nil
	case model.AvoidAS15HalfLuk:
		return bonus + int(float64(as)*1.5+float64(luk)/2), nil
	case model.AvoidASOrHalfSpdLuk:
		if isMagical(w) {
			return bonus + FloorDiv(spd+luk, 2), nil
		}
		return bonus + as, nil
	}
	return 0, model.NewConfigError(g, "avoid method", g.Avoid)
}

// Crit is u's critical rate with w. Without a weapon Crit is 0.
func Crit(a *model.Arena, u *model.ActiveUnit, w *model.ActiveWeapon) (int, error) {
	if w == nil {
		return 0, nil
	}
	g := a.Game
	bonus := Support(a, u).Crit
	skl, luk := stats.Skl(u), stats.Luk(u)
	wc := w.Template.Crit

	switch g.Crit {
	case model.CritHalfSklLuk:
		return bonus + wc + FloorDiv(skl+luk, 2), nil
	case model.CritSkl:
		return bonus + wc + skl, nil
	case model.CritZero:
		return bonus, nil
	case model.CritHalfSkl:
		return bonus + wc + FloorDiv(skl, 2), nil
	case model.CritHalfSklRank:
		return bonus + wc + FloorDiv(skl, 2) + RankCritBonus(g, u, w.Template.Type), nil
	case model.CritHalfSklOrSklMinus10:
		if skl < 20 {
			return bonus + wc + FloorDiv(skl, 2), nil
		}
		return bonus + wc + skl - 10, nil
	case model.CritHalfSklMinus4:
		return bonus + wc + FloorDiv(skl-4, 2), nil
	}
	return 0, model.NewConfigError(g, "crit method", g.Crit)
}

// Dodge is u's critical avoid.
func Dodge(a *model.Arena, u *model.ActiveUnit) (int, error) {
	g := a.Game
	bonus := Support(a, u).Ddg
	switch g.CritAvoid {
	case model.DdgZero:
		return bonus, nil
	case model.DdgHalfLuk:
		return bonus + FloorDiv(stats.Luk(u), 2), nil
	case model.DdgLuk:
		return bonus + stats.Luk(u), nil
	}
	return 0, model.NewConfigError(g, "crit avoid method", g.CritAvoid)
}

// offensiveStat is the stat that adds to Mt for w's damage type.
func offensiveStat(g *model.Game, u *model.ActiveUnit, w *model.ActiveWeapon) int {
	if w.Template.DamageType == model.DamageMagical && g.HasMagStat {
		return stats.Mag(u)
	}
	return stats.Str(u)
}

// Attack is u's Atk with w against an opponent wielding oppType. It covers
// stats, supports, triangle and rank bonuses but not skills. Fixed-damage
// weapons return their Mt unchanged.
func Attack(a *model.Arena, u *model.ActiveUnit, w *model.ActiveWeapon,
	opp *model.ActiveUnit, oppType model.WeaponType) (int, error) {
	if w == nil {
		return 0, nil
	}
	g := a.Game
	atk := w.Template.Mt
	if w.Template.DamageType == model.DamageFixed {
		return atk, nil
	}
	atk += offensiveStat(g, u, w)
	atk += Support(a, u).Atk

	switch g.Attack {
	case model.AttackNoTriangle:
		return atk, nil
	case model.AttackTriangle, model.AttackTriangleRank:
	default:
		return 0, model.NewConfigError(g, "attack method", g.Attack)
	}
	if oppType != "" {
		atk += TriangleAtkBonus(g, u, w.Template.Type, opp, oppType)
	}
	if g.Attack == model.AttackTriangleRank {
		atk += RankAtkBonus(g, u, w.Template.Type, oppType)
	}
	return atk, nil
}

// AttackEffective is Attack when the hit is effective against the opponent.
// The game's multiplier is used unless it is 0, in which case skillMod applies.
func AttackEffective(a *model.Arena, u *model.ActiveUnit, w *model.ActiveWeapon,
	opp *model.ActiveUnit, oppType model.WeaponType, skillMod int) (int, error) {
	if w == nil {
		return 0, nil
	}
	g := a.Game
	mod := g.EffectiveMod
	if mod == 0 {
		mod = skillMod
	}

	switch g.EffectiveMethod {
	case model.EffectiveNone, model.EffectiveMt, model.EffectiveDmg, model.EffectiveMtWT:
	default:
		return 0, model.NewConfigError(g, "effective damage method", g.EffectiveMethod)
	}

	mt := w.Template.Mt
	if g.EffectiveMethod != model.EffectiveNone {
		mt *= mod
	}
	if w.Template.DamageType == model.DamageFixed {
		return mt, nil
	}
	stat := offensiveStat(g, u, w)
	if g.EffectiveMethod == model.EffectiveDmg {
		stat *= mod
	}
	support := Support(a, u).Atk

	switch g.Attack {
	case model.AttackNoTriangle:
		return mt + stat + support, nil
	case model.AttackTriangle, model.AttackTriangleRank:
	default:
		return 0, model.NewConfigError(g, "attack method", g.Attack)
	}

	wt := 0
	if oppType != "" {
		wt = TriangleAtkBonus(g, u, w.Template.Type, opp, oppType)
	}
	if g.EffectiveMethod == model.EffectiveMtWT {
		wt *= mod
	}
	rank := 0
	if g.Attack == model.AttackTriangleRank {
		rank = RankAtkBonus(g, u, w.Template.Type, oppType)
	}
	return mt + stat + wt + rank + support, nil
}

// Protection is u's defence against physical attacks.
func Protection(a *model.Arena, u *model.ActiveUnit) int {
	return stats.Def(u) + Support(a, u).Prt
}

// Resilience is u's defence against magical attacks. Games without a
// separate resistance stat defend with Mag.
func Resilience(a *model.Arena, u *model.ActiveUnit) int {
	bonus := Support(a, u).Prt
	if a.Game.UseMagAsRes {
		return stats.Mag(u) + bonus
	}
	return stats.Res(u) + bonus
}

// PrtOrRsl picks the defence that applies to damage of type dt.
// Fixed damage ignores defence.
func PrtOrRsl(dt model.DamageType, prt, rsl int) int {
	switch dt {
	case model.DamagePhysical:
		return prt
	case model.DamageMagical:
		return rsl
	}
	return 0
}

// FloorDiv divides rounding toward negative infinity, so a stat pushed
// below zero by modifiers halves to -2 at -3 rather than -1.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

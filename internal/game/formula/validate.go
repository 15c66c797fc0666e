package formula

import (
	"errors"

	"github.com/udisondev/linkarena/internal/model"
)

func oneOf[T comparable](v T, allowed ...T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Validate checks every formula selector of g up front so a corrupt catalog
// fails at load time rather than mid-combat. All problems are joined.
func Validate(g *model.Game) error {
	var errs []error
	check := func(ok bool, field string, v any) {
		if !ok {
			errs = append(errs, model.NewConfigError(g, field, v))
		}
	}

	check(oneOf(g.AttackSpeed, model.ASSpd, model.ASSpdMinusWt, model.ASSpdMinusWtConPhysical,
		model.ASSpdMinusWtCon, model.ASSpdMinusWtStr, model.ASSpdMinusWtStrOverFive),
		"attack speed method", g.AttackSpeed)
	check(oneOf(g.Hit, model.HitSklPhysical, model.HitSklTimes2, model.HitSklTimes2Luk,
		model.HitSklTimes2HalfLuk, model.HitSklTimes2HalfLukRank, model.HitSklHalfLukRank,
		model.HitSkl15HalfLukRank, model.HitSklOrHalfSklLuk),
		"hit method", g.Hit)
	check(g.StaffHit == "" || oneOf(g.StaffHit, model.StaffHitAlways, model.StaffHitMagSklRank,
		model.StaffHitMagTimes5, model.StaffHitMagMinusResDist, model.StaffHitSklTimes4, model.StaffHitMagExceedsRes),
		"staff hit method", g.StaffHit)
	check(oneOf(g.Avoid, model.AvoidASOrLuk, model.AvoidASOrSpdLuk, model.AvoidSpdLuk,
		model.AvoidASTimes2Luk, model.AvoidASHalfLuk, model.AvoidAS15HalfLuk, model.AvoidASOrHalfSpdLuk),
		"avoid method", g.Avoid)
	check(oneOf(g.Crit, model.CritHalfSklLuk, model.CritSkl, model.CritZero, model.CritHalfSkl,
		model.CritHalfSklRank, model.CritHalfSklOrSklMinus10, model.CritHalfSklMinus4),
		"crit method", g.Crit)
	check(oneOf(g.CritAvoid, model.DdgZero, model.DdgLuk, model.DdgHalfLuk),
		"crit avoid method", g.CritAvoid)
	check(oneOf(g.Attack, model.AttackNoTriangle, model.AttackTriangle, model.AttackTriangleRank),
		"attack method", g.Attack)
	check(oneOf(g.Triangle, model.TriangleNone, model.TrianglePhysical, model.TriangleAnimaSingle,
		model.TriangleTrinity, model.TriangleMagicDouble, model.TriangleAll),
		"weapon triangle", g.Triangle)
	check(oneOf(g.EffectiveMethod, model.EffectiveNone, model.EffectiveMt, model.EffectiveDmg, model.EffectiveMtWT),
		"effective damage method", g.EffectiveMethod)
	check(g.EffectiveMod >= 0, "effective damage modifier", g.EffectiveMod)
	check(g.FollowUp >= 0, "follow-up threshold", g.FollowUp)
	check(oneOf(g.CritDamage, model.CritAtkTimes2, model.CritDmgTimes3), "crit damage method", g.CritDamage)
	check(oneOf(g.RNG, model.RNGOne, model.RNGTwo, model.RNGHybrid), "rng method", g.RNG)
	check(oneOf(g.EXP, model.EXPFE1, model.EXPFE2, model.EXPFE3, model.EXPFE4, model.EXPFE5,
		model.EXPGBAHard, model.EXPGBAEasy, model.EXPFE9, model.EXPFE9Easy, model.EXPFE9Hard,
		model.EXPFE9Maniac, model.EXPFE10, model.EXPFE10Hard, model.EXPFE11, model.EXPFE12,
		model.EXPFE13, model.EXPFE16, model.EXPFE16Hard, model.EXPFE16Madden),
		"exp formula", g.EXP)
	check(oneOf(g.WeaponBreak, model.BreakIntoSuccessor, model.BreakRemove), "weapon break behavior", g.WeaponBreak)
	check(g.MinDamagePerAttack >= 0, "minimum damage per attack", g.MinDamagePerAttack)

	return errors.Join(errs...)
}

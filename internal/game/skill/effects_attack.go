package skill

import (
	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/game/stats"
	"github.com/udisondev/linkarena/internal/model"
)

// Tags attack effects leave on the attacks they touch.
const (
	TagBrave       = "brave"
	TagDevil       = "devil"
	TagSilencer    = "silencer"
	TagGreatShield = "great_shield"
	TagCounter     = "counter"
)

// brave follows the attack with an identical one. The copy carries the
// brave tag so it does not copy itself in turn.
func brave(_ *Env, _ *model.Skill, s *combat.Session, a *combat.Attack) (actionlog.Record, error) {
	if a.HasTag(TagBrave) {
		return nil, nil
	}
	c := a.Clone()
	c.Tags = append([]string{TagBrave}, a.Tags...)
	s.Chain.InsertAfter(a, c)
	return nil, nil
}

// devil turns the attack on its wielder with a (31 - Luk)% chance.
func devil(e *Env, _ *model.Skill, _ *combat.Session, a *combat.Attack) (actionlog.Record, error) {
	if e.RNG.IntN(100) < 31-stats.Luk(a.By) {
		a.Against = a.By
		a.Tag(TagDevil)
	}
	return nil, nil
}

// silencer rolls the attack's own hit and half its crit up front. When both
// land the attack becomes a guaranteed kill that no other skill may touch.
func silencer(e *Env, _ *model.Skill, _ *combat.Session, a *combat.Attack) (actionlog.Record, error) {
	if !a.Skillable {
		return nil, nil
	}
	roll := (e.RNG.IntN(100) + e.RNG.IntN(100)) / 2
	if roll >= a.Hit-a.Avo || 2*e.RNG.IntN(100) >= a.Crit-a.Ddg {
		return nil, nil
	}
	a.Lethal = true
	a.Hit, a.Crit = 999, 999
	a.Skillable = false
	a.Tag(TagSilencer)
	return nil, nil
}

// greatShield negates an incoming attack with a Skl% chance.
func greatShield(e *Env, _ *model.Skill, _ *combat.Session, a *combat.Attack) (actionlog.Record, error) {
	if e.RNG.IntN(100) < stats.Skl(a.Against) {
		a.Negated = true
		a.Tag(TagGreatShield)
	}
	return nil, nil
}

// poisonOnHit poisons the target of a connecting attack, or refreshes an
// existing poison.
func poisonOnHit(e *Env, _ *model.Skill, _ *combat.Session, o *combat.Outcome) (actionlog.Record, error) {
	target := o.Attack.Against
	if o.Miss || target.CurrentHP <= 0 {
		return nil, nil
	}
	target.AddTempSkill(e.skill(Poisoned))
	target.SetData(Poisoned, poisonTurns)
	return actionlog.ActivateSkill{Skill: "fe7_poison", Data: target.ID, Show: true}, nil
}

// nosferatu heals the striker by the damage dealt, up to max HP.
func nosferatu(_ *Env, _ *model.Skill, _ *combat.Session, o *combat.Outcome) (actionlog.Record, error) {
	if o.Dmg <= 0 {
		return nil, nil
	}
	by := o.Attack.By
	heal := max(min(o.Dmg, stats.MaxHP(by)-by.CurrentHP), 0)
	by.CurrentHP += heal
	return actionlog.RestoreHealth{Unit: by.ID, Health: heal}, nil
}

// counter reflects the damage a surviving target took back onto the striker.
func counter(_ *Env, sk *model.Skill, _ *combat.Session, o *combat.Outcome) (actionlog.Record, error) {
	a := o.Attack
	if o.Miss || o.Dmg <= 0 || a.By == a.Against || a.Against.CurrentHP <= 0 || a.HasTag(TagCounter) {
		return nil, nil
	}
	a.Tag(TagCounter)
	a.By.CurrentHP -= o.Dmg
	return actionlog.ActivateSkill{Skill: sk.Name, Data: o.Dmg, Show: true}, nil
}

func init() {
	RegisterAttackEffect(HookBeforeAttack, "brave", brave)
	RegisterAttackEffect(HookBeforeAttack, "fe7_devil", devil)
	RegisterAttackEffect(HookBeforeAttack, "fe7_silencer", silencer)
	RegisterAttackEffect(HookBeforeAttacked, "great_shield", greatShield)

	RegisterOutcomeEffect(HookAfterAttack, "fe7_poison_on_hit", poisonOnHit)
	RegisterOutcomeEffect(HookAfterAttack, "fe7_nosferatu", nosferatu)
	RegisterOutcomeEffect(HookAfterAttacked, "counter", counter)
}

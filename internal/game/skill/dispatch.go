// Package skill dispatches skill effects at every extension point of the
// engine: equipping, using, the four attack hooks, both combat hooks, turn
// boundaries and team building.
//
// Effects are plain functions registered by name in one registry per
// extension point. Catalog skills refer to them by that name.
package skill

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/model"
)

// Catalog resolves templates that skill parameters refer to.
type Catalog interface {
	WeaponTemplate(id int) (*model.WeaponTemplate, bool)
	SkillByName(name string) (*model.Skill, bool)
}

// Scripts runs before-combat effects written in a scripting language.
type Scripts interface {
	BeforeCombat(fn string, s *combat.Session, side combat.Side) (actionlog.Log, error)
}

// Env is everything an effect may touch besides its direct arguments.
type Env struct {
	Arena   *model.Arena
	RNG     combat.RNG
	Catalog Catalog
	Scripts Scripts
}

// skill returns the catalog skill called name, or a built-in stand-in.
func (e *Env) skill(name string) *model.Skill {
	if e.Catalog != nil {
		if sk, ok := e.Catalog.SkillByName(name); ok {
			return sk
		}
	}
	if sk, ok := builtinSkills[name]; ok {
		c := *sk
		return &c
	}
	return &model.Skill{Name: name}
}

func activated(h Hook, sk *model.Skill, u *model.ActiveUnit) {
	slog.Debug("skill activated", "hook", h, "skill", sk.Name, "unit", u.ID)
}

func appendRecord(log actionlog.Log, r actionlog.Record) actionlog.Log {
	if r == nil {
		return log
	}
	return append(log, r)
}

// runUnit runs the unit-level effect of every skill in skills at h.
func (e *Env) runUnit(h Hook, skills []*model.Skill, u *model.ActiveUnit) (actionlog.Log, error) {
	var log actionlog.Log
	for _, sk := range Having(skills, h) {
		name := h.Effect(sk)
		fn, ok := unitEffects[h][name]
		if !ok {
			return log, unknownEffect(h, sk, name)
		}
		activated(h, sk, u)
		r, err := fn(e, sk, u)
		if err != nil {
			return log, err
		}
		log = appendRecord(log, r)
	}
	return log, nil
}

// Passive applies the passive effects of everything u carries. It runs
// once when the unit is deployed.
func (e *Env) Passive(u *model.ActiveUnit) error {
	_, err := e.runUnit(HookPassive, Accumulate(u), u)
	return err
}

// Equip runs the on-equip effects of skills, usually a weapon's or item's.
func (e *Env) Equip(u *model.ActiveUnit, skills []*model.Skill) (actionlog.Log, error) {
	return e.runUnit(HookEquip, skills, u)
}

// Dequip runs the on-dequip effects of skills.
func (e *Env) Dequip(u *model.ActiveUnit, skills []*model.Skill) (actionlog.Log, error) {
	return e.runUnit(HookDequip, skills, u)
}

// TurnStart runs the turn-start effects of everything u carries.
func (e *Env) TurnStart(u *model.ActiveUnit) (actionlog.Log, error) {
	return e.runUnit(HookTurnStart, Accumulate(u), u)
}

// TurnEnd runs the turn-end effects of everything u carries.
func (e *Env) TurnEnd(u *model.ActiveUnit) (actionlog.Log, error) {
	return e.runUnit(HookTurnEnd, Accumulate(u), u)
}

// UnitTurnEnd runs after the acting unit finished its actions; done holds
// the records those actions produced.
func (e *Env) UnitTurnEnd(u *model.ActiveUnit, done actionlog.Log) (actionlog.Log, error) {
	var log actionlog.Log
	for _, sk := range Having(Accumulate(u), HookUnitTurnEnd) {
		fn, ok := unitTurnEndEffects[sk.UnitTurnEnd]
		if !ok {
			return log, unknownEffect(HookUnitTurnEnd, sk, sk.UnitTurnEnd)
		}
		activated(HookUnitTurnEnd, sk, u)
		r, err := fn(e, sk, u, done)
		if err != nil {
			return log, err
		}
		log = appendRecord(log, r)
	}
	return log, nil
}

// Use runs the on-use effects of skills for u acting on target.
func (e *Env) Use(u, target *model.ActiveUnit, skills []*model.Skill, extra int) (actionlog.Log, error) {
	var log actionlog.Log
	for _, sk := range Having(skills, HookUse) {
		fn, ok := useEffects[sk.OnUse]
		if !ok {
			return log, unknownEffect(HookUse, sk, sk.OnUse)
		}
		activated(HookUse, sk, u)
		out, err := fn(e, sk, u, target, extra)
		if err != nil {
			return log, err
		}
		log = append(log, out...)
	}
	return log, nil
}

// Build runs the on-build effects of the skills b carries.
func Build(b *model.BuiltUnit) error {
	for _, sk := range Having(AccumulateBuilt(b), HookBuild) {
		fn, ok := buildEffects[sk.OnBuild]
		if !ok {
			return unknownEffect(HookBuild, sk, sk.OnBuild)
		}
		if err := fn(sk, b); err != nil {
			return fmt.Errorf("build %s: %w", b.DisplayName(), err)
		}
	}
	return nil
}

// BeforeCombat runs both combatants' before-combat effects in interleaved
// priority order.
func (e *Env) BeforeCombat(s *combat.Session) (actionlog.Log, error) {
	return e.runCombat(HookBeforeCombat, s)
}

// AfterCombat runs both combatants' after-combat effects in interleaved
// priority order.
func (e *Env) AfterCombat(s *combat.Session) (actionlog.Log, error) {
	return e.runCombat(HookAfterCombat, s)
}

func (e *Env) runCombat(h Hook, s *combat.Session) (actionlog.Log, error) {
	attacker := Having(Accumulate(s.Attacker), h)
	defender := Having(Accumulate(s.Defender), h)

	var log actionlog.Log
	for _, inv := range Interleave(attacker, defender) {
		side := combat.SideAttacker
		if inv.Second {
			side = combat.SideDefender
		}
		u := s.Unit(side)
		name := h.Effect(inv.Skill)
		activated(h, inv.Skill, u)

		if h == HookBeforeCombat && strings.HasPrefix(name, ScriptPrefix) {
			if e.Scripts == nil {
				return log, fmt.Errorf("skill %q: no script engine for %s", inv.Skill.Name, name)
			}
			out, err := e.Scripts.BeforeCombat(strings.TrimPrefix(name, ScriptPrefix), s, side)
			if err != nil {
				return log, fmt.Errorf("skill %q: %w", inv.Skill.Name, err)
			}
			log = append(log, out...)
			continue
		}

		fn, ok := combatEffects[h][name]
		if !ok {
			return log, unknownEffect(h, inv.Skill, name)
		}
		r, err := fn(e, inv.Skill, s, u)
		if err != nil {
			return log, err
		}
		log = appendRecord(log, r)
	}
	return log, nil
}

// BeforeAttacks walks the chain and lets each attack's striker and target
// edit it, interleaved by priority. Attacks inserted along the way are
// visited too. Once an effect clears Skillable no further effect runs on
// that attack.
func (e *Env) BeforeAttacks(s *combat.Session) (actionlog.Log, error) {
	var log actionlog.Log
	for i := 0; i < s.Chain.Len(); i++ {
		a := s.Chain.At(i)
		by := Having(Accumulate(a.By), HookBeforeAttack)
		against := Having(Accumulate(a.Against), HookBeforeAttacked)

		for _, inv := range Interleave(by, against) {
			if !a.Skillable {
				break
			}
			h, owner := HookBeforeAttack, a.By
			if inv.Second {
				h, owner = HookBeforeAttacked, a.Against
			}
			name := h.Effect(inv.Skill)
			fn, ok := attackEffects[h][name]
			if !ok {
				return log, unknownEffect(h, inv.Skill, name)
			}
			activated(h, inv.Skill, owner)
			r, err := fn(e, inv.Skill, s, a)
			if err != nil {
				return log, err
			}
			log = appendRecord(log, r)
		}
	}
	return log, nil
}

// AfterAttack runs the striker's after-attack effects and then the
// target's after-attacked effects, each by descending priority. It
// satisfies combat.Hooks.
func (e *Env) AfterAttack(s *combat.Session, o *combat.Outcome) (actionlog.Log, error) {
	a := o.Attack
	var log actionlog.Log
	for _, step := range []struct {
		h    Hook
		unit *model.ActiveUnit
	}{
		{HookAfterAttack, a.By},
		{HookAfterAttacked, a.Against},
	} {
		for _, sk := range ByPriority(Having(Accumulate(step.unit), step.h)) {
			name := step.h.Effect(sk)
			fn, ok := outcomeEffects[step.h][name]
			if !ok {
				return log, unknownEffect(step.h, sk, name)
			}
			activated(step.h, sk, step.unit)
			r, err := fn(e, sk, s, o)
			if err != nil {
				return log, err
			}
			log = appendRecord(log, r)
		}
	}
	return log, nil
}

var _ combat.Hooks = (*Env)(nil)

package skill

import (
	"fmt"
	"strings"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/model"
)

// Hook names an extension point a skill can act at.
type Hook string

const (
	HookPassive        Hook = "passive"
	HookEquip          Hook = "on_equip"
	HookDequip         Hook = "on_dequip"
	HookUse            Hook = "on_use"
	HookBeforeAttack   Hook = "before_attack"
	HookAfterAttack    Hook = "after_attack"
	HookBeforeAttacked Hook = "before_attacked"
	HookAfterAttacked  Hook = "after_attacked"
	HookBeforeCombat   Hook = "before_combat"
	HookAfterCombat    Hook = "after_combat"
	HookTurnStart      Hook = "turn_start"
	HookTurnEnd        Hook = "turn_end"
	HookUnitTurnEnd    Hook = "unit_turn_end"
	HookBuild          Hook = "on_build"
)

// Hooks lists every extension point.
var Hooks = []Hook{
	HookPassive, HookEquip, HookDequip, HookUse,
	HookBeforeAttack, HookAfterAttack, HookBeforeAttacked, HookAfterAttacked,
	HookBeforeCombat, HookAfterCombat,
	HookTurnStart, HookTurnEnd, HookUnitTurnEnd, HookBuild,
}

// Effect returns the effect name sk declares for h, or "".
func (h Hook) Effect(sk *model.Skill) string {
	switch h {
	case HookPassive:
		return sk.Passive
	case HookEquip:
		return sk.OnEquip
	case HookDequip:
		return sk.OnDequip
	case HookUse:
		return sk.OnUse
	case HookBeforeAttack:
		return sk.BeforeAttack
	case HookAfterAttack:
		return sk.AfterAttack
	case HookBeforeAttacked:
		return sk.BeforeAttacked
	case HookAfterAttacked:
		return sk.AfterAttacked
	case HookBeforeCombat:
		return sk.BeforeCombat
	case HookAfterCombat:
		return sk.AfterCombat
	case HookTurnStart:
		return sk.TurnStart
	case HookTurnEnd:
		return sk.TurnEnd
	case HookUnitTurnEnd:
		return sk.UnitTurnEnd
	case HookBuild:
		return sk.OnBuild
	}
	return ""
}

// Effect signatures, one per family of extension points. A nil record
// means the effect produced nothing worth logging.
type (
	// UnitEffect acts on one unit outside combat: passive, equip, dequip,
	// turn start and turn end.
	UnitEffect func(e *Env, sk *model.Skill, u *model.ActiveUnit) (actionlog.Record, error)
	// UnitTurnEndEffect sees everything the unit did during its action.
	UnitTurnEndEffect func(e *Env, sk *model.Skill, u *model.ActiveUnit, done actionlog.Log) (actionlog.Record, error)
	// UseEffect runs when a weapon, item or skill is used. extra carries
	// the optional id the request supplied. Use effects may move inventory
	// around, so they return a whole log.
	UseEffect func(e *Env, sk *model.Skill, u, target *model.ActiveUnit, extra int) (actionlog.Log, error)
	// AttackEffect edits one attack of the chain before it resolves.
	AttackEffect func(e *Env, sk *model.Skill, s *combat.Session, a *combat.Attack) (actionlog.Record, error)
	// OutcomeEffect reacts to a resolved attack.
	OutcomeEffect func(e *Env, sk *model.Skill, s *combat.Session, o *combat.Outcome) (actionlog.Record, error)
	// CombatEffect runs once per combat for the unit owning the skill.
	CombatEffect func(e *Env, sk *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error)
	// BuildEffect adjusts a unit while its team is being built.
	BuildEffect func(sk *model.Skill, b *model.BuiltUnit) error
)

// ScriptPrefix marks a before-combat effect implemented by a script function.
const ScriptPrefix = "lua:"

// Registries, one per extension point. Populated by init() in the effect files.
var (
	unitEffects = map[Hook]map[string]UnitEffect{
		HookPassive:   {},
		HookEquip:     {},
		HookDequip:    {},
		HookTurnStart: {},
		HookTurnEnd:   {},
	}
	unitTurnEndEffects = map[string]UnitTurnEndEffect{}
	useEffects         = map[string]UseEffect{}
	attackEffects      = map[Hook]map[string]AttackEffect{
		HookBeforeAttack:   {},
		HookBeforeAttacked: {},
	}
	outcomeEffects = map[Hook]map[string]OutcomeEffect{
		HookAfterAttack:   {},
		HookAfterAttacked: {},
	}
	combatEffects = map[Hook]map[string]CombatEffect{
		HookBeforeCombat: {},
		HookAfterCombat:  {},
	}
	buildEffects = map[string]BuildEffect{}
)

func mustHave[F any](reg map[Hook]map[string]F, h Hook) map[string]F {
	m, ok := reg[h]
	if !ok {
		panic(fmt.Sprintf("skill: hook %s does not take this effect signature", h))
	}
	return m
}

// RegisterUnitEffect registers fn under name at a unit-level hook.
func RegisterUnitEffect(h Hook, name string, fn UnitEffect) {
	mustHave(unitEffects, h)[name] = fn
}

// RegisterUnitTurnEndEffect registers fn under name at unit_turn_end.
func RegisterUnitTurnEndEffect(name string, fn UnitTurnEndEffect) {
	unitTurnEndEffects[name] = fn
}

// RegisterUseEffect registers fn under name at on_use.
func RegisterUseEffect(name string, fn UseEffect) {
	useEffects[name] = fn
}

// RegisterAttackEffect registers fn under name at before_attack or before_attacked.
func RegisterAttackEffect(h Hook, name string, fn AttackEffect) {
	mustHave(attackEffects, h)[name] = fn
}

// RegisterOutcomeEffect registers fn under name at after_attack or after_attacked.
func RegisterOutcomeEffect(h Hook, name string, fn OutcomeEffect) {
	mustHave(outcomeEffects, h)[name] = fn
}

// RegisterCombatEffect registers fn under name at before_combat or after_combat.
func RegisterCombatEffect(h Hook, name string, fn CombatEffect) {
	mustHave(combatEffects, h)[name] = fn
}

// RegisterBuildEffect registers fn under name at on_build.
func RegisterBuildEffect(name string, fn BuildEffect) {
	buildEffects[name] = fn
}

// Known reports whether an effect name resolves at h. Script effects are
// accepted at before_combat; the script engine checks them separately.
func Known(h Hook, name string) bool {
	if name == "" {
		return true
	}
	var ok bool
	switch h {
	case HookPassive, HookEquip, HookDequip, HookTurnStart, HookTurnEnd:
		_, ok = unitEffects[h][name]
	case HookUnitTurnEnd:
		_, ok = unitTurnEndEffects[name]
	case HookUse:
		_, ok = useEffects[name]
	case HookBeforeAttack, HookBeforeAttacked:
		_, ok = attackEffects[h][name]
	case HookAfterAttack, HookAfterAttacked:
		_, ok = outcomeEffects[h][name]
	case HookBeforeCombat:
		if strings.HasPrefix(name, ScriptPrefix) {
			return true
		}
		_, ok = combatEffects[h][name]
	case HookAfterCombat:
		_, ok = combatEffects[h][name]
	case HookBuild:
		_, ok = buildEffects[name]
	}
	return ok
}

// CheckSkill returns an error naming every hook of sk whose effect is not registered.
func CheckSkill(sk *model.Skill) error {
	var unknown []string
	for _, h := range Hooks {
		if name := h.Effect(sk); !Known(h, name) {
			unknown = append(unknown, fmt.Sprintf("%s=%s", h, name))
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("skill %q: unknown effect type: %s", sk.Name, strings.Join(unknown, ", "))
	}
	return nil
}

func unknownEffect(h Hook, sk *model.Skill, name string) error {
	return fmt.Errorf("skill %q: unknown %s effect type: %s", sk.Name, h, name)
}

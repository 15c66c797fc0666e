package skill

import (
	"fmt"
	"slices"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/game/formula"
	"github.com/udisondev/linkarena/internal/game/stats"
	"github.com/udisondev/linkarena/internal/model"
)

// defaultEffectiveMod multiplies Mt when neither the game nor the skill
// sets a multiplier.
const defaultEffectiveMod = 3

func sideOf(s *combat.Session, u *model.ActiveUnit) (combat.Side, error) {
	side, ok := s.SideOf(u)
	if !ok {
		return 0, fmt.Errorf("unit %d does not take part in this combat", u.ID)
	}
	return side, nil
}

func weaponType(w *model.ActiveWeapon) model.WeaponType {
	if w == nil {
		return model.WeaponNone
	}
	return w.Template.Type
}

// effective builds a before-combat effect that switches the owner to
// effective damage when matches holds for the opponent's class. A
// non-empty nullifier names the temporary skill that shields against it.
func effective(matches func(c *model.ClassTemplate) bool, nullifier string) CombatEffect {
	return func(e *Env, sk *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error) {
		side, err := sideOf(s, u)
		if err != nil {
			return nil, err
		}
		opp := s.Unit(side.Opponent())
		w := s.Weapon(side)
		switch {
		case w == nil, opp.Class() == nil, !matches(opp.Class()):
			return nil, nil
		case nullifier != "" && opp.HasTempSkill(nullifier):
			return nil, nil
		case side == combat.SideDefender && s.Outranged:
			return nil, nil
		}

		mod := sk.Param
		if mod == 0 {
			mod = defaultEffectiveMod
		}
		atk, err := formula.AttackEffective(s.Arena, u, w, opp, weaponType(s.Weapon(side.Opponent())), mod)
		if err != nil {
			return nil, err
		}
		s.SetAtk(side, atk)
		return actionlog.EffectiveAttacks{Unit: u.ID}, nil
	}
}

func classNamed(names ...string) func(c *model.ClassTemplate) bool {
	return func(c *model.ClassTemplate) bool { return slices.Contains(names, c.Name) }
}

func critPlus15(_ *Env, _ *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error) {
	side, err := sideOf(s, u)
	if err != nil {
		return nil, err
	}
	s.SetCrit(side, s.Numbers(side).Crit+15)
	return nil, nil
}

// reverseTriangle flips and doubles the weapon triangle for both sides.
// The bonus already applied is undone first, hence the factor of three.
func reverseTriangle(_ *Env, _ *model.Skill, s *combat.Session, _ *model.ActiveUnit) (actionlog.Record, error) {
	if s.AttackerWeapon == nil || s.DefenderWeapon == nil {
		return nil, nil
	}
	g := s.Game
	at, dt := s.AttackerWeapon.Template.Type, s.DefenderWeapon.Template.Type
	atkA := formula.TriangleAtkBonus(g, s.Defender, dt, s.Attacker, at)
	hitA := formula.TriangleHitBonus(g, s.Defender, dt, s.Attacker, at)
	atkD := formula.TriangleAtkBonus(g, s.Attacker, at, s.Defender, dt)
	hitD := formula.TriangleHitBonus(g, s.Attacker, at, s.Defender, dt)

	a, d := s.Numbers(combat.SideAttacker), s.Numbers(combat.SideDefender)
	s.SetAtk(combat.SideAttacker, a.Atk+3*atkA)
	s.SetHit(combat.SideAttacker, a.Hit+3*hitA)
	s.SetAtk(combat.SideDefender, d.Atk+3*atkD)
	s.SetHit(combat.SideDefender, d.Hit+3*hitD)
	return nil, nil
}

// siegeWeapon leaves an attacking owner a single strike and no counter. A
// defending owner simply never strikes back.
func siegeWeapon(_ *Env, _ *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error) {
	side, err := sideOf(s, u)
	if err != nil {
		return nil, err
	}
	if side == combat.SideDefender {
		s.Chain.RemoveIf(func(a *combat.Attack) bool { return a.By == u })
		return nil, nil
	}
	var first *combat.Attack
	for _, a := range s.Chain.Attacks() {
		if a.By == u {
			first = a
			break
		}
	}
	s.Chain.RemoveIf(func(a *combat.Attack) bool { return a != first })
	return nil, nil
}

func ironRune(_ *Env, _ *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error) {
	side, err := sideOf(s, u)
	if err != nil {
		return nil, err
	}
	s.SetDdg(side, 999)
	return nil, nil
}

func weaponKey(sk *model.Skill) string { return sk.Name + ":weapon" }
func magKey(sk *model.Skill) string    { return sk.Name + ":mag" }

// magicSwap builds an effect that swaps the owner's weapon template for
// the one sk.Param names and sets Mag to half of Str, so the strike turns
// magical. The previous state is kept in skill data for restoreSwap.
func magicSwap(rangedOnly, noCrit bool) CombatEffect {
	return func(e *Env, sk *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error) {
		side, err := sideOf(s, u)
		if err != nil {
			return nil, err
		}
		w := s.Weapon(side)
		if w == nil || (rangedOnly && s.Range <= 1) {
			return nil, nil
		}
		tpl, err := e.weaponTemplate(sk, sk.Param)
		if err != nil {
			return nil, err
		}

		u.SetData(weaponKey(sk), w.Template.ID)
		u.SetData(magKey(sk), u.Mods.Mag)
		w.Template = tpl
		u.Mods.Mag += formula.FloorDiv(stats.Str(u), 2) - stats.Mag(u)
		if err := s.Recalculate(side); err != nil {
			return nil, err
		}
		if noCrit {
			s.SetCrit(side, -999)
		}
		return nil, nil
	}
}

func (e *Env) weaponTemplate(sk *model.Skill, id int) (*model.WeaponTemplate, error) {
	if e.Catalog != nil {
		if tpl, ok := e.Catalog.WeaponTemplate(id); ok {
			return tpl, nil
		}
	}
	return nil, fmt.Errorf("skill %q: weapon template %d not found", sk.Name, id)
}

// restoreSwap undoes magicSwap once the combat is over.
func restoreSwap(e *Env, sk *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error) {
	id, ok := u.Data(weaponKey(sk))
	if !ok {
		return nil, nil
	}
	mag, _ := u.Data(magKey(sk))
	u.Mods.Mag = mag
	u.ClearData(weaponKey(sk))
	u.ClearData(magKey(sk))

	side, err := sideOf(s, u)
	if err != nil {
		return nil, err
	}
	if w := s.Weapon(side); w != nil {
		tpl, err := e.weaponTemplate(sk, id)
		if err != nil {
			return nil, err
		}
		w.Template = tpl
	}
	return nil, nil
}

func luna(_ *Env, _ *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error) {
	side, err := sideOf(s, u)
	if err != nil {
		return nil, err
	}
	s.SetRsl(side.Opponent(), 0)
	return nil, nil
}

// eclipse strikes for half the opponent's current HP, rounded up, and never crits.
func eclipse(_ *Env, _ *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error) {
	side, err := sideOf(s, u)
	if err != nil {
		return nil, err
	}
	opp := side.Opponent()
	s.SetAtk(side, (s.Unit(opp).CurrentHP+1)/2)
	s.SetRsl(opp, 0)
	s.SetCrit(side, -999)
	return nil, nil
}

// silencerBonus grants extra points when a silencer strike ended the combat.
func silencerBonus(_ *Env, _ *model.Skill, s *combat.Session, u *model.ActiveUnit) (actionlog.Record, error) {
	last := s.Chain.Last()
	if last == nil || last.By != u || !last.HasTag(TagSilencer) || last.Against.CurrentHP > 0 {
		return nil, nil
	}
	side, err := sideOf(s, u)
	if err != nil {
		return nil, err
	}
	opp := s.Unit(side.Opponent())
	strength := 0
	if opp.Class() != nil {
		strength = opp.Class().ClassStrength
	}
	s.AddPoints(side, stats.Level(opp)*strength)
	return nil, nil
}

func init() {
	for name, eff := range map[string]CombatEffect{
		"effective_cavalry": effective(func(c *model.ClassTemplate) bool { return c.Cavalry }, NullifyCavalry),
		"effective_armored": effective(func(c *model.ClassTemplate) bool { return c.Armored }, NullifyArmored),
		"effective_flying":  effective(func(c *model.ClassTemplate) bool { return c.Flying }, NullifyFlying),
		"effective_dragons": effective(func(c *model.ClassTemplate) bool { return c.Dragon }, NullifyDragon),
		"effective_wyverns": effective(func(c *model.ClassTemplate) bool { return c.Wyvern }, NullifyWyvern),
		"fe7_swordslayer":   effective(classNamed("Myrmidon", "Swordmaster", "Mercenary", "Hero", "Blade Lord"), ""),
		"fe7_dark_druid":    effective(classNamed("Dark Druid"), ""),

		"crit+15":                     critPlus15,
		"fe7_reverse_weapon_triangle": reverseTriangle,
		"fe7_siege_weapon":            siegeWeapon,
		"iron_rune":                   ironRune,
		"fe7_light_brand":             magicSwap(true, false),
		"fe7_wind_edge":               magicSwap(true, false),
		"fe7_runesword":               magicSwap(false, true),
		"fe7_luna":                    luna,
		"fe7_eclipse":                 eclipse,
	} {
		RegisterCombatEffect(HookBeforeCombat, name, eff)
	}

	RegisterCombatEffect(HookAfterCombat, "fe7_silencer", silencerBonus)
	for _, name := range []string{"fe7_light_brand", "fe7_wind_edge", "fe7_runesword"} {
		RegisterCombatEffect(HookAfterCombat, name, restoreSwap)
	}
}

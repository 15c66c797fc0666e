package arena

import (
	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/game/inventory"
	"github.com/udisondev/linkarena/internal/game/stats"
	"github.com/udisondev/linkarena/internal/model"
)

// MaxMinRange is the largest minimum range a weapon may have and still
// attack inside an arena.
const MaxMinRange = 2

// Action is one step a unit takes. Kind selects the fields that matter:
//
//	equip_weapon, discard_weapon   Weapon
//	equip_item, discard_item       Item
//	attack                         Target, WithWeapon, Range
//	use_weapon                     Weapon, optional Target and Extra
//	use_item                       Item, optional Target and Extra
//	use_skill                      Skill, optional Target and Extra
//	wait                           nothing
type Action struct {
	Kind       string `json:"action"`
	Weapon     int    `json:"weapon,omitempty"`
	Item       int    `json:"item,omitempty"`
	Skill      string `json:"skill,omitempty"`
	Target     int    `json:"target,omitempty"`
	WithWeapon int    `json:"with_weapon,omitempty"`
	Range      int    `json:"range,omitempty"`
	Extra      int    `json:"extra_data,omitempty"`
}

// Dispatch validates act for u and carries it out. Validation happens
// before anything about the arena changes.
func (b *Battle) Dispatch(u *model.ActiveUnit, act Action) (actionlog.Log, error) {
	if u.IsRestricted(act.Kind) {
		return nil, model.InvalidOpf(act.Kind, "unit %d may not do this right now", u.ID)
	}
	switch act.Kind {
	case model.ActionEquipWeapon:
		w, err := b.equippable(act.Kind, u, act.Weapon)
		if err != nil {
			return nil, err
		}
		return b.equipWeapon(u, w)
	case model.ActionEquipItem:
		it, err := heldItem(act.Kind, u, act.Item)
		if err != nil {
			return nil, err
		}
		if !it.Template.Equippable {
			return nil, model.InvalidOpf(act.Kind, "%s is not equippable", it.Template.Name)
		}
		return b.equipItem(u, it)
	case model.ActionDiscardWeapon:
		w := u.Weapon(act.Weapon)
		if w == nil {
			return nil, model.InvalidOpf(act.Kind, "unit %d does not hold weapon %d", u.ID, act.Weapon)
		}
		return b.discardWeapon(u, w)
	case model.ActionDiscardItem:
		it := u.Item(act.Item)
		if it == nil {
			return nil, model.InvalidOpf(act.Kind, "unit %d does not hold item %d", u.ID, act.Item)
		}
		return b.discardItem(u, it)
	case model.ActionAttack:
		return b.attack(u, act)
	case model.ActionUseWeapon:
		return b.useWeapon(u, act)
	case model.ActionUseItem:
		return b.useItem(u, act)
	case model.ActionUseSkill:
		return b.useSkill(u, act)
	case model.ActionWait:
		b.Arena.TurnShouldEnd = true
		return actionlog.Log{actionlog.Wait{}}, nil
	default:
		return nil, model.Invalidf("%q is not a valid action", act.Kind)
	}
}

// equippable returns the weapon with id if u holds it and may wield it.
func (b *Battle) equippable(op string, u *model.ActiveUnit, id int) (*model.ActiveWeapon, error) {
	w := u.Weapon(id)
	if w == nil {
		return nil, model.InvalidOpf(op, "unit %d does not hold weapon %d", u.ID, id)
	}
	if !stats.CanEquip(b.Arena.Game, u, w.Template) {
		return nil, model.InvalidOpf(op, "unit %d lacks the rank for %s (%s)", u.ID, w.Template.Name, w.Template.Rank)
	}
	return w, nil
}

// heldItem returns the item with id if u holds it and is not locked out
// by a personal-user restriction.
func heldItem(op string, u *model.ActiveUnit, id int) (*model.ActiveItem, error) {
	it := u.Item(id)
	if it == nil {
		return nil, model.InvalidOpf(op, "unit %d does not hold item %d", u.ID, id)
	}
	if len(it.Template.PrfUsers) > 0 && !it.Template.IsPrfUser(u.Template.Unit.Name) {
		return nil, model.InvalidOpf(op, "%s is personal to %v", it.Template.Name, it.Template.PrfUsers)
	}
	return it, nil
}

// target resolves an optional target unit. Zero means no target.
func (b *Battle) target(op string, id int) (*model.ActiveUnit, error) {
	if id == 0 {
		return nil, nil
	}
	t := b.Arena.Unit(id)
	if t == nil {
		return nil, model.InvalidOpf(op, "target unit %d is not in this arena", id)
	}
	return t, nil
}

// equipWeapon makes w the only equipped weapon and moves it to the first slot.
func (b *Battle) equipWeapon(u *model.ActiveUnit, w *model.ActiveWeapon) (actionlog.Log, error) {
	var log actionlog.Log
	if !w.Equipped {
		for _, other := range u.EquippedWeapons() {
			other.Equipped = false
			log = append(log, actionlog.UnequipWeapon{Unit: u.ID, Weapon: other.ID})
			out, err := b.env.Dequip(u, other.Template.Skills)
			log = append(log, out...)
			if err != nil {
				return log, err
			}
		}
		w.Equipped = true
		log = append(log, actionlog.EquipWeapon{Unit: u.ID, Weapon: w.ID})
		out, err := b.env.Equip(u, w.Template.Skills)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
	}
	return append(log, inventory.ShiftWeaponToFront(u, w)...), nil
}

// equipItem makes it the only equipped item and moves it to the first slot.
func (b *Battle) equipItem(u *model.ActiveUnit, it *model.ActiveItem) (actionlog.Log, error) {
	var log actionlog.Log
	if !it.Equipped {
		for _, other := range u.EquippedItems() {
			other.Equipped = false
			log = append(log, actionlog.UnequipItem{Unit: u.ID, Item: other.ID})
			out, err := b.env.Dequip(u, other.Template.Skills)
			log = append(log, out...)
			if err != nil {
				return log, err
			}
		}
		it.Equipped = true
		log = append(log, actionlog.EquipItem{Unit: u.ID, Item: it.ID})
		out, err := b.env.Equip(u, it.Template.Skills)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
	}
	return append(log, inventory.ShiftItemToFront(u, it)...), nil
}

// discardWeapon drops w. If it was equipped, the first weapon by slot that
// u can wield takes its place.
func (b *Battle) discardWeapon(u *model.ActiveUnit, w *model.ActiveWeapon) (actionlog.Log, error) {
	var log actionlog.Log
	wasEquipped := w.Equipped
	if wasEquipped {
		w.Equipped = false
		log = append(log, actionlog.UnequipWeapon{Unit: u.ID, Weapon: w.ID})
		out, err := b.env.Dequip(u, w.Template.Skills)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
	}
	log = append(log, inventory.RemoveWeapon(u, w)...)
	if !wasEquipped {
		return log, nil
	}
	for _, next := range inventory.OrderedWeapons(u) {
		if stats.CanEquip(b.Arena.Game, u, next.Template) {
			out, err := b.equipWeapon(u, next)
			return append(log, out...), err
		}
	}
	return log, nil
}

// discardItem drops it. Nothing is equipped in its place.
func (b *Battle) discardItem(u *model.ActiveUnit, it *model.ActiveItem) (actionlog.Log, error) {
	var log actionlog.Log
	if it.Equipped {
		it.Equipped = false
		log = append(log, actionlog.UnequipItem{Unit: u.ID, Item: it.ID})
		out, err := b.env.Dequip(u, it.Template.Skills)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
	}
	return append(log, inventory.RemoveItem(u, it)...), nil
}

// breakWeapon handles a weapon that ran out of uses: depending on the game
// it turns into its successor or is discarded.
func (b *Battle) breakWeapon(u *model.ActiveUnit, w *model.ActiveWeapon) (actionlog.Log, error) {
	succ := w.Template.Successor
	if b.Arena.Game.WeaponBreak != model.BreakIntoSuccessor || succ == nil {
		return b.discardWeapon(u, w)
	}

	var log actionlog.Log
	if w.Equipped {
		out, err := b.env.Dequip(u, w.Template.Skills)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
	}
	w.Template = succ
	w.Uses = succ.Uses
	log = append(log, actionlog.ReplaceWeapon{Weapon: w.ID, NewData: actionlog.NewWeaponView(w)})
	if w.Equipped {
		out, err := b.env.Equip(u, w.Template.Skills)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
	}
	return log, nil
}

func (b *Battle) useWeapon(u *model.ActiveUnit, act Action) (actionlog.Log, error) {
	const op = model.ActionUseWeapon
	w, err := b.equippable(op, u, act.Weapon)
	if err != nil {
		return nil, err
	}
	if !w.Template.Usable {
		return nil, model.InvalidOpf(op, "%s cannot be used", w.Template.Name)
	}
	target, err := b.target(op, act.Target)
	if err != nil {
		return nil, err
	}

	log, err := b.env.Use(u, target, w.Template.Skills, act.Extra)
	if err != nil {
		return log, err
	}
	if w.Uses > 0 {
		w.Uses--
		log = append(log, actionlog.ChangeWeaponUses{Weapon: w.ID, NewUses: w.Uses})
	}
	if w.Broken() {
		out, err := b.breakWeapon(u, w)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
	}
	b.Arena.TurnShouldEnd = true
	return log, nil
}

func (b *Battle) useItem(u *model.ActiveUnit, act Action) (actionlog.Log, error) {
	const op = model.ActionUseItem
	it, err := heldItem(op, u, act.Item)
	if err != nil {
		return nil, err
	}
	if !it.Template.Usable {
		return nil, model.InvalidOpf(op, "%s cannot be used", it.Template.Name)
	}
	target, err := b.target(op, act.Target)
	if err != nil {
		return nil, err
	}

	log, err := b.env.Use(u, target, it.Template.Skills, act.Extra)
	if err != nil {
		return log, err
	}
	if it.Uses > 0 {
		it.Uses--
		log = append(log, actionlog.ChangeItemUses{Item: it.ID, NewUses: it.Uses})
	}
	if it.Uses == 0 {
		out, err := b.discardItem(u, it)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
	}
	b.Arena.TurnShouldEnd = true
	return log, nil
}

// ownSkills lists the skills a unit may trigger by hand: its character's,
// its class's, the extra skills it was built with and temporary ones.
func ownSkills(u *model.ActiveUnit) []*model.Skill {
	var out []*model.Skill
	if u.Template.Unit != nil {
		out = append(out, u.Template.Unit.Skills...)
	}
	if c := u.Class(); c != nil {
		out = append(out, c.Skills...)
	}
	out = append(out, u.Template.ExtraSkills...)
	return append(out, u.TempSkills...)
}

func (b *Battle) useSkill(u *model.ActiveUnit, act Action) (actionlog.Log, error) {
	const op = model.ActionUseSkill
	var sk *model.Skill
	for _, s := range ownSkills(u) {
		if s.Name == act.Skill {
			sk = s
			break
		}
	}
	if sk == nil {
		return nil, model.InvalidOpf(op, "unit %d has no skill %q", u.ID, act.Skill)
	}
	if sk.OnUse == "" {
		return nil, model.InvalidOpf(op, "%s cannot be used manually", sk.Name)
	}
	target, err := b.target(op, act.Target)
	if err != nil {
		return nil, err
	}

	log := actionlog.Log{actionlog.ActivateSkill{Skill: sk.Name, Show: true}}
	out, err := b.env.Use(u, target, []*model.Skill{sk}, act.Extra)
	log = append(log, out...)
	if err != nil {
		return log, err
	}
	b.Arena.TurnShouldEnd = true
	return log, nil
}

func (b *Battle) attack(u *model.ActiveUnit, act Action) (actionlog.Log, error) {
	const op = model.ActionAttack
	a := b.Arena
	defender := a.Unit(act.Target)
	if defender == nil {
		return nil, model.InvalidOpf(op, "target unit %d is not in this arena", act.Target)
	}
	attackerTeam := a.CurrentTeam()
	if !attackerTeam.Has(u) {
		return nil, model.InvalidOpf(op, "unit %d is not on the team whose turn it is", u.ID)
	}
	if attackerTeam.Has(defender) {
		return nil, model.InvalidOpf(op, "unit %d cannot attack its teammate %d", u.ID, defender.ID)
	}
	w, err := b.equippable(op, u, act.WithWeapon)
	if err != nil {
		return nil, err
	}
	switch {
	case w.Broken():
		return nil, model.InvalidOpf(op, "%s has no uses left", w.Template.Name)
	case !w.Template.InRange(act.Range):
		return nil, model.InvalidOpf(op, "%s cannot reach range %d (%d-%d)", w.Template.Name, act.Range, w.Template.MinRange, w.Template.MaxRange)
	case w.Template.MinRange > MaxMinRange:
		return nil, model.InvalidOpf(op, "%s cannot be used in an arena", w.Template.Name)
	}
	if n := len(defender.EquippedWeapons()); n > 1 {
		return nil, model.InvalidOpf(op, "unit %d has %d equipped weapons", defender.ID, n)
	}
	defenderTeam := a.TeamOf(defender)

	log, err := b.equipWeapon(u, w)
	if err != nil {
		return log, err
	}
	s, err := combat.New(a, u, defender, act.Range, b.env.RNG)
	if err != nil {
		return log, err
	}
	usesBefore := map[*model.ActiveWeapon]int{}
	for _, sw := range []*model.ActiveWeapon{s.AttackerWeapon, s.DefenderWeapon} {
		if sw != nil {
			usesBefore[sw] = sw.Uses
		}
	}

	out, err := b.env.BeforeCombat(s)
	log = append(log, out...)
	if err != nil {
		return log, err
	}
	log = append(log, s.Summary())
	out, err = b.env.BeforeAttacks(s)
	log = append(log, out...)
	if err != nil {
		return log, err
	}
	out, err = s.Execute(b.env)
	log = append(log, out...)
	if err != nil {
		return log, err
	}
	out, err = b.env.AfterCombat(s)
	log = append(log, out...)
	if err != nil {
		return log, err
	}

	for _, side := range []struct {
		unit   *model.ActiveUnit
		team   *model.ActiveTeam
		weapon *model.ActiveWeapon
	}{
		{u, attackerTeam, s.AttackerWeapon},
		{defender, defenderTeam, s.DefenderWeapon},
	} {
		if side.weapon != nil && side.weapon.Uses != usesBefore[side.weapon] {
			log = append(log, actionlog.ChangeWeaponUses{Weapon: side.weapon.ID, NewUses: side.weapon.Uses})
		}
		if side.unit.CurrentHP <= 0 {
			side.team.Remove(side.unit)
			log = append(log, actionlog.KillUnit{Team: side.team.ID, Unit: side.unit.ID})
			continue
		}
		if side.weapon != nil && side.weapon.Broken() && side.unit.Weapon(side.weapon.ID) != nil {
			out, err := b.breakWeapon(side.unit, side.weapon)
			log = append(log, out...)
			if err != nil {
				return log, err
			}
		}
	}

	log = append(log, actionlog.EndCombat{
		AttackerTeam:     attackerTeam.ID,
		PointsToAttacker: s.AttackerPoints,
		DefenderTeam:     defenderTeam.ID,
		PointsToDefender: s.DefenderPoints,
	})
	attackerTeam.Score += s.AttackerPoints
	defenderTeam.Score += s.DefenderPoints
	a.TurnShouldEnd = true
	return log, nil
}

package skill

import (
	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/inventory"
	"github.com/udisondev/linkarena/internal/game/stats"
	"github.com/udisondev/linkarena/internal/model"
)

// danceSingle refreshes another unit. Arenas have no movement phase, so it
// only validates.
func danceSingle(_ *Env, sk *model.Skill, u, target *model.ActiveUnit, _ int) (actionlog.Log, error) {
	if target == nil {
		return nil, model.InvalidOpf(model.ActionUseSkill, "%s requires a target", sk.Name)
	}
	return nil, nil
}

// steal moves the item with id extra from target into u's inventory.
func steal(e *Env, sk *model.Skill, u, target *model.ActiveUnit, extra int) (actionlog.Log, error) {
	const op = model.ActionUseSkill
	switch {
	case target == nil:
		return nil, model.InvalidOpf(op, "%s requires a target", sk.Name)
	case extra <= 0:
		return nil, model.InvalidOpf(op, "%s requires the id of an item held by the target", sk.Name)
	case stats.Spd(u) < stats.Spd(target):
		return nil, model.InvalidOpf(op, "unit %d is too slow to steal from unit %d", u.ID, target.ID)
	}
	it := target.Item(extra)
	if it == nil {
		return nil, model.InvalidOpf(op, "unit %d does not hold item %d", target.ID, extra)
	}
	g := e.Arena.Game
	if g.MaxItems > 0 && len(u.Items) >= g.MaxItems {
		return nil, model.InvalidOpf(op, "unit %d holds too many items to steal", u.ID)
	}
	if g.InventoryFull(len(u.Weapons), len(u.Items)) {
		return nil, model.InvalidOpf(op, "unit %d has a full inventory", u.ID)
	}

	var log actionlog.Log
	if it.Equipped {
		out, err := e.Dequip(target, it.Template.Skills)
		if err != nil {
			return log, err
		}
		log = append(log, out...)
		log = append(log, actionlog.UnequipItem{Unit: target.ID, Item: it.ID})
	}
	log = append(log, inventory.TakeItem(target, it)...)
	inventory.AddItem(u, it)
	return append(log, actionlog.StealItem{Unit: u.ID, From: target.ID, Item: it.ID}), nil
}

func init() {
	RegisterUseEffect("dance_single", danceSingle)
	RegisterUseEffect("fe7_steal", steal)
}

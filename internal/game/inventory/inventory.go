// Package inventory keeps a unit's weapon and item slots dense and ordered.
// Weapons and items share one slot sequence starting at 0; every helper
// reports the slot moves it made as action log records.
package inventory

import (
	"slices"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/model"
)

// move shifts every entry whose slot is before pivot one slot back when
// backwards is set, or every entry after pivot one slot forward otherwise.
func move(u *model.ActiveUnit, pivot int, backwards bool) actionlog.Log {
	var log actionlog.Log
	affected := func(slot int) bool {
		if backwards {
			return slot < pivot
		}
		return slot > pivot
	}
	delta := -1
	if backwards {
		delta = 1
	}
	for _, w := range u.Weapons {
		if affected(w.InventoryID) {
			w.InventoryID += delta
			log = append(log, actionlog.ChangeWeaponInventoryID{Unit: u.ID, Weapon: w.ID, NewID: w.InventoryID})
		}
	}
	for _, it := range u.Items {
		if affected(it.InventoryID) {
			it.InventoryID += delta
			log = append(log, actionlog.ChangeItemInventoryID{Unit: u.ID, Item: it.ID, NewID: it.InventoryID})
		}
	}
	return log
}

// ShiftWeaponToFront moves w into slot 0, pushing everything that was in
// front of it one slot back.
func ShiftWeaponToFront(u *model.ActiveUnit, w *model.ActiveWeapon) actionlog.Log {
	log := move(u, w.InventoryID, true)
	w.InventoryID = 0
	return append(log, actionlog.ChangeWeaponInventoryID{Unit: u.ID, Weapon: w.ID, NewID: 0})
}

// ShiftItemToFront moves it into slot 0, pushing everything that was in
// front of it one slot back.
func ShiftItemToFront(u *model.ActiveUnit, it *model.ActiveItem) actionlog.Log {
	log := move(u, it.InventoryID, true)
	it.InventoryID = 0
	return append(log, actionlog.ChangeItemInventoryID{Unit: u.ID, Item: it.ID, NewID: 0})
}

// RemoveWeapon takes w out of u's inventory and closes the gap it leaves.
func RemoveWeapon(u *model.ActiveUnit, w *model.ActiveWeapon) actionlog.Log {
	log := move(u, w.InventoryID, false)
	u.Weapons = slices.DeleteFunc(u.Weapons, func(x *model.ActiveWeapon) bool { return x == w })
	return append(log, actionlog.RemoveWeapon{Weapon: w.ID, Unit: u.ID})
}

// RemoveItem takes it out of u's inventory and closes the gap it leaves.
func RemoveItem(u *model.ActiveUnit, it *model.ActiveItem) actionlog.Log {
	return append(TakeItem(u, it), actionlog.RemoveItem{Item: it.ID, Unit: u.ID})
}

// TakeItem is RemoveItem for an item that changes hands: only the slot
// shifts are logged.
func TakeItem(u *model.ActiveUnit, it *model.ActiveItem) actionlog.Log {
	log := move(u, it.InventoryID, false)
	u.Items = slices.DeleteFunc(u.Items, func(x *model.ActiveItem) bool { return x == it })
	return log
}

// AddItem places it in the first free slot at the end of u's inventory.
func AddItem(u *model.ActiveUnit, it *model.ActiveItem) {
	it.InventoryID = u.InventorySize()
	it.Equipped = false
	u.Items = append(u.Items, it)
}

// OrderedWeapons lists u's weapons by slot.
func OrderedWeapons(u *model.ActiveUnit) []*model.ActiveWeapon {
	out := slices.Clone(u.Weapons)
	slices.SortStableFunc(out, func(a, b *model.ActiveWeapon) int { return a.InventoryID - b.InventoryID })
	return out
}

// Dense reports whether u's slots are exactly 0..n-1 with no repeats.
func Dense(u *model.ActiveUnit) bool {
	seen := make([]bool, u.InventorySize())
	mark := func(slot int) bool {
		if slot < 0 || slot >= len(seen) || seen[slot] {
			return false
		}
		seen[slot] = true
		return true
	}
	for _, w := range u.Weapons {
		if !mark(w.InventoryID) {
			return false
		}
	}
	for _, it := range u.Items {
		if !mark(it.InventoryID) {
			return false
		}
	}
	return true
}

package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/model"
	"github.com/udisondev/linkarena/internal/testutil"
)

// stocked returns a unit holding sword(0) vulnerary(1) lance(2) axe(3) elixir(4).
func stocked(t *testing.T) *model.ActiveUnit {
	t.Helper()
	u := testutil.Unit(1, "Eliwood", model.StatBlock{HP: 18})
	testutil.Arm(u, 10, testutil.Weapon(1, "Sword", model.WeaponSword, 5, 90, 0, 5, 40), true)
	testutil.Give(u, 20, &model.ItemTemplate{ID: 1, Name: "Vulnerary", Uses: 3})
	testutil.Arm(u, 11, testutil.Weapon(2, "Lance", model.WeaponLance, 7, 80, 0, 8, 45), false)
	testutil.Arm(u, 12, testutil.Weapon(3, "Axe", model.WeaponAxe, 8, 75, 0, 10, 45), false)
	testutil.Give(u, 21, &model.ItemTemplate{ID: 2, Name: "Elixir", Uses: 3})
	require.True(t, Dense(u))
	return u
}

func slots(u *model.ActiveUnit) map[int]int {
	out := make(map[int]int)
	for _, w := range u.Weapons {
		out[w.ID] = w.InventoryID
	}
	for _, it := range u.Items {
		out[it.ID] = it.InventoryID
	}
	return out
}

func TestShiftWeaponToFront(t *testing.T) {
	u := stocked(t)
	axe := u.Weapon(12)

	log := ShiftWeaponToFront(u, axe)
	assert.Equal(t, map[int]int{12: 0, 10: 1, 20: 2, 11: 3, 21: 4}, slots(u))
	assert.True(t, Dense(u))
	assert.Equal(t, actionlog.ChangeWeaponInventoryID{Unit: 1, Weapon: 12, NewID: 0}, log[len(log)-1])
	assert.Len(t, log, 4)
}

func TestShiftItemToFront(t *testing.T) {
	u := stocked(t)

	ShiftItemToFront(u, u.Item(21))
	assert.Equal(t, map[int]int{21: 0, 10: 1, 20: 2, 11: 3, 12: 4}, slots(u))
}

func TestShiftThenRemove_RestoresOrder(t *testing.T) {
	for _, id := range []int{10, 11, 12} {
		shifted, direct := stocked(t), stocked(t)

		ShiftWeaponToFront(shifted, shifted.Weapon(id))
		RemoveWeapon(shifted, shifted.Weapon(id))
		RemoveWeapon(direct, direct.Weapon(id))

		assert.Equal(t, slots(direct), slots(shifted), "weapon %d", id)
		assert.True(t, Dense(shifted))
	}
}

func TestRemove(t *testing.T) {
	u := stocked(t)

	log := RemoveItem(u, u.Item(20))
	assert.Equal(t, map[int]int{10: 0, 11: 1, 12: 2, 21: 3}, slots(u))
	assert.Equal(t, actionlog.RemoveItem{Item: 20, Unit: 1}, log[len(log)-1])
	assert.Nil(t, u.Item(20))

	log = RemoveWeapon(u, u.Weapon(12))
	assert.Equal(t, actionlog.Log{
		actionlog.ChangeItemInventoryID{Unit: 1, Item: 21, NewID: 2},
		actionlog.RemoveWeapon{Weapon: 12, Unit: 1},
	}, log)
	assert.True(t, Dense(u))
}

func TestAddItemAndOrder(t *testing.T) {
	u := stocked(t)
	RemoveWeapon(u, u.Weapon(10))
	AddItem(u, &model.ActiveItem{ID: 30, Template: &model.ItemTemplate{ID: 3, Name: "Red Gem"}, Equipped: true})

	assert.Equal(t, 4, u.Item(30).InventoryID)
	assert.False(t, u.Item(30).Equipped)
	assert.True(t, Dense(u))

	ShiftWeaponToFront(u, u.Weapon(12))
	var order []int
	for _, w := range OrderedWeapons(u) {
		order = append(order, w.ID)
	}
	assert.Equal(t, []int{12, 11}, order)
}

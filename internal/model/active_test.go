package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveUnit_TempSkills(t *testing.T) {
	u := &ActiveUnit{}
	poison := &Skill{Name: "fe7_poisoned"}

	u.AddTempSkill(poison)
	u.AddTempSkill(poison)
	require.Len(t, u.TempSkills, 1)
	assert.True(t, u.HasTempSkill("fe7_poisoned"))

	u.RemoveTempSkill("fe7_poisoned")
	assert.False(t, u.HasTempSkill("fe7_poisoned"))
	assert.Empty(t, u.TempSkills)
}

func TestActiveUnit_Equipped(t *testing.T) {
	sword := &ActiveWeapon{ID: 1, Equipped: true}
	lance := &ActiveWeapon{ID: 2}
	ring := &ActiveItem{ID: 3, Equipped: true}
	u := &ActiveUnit{Weapons: []*ActiveWeapon{lance, sword}, Items: []*ActiveItem{ring}}

	assert.Equal(t, sword, u.EquippedWeapon())
	assert.Equal(t, []*ActiveWeapon{sword}, u.EquippedWeapons())
	assert.Equal(t, []*ActiveItem{ring}, u.EquippedItems())
	assert.Equal(t, lance, u.Weapon(2))
	assert.Nil(t, u.Weapon(99))
	assert.Equal(t, 3, u.InventorySize())
}

func TestArena_TeamLookup(t *testing.T) {
	a := &Arena{}
	u1 := &ActiveUnit{ID: a.NextID()}
	u2 := &ActiveUnit{ID: a.NextID()}
	t1 := &ActiveTeam{ID: 10, Units: []*ActiveUnit{u1}}
	t2 := &ActiveTeam{ID: 20, Units: []*ActiveUnit{u2}}
	a.Teams[0] = t1
	a.Teams[2] = t2

	assert.Equal(t, t1, a.TeamOf(u1))
	assert.Equal(t, t2, a.TeamOf(u2))
	assert.Equal(t, u2, a.Unit(u2.ID))
	assert.Equal(t, 2, a.TeamIndex(t2))
	assert.Len(t, a.LiveTeams(), 2)

	t2.Remove(u2)
	assert.True(t, t2.Empty())
	assert.Len(t, a.LiveTeams(), 1)
	assert.Nil(t, a.TeamOf(u2))
}

func TestValidationError(t *testing.T) {
	err := InvalidOpf("attack", "unit %d is not on the current team", 4)
	assert.True(t, IsValidation(err))
	assert.False(t, IsConfig(err))
	assert.Equal(t, "attack: unit 4 is not on the current team", err.Error())

	cfg := NewConfigError(&Game{Name: "FE7"}, "hit method", "bogus")
	assert.True(t, IsConfig(cfg))
	assert.Contains(t, cfg.Error(), "FE7")
}

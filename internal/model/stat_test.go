package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatBlock_GetSetAdd(t *testing.T) {
	var b StatBlock
	for i, s := range AllStats {
		b.Set(s, i+1)
	}
	for i, s := range AllStats {
		assert.Equal(t, i+1, b.Get(s), "stat %s", s)
	}

	b.Add(StatStr, 5)
	assert.Equal(t, 7, b.Str)
	assert.Equal(t, 0, b.Get(Stat("bogus")))
}

func TestCaps_MissingIsUncapped(t *testing.T) {
	c := Caps{StatHP: 60}
	assert.Equal(t, 60, c.Get(StatHP))
	assert.Equal(t, Uncapped, c.Get(StatStr))

	var nilCaps Caps
	assert.Equal(t, Uncapped, nilCaps.Get(StatLuk))
}

func TestWeaponRank_Ordering(t *testing.T) {
	order := []WeaponRank{RankPrf, RankNone, RankE, RankD, RankC, RankB, RankA, RankS, RankSS}
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1].Value(), order[i].Value(), "%s < %s", order[i-1], order[i])
	}
}

func TestWeaponType_IsMagic(t *testing.T) {
	tests := []struct {
		typ  WeaponType
		want bool
	}{
		{WeaponSword, false},
		{WeaponStaff, false},
		{WeaponAnima, true},
		{WeaponDark, true},
		{WeaponFire, true},
		{WeaponBow, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.IsMagic(), "%s", tt.typ)
	}
}

package arena

import (
	"maps"
	"slices"

	"github.com/udisondev/linkarena/internal/model"
)

// Clone copies every piece of live state in a. Templates, the game and the
// format are shared since nothing mutates them during a battle.
func Clone(a *model.Arena) *model.Arena {
	c := *a
	for i, t := range a.Teams {
		if t == nil {
			continue
		}
		ct := *t
		ct.Units = make([]*model.ActiveUnit, len(t.Units))
		for j, u := range t.Units {
			ct.Units[j] = cloneUnit(u)
		}
		c.Teams[i] = &ct
	}
	return &c
}

func cloneUnit(u *model.ActiveUnit) *model.ActiveUnit {
	c := *u
	c.RankMods = maps.Clone(u.RankMods)
	c.Restricted = maps.Clone(u.Restricted)
	c.SkillData = maps.Clone(u.SkillData)
	c.TempSkills = slices.Clone(u.TempSkills)
	c.Weapons = make([]*model.ActiveWeapon, len(u.Weapons))
	for i, w := range u.Weapons {
		cw := *w
		c.Weapons[i] = &cw
	}
	c.Items = make([]*model.ActiveItem, len(u.Items))
	for i, it := range u.Items {
		ci := *it
		c.Items[i] = &ci
	}
	return &c
}

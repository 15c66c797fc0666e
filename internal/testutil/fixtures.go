package testutil

import "github.com/udisondev/linkarena/internal/model"

// GBAGame returns a rule set modelled on the Game Boy Advance titles, with a
// one point damage floor so every connecting hit is visible in assertions.
func GBAGame() *model.Game {
	return &model.Game{
		Name:            "FE7",
		Abbrev:          "FE7",
		AttackSpeed:     model.ASSpdMinusWtCon,
		Hit:             model.HitSklTimes2HalfLukRank,
		StaffHit:        model.StaffHitMagTimes5,
		Avoid:           model.AvoidASTimes2Luk,
		Crit:            model.CritHalfSklRank,
		CritAvoid:       model.DdgLuk,
		Attack:          model.AttackTriangle,
		Triangle:        model.TriangleTrinity,
		EffectiveMethod: model.EffectiveMtWT,
		EffectiveMod:    3,
		FollowUp:        4,
		CritDamage:      model.CritDmgTimes3,
		RNG:             model.RNGTwo,
		EXP:             model.EXPGBAEasy,
		BondSupport:     model.BondNone,
		RankedSupport:   model.RankedGBA,
		WeaponBreak:     model.BreakRemove,
		HasMagStat:      true,

		MinDamagePerAttack: 1,
		MaxWeaponRank:      model.RankS,
		MaxInventory:       5,
		TeamSize:           5,

		RankThresholds: []model.RankThreshold{
			{Rank: model.RankE, Points: 1},
			{Rank: model.RankD, Points: 31},
			{Rank: model.RankC, Points: 71},
			{Rank: model.RankB, Points: 121},
			{Rank: model.RankA, Points: 181},
			{Rank: model.RankS, Points: 251},
		},
		TriangleBonuses: []model.TriangleBonus{
			{Rank: model.RankE, Hit: 15, Atk: 1},
			{Rank: model.RankD, Hit: 15, Atk: 1},
			{Rank: model.RankC, Hit: 15, Atk: 1},
			{Rank: model.RankB, Hit: 15, Atk: 1},
			{Rank: model.RankA, Hit: 15, Atk: 1},
			{Rank: model.RankS, Hit: 15, Atk: 1},
		},
		RankBonuses: []model.RankBonus{
			{Type: model.WeaponSword, Rank: model.RankS, Crit: 5},
			{Type: model.WeaponLance, Rank: model.RankS, Atk: 1, Hit: 5},
		},
	}
}

// NeutralGame is GBAGame without a weapon triangle, so every matchup is even.
func NeutralGame() *model.Game {
	g := GBAGame()
	g.Triangle = model.TriangleNone
	return g
}

// Class returns an unpromoted class with zero bases and no caps.
func Class(name string) *model.ClassTemplate {
	return &model.ClassTemplate{
		ID:            len(name),
		Name:          name,
		ClassEXP:      0,
		ClassStrength: 3,
	}
}

// Unit builds a deployed unit whose resolved stats equal s exactly: the
// character carries s as bases, the class contributes nothing and the unit
// holds a D rank in every weapon type.
func Unit(id int, name string, s model.StatBlock) *model.ActiveUnit {
	ranks := make(map[model.WeaponType]int)
	for _, t := range []model.WeaponType{
		model.WeaponSword, model.WeaponLance, model.WeaponAxe, model.WeaponBow,
		model.WeaponAnima, model.WeaponLight, model.WeaponDark, model.WeaponStaff,
	} {
		ranks[t] = 31
	}
	class := Class("Lord")
	built := &model.BuiltUnit{
		ID:       id,
		Nickname: name,
		Unit: &model.UnitTemplate{
			ID:        id,
			Name:      name,
			Bases:     s,
			RankBases: ranks,
		},
		Class:   class,
		Level:   1,
		History: []model.ClassLevels{{Class: class, Levels: 1}},
	}
	return &model.ActiveUnit{
		ID:        id,
		Template:  built,
		CurrentHP: s.HP,
	}
}

// Weapon returns a one-range physical weapon template with an E rank requirement.
func Weapon(id int, name string, t model.WeaponType, mt, hit, crit, wt, uses int) *model.WeaponTemplate {
	dt := model.DamagePhysical
	if t.IsMagic() {
		dt = model.DamageMagical
	}
	return &model.WeaponTemplate{
		ID:         id,
		Name:       name,
		Type:       t,
		Rank:       model.RankE,
		DamageType: dt,
		Mt:         mt,
		Hit:        hit,
		Crit:       crit,
		Wt:         wt,
		MinRange:   1,
		MaxRange:   1,
		Uses:       uses,
	}
}

// Arm gives u a new weapon instance in the next free inventory slot.
func Arm(u *model.ActiveUnit, id int, tpl *model.WeaponTemplate, equipped bool) *model.ActiveWeapon {
	w := &model.ActiveWeapon{
		ID:          id,
		Template:    tpl,
		Uses:        tpl.Uses,
		InventoryID: u.InventorySize(),
		Equipped:    equipped,
	}
	u.Weapons = append(u.Weapons, w)
	return w
}

// Give adds an item instance in the next free inventory slot.
func Give(u *model.ActiveUnit, id int, tpl *model.ItemTemplate) *model.ActiveItem {
	it := &model.ActiveItem{
		ID:          id,
		Template:    tpl,
		Uses:        tpl.Uses,
		InventoryID: u.InventorySize(),
	}
	u.Items = append(u.Items, it)
	return it
}

// Team wraps units into an active team owned by owner.
func Team(id int, owner string, units ...*model.ActiveUnit) *model.ActiveTeam {
	return &model.ActiveTeam{ID: id, Name: owner + "'s team", Owner: owner, Units: units}
}

// Arena places teams into consecutive phase slots, starting on turn 1 phase 0.
func Arena(g *model.Game, teams ...*model.ActiveTeam) *model.Arena {
	a := &model.Arena{
		ID:     "test-arena",
		Game:   g,
		Format: &model.GameFormat{Name: "test", GameName: g.Name, Victory: model.VictoryPoints, Game: g},
		Turn:   1,
		LastID: 1000,
	}
	for i, t := range teams {
		a.Teams[i] = t
	}
	return a
}

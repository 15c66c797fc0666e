package formula

import (
	"github.com/udisondev/linkarena/internal/game/stats"
	"github.com/udisondev/linkarena/internal/model"
)

// Edge is the weapon triangle relation of one weapon type against another.
type Edge int

const (
	Disadvantage Edge = -1
	Neutral      Edge = 0
	Advantage    Edge = 1
)

// Each table lists, per weapon type, the types it is weak against.
var (
	physicalTriangle = map[model.WeaponType][]model.WeaponType{
		model.WeaponSword: types(model.WeaponLance),
		model.WeaponLance: types(model.WeaponAxe),
		model.WeaponAxe:   types(model.WeaponSword),
	}
	animaSingleTriangle = map[model.WeaponType][]model.WeaponType{
		model.WeaponFire:    types(model.WeaponThunder, model.WeaponLight, model.WeaponDark),
		model.WeaponThunder: types(model.WeaponWind, model.WeaponLight, model.WeaponDark),
		model.WeaponWind:    types(model.WeaponFire, model.WeaponLight, model.WeaponDark),
	}
	trinityTriangle = map[model.WeaponType][]model.WeaponType{
		model.WeaponAnima: types(model.WeaponDark),
		model.WeaponDark:  types(model.WeaponLight),
		model.WeaponLight: types(model.WeaponAnima),
	}
	magicDoubleTriangle = map[model.WeaponType][]model.WeaponType{
		model.WeaponFire:    types(model.WeaponThunder, model.WeaponDark),
		model.WeaponThunder: types(model.WeaponWind, model.WeaponDark),
		model.WeaponWind:    types(model.WeaponFire, model.WeaponDark),
		model.WeaponLight:   types(model.WeaponThunder, model.WeaponFire, model.WeaponWind),
		model.WeaponDark:    types(model.WeaponLight),
	}
	allTriangle = map[model.WeaponType][]model.WeaponType{
		model.WeaponSword:  types(model.WeaponLance, model.WeaponHidden),
		model.WeaponTome:   types(model.WeaponLance, model.WeaponHidden),
		model.WeaponLance:  types(model.WeaponAxe, model.WeaponBow),
		model.WeaponHidden: types(model.WeaponAxe, model.WeaponBow),
		model.WeaponAxe:    types(model.WeaponSword, model.WeaponTome),
		model.WeaponBow:    types(model.WeaponSword, model.WeaponTome),
	}
)

func types(ts ...model.WeaponType) []model.WeaponType { return ts }

func contains(ts []model.WeaponType, t model.WeaponType) bool {
	for _, c := range ts {
		if c == t {
			return true
		}
	}
	return false
}

// edgeIn looks unit against enemy up in a weakness table; winning is the mirror image.
func edgeIn(table map[model.WeaponType][]model.WeaponType, unit, enemy model.WeaponType) Edge {
	if contains(table[unit], enemy) {
		return Disadvantage
	}
	if contains(table[enemy], unit) {
		return Advantage
	}
	return Neutral
}

// TriangleEdge reports how unit's weapon type fares against enemy's under
// the game's weapon triangle. Every triangle except None includes the
// sword/lance/axe cycle before its own magic relations.
func TriangleEdge(g *model.Game, unit, enemy model.WeaponType) Edge {
	if g.Triangle == model.TriangleNone || g.Triangle == "" || unit == "" || enemy == "" {
		return Neutral
	}
	if e := edgeIn(physicalTriangle, unit, enemy); e != Neutral {
		return e
	}
	switch g.Triangle {
	case model.TriangleAnimaSingle:
		return edgeIn(animaSingleTriangle, unit, enemy)
	case model.TriangleTrinity:
		return edgeIn(trinityTriangle, unit, enemy)
	case model.TriangleMagicDouble:
		return edgeIn(magicDoubleTriangle, unit, enemy)
	case model.TriangleAll:
		return edgeIn(allTriangle, unit, enemy)
	}
	return Neutral
}

// triangleBonus looks the bonus row up by the rank of whichever side holds
// the advantage, and signs it from unit's point of view.
func triangleBonus(g *model.Game, unit *model.ActiveUnit, unitType model.WeaponType,
	opp *model.ActiveUnit, oppType model.WeaponType) (model.TriangleBonus, int) {
	edge := TriangleEdge(g, unitType, oppType)
	if edge == Neutral {
		return model.TriangleBonus{}, 0
	}
	holder, holderType := unit, unitType
	if edge == Disadvantage {
		holder, holderType = opp, oppType
	}
	if holder == nil {
		return model.TriangleBonus{}, 0
	}
	row, ok := g.TriangleBonusFor(stats.WeaponRank(g, holder, holderType))
	if !ok {
		return model.TriangleBonus{}, 0
	}
	return row, int(edge)
}

// TriangleHitBonus is the signed Hit swing unit gets from the weapon triangle.
func TriangleHitBonus(g *model.Game, unit *model.ActiveUnit, unitType model.WeaponType,
	opp *model.ActiveUnit, oppType model.WeaponType) int {
	row, sign := triangleBonus(g, unit, unitType, opp, oppType)
	return sign * row.Hit
}

// TriangleAtkBonus is the signed Atk swing unit gets from the weapon triangle.
func TriangleAtkBonus(g *model.Game, unit *model.ActiveUnit, unitType model.WeaponType,
	opp *model.ActiveUnit, oppType model.WeaponType) int {
	row, sign := triangleBonus(g, unit, unitType, opp, oppType)
	return sign * row.Atk
}

func rankBonus(g *model.Game, unit *model.ActiveUnit, t, oppType model.WeaponType, suppressible bool) model.RankBonus {
	if suppressible && g.TriangleSuppressesRank && oppType != "" &&
		TriangleEdge(g, t, oppType) == Disadvantage {
		return model.RankBonus{}
	}
	row, _ := g.RankBonusFor(t, stats.WeaponRank(g, unit, t))
	return row
}

// RankHitBonus is the Hit bonus for unit's rank in t. Games that suppress
// rank bonuses at triangle disadvantage return 0 there.
func RankHitBonus(g *model.Game, unit *model.ActiveUnit, t, oppType model.WeaponType) int {
	return rankBonus(g, unit, t, oppType, true).Hit
}

// RankAtkBonus is the Atk bonus for unit's rank in t, suppressed like RankHitBonus.
func RankAtkBonus(g *model.Game, unit *model.ActiveUnit, t, oppType model.WeaponType) int {
	return rankBonus(g, unit, t, oppType, true).Atk
}

// RankCritBonus is the Crit bonus for unit's rank in t. It is never suppressed.
func RankCritBonus(g *model.Game, unit *model.ActiveUnit, t model.WeaponType) int {
	return rankBonus(g, unit, t, "", false).Crit
}

package stats

import "github.com/udisondev/linkarena/internal/model"

// RankPoints is the weapon experience a built unit has in t:
// unit base + class base + boosts.
func RankPoints(b *model.BuiltUnit, t model.WeaponType) int {
	points := b.Unit.RankBases[t] + b.RankBoosts[t]
	if b.Class != nil {
		points += b.Class.RankBases[t]
	}
	return points
}

// RankFromPoints maps weapon experience to the best rank whose threshold is
// met, capped at limit. Points below every threshold give no rank.
func RankFromPoints(g *model.Game, points int, limit model.WeaponRank) model.WeaponRank {
	achieved := model.RankNone
	best := -1
	for _, th := range g.RankThresholds {
		if points >= th.Points && th.Points > best {
			best = th.Points
			achieved = th.Rank
		}
	}
	if achieved.Value() > limit.Value() {
		return limit
	}
	return achieved
}

// rankCap is the highest rank the unit's class allows in t. Classes that do not
// list a cap fall back to the game-wide maximum.
func rankCap(g *model.Game, b *model.BuiltUnit, t model.WeaponType) model.WeaponRank {
	if b.Class != nil && b.Class.MaxRanks != nil {
		if r, ok := b.Class.MaxRanks[t]; ok {
			return r
		}
	}
	if g.MaxWeaponRank != "" {
		return g.MaxWeaponRank
	}
	return model.RankSS
}

// BuiltRank is the weapon rank a built unit holds in t.
func BuiltRank(g *model.Game, b *model.BuiltUnit, t model.WeaponType) model.WeaponRank {
	return RankFromPoints(g, RankPoints(b, t), rankCap(g, b, t))
}

// WeaponRank is the weapon rank a deployed unit holds in t, transient
// rank modifiers included.
func WeaponRank(g *model.Game, u *model.ActiveUnit, t model.WeaponType) model.WeaponRank {
	points := RankPoints(u.Template, t) + u.RankMods[t]
	return RankFromPoints(g, points, rankCap(g, u.Template, t))
}

// CanEquip reports whether u may wield w: personal users always can, anyone
// else needs a rank at least as high as the weapon's. Prf weapons are closed
// to everyone else.
func CanEquip(g *model.Game, u *model.ActiveUnit, w *model.WeaponTemplate) bool {
	if w.IsPrfUser(u.Template.Unit.Name) {
		return true
	}
	if w.Rank == model.RankPrf {
		return false
	}
	return WeaponRank(g, u, w.Type).Value() >= w.Rank.Value()
}

// BuiltCanEquip is CanEquip for a unit that has not been deployed yet.
func BuiltCanEquip(g *model.Game, b *model.BuiltUnit, w *model.WeaponTemplate) bool {
	if w.IsPrfUser(b.Unit.Name) {
		return true
	}
	if w.Rank == model.RankPrf {
		return false
	}
	return BuiltRank(g, b, w.Type).Value() >= w.Rank.Value()
}

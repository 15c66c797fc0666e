package formula

import "github.com/udisondev/linkarena/internal/model"

// SupportBonus is the battle-stat bonus a unit draws from its supports.
type SupportBonus struct {
	Atk  int
	Prt  int
	Hit  int
	Avo  int
	Crit int
	Ddg  int
}

type affinityBoost struct {
	atk, prt, hit, avo, crit, ddg float64
}

// Per support rank, each partner contributes the boost of its own affinity.
var gbaAffinity = map[model.Affinity]affinityBoost{
	model.AffinityFire:    {atk: 0.5, hit: 2.5, avo: 2.5, crit: 2.5},
	model.AffinityThunder: {prt: 0.5, avo: 2.5, crit: 2.5, ddg: 2.5},
	model.AffinityWind:    {atk: 0.5, hit: 2.5, crit: 2.5, ddg: 2.5},
	model.AffinityIce:     {prt: 0.5, hit: 2.5, avo: 2.5, ddg: 2.5},
	model.AffinityDark:    {hit: 2.5, avo: 2.5, crit: 2.5, ddg: 2.5},
	model.AffinityLight:   {atk: 0.5, prt: 0.5, hit: 2.5, crit: 2.5},
	model.AffinityAnima:   {atk: 0.5, prt: 0.5, avo: 2.5, ddg: 2.5},
}

// Support sums the bonuses u receives from support partners deployed on its
// own team. Only the GBA affinity system is modelled; every other bond or
// ranked support behaviour grants nothing.
func Support(a *model.Arena, u *model.ActiveUnit) SupportBonus {
	if a == nil || a.Game == nil || a.Game.RankedSupport != model.RankedGBA {
		return SupportBonus{}
	}
	team := a.TeamOf(u)
	if team == nil {
		return SupportBonus{}
	}

	onTeam := make(map[string]*model.UnitTemplate, len(team.Units))
	for _, m := range team.Units {
		if m.ID != u.ID {
			onTeam[m.Template.Unit.Name] = m.Template.Unit
		}
	}

	own := gbaAffinity[u.Template.Unit.Affinity]
	var sum affinityBoost
	for _, s := range u.Template.Supports {
		partner, ok := onTeam[s.Partner]
		if !ok {
			continue
		}
		other := gbaAffinity[partner.Affinity]
		r := float64(s.Rank)
		sum.atk += (own.atk + other.atk) * r
		sum.prt += (own.prt + other.prt) * r
		sum.hit += (own.hit + other.hit) * r
		sum.avo += (own.avo + other.avo) * r
		sum.crit += (own.crit + other.crit) * r
		sum.ddg += (own.ddg + other.ddg) * r
	}

	tactician := 0
	if tt := team.Tactician; tt.Rank > 0 && tt.Affinity != "" && tt.Affinity == u.Template.Unit.Affinity {
		tactician = tt.Rank
	}

	return SupportBonus{
		Atk:  int(sum.atk),
		Prt:  int(sum.prt),
		Hit:  int(sum.hit) + tactician,
		Avo:  int(sum.avo) + tactician,
		Crit: int(sum.crit),
		Ddg:  int(sum.ddg) + tactician,
	}
}

package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/linkarena/internal/model"
	"github.com/udisondev/linkarena/internal/testutil"
)

func supportPair(t *testing.T, rank int, sameTeam bool) (*model.Arena, *model.ActiveUnit) {
	t.Helper()
	lyn := testutil.Unit(1, "Lyn", model.StatBlock{HP: 18})
	lyn.Template.Unit.Affinity = model.AffinityFire
	lyn.Template.Supports = []model.Support{{Partner: "Florina", Rank: rank}}

	florina := testutil.Unit(2, "Florina", model.StatBlock{HP: 17})
	florina.Template.Unit.Affinity = model.AffinityIce

	bandit := testutil.Unit(3, "Bandit", model.StatBlock{HP: 20})

	g := testutil.GBAGame()
	if sameTeam {
		return testutil.Arena(g, testutil.Team(1, "p1", lyn, florina), testutil.Team(2, "p2", bandit)), lyn
	}
	return testutil.Arena(g, testutil.Team(1, "p1", lyn), testutil.Team(2, "p2", florina, bandit)), lyn
}

func TestSupport(t *testing.T) {
	tests := []struct {
		name     string
		rank     int
		sameTeam bool
		want     SupportBonus
	}{
		{"rank A pair", 3, true, SupportBonus{Atk: 1, Prt: 1, Hit: 15, Avo: 15, Crit: 7, Ddg: 7}},
		{"rank B pair", 2, true, SupportBonus{Atk: 1, Prt: 1, Hit: 10, Avo: 10, Crit: 5, Ddg: 5}},
		{"rank C pair truncates halves", 1, true, SupportBonus{Hit: 5, Avo: 5, Crit: 2, Ddg: 2}},
		{"partner on another team", 3, false, SupportBonus{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, lyn := supportPair(t, tt.rank, tt.sameTeam)
			assert.Equal(t, tt.want, Support(a, lyn))
		})
	}
}

func TestSupport_Tactician(t *testing.T) {
	a, lyn := supportPair(t, 1, true)
	a.Teams[0].Tactician = model.Tactician{Rank: 3, Affinity: model.AffinityFire}

	got := Support(a, lyn)
	assert.Equal(t, SupportBonus{Hit: 8, Avo: 8, Crit: 2, Ddg: 5}, got)

	a.Teams[0].Tactician.Affinity = model.AffinityDark
	assert.Equal(t, 5, Support(a, lyn).Hit)
}

func TestSupport_OtherBehaviours(t *testing.T) {
	a, lyn := supportPair(t, 3, true)
	a.Game.RankedSupport = model.RankedNone

	assert.Equal(t, SupportBonus{}, Support(a, lyn))
}

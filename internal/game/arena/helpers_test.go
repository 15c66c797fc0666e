package arena

import (
	"testing"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/model"
	"github.com/udisondev/linkarena/internal/testutil"
)

type fixture struct {
	arena    *model.Arena
	lyn      *model.ActiveUnit
	guy      *model.ActiveUnit
	sword    *model.ActiveWeapon
	guySword *model.ActiveWeapon
	battle   *Battle
}

func ironSword(id int) *model.WeaponTemplate {
	return testutil.Weapon(id, "Iron Sword", model.WeaponSword, 5, 90, 0, 5, 40)
}

// newFixture pits Lyn (team 1, owner p1) against Guy (team 2, owner p2),
// both with iron swords. Under GBA rules Lyn shows 12 dmg and doubles,
// Guy shows 8 dmg with 81 hit.
func newFixture(t *testing.T, rng combat.RNG) *fixture {
	t.Helper()
	lyn := testutil.Unit(1, "Lyn", model.StatBlock{HP: 20, Str: 10, Skl: 10, Spd: 10, Luk: 6, Def: 3, Res: 7, Con: 5})
	guy := testutil.Unit(2, "Guy", model.StatBlock{HP: 21, Str: 6, Skl: 8, Spd: 5, Luk: 2, Def: 3, Con: 5})
	f := &fixture{
		lyn:      lyn,
		guy:      guy,
		sword:    testutil.Arm(lyn, 10, ironSword(1), true),
		guySword: testutil.Arm(guy, 20, ironSword(1), true),
	}
	f.arena = testutil.Arena(testutil.GBAGame(), testutil.Team(1, "p1", lyn), testutil.Team(2, "p2", guy))
	f.battle = NewBattle(f.arena, rng, nil, nil)
	return f
}

func attackGuy() Action {
	return Action{Kind: model.ActionAttack, Target: 2, WithWeapon: 10, Range: 1}
}

func find[T actionlog.Record](l actionlog.Log) (T, bool) {
	for _, r := range l {
		if v, ok := r.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// after returns the records following the first record tagged action.
func after(l actionlog.Log, action string) actionlog.Log {
	for i, r := range l {
		if r.Action() == action {
			return l[i+1:]
		}
	}
	return nil
}

// blindScripts answers every scripted before-combat effect by dropping
// both sides' hit to zero.
type blindScripts struct{}

func (blindScripts) BeforeCombat(_ string, s *combat.Session, _ combat.Side) (actionlog.Log, error) {
	s.SetHit(combat.SideAttacker, 0)
	s.SetHit(combat.SideDefender, 0)
	return nil, nil
}

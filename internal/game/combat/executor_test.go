package combat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/model"
	"github.com/udisondev/linkarena/internal/testutil"
)

func attacks(l actionlog.Log) []actionlog.Attack {
	var out []actionlog.Attack
	for _, r := range l {
		if a, ok := r.(actionlog.Attack); ok {
			out = append(out, a)
		}
	}
	return out
}

func TestExecute_FullChain(t *testing.T) {
	f := duel(t, testutil.NeutralGame())
	// hit, no crit / miss / hit, no crit
	rng := &ScriptedRNG{Rolls: []int{0, 0, 99, 99, 99, 0, 0, 99}}
	s := f.session(t, 1, rng)

	log, err := s.Execute(nil)
	require.NoError(t, err)

	got := attacks(log)
	require.Len(t, got, 3)
	assert.Equal(t, actionlog.Attack{ByUnit: 1, Weapon: 10, AgainstUnit: 2, Dmg: 13, Skills: []string{}}, got[0])
	assert.Equal(t, actionlog.Attack{ByUnit: 2, Weapon: 20, AgainstUnit: 1, Miss: true, Skills: []string{}}, got[1])
	assert.Equal(t, 13, got[2].Dmg)

	assert.Equal(t, -4, f.bandit.CurrentHP)
	assert.Equal(t, 20, f.lyn.CurrentHP)
	assert.Equal(t, 38, f.sword.Uses)
	assert.Equal(t, 45, f.axe.Uses)
	assert.Equal(t, 32, s.AttackerPoints)
	assert.Zero(t, s.DefenderPoints)
	assert.Equal(t, 8, rng.Used())
	require.NoError(t, actionlog.Check(log))
}

func TestExecute_CritKillPrunesChain(t *testing.T) {
	f := duel(t, testutil.NeutralGame())
	s := f.session(t, 1, &ScriptedRNG{Rolls: []int{0, 0, 0}, Default: 99})

	log, err := s.Execute(nil)
	require.NoError(t, err)

	got := attacks(log)
	require.Len(t, got, 1)
	assert.True(t, got[0].Crit)
	assert.Equal(t, 39, got[0].Dmg)
	assert.Equal(t, 1, s.Chain.Len())
}

func TestExecute_ForcedMiss(t *testing.T) {
	f := duel(t, testutil.NeutralGame())
	s := f.session(t, 1, &ScriptedRNG{Default: 0})
	s.SetHit(SideAttacker, 0)
	s.SetHit(SideDefender, 0)

	log, err := s.Execute(nil)
	require.NoError(t, err)

	for _, a := range attacks(log) {
		assert.True(t, a.Miss)
		assert.Zero(t, a.Dmg)
	}
	assert.Equal(t, 22, f.bandit.CurrentHP)
	assert.Equal(t, 40, f.sword.Uses)
	assert.Equal(t, 1, s.AttackerPoints, "a survived whiff earns the consolation point")
}

func TestExecute_Damage(t *testing.T) {
	tests := []struct {
		name    string
		method  model.CritDamageMethod
		prepare func(s *Session)
		crit    bool
		want    int
	}{
		{name: "floor", prepare: func(s *Session) { s.SetAtk(SideAttacker, 0) }, want: 1},
		{name: "dmg times three", method: model.CritDmgTimes3, crit: true, want: 39},
		{name: "atk times two", method: model.CritAtkTimes2, crit: true, want: 28},
		{name: "lethal", prepare: func(s *Session) { s.Chain.At(0).Lethal = true }, want: 22},
		{name: "negated", prepare: func(s *Session) { s.Chain.At(0).Negated = true }, crit: true, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.NeutralGame()
			if tt.method != "" {
				g.CritDamage = tt.method
			}
			f := duel(t, g)
			s := f.session(t, 1, &ScriptedRNG{})
			if tt.prepare != nil {
				tt.prepare(s)
			}
			got, err := s.damage(s.Chain.At(0), tt.crit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecute_UnknownCritMethod(t *testing.T) {
	g := testutil.NeutralGame()
	g.CritDamage = "DMG*4"
	f := duel(t, g)
	s := f.session(t, 1, &ScriptedRNG{})

	_, err := s.Execute(nil)
	assert.True(t, model.IsConfig(err))
}

func TestExecute_UnbreakableWeapon(t *testing.T) {
	f := duel(t, testutil.NeutralGame())
	f.sword.Uses = -1
	s := f.session(t, 1, &ScriptedRNG{Rolls: []int{0, 0, 99, 99, 99, 0, 0, 99}})

	_, err := s.Execute(nil)
	require.NoError(t, err)
	assert.Equal(t, -1, f.sword.Uses)
}

func TestExecute_SpentWeaponSkipsAttack(t *testing.T) {
	f := duel(t, testutil.NeutralGame())
	f.sword.Uses = 1
	s := f.session(t, 1, &ScriptedRNG{Rolls: []int{0, 0, 99}, Default: 99})

	log, err := s.Execute(nil)
	require.NoError(t, err)

	got := attacks(log)
	require.Len(t, got, 2, "the follow-up is dropped once the sword breaks")
	assert.Equal(t, 2, got[1].ByUnit)
	assert.Zero(t, f.sword.Uses)
}

type hookFunc func(s *Session, o *Outcome) (actionlog.Log, error)

func (h hookFunc) AfterAttack(s *Session, o *Outcome) (actionlog.Log, error) { return h(s, o) }

func TestExecute_Hooks(t *testing.T) {
	f := duel(t, testutil.NeutralGame())
	f.bandit.CurrentHP = 100
	// 99s land Lyn's 105% attacks and make the bandit's 55% counter miss.
	s := f.session(t, 1, &ScriptedRNG{Default: 99})

	var seen []int
	hooks := hookFunc(func(s *Session, o *Outcome) (actionlog.Log, error) {
		seen = append(seen, o.Attack.By.ID)
		if len(seen) == 1 {
			s.Chain.InsertAfter(o.Attack, o.Attack.Clone())
		}
		return actionlog.Log{actionlog.ActivateSkill{Skill: "echo"}}, nil
	})

	log, err := s.Execute(hooks)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 1}, seen)
	assert.Equal(t, []string{
		"attack", "activate_skill", "attack", "activate_skill",
		"attack", "activate_skill", "attack", "activate_skill",
	}, log.Actions())

	s = f.session(t, 1, &ScriptedRNG{Default: 99})
	boom := errors.New("boom")
	_, err = s.Execute(hookFunc(func(*Session, *Outcome) (actionlog.Log, error) { return nil, boom }))
	assert.ErrorIs(t, err, boom)
}

func TestTrueHit(t *testing.T) {
	assert.InDelta(t, 4900, TrueHit(49), 1e-9)
	assert.InDelta(t, 5000, TrueHit(50), 1e-9)
	assert.Greater(t, TrueHit(70), 7000.0)
	assert.InDelta(t, 7887.7, TrueHit(70), 0.1)
	assert.InDelta(t, 10000, TrueHit(100), 1e-6)
}

func TestRollHit(t *testing.T) {
	tests := []struct {
		method model.RNGMethod
		rolls  []int
		chance int
		want   bool
	}{
		{model.RNGOne, []int{49}, 50, true},
		{model.RNGOne, []int{50}, 50, false},
		{model.RNGTwo, []int{90, 10}, 50, false},
		{model.RNGTwo, []int{90, 5}, 50, true},
		{model.RNGHybrid, []int{7800}, 70, true},
		{model.RNGHybrid, []int{7900}, 70, false},
	}
	for _, tt := range tests {
		g := testutil.NeutralGame()
		g.RNG = tt.method
		got, err := RollHit(g, &ScriptedRNG{Rolls: tt.rolls}, tt.chance)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %v", tt.method, tt.rolls)
	}

	g := testutil.NeutralGame()
	g.RNG = "3RN"
	_, err := RollHit(g, &ScriptedRNG{}, 50)
	assert.True(t, model.IsConfig(err))
}

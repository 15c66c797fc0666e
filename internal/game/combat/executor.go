package combat

import (
	"fmt"
	"slices"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/formula"
	"github.com/udisondev/linkarena/internal/model"
)

// Outcome is how one attack of the chain resolved.
type Outcome struct {
	Attack *Attack
	Miss   bool
	Crit   bool
	Dmg    int
}

// Record is the attack entry of the action log.
func (o *Outcome) Record() actionlog.Attack {
	skills := slices.Clone(o.Attack.Tags)
	if skills == nil {
		skills = []string{}
	}
	return actionlog.Attack{
		ByUnit:      o.Attack.By.ID,
		Weapon:      o.Attack.Weapon.ID,
		AgainstUnit: o.Attack.Against.ID,
		Miss:        o.Miss,
		Crit:        o.Crit,
		Dmg:         o.Dmg,
		Skills:      skills,
	}
}

// Hooks receives control after every resolved attack. The skill layer
// implements it to run after-attack and after-attacked effects.
type Hooks interface {
	AfterAttack(s *Session, o *Outcome) (actionlog.Log, error)
}

// Execute walks the chain in order and resolves each attack. Attacks whose
// weapon is spent or whose participants are down are dropped from the
// chain. Once the chain is exhausted both sides are credited with points.
func (s *Session) Execute(h Hooks) (actionlog.Log, error) {
	var log actionlog.Log
	for i := 0; i < s.Chain.Len(); {
		a := s.Chain.At(i)
		if a.Weapon == nil || a.Weapon.Broken() || a.By.CurrentHP <= 0 || a.Against.CurrentHP <= 0 {
			s.Chain.Remove(a)
			continue
		}

		o, err := s.resolve(a)
		if err != nil {
			return log, err
		}
		log = append(log, o.Record())

		if h != nil {
			extra, err := h.AfterAttack(s, o)
			if err != nil {
				return log, err
			}
			log = append(log, extra...)
		}
		i++
	}

	if err := s.award(); err != nil {
		return log, err
	}
	return log, nil
}

func (s *Session) resolve(a *Attack) (*Outcome, error) {
	o := &Outcome{Attack: a}
	hit, err := RollHit(s.Game, s.RNG, a.Hit-a.Avo)
	if err != nil {
		return nil, err
	}
	if !hit {
		o.Miss = true
		return o, nil
	}

	o.Crit = RollCrit(s.RNG, a.Crit-a.Ddg)
	if o.Dmg, err = s.damage(a, o.Crit); err != nil {
		return nil, err
	}
	a.Against.CurrentHP -= o.Dmg
	if a.Weapon.Uses > 0 {
		a.Weapon.Uses--
	}
	return o, nil
}

// damage is what a connecting attack deals, never below the game's floor.
func (s *Session) damage(a *Attack, crit bool) (int, error) {
	switch {
	case a.Negated:
		return 0, nil
	case a.Lethal:
		return max(a.Against.CurrentHP, 0), nil
	}

	dmg := a.Atk - a.PrtRsl
	if crit {
		switch s.Game.CritDamage {
		case model.CritAtkTimes2:
			dmg = 2*a.Atk - a.PrtRsl
		case model.CritDmgTimes3:
			dmg = 3 * (a.Atk - a.PrtRsl)
		default:
			return 0, model.NewConfigError(s.Game, "crit damage method", s.Game.CritDamage)
		}
	}
	return max(dmg, s.Game.MinDamagePerAttack, 0), nil
}

// award credits combat experience to both sides as arena points.
func (s *Session) award() error {
	for _, side := range []Side{SideAttacker, SideDefender} {
		opp := side.Opponent()
		dealt := max(s.initialHP[opp]-s.Unit(opp).CurrentHP, 0)
		pts, err := formula.Experience(s.Game, s.Unit(side), s.Unit(opp), dealt)
		if err != nil {
			return fmt.Errorf("points for %s: %w", side, err)
		}
		s.AddPoints(side, pts)
	}
	return nil
}

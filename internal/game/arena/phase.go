// Package arena runs battles between deployed teams: it starts arenas,
// validates and dispatches the actions of each phase, resolves attacks and
// decides victory.
package arena

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/game/skill"
	"github.com/udisondev/linkarena/internal/model"
)

// SurvivalPoints is added to the surviving team's score for each of its
// units once the battle ends.
const SurvivalPoints = 30

// Phase is one player's request for the current phase: a single unit and
// the actions it takes, in order.
type Phase struct {
	Unit    int      `json:"unit"`
	Actions []Action `json:"actions"`
}

// Battle applies phases to one arena.
type Battle struct {
	Arena *model.Arena
	env   *skill.Env
}

// NewBattle prepares a for processing. rng drives every roll made on
// behalf of the arena.
func NewBattle(a *model.Arena, rng combat.RNG, cat skill.Catalog, scripts skill.Scripts) *Battle {
	return &Battle{
		Arena: a,
		env:   &skill.Env{Arena: a, RNG: rng, Catalog: cat, Scripts: scripts},
	}
}

// ProcessPhase validates p for owner, runs its actions until one ends the
// turn, and then either keeps the turn open, hands the turn to the next
// team or declares the winner.
func (b *Battle) ProcessPhase(owner string, p Phase) (actionlog.Log, error) {
	a := b.Arena
	if a.GameOver {
		return nil, model.Invalidf("arena %s is over", a.ID)
	}
	team := a.CurrentTeam()
	if team == nil || team.Owner != owner {
		return nil, fmt.Errorf("%w: %s", model.ErrNotYourTurn, owner)
	}
	var u *model.ActiveUnit
	for _, m := range team.Units {
		if m.ID == p.Unit {
			u = m
			break
		}
	}
	if u == nil {
		return nil, model.Invalidf("unit %d does not belong to %s", p.Unit, owner)
	}
	continued := a.ActingUnit != 0
	if continued && a.ActingUnit != u.ID {
		return nil, model.Invalidf("unit %d must finish its turn first", a.ActingUnit)
	}
	if len(p.Actions) == 0 {
		return nil, model.Invalidf("no actions for unit %d", u.ID)
	}

	var log actionlog.Log
	if !continued {
		log = append(log, actionlog.BeginTurn{})
		for _, m := range team.Units {
			out, err := b.env.TurnStart(m)
			log = append(log, out...)
			if err != nil {
				return log, err
			}
		}
	}

	var done actionlog.Log
	for _, act := range p.Actions {
		out, err := b.Dispatch(u, act)
		done = append(done, out...)
		if err != nil {
			return append(log, done...), err
		}
		if a.TurnShouldEnd {
			break
		}
	}
	log = append(log, done...)

	if u.CurrentHP > 0 {
		out, err := b.env.UnitTurnEnd(u, done)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
	}

	if !a.TurnShouldEnd {
		a.ActingUnit = u.ID
		return append(log, actionlog.ContinueTurn{}), nil
	}

	for _, m := range team.Units {
		out, err := b.env.TurnEnd(m)
		log = append(log, out...)
		if err != nil {
			return log, err
		}
		m.ClearRestrictions()
	}
	u.ClearRestrictions()
	a.ActingUnit = 0
	log = append(log, actionlog.EndTurn{})

	if len(a.LiveTeams()) <= 1 {
		return append(log, b.finish()...), nil
	}
	log = append(log, b.advance()...)
	a.TurnShouldEnd = false
	return log, nil
}

// advance hands the phase to the next team with units left, starting a
// new turn after the last slot.
func (b *Battle) advance() actionlog.Log {
	a := b.Arena
	var log actionlog.Log
	for {
		a.Phase++
		if a.Phase >= model.MaxTeams {
			a.Phase = 0
			a.Turn++
			log = append(log, actionlog.ChangeTurn{Turn: a.Turn})
		}
		if !a.CurrentTeam().Empty() {
			break
		}
	}
	return append(log, actionlog.ChangePhase{Phase: a.Phase})
}

// finish awards survival points and declares the winner.
func (b *Battle) finish() actionlog.Log {
	a := b.Arena
	var log actionlog.Log

	var survivor *model.ActiveTeam
	if live := a.LiveTeams(); len(live) == 1 {
		survivor = live[0]
		for _, u := range survivor.Units {
			survivor.Score += SurvivalPoints
			log = append(log, actionlog.PointsForSurvival{Unit: u.ID, Team: survivor.ID})
		}
	}

	winner := survivor
	if a.Format != nil && a.Format.Victory == model.VictoryPoints {
		winner = nil
		for _, t := range a.Teams {
			if t != nil && (winner == nil || t.Score > winner.Score) {
				winner = t
			}
		}
	}

	v := actionlog.Victory{Turns: a.Turn}
	winnerID := 0
	if winner != nil {
		winnerID = winner.ID
		v.Team = &winnerID
	}
	a.GameOver = true
	slog.Info("arena finished", "arena", a.ID, "turns", a.Turn, "winner", winnerID)
	return append(log, v)
}

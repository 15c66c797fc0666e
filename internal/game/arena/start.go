package arena

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/linkarena/internal/game/combat"
	"github.com/udisondev/linkarena/internal/game/skill"
	"github.com/udisondev/linkarena/internal/game/stats"
	"github.com/udisondev/linkarena/internal/model"
)

const (
	// MinTeams and MaxTeams bound the number of teams in one arena.
	MinTeams = 2
	MaxTeams = model.MaxTeams

	// IDLength is the length of generated arena ids.
	IDLength = 20

	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"
)

// NewID draws an arena id from rng.
func NewID(rng combat.RNG) string {
	var b strings.Builder
	b.Grow(IDLength)
	for range IDLength {
		b.WriteByte(idAlphabet[rng.IntN(len(idAlphabet))])
	}
	return b.String()
}

// Start deploys teams into a new arena playing format. Teams are shuffled
// to decide phase order; every unit enters at full HP with its first
// usable weapon equipped.
func Start(format *model.GameFormat, teams []*model.BuiltTeam, rng combat.RNG, cat skill.Catalog, scripts skill.Scripts) (*model.Arena, error) {
	const op = "start arena"
	if format == nil || format.Game == nil {
		return nil, model.InvalidOpf(op, "format has no game")
	}
	if len(teams) < MinTeams || len(teams) > MaxTeams {
		return nil, model.InvalidOpf(op, "need %d-%d teams, got %d", MinTeams, MaxTeams, len(teams))
	}
	g := format.Game
	for _, t := range teams {
		if t == nil {
			return nil, model.InvalidOpf(op, "missing team")
		}
		if t.Game != nil && t.Game.Name != g.Name {
			return nil, model.InvalidOpf(op, "team %q is built for %s, format %q plays %s", t.Name, t.Game.Name, format.Name, g.Name)
		}
		if len(t.Units) == 0 {
			return nil, model.InvalidOpf(op, "team %q has no units", t.Name)
		}
		if g.TeamSize > 0 && len(t.Units) > g.TeamSize {
			return nil, model.InvalidOpf(op, "team %q has %d units, %s allows %d", t.Name, len(t.Units), g.Name, g.TeamSize)
		}
		if format.Validated {
			for _, u := range t.Units {
				if !u.Validated {
					return nil, model.InvalidOpf(op, "unit %q of team %q is not validated for format %q", u.DisplayName(), t.Name, format.Name)
				}
			}
		}
	}

	order := make([]*model.BuiltTeam, len(teams))
	copy(order, teams)
	for i := len(order) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	a := &model.Arena{
		ID:     NewID(rng),
		Format: format,
		Game:   g,
		Turn:   1,
	}
	env := &skill.Env{Arena: a, RNG: rng, Catalog: cat, Scripts: scripts}
	for i, bt := range order {
		t := &model.ActiveTeam{
			ID:        a.NextID(),
			Name:      bt.Name,
			Owner:     bt.Owner,
			Tactician: bt.Tactician,
		}
		for _, bu := range bt.Units {
			u, err := deploy(env, bu)
			if err != nil {
				return nil, fmt.Errorf("deploy %s of team %q: %w", bu.DisplayName(), bt.Name, err)
			}
			t.Units = append(t.Units, u)
		}
		a.Teams[i] = t
	}

	slog.Info("arena started", "arena", a.ID, "format", format.Name, "teams", len(order))
	return a, nil
}

// deploy turns a built unit into an active one inside env.Arena.
func deploy(env *skill.Env, b *model.BuiltUnit) (*model.ActiveUnit, error) {
	a := env.Arena
	u := &model.ActiveUnit{ID: a.NextID(), Template: b}
	for _, tpl := range b.Weapons {
		u.Weapons = append(u.Weapons, &model.ActiveWeapon{
			ID:          a.NextID(),
			Template:    tpl,
			Uses:        tpl.Uses,
			InventoryID: u.InventorySize(),
		})
	}
	for _, tpl := range b.Items {
		u.Items = append(u.Items, &model.ActiveItem{
			ID:          a.NextID(),
			Template:    tpl,
			Uses:        tpl.Uses,
			InventoryID: u.InventorySize(),
		})
	}

	if err := env.Passive(u); err != nil {
		return nil, err
	}
	for _, w := range u.Weapons {
		if stats.CanEquip(a.Game, u, w.Template) {
			w.Equipped = true
			if _, err := env.Equip(u, w.Template.Skills); err != nil {
				return nil, err
			}
			break
		}
	}
	u.CurrentHP = stats.MaxHP(u)
	return u, nil
}

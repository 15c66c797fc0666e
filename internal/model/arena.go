package model

import "time"

// MaxTeams is the number of phase slots in an arena.
const MaxTeams = 4

// VictoryCondition decides who wins once a single team remains.
type VictoryCondition string

const (
	VictoryPoints   VictoryCondition = "points"
	VictorySurvival VictoryCondition = "survival"
)

// GameFormat is a named ruleset players queue for.
type GameFormat struct {
	Name      string           `yaml:"name" toml:"name" json:"name"`
	GameName  string           `yaml:"game" toml:"game" json:"game"`
	Victory   VictoryCondition `yaml:"victory" toml:"victory" json:"victory"`
	Validated bool             `yaml:"validated" toml:"validated" json:"validated"`
	Game      *Game            `yaml:"-" toml:"-" json:"-"`
}

// Arena is one running battle between two to four teams.
type Arena struct {
	ID     string                `json:"id"`
	Format *GameFormat           `json:"format"`
	Game   *Game                 `json:"-"`
	Teams  [MaxTeams]*ActiveTeam `json:"teams"`
	Turn   int                   `json:"turn"`
	Phase  int                   `json:"phase"`

	TurnShouldEnd bool      `json:"turn_should_end"`
	GameOver      bool      `json:"game_over"`
	FinishedAt    time.Time `json:"finished_at,omitempty"`
	// ActingUnit pins a continued turn to the unit that kept it open.
	ActingUnit int `json:"acting_unit,omitempty"`

	LastID int `json:"last_id"`
}

// NextID allocates an id unique within the arena.
func (a *Arena) NextID() int {
	a.LastID++
	return a.LastID
}

// CurrentTeam returns the team whose phase it is, or nil.
func (a *Arena) CurrentTeam() *ActiveTeam {
	if a.Phase < 0 || a.Phase >= MaxTeams {
		return nil
	}
	return a.Teams[a.Phase]
}

// TeamOf returns the team holding u, or nil.
func (a *Arena) TeamOf(u *ActiveUnit) *ActiveTeam {
	for _, t := range a.Teams {
		if t.Has(u) {
			return t
		}
	}
	return nil
}

// Unit finds a unit by id across every team.
func (a *Arena) Unit(id int) *ActiveUnit {
	for _, t := range a.Teams {
		if t == nil {
			continue
		}
		for _, u := range t.Units {
			if u.ID == id {
				return u
			}
		}
	}
	return nil
}

// LiveTeams returns the teams that still field at least one unit, in phase order.
func (a *Arena) LiveTeams() []*ActiveTeam {
	var out []*ActiveTeam
	for _, t := range a.Teams {
		if !t.Empty() {
			out = append(out, t)
		}
	}
	return out
}

// TeamIndex returns the phase slot of t, or -1.
func (a *Arena) TeamIndex(t *ActiveTeam) int {
	for i, c := range a.Teams {
		if c != nil && t != nil && c.ID == t.ID {
			return i
		}
	}
	return -1
}

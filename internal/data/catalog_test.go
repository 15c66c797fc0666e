package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/linkarena/internal/model"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	g, ok := c.Game("FE7")
	require.True(t, ok)
	byName, ok := c.Game("The Blazing Blade")
	require.True(t, ok)
	assert.Same(t, g, byName)

	assert.Equal(t, []string{"fe7-points", "fe7-ranked", "fe7-survival"}, c.Formats())
	f, ok := c.Format("fe7-ranked")
	require.True(t, ok)
	assert.Same(t, g, f.Game)
	assert.True(t, f.Validated)

	mani, ok := c.WeaponTemplate(7)
	require.True(t, ok)
	require.Len(t, mani.Skills, 2)
	assert.Equal(t, "Effective vs Cavalry", mani.Skills[0].Name)
	assert.Equal(t, model.DamagePhysical, mani.DamageType)

	brand, ok := c.SkillByName("Light Brand")
	require.True(t, ok)
	swapped, ok := c.WeaponTemplate(brand.Param)
	require.True(t, ok)
	assert.Equal(t, model.DamageMagical, swapped.DamageType)

	fire, ok := c.WeaponTemplate(40)
	require.True(t, ok)
	assert.Equal(t, model.DamageMagical, fire.DamageType)

	thief, ok := c.Class("Thief")
	require.True(t, ok)
	require.Len(t, thief.Skills, 1)
	assert.Equal(t, "fe7_steal", thief.Skills[0].OnUse)

	oswin, ok := c.Unit("Oswin")
	require.True(t, ok)
	assert.Equal(t, "Great Shield", oswin.Skills[0].Name)

	assert.Empty(t, c.ScriptRefs())
}

func TestDefault_Teams(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	team, ok := c.Team(1)
	require.True(t, ok)
	assert.Equal(t, "lyn", team.Owner)
	assert.Equal(t, "FE7", team.Game.Abbrev)
	require.Len(t, team.Units, 4)

	lyn := team.Units[0]
	assert.Equal(t, "Lyn", lyn.DisplayName())
	assert.Equal(t, "Lord", lyn.Class.Name)
	assert.Equal(t, []model.ClassLevels{{Class: lyn.Class, Levels: 5}}, lyn.History)
	require.Len(t, lyn.Weapons, 2)
	assert.Equal(t, "Mani Katti", lyn.Weapons[0].Name)
	assert.Equal(t, "Goddess Icon", lyn.Items[0].Name)
	assert.Equal(t, []model.Support{{Partner: "Florina", Rank: 1}}, lyn.Supports)

	ostia, ok := c.Team(2)
	require.True(t, ok)
	lucius := ostia.Units[3]
	assert.Equal(t, "Lucius", lucius.DisplayName())
	// Afa's Drops adds five growth points per level, enough for one HP.
	assert.Equal(t, model.StatBlock{HP: 1}, lucius.Boosts)

	_, ok = c.Team(99)
	assert.False(t, ok)
}

func TestLoad_TOML(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "mini.toml"))
	require.NoError(t, err)

	g, ok := c.Game("MINI")
	require.True(t, ok)
	assert.Equal(t, model.TrianglePhysical, g.Triangle)
	assert.Equal(t, model.BreakIntoSuccessor, g.WeaponBreak)

	braveAxe, ok := c.WeaponTemplate(1)
	require.True(t, ok)
	require.NotNil(t, braveAxe.Successor)
	assert.Equal(t, "Broken Axe", braveAxe.Successor.Name)
	assert.Equal(t, 2, braveAxe.Uses)
	assert.Equal(t, -1, braveAxe.Successor.Uses)

	fighter, ok := c.Class("Fighter")
	require.True(t, ok)
	assert.Equal(t, map[model.WeaponType]int{model.WeaponAxe: 31}, fighter.RankBases)
	assert.Equal(t, 20, fighter.Bases.HP)

	team, ok := c.Team(7)
	require.True(t, ok)
	require.Len(t, team.Units, 1)
	assert.Equal(t, 3, team.Units[0].Level)

	assert.Equal(t, []string{"guard"}, c.ScriptRefs())
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	_, ok := c.Game("FE7")
	assert.True(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "read catalog")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
skills:
  - {id: 1, name: Luna, before_combat: fe7_luna}
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	sk, ok := c.SkillByName("Luna")
	require.True(t, ok)
	assert.Equal(t, "fe7_luna", sk.BeforeCombat)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		raw     string
		wantErr string
	}{
		{
			name:    "unsupported format",
			format:  "json",
			wantErr: `unsupported catalog format "json"`,
		},
		{
			name:    "broken yaml",
			format:  "yaml",
			raw:     "skills: [",
			wantErr: "parse yaml",
		},
		{
			name:    "broken toml",
			format:  "toml",
			raw:     "[[skills]\n",
			wantErr: "parse toml",
		},
		{
			name:    "unknown formula",
			format:  "yaml",
			raw:     "games: [{name: Bad, hit: nope}]",
			wantErr: "hit method",
		},
		{
			name:    "format of unknown game",
			format:  "yaml",
			raw:     "formats: [{name: f, game: nowhere, victory: points}]",
			wantErr: `format "f": unknown game "nowhere"`,
		},
		{
			name:    "unknown effect",
			format:  "yaml",
			raw:     "skills: [{name: s, before_attack: nope}]",
			wantErr: "unknown effect type",
		},
		{
			name:    "duplicate skill",
			format:  "yaml",
			raw:     "skills: [{name: s}, {name: s}]",
			wantErr: `duplicate skill "s"`,
		},
		{
			name:    "unknown skill reference",
			format:  "yaml",
			raw:     "classes: [{name: Lord, skills: [Nope]}]",
			wantErr: `class "Lord": unknown skill "Nope"`,
		},
		{
			name:    "unknown weapon type",
			format:  "yaml",
			raw:     "weapons: [{id: 1, name: Rock, type: rock}]",
			wantErr: `unknown weapon type "rock"`,
		},
		{
			name:    "unknown successor",
			format:  "yaml",
			raw:     "weapons: [{id: 1, name: Axe, type: axe, breaks_into: 9}]",
			wantErr: "breaks into unknown weapon 9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw), tt.format)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParse_TeamErrors(t *testing.T) {
	const base = `
games:
  - {name: G, attack_speed: Spd, hit: "Skl*2+Hit", avoid: "Spd+Luk", crit: "0", crit_avoid: "0",
     attack: "Str+Mt", triangle: None, effective_method: None, crit_damage: "DMG*3", rng: 1RN,
     exp: FE7-FE8, weapon_break: R, max_inventory: 1, team_size: 1}
classes: [{name: Lord}]
units: [{name: Lyn}]
weapons: [{id: 1, name: Sword, type: sword}, {id: 2, name: Lance, type: lance}]
`
	tests := []struct {
		name    string
		teams   string
		wantErr string
	}{
		{
			name:    "unknown game",
			teams:   "teams: [{id: 1, name: T, game: X}]",
			wantErr: `team "T": unknown game "X"`,
		},
		{
			name:    "unknown character",
			teams:   "teams: [{id: 1, name: T, game: G, units: [{id: 1, unit: Eliwood, class: Lord}]}]",
			wantErr: `unknown character "Eliwood"`,
		},
		{
			name:    "unknown class",
			teams:   "teams: [{id: 1, name: T, game: G, units: [{id: 1, unit: Lyn, class: Nomad}]}]",
			wantErr: `unknown class "Nomad"`,
		},
		{
			name:    "inventory too large",
			teams:   "teams: [{id: 1, name: T, game: G, units: [{id: 1, unit: Lyn, class: Lord, weapons: [1, 2]}]}]",
			wantErr: "inventory of 2 exceeds 1",
		},
		{
			name:    "team too large",
			teams:   "teams: [{id: 1, name: T, game: G, units: [{id: 1, unit: Lyn, class: Lord}, {id: 2, unit: Lyn, class: Lord}]}]",
			wantErr: "2 units",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(base+tt.teams), "yaml")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := Parse([]byte(base+"teams: [{id: 1, name: T, game: G, units: [{id: 1, unit: Lyn, class: Lord, weapons: [1, 2]}]}]"), "yaml")
	assert.True(t, model.IsValidation(err))
}

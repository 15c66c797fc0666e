package data

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/linkarena/internal/game/formula"
	"github.com/udisondev/linkarena/internal/game/skill"
	"github.com/udisondev/linkarena/internal/model"
)

//go:embed catalog/*.yaml
var embedded embed.FS

// DefaultCatalog is the embedded sample catalog loaded when no path is configured.
const DefaultCatalog = "catalog/fe7.yaml"

// Catalog holds every template the engine reads, with names and ids
// already resolved into pointers.
type Catalog struct {
	games   map[string]*model.Game
	formats map[string]*model.GameFormat
	skills  map[string]*model.Skill
	classes map[string]*model.ClassTemplate
	units   map[string]*model.UnitTemplate
	weapons map[int]*model.WeaponTemplate
	items   map[int]*model.ItemTemplate
	teams   map[int]*model.BuiltTeam
}

var _ skill.Catalog = (*Catalog)(nil)

type catalogFile struct {
	Games   []*model.Game           `yaml:"games" toml:"games"`
	Formats []*model.GameFormat     `yaml:"formats" toml:"formats"`
	Skills  []*model.Skill          `yaml:"skills" toml:"skills"`
	Classes []*model.ClassTemplate  `yaml:"classes" toml:"classes"`
	Units   []*model.UnitTemplate   `yaml:"units" toml:"units"`
	Weapons []*model.WeaponTemplate `yaml:"weapons" toml:"weapons"`
	Items   []*model.ItemTemplate   `yaml:"items" toml:"items"`
	Teams   []teamDef               `yaml:"teams" toml:"teams"`
}

type teamDef struct {
	ID        int             `yaml:"id" toml:"id"`
	Name      string          `yaml:"name" toml:"name"`
	Owner     string          `yaml:"owner" toml:"owner"`
	Game      string          `yaml:"game" toml:"game"`
	Tactician model.Tactician `yaml:"tactician" toml:"tactician"`
	Units     []unitDef       `yaml:"units" toml:"units"`
}

type unitDef struct {
	ID         int                      `yaml:"id" toml:"id"`
	Nickname   string                   `yaml:"nickname" toml:"nickname"`
	Unit       string                   `yaml:"unit" toml:"unit"`
	Class      string                   `yaml:"class" toml:"class"`
	Level      int                      `yaml:"level" toml:"level"`
	History    []historyDef             `yaml:"history" toml:"history"`
	Boosts     model.StatBlock          `yaml:"boosts" toml:"boosts"`
	RankBoosts map[model.WeaponType]int `yaml:"rank_boosts" toml:"rank_boosts"`
	Skills     []string                 `yaml:"skills" toml:"skills"`
	Weapons    []int                    `yaml:"weapons" toml:"weapons"`
	Items      []int                    `yaml:"items" toml:"items"`
	Supports   []model.Support          `yaml:"supports" toml:"supports"`
	Validated  bool                     `yaml:"validated" toml:"validated"`
}

type historyDef struct {
	Class  string `yaml:"class" toml:"class"`
	Levels int    `yaml:"levels" toml:"levels"`
}

// Load reads a catalog from path. Files ending in .toml are parsed as
// TOML, everything else as YAML. An empty path loads the embedded sample.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(raw, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Default loads the embedded sample catalog.
func Default() (*Catalog, error) {
	raw, err := embedded.ReadFile(DefaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return Parse(raw, "yaml")
}

// Parse decodes raw in the given format ("yaml", "yml" or "toml") and
// resolves every cross reference.
func Parse(raw []byte, format string) (*Catalog, error) {
	var f catalogFile
	switch format {
	case "toml":
		if err := toml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}

	c, err := resolve(&f)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded catalog",
		"games", len(f.Games),
		"formats", len(c.formats),
		"skills", len(c.skills),
		"classes", len(c.classes),
		"units", len(c.units),
		"weapons", len(c.weapons),
		"items", len(c.items),
		"teams", len(c.teams))
	return c, nil
}

func resolve(f *catalogFile) (*Catalog, error) {
	c := &Catalog{
		games:   make(map[string]*model.Game, len(f.Games)),
		formats: make(map[string]*model.GameFormat, len(f.Formats)),
		skills:  make(map[string]*model.Skill, len(f.Skills)),
		classes: make(map[string]*model.ClassTemplate, len(f.Classes)),
		units:   make(map[string]*model.UnitTemplate, len(f.Units)),
		weapons: make(map[int]*model.WeaponTemplate, len(f.Weapons)),
		items:   make(map[int]*model.ItemTemplate, len(f.Items)),
		teams:   make(map[int]*model.BuiltTeam, len(f.Teams)),
	}
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for _, g := range f.Games {
		if err := formula.Validate(g); err != nil {
			errs = append(errs, err)
			continue
		}
		c.games[g.Name] = g
		if g.Abbrev != "" {
			c.games[g.Abbrev] = g
		}
	}
	for _, gf := range f.Formats {
		g, ok := c.games[gf.GameName]
		if !ok {
			fail("format %q: unknown game %q", gf.Name, gf.GameName)
			continue
		}
		if gf.Victory != model.VictoryPoints && gf.Victory != model.VictorySurvival {
			fail("format %q: unknown victory condition %q", gf.Name, gf.Victory)
			continue
		}
		gf.Game = g
		c.formats[gf.Name] = gf
	}

	for _, sk := range f.Skills {
		if _, dup := c.skills[sk.Name]; dup {
			fail("duplicate skill %q", sk.Name)
			continue
		}
		if err := skill.CheckSkill(sk); err != nil {
			errs = append(errs, err)
			continue
		}
		c.skills[sk.Name] = sk
	}
	skillsFor := func(owner string, names []string) []*model.Skill {
		out := make([]*model.Skill, 0, len(names))
		for _, n := range names {
			sk, ok := c.skills[n]
			if !ok {
				fail("%s: unknown skill %q", owner, n)
				continue
			}
			out = append(out, sk)
		}
		return out
	}

	for _, w := range f.Weapons {
		if !w.Type.Valid() {
			fail("weapon %q: unknown weapon type %q", w.Name, w.Type)
			continue
		}
		if w.Uses == 0 {
			w.Uses = -1
		}
		if w.DamageType == "" {
			w.DamageType = model.DamagePhysical
			if w.Type.IsMagic() {
				w.DamageType = model.DamageMagical
			}
		}
		w.Skills = skillsFor(fmt.Sprintf("weapon %q", w.Name), w.SkillNames)
		c.weapons[w.ID] = w
	}
	for _, w := range c.weapons {
		if w.BreaksInto == 0 {
			continue
		}
		next, ok := c.weapons[w.BreaksInto]
		if !ok {
			fail("weapon %q: breaks into unknown weapon %d", w.Name, w.BreaksInto)
			continue
		}
		w.Successor = next
	}
	for _, it := range f.Items {
		it.Skills = skillsFor(fmt.Sprintf("item %q", it.Name), it.SkillNames)
		c.items[it.ID] = it
	}
	for _, cl := range f.Classes {
		cl.Skills = skillsFor(fmt.Sprintf("class %q", cl.Name), cl.SkillNames)
		c.classes[cl.Name] = cl
	}
	for _, u := range f.Units {
		u.Skills = skillsFor(fmt.Sprintf("unit %q", u.Name), u.SkillNames)
		c.units[u.Name] = u
	}

	for _, td := range f.Teams {
		t, err := c.buildTeam(td, skillsFor)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.teams[t.ID] = t
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) buildTeam(td teamDef, skillsFor func(string, []string) []*model.Skill) (*model.BuiltTeam, error) {
	g, ok := c.games[td.Game]
	if !ok {
		return nil, fmt.Errorf("team %q: unknown game %q", td.Name, td.Game)
	}
	t := &model.BuiltTeam{
		ID:        td.ID,
		Name:      td.Name,
		Owner:     td.Owner,
		Game:      g,
		Tactician: td.Tactician,
	}
	for _, ud := range td.Units {
		b, err := c.buildUnit(g, ud, skillsFor)
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", td.Name, err)
		}
		t.Units = append(t.Units, b)
	}
	if g.TeamSize > 0 && len(t.Units) > g.TeamSize {
		return nil, fmt.Errorf("team %q: %d units, %s allows %d", td.Name, len(t.Units), g.Abbrev, g.TeamSize)
	}
	return t, nil
}

func (c *Catalog) buildUnit(g *model.Game, ud unitDef, skillsFor func(string, []string) []*model.Skill) (*model.BuiltUnit, error) {
	ut, ok := c.units[ud.Unit]
	if !ok {
		return nil, fmt.Errorf("unit %d: unknown character %q", ud.ID, ud.Unit)
	}
	cl, ok := c.classes[ud.Class]
	if !ok {
		return nil, fmt.Errorf("unit %d: unknown class %q", ud.ID, ud.Class)
	}
	b := &model.BuiltUnit{
		ID:          ud.ID,
		Nickname:    ud.Nickname,
		Unit:        ut,
		Class:       cl,
		Level:       max(ud.Level, 1),
		Boosts:      ud.Boosts,
		RankBoosts:  ud.RankBoosts,
		ExtraSkills: skillsFor(fmt.Sprintf("unit %d", ud.ID), ud.Skills),
		Supports:    ud.Supports,
		Validated:   ud.Validated,
	}
	for _, h := range ud.History {
		hc, ok := c.classes[h.Class]
		if !ok {
			return nil, fmt.Errorf("unit %d: unknown class %q in history", ud.ID, h.Class)
		}
		b.History = append(b.History, model.ClassLevels{Class: hc, Levels: h.Levels})
	}
	if len(b.History) == 0 {
		b.History = []model.ClassLevels{{Class: cl, Levels: b.Level}}
	}

	for _, id := range ud.Weapons {
		w, ok := c.weapons[id]
		if !ok {
			return nil, fmt.Errorf("unit %d: unknown weapon %d", ud.ID, id)
		}
		b.Weapons = append(b.Weapons, w)
	}
	for _, id := range ud.Items {
		it, ok := c.items[id]
		if !ok {
			return nil, fmt.Errorf("unit %d: unknown item %d", ud.ID, id)
		}
		b.Items = append(b.Items, it)
	}
	switch {
	case g.MaxWeapons > 0 && len(b.Weapons) > g.MaxWeapons:
		return nil, model.Invalidf("unit %d: carries %d weapons, limit is %d", ud.ID, len(b.Weapons), g.MaxWeapons)
	case g.MaxItems > 0 && len(b.Items) > g.MaxItems:
		return nil, model.Invalidf("unit %d: carries %d items, limit is %d", ud.ID, len(b.Items), g.MaxItems)
	case g.MaxInventory > 0 && len(b.Weapons)+len(b.Items) > g.MaxInventory:
		return nil, model.Invalidf("unit %d: inventory of %d exceeds %d", ud.ID, len(b.Weapons)+len(b.Items), g.MaxInventory)
	}

	if err := skill.Build(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Game returns a rule set by name or abbreviation.
func (c *Catalog) Game(name string) (*model.Game, bool) {
	g, ok := c.games[name]
	return g, ok
}

// Format returns a game format by name.
func (c *Catalog) Format(name string) (*model.GameFormat, bool) {
	f, ok := c.formats[name]
	return f, ok
}

// Formats returns every format name in sorted order.
func (c *Catalog) Formats() []string {
	names := make([]string, 0, len(c.formats))
	for n := range c.formats {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// SkillByName returns a skill by its catalog name.
func (c *Catalog) SkillByName(name string) (*model.Skill, bool) {
	sk, ok := c.skills[name]
	return sk, ok
}

// Class returns a class by name.
func (c *Catalog) Class(name string) (*model.ClassTemplate, bool) {
	cl, ok := c.classes[name]
	return cl, ok
}

// Unit returns a character by name.
func (c *Catalog) Unit(name string) (*model.UnitTemplate, bool) {
	u, ok := c.units[name]
	return u, ok
}

// WeaponTemplate returns a weapon template by id.
func (c *Catalog) WeaponTemplate(id int) (*model.WeaponTemplate, bool) {
	w, ok := c.weapons[id]
	return w, ok
}

// ItemTemplate returns an item template by id.
func (c *Catalog) ItemTemplate(id int) (*model.ItemTemplate, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Team returns a built team by id.
func (c *Catalog) Team(id int) (*model.BuiltTeam, bool) {
	t, ok := c.teams[id]
	return t, ok
}

// ScriptRefs lists the Lua functions that catalog skills call, sorted and
// without duplicates.
func (c *Catalog) ScriptRefs() []string {
	var refs []string
	for _, sk := range c.skills {
		if fn, ok := strings.CutPrefix(sk.BeforeCombat, skill.ScriptPrefix); ok {
			refs = append(refs, fn)
		}
	}
	slices.Sort(refs)
	return slices.Compact(refs)
}

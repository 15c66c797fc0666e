package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/linkarena/internal/model"
	"github.com/udisondev/linkarena/internal/testutil"
)

func builtUnit() *model.ActiveUnit {
	cavalier := &model.ClassTemplate{
		Name:    "Cavalier",
		Bases:   model.StatBlock{HP: 20, Str: 5, Def: 6},
		Growths: model.StatBlock{HP: 75, Str: 35},
		Max:     model.Caps{model.StatStr: 20},
	}
	return &model.ActiveUnit{
		Template: &model.BuiltUnit{
			Unit: &model.UnitTemplate{
				Name:    "Lowen",
				Bases:   model.StatBlock{HP: 3, Str: 2, Def: 1},
				Growths: model.StatBlock{HP: 90, Str: 30},
			},
			Class:   cavalier,
			Level:   10,
			History: []model.ClassLevels{{Class: cavalier, Levels: 10}},
		},
	}
}

func TestResolve_BasesGrowthsBoosts(t *testing.T) {
	u := builtUnit()

	// 3 + 20 + (90*10 + 75*10)/100 = 23 + 16
	assert.Equal(t, 39, MaxHP(u))
	// 2 + 5 + (300+350)/100 = 13
	assert.Equal(t, 13, Str(u))
	// class bases are read per stat
	assert.Equal(t, 7, Def(u))

	u.Template.Boosts.Str = 2
	assert.Equal(t, 15, Str(u))
}

func TestResolve_Caps(t *testing.T) {
	tests := []struct {
		name     string
		unitCap  model.Caps
		classCap model.Caps
		modMax   model.StatBlock
		boost    int
		mod      int
		want     int
	}{
		{name: "uncapped both", boost: 30, want: 43},
		{name: "class cap clamps", classCap: model.Caps{model.StatStr: 20}, boost: 30, want: 20},
		{name: "class cap plus unit modifier", classCap: model.Caps{model.StatStr: 20}, modMax: model.StatBlock{Str: 2}, boost: 30, want: 22},
		{name: "unit cap clamps", unitCap: model.Caps{model.StatStr: 15}, boost: 30, want: 15},
		{name: "lower of both caps", unitCap: model.Caps{model.StatStr: 18}, classCap: model.Caps{model.StatStr: 20}, boost: 30, want: 18},
		{name: "uncapped unit never lowers class cap", unitCap: model.Caps{model.StatStr: model.Uncapped}, classCap: model.Caps{model.StatStr: 25}, boost: 5, want: 18},
		{name: "modifier applied after clamp", classCap: model.Caps{model.StatStr: 20}, boost: 30, mod: 5, want: 25},
		{name: "negative modifier", boost: 0, mod: -4, want: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := builtUnit()
			u.Template.Unit.Max = tt.unitCap
			u.Template.Class.Max = tt.classCap
			u.Template.Unit.ModMax = tt.modMax
			u.Template.Boosts.Str = tt.boost
			u.Mods.Str = tt.mod
			assert.Equal(t, tt.want, Str(u))
		})
	}
}

func TestResolve_MultiClassHistory(t *testing.T) {
	u := builtUnit()
	paladin := &model.ClassTemplate{Name: "Paladin", Growths: model.StatBlock{Str: 50}}
	u.Template.History = append(u.Template.History, model.ClassLevels{Class: paladin, Levels: 4})
	u.Template.Class.Max = nil

	// unit growth covers 14 levels: 30*14=420; class growths 35*10 + 50*4 = 550
	assert.Equal(t, 2+5+(420+550)/100, Str(u))
}

func TestAll(t *testing.T) {
	u := testutil.Unit(1, "Eliwood", model.StatBlock{HP: 18, Str: 5, Skl: 5, Spd: 7, Luk: 7, Def: 5, Res: 0, Con: 7})
	got := All(u)
	assert.Equal(t, 18, got.HP)
	assert.Equal(t, 7, got.Spd)
	assert.Equal(t, 7, got.Con)
}

func TestAccessors(t *testing.T) {
	u := testutil.Unit(1, "Hector", model.StatBlock{HP: 19, Str: 7, Mag: 1, Skl: 4, Spd: 5, Luk: 3, Def: 8, Res: 2, Con: 13})
	u.Template.Level = 12
	u.Mods.Luk = -5

	tests := []struct {
		name string
		get  func(*model.ActiveUnit) int
		want int
	}{
		{"MaxHP", MaxHP, 19},
		{"Str", Str, 7},
		{"Mag", Mag, 1},
		{"Skl", Skl, 4},
		{"Spd", Spd, 5},
		{"Luk", Luk, -2},
		{"Def", Def, 8},
		{"Res", Res, 2},
		{"Con", Con, 13},
		{"Level", Level, 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.get(u), tt.name)
	}
}

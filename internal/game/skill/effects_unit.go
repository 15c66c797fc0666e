package skill

import (
	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/stats"
	"github.com/udisondev/linkarena/internal/model"
)

// Temporary skills granted by effects.
const (
	NullifyFlying  = "nullify_flying"
	NullifyCavalry = "nullify_cavalry"
	NullifyArmored = "nullify_armored"
	NullifyDragon  = "nullify_dragon"
	NullifyWyvern  = "nullify_wyvern"
	Poisoned       = "fe7_poisoned"
)

// poisonTurns is how many turn starts a fresh poison lasts.
const poisonTurns = 5

var builtinSkills = map[string]*model.Skill{
	Poisoned: {Name: Poisoned, TurnStart: "fe7_poisoned"},
}

func modEffect(delta model.StatBlock) UnitEffect {
	return func(_ *Env, _ *model.Skill, u *model.ActiveUnit) (actionlog.Record, error) {
		for _, s := range model.AllStats {
			u.Mods.Add(s, delta.Get(s))
		}
		return nil, nil
	}
}

func negate(b model.StatBlock) model.StatBlock {
	var out model.StatBlock
	for _, s := range model.AllStats {
		out.Set(s, -b.Get(s))
	}
	return out
}

var myrmidonClasses = []string{"Myrmidon", "Swordmaster", "Blade Lord"}

func myrmidonsOnly(_ *Env, sk *model.Skill, u *model.ActiveUnit) (actionlog.Record, error) {
	for _, name := range myrmidonClasses {
		if u.Class().Name == name {
			return nil, nil
		}
	}
	return nil, model.InvalidOpf(model.ActionEquipWeapon, "only myrmidons and swordmasters can equip this weapon (%s)", sk.Name)
}

func delphiShield(e *Env, _ *model.Skill, u *model.ActiveUnit) (actionlog.Record, error) {
	u.AddTempSkill(e.skill(NullifyFlying))
	return nil, nil
}

// poisoned counts the poison down and deals 1-5 damage while it lasts.
// Poison never drops a unit below 1 HP.
func poisoned(e *Env, sk *model.Skill, u *model.ActiveUnit) (actionlog.Record, error) {
	left, _ := u.Data(Poisoned)
	left--
	if left <= 0 {
		u.RemoveTempSkill(Poisoned)
		u.ClearData(Poisoned)
		return nil, nil
	}
	u.SetData(Poisoned, left)

	dmg := min(e.RNG.IntN(5)+1, u.CurrentHP-1)
	if dmg <= 0 {
		return nil, nil
	}
	u.CurrentHP -= dmg
	return actionlog.ActivateSkill{Skill: sk.Name, Data: dmg, Show: true}, nil
}

// renewal restores a tenth of max HP at the end of the owner's turn.
func renewal(_ *Env, sk *model.Skill, u *model.ActiveUnit) (actionlog.Record, error) {
	maxHP := stats.MaxHP(u)
	heal := min(max(maxHP/10, 1), maxHP-u.CurrentHP)
	if heal <= 0 {
		return nil, nil
	}
	u.CurrentHP += heal
	return actionlog.RestoreHealth{Unit: u.ID, Health: heal}, nil
}

// canto keeps the turn open once after the unit fought, for actions that
// do not start another fight.
func canto(e *Env, sk *model.Skill, u *model.ActiveUnit, done actionlog.Log) (actionlog.Record, error) {
	if !e.Arena.TurnShouldEnd || u.IsRestricted(sk.Name) {
		return nil, nil
	}
	fought := false
	for _, r := range done {
		if _, ok := r.(actionlog.StartCombat); ok {
			fought = true
			break
		}
	}
	if !fought {
		return nil, nil
	}
	u.Restrict(sk.Name)
	for _, kind := range []string{model.ActionAttack, model.ActionUseWeapon, model.ActionUseItem, model.ActionUseSkill} {
		u.Restrict(kind)
	}
	e.Arena.TurnShouldEnd = false
	e.Arena.ActingUnit = u.ID
	return actionlog.ActivateSkill{Skill: sk.Name, Data: u.ID, Show: true}, nil
}

// growthsPlusFive grants the stat points five extra growth percent would
// have produced over the unit's levels so far.
func growthsPlusFive(_ *model.Skill, b *model.BuiltUnit) error {
	levels := b.TotalLevels()
	for _, s := range []model.Stat{
		model.StatHP, model.StatStr, model.StatMag, model.StatSkl,
		model.StatSpd, model.StatLuk, model.StatDef, model.StatRes,
	} {
		points := b.Unit.Growths.Get(s) * levels
		for _, h := range b.History {
			if h.Class != nil {
				points += h.Class.Growths.Get(s) * h.Levels
			}
		}
		b.Boosts.Add(s, (points+5*levels)/100-points/100)
	}
	return nil
}

func init() {
	RegisterUnitEffect(HookPassive, "delphi_shield", delphiShield)

	plusFive := map[string]model.StatBlock{
		"str+5": {Str: 5},
		"luk+5": {Luk: 5},
		"def+5": {Def: 5},
		"res+5": {Res: 5},
	}
	for name, delta := range plusFive {
		RegisterUnitEffect(HookEquip, name, modEffect(delta))
		RegisterUnitEffect(HookDequip, name, modEffect(negate(delta)))
	}
	uberSpear := model.StatBlock{HP: 17, Str: 5, Skl: 4, Spd: 9, Def: 4, Res: 14}
	RegisterUnitEffect(HookEquip, "fe7_uber_spear", modEffect(uberSpear))
	RegisterUnitEffect(HookDequip, "fe7_uber_spear", modEffect(negate(uberSpear)))
	RegisterUnitEffect(HookEquip, "fe7_myrms_only", myrmidonsOnly)

	RegisterUnitEffect(HookTurnStart, "fe7_poisoned", poisoned)
	RegisterUnitEffect(HookTurnEnd, "renewal", renewal)
	RegisterUnitTurnEndEffect("canto", canto)
	RegisterBuildEffect("growths+5", growthsPlusFive)
}

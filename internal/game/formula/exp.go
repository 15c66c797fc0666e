package formula

import (
	"github.com/udisondev/linkarena/internal/game/stats"
	"github.com/udisondev/linkarena/internal/model"
)

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

type combatant struct {
	level    int
	promoted int
	classEXP int
	classStr int
	final    bool
}

func combatantOf(u *model.ActiveUnit) combatant {
	c := u.Class()
	return combatant{
		level:    u.Template.Level,
		promoted: b2i(c.Promoted),
		classEXP: c.ClassEXP,
		classStr: c.ClassStrength,
		final:    c.Promoted && len(c.PromotesTo) == 0,
	}
}

// Experience is the experience u earns from one combat against enemy in
// which u dealt dmg damage in total. It is read after the combat, so the
// enemy's current HP tells whether it was defeated. Arena points are
// awarded from this value.
func Experience(g *model.Game, u, enemy *model.ActiveUnit, dmg int) (int, error) {
	me, foe := combatantOf(u), combatantOf(enemy)
	killed := enemy.CurrentHP <= 0
	unitDead := u.CurrentHP <= 0

	// zeroDamage covers the titles that hand out a consolation point for a
	// whiffed combat the unit survived.
	zeroDamage := func(consolation bool) (int, bool) {
		if dmg != 0 {
			return 0, false
		}
		if consolation && !unitDead {
			return 1, true
		}
		return 0, true
	}

	switch g.EXP {
	case model.EXPFE1:
		if v, done := zeroDamage(false); done {
			return v, nil
		}
		if !killed {
			return min(dmg, 20), nil
		}
		return foe.classEXP + foe.level - 1, nil

	case model.EXPFE3:
		if v, done := zeroDamage(false); done {
			return v, nil
		}
		if !killed {
			return min(dmg, 10), nil
		}
		return foe.classEXP, nil

	case model.EXPFE2:
		if v, done := zeroDamage(true); done {
			return v, nil
		}
		levelFactor := 12 - me.level
		if me.level <= 2 {
			levelFactor = 10
		} else if me.level >= 10 {
			levelFactor = 2
		}
		base := min(float64(foe.classEXP*(foe.level+9))/10, 255)
		kill := max(base*float64(me.classStr)*float64(levelFactor)/100, 1)
		if !killed {
			return damageShare(kill, dmg, enemy)
		}
		return int(kill), nil

	case model.EXPFE4:
		if v, done := zeroDamage(false); done {
			return v, nil
		}
		if !killed {
			return max(10+(foe.level-me.level), 0), nil
		}
		return max(30+(foe.level-me.level)*2, 0), nil

	case model.EXPFE5:
		if v, done := zeroDamage(false); done {
			return v, nil
		}
		dmgEXP := (31 - me.level) - me.classStr
		if !killed {
			return dmgEXP, nil
		}
		diff := foe.classStr*(foe.level+20*foe.promoted) - me.classStr*(me.level+20*me.promoted) + 20
		return max(diff, 0) + dmgEXP, nil

	case model.EXPGBAEasy, model.EXPGBAHard:
		if v, done := zeroDamage(true); done {
			return v, nil
		}
		if me.classStr == 0 {
			return 0, model.NewConfigError(g, "class strength", 0)
		}
		dmgEXP := max((31+foe.level+20*foe.promoted-me.level-20*me.promoted)/me.classStr, 1)
		if !killed {
			return min(dmgEXP, 100), nil
		}
		enemyBonus := foe.level*foe.classStr + foe.classEXP
		unitBonus := me.level*me.classStr + me.classEXP
		divisor := 1
		if g.EXP == model.EXPGBAEasy && unitBonus >= enemyBonus {
			divisor = 2
		}
		return min(max(dmgEXP+enemyBonus-unitBonus/divisor+20, dmgEXP), 100), nil

	case model.EXPFE9, model.EXPFE9Easy, model.EXPFE9Hard, model.EXPFE9Maniac:
		if v, done := zeroDamage(true); done {
			return v, nil
		}
		diff := (foe.level + 20*foe.promoted) - (me.level + 20*me.promoted)
		base := FloorDiv(21+diff, 2)
		if g.EXP == model.EXPFE9Easy {
			base += 5
		}
		if !killed {
			return base, nil
		}
		bonus := 20
		switch g.EXP {
		case model.EXPFE9Easy:
			bonus = 30
		case model.EXPFE9Hard:
			bonus = 15
		case model.EXPFE9Maniac:
			bonus = 10
		}
		return base + diff + bonus, nil

	case model.EXPFE10, model.EXPFE10Hard:
		if v, done := zeroDamage(true); done {
			return v, nil
		}
		tier := func(c combatant) int {
			return c.level*c.classEXP + 20*c.promoted + 20*b2i(c.final)
		}
		diff := tier(foe) - tier(me)
		atkEXP := 10 + FloorDiv(diff, 2)
		if g.EXP == model.EXPFE10Hard {
			atkEXP -= 5
		}
		if !killed {
			return atkEXP, nil
		}
		return atkEXP + diff + (foe.classStr - me.classStr) + 15, nil

	case model.EXPFE11:
		if v, done := zeroDamage(false); done {
			return v, nil
		}
		diff := (foe.level + 15*foe.promoted) - (me.level + 15*me.promoted)
		if !killed {
			switch {
			case diff <= 0 && diff >= -2:
				return 10, nil
			case diff > 0:
				return FloorDiv(31+diff, 3), nil
			}
			return FloorDiv(33+diff, 3), nil
		}
		var kill float64
		switch {
		case diff <= 0 && diff >= -2:
			kill = 30
		case diff > 0:
			kill = 30 + float64(diff)*3.33
		default:
			kill = 37 + float64(diff)*3.33
		}
		kill += float64(foe.classEXP)
		if kill < 15 {
			return max(int(float64(54+diff)/3), 8), nil
		}
		return int(kill), nil

	case model.EXPFE12:
		if v, done := zeroDamage(false); done {
			return v, nil
		}
		if me.classStr == 0 {
			return 0, model.NewConfigError(g, "class strength", 0)
		}
		diff := (foe.level + 15*foe.promoted) - (me.level + 15*me.promoted)
		if !killed {
			if diff >= 0 {
				return FloorDiv(31+diff, me.classStr), nil
			}
			return FloorDiv(33+diff, me.classStr), nil
		}
		p := fe12KillParams(me.classStr, foe.classStr)
		base := p.lt
		switch {
		case diff == 0:
			base = p.eq
		case diff > 0:
			base = p.gt
		}
		kill := int(float64(base) + float64(diff)*p.diffFactor + float64(p.enemyLevelFactor*foe.level) + float64(foe.classEXP))
		if kill < 15 {
			return FloorDiv(p.fallover+diff, me.classStr), nil
		}
		return kill, nil

	case model.EXPFE13:
		if v, done := zeroDamage(true); done {
			return v, nil
		}
		diff := (foe.level + 20*foe.promoted) - (me.level + 20*me.promoted)
		var hitEXP, killEXP int
		switch {
		case diff >= 0:
			hitEXP = (31 + diff) / 3
			killEXP = 20 + diff*3 + foe.classEXP
		case diff == -1:
			hitEXP = 10
			killEXP = 20 + foe.classEXP
		default:
			hitEXP = max(FloorDiv(33+diff, 3), 1)
			killEXP = max(26+diff*3+foe.classEXP, 7)
		}
		if !killed {
			return hitEXP, nil
		}
		return hitEXP + killEXP, nil

	case model.EXPFE16, model.EXPFE16Hard, model.EXPFE16Madden:
		if v, done := zeroDamage(false); done {
			return v, nil
		}
		idx := 0
		switch g.EXP {
		case model.EXPFE16Hard:
			idx = 1
		case model.EXPFE16Madden:
			idx = 2
		}
		base := float64(foe.classEXP*20*(99+me.level)) / 100
		diff := min(max(foe.level-me.level, -20), 20)
		kill := base * float64(fe16LevelDiff(diff)[idx]) / 100
		if killed {
			return int(kill), nil
		}
		return damageShare(kill, dmg, enemy)
	}
	return 0, model.NewConfigError(g, "exp formula", g.EXP)
}

// damageShare scales kill EXP by the fraction of enemy's doubled max HP
// that dmg covers.
func damageShare(kill float64, dmg int, enemy *model.ActiveUnit) (int, error) {
	hp := stats.MaxHP(enemy)
	if hp <= 0 {
		return 0, model.Invalidf("unit %d has max HP %d", enemy.ID, hp)
	}
	return int(kill * float64(dmg) / float64(2*hp)), nil
}

type fe12Params struct {
	diffFactor       float64
	fallover         int
	enemyLevelFactor int
	eq, gt, lt       int
}

func fe12KillParams(unitStr, enemyStr int) fe12Params {
	if unitStr == 5 {
		if enemyStr == 5 {
			return fe12Params{diffFactor: 31.0 / 6, fallover: 68, enemyLevelFactor: 0, eq: 46, gt: 46, lt: 56}
		}
		return fe12Params{diffFactor: 31.0 / 6, fallover: 68, enemyLevelFactor: -2, eq: 24, gt: 26, lt: 32}
	}
	if enemyStr == 5 {
		return fe12Params{diffFactor: 10.0 / 3, fallover: 54, enemyLevelFactor: 2, eq: 52, gt: 50, lt: 61}
	}
	return fe12Params{diffFactor: 10.0 / 3, fallover: 54, enemyLevelFactor: 0, eq: 30, gt: 30, lt: 37}
}

// fe16Table holds the kill experience percentage per level difference,
// indexed from +20 down to -20, for Normal, Hard and Maddening.
var fe16Table = [41][3]int{
	{250, 150, 60}, // +20
	{230, 140, 55},
	{220, 130, 55},
	{210, 120, 55},
	{200, 115, 55},
	{195, 115, 55}, // +15
	{190, 110, 50},
	{185, 110, 50},
	{180, 110, 50},
	{175, 110, 50},
	{170, 110, 50}, // +10
	{165, 105, 45},
	{160, 105, 45},
	{155, 100, 45},
	{150, 100, 45},
	{125, 100, 45}, // +5
	{120, 95, 45},
	{115, 90, 40},
	{110, 85, 40},
	{110, 80, 30},
	{105, 70, 20}, // 0
	{100, 60, 15},
	{95, 50, 10},
	{90, 40, 5},
	{85, 30, 1},
	{80, 20, 1}, // -5
	{75, 10, 1},
	{70, 5, 1},
	{65, 5, 1},
	{60, 5, 1},
	{55, 5, 1}, // -10
	{50, 5, 1},
	{40, 5, 1},
	{30, 5, 1},
	{20, 5, 1},
	{10, 5, 1}, // -15
	{10, 5, 1},
	{10, 5, 1},
	{10, 5, 1},
	{10, 5, 1},
	{0, 0, 0}, // -20
}

func fe16LevelDiff(diff int) [3]int {
	return fe16Table[20-diff]
}

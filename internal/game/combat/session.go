// Package combat builds and resolves a single exchange between an attacker
// and a defender: derived battle numbers, the attack chain and its rolls.
//
// Skills plug in from the outside. The session exposes setters that keep
// the combat totals and every affected attack in the chain in step, and the
// executor calls back through Hooks after each swing.
package combat

import (
	"fmt"

	"github.com/udisondev/linkarena/internal/game/actionlog"
	"github.com/udisondev/linkarena/internal/game/formula"
	"github.com/udisondev/linkarena/internal/model"
)

// Side picks one of the two combatants.
type Side int

const (
	SideAttacker Side = iota
	SideDefender
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == SideDefender {
		return "defender"
	}
	return "attacker"
}

// Numbers are one combatant's derived battle values plus the clamped
// figures shown to players before the combat starts.
type Numbers struct {
	AS   int
	Hit  int
	Avo  int
	Crit int
	Ddg  int
	Atk  int
	Prt  int
	Rsl  int

	DisplayedDmg  int
	DisplayedHit  int
	DisplayedCrit int
}

// Session is one combat between an attacker and a defender.
type Session struct {
	Arena *model.Arena
	Game  *model.Game
	RNG   RNG
	Range int

	Attacker       *model.ActiveUnit
	Defender       *model.ActiveUnit
	AttackerWeapon *model.ActiveWeapon
	DefenderWeapon *model.ActiveWeapon

	// Outranged is set when the defender's weapon cannot reach the attacker.
	Outranged bool

	Chain *Chain

	AttackerPoints int
	DefenderPoints int

	nums      [2]Numbers
	base      [2]Numbers // formula values before any skill adjusted them
	initialHP [2]int
}

// New derives every battle number for attacker against defender at the
// given distance and lays out the default attack chain.
func New(a *model.Arena, attacker, defender *model.ActiveUnit, distance int, rng RNG) (*Session, error) {
	aw := attacker.EquippedWeapons()
	switch {
	case len(aw) == 0:
		return nil, model.InvalidOpf("attack", "unit %d has no equipped weapon", attacker.ID)
	case len(aw) > 1:
		return nil, model.InvalidOpf("attack", "unit %d has %d equipped weapons", attacker.ID, len(aw))
	}
	dw := defender.EquippedWeapons()
	if len(dw) > 1 {
		return nil, model.InvalidOpf("attack", "unit %d has %d equipped weapons", defender.ID, len(dw))
	}

	s := &Session{
		Arena:          a,
		Game:           a.Game,
		RNG:            rng,
		Range:          distance,
		Attacker:       attacker,
		Defender:       defender,
		AttackerWeapon: aw[0],
		initialHP:      [2]int{attacker.CurrentHP, defender.CurrentHP},
	}
	if len(dw) == 1 {
		s.DefenderWeapon = dw[0]
		s.Outranged = !s.DefenderWeapon.Template.InRange(distance)
	}

	for _, side := range []Side{SideAttacker, SideDefender} {
		as, err := formula.AttackSpeed(s.Game, s.Unit(side), s.Weapon(side))
		if err != nil {
			return nil, err
		}
		n, err := s.derive(side)
		if err != nil {
			return nil, err
		}
		n.AS = as
		s.nums[side] = n
		s.base[side] = n
	}
	s.refreshDisplay()
	s.Chain = s.defaultChain()
	return s, nil
}

// derive computes side's numbers straight from the formulas, leaving AS
// and the displayed figures zero.
func (s *Session) derive(side Side) (Numbers, error) {
	u, w := s.Unit(side), s.Weapon(side)
	opp, ow := s.Unit(side.Opponent()), s.Weapon(side.Opponent())
	oppType := model.WeaponNone
	if ow != nil {
		oppType = ow.Template.Type
	}

	var n Numbers
	var err error
	if n.Avo, err = formula.Avoid(s.Arena, u, w); err != nil {
		return n, err
	}
	if n.Ddg, err = formula.Dodge(s.Arena, u); err != nil {
		return n, err
	}
	n.Prt = formula.Protection(s.Arena, u)
	n.Rsl = formula.Resilience(s.Arena, u)
	if side == SideDefender && s.Outranged {
		return n, nil
	}
	if n.Hit, err = formula.Hit(s.Arena, u, w, opp, oppType); err != nil {
		return n, err
	}
	if n.Crit, err = formula.Crit(s.Arena, u, w); err != nil {
		return n, err
	}
	if n.Atk, err = formula.Attack(s.Arena, u, w, opp, oppType); err != nil {
		return n, err
	}
	return n, nil
}

func (s *Session) canCounter() bool {
	return s.DefenderWeapon != nil && !s.Outranged
}

func (s *Session) newAttack(by Side) *Attack {
	opp := by.Opponent()
	return &Attack{
		By:            s.Unit(by),
		Against:       s.Unit(opp),
		Weapon:        s.Weapon(by),
		AgainstWeapon: s.Weapon(opp),
		Atk:           s.nums[by].Atk,
		PrtRsl:        s.prtRslAgainst(by),
		Hit:           s.nums[by].Hit,
		Avo:           s.nums[opp].Avo,
		Crit:          s.nums[by].Crit,
		Ddg:           s.nums[opp].Ddg,
		Skillable:     true,
		Counter:       by == SideDefender,
	}
}

func (s *Session) defaultChain() *Chain {
	c := NewChain(s.newAttack(SideAttacker))
	if s.canCounter() {
		c.Append(s.newAttack(SideDefender))
	}
	if s.Game.FollowUp == 0 {
		return c
	}
	diff := s.nums[SideAttacker].AS - s.nums[SideDefender].AS
	switch {
	case diff >= s.Game.FollowUp:
		f := s.newAttack(SideAttacker)
		f.FollowUp = true
		c.Append(f)
	case -diff >= s.Game.FollowUp && s.canCounter():
		f := s.newAttack(SideDefender)
		f.FollowUp = true
		c.Append(f)
	}
	return c
}

// prtRslAgainst is the defence the opponent of by raises against by's weapon.
func (s *Session) prtRslAgainst(by Side) int {
	w := s.Weapon(by)
	if w == nil {
		return 0
	}
	opp := s.nums[by.Opponent()]
	return formula.PrtOrRsl(w.Template.DamageType, opp.Prt, opp.Rsl)
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}

func (s *Session) refreshDisplay() {
	for _, side := range []Side{SideAttacker, SideDefender} {
		n, opp := &s.nums[side], s.nums[side.Opponent()]
		n.DisplayedDmg = max(n.Atk-s.prtRslAgainst(side), 0)
		n.DisplayedHit = clampPercent(n.Hit - opp.Avo)
		n.DisplayedCrit = clampPercent(n.Crit - opp.Ddg)
	}
}

// Unit returns the combatant on side.
func (s *Session) Unit(side Side) *model.ActiveUnit {
	if side == SideDefender {
		return s.Defender
	}
	return s.Attacker
}

// Weapon returns the weapon wielded on side, nil for an unarmed defender.
func (s *Session) Weapon(side Side) *model.ActiveWeapon {
	if side == SideDefender {
		return s.DefenderWeapon
	}
	return s.AttackerWeapon
}

// SideOf reports which side u fights on.
func (s *Session) SideOf(u *model.ActiveUnit) (Side, bool) {
	switch u {
	case s.Attacker:
		return SideAttacker, true
	case s.Defender:
		return SideDefender, true
	}
	return 0, false
}

// Numbers returns a copy of side's current battle numbers.
func (s *Session) Numbers(side Side) Numbers {
	return s.nums[side]
}

// InitialHP is the HP side entered the combat with.
func (s *Session) InitialHP(side Side) int {
	return s.initialHP[side]
}

// AddPoints credits arena points to side.
func (s *Session) AddPoints(side Side, pts int) {
	if side == SideDefender {
		s.DefenderPoints += pts
		return
	}
	s.AttackerPoints += pts
}

// eachBy applies fn to every attack made by side's unit.
func (s *Session) eachBy(side Side, fn func(*Attack)) {
	u := s.Unit(side)
	for _, a := range s.Chain.attacks {
		if a.By == u {
			fn(a)
		}
	}
}

// eachAgainst applies fn to every attack aimed at side's unit.
func (s *Session) eachAgainst(side Side, fn func(*Attack)) {
	u := s.Unit(side)
	for _, a := range s.Chain.attacks {
		if a.Against == u {
			fn(a)
		}
	}
}

// SetAtk overrides side's Atk. An outranged defender cannot gain Atk.
func (s *Session) SetAtk(side Side, v int) {
	if side == SideDefender && s.Outranged {
		return
	}
	s.nums[side].Atk = v
	s.eachBy(side, func(a *Attack) { a.Atk = v })
	s.refreshDisplay()
}

// SetHit overrides side's Hit.
func (s *Session) SetHit(side Side, v int) {
	if side == SideDefender && s.Outranged {
		return
	}
	s.nums[side].Hit = v
	s.eachBy(side, func(a *Attack) { a.Hit = v })
	s.refreshDisplay()
}

// SetCrit overrides side's Crit.
func (s *Session) SetCrit(side Side, v int) {
	if side == SideDefender && s.Outranged {
		return
	}
	s.nums[side].Crit = v
	s.eachBy(side, func(a *Attack) { a.Crit = v })
	s.refreshDisplay()
}

// SetAvo overrides side's Avo on every attack aimed at it.
func (s *Session) SetAvo(side Side, v int) {
	s.nums[side].Avo = v
	s.eachAgainst(side, func(a *Attack) { a.Avo = v })
	s.refreshDisplay()
}

// SetDdg overrides side's Ddg on every attack aimed at it.
func (s *Session) SetDdg(side Side, v int) {
	s.nums[side].Ddg = v
	s.eachAgainst(side, func(a *Attack) { a.Ddg = v })
	s.refreshDisplay()
}

// SetPrt overrides side's physical defence.
func (s *Session) SetPrt(side Side, v int) {
	s.nums[side].Prt = v
	s.refreshDefence(side)
}

// SetRsl overrides side's magical defence.
func (s *Session) SetRsl(side Side, v int) {
	s.nums[side].Rsl = v
	s.refreshDefence(side)
}

func (s *Session) refreshDefence(side Side) {
	n := s.nums[side]
	s.eachAgainst(side, func(a *Attack) {
		if a.Weapon != nil {
			a.PrtRsl = formula.PrtOrRsl(a.Weapon.Template.DamageType, n.Prt, n.Rsl)
		}
	})
	s.refreshDisplay()
}

// Recalculate re-derives side's numbers after its weapon template or stats
// changed. The opponent only moves by what its weapon triangle and
// effectiveness gain or lose against the new weapon. Adjustments already
// made through the setters are kept on both sides, as are attack speed
// and chain order.
func (s *Session) Recalculate(side Side) error {
	for _, sd := range []Side{side, side.Opponent()} {
		fresh, err := s.derive(sd)
		if err != nil {
			return fmt.Errorf("recalculate %s: %w", sd, err)
		}
		old, n := s.base[sd], &s.nums[sd]
		n.Hit += fresh.Hit - old.Hit
		n.Avo += fresh.Avo - old.Avo
		n.Crit += fresh.Crit - old.Crit
		n.Ddg += fresh.Ddg - old.Ddg
		n.Atk += fresh.Atk - old.Atk
		n.Prt += fresh.Prt - old.Prt
		n.Rsl += fresh.Rsl - old.Rsl
		fresh.AS = old.AS
		s.base[sd] = fresh
	}
	for _, a := range s.Chain.attacks {
		by, ok := s.SideOf(a.By)
		if !ok {
			continue
		}
		opp := by.Opponent()
		a.Weapon = s.Weapon(by)
		a.AgainstWeapon = s.Weapon(opp)
		a.Atk = s.nums[by].Atk
		a.PrtRsl = s.prtRslAgainst(by)
		a.Hit = s.nums[by].Hit
		a.Avo = s.nums[opp].Avo
		a.Crit = s.nums[by].Crit
		a.Ddg = s.nums[opp].Ddg
	}
	s.refreshDisplay()
	return nil
}

// Summary is the start_combat record announcing the displayed numbers.
func (s *Session) Summary() actionlog.StartCombat {
	at, df := s.nums[SideAttacker], s.nums[SideDefender]
	rec := actionlog.StartCombat{
		Attacker:       s.Attacker.ID,
		AttackerWeapon: s.AttackerWeapon.ID,
		Defender:       s.Defender.ID,
	}
	rec.AttackerDisplayedDmg = at.DisplayedDmg
	rec.AttackerDisplayedHit = at.DisplayedHit
	rec.AttackerDisplayedCrit = at.DisplayedCrit
	rec.AttackerDisplayedAtk = at.Atk
	rec.AttackerDisplayedPrt = at.Prt
	rec.AttackerDisplayedRsl = at.Rsl
	if s.DefenderWeapon != nil {
		id := s.DefenderWeapon.ID
		rec.DefenderWeapon = &id
	}
	rec.DefenderDisplayedDmg = df.DisplayedDmg
	rec.DefenderDisplayedHit = df.DisplayedHit
	rec.DefenderDisplayedCrit = df.DisplayedCrit
	rec.DefenderDisplayedAtk = df.Atk
	rec.DefenderDisplayedPrt = df.Prt
	rec.DefenderDisplayedRsl = df.Rsl
	return rec
}

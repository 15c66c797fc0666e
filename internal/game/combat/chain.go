package combat

import (
	"slices"

	"github.com/udisondev/linkarena/internal/model"
)

// Attack is one swing of a combat: who strikes whom with what, and the six
// numbers the executor rolls against. Skills mutate attacks in place.
type Attack struct {
	By            *model.ActiveUnit
	Against       *model.ActiveUnit
	Weapon        *model.ActiveWeapon
	AgainstWeapon *model.ActiveWeapon

	Atk    int
	PrtRsl int
	Hit    int
	Avo    int
	Crit   int
	Ddg    int

	// Skillable is cleared by skills that forbid other skills on this attack.
	Skillable bool
	Counter   bool
	FollowUp  bool
	// Lethal attacks that connect deal the target's remaining HP.
	Lethal bool
	// Negated attacks that connect deal no damage.
	Negated bool

	// Tags name the skills that touched this attack.
	Tags []string
}

// HasTag reports whether a skill already tagged the attack.
func (a *Attack) HasTag(tag string) bool {
	return slices.Contains(a.Tags, tag)
}

// Tag records that a skill touched the attack.
func (a *Attack) Tag(tag string) {
	if !a.HasTag(tag) {
		a.Tags = append(a.Tags, tag)
	}
}

// Clone returns a copy of a with its own tag slice.
func (a *Attack) Clone() *Attack {
	c := *a
	c.Tags = slices.Clone(a.Tags)
	return &c
}

// Chain is the ordered sequence of attacks of one combat. Skills may insert
// attacks right after an existing one or cut attacks out while the chain
// is being walked; walkers index it and re-read Len on every step.
type Chain struct {
	attacks []*Attack
}

// NewChain builds a chain from attacks in order.
func NewChain(attacks ...*Attack) *Chain {
	return &Chain{attacks: attacks}
}

// Len is the number of attacks still in the chain.
func (c *Chain) Len() int { return len(c.attacks) }

// At returns the i-th attack.
func (c *Chain) At(i int) *Attack { return c.attacks[i] }

// Attacks returns a snapshot of the chain in order.
func (c *Chain) Attacks() []*Attack { return slices.Clone(c.attacks) }

// First returns the first attack, or nil for an empty chain.
func (c *Chain) First() *Attack {
	if len(c.attacks) == 0 {
		return nil
	}
	return c.attacks[0]
}

// Last returns the last attack, or nil for an empty chain.
func (c *Chain) Last() *Attack {
	if len(c.attacks) == 0 {
		return nil
	}
	return c.attacks[len(c.attacks)-1]
}

// Index returns the position of a, or -1.
func (c *Chain) Index(a *Attack) int {
	return slices.Index(c.attacks, a)
}

// Append adds a to the end of the chain.
func (c *Chain) Append(a *Attack) {
	c.attacks = append(c.attacks, a)
}

// InsertAfter places next immediately after at; everything that followed at
// now follows next. If at is not in the chain, next is appended.
func (c *Chain) InsertAfter(at, next *Attack) {
	i := c.Index(at)
	if i < 0 {
		c.Append(next)
		return
	}
	c.attacks = slices.Insert(c.attacks, i+1, next)
}

// Remove cuts a out of the chain. It reports whether a was present.
func (c *Chain) Remove(a *Attack) bool {
	i := c.Index(a)
	if i < 0 {
		return false
	}
	c.attacks = slices.Delete(c.attacks, i, i+1)
	return true
}

// RemoveIf cuts every attack matching drop and returns how many were removed.
func (c *Chain) RemoveIf(drop func(*Attack) bool) int {
	before := len(c.attacks)
	c.attacks = slices.DeleteFunc(c.attacks, drop)
	return before - len(c.attacks)
}

// TruncateAfter drops every attack following a.
func (c *Chain) TruncateAfter(a *Attack) {
	if i := c.Index(a); i >= 0 {
		clear(c.attacks[i+1:])
		c.attacks = c.attacks[:i+1]
	}
}

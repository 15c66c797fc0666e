package skill

import (
	"cmp"
	"slices"

	"github.com/udisondev/linkarena/internal/model"
)

// Accumulate lists every skill u currently carries, in source order:
// personal, class, equipped weapons, equipped items, extra, temporary.
// A skill reachable from two sources appears twice.
func Accumulate(u *model.ActiveUnit) []*model.Skill {
	b := u.Template
	var out []*model.Skill
	if b.Unit != nil {
		out = append(out, b.Unit.Skills...)
	}
	if b.Class != nil {
		out = append(out, b.Class.Skills...)
	}
	for _, w := range u.EquippedWeapons() {
		out = append(out, w.Template.Skills...)
	}
	for _, it := range u.EquippedItems() {
		out = append(out, it.Template.Skills...)
	}
	out = append(out, b.ExtraSkills...)
	out = append(out, u.TempSkills...)
	return out
}

// AccumulateBuilt lists the skills a built unit carries before deployment:
// personal, class and extra.
func AccumulateBuilt(b *model.BuiltUnit) []*model.Skill {
	var out []*model.Skill
	if b.Unit != nil {
		out = append(out, b.Unit.Skills...)
	}
	if b.Class != nil {
		out = append(out, b.Class.Skills...)
	}
	return append(out, b.ExtraSkills...)
}

// Having keeps the skills that declare an effect at h.
func Having(skills []*model.Skill, h Hook) []*model.Skill {
	var out []*model.Skill
	for _, sk := range skills {
		if h.Effect(sk) != "" {
			out = append(out, sk)
		}
	}
	return out
}

// ByPriority returns skills sorted by descending priority, stable within ties.
func ByPriority(skills []*model.Skill) []*model.Skill {
	out := slices.Clone(skills)
	slices.SortStableFunc(out, func(a, b *model.Skill) int { return cmp.Compare(b.Priority, a.Priority) })
	return out
}

// Invocation is one scheduled skill call. Second is set when the skill
// belongs to the second participant.
type Invocation struct {
	Skill  *model.Skill
	Second bool
}

// Interleave merges two skill sets into one call order by descending
// priority. Ties go to the first participant.
func Interleave(first, second []*model.Skill) []Invocation {
	a, b := ByPriority(first), ByPriority(second)
	out := make([]Invocation, 0, len(a)+len(b))
	for len(a) > 0 && len(b) > 0 {
		if b[0].Priority > a[0].Priority {
			out = append(out, Invocation{Skill: b[0], Second: true})
			b = b[1:]
			continue
		}
		out = append(out, Invocation{Skill: a[0]})
		a = a[1:]
	}
	for _, sk := range a {
		out = append(out, Invocation{Skill: sk})
	}
	for _, sk := range b {
		out = append(out, Invocation{Skill: sk, Second: true})
	}
	return out
}

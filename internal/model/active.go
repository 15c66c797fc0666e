package model

// ActiveWeapon is a live weapon instance inside an arena.
type ActiveWeapon struct {
	ID          int             `json:"id"`
	Template    *WeaponTemplate `json:"template"`
	Uses        int             `json:"uses"`
	InventoryID int             `json:"inventory_id"`
	Equipped    bool            `json:"equipped"`
}

// Broken reports whether the weapon has run out of uses. Unbreakable weapons carry -1.
func (w *ActiveWeapon) Broken() bool {
	return w.Uses == 0
}

// ActiveItem is a live item instance inside an arena.
type ActiveItem struct {
	ID          int           `json:"id"`
	Template    *ItemTemplate `json:"template"`
	Uses        int           `json:"uses"`
	InventoryID int           `json:"inventory_id"`
	Equipped    bool          `json:"equipped"`
}

// ActiveUnit is a built unit deployed into an arena, with live HP,
// transient stat modifiers and its own inventory.
type ActiveUnit struct {
	ID         int                `json:"id"`
	Template   *BuiltUnit         `json:"template"`
	CurrentHP  int                `json:"current_hp"`
	Mods       StatBlock          `json:"mods"`
	RankMods   map[WeaponType]int `json:"rank_mods,omitempty"`
	Weapons    []*ActiveWeapon    `json:"weapons"`
	Items      []*ActiveItem      `json:"items"`
	TempSkills []*Skill           `json:"temp_skills,omitempty"`
	// Restricted holds action kinds the unit may not take this turn.
	Restricted map[string]bool `json:"restricted,omitempty"`
	// SkillData is per-skill scratch state keyed by skill name and slot,
	// e.g. poison counters or a weapon template to restore after combat.
	SkillData map[string]int `json:"skill_data,omitempty"`
}

// Name returns the display name of the unit.
func (u *ActiveUnit) Name() string {
	return u.Template.DisplayName()
}

// Class returns the unit's current class.
func (u *ActiveUnit) Class() *ClassTemplate {
	return u.Template.Class
}

// EquippedWeapons returns every weapon flagged as equipped.
func (u *ActiveUnit) EquippedWeapons() []*ActiveWeapon {
	var out []*ActiveWeapon
	for _, w := range u.Weapons {
		if w.Equipped {
			out = append(out, w)
		}
	}
	return out
}

// EquippedWeapon returns the first equipped weapon or nil.
func (u *ActiveUnit) EquippedWeapon() *ActiveWeapon {
	for _, w := range u.Weapons {
		if w.Equipped {
			return w
		}
	}
	return nil
}

// EquippedItems returns every item flagged as equipped.
func (u *ActiveUnit) EquippedItems() []*ActiveItem {
	var out []*ActiveItem
	for _, it := range u.Items {
		if it.Equipped {
			out = append(out, it)
		}
	}
	return out
}

// Weapon looks up a held weapon by id.
func (u *ActiveUnit) Weapon(id int) *ActiveWeapon {
	for _, w := range u.Weapons {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Item looks up a held item by id.
func (u *ActiveUnit) Item(id int) *ActiveItem {
	for _, it := range u.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// InventorySize is the number of occupied inventory slots.
func (u *ActiveUnit) InventorySize() int {
	return len(u.Weapons) + len(u.Items)
}

// HasTempSkill reports whether a temporary skill with the given name is attached.
func (u *ActiveUnit) HasTempSkill(name string) bool {
	for _, s := range u.TempSkills {
		if s.Name == name {
			return true
		}
	}
	return false
}

// AddTempSkill attaches s unless a skill with the same name is already attached.
func (u *ActiveUnit) AddTempSkill(s *Skill) {
	if u.HasTempSkill(s.Name) {
		return
	}
	u.TempSkills = append(u.TempSkills, s)
}

// RemoveTempSkill detaches every temporary skill with the given name.
func (u *ActiveUnit) RemoveTempSkill(name string) {
	kept := u.TempSkills[:0]
	for _, s := range u.TempSkills {
		if s.Name != name {
			kept = append(kept, s)
		}
	}
	u.TempSkills = kept
}

// Restrict forbids an action kind for the rest of the turn.
func (u *ActiveUnit) Restrict(kind string) {
	if u.Restricted == nil {
		u.Restricted = make(map[string]bool)
	}
	u.Restricted[kind] = true
}

// IsRestricted reports whether an action kind is currently forbidden.
func (u *ActiveUnit) IsRestricted(kind string) bool {
	return u.Restricted[kind]
}

// ClearRestrictions lifts every restriction.
func (u *ActiveUnit) ClearRestrictions() {
	u.Restricted = nil
}

// Data returns scratch state stored under key.
func (u *ActiveUnit) Data(key string) (int, bool) {
	v, ok := u.SkillData[key]
	return v, ok
}

// SetData stores scratch state under key.
func (u *ActiveUnit) SetData(key string, v int) {
	if u.SkillData == nil {
		u.SkillData = make(map[string]int)
	}
	u.SkillData[key] = v
}

// ClearData removes scratch state stored under key.
func (u *ActiveUnit) ClearData(key string) {
	delete(u.SkillData, key)
}

// ActiveTeam is a built team deployed into an arena.
type ActiveTeam struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Owner     string        `json:"owner"`
	Tactician Tactician     `json:"tactician"`
	Units     []*ActiveUnit `json:"units"`
	Score     int           `json:"score"`
}

// Has reports whether u belongs to the team.
func (t *ActiveTeam) Has(u *ActiveUnit) bool {
	if t == nil || u == nil {
		return false
	}
	for _, m := range t.Units {
		if m.ID == u.ID {
			return true
		}
	}
	return false
}

// Remove drops u from the roster.
func (t *ActiveTeam) Remove(u *ActiveUnit) {
	kept := t.Units[:0]
	for _, m := range t.Units {
		if m.ID != u.ID {
			kept = append(kept, m)
		}
	}
	t.Units = kept
}

// Empty reports whether the team has no units left.
func (t *ActiveTeam) Empty() bool {
	return t == nil || len(t.Units) == 0
}

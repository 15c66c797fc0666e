// Package actionlog defines the effect records produced by combat and arena
// actions. The records are the wire contract consumed by presentation
// layers: each encodes as a JSON object tagged with an "action" field
// followed by its own fields.
package actionlog

import "github.com/udisondev/linkarena/internal/model"

// Record is one entry of an action log.
type Record interface {
	Action() string
}

// Log is an ordered sequence of records.
type Log []Record

// Turn flow.

type BeginTurn struct{}

type EndTurn struct{}

type ContinueTurn struct{}

type ChangeTurn struct {
	Turn int `json:"turn"`
}

type ChangePhase struct {
	Phase int `json:"phase"`
}

// Victory names the winning team, or null when every team was wiped out.
type Victory struct {
	Team  *int `json:"team"`
	Turns int  `json:"turns"`
}

type Wait struct{}

// Equipment and inventory.

type EquipWeapon struct {
	Unit   int `json:"unit"`
	Weapon int `json:"weapon"`
}

type UnequipWeapon struct {
	Unit   int `json:"unit"`
	Weapon int `json:"weapon"`
}

type EquipItem struct {
	Unit int `json:"unit"`
	Item int `json:"item"`
}

type UnequipItem struct {
	Unit int `json:"unit"`
	Item int `json:"item"`
}

type ChangeWeaponInventoryID struct {
	Unit   int `json:"unit"`
	Weapon int `json:"weapon"`
	NewID  int `json:"new_id"`
}

type ChangeItemInventoryID struct {
	Unit  int `json:"unit"`
	Item  int `json:"item"`
	NewID int `json:"new_id"`
}

type ChangeWeaponUses struct {
	Weapon  int `json:"weapon"`
	NewUses int `json:"new_uses"`
}

type ChangeItemUses struct {
	Item    int `json:"item"`
	NewUses int `json:"new_uses"`
}

type RemoveWeapon struct {
	Weapon int `json:"weapon"`
	Unit   int `json:"unit"`
}

type RemoveItem struct {
	Item int `json:"item"`
	Unit int `json:"unit"`
}

// ReplaceWeapon carries the full state of a weapon instance whose template
// was swapped, usually because it broke into its successor.
type ReplaceWeapon struct {
	Weapon  int        `json:"weapon"`
	NewData WeaponView `json:"new_data"`
}

type StealItem struct {
	Unit int `json:"unit"`
	From int `json:"from"`
	Item int `json:"item"`
}

// Skills.

type EffectiveAttacks struct {
	Unit int `json:"unit"`
}

// ActivateSkill announces a skill firing. Data is skill specific and may be
// a string, a number or null; Show tells clients whether to animate it.
type ActivateSkill struct {
	Skill string `json:"skill"`
	Data  any    `json:"data"`
	Show  bool   `json:"show"`
}

// Combat.

// StartCombat is the forecast shown before the first attack. Displayed
// values are clamped to [0, 100].
type StartCombat struct {
	Attacker              int  `json:"attacker"`
	AttackerWeapon        int  `json:"attacker_weapon"`
	AttackerDisplayedDmg  int  `json:"attacker_displayed_dmg"`
	AttackerDisplayedHit  int  `json:"attacker_displayed_hit"`
	AttackerDisplayedCrit int  `json:"attacker_displayed_crit"`
	AttackerDisplayedAtk  int  `json:"attacker_displayed_atk"`
	AttackerDisplayedPrt  int  `json:"attacker_displayed_prt"`
	AttackerDisplayedRsl  int  `json:"attacker_displayed_rsl"`
	Defender              int  `json:"defender"`
	DefenderWeapon        *int `json:"defender_weapon"`
	DefenderDisplayedDmg  int  `json:"defender_displayed_dmg"`
	DefenderDisplayedHit  int  `json:"defender_displayed_hit"`
	DefenderDisplayedCrit int  `json:"defender_displayed_crit"`
	DefenderDisplayedAtk  int  `json:"defender_displayed_atk"`
	DefenderDisplayedPrt  int  `json:"defender_displayed_prt"`
	DefenderDisplayedRsl  int  `json:"defender_displayed_rsl"`
}

type EndCombat struct {
	AttackerTeam     int `json:"attacker_team"`
	PointsToAttacker int `json:"points_to_attacker"`
	DefenderTeam     int `json:"defender_team"`
	PointsToDefender int `json:"points_to_defender"`
}

// Attack is the outcome of one node of the attack chain. Skills lists the
// tags of every skill that touched the attack.
type Attack struct {
	ByUnit      int      `json:"by_unit"`
	Weapon      int      `json:"weapon"`
	AgainstUnit int      `json:"against_unit"`
	Miss        bool     `json:"miss"`
	Crit        bool     `json:"crit"`
	Dmg         int      `json:"dmg"`
	Skills      []string `json:"skills"`
}

type RestoreHealth struct {
	Unit   int `json:"unit"`
	Health int `json:"health"`
}

type KillUnit struct {
	Team int `json:"team"`
	Unit int `json:"unit"`
}

type PointsForSurvival struct {
	Unit int `json:"unit"`
	Team int `json:"team"`
}

func (BeginTurn) Action() string               { return "begin_turn" }
func (EndTurn) Action() string                 { return "end_turn" }
func (ContinueTurn) Action() string            { return "continue_turn" }
func (ChangeTurn) Action() string              { return "change_turn" }
func (ChangePhase) Action() string             { return "change_phase" }
func (Victory) Action() string                 { return "victory" }
func (Wait) Action() string                    { return "wait" }
func (EquipWeapon) Action() string             { return "equip_weapon" }
func (UnequipWeapon) Action() string           { return "unequip_weapon" }
func (EquipItem) Action() string               { return "equip_item" }
func (UnequipItem) Action() string             { return "unequip_item" }
func (ChangeWeaponInventoryID) Action() string { return "change_weapon_inventory_id" }
func (ChangeItemInventoryID) Action() string   { return "change_item_inventory_id" }
func (ChangeWeaponUses) Action() string        { return "change_weapon_uses" }
func (ChangeItemUses) Action() string          { return "change_item_uses" }
func (RemoveWeapon) Action() string            { return "remove_weapon" }
func (RemoveItem) Action() string              { return "remove_item" }
func (ReplaceWeapon) Action() string           { return "replace_weapon" }
func (StealItem) Action() string               { return "steal_item" }
func (EffectiveAttacks) Action() string        { return "effective_attacks" }
func (ActivateSkill) Action() string           { return "activate_skill" }
func (StartCombat) Action() string             { return "start_combat" }
func (EndCombat) Action() string               { return "end_combat" }
func (Attack) Action() string                  { return "attack" }
func (RestoreHealth) Action() string           { return "restore_health" }
func (KillUnit) Action() string                { return "kill_unit" }
func (PointsForSurvival) Action() string       { return "points_for_survival" }

// WeaponView is the client-facing state of a weapon instance.
type WeaponView struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	InventoryID int              `json:"inventory_id"`
	DamageType  model.DamageType `json:"damage_type"`
	WeaponType  model.WeaponType `json:"weapon_type"`
	Rank        model.WeaponRank `json:"rank"`
	Prf         []string         `json:"prf"`
	Mt          int              `json:"mt"`
	Hit         int              `json:"hit"`
	Crit        int              `json:"crit"`
	MinRange    int              `json:"min_range"`
	MaxRange    int              `json:"max_range"`
	Wt          int              `json:"wt"`
	TotalUses   int              `json:"total_uses"`
	CurrentUses int              `json:"current_uses"`
	Usable      bool             `json:"usable"`
	Equipped    bool             `json:"equipped"`
	Skills      []string         `json:"skills"`
}

// NewWeaponView snapshots w.
func NewWeaponView(w *model.ActiveWeapon) WeaponView {
	t := w.Template
	skills := make([]string, 0, len(t.Skills))
	for _, s := range t.Skills {
		skills = append(skills, s.Name)
	}
	return WeaponView{
		ID:          w.ID,
		Name:        t.Name,
		Description: t.Description,
		InventoryID: w.InventoryID,
		DamageType:  t.DamageType,
		WeaponType:  t.Type,
		Rank:        t.Rank,
		Prf:         t.PrfUsers,
		Mt:          t.Mt,
		Hit:         t.Hit,
		Crit:        t.Crit,
		MinRange:    t.MinRange,
		MaxRange:    t.MaxRange,
		Wt:          t.Wt,
		TotalUses:   t.Uses,
		CurrentUses: w.Uses,
		Usable:      t.Usable,
		Equipped:    w.Equipped,
		Skills:      skills,
	}
}

package model

// Action kinds a phase request may carry. They double as the keys of
// ActiveUnit.Restricted.
const (
	ActionEquipWeapon   = "equip_weapon"
	ActionEquipItem     = "equip_item"
	ActionDiscardWeapon = "discard_weapon"
	ActionDiscardItem   = "discard_item"
	ActionAttack        = "attack"
	ActionUseWeapon     = "use_weapon"
	ActionUseItem       = "use_item"
	ActionUseSkill      = "use_skill"
	ActionWait          = "wait"
)

// ActionKinds lists every action kind.
var ActionKinds = []string{
	ActionEquipWeapon, ActionEquipItem, ActionDiscardWeapon, ActionDiscardItem,
	ActionAttack, ActionUseWeapon, ActionUseItem, ActionUseSkill, ActionWait,
}

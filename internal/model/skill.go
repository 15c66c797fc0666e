package model

// Skill is catalog data for an ability. Each hook field names the effect
// run at that extension point; an empty name means the skill does nothing there.
type Skill struct {
	ID          int    `yaml:"id" toml:"id" json:"id"`
	Name        string `yaml:"name" toml:"name" json:"name"`
	Description string `yaml:"description" toml:"description" json:"description,omitempty"`
	Priority    int    `yaml:"priority" toml:"priority" json:"priority"`
	// Param feeds skill-dependent values such as an effectiveness multiplier
	// or the id of a replacement weapon template.
	Param int `yaml:"param" toml:"param" json:"param,omitempty"`

	Passive        string `yaml:"passive" toml:"passive" json:"passive,omitempty"`
	OnEquip        string `yaml:"on_equip" toml:"on_equip" json:"on_equip,omitempty"`
	OnDequip       string `yaml:"on_dequip" toml:"on_dequip" json:"on_dequip,omitempty"`
	OnUse          string `yaml:"on_use" toml:"on_use" json:"on_use,omitempty"`
	BeforeAttack   string `yaml:"before_attack" toml:"before_attack" json:"before_attack,omitempty"`
	AfterAttack    string `yaml:"after_attack" toml:"after_attack" json:"after_attack,omitempty"`
	BeforeAttacked string `yaml:"before_attacked" toml:"before_attacked" json:"before_attacked,omitempty"`
	AfterAttacked  string `yaml:"after_attacked" toml:"after_attacked" json:"after_attacked,omitempty"`
	BeforeCombat   string `yaml:"before_combat" toml:"before_combat" json:"before_combat,omitempty"`
	AfterCombat    string `yaml:"after_combat" toml:"after_combat" json:"after_combat,omitempty"`
	TurnStart      string `yaml:"turn_start" toml:"turn_start" json:"turn_start,omitempty"`
	TurnEnd        string `yaml:"turn_end" toml:"turn_end" json:"turn_end,omitempty"`
	UnitTurnEnd    string `yaml:"unit_turn_end" toml:"unit_turn_end" json:"unit_turn_end,omitempty"`
	OnBuild        string `yaml:"on_build" toml:"on_build" json:"on_build,omitempty"`
}

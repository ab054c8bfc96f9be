// Package sheet defines the character-sheet document model: the root
// aggregate that is reduced, derived from, snapshotted and persisted.
package sheet

// StatKey identifies one of the six core attributes.
type StatKey string

const (
	STR StatKey = "STR"
	DEX StatKey = "DEX"
	CON StatKey = "CON"
	INT StatKey = "INT"
	WIS StatKey = "WIS"
	CHA StatKey = "CHA"
)

// StatKeys lists the attributes in display order.
var StatKeys = []StatKey{STR, DEX, CON, INT, WIS, CHA}

// Version is the document schema tag written into new documents.
const Version = "1.2.0"

// Character holds identity and base attributes.
type Character struct {
	ID                       string           `json:"id" yaml:"id"`
	Name                     string           `json:"name" yaml:"name"`
	Race                     string           `json:"race" yaml:"race"`
	Class                    string           `json:"class" yaml:"class"`
	Level                    int              `json:"level" yaml:"level"`
	Exp                      int              `json:"exp" yaml:"exp"`
	Inspiration              int              `json:"inspiration" yaml:"inspiration"`
	SaveDC                   int              `json:"save_dc" yaml:"save_dc"`
	Stats                    map[StatKey]int  `json:"stats" yaml:"stats"`
	SkillProficiencies       map[string]bool  `json:"skill_proficiencies" yaml:"skill_proficiencies"`
	SavingThrowProficiencies map[StatKey]bool `json:"saving_throw_proficiencies" yaml:"saving_throw_proficiencies"`
	Background               string           `json:"background" yaml:"background"`
}

// Equipment holds the fixed equipment slots. A nil slot is empty.
type Equipment struct {
	Slots map[Slot]*EquipmentItem `json:"slots" yaml:"slots"`
}

// Slot names a fixed equipment location.
type Slot string

const (
	SlotHead      Slot = "head"
	SlotChest     Slot = "chest"
	SlotHands     Slot = "hands"
	SlotFeet      Slot = "feet"
	SlotWeapon    Slot = "weapon"
	SlotOffhand   Slot = "offhand"
	SlotAccessory Slot = "accessory"
)

// Slots lists every equipment slot.
var Slots = []Slot{SlotHead, SlotChest, SlotHands, SlotFeet, SlotWeapon, SlotOffhand, SlotAccessory}

// ValidSlot reports whether s is one of the fixed equipment slots.
func ValidSlot(s Slot) bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// Condition is a named status effect. Name is the unique key within the
// conditions list.
type Condition struct {
	Name       string `json:"name" yaml:"name"`
	Stacks     int    `json:"stacks" yaml:"stacks"`
	RoundsLeft int    `json:"rounds_left" yaml:"rounds_left"`
}

// CombatFeature is a passive combat trait.
type CombatFeature struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Pinned      bool   `json:"pinned,omitempty" yaml:"pinned,omitempty"`
}

// SkillSource distinguishes built-in skills from user-created ones.
type SkillSource string

const (
	SourceSystem SkillSource = "system"
	SourceCustom SkillSource = "custom"
)

// CooldownSkill is an activatable ability gated by a turn-based countdown.
// CurrentCD counts down from BaseCD to 0; 0 means ready.
type CooldownSkill struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	BaseCD      int         `json:"base_cd" yaml:"base_cd"`
	CurrentCD   int         `json:"current_cd" yaml:"current_cd"`
	Description string      `json:"description" yaml:"description"`
	Damage      string      `json:"damage,omitempty" yaml:"damage,omitempty"`
	Source      SkillSource `json:"source" yaml:"source"`
	IsArchived  bool        `json:"isArchived" yaml:"is_archived"`
}

// Ready reports whether the skill can be cast this turn.
func (s CooldownSkill) Ready() bool {
	return s.CurrentCD == 0
}

// Combat is the live combat-session sub-document.
type Combat struct {
	HPMax          int             `json:"hp_max" yaml:"hp_max"`
	HPCurrent      int             `json:"hp_current" yaml:"hp_current"`
	HPTemp         int             `json:"hp_temp" yaml:"hp_temp"`
	StaminaCurrent int             `json:"stamina_current" yaml:"stamina_current"`
	SaveDC         int             `json:"save_dc" yaml:"save_dc"`
	Inspiration    int             `json:"inspiration" yaml:"inspiration"`
	Others         map[string]any  `json:"others" yaml:"others"`
	Conditions     []Condition     `json:"conditions" yaml:"conditions"`
	Features       []CombatFeature `json:"features" yaml:"features"`
	CooldownSkills []CooldownSkill `json:"cooldown_skills" yaml:"cooldown_skills"`
	TurnCount      int             `json:"turn_count" yaml:"turn_count"`
}

// OtherKeyAC is the well-known "others" key for armor class.
const OtherKeyAC = "AC"

// ArmorClass returns the AC entry from the open combat attribute map,
// or the fallback when absent or not numeric.
func (c Combat) ArmorClass(fallback int) int {
	switch v := c.Others[OtherKeyAC].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// Condition returns the condition with the given name, if present.
func (c Combat) Condition(name string) (Condition, bool) {
	for _, cond := range c.Conditions {
		if cond.Name == name {
			return cond, true
		}
	}
	return Condition{}, false
}

// Skill returns the cooldown skill with the given id, if present.
func (c Combat) Skill(id string) (CooldownSkill, bool) {
	for _, s := range c.CooldownSkills {
		if s.ID == id {
			return s, true
		}
	}
	return CooldownSkill{}, false
}

// Document is the root character-sheet aggregate: the unit of reduction,
// undo and persistence. The undo buffer is held alongside the document by
// the engine, never embedded in it.
type Document struct {
	Version         string                  `json:"version" yaml:"version"`
	Character       Character               `json:"character" yaml:"character"`
	Equipment       Equipment               `json:"equipment" yaml:"equipment"`
	Inventory       []InventoryItem         `json:"inventory" yaml:"inventory"`
	Spells          []Spell                 `json:"spells" yaml:"spells"`
	CharacterSpells []CharacterSpellMetadata `json:"characterSpells" yaml:"character_spells"`
	Combat          Combat                  `json:"combat" yaml:"combat"`
}

// InventoryItem returns the inventory entry with the given id, if present.
func (d Document) InventoryItem(id string) (InventoryItem, bool) {
	for _, it := range d.Inventory {
		if it.ID == id {
			return it, true
		}
	}
	return InventoryItem{}, false
}

// Equipped returns the item in the given slot, or nil when empty.
func (d Document) Equipped(slot Slot) *EquipmentItem {
	if d.Equipment.Slots == nil {
		return nil
	}
	return d.Equipment.Slots[slot]
}

// SpellMetadata returns the per-character overlay for a spell id, if present.
func (d Document) SpellMetadata(spellID string) (CharacterSpellMetadata, bool) {
	for _, cs := range d.CharacterSpells {
		if cs.SpellID == spellID {
			return cs, true
		}
	}
	return CharacterSpellMetadata{}, false
}

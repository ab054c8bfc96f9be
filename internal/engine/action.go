// Package engine holds the state-transition core: the action catalog and
// the pure reducer that maps a prior state plus an action to the next
// state, maintaining a single-level undo buffer.
package engine

import "github.com/lunarhall/chronicle/internal/sheet"

// Action is a discrete state transition request. Risky actions capture an
// undo snapshot of the pre-action document before being applied.
type Action interface {
	Risky() bool
}

// risky and safe are embeddable markers for the two action classes.
type risky struct{}

func (risky) Risky() bool { return true }

type safe struct{}

func (safe) Risky() bool { return false }

// SetState replaces the whole document. Used by archive load and
// reset-to-seed; it is a jump, not an undoable step, and clears the
// undo buffer.
type SetState struct {
	safe
	Doc sheet.Document
}

// UpdateCharacter shallow-merges the patch into the character sub-document.
type UpdateCharacter struct {
	safe
	Patch CharacterPatch
}

// UpdateCombat shallow-merges the patch into the combat sub-document.
type UpdateCombat struct {
	risky
	Patch CombatPatch
}

// UpdateCondition upserts or removes the condition named Name. A nil
// Updates removes it; otherwise an existing condition is merged in place
// and a missing one is inserted with stacks 1 and rounds_left 0 before the
// patch applies. Name is the unique key, so no duplicates arise.
type UpdateCondition struct {
	safe
	Name    string
	Updates *ConditionPatch
}

// Undo restores the buffered prior document, if any.
type Undo struct{ safe }

// EndTurn advances the turn counter, ticks down cooldowns and condition
// timers, and expires conditions with neither rounds nor stacks left.
type EndTurn struct{ risky }

// CastSkill puts the identified skill on full cooldown. The reducer does
// not gate on the current cooldown; "can I cast" is the caller's concern.
type CastSkill struct {
	risky
	ID string
}

// ResetSkills clears every skill's cooldown.
type ResetSkills struct{ risky }

// EquipItem places Item into Slot, moving any displaced item to the
// inventory and removing the incoming item from it. A nil Item clears the
// slot.
type EquipItem struct {
	risky
	Slot sheet.Slot
	Item *sheet.EquipmentItem
}

// UnequipItem clears Slot and returns its item to the inventory.
type UnequipItem struct {
	risky
	Slot sheet.Slot
}

// AddInventoryItem appends an item to the inventory.
type AddInventoryItem struct {
	safe
	Item sheet.InventoryItem
}

// UpdateInventoryItem patches the inventory entry with the given id.
type UpdateInventoryItem struct {
	safe
	ID    string
	Patch InventoryPatch
}

// DeleteInventoryItem removes the inventory entry with the given id.
type DeleteInventoryItem struct {
	safe
	ID string
}

// AddSkill appends a cooldown skill to the roster.
type AddSkill struct {
	risky
	Skill sheet.CooldownSkill
}

// UpdateSkill patches the skill with the given id.
type UpdateSkill struct {
	risky
	ID    string
	Patch SkillPatch
}

// DeleteSkill removes the skill with the given id. System-sourced skills
// are protected from hard deletion; archiving is the supported way to hide
// them.
type DeleteSkill struct {
	risky
	ID string
}

// ArchiveSkill toggles the archived flag on the skill with the given id.
type ArchiveSkill struct {
	risky
	ID       string
	Archived bool
}

// AddPassive appends a combat feature.
type AddPassive struct {
	risky
	Feature sheet.CombatFeature
}

// UpdatePassive patches the combat feature with the given id.
type UpdatePassive struct {
	risky
	ID    string
	Patch PassivePatch
}

// DeletePassive removes the combat feature with the given id.
type DeletePassive struct {
	risky
	ID string
}

// DuplicatePassive clones the combat feature with the given id under a
// fresh id and a "(Copy)" name suffix.
type DuplicatePassive struct {
	risky
	ID string
}

// UpdateCharacterSpell upserts the per-character spell overlay by spell id.
type UpdateCharacterSpell struct {
	safe
	Metadata sheet.CharacterSpellMetadata
}

// AddSpells appends a batch of spells to the catalog, e.g. from an import.
type AddSpells struct {
	safe
	Spells []sheet.Spell
}

// CharacterPatch is a partial update of the character sub-document. Nil
// fields are left unchanged; non-nil maps replace the existing map whole,
// matching shallow-merge semantics.
type CharacterPatch struct {
	Name                     *string
	Race                     *string
	Class                    *string
	Level                    *int
	Exp                      *int
	Inspiration              *int
	SaveDC                   *int
	Background               *string
	Stats                    map[sheet.StatKey]int
	SkillProficiencies       map[string]bool
	SavingThrowProficiencies map[sheet.StatKey]bool
}

// CombatPatch is a partial update of the combat sub-document.
type CombatPatch struct {
	HPMax          *int
	HPCurrent      *int
	HPTemp         *int
	StaminaCurrent *int
	SaveDC         *int
	Inspiration    *int
	TurnCount      *int
	Others         map[string]any
}

// ConditionPatch is a partial update of a condition.
type ConditionPatch struct {
	Stacks     *int
	RoundsLeft *int
}

// SkillPatch is a partial update of a cooldown skill.
type SkillPatch struct {
	Name        *string
	Description *string
	Damage      *string
	BaseCD      *int
	CurrentCD   *int
	IsArchived  *bool
}

// PassivePatch is a partial update of a combat feature.
type PassivePatch struct {
	Name        *string
	Description *string
	Pinned      *bool
}

// InventoryPatch is a partial update of an inventory entry. Non-nil slices
// and maps replace the existing value whole.
type InventoryPatch struct {
	Name           *string
	Type           *string
	Description    *string
	Quantity       *int
	StatBonus      map[sheet.StatKey]int
	OtherModifiers []sheet.ItemModifier
	Tags           []string
}

package engine

import (
	"github.com/google/uuid"

	"github.com/lunarhall/chronicle/internal/sheet"
)

// State is the reducer's unit of work: the live document plus the optional
// single-level undo buffer held alongside it. The buffered document never
// carries a buffer of its own.
type State struct {
	Doc     sheet.Document
	History *sheet.Document
}

// NewState wraps a document with an empty undo buffer.
func NewState(doc sheet.Document) State {
	return State{Doc: doc}
}

// CanUndo reports whether an undo buffer is available.
func (s State) CanUndo() bool {
	return s.History != nil
}

// Reduce applies an action to a state and returns the next state. It is
// pure and total: the inputs are never mutated, unknown or malformed
// actions return the state unchanged, and missing-id references are silent
// no-ops.
func Reduce(s State, action Action) State {
	if action == nil {
		return s
	}

	next := State{Doc: s.Doc.Clone(), History: s.History}
	if action.Risky() {
		// Captured unconditionally, before the action applies, even when
		// the action ends up changing nothing. Last risky action wins.
		snapshot := s.Doc.Clone()
		next.History = &snapshot
	}

	switch a := action.(type) {
	case SetState:
		// A jump, not an undoable step.
		doc := a.Doc.Clone()
		doc.Normalize()
		return State{Doc: doc}

	case Undo:
		if s.History == nil {
			return s
		}
		return State{Doc: s.History.Clone()}

	case UpdateCharacter:
		applyCharacterPatch(&next.Doc.Character, a.Patch)
		return next

	case UpdateCombat:
		applyCombatPatch(&next.Doc.Combat, a.Patch)
		return next

	case UpdateCondition:
		applyConditionUpdate(&next.Doc.Combat, a.Name, a.Updates)
		return next

	case EndTurn:
		endTurn(&next.Doc.Combat)
		return next

	case CastSkill:
		for i := range next.Doc.Combat.CooldownSkills {
			skill := &next.Doc.Combat.CooldownSkills[i]
			if skill.ID == a.ID {
				skill.CurrentCD = skill.BaseCD
			}
		}
		return next

	case ResetSkills:
		for i := range next.Doc.Combat.CooldownSkills {
			next.Doc.Combat.CooldownSkills[i].CurrentCD = 0
		}
		return next

	case EquipItem:
		if !sheet.ValidSlot(a.Slot) {
			return s
		}
		equip(&next.Doc, a.Slot, a.Item)
		return next

	case UnequipItem:
		if !sheet.ValidSlot(a.Slot) {
			return s
		}
		unequip(&next.Doc, a.Slot)
		return next

	case AddInventoryItem:
		item := a.Item.Clone()
		item.Normalize()
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		next.Doc.Inventory = append(next.Doc.Inventory, item)
		return next

	case UpdateInventoryItem:
		for i := range next.Doc.Inventory {
			if next.Doc.Inventory[i].ID == a.ID {
				applyInventoryPatch(&next.Doc.Inventory[i], a.Patch)
			}
		}
		return next

	case DeleteInventoryItem:
		next.Doc.Inventory = deleteInventoryByID(next.Doc.Inventory, a.ID)
		return next

	case AddSkill:
		skill := a.Skill
		if skill.Source == "" {
			skill.Source = sheet.SourceCustom
		}
		clampCooldown(&skill)
		next.Doc.Combat.CooldownSkills = append(next.Doc.Combat.CooldownSkills, skill)
		return next

	case UpdateSkill:
		for i := range next.Doc.Combat.CooldownSkills {
			skill := &next.Doc.Combat.CooldownSkills[i]
			if skill.ID == a.ID {
				applySkillPatch(skill, a.Patch)
				clampCooldown(skill)
			}
		}
		return next

	case DeleteSkill:
		next.Doc.Combat.CooldownSkills = deleteSkillByID(next.Doc.Combat.CooldownSkills, a.ID)
		return next

	case ArchiveSkill:
		for i := range next.Doc.Combat.CooldownSkills {
			skill := &next.Doc.Combat.CooldownSkills[i]
			if skill.ID == a.ID {
				skill.IsArchived = a.Archived
			}
		}
		return next

	case AddPassive:
		next.Doc.Combat.Features = append(next.Doc.Combat.Features, a.Feature)
		return next

	case UpdatePassive:
		for i := range next.Doc.Combat.Features {
			feature := &next.Doc.Combat.Features[i]
			if feature.ID == a.ID {
				applyPassivePatch(feature, a.Patch)
			}
		}
		return next

	case DeletePassive:
		features := next.Doc.Combat.Features[:0]
		for _, f := range next.Doc.Combat.Features {
			if f.ID != a.ID {
				features = append(features, f)
			}
		}
		next.Doc.Combat.Features = features
		return next

	case DuplicatePassive:
		for _, f := range next.Doc.Combat.Features {
			if f.ID == a.ID {
				clone := f
				clone.ID = uuid.NewString()
				clone.Name = f.Name + " (Copy)"
				next.Doc.Combat.Features = append(next.Doc.Combat.Features, clone)
				break
			}
		}
		return next

	case UpdateCharacterSpell:
		for i := range next.Doc.CharacterSpells {
			if next.Doc.CharacterSpells[i].SpellID == a.Metadata.SpellID {
				next.Doc.CharacterSpells[i] = a.Metadata
				return next
			}
		}
		next.Doc.CharacterSpells = append(next.Doc.CharacterSpells, a.Metadata)
		return next

	case AddSpells:
		next.Doc.Spells = append(next.Doc.Spells, a.Spells...)
		return next

	default:
		return s
	}
}

func applyCharacterPatch(c *sheet.Character, p CharacterPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Race != nil {
		c.Race = *p.Race
	}
	if p.Class != nil {
		c.Class = *p.Class
	}
	if p.Level != nil {
		c.Level = *p.Level
	}
	if p.Exp != nil {
		c.Exp = *p.Exp
	}
	if p.Inspiration != nil {
		c.Inspiration = *p.Inspiration
	}
	if p.SaveDC != nil {
		c.SaveDC = *p.SaveDC
	}
	if p.Background != nil {
		c.Background = *p.Background
	}
	if p.Stats != nil {
		c.Stats = sheet.NormalizeStatBonus(p.Stats)
	}
	if p.SkillProficiencies != nil {
		c.SkillProficiencies = copyBoolMap(p.SkillProficiencies)
	}
	if p.SavingThrowProficiencies != nil {
		replacement := make(map[sheet.StatKey]bool, len(p.SavingThrowProficiencies))
		for k, v := range p.SavingThrowProficiencies {
			replacement[k] = v
		}
		c.SavingThrowProficiencies = replacement
	}
}

func applyCombatPatch(c *sheet.Combat, p CombatPatch) {
	if p.HPMax != nil {
		c.HPMax = *p.HPMax
	}
	if p.HPCurrent != nil {
		c.HPCurrent = *p.HPCurrent
	}
	if p.HPTemp != nil {
		c.HPTemp = *p.HPTemp
	}
	if p.StaminaCurrent != nil {
		c.StaminaCurrent = *p.StaminaCurrent
	}
	if p.SaveDC != nil {
		c.SaveDC = *p.SaveDC
	}
	if p.Inspiration != nil {
		c.Inspiration = *p.Inspiration
	}
	if p.TurnCount != nil {
		c.TurnCount = *p.TurnCount
	}
	if p.Others != nil {
		replacement := make(map[string]any, len(p.Others))
		for k, v := range p.Others {
			replacement[k] = v
		}
		c.Others = replacement
	}
}

func applyConditionUpdate(c *sheet.Combat, name string, updates *ConditionPatch) {
	if updates == nil {
		conditions := c.Conditions[:0]
		for _, cond := range c.Conditions {
			if cond.Name != name {
				conditions = append(conditions, cond)
			}
		}
		c.Conditions = conditions
		return
	}

	for i := range c.Conditions {
		if c.Conditions[i].Name == name {
			applyConditionPatch(&c.Conditions[i], *updates)
			return
		}
	}

	inserted := sheet.Condition{Name: name, Stacks: 1, RoundsLeft: 0}
	applyConditionPatch(&inserted, *updates)
	c.Conditions = append(c.Conditions, inserted)
}

func applyConditionPatch(cond *sheet.Condition, p ConditionPatch) {
	if p.Stacks != nil {
		cond.Stacks = *p.Stacks
	}
	if p.RoundsLeft != nil {
		cond.RoundsLeft = *p.RoundsLeft
	}
}

// endTurn advances the turn counter, ticks cooldowns and condition timers
// down to a floor of zero, then drops conditions with neither rounds nor
// stacks remaining. A stacked condition with no timer persists until it is
// explicitly cleared.
func endTurn(c *sheet.Combat) {
	c.TurnCount++
	for i := range c.CooldownSkills {
		if c.CooldownSkills[i].CurrentCD > 0 {
			c.CooldownSkills[i].CurrentCD--
		}
	}
	conditions := c.Conditions[:0]
	for _, cond := range c.Conditions {
		if cond.RoundsLeft > 0 {
			cond.RoundsLeft--
		}
		if cond.RoundsLeft > 0 || cond.Stacks > 0 {
			conditions = append(conditions, cond)
		}
	}
	c.Conditions = conditions
}

// equip moves the displaced slot item (if any) to the inventory, removes
// the incoming item from the inventory by id, and fills the slot. Items
// move, they are never duplicated: an item lives in one slot or in the
// inventory, not both.
func equip(doc *sheet.Document, slot sheet.Slot, item *sheet.EquipmentItem) {
	// Documents that never went through Normalize have no slot map yet.
	if doc.Equipment.Slots == nil {
		doc.Equipment = sheet.EmptyEquipment()
	}
	if displaced := doc.Equipment.Slots[slot]; displaced != nil {
		doc.Inventory = append(doc.Inventory, sheet.InventoryItem{
			EquipmentItem: displaced.Clone(),
			Quantity:      1,
		})
	}
	if item == nil {
		doc.Equipment.Slots[slot] = nil
		return
	}
	doc.Inventory = deleteInventoryByID(doc.Inventory, item.ID)
	equipped := item.Clone()
	equipped.Normalize()
	doc.Equipment.Slots[slot] = &equipped
}

func unequip(doc *sheet.Document, slot sheet.Slot) {
	item := doc.Equipment.Slots[slot]
	if item == nil {
		return
	}
	doc.Equipment.Slots[slot] = nil
	doc.Inventory = append(doc.Inventory, sheet.InventoryItem{
		EquipmentItem: item.Clone(),
		Quantity:      1,
	})
}

func applyInventoryPatch(item *sheet.InventoryItem, p InventoryPatch) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Type != nil {
		item.Type = *p.Type
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.StatBonus != nil {
		item.StatBonus = sheet.NormalizeStatBonus(p.StatBonus)
	}
	if p.OtherModifiers != nil {
		item.OtherModifiers = append([]sheet.ItemModifier(nil), p.OtherModifiers...)
	}
	if p.Tags != nil {
		item.Tags = append([]string(nil), p.Tags...)
	}
}

func applySkillPatch(skill *sheet.CooldownSkill, p SkillPatch) {
	if p.Name != nil {
		skill.Name = *p.Name
	}
	if p.Description != nil {
		skill.Description = *p.Description
	}
	if p.Damage != nil {
		skill.Damage = *p.Damage
	}
	if p.BaseCD != nil {
		skill.BaseCD = *p.BaseCD
	}
	if p.CurrentCD != nil {
		skill.CurrentCD = *p.CurrentCD
	}
	if p.IsArchived != nil {
		skill.IsArchived = *p.IsArchived
	}
}

func applyPassivePatch(feature *sheet.CombatFeature, p PassivePatch) {
	if p.Name != nil {
		feature.Name = *p.Name
	}
	if p.Description != nil {
		feature.Description = *p.Description
	}
	if p.Pinned != nil {
		feature.Pinned = *p.Pinned
	}
}

func clampCooldown(skill *sheet.CooldownSkill) {
	if skill.BaseCD < 0 {
		skill.BaseCD = 0
	}
	if skill.CurrentCD < 0 {
		skill.CurrentCD = 0
	}
	if skill.CurrentCD > skill.BaseCD {
		skill.CurrentCD = skill.BaseCD
	}
}

func deleteInventoryByID(items []sheet.InventoryItem, id string) []sheet.InventoryItem {
	filtered := items[:0]
	for _, it := range items {
		if it.ID != id {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

// deleteSkillByID removes custom skills only. System-sourced skills cannot
// be hard-deleted; archiving is the supported way to hide them.
func deleteSkillByID(skills []sheet.CooldownSkill, id string) []sheet.CooldownSkill {
	filtered := skills[:0]
	for _, s := range skills {
		if s.ID == id && s.Source != sheet.SourceSystem {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// ToggleCondition builds the condition action for the common toggle flow:
// a present stackable condition gains a stack, a present non-stackable one
// is removed, and an absent one is applied fresh with a three-round timer.
func ToggleCondition(doc sheet.Document, catalog *sheet.ConditionCatalog, name string) Action {
	stacks := 1
	rounds := 3
	existing, ok := doc.Combat.Condition(name)
	if !ok {
		return UpdateCondition{Name: name, Updates: &ConditionPatch{Stacks: &stacks, RoundsLeft: &rounds}}
	}
	if catalog != nil && catalog.Stackable(name) {
		stacks = existing.Stacks + 1
		return UpdateCondition{Name: name, Updates: &ConditionPatch{Stacks: &stacks}}
	}
	return UpdateCondition{Name: name, Updates: nil}
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

package sheet

// Clone returns a deep copy of the document. Reducer transitions and
// archive snapshots both rely on copies never sharing slices or maps with
// the original.
func (d Document) Clone() Document {
	out := d
	out.Character = d.Character.clone()
	out.Equipment = d.Equipment.clone()
	out.Inventory = cloneInventory(d.Inventory)
	out.Spells = cloneSpells(d.Spells)
	out.CharacterSpells = cloneSlice(d.CharacterSpells)
	out.Combat = d.Combat.clone()
	return out
}

func (c Character) clone() Character {
	out := c
	out.Stats = cloneStatMap(c.Stats)
	out.SkillProficiencies = cloneBoolMap(c.SkillProficiencies)
	out.SavingThrowProficiencies = cloneStatBoolMap(c.SavingThrowProficiencies)
	return out
}

func (e Equipment) clone() Equipment {
	if e.Slots == nil {
		return Equipment{}
	}
	out := Equipment{Slots: make(map[Slot]*EquipmentItem, len(e.Slots))}
	for slot, item := range e.Slots {
		if item == nil {
			out.Slots[slot] = nil
			continue
		}
		cloned := item.Clone()
		out.Slots[slot] = &cloned
	}
	return out
}

// Clone returns a deep copy of the item.
func (i EquipmentItem) Clone() EquipmentItem {
	out := i
	out.StatBonus = cloneStatMap(i.StatBonus)
	out.OtherModifiers = cloneSlice(i.OtherModifiers)
	out.Tags = cloneSlice(i.Tags)
	return out
}

// Clone returns a deep copy of the inventory entry.
func (i InventoryItem) Clone() InventoryItem {
	out := i
	out.EquipmentItem = i.EquipmentItem.Clone()
	return out
}

func (c Combat) clone() Combat {
	out := c
	out.Others = cloneAnyMap(c.Others)
	out.Conditions = cloneSlice(c.Conditions)
	out.Features = cloneSlice(c.Features)
	out.CooldownSkills = cloneSlice(c.CooldownSkills)
	return out
}

// cloneSlice copies a slice of plain values, preserving nil versus empty.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneInventory(items []InventoryItem) []InventoryItem {
	if items == nil {
		return nil
	}
	out := make([]InventoryItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func cloneSpells(spells []Spell) []Spell {
	if spells == nil {
		return nil
	}
	out := make([]Spell, len(spells))
	for i, s := range spells {
		cloned := s
		cloned.Components = cloneSlice(s.Components)
		cloned.Classes = cloneSlice(s.Classes)
		cloned.Tags = cloneSlice(s.Tags)
		out[i] = cloned
	}
	return out
}

func cloneStatMap(m map[StatKey]int) map[StatKey]int {
	if m == nil {
		return nil
	}
	out := make(map[StatKey]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStatBoolMap(m map[StatKey]bool) map[StatKey]bool {
	if m == nil {
		return nil
	}
	out := make(map[StatKey]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

package sheet

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed returns the built-in starter document used when no persisted state
// exists or the persisted state cannot be read.
func Seed() Document {
	doc := Document{
		Version: Version,
		Character: Character{
			ID:          "char_001",
			Name:        "Wren",
			Race:        "Wood Elf",
			Class:       "Alchemist",
			Level:       15,
			Exp:         0,
			Inspiration: 3,
			SaveDC:      15,
			Stats: map[StatKey]int{
				STR: 70, DEX: 85, CON: 75, INT: 95, WIS: 70, CHA: 80,
			},
			SkillProficiencies: map[string]bool{
				"INT_arcana":        true,
				"INT_investigation": true,
				"WIS_perception":    true,
				"CHA_persuasion":    true,
			},
			SavingThrowProficiencies: map[StatKey]bool{},
			Background:               "Years on the road shaped an alchemical practice all her own.",
		},
		Equipment: EmptyEquipment(),
		Inventory: []InventoryItem{
			{
				EquipmentItem: EquipmentItem{
					ID:          "item_001",
					Name:        "Sage's Circlet",
					Type:        "head",
					Description: "A circlet that sharpens the wearer's mind.",
					StatBonus:   NormalizeStatBonus(map[StatKey]int{INT: 10}),
					OtherModifiers: []ItemModifier{},
					Tags:           []string{"arcane"},
				},
				Quantity: 1,
			},
		},
		Spells:          []Spell{},
		CharacterSpells: []CharacterSpellMetadata{},
		Combat: Combat{
			HPMax:          100,
			HPCurrent:      100,
			HPTemp:         15,
			StaminaCurrent: 50,
			SaveDC:         15,
			Inspiration:    3,
			Others:         map[string]any{OtherKeyAC: 18, "Speed": "30ft"},
			Conditions: []Condition{
				{Name: "Shocked", Stacks: 2, RoundsLeft: 3},
			},
			Features: []CombatFeature{
				{ID: "feat_1", Name: "Alchemical Fervor", Description: "Potions take effect twice.", Pinned: true},
			},
			CooldownSkills: []CooldownSkill{
				{
					ID:          "skill_1",
					Name:        "Venom Burst",
					BaseCD:      3,
					CurrentCD:   0,
					Description: "Conjures a poison cloud that lingers for three rounds.",
					Source:      SourceSystem,
				},
			},
			TurnCount: 1,
		},
	}
	return doc
}

// EmptyEquipment returns an equipment block with every slot present and empty.
func EmptyEquipment() Equipment {
	slots := make(map[Slot]*EquipmentItem, len(Slots))
	for _, s := range Slots {
		slots[s] = nil
	}
	return Equipment{Slots: slots}
}

// LoadDocument reads a document from a YAML file, normalizing items and
// filling defaults so a hand-edited seed file round-trips cleanly.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read document file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse document YAML: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// Normalize fills structural defaults: schema version, all equipment slots
// present, zero-filled item bonus maps, non-nil collections.
func (d *Document) Normalize() {
	if d.Version == "" {
		d.Version = Version
	}
	if d.Character.Stats == nil {
		d.Character.Stats = make(map[StatKey]int, len(StatKeys))
	}
	for _, k := range StatKeys {
		if _, ok := d.Character.Stats[k]; !ok {
			d.Character.Stats[k] = 0
		}
	}
	if d.Character.SkillProficiencies == nil {
		d.Character.SkillProficiencies = map[string]bool{}
	}
	if d.Character.SavingThrowProficiencies == nil {
		d.Character.SavingThrowProficiencies = map[StatKey]bool{}
	}
	if d.Equipment.Slots == nil {
		d.Equipment = EmptyEquipment()
	}
	for _, s := range Slots {
		if _, ok := d.Equipment.Slots[s]; !ok {
			d.Equipment.Slots[s] = nil
		}
	}
	for _, item := range d.Equipment.Slots {
		if item != nil {
			item.Normalize()
		}
	}
	for i := range d.Inventory {
		d.Inventory[i].Normalize()
		if d.Inventory[i].Quantity < 1 {
			d.Inventory[i].Quantity = 1
		}
	}
	if d.Inventory == nil {
		d.Inventory = []InventoryItem{}
	}
	if d.Spells == nil {
		d.Spells = []Spell{}
	}
	if d.CharacterSpells == nil {
		d.CharacterSpells = []CharacterSpellMetadata{}
	}
	if d.Combat.Others == nil {
		d.Combat.Others = map[string]any{}
	}
	if d.Combat.Conditions == nil {
		d.Combat.Conditions = []Condition{}
	}
	if d.Combat.Features == nil {
		d.Combat.Features = []CombatFeature{}
	}
	if d.Combat.CooldownSkills == nil {
		d.Combat.CooldownSkills = []CooldownSkill{}
	}
	for i := range d.Combat.CooldownSkills {
		s := &d.Combat.CooldownSkills[i]
		if s.Source == "" {
			s.Source = SourceCustom
		}
		if s.CurrentCD < 0 {
			s.CurrentCD = 0
		}
		if s.CurrentCD > s.BaseCD {
			s.CurrentCD = s.BaseCD
		}
	}
}

// ExportJSON renders the document as pretty-printed JSON, the shape used
// for user-triggered exports.
func (d Document) ExportJSON() (string, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

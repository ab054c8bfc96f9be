package sheet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSeedShape(t *testing.T) {
	doc := Seed()

	if doc.Version != Version {
		t.Errorf("Version = %q, want %q", doc.Version, Version)
	}
	if doc.Character.Name != "Wren" || doc.Character.Level != 15 {
		t.Errorf("character = %q level %d, want Wren level 15", doc.Character.Name, doc.Character.Level)
	}
	for _, k := range StatKeys {
		if _, ok := doc.Character.Stats[k]; !ok {
			t.Errorf("seed stats missing %s", k)
		}
	}
	for _, s := range Slots {
		if _, ok := doc.Equipment.Slots[s]; !ok {
			t.Errorf("seed equipment missing slot %s", s)
		}
	}
	if len(doc.Inventory) != 1 || doc.Inventory[0].ID != "item_001" {
		t.Error("seed inventory must hold the circlet")
	}
	skill, ok := doc.Combat.Skill("skill_1")
	if !ok || skill.Source != SourceSystem {
		t.Error("seed must carry the system skill skill_1")
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	doc := Document{
		Inventory: []InventoryItem{
			{EquipmentItem: EquipmentItem{ID: "i1", Name: "Thing"}, Quantity: 0},
		},
		Combat: Combat{
			CooldownSkills: []CooldownSkill{
				{ID: "s1", BaseCD: 2, CurrentCD: 5},
				{ID: "s2", BaseCD: 2, CurrentCD: -1},
			},
		},
	}
	doc.Normalize()

	if doc.Version != Version {
		t.Errorf("Version = %q, want %q", doc.Version, Version)
	}
	for _, k := range StatKeys {
		if v, ok := doc.Character.Stats[k]; !ok || v != 0 {
			t.Errorf("Stats[%s] = %d (present %v), want zero-filled", k, v, ok)
		}
	}
	for _, s := range Slots {
		if _, ok := doc.Equipment.Slots[s]; !ok {
			t.Errorf("slot %s missing after normalize", s)
		}
	}
	if doc.Inventory[0].Quantity != 1 {
		t.Errorf("Quantity = %d, want floor of 1", doc.Inventory[0].Quantity)
	}
	if doc.Inventory[0].StatBonus == nil {
		t.Error("item bonus map not normalized")
	}
	if doc.Combat.CooldownSkills[0].CurrentCD != 2 {
		t.Errorf("CurrentCD = %d, want clamp to BaseCD 2", doc.Combat.CooldownSkills[0].CurrentCD)
	}
	if doc.Combat.CooldownSkills[1].CurrentCD != 0 {
		t.Errorf("CurrentCD = %d, want clamp to 0", doc.Combat.CooldownSkills[1].CurrentCD)
	}
	if doc.Combat.CooldownSkills[0].Source != SourceCustom {
		t.Errorf("Source = %q, want default %q", doc.Combat.CooldownSkills[0].Source, SourceCustom)
	}
	if doc.Spells == nil || doc.CharacterSpells == nil || doc.Combat.Conditions == nil {
		t.Error("nil collections survived normalize")
	}
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	yaml := `
character:
  id: char_x
  name: Test Hero
  level: 4
  stats:
    INT: 60
combat:
  hp_max: 30
  hp_current: 30
  cooldown_skills:
    - id: s1
      name: Jab
      base_cd: 1
      current_cd: 7
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if doc.Character.Name != "Test Hero" {
		t.Errorf("Name = %q, want %q", doc.Character.Name, "Test Hero")
	}
	if doc.Character.Stats[INT] != 60 || doc.Character.Stats[STR] != 0 {
		t.Error("stats not loaded and zero-filled")
	}
	if doc.Combat.CooldownSkills[0].CurrentCD != 1 {
		t.Errorf("CurrentCD = %d, want clamp to 1", doc.Combat.CooldownSkills[0].CurrentCD)
	}

	if _, err := LoadDocument(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestExportJSON(t *testing.T) {
	doc := Seed()
	doc.Normalize()

	out, err := doc.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if !strings.Contains(out, `"characterSpells"`) {
		t.Error("export missing the characterSpells key")
	}

	var round Document
	if err := json.Unmarshal([]byte(out), &round); err != nil {
		t.Fatalf("export does not parse back: %v", err)
	}
	if round.Character.Name != doc.Character.Name {
		t.Errorf("round-tripped name = %q, want %q", round.Character.Name, doc.Character.Name)
	}
	if round.Combat.TurnCount != doc.Combat.TurnCount {
		t.Errorf("round-tripped turn count = %d, want %d", round.Combat.TurnCount, doc.Combat.TurnCount)
	}
}

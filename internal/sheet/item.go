package sheet

// ModifierKind categorizes an item's non-stat modifier.
type ModifierKind string

const (
	ModStat   ModifierKind = "stat"
	ModHP     ModifierKind = "hp"
	ModSaveDC ModifierKind = "save_dc"
	ModCustom ModifierKind = "custom"
)

// ItemModifier is a single non-stat bonus carried by an item.
type ItemModifier struct {
	Kind   ModifierKind `json:"kind" yaml:"kind"`
	Target string       `json:"target" yaml:"target"`
	Value  int          `json:"value" yaml:"value"`
}

// EquipmentItem is a piece of gear. An instance lives in exactly one place
// at a time: one equipment slot or the inventory, never both.
type EquipmentItem struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Type           string          `json:"type" yaml:"type"`
	Description    string          `json:"description" yaml:"description"`
	StatBonus      map[StatKey]int `json:"statBonus" yaml:"stat_bonus"`
	OtherModifiers []ItemModifier  `json:"otherModifiers" yaml:"other_modifiers"`
	Tags           []string        `json:"tags" yaml:"tags"`
}

// InventoryItem is an unequipped item plus its owned quantity.
type InventoryItem struct {
	EquipmentItem `yaml:",inline"`
	Quantity      int `json:"quantity" yaml:"quantity"`
}

// EmptyStatBonus returns a zero-filled bonus map covering all six stats.
func EmptyStatBonus() map[StatKey]int {
	b := make(map[StatKey]int, len(StatKeys))
	for _, k := range StatKeys {
		b[k] = 0
	}
	return b
}

// NormalizeStatBonus fills in any missing stat keys with zero. Every item's
// StatBonus map covers all six keys; partial maps only appear transiently in
// hand-edited seed files and imports.
func NormalizeStatBonus(bonus map[StatKey]int) map[StatKey]int {
	normalized := EmptyStatBonus()
	for k, v := range bonus {
		normalized[k] = v
	}
	return normalized
}

// Normalize zero-fills the item's stat bonus map and ensures slices are
// non-nil so the JSON shape stays stable.
func (i *EquipmentItem) Normalize() {
	i.StatBonus = NormalizeStatBonus(i.StatBonus)
	if i.OtherModifiers == nil {
		i.OtherModifiers = []ItemModifier{}
	}
	if i.Tags == nil {
		i.Tags = []string{}
	}
}

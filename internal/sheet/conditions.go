package sheet

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConditionDef describes a known status effect and whether repeated
// applications stack or toggle.
type ConditionDef struct {
	Name      string `yaml:"name"`
	Stackable bool   `yaml:"stackable"`
}

// ConditionCatalog holds the known status effects and drives the toggle
// semantics callers use when applying one.
type ConditionCatalog struct {
	defs  map[string]ConditionDef
	order []string
}

// DefaultConditionDefs is the built-in status list used when no catalog
// file is provided.
var DefaultConditionDefs = []ConditionDef{
	{Name: "Stunned"},
	{Name: "Hawkeye"},
	{Name: "Unyielding"},
	{Name: "Prone"},
	{Name: "Winded"},
	{Name: "Rallied"},
	{Name: "Frightened"},
	{Name: "Showtime"},
	{Name: "Sundering Wave"},
	{Name: "Poisoned"},
	{Name: "Blade Dance"},
	{Name: "Shocked", Stackable: true},
	{Name: "Restrained"},
	{Name: "Guarding"},
	{Name: "Enraged", Stackable: true},
	{Name: "Confused"},
	{Name: "Taunting"},
	{Name: "Burning", Stackable: true},
	{Name: "Bleeding"},
	{Name: "Oath of Faith"},
	{Name: "Frozen", Stackable: true},
	{Name: "Invisible"},
	{Name: "War Cry"},
	{Name: "Serenity"},
	{Name: "Iron Will"},
}

// NewConditionCatalog builds a catalog from definitions. Later entries with
// a duplicate name replace earlier ones.
func NewConditionCatalog(defs []ConditionDef) *ConditionCatalog {
	c := &ConditionCatalog{defs: make(map[string]ConditionDef, len(defs))}
	for _, def := range defs {
		if _, seen := c.defs[def.Name]; !seen {
			c.order = append(c.order, def.Name)
		}
		c.defs[def.Name] = def
	}
	return c
}

// DefaultConditionCatalog returns the built-in catalog.
func DefaultConditionCatalog() *ConditionCatalog {
	return NewConditionCatalog(DefaultConditionDefs)
}

// conditionsFile is the YAML shape of a catalog override file.
type conditionsFile struct {
	Conditions []ConditionDef `yaml:"conditions"`
}

// LoadConditionCatalog loads a catalog from a YAML file.
func LoadConditionCatalog(path string) (*ConditionCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read conditions file: %w", err)
	}

	var file conditionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse conditions YAML: %w", err)
	}
	if len(file.Conditions) == 0 {
		return DefaultConditionCatalog(), nil
	}
	return NewConditionCatalog(file.Conditions), nil
}

// Stackable reports whether the named condition stacks. Unknown names are
// treated as non-stackable.
func (c *ConditionCatalog) Stackable(name string) bool {
	return c.defs[name].Stackable
}

// Known reports whether the name is in the catalog.
func (c *ConditionCatalog) Known(name string) bool {
	_, ok := c.defs[name]
	return ok
}

// Names returns the catalog's condition names in definition order.
func (c *ConditionCatalog) Names() []string {
	return append([]string(nil), c.order...)
}

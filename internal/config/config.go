// Package config loads application configuration from YAML with sensible
// defaults when the file is absent.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lunarhall/chronicle/internal/stats"
)

// AppConfig holds application-wide settings.
type AppConfig struct {
	// DatabasePath is where the archive database lives.
	DatabasePath string `yaml:"database_path"`

	// SeedFile optionally points at a YAML document used instead of the
	// built-in seed when the database is empty.
	SeedFile string `yaml:"seed_file"`

	// ConditionsFile optionally overrides the built-in condition catalog.
	ConditionsFile string `yaml:"conditions_file"`

	// ProficiencyFormula selects the proficiency-bonus policy:
	// "by_five" (trunc(level/5), the default) or "standard"
	// (2 + trunc((level-1)/4)).
	ProficiencyFormula string `yaml:"proficiency_formula"`
}

// DefaultConfig returns an AppConfig with the shipped defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		DatabasePath:       "data/chronicle.db",
		ProficiencyFormula: "by_five",
	}
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults; an unparseable one yields defaults plus the error.
func LoadConfig(path string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}
	if config.DatabasePath == "" {
		config.DatabasePath = DefaultConfig().DatabasePath
	}

	return config, nil
}

// ProficiencyPolicy resolves the configured formula name to its policy
// function. Unknown names fall back to the shipped trunc(level/5) formula.
func (c *AppConfig) ProficiencyPolicy() stats.ProficiencyPolicy {
	switch c.ProficiencyFormula {
	case "standard":
		return stats.ProficiencyStandard
	default:
		return stats.ProficiencyByFive
	}
}

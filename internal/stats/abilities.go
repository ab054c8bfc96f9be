// Package stats provides the pure scoring formulas and dice helpers:
// ability modifiers on the 0-100+ attribute scale, proficiency-bonus
// policies, and dice-expression rolls.
package stats

// AbilityModifier converts a 0-100+ attribute value to its modifier.
// Formula: trunc(((value / 5) - 10) / 2) over rationals, which reduces to
// trunc((value - 50) / 10). The single truncation toward zero matters for
// low values: AbilityModifier(12) is -3, not -4.
func AbilityModifier(value int) int {
	return (value - 50) / 10
}

// ProficiencyPolicy computes the proficiency bonus for a level. The bonus
// formula changed between revisions of the sheet rules, so it is a named,
// swappable policy rather than a constant formula.
type ProficiencyPolicy func(level int) int

// ProficiencyByFive is the shipped formula: trunc(level / 5).
func ProficiencyByFive(level int) int {
	return level / 5
}

// ProficiencyStandard is the conventional 5e-style alternative:
// 2 + trunc((level - 1) / 4).
func ProficiencyStandard(level int) int {
	if level < 1 {
		level = 1
	}
	return 2 + (level-1)/4
}

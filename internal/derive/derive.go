// Package derive computes secondary statistics from a character document.
// Everything here is a pure projection: no randomness, no mutation.
package derive

import (
	"github.com/lunarhall/chronicle/internal/sheet"
	"github.com/lunarhall/chronicle/internal/stats"
)

// Stats is the derived view recomputed on every document change.
type Stats struct {
	BaseStats        map[sheet.StatKey]int
	EquipmentBonus   map[sheet.StatKey]int
	TotalStats       map[sheet.StatKey]int
	ProficiencyBonus int
	HPMax            int
	SaveDC           int
	Others           map[string]any
}

// Modifier returns the ability modifier for the total (base + equipment)
// value of the given stat.
func (s Stats) Modifier(key sheet.StatKey) int {
	return stats.AbilityModifier(s.TotalStats[key])
}

// Compute derives secondary statistics from the document using the given
// proficiency policy. A nil policy defaults to stats.ProficiencyByFive.
func Compute(doc sheet.Document, policy stats.ProficiencyPolicy) Stats {
	if policy == nil {
		policy = stats.ProficiencyByFive
	}

	base := make(map[sheet.StatKey]int, len(sheet.StatKeys))
	bonus := make(map[sheet.StatKey]int, len(sheet.StatKeys))
	total := make(map[sheet.StatKey]int, len(sheet.StatKeys))
	for _, k := range sheet.StatKeys {
		base[k] = doc.Character.Stats[k]
		bonus[k] = 0
	}

	hpBonus := 0
	dcBonus := 0
	// Unequipped inventory never contributes; only occupied slots count.
	for _, slot := range sheet.Slots {
		item := doc.Equipped(slot)
		if item == nil {
			continue
		}
		for k, v := range item.StatBonus {
			bonus[k] += v
		}
		for _, m := range item.OtherModifiers {
			switch m.Kind {
			case sheet.ModHP:
				hpBonus += m.Value
			case sheet.ModSaveDC:
				dcBonus += m.Value
			}
		}
	}

	for _, k := range sheet.StatKeys {
		total[k] = base[k] + bonus[k]
	}

	others := make(map[string]any, len(doc.Combat.Others))
	for k, v := range doc.Combat.Others {
		others[k] = v
	}

	return Stats{
		BaseStats:        base,
		EquipmentBonus:   bonus,
		TotalStats:       total,
		ProficiencyBonus: policy(doc.Character.Level),
		HPMax:            doc.Combat.HPMax + hpBonus,
		SaveDC:           doc.Character.SaveDC + dcBonus,
		Others:           others,
	}
}

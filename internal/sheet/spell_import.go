package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SpellColumnMapping maps spell fields to zero-based CSV column indexes.
// A negative index means the field is absent from the file.
type SpellColumnMapping struct {
	Name        int
	Level       int
	School      int
	CastingTime int
	Range       int
	Duration    int
	Description int
}

// DefaultSpellColumnMapping assumes the conventional export order:
// name, level, school, casting time, range, duration, description.
func DefaultSpellColumnMapping() SpellColumnMapping {
	return SpellColumnMapping{
		Name:        0,
		Level:       1,
		School:      2,
		CastingTime: 3,
		Range:       4,
		Duration:    5,
		Description: 6,
	}
}

// ImportSpellsCSV reads a headered CSV stream and converts each data row
// into a Spell using the column mapping. Rows without a name are skipped.
// Imported spells get generated ids and are tagged with source "csv".
func ImportSpellsCSV(r io.Reader, mapping SpellColumnMapping) ([]Spell, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse spell CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	var spells []Spell
	for _, row := range records[1:] {
		name := strings.TrimSpace(cell(row, mapping.Name))
		if name == "" {
			continue
		}
		level := 0
		if raw := strings.TrimSpace(cell(row, mapping.Level)); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				level = n
			}
		}
		spells = append(spells, Spell{
			ID:          "csv_" + uuid.NewString(),
			Name:        name,
			Level:       level,
			School:      strings.TrimSpace(cell(row, mapping.School)),
			CastingTime: strings.TrimSpace(cell(row, mapping.CastingTime)),
			Range:       strings.TrimSpace(cell(row, mapping.Range)),
			Duration:    strings.TrimSpace(cell(row, mapping.Duration)),
			Components:  []string{},
			Classes:     []string{},
			Tags:        []string{},
			Source:      "csv",
			Description: strings.TrimSpace(cell(row, mapping.Description)),
		})
	}
	return spells, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

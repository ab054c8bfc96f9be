package sheet

// Spell is a catalog entry shared by every character document it is
// imported into.
type Spell struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Level         int      `json:"level" yaml:"level"`
	School        string   `json:"school,omitempty" yaml:"school,omitempty"`
	CastingTime   string   `json:"casting_time" yaml:"casting_time"`
	Range         string   `json:"range" yaml:"range"`
	Duration      string   `json:"duration" yaml:"duration"`
	Components    []string `json:"components" yaml:"components"`
	Material      string   `json:"material,omitempty" yaml:"material,omitempty"`
	Concentration bool     `json:"concentration" yaml:"concentration"`
	Ritual        bool     `json:"ritual" yaml:"ritual"`
	Classes       []string `json:"classes" yaml:"classes"`
	Tags          []string `json:"tags" yaml:"tags"`
	Source        string   `json:"source,omitempty" yaml:"source,omitempty"`
	Description   string   `json:"description" yaml:"description"`
	HigherLevel   string   `json:"higher_level,omitempty" yaml:"higher_level,omitempty"`
}

// CharacterSpellMetadata is the per-character overlay for one spell:
// at most one entry per spell id.
type CharacterSpellMetadata struct {
	SpellID  string `json:"spell_id" yaml:"spell_id"`
	Known    bool   `json:"known" yaml:"known"`
	Prepared bool   `json:"prepared" yaml:"prepared"`
	Favorite bool   `json:"favorite" yaml:"favorite"`
	Notes    string `json:"notes" yaml:"notes"`
}

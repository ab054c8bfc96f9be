// Package archive manages named character-document snapshots: which one is
// active, how the live state syncs back into it, and how the whole set
// persists through a key-value store.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lunarhall/chronicle/internal/derive"
	"github.com/lunarhall/chronicle/internal/engine"
	"github.com/lunarhall/chronicle/internal/logger"
	"github.com/lunarhall/chronicle/internal/sheet"
	"github.com/lunarhall/chronicle/internal/stats"
)

// Persisted-state keys. Versioned so a future schema change can migrate
// rather than misparse.
const (
	ArchivesKey = "CHRONICLE_ARCHIVES_V2"
	ActiveIDKey = "CHRONICLE_ACTIVE_ID_V2"
)

// ErrLastArchive is returned when deletion would remove the final archive.
var ErrLastArchive = errors.New("at least one archive must remain")

// Archive is a named, independently loadable snapshot of the document.
type Archive struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	LastUpdated int64          `json:"lastUpdated"` // epoch milliseconds
	State       sheet.Document `json:"state"`
}

// Manager owns the archive collection, the active-archive pointer and the
// live reducer state. Every dispatched action is folded into the active
// archive and flushed to the store.
type Manager struct {
	store    Store
	now      func() time.Time
	policy   stats.ProficiencyPolicy
	state    engine.State
	archives map[string]Archive
	activeID string
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithProficiencyPolicy overrides the derived-stats proficiency formula.
func WithProficiencyPolicy(policy stats.ProficiencyPolicy) Option {
	return func(m *Manager) { m.policy = policy }
}

// NewManager opens a session against the store. Persisted archives are
// loaded when present and readable; otherwise the session starts from the
// seed document under a default archive. The constructor never fails on
// bad persisted data, only on a nil store.
func NewManager(store Store, seed sheet.Document, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("archive manager requires a store")
	}

	m := &Manager{
		store:  store,
		now:    time.Now,
		policy: stats.ProficiencyByFive,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.archives, m.activeID = m.loadPersisted(seed)
	m.state = engine.NewState(m.archives[m.activeID].State.Clone())
	return m, nil
}

// loadPersisted reads the archive map and active pointer, falling back to
// a single seed archive on missing or corrupt data.
func (m *Manager) loadPersisted(seed sheet.Document) (map[string]Archive, string) {
	raw, ok, err := m.store.Get(ArchivesKey)
	if err != nil {
		logger.Warning("Failed to read persisted archives, starting from seed", "error", err)
	}
	archives := make(map[string]Archive)
	if err == nil && ok {
		if jsonErr := json.Unmarshal([]byte(raw), &archives); jsonErr != nil {
			logger.Warning("Persisted archives are corrupt, starting from seed", "error", jsonErr)
			archives = make(map[string]Archive)
		}
	}
	for id, arc := range archives {
		doc := arc.State
		doc.Normalize()
		arc.State = doc
		archives[id] = arc
	}

	if len(archives) == 0 {
		normalized := seed.Clone()
		normalized.Normalize()
		const defaultID = "default-save"
		archives[defaultID] = Archive{
			ID:          defaultID,
			Name:        "Starting Save",
			LastUpdated: m.now().UnixMilli(),
			State:       normalized,
		}
		return archives, defaultID
	}

	activeID, ok, err := m.store.Get(ActiveIDKey)
	if err != nil || !ok {
		activeID = ""
	}
	if _, exists := archives[activeID]; !exists {
		activeID = firstArchiveID(archives)
	}
	return archives, activeID
}

// Dispatch applies an action to the live state, syncs the active archive
// and flushes everything to the store. Persistence happens strictly after
// the transition completes.
func (m *Manager) Dispatch(action engine.Action) error {
	m.state = engine.Reduce(m.state, action)
	return m.persist()
}

// Document returns a copy of the live document.
func (m *Manager) Document() sheet.Document {
	return m.state.Doc.Clone()
}

// CanUndo reports whether an undo buffer is available.
func (m *Manager) CanUndo() bool {
	return m.state.CanUndo()
}

// Derived recomputes the derived statistics for the live document.
func (m *Manager) Derived() derive.Stats {
	return derive.Compute(m.state.Doc, m.policy)
}

// ActiveID returns the active archive id.
func (m *Manager) ActiveID() string {
	return m.activeID
}

// ListArchives returns the archives sorted most recently updated first.
func (m *Manager) ListArchives() []Archive {
	out := make([]Archive, 0, len(m.archives))
	for _, arc := range m.archives {
		out = append(out, arc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastUpdated != out[j].LastUpdated {
			return out[i].LastUpdated > out[j].LastUpdated
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// CreateSnapshot deep-copies the live document into a new archive, which
// becomes active. A blank name defaults to "<character> (Lv <level>)".
func (m *Manager) CreateSnapshot(name string) (string, error) {
	if name == "" {
		name = fmt.Sprintf("%s (Lv %d)", m.state.Doc.Character.Name, m.state.Doc.Character.Level)
	}
	id := "save-" + uuid.NewString()
	m.archives[id] = Archive{
		ID:          id,
		Name:        name,
		LastUpdated: m.now().UnixMilli(),
		State:       m.state.Doc.Clone(),
	}
	m.activeID = id
	logger.Info("Snapshot created", "archive_id", id, "name", name)
	return id, m.persist()
}

// LoadArchive replaces the live document with the named archive's state
// and marks it active. Unknown ids are a silent no-op.
func (m *Manager) LoadArchive(id string) error {
	arc, ok := m.archives[id]
	if !ok {
		logger.Debug("Load requested for unknown archive", "archive_id", id)
		return nil
	}
	m.activeID = id
	m.state = engine.Reduce(m.state, engine.SetState{Doc: arc.State})
	logger.Info("Archive loaded", "archive_id", id, "name", arc.Name)
	return m.persist()
}

// DeleteArchive removes an archive. Deleting the last remaining archive is
// refused with ErrLastArchive. When the active archive is deleted, an
// arbitrary survivor becomes active and its state is loaded.
func (m *Manager) DeleteArchive(id string) error {
	if _, ok := m.archives[id]; !ok {
		return nil
	}
	if len(m.archives) <= 1 {
		return ErrLastArchive
	}
	delete(m.archives, id)
	logger.Info("Archive deleted", "archive_id", id)

	if id == m.activeID {
		m.activeID = firstArchiveID(m.archives)
		m.state = engine.Reduce(m.state, engine.SetState{Doc: m.archives[m.activeID].State})
	}
	return m.persist()
}

// ExportJSON renders the live document as pretty-printed JSON.
func (m *Manager) ExportJSON() (string, error) {
	return m.state.Doc.ExportJSON()
}

// persist writes the live document back into the active archive, then
// flushes the archive map and active pointer.
func (m *Manager) persist() error {
	active := m.archives[m.activeID]
	active.ID = m.activeID
	active.LastUpdated = m.now().UnixMilli()
	active.State = m.state.Doc.Clone()
	m.archives[m.activeID] = active

	payload, err := json.Marshal(m.archives)
	if err != nil {
		return fmt.Errorf("failed to encode archives: %w", err)
	}
	if err := m.store.Set(ArchivesKey, string(payload)); err != nil {
		return fmt.Errorf("failed to persist archives: %w", err)
	}
	if err := m.store.Set(ActiveIDKey, m.activeID); err != nil {
		return fmt.Errorf("failed to persist active archive id: %w", err)
	}
	return nil
}

// firstArchiveID picks a deterministic archive id (lowest lexicographic).
func firstArchiveID(archives map[string]Archive) string {
	first := ""
	for id := range archives {
		if first == "" || id < first {
			first = id
		}
	}
	return first
}

package archive

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/lunarhall/chronicle/internal/engine"
	"github.com/lunarhall/chronicle/internal/sheet"
	"github.com/lunarhall/chronicle/internal/stats"
)

// fakeClock hands out strictly increasing timestamps.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestManager(t *testing.T, store Store) *Manager {
	t.Helper()
	m, err := NewManager(store, sheet.Seed(), WithClock(newFakeClock().Now))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func intp(v int) *int { return &v }

func TestNewManagerRequiresStore(t *testing.T) {
	if _, err := NewManager(nil, sheet.Seed()); err == nil {
		t.Error("expected an error for a nil store")
	}
}

func TestNewManagerSeedsEmptyStore(t *testing.T) {
	m := newTestManager(t, NewMemoryStore())

	if m.ActiveID() != "default-save" {
		t.Errorf("ActiveID = %q, want %q", m.ActiveID(), "default-save")
	}
	archives := m.ListArchives()
	if len(archives) != 1 || archives[0].Name != "Starting Save" {
		t.Fatalf("archives = %+v, want one Starting Save", archives)
	}
	if m.Document().Character.Name != "Wren" {
		t.Error("live document is not the seed")
	}
	if m.CanUndo() {
		t.Error("fresh session should have no undo buffer")
	}
}

func TestNewManagerRecoversFromCorruptPayload(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Set(ArchivesKey, "{not json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	m := newTestManager(t, store)
	if m.ActiveID() != "default-save" {
		t.Errorf("ActiveID = %q, want fallback to %q", m.ActiveID(), "default-save")
	}
}

func TestDispatchPersists(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)
	before := m.ListArchives()[0].LastUpdated

	if err := m.Dispatch(engine.EndTurn{}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if m.Document().Combat.TurnCount != 2 {
		t.Errorf("TurnCount = %d, want 2", m.Document().Combat.TurnCount)
	}

	raw, ok, err := store.Get(ArchivesKey)
	if err != nil || !ok {
		t.Fatalf("archives not persisted: ok=%v err=%v", ok, err)
	}
	var persisted map[string]Archive
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("persisted payload does not parse: %v", err)
	}
	if persisted["default-save"].State.Combat.TurnCount != 2 {
		t.Error("active archive state was not synced before flushing")
	}
	if got := persisted["default-save"].LastUpdated; got <= before {
		t.Errorf("LastUpdated = %d, want later than %d after dispatch", got, before)
	}
}

func TestManagerSurvivesReopen(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)

	if err := m.Dispatch(engine.UpdateCombat{Patch: engine.CombatPatch{HPCurrent: intp(37)}}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	reopened := newTestManager(t, store)
	if reopened.ActiveID() != m.ActiveID() {
		t.Errorf("reopened ActiveID = %q, want %q", reopened.ActiveID(), m.ActiveID())
	}
	doc := reopened.Document()
	if doc.Combat.HPCurrent != 37 {
		t.Errorf("reopened HPCurrent = %d, want 37", doc.Combat.HPCurrent)
	}
	if doc.Character.Name != "Wren" {
		t.Errorf("reopened Name = %q, want Wren", doc.Character.Name)
	}
	// Numeric "others" values come back as JSON floats; the accessor hides that.
	if ac := doc.Combat.ArmorClass(10); ac != 18 {
		t.Errorf("reopened AC = %d, want 18", ac)
	}
	if reopened.CanUndo() {
		t.Error("undo buffer must not survive a reopen")
	}
}

func TestSnapshotLoadDelete(t *testing.T) {
	m := newTestManager(t, NewMemoryStore())

	if err := m.Dispatch(engine.UpdateCombat{Patch: engine.CombatPatch{HPCurrent: intp(60)}}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	id, err := m.CreateSnapshot("The fight")
	if err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}
	if m.ActiveID() != id {
		t.Error("new snapshot did not become active")
	}

	// Further damage flows into the active snapshot, leaving the prior
	// archive untouched at 60.
	if err := m.Dispatch(engine.UpdateCombat{Patch: engine.CombatPatch{HPCurrent: intp(5)}}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if err := m.LoadArchive("default-save"); err != nil {
		t.Fatalf("LoadArchive failed: %v", err)
	}
	if hp := m.Document().Combat.HPCurrent; hp != 60 {
		t.Errorf("HPCurrent after load = %d, want 60", hp)
	}
	if m.CanUndo() {
		t.Error("archive load must clear the undo buffer")
	}

	// Unknown ids are a silent no-op and leave the live state alone.
	if err := m.LoadArchive("nope"); err != nil {
		t.Fatalf("LoadArchive of unknown id = %v, want nil", err)
	}
	if m.ActiveID() != "default-save" {
		t.Error("unknown load changed the active archive")
	}

	if err := m.DeleteArchive(id); err != nil {
		t.Fatalf("DeleteArchive failed: %v", err)
	}
	for _, arc := range m.ListArchives() {
		if arc.ID == id {
			t.Error("deleted archive still listed")
		}
	}
}

func TestDeleteArchiveGuards(t *testing.T) {
	m := newTestManager(t, NewMemoryStore())

	// Unknown id is a silent no-op.
	if err := m.DeleteArchive("nope"); err != nil {
		t.Errorf("delete of unknown id = %v, want nil", err)
	}

	// The last archive cannot go.
	err := m.DeleteArchive("default-save")
	if !errors.Is(err, ErrLastArchive) {
		t.Errorf("delete of last archive = %v, want ErrLastArchive", err)
	}
}

func TestDeleteActiveArchiveActivatesSurvivor(t *testing.T) {
	m := newTestManager(t, NewMemoryStore())

	if err := m.Dispatch(engine.UpdateCombat{Patch: engine.CombatPatch{HPCurrent: intp(77)}}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	id, err := m.CreateSnapshot("Branch")
	if err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}
	if err := m.Dispatch(engine.UpdateCombat{Patch: engine.CombatPatch{HPCurrent: intp(11)}}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if err := m.DeleteArchive(id); err != nil {
		t.Fatalf("DeleteArchive failed: %v", err)
	}
	if m.ActiveID() != "default-save" {
		t.Errorf("ActiveID = %q, want the surviving default-save", m.ActiveID())
	}
	// The survivor's state is loaded; its last sync happened before the
	// branch snapshot was taken.
	if hp := m.Document().Combat.HPCurrent; hp != 77 {
		t.Errorf("HPCurrent after reactivation = %d, want 77", hp)
	}
}

func TestListArchivesOrder(t *testing.T) {
	m := newTestManager(t, NewMemoryStore())

	first, err := m.CreateSnapshot("Older")
	if err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}
	second, err := m.CreateSnapshot("Newer")
	if err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}

	archives := m.ListArchives()
	if len(archives) != 3 {
		t.Fatalf("archives = %d, want 3", len(archives))
	}
	if archives[0].ID != second || archives[1].ID != first || archives[2].ID != "default-save" {
		got := []string{archives[0].ID, archives[1].ID, archives[2].ID}
		t.Errorf("order = %v, want newest first", got)
	}
}

func TestCreateSnapshotDefaultName(t *testing.T) {
	m := newTestManager(t, NewMemoryStore())

	id, err := m.CreateSnapshot("")
	if err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}
	for _, arc := range m.ListArchives() {
		if arc.ID == id && arc.Name != "Wren (Lv 15)" {
			t.Errorf("default snapshot name = %q, want %q", arc.Name, "Wren (Lv 15)")
		}
	}
}

func TestDerivedUsesConfiguredPolicy(t *testing.T) {
	m, err := NewManager(NewMemoryStore(), sheet.Seed(),
		WithClock(newFakeClock().Now),
		WithProficiencyPolicy(stats.ProficiencyStandard))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	// Level 15 on the standard table.
	if pb := m.Derived().ProficiencyBonus; pb != 5 {
		t.Errorf("ProficiencyBonus = %d, want 5", pb)
	}
}

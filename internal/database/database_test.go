package database

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T, path string) *Database {
	t.Helper()
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetMissingKey(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "test.db"))

	value, ok, err := db.Get("absent")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || value != "" {
		t.Errorf("Get(absent) = (%q, %v), want (\"\", false)", value, ok)
	}
}

func TestSetAndGet(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "test.db"))

	if err := db.Set("k", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, ok, err := db.Get("k")
	if err != nil || !ok || value != "v1" {
		t.Errorf("Get(k) = (%q, %v, %v), want (\"v1\", true, nil)", value, ok, err)
	}

	// Overwrite replaces in place.
	if err := db.Set("k", "v2"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	value, _, _ = db.Get("k")
	if value != "v2" {
		t.Errorf("Get(k) after overwrite = %q, want %q", value, "v2")
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := db.Set("k", "survives"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db2 := openTestDB(t, path)
	value, ok, err := db2.Get("k")
	if err != nil || !ok || value != "survives" {
		t.Errorf("Get(k) after reopen = (%q, %v, %v), want (\"survives\", true, nil)", value, ok, err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	db := openTestDB(t, path)
	if err := db.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}

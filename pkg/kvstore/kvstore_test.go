package kvstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSQLite(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	store, err := OpenSQLite(dataDir)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// Check if database file was created
	dbFile := filepath.Join(dataDir, "dashboard.db")
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		t.Error("Expected database file to be created")
	}
}

func TestSQLiteSetGetRemove(t *testing.T) {
	store, err := OpenSQLite(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	if err := store.Set("dashboard_todos_u1", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}

	value, err := store.Get("dashboard_todos_u1")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if value != `[{"id":"1"}]` {
		t.Errorf("Expected stored value, got %s", value)
	}

	// Overwrite
	if err := store.Set("dashboard_todos_u1", `[]`); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}
	value, _ = store.Get("dashboard_todos_u1")
	if value != `[]` {
		t.Errorf("Expected overwritten value, got %s", value)
	}

	if err := store.Remove("dashboard_todos_u1"); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	if _, err := store.Get("dashboard_todos_u1"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after remove, got %v", err)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dataDir := t.TempDir()

	store, err := OpenSQLite(dataDir)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	store.Close()

	reopened, err := OpenSQLite(dataDir)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	value, err := reopened.Get("k")
	if err != nil {
		t.Fatalf("Failed to get after reopen: %v", err)
	}
	if value != "v" {
		t.Errorf("Expected value to survive reopen, got %s", value)
	}
}

func TestMemory(t *testing.T) {
	store := NewMemory()

	if _, err := store.Get("missing"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for missing key, got %v", err)
	}

	if err := store.Set("a", "1"); err != nil {
		t.Fatalf("Failed to set: %v", err)
	}
	value, err := store.Get("a")
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if value != "1" {
		t.Errorf("Expected 1, got %s", value)
	}

	// Remove of a missing key is not an error
	if err := store.Remove("missing"); err != nil {
		t.Errorf("Expected remove of missing key to succeed, got %v", err)
	}
}

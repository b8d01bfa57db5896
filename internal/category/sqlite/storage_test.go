package sqlite

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/testutil"
)

func setupTestBackend(t *testing.T) (*Backend, string) {
	t.Helper()

	source := filepath.Join(t.TempDir(), "spendsort.db")
	backend, err := New(source)
	if err != nil {
		t.Fatalf("Failed to create sqlite backend: %v", err)
	}

	t.Cleanup(func() {
		if err := backend.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	return backend, source
}

func TestLoadEmptyDatabase(t *testing.T) {
	backend, _ := setupTestBackend(t)

	entries, err := backend.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Load() = %v, want no entries", entries)
	}
}

func TestSaveAndLoad(t *testing.T) {
	backend, _ := setupTestBackend(t)

	entries := []category.Entry{
		{Name: category.Uncategorized, Keywords: []string{}},
		{Name: "Transport", Keywords: []string{"uber", "metro"}},
		{Name: "Food", Keywords: []string{"bakery"}},
	}

	if err := backend.Save(entries); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := backend.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Errorf("Load() = %v, want %v", got, entries)
	}

	// Save overwrites rather than appends
	entries = entries[:2]
	if err = backend.Save(entries); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err = backend.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Errorf("Load() after overwrite = %v, want %v", got, entries)
	}
}

func TestSaveRejectsDuplicateCategories(t *testing.T) {
	backend, _ := setupTestBackend(t)

	original := []category.Entry{{Name: "Food", Keywords: []string{"bakery"}}}
	if err := backend.Save(original); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	err := backend.Save([]category.Entry{{Name: "Food"}, {Name: "Food"}})
	if err == nil {
		t.Fatal("Save() expected error for duplicate category names")
	}

	got, err := backend.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Errorf("Failed save was not rolled back: %v", got)
	}
}

func TestStoreOnSQLite(t *testing.T) {
	backend, source := setupTestBackend(t)
	logger := testutil.TestLogger(t)

	store := category.Load(backend, logger)
	if _, err := store.AddCategory("Subscriptions"); err != nil {
		t.Fatalf("AddCategory() unexpected error: %v", err)
	}
	if _, err := store.AddKeyword("Subscriptions", "netflix"); err != nil {
		t.Fatalf("AddKeyword() unexpected error: %v", err)
	}

	reopened, err := New(source)
	if err != nil {
		t.Fatalf("Failed to reopen sqlite backend: %v", err)
	}
	defer reopened.Close()

	reloaded := category.Load(reopened, logger)
	if !reflect.DeepEqual(reloaded.Snapshot(), store.Snapshot()) {
		t.Errorf("Reloaded store = %v, want %v", reloaded.Snapshot(), store.Snapshot())
	}
}

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/GustavoCaso/spendsort/internal/category"
)

// SetupTestStore returns a store backed by a JSON file in a temporary directory
// holding the given categories, each with its keywords.
func SetupTestStore(t *testing.T, categories map[string][]string, order ...string) *category.Store {
	t.Helper()

	store := category.Load(
		category.NewJSONFile(filepath.Join(t.TempDir(), "categories.json")),
		TestLogger(t),
	)

	for _, name := range order {
		if _, err := store.AddCategory(name); err != nil {
			t.Fatalf("AddCategory(%s) unexpected error: %v", name, err)
		}
		for _, keyword := range categories[name] {
			if _, err := store.AddKeyword(name, keyword); err != nil {
				t.Fatalf("AddKeyword(%s, %s) unexpected error: %v", name, keyword, err)
			}
		}
	}

	return store
}

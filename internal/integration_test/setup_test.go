package integration_test

import (
	"path/filepath"
	"testing"

	"github.com/leengari/gridtable/internal/catalog"
	"github.com/leengari/gridtable/internal/samples"
)

// setupCatalog seeds a fresh data directory with the sample tables and loads it.
func setupCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	if _, err := samples.Seed(dir); err != nil {
		t.Fatalf("Failed to seed data directory: %v", err)
	}

	c := catalog.New(dir, "")
	n, err := c.LoadDir()
	if err != nil {
		t.Fatalf("Failed to load data directory: %v", err)
	}
	if n != 2 {
		t.Fatalf("Expected 2 tables, loaded %d", n)
	}
	return c
}

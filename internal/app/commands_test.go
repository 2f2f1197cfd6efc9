package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExportRewritesCatalog(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "gamedex.db")
	catalogPath := filepath.Join(dir, "All.Games.json")

	page := writeTestPage(t, dir, "page.html",
		`<a href="/hades-free-download/">Hades</a>`)
	if err := runCommand(t, "sync", "--db", db, "--input", page, "--out-dir", dir, "--quiet"); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if err := os.Remove(catalogPath); err != nil {
		t.Fatalf("failed to remove catalog: %v", err)
	}

	if err := runCommand(t, "export", "--db", db, "--out-dir", dir); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	entries := readEntries(t, catalogPath)
	if len(entries) != 1 || entries[0].Name != "Hades" {
		t.Errorf("expected rebuilt catalog with Hades, got %+v", entries)
	}
}

func TestRunsOnFreshDatabase(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "gamedex.db")

	if err := runCommand(t, "runs", "--db", db); err != nil {
		t.Fatalf("runs failed on fresh database: %v", err)
	}
}

func TestStatusOnMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "missing.db")

	if err := runCommand(t, "status", "--db", db); err != nil {
		t.Fatalf("status failed on missing database: %v", err)
	}
}

func TestStatusAfterSync(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "gamedex.db")

	page := writeTestPage(t, dir, "page.html",
		`<a href="/hades-free-download/">Hades</a>`)
	if err := runCommand(t, "sync", "--db", db, "--input", page, "--out-dir", dir, "--quiet"); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if err := runCommand(t, "status", "--db", db); err != nil {
		t.Fatalf("status failed: %v", err)
	}
}

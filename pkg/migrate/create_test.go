package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateSQLMigrationBumpsTakenVersion(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	dir := t.TempDir()
	first, err := CreateSQLMigration(dir, "Add website languages")
	if err != nil {
		t.Fatalf("create first migration: %v", err)
	}
	second, err := CreateSQLMigration(dir, "add pricelist country groups")
	if err != nil {
		t.Fatalf("create second migration: %v", err)
	}

	if filepath.Base(first) != "20260301120000_add_website_languages.sql" {
		t.Fatalf("unexpected first migration %s", first)
	}
	if filepath.Base(second) != "20260301120001_add_pricelist_country_groups.sql" {
		t.Fatalf("unexpected second migration %s", second)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migrations should validate: %v", err)
	}

	body, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if !strings.Contains(string(body), "-- rollback add_pricelist_country_groups") {
		t.Fatalf("unexpected template:\n%s", body)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		" Add Website Languages ": "add_website_languages",
		"pricelist-items v2":      "pricelist_items_v2",
		"!!!":                     "",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Fatalf("sanitizeName(%q) = %q want %q", in, got, want)
		}
	}
}

package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrations_SortedByVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "002_doctors.sql", "CREATE TABLE doctors ();")
	writeFile(t, dir, "001_users.sql", "CREATE TABLE users ();")
	writeFile(t, dir, "010_appointments.sql", "CREATE TABLE appointments ();")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	want := []int{1, 2, 10}
	for i, mig := range migrations {
		if mig.Version != want[i] {
			t.Errorf("position %d: expected version %d, got %d", i, want[i], mig.Version)
		}
	}
	if migrations[0].Name != "001_users" {
		t.Errorf("expected name 001_users, got %s", migrations[0].Name)
	}
}

func TestLoadMigrations_SkipsNonNumericAndNonSQL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "001_users.sql", "CREATE TABLE users ();")
	writeFile(t, dir, "notes.txt", "not a migration")
	writeFile(t, dir, "seed.sql", "INSERT INTO users DEFAULT VALUES;")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migrations) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(migrations))
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	m := NewMigrator(nil, "/nonexistent/migrations")
	if _, err := m.LoadMigrations(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestBuildStatuses_CarriesAppliedAt(t *testing.T) {
	migrations := []Migration{
		{Version: 1, Name: "001_core"},
		{Version: 2, Name: "002_extra"},
	}
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	applied := map[int]time.Time{1: at}

	statuses := buildStatuses(migrations, applied)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Applied || statuses[0].AppliedAt == nil || !statuses[0].AppliedAt.Equal(at) {
		t.Errorf("applied migration missing timestamp: %+v", statuses[0])
	}
	if statuses[1].Applied || statuses[1].AppliedAt != nil {
		t.Errorf("pending migration should carry no timestamp: %+v", statuses[1])
	}
}

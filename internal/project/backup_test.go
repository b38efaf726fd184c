package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/ReelCut/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultMode = model.PolicyStrict
	cfg.DefaultLimit = 5
	cfg.Theme = "dark"

	plan := model.NewPlan()
	plan.Name = "Floor 3"
	plan.Reels = []model.Reel{model.NewReel(1, 120)}
	plan.Cuts = []model.CutRequest{model.NewCutRequest(1, "Room 301", 40)}

	journal := []model.CutLogEntry{
		{ID: "run-a-1-1", BatchID: "run-a", Name: "Room 301", Length: 40, ReelID: 1, StartIndex: 185, EndIndex: 225,
			Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}

	if err := ExportAllData(path, cfg, &plan, journal); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultLimit != 5 || backup.Config.Theme != "dark" {
		t.Errorf("config not restored: %+v", backup.Config)
	}
	if backup.Plan == nil || backup.Plan.Name != "Floor 3" || len(backup.Plan.Cuts) != 1 {
		t.Errorf("plan not restored: %+v", backup.Plan)
	}
	if len(backup.Journal) != 1 || !backup.Journal[0].Timestamp.Equal(journal[0].Timestamp) {
		t.Errorf("journal not restored: %+v", backup.Journal)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	data := []byte(`{"config":{"theme":"dark"}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), nil, nil); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataFillsNilSlices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_plans":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentPlans == nil {
		t.Error("RecentPlans should not be nil after import")
	}
	if backup.Journal == nil {
		t.Error("Journal should not be nil after import")
	}
	if backup.Plan != nil {
		t.Error("expected no plan in a bundle without one")
	}
}

package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/ReelCut/internal/model"
)

// BackupVersion is written into every backup bundle.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Plan      *model.Plan         `json:"plan,omitempty"`
	Journal   []model.CutLogEntry `json:"journal"`
}

// ExportAllData writes the config, the current plan (optional) and the
// whole cut journal to a single JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, plan *model.Plan, journal []model.CutLogEntry) error {
	if journal == nil {
		journal = []model.CutLogEntry{}
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Plan:      plan,
		Journal:   journal,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller decides how to apply it; journal entries are meant to be
// appended, never merged or deduplicated.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentPlans == nil {
		backup.Config.RecentPlans = []string{}
	}
	if backup.Journal == nil {
		backup.Journal = []model.CutLogEntry{}
	}
	return backup, nil
}

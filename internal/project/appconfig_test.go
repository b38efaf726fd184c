package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ReelCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := model.DefaultAppConfig()
	cfg.DefaultMode = model.PolicyStrict
	cfg.DefaultLimit = 5
	cfg.JournalBackend = model.JournalSQLite
	cfg.Theme = "dark"
	cfg.RecentPlans = []string{"/tmp/a.reelcut", "/tmp/b.yaml"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultMode != model.PolicyStrict || loaded.DefaultLimit != 5 {
		t.Errorf("expected strict/5, got %s/%d", loaded.DefaultMode, loaded.DefaultLimit)
	}
	if loaded.JournalBackend != model.JournalSQLite {
		t.Errorf("expected sqlite backend, got %s", loaded.JournalBackend)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if len(loaded.RecentPlans) != 2 {
		t.Errorf("expected 2 recent plans, got %d", len(loaded.RecentPlans))
	}
}

func TestSaveAppConfigWritesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "journal_backend: json") {
		t.Errorf("expected YAML keys in config file, got:\n%s", data)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.yaml")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.DefaultMode != model.PolicyStandard {
		t.Errorf("expected standard default mode, got %s", cfg.DefaultMode)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: light\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected theme=light, got %s", cfg.Theme)
	}
	if cfg.DefaultLimit != model.DefaultStrictLimit {
		t.Errorf("expected default limit %d, got %d", model.DefaultStrictLimit, cfg.DefaultLimit)
	}
	if cfg.JournalBackend != model.JournalJSON {
		t.Errorf("expected json backend, got %s", cfg.JournalBackend)
	}
}

func TestLoadAppConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("journal_backend: postgres\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for unknown journal backend")
	}
}

func TestLoadAppConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestDefaultPathsFollowEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvConfig, "")

	if got := DefaultConfigDir(); got != home {
		t.Errorf("DefaultConfigDir = %s, want %s", got, home)
	}
	if got, want := DefaultConfigPath(), filepath.Join(home, "config.yaml"); got != want {
		t.Errorf("DefaultConfigPath = %s, want %s", got, want)
	}
	if got, want := DefaultJournalPath(model.JournalSQLite), filepath.Join(home, "journal.db"); got != want {
		t.Errorf("DefaultJournalPath(sqlite) = %s, want %s", got, want)
	}

	custom := filepath.Join(home, "other.yaml")
	t.Setenv(EnvConfig, custom)
	if got := DefaultConfigPath(); got != custom {
		t.Errorf("DefaultConfigPath = %s, want %s", got, custom)
	}
}

func TestJournalLocation(t *testing.T) {
	t.Setenv(EnvHome, "/data")

	cfg := model.DefaultAppConfig()
	if got, want := JournalLocation(cfg), filepath.Join("/data", "journal.json"); got != want {
		t.Errorf("JournalLocation = %s, want %s", got, want)
	}
	cfg.JournalPath = "/srv/cuts.json"
	if got := JournalLocation(cfg); got != "/srv/cuts.json" {
		t.Errorf("JournalLocation = %s, want /srv/cuts.json", got)
	}
}

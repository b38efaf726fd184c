package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ReelCut/internal/model"
)

// Environment variables that override the default locations.
const (
	EnvHome   = "REELCUT_HOME"
	EnvConfig = "REELCUT_CONFIG"
)

// DefaultConfigDir returns the directory holding configuration and the
// journal. It is $REELCUT_HOME when set, otherwise ~/.reelcut/.
func DefaultConfigDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".reelcut")
}

// DefaultConfigPath returns $REELCUT_CONFIG when set, otherwise
// config.yaml inside DefaultConfigDir.
func DefaultConfigPath() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultJournalPath returns the journal location for the given backend.
func DefaultJournalPath(backend string) string {
	if backend == model.JournalSQLite {
		return filepath.Join(DefaultConfigDir(), "journal.db")
	}
	return filepath.Join(DefaultConfigDir(), "journal.json")
}

// JournalLocation resolves the configured journal path, falling back to the
// default for the configured backend.
func JournalLocation(cfg model.AppConfig) string {
	if cfg.JournalPath != "" {
		return cfg.JournalPath
	}
	return DefaultJournalPath(cfg.JournalBackend)
}

// SaveAppConfig persists an AppConfig to the given path as YAML.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. Keys missing from
// the file keep their default values. If the file does not exist, it
// returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return model.AppConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if config.RecentPlans == nil {
		config.RecentPlans = []string{}
	}
	switch config.JournalBackend {
	case model.JournalJSON, model.JournalSQLite:
	case "":
		config.JournalBackend = model.JournalJSON
	default:
		return model.AppConfig{}, fmt.Errorf("config %s: unknown journal backend %q", path, config.JournalBackend)
	}
	return config, nil
}

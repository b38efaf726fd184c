package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/piwi3910/ReelCut/internal/cutlog"
	"github.com/piwi3910/ReelCut/internal/model"
)

var _ cutlog.Store = (*JournalFile)(nil)

// JournalFile keeps the cut journal in a single JSON file. Appends rewrite
// the whole file through a temporary file and a rename, so a crash never
// leaves a half-written journal behind.
type JournalFile struct {
	path string
	mu   sync.Mutex
}

// OpenJournalFile returns a journal backed by path. The file is created on
// the first append.
func OpenJournalFile(path string) *JournalFile {
	return &JournalFile{path: path}
}

// Path returns the backing file.
func (j *JournalFile) Path() string { return j.path }

// Append adds entries to the end of the journal.
func (j *JournalFile) Append(ctx context.Context, entries []model.CutLogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	existing, err := j.read()
	if err != nil {
		return err
	}
	return j.write(append(existing, entries...))
}

// List returns every entry in append order.
func (j *JournalFile) List(ctx context.Context) ([]model.CutLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.read()
}

// Clear empties the journal.
func (j *JournalFile) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.write([]model.CutLogEntry{})
}

func (j *JournalFile) read() ([]model.CutLogEntry, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.CutLogEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	if len(data) == 0 {
		return []model.CutLogEntry{}, nil
	}
	var entries []model.CutLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse journal %s: %w", j.path, err)
	}
	if entries == nil {
		entries = []model.CutLogEntry{}
	}
	return entries, nil
}

func (j *JournalFile) write(entries []model.CutLogEntry) error {
	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".journal-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp journal: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write journal: %w", err)
	}
	if err := os.Rename(tmpName, j.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace journal: %w", err)
	}
	return nil
}

package cutlog

import (
	"context"
	"sync"

	"github.com/piwi3910/ReelCut/internal/model"
)

// MemoryStore keeps the journal in memory. It backs dry runs and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries []model.CutLogEntry
	appends int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Append(_ context.Context, entries []model.CutLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	m.appends++
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]model.CutLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.CutLogEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// Appends returns how many times Append has been called.
func (m *MemoryStore) Appends() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appends
}

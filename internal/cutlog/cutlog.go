// Package cutlog turns successful allocation runs into permanent cut journal
// entries and defines the storage contracts for that journal.
//
// The journal is append-only: entries are never edited, reordered or
// deduplicated once written. The only way to remove entries is Clear,
// which drops all of them.
package cutlog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/ReelCut/internal/model"
)

// Sink accepts new journal entries. Append is called at most once per
// calculation run, with entries in allocation order.
type Sink interface {
	Append(ctx context.Context, entries []model.CutLogEntry) error
}

// Store is a Sink that can also list and clear the journal.
// List returns entries in append order.
type Store interface {
	Sink
	List(ctx context.Context) ([]model.CutLogEntry, error)
	Clear(ctx context.Context) error
}

// NewBatchID returns an identifier shared by all entries of one run.
func NewBatchID() string {
	return "run-" + uuid.New().String()[:8]
}

// EntryID builds the id of a journal entry from its batch, reel and cut.
func EntryID(batchID string, reelID, cutID int) string {
	return fmt.Sprintf("%s-%d-%d", batchID, reelID, cutID)
}

// Project converts a successful allocation into journal entries, one per
// allocated cut, reel by reel in allocation order and in assignment order
// within a reel. All entries share batchID and ts. A failed or partial
// allocation yields no entries.
func Project(result model.AllocationResult, batchID string, ts time.Time) []model.CutLogEntry {
	if !result.Success {
		return nil
	}
	var entries []model.CutLogEntry
	for _, a := range result.Allocations {
		for _, c := range a.AssignedCuts {
			entries = append(entries, model.CutLogEntry{
				ID:         EntryID(batchID, a.ReelID, c.ID),
				BatchID:    batchID,
				Name:       c.Name,
				Length:     c.Length,
				ReelID:     a.ReelID,
				StartIndex: c.StartIndex,
				EndIndex:   c.EndIndex,
				Timestamp:  ts,
			})
		}
	}
	return entries
}

// Summarize totals the number and length of the journal's cuts.
func Summarize(entries []model.CutLogEntry) model.CutLogSummary {
	s := model.CutLogSummary{TotalCuts: len(entries)}
	for _, e := range entries {
		s.TotalLength += e.Length
	}
	return s
}

// NewestFirst returns a reversed copy of the journal for display.
func NewestFirst(entries []model.CutLogEntry) []model.CutLogEntry {
	out := make([]model.CutLogEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// SortForExport returns a copy of the journal grouped by reel and ordered
// along each reel by start index. Entries at the same position keep their
// journal order.
func SortForExport(entries []model.CutLogEntry) []model.CutLogEntry {
	out := make([]model.CutLogEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ReelID != out[j].ReelID {
			return out[i].ReelID < out[j].ReelID
		}
		return out[i].StartIndex < out[j].StartIndex
	})
	return out
}

// Batches groups the journal by batch id, in order of each batch's first entry.
func Batches(entries []model.CutLogEntry) [][]model.CutLogEntry {
	index := make(map[string]int)
	var out [][]model.CutLogEntry
	for _, e := range entries {
		i, ok := index[e.BatchID]
		if !ok {
			i = len(out)
			index[e.BatchID] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], e)
	}
	return out
}

package model

import (
	"math"
	"sort"
)

// Stock is the set of reels on hand between jobs.
type Stock struct {
	Reels []Reel `json:"reels" yaml:"reels"`
}

// NewStock returns an empty stock.
func NewStock() Stock {
	return Stock{Reels: []Reel{}}
}

// NextID returns an id one higher than any reel in stock.
func (s Stock) NextID() int {
	max := 0
	for _, r := range s.Reels {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// Add appends a new reel with the next free id and returns it.
func (s *Stock) Add(length float64) Reel {
	r := NewReel(s.NextID(), length)
	s.Reels = append(s.Reels, r)
	return r
}

// Remove deletes the reel with the given id. It reports whether the reel
// was found.
func (s *Stock) Remove(id int) bool {
	for i, r := range s.Reels {
		if r.ID == id {
			s.Reels = append(s.Reels[:i], s.Reels[i+1:]...)
			return true
		}
	}
	return false
}

// TotalLength returns the metres on hand.
func (s Stock) TotalLength() float64 {
	total := 0.0
	for _, r := range s.Reels {
		total += r.Length
	}
	return total
}

// Consume updates the stock after a successful run. Reels that took part
// in the run are replaced by their usable leftover or removed when only
// scrap is left. A stock reel counts as part of the run only when both its
// id and its length match a reel the run started from; every other reel
// is kept. Failed runs change nothing.
func (s *Stock) Consume(result AllocationResult) {
	if !result.Success {
		return
	}
	inRun := make(map[int]float64, len(result.ReelsBefore))
	for _, r := range result.ReelsBefore {
		inRun[r.ID] = r.Length
	}
	carried := make(map[int]Reel)
	for _, r := range CarryOverReels(result) {
		carried[r.ID] = r
	}

	kept := make([]Reel, 0, len(s.Reels))
	for _, r := range s.Reels {
		length, ok := inRun[r.ID]
		if !ok || math.Abs(length-r.Length) > Epsilon {
			kept = append(kept, r)
			continue
		}
		if c, ok := carried[r.ID]; ok {
			kept = append(kept, c)
		}
	}
	s.Reels = kept
}

// Merge adds reels from other whose ids are not already in stock.
// It returns the number of reels added.
func (s *Stock) Merge(other Stock) int {
	ids := make(map[int]bool, len(s.Reels))
	for _, r := range s.Reels {
		ids[r.ID] = true
	}
	added := 0
	for _, r := range other.Reels {
		if ids[r.ID] {
			continue
		}
		s.Reels = append(s.Reels, r)
		ids[r.ID] = true
		added++
	}
	sort.SliceStable(s.Reels, func(i, j int) bool { return s.Reels[i].ID < s.Reels[j].ID })
	return added
}

package model

import "math"

// MaxReelLength is the nominal length of a full spool in metres. A reel with
// less cable on it is treated as a full spool whose first MaxReelLength-Length
// metres have already been consumed.
const MaxReelLength = 305.0

// Input caps enforced before an allocation run.
const (
	MaxReels = 20
	MaxCuts  = 50
)

// Epsilon is the tolerance used for every length comparison.
const Epsilon = 1e-9

// Reel represents a physical cable spool available for cutting.
type Reel struct {
	ID     int     `json:"id" yaml:"id"`
	Length float64 `json:"length" yaml:"length"` // usable metres left on the spool
}

// NewReel creates a reel with the given id and usable length.
func NewReel(id int, length float64) Reel {
	return Reel{ID: id, Length: length}
}

// StartIndex returns the position of the first usable metre on the spool.
func (r Reel) StartIndex() float64 {
	return MaxReelLength - r.Length
}

// EndIndex returns the position of the end of the spool.
func (r Reel) EndIndex() float64 {
	return MaxReelLength
}

// CutRequest represents a cable length that has to be cut from some reel.
type CutRequest struct {
	ID     int     `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Length float64 `json:"length" yaml:"length"` // metres
}

func NewCutRequest(id int, name string, length float64) CutRequest {
	return CutRequest{ID: id, Name: name, Length: length}
}

// AllocatedCut is a cut request together with the span it occupies on its reel.
type AllocatedCut struct {
	CutRequest `yaml:",inline"`
	StartIndex float64 `json:"start_index" yaml:"start_index"`
	EndIndex   float64 `json:"end_index" yaml:"end_index"`
}

// Span returns the length covered by the cut on the reel.
func (c AllocatedCut) Span() float64 {
	return c.EndIndex - c.StartIndex
}

// AllocationDetail is the outcome of an allocation run for a single reel.
// AssignedCuts are kept in assignment order, which is also physical order
// because every cut starts where the previous one ended.
type AllocationDetail struct {
	AssignedCuts  []AllocatedCut `json:"assigned_cuts" yaml:"assigned_cuts"`
	Remaining     float64        `json:"remaining" yaml:"remaining"`
	NewStartIndex float64        `json:"new_start_index" yaml:"new_start_index"`
}

// UsedLength returns the total length assigned to the reel.
func (d AllocationDetail) UsedLength() float64 {
	var total float64
	for _, c := range d.AssignedCuts {
		total += c.Length
	}
	return total
}

// ReelAllocation pairs a reel id with its allocation detail.
type ReelAllocation struct {
	ReelID           int `json:"reel_id" yaml:"reel_id"`
	AllocationDetail `yaml:",inline"`
}

// AllocationResult holds the full outcome of an allocation run.
// Allocations follow the order in which the reels were supplied.
type AllocationResult struct {
	Success         bool             `json:"success" yaml:"success"`
	Allocations     []ReelAllocation `json:"allocations" yaml:"allocations"`
	UnallocatedCuts []CutRequest     `json:"unallocated_cuts,omitempty" yaml:"unallocated_cuts,omitempty"`
	ReelsBefore     []Reel           `json:"reels_before" yaml:"reels_before"`
	Warnings        []string         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Detail returns the allocation detail for the given reel id.
func (r AllocationResult) Detail(reelID int) (AllocationDetail, bool) {
	for _, a := range r.Allocations {
		if a.ReelID == reelID {
			return a.AllocationDetail, true
		}
	}
	return AllocationDetail{}, false
}

// ReelBefore returns the snapshot of the given reel taken before the run.
func (r AllocationResult) ReelBefore(reelID int) (Reel, bool) {
	for _, reel := range r.ReelsBefore {
		if reel.ID == reelID {
			return reel, true
		}
	}
	return Reel{}, false
}

// ReelsUsed returns the number of reels that received at least one cut.
func (r AllocationResult) ReelsUsed() int {
	n := 0
	for _, a := range r.Allocations {
		if len(a.AssignedCuts) > 0 {
			n++
		}
	}
	return n
}

// PlacedCount returns the number of cuts placed on any reel.
func (r AllocationResult) PlacedCount() int {
	n := 0
	for _, a := range r.Allocations {
		n += len(a.AssignedCuts)
	}
	return n
}

// TotalLeftover returns the remaining length summed over reels that were used.
func (r AllocationResult) TotalLeftover() float64 {
	var total float64
	for _, a := range r.Allocations {
		if len(a.AssignedCuts) > 0 {
			total += a.Remaining
		}
	}
	return total
}

// Efficiency returns the share of the used reels' length that went into cuts, in percent.
func (r AllocationResult) Efficiency() float64 {
	var used, available float64
	for _, a := range r.Allocations {
		if len(a.AssignedCuts) == 0 {
			continue
		}
		used += a.UsedLength()
		if reel, ok := r.ReelBefore(a.ReelID); ok {
			available += reel.Length
		}
	}
	if available == 0 {
		return 0
	}
	return (used / available) * 100.0
}

// NearlyEqual reports whether two lengths are equal within Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

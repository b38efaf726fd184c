package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/ReelCut/internal/model"
)

// reelState is the per-reel scratch state of an allocation run. It is a
// local copy; the caller's reels are never modified.
type reelState struct {
	id            int
	remaining     float64
	newStartIndex float64
}

// Allocate assigns cuts to reels using a best-fit decreasing heuristic.
//
// Cuts are taken longest first (stable, so equal lengths keep their input
// order). Each cut goes to the reel that would be left with the least stock
// after the cut. When several reels tie, the first one in input order wins.
// Cuts that fit on no reel are reported as unallocated; that is a normal
// outcome, not an error.
//
// Input is expected to have passed Validate.
func Allocate(reels []model.Reel, cuts []model.CutRequest) model.AllocationResult {
	before := make([]model.Reel, len(reels))
	copy(before, reels)

	states := make([]reelState, len(reels))
	allocations := make([]model.ReelAllocation, len(reels))
	for i, r := range reels {
		states[i] = reelState{id: r.ID, remaining: r.Length, newStartIndex: r.StartIndex()}
		allocations[i] = model.ReelAllocation{
			ReelID: r.ID,
			AllocationDetail: model.AllocationDetail{
				AssignedCuts:  []model.AllocatedCut{},
				Remaining:     r.Length,
				NewStartIndex: r.StartIndex(),
			},
		}
	}

	sorted := sortCutsForAllocation(cuts)

	var unallocated []model.CutRequest
	for _, cut := range sorted {
		idx := selectBestFit(states, cut.Length)
		if idx < 0 {
			unallocated = append(unallocated, cut)
			continue
		}

		st := &states[idx]
		placed := model.AllocatedCut{
			CutRequest: cut,
			StartIndex: st.newStartIndex,
			EndIndex:   st.newStartIndex + cut.Length,
		}
		st.remaining = clampRemaining(st.remaining - cut.Length)
		st.newStartIndex = placed.EndIndex

		detail := &allocations[idx].AllocationDetail
		detail.AssignedCuts = append(detail.AssignedCuts, placed)
		detail.Remaining = st.remaining
		detail.NewStartIndex = st.newStartIndex
	}

	return model.AllocationResult{
		Success:         len(unallocated) == 0,
		Allocations:     allocations,
		UnallocatedCuts: unallocated,
		ReelsBefore:     before,
	}
}

// sortCutsForAllocation returns a copy of cuts ordered by length descending.
// Equal lengths keep input order.
func sortCutsForAllocation(cuts []model.CutRequest) []model.CutRequest {
	sorted := make([]model.CutRequest, len(cuts))
	copy(sorted, cuts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})
	return sorted
}

// selectBestFit returns the index of the reel that leaves the least waste
// after taking a cut of the given length, or -1 if no reel can take it.
// A later reel only replaces the current best when its waste is smaller by
// more than Epsilon, so ties go to the earliest reel.
func selectBestFit(states []reelState, length float64) int {
	best := -1
	minWaste := math.Inf(1)
	for i, st := range states {
		if !fits(st.remaining, length) {
			continue
		}
		waste := math.Max(st.remaining-length, 0)
		if waste < minWaste-model.Epsilon {
			minWaste = waste
			best = i
		}
	}
	return best
}

// fits reports whether a cut of the given length can be taken from the
// remaining stock, allowing for representation error.
func fits(remaining, length float64) bool {
	return remaining >= length-model.Epsilon
}

// clampRemaining snaps values within Epsilon of zero to zero and never
// returns a negative length.
func clampRemaining(v float64) float64 {
	if v < model.Epsilon {
		return 0
	}
	return v
}

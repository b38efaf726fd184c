package engine

import (
	"fmt"

	"github.com/piwi3910/ReelCut/internal/model"
)

// EvaluatePolicy checks a completed allocation against the clean-reel
// policy and returns one warning per offending reel, in allocation order.
//
// Under the strict policy a reel offends when it received at least one cut
// and still has more than Limit metres left. A reel with exactly Limit
// metres left is clean. Reels that received no cuts are never flagged.
// The result is not modified.
func EvaluatePolicy(result model.AllocationResult, policy model.Policy) []string {
	if !policy.IsStrict() {
		return nil
	}

	var warnings []string
	for _, a := range ViolatingReels(result, policy) {
		warnings = append(warnings, fmt.Sprintf("Reel #%d has %.1fm left (exceeds the %dm limit).",
			a.ReelID, a.Remaining, policy.Limit))
	}
	return warnings
}

// ViolatingReels returns the allocations the policy flags, in allocation
// order. It is empty for the standard policy.
func ViolatingReels(result model.AllocationResult, policy model.Policy) []model.ReelAllocation {
	if !policy.IsStrict() {
		return nil
	}
	var out []model.ReelAllocation
	limit := float64(policy.Limit)
	for _, a := range result.Allocations {
		if len(a.AssignedCuts) == 0 {
			continue
		}
		if a.Remaining > limit+model.Epsilon {
			out = append(out, a)
		}
	}
	return out
}

// Run validates the input, allocates, and annotates the result with the
// policy warnings. It is the full pure pipeline without any history side
// effects; callers that keep a cut journal go through the planner.
func Run(reels []model.Reel, cuts []model.CutRequest, policy model.Policy) (model.AllocationResult, error) {
	if err := Validate(reels, cuts, policy); err != nil {
		return model.AllocationResult{}, err
	}
	result := Allocate(reels, cuts)
	result.Warnings = EvaluatePolicy(result, policy)
	return result, nil
}

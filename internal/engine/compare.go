package engine

import (
	"fmt"

	"github.com/piwi3910/ReelCut/internal/model"
)

// ComparisonScenario defines a named policy to compare.
type ComparisonScenario struct {
	Name   string
	Policy model.Policy
}

// ComparisonResult holds the allocation result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario         ComparisonScenario
	Result           model.AllocationResult
	ReelsUsed        int
	TotalLeftover    float64
	Efficiency       float64
	WarningCount     int
	UnallocatedCount int
}

// CompareScenarios runs the allocation for each scenario and returns the
// results in scenario order. The allocation itself does not depend on the
// policy, so the differences show up in the warnings: this answers "which
// clean-reel limit can this job meet?". Invalid input is rejected once,
// before any scenario runs.
func CompareScenarios(scenarios []ComparisonScenario, reels []model.Reel, cuts []model.CutRequest) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := Run(reels, cuts, scenario.Policy)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:         scenario,
			Result:           result,
			ReelsUsed:        result.ReelsUsed(),
			TotalLeftover:    result.TotalLeftover(),
			Efficiency:       result.Efficiency(),
			WarningCount:     len(result.Warnings),
			UnallocatedCount: len(result.UnallocatedCuts),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates the standard policy plus every supported
// strict limit, starting with the given base policy.
func BuildDefaultScenarios(base model.Policy) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Policy", Policy: base},
	}

	if base.IsStrict() {
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Standard",
			Policy: model.StandardPolicy(),
		})
	}

	for i := len(model.StrictLimits) - 1; i >= 0; i-- {
		limit := model.StrictLimits[i]
		if base.IsStrict() && base.Limit == limit {
			continue
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Strict %dm", limit),
			Policy: model.StrictPolicy(limit),
		})
	}

	return scenarios
}

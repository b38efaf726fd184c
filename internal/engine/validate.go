package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/ReelCut/internal/model"
)

// ErrInvalidInput is wrapped by every validation failure. The allocator is
// never run on input that fails validation.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Validate checks reels, cuts and policy before an allocation run and
// reports every problem it finds, joined into a single error.
func Validate(reels []model.Reel, cuts []model.CutRequest, policy model.Policy) error {
	var errs []error

	if len(reels) == 0 {
		errs = append(errs, invalid("at least one reel is required"))
	}
	if len(reels) > model.MaxReels {
		errs = append(errs, invalid("too many reels: %d (max %d)", len(reels), model.MaxReels))
	}
	if len(cuts) == 0 {
		errs = append(errs, invalid("at least one cut is required"))
	}
	if len(cuts) > model.MaxCuts {
		errs = append(errs, invalid("too many cuts: %d (max %d)", len(cuts), model.MaxCuts))
	}

	reelIDs := make(map[int]bool, len(reels))
	for _, r := range reels {
		if reelIDs[r.ID] {
			errs = append(errs, invalid("duplicate reel id %d", r.ID))
		}
		reelIDs[r.ID] = true

		if !isFinite(r.Length) || r.Length <= 0 || r.Length > model.MaxReelLength+model.Epsilon {
			errs = append(errs, invalid("reel #%d: length must be greater than 0 and at most %.0fm, got %v",
				r.ID, model.MaxReelLength, r.Length))
		}
	}

	cutIDs := make(map[int]bool, len(cuts))
	for _, c := range cuts {
		if cutIDs[c.ID] {
			errs = append(errs, invalid("duplicate cut id %d", c.ID))
		}
		cutIDs[c.ID] = true

		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, invalid("cut #%d: name is required", c.ID))
		}
		if !isFinite(c.Length) || c.Length <= 0 {
			errs = append(errs, invalid("cut #%d: length must be greater than 0, got %v", c.ID, c.Length))
		}
	}

	switch policy.Mode {
	case model.PolicyStandard:
	case model.PolicyStrict:
		if !model.IsSupportedLimit(policy.Limit) {
			errs = append(errs, invalid("strict limit must be one of %v, got %d", model.StrictLimits, policy.Limit))
		}
	default:
		errs = append(errs, invalid("unknown policy mode %q", policy.Mode))
	}

	return errors.Join(errs...)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

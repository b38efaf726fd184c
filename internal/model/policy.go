package model

import "fmt"

// PolicyMode selects how strictly leftover stock is judged.
type PolicyMode string

const (
	PolicyStandard PolicyMode = "standard" // Minimise total waste, no leftover constraint
	PolicyStrict   PolicyMode = "strict"   // Flag used reels whose leftover exceeds the limit
)

// Supported leftover limits (metres) for the strict policy.
var StrictLimits = []int{5, 10}

// DefaultStrictLimit is the limit offered when strict mode is first selected.
const DefaultStrictLimit = 10

// Policy is the clean-reel policy applied after allocation.
type Policy struct {
	Mode  PolicyMode `json:"mode" yaml:"mode"`
	Limit int        `json:"limit,omitempty" yaml:"limit,omitempty"`
}

func StandardPolicy() Policy {
	return Policy{Mode: PolicyStandard}
}

func StrictPolicy(limit int) Policy {
	return Policy{Mode: PolicyStrict, Limit: limit}
}

// IsStrict reports whether the policy constrains leftovers.
func (p Policy) IsStrict() bool {
	return p.Mode == PolicyStrict
}

func (p Policy) String() string {
	if p.IsStrict() {
		return fmt.Sprintf("strict (max %dm left)", p.Limit)
	}
	return "standard"
}

// IsSupportedLimit reports whether limit is one of StrictLimits.
func IsSupportedLimit(limit int) bool {
	for _, l := range StrictLimits {
		if l == limit {
			return true
		}
	}
	return false
}

// ParsePolicy builds a policy from a mode name and limit as given on a
// command line or in a plan file. An empty mode means standard.
func ParsePolicy(mode string, limit int) (Policy, error) {
	switch PolicyMode(mode) {
	case "", PolicyStandard:
		return StandardPolicy(), nil
	case PolicyStrict:
		if limit == 0 {
			limit = DefaultStrictLimit
		}
		if !IsSupportedLimit(limit) {
			return Policy{}, fmt.Errorf("unsupported strict limit %d (supported: %v)", limit, StrictLimits)
		}
		return StrictPolicy(limit), nil
	default:
		return Policy{}, fmt.Errorf("unknown policy mode %q", mode)
	}
}

package model

// Journal backends.
const (
	JournalJSON   = "json"
	JournalSQLite = "sqlite"
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default policy applied to new plans
	DefaultMode  PolicyMode `json:"default_mode" yaml:"default_mode"`
	DefaultLimit int        `json:"default_limit" yaml:"default_limit"`

	// Cut journal storage
	JournalBackend string `json:"journal_backend" yaml:"journal_backend"` // "json" or "sqlite"
	JournalPath    string `json:"journal_path" yaml:"journal_path"`       // empty = default under the config dir

	// Application preferences
	ExportDir   string   `json:"export_dir" yaml:"export_dir"`
	LogLevel    string   `json:"log_level" yaml:"log_level"`
	RecentPlans []string `json:"recent_plans" yaml:"recent_plans"`
	Theme       string   `json:"theme" yaml:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultMode:    PolicyStandard,
		DefaultLimit:   DefaultStrictLimit,
		JournalBackend: JournalJSON,
		ExportDir:      ".",
		LogLevel:       "info",
		RecentPlans:    []string{},
		Theme:          "system",
	}
}

// DefaultPolicy returns the policy new plans start with.
func (c AppConfig) DefaultPolicy() Policy {
	if c.DefaultMode == PolicyStrict {
		limit := c.DefaultLimit
		if !IsSupportedLimit(limit) {
			limit = DefaultStrictLimit
		}
		return StrictPolicy(limit)
	}
	return StandardPolicy()
}

// ApplyToPlan sets the plan's policy to the configured default.
// This is used when creating a new plan so it inherits the user's saved defaults.
func (c AppConfig) ApplyToPlan(p *Plan) {
	p.Policy = c.DefaultPolicy()
}

// AddRecentPlan moves path to the front of the recent plans list, keeping at most max entries.
func (c *AppConfig) AddRecentPlan(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentPlans {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > max {
		recent = recent[:max]
	}
	c.RecentPlans = recent
}

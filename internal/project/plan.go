package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ReelCut/internal/model"
)

// PlanExtension is the default file extension for saved plans.
const PlanExtension = ".reelcut"

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// SavePlan writes a plan to disk. Files ending in .yaml or .yml are written
// as YAML; anything else is written as indented JSON.
func SavePlan(path string, plan model.Plan) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(plan)
	} else {
		data, err = json.MarshalIndent(plan, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPlan reads a plan from disk, choosing the format by extension.
// A plan without a policy gets the standard policy, and a strict policy
// without a limit gets the default limit.
func LoadPlan(path string) (model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, err
	}

	var plan model.Plan
	if isYAML(path) {
		err = yaml.Unmarshal(data, &plan)
	} else {
		err = json.Unmarshal(data, &plan)
	}
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}

	policy, err := model.ParsePolicy(string(plan.Policy.Mode), plan.Policy.Limit)
	if err != nil {
		return model.Plan{}, fmt.Errorf("plan %s: %w", path, err)
	}
	plan.Policy = policy
	if plan.Reels == nil {
		plan.Reels = []model.Reel{}
	}
	if plan.Cuts == nil {
		plan.Cuts = []model.CutRequest{}
	}
	return plan, nil
}

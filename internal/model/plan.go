package model

// Plan is a working session: the reels and cuts being planned, the policy
// to apply and free-form design notes. It is what gets saved between runs.
type Plan struct {
	Name   string       `json:"name" yaml:"name"`
	Reels  []Reel       `json:"reels" yaml:"reels"`
	Cuts   []CutRequest `json:"cuts" yaml:"cuts"`
	Policy Policy       `json:"policy" yaml:"policy"`
	Notes  string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewPlan returns an empty session using the standard policy.
func NewPlan() Plan {
	return Plan{
		Name:   "Untitled",
		Reels:  []Reel{},
		Cuts:   []CutRequest{},
		Policy: StandardPolicy(),
	}
}

// TotalRequested returns the sum of all cut lengths in the plan.
func (p Plan) TotalRequested() float64 {
	var total float64
	for _, c := range p.Cuts {
		total += c.Length
	}
	return total
}

// NextReelID returns an id one larger than the largest reel id in use.
func (p Plan) NextReelID() int {
	next := 1
	for _, r := range p.Reels {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	return next
}

// NextCutID returns an id one larger than the largest cut id in use.
func (p Plan) NextCutID() int {
	next := 1
	for _, c := range p.Cuts {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	return next
}

// Renumber reassigns reel and cut ids to 1..n in their current order.
func (p *Plan) Renumber() {
	for i := range p.Reels {
		p.Reels[i].ID = i + 1
	}
	for i := range p.Cuts {
		p.Cuts[i].ID = i + 1
	}
}

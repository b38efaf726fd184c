package ui

import "github.com/piwi3910/ReelCut/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the editable plan state at a point in time.
type Snapshot struct {
	Reels  []model.Reel
	Cuts   []model.CutRequest
	Policy model.Policy
	Label  string // Human-readable description (e.g. "Add Cut")
}

// History manages undo/redo stacks of plan snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// Call it before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot and pushes current onto the redo
// stack. It returns false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent undone snapshot and pushes current onto the
// undo stack. It returns false when there is nothing to redo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// MakeSnapshot copies the plan's reels, cuts and policy.
func MakeSnapshot(plan model.Plan, label string) Snapshot {
	s := Snapshot{Policy: plan.Policy, Label: label}
	if plan.Reels != nil {
		s.Reels = append([]model.Reel(nil), plan.Reels...)
	}
	if plan.Cuts != nil {
		s.Cuts = append([]model.CutRequest(nil), plan.Cuts...)
	}
	return s
}

// Restore writes the snapshot back into plan.
func (s Snapshot) Restore(plan *model.Plan) {
	plan.Reels = append([]model.Reel{}, s.Reels...)
	plan.Cuts = append([]model.CutRequest{}, s.Cuts...)
	plan.Policy = s.Policy
}

package model

// Leftover represents the unused tail of a reel after an allocation run.
type Leftover struct {
	ReelID     int     `json:"reel_id"`
	Length     float64 `json:"length"`      // metres still on the spool
	StartIndex float64 `json:"start_index"` // next free position on the spool
	EndIndex   float64 `json:"end_index"`
}

// MinUsableLength is the shortest leftover (in metres) worth keeping as a
// reel for the next session. Anything shorter is scrap.
const MinUsableLength = 1.0

// Usable reports whether the leftover is long enough to be reused.
func (l Leftover) Usable() bool {
	return l.Length >= MinUsableLength-Epsilon
}

// ToReel converts the leftover into reel input for a later run. Because a
// reel's start index is derived from its length, the new reel starts exactly
// where the last cut ended.
func (l Leftover) ToReel(id int) Reel {
	return NewReel(id, l.Length)
}

// Leftovers lists the remaining stock of every reel that received at least
// one cut, in allocation order. Untouched reels are not leftovers: they are
// still whole and can be supplied again as they were.
func Leftovers(result AllocationResult) []Leftover {
	var out []Leftover
	for _, a := range result.Allocations {
		if len(a.AssignedCuts) == 0 || a.Remaining <= Epsilon {
			continue
		}
		out = append(out, Leftover{
			ReelID:     a.ReelID,
			Length:     a.Remaining,
			StartIndex: a.NewStartIndex,
			EndIndex:   MaxReelLength,
		})
	}
	return out
}

// CarryOverReels builds the reel list for the next session: reels that were
// not touched keep their length, used reels keep their usable leftover, and
// reels with scrap or nothing left are dropped. Ids are kept.
func CarryOverReels(result AllocationResult) []Reel {
	leftovers := make(map[int]Leftover)
	for _, l := range Leftovers(result) {
		leftovers[l.ReelID] = l
	}
	var reels []Reel
	for _, before := range result.ReelsBefore {
		detail, ok := result.Detail(before.ID)
		if !ok || len(detail.AssignedCuts) == 0 {
			reels = append(reels, before)
			continue
		}
		if l, ok := leftovers[before.ID]; ok && l.Usable() {
			reels = append(reels, l.ToReel(before.ID))
		}
	}
	return reels
}

package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/piwi3910/ReelCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestAllocate_TwoCutsOneReel(t *testing.T) {
	reels := []model.Reel{model.NewReel(1, 100)}
	cuts := []model.CutRequest{
		model.NewCutRequest(1, "A", 40),
		model.NewCutRequest(2, "B", 60),
	}

	result := Allocate(reels, cuts)

	require.True(t, result.Success)
	require.Len(t, result.Allocations, 1)
	detail := result.Allocations[0]
	assert.Equal(t, 1, detail.ReelID)
	require.Len(t, detail.AssignedCuts, 2)

	// B sorts before A (longest first) and is cut first.
	b, a := detail.AssignedCuts[0], detail.AssignedCuts[1]
	assert.Equal(t, "B", b.Name)
	assert.InDelta(t, 205, b.StartIndex, tolerance)
	assert.InDelta(t, 265, b.EndIndex, tolerance)
	assert.Equal(t, "A", a.Name)
	assert.InDelta(t, 265, a.StartIndex, tolerance)
	assert.InDelta(t, 305, a.EndIndex, tolerance)
	assert.InDelta(t, 0, detail.Remaining, tolerance)
	assert.InDelta(t, 305, detail.NewStartIndex, tolerance)
	assert.Empty(t, result.UnallocatedCuts)
}

func TestAllocate_FullReelStartsAtZero(t *testing.T) {
	reels := []model.Reel{model.NewReel(1, model.MaxReelLength)}
	cuts := []model.CutRequest{
		model.NewCutRequest(1, "A", 40),
		model.NewCutRequest(2, "B", 60),
	}

	result := Allocate(reels, cuts)

	require.True(t, result.Success)
	d := result.Allocations[0]
	assert.InDelta(t, 0, d.AssignedCuts[0].StartIndex, tolerance)
	assert.InDelta(t, 60, d.AssignedCuts[0].EndIndex, tolerance)
	assert.InDelta(t, 60, d.AssignedCuts[1].StartIndex, tolerance)
	assert.InDelta(t, 100, d.AssignedCuts[1].EndIndex, tolerance)
	assert.InDelta(t, 205, d.Remaining, tolerance)
}

func TestAllocate_CutLongerThanReel(t *testing.T) {
	reels := []model.Reel{model.NewReel(1, 50)}
	cuts := []model.CutRequest{model.NewCutRequest(1, "X", 60)}

	result := Allocate(reels, cuts)

	assert.False(t, result.Success)
	require.Len(t, result.UnallocatedCuts, 1)
	assert.Equal(t, "X", result.UnallocatedCuts[0].Name)
	assert.Empty(t, result.Allocations[0].AssignedCuts)
	assert.InDelta(t, 50, result.Allocations[0].Remaining, tolerance)
}

func TestAllocate_ExactFitPreferred(t *testing.T) {
	reels := []model.Reel{model.NewReel(1, 10), model.NewReel(2, 100)}
	cuts := []model.CutRequest{model.NewCutRequest(1, "C", 10)}

	result := Allocate(reels, cuts)

	require.True(t, result.Success)
	assert.Len(t, result.Allocations[0].AssignedCuts, 1, "zero-waste reel should win")
	assert.Empty(t, result.Allocations[1].AssignedCuts)
	assert.InDelta(t, 0, result.Allocations[0].Remaining, tolerance)
}

func TestAllocate_ExactFitPreferredRegardlessOfOrder(t *testing.T) {
	reels := []model.Reel{model.NewReel(2, 100), model.NewReel(1, 10)}
	cuts := []model.CutRequest{model.NewCutRequest(1, "C", 10)}

	result := Allocate(reels, cuts)

	d, ok := result.Detail(1)
	require.True(t, ok)
	assert.Len(t, d.AssignedCuts, 1)
}

func TestAllocate_TieGoesToFirstReelInInputOrder(t *testing.T) {
	reels := []model.Reel{model.NewReel(7, 50), model.NewReel(3, 50)}
	cuts := []model.CutRequest{model.NewCutRequest(1, "A", 20)}

	result := Allocate(reels, cuts)

	require.True(t, result.Success)
	assert.Equal(t, 7, result.Allocations[0].ReelID)
	assert.Len(t, result.Allocations[0].AssignedCuts, 1, "first reel in input order wins a tie")
	assert.Empty(t, result.Allocations[1].AssignedCuts)
}

func TestAllocate_TieWithinEpsilonGoesToFirstReel(t *testing.T) {
	// 0.1+0.2 is not exactly 0.3 in binary floating point.
	reels := []model.Reel{model.NewReel(1, 0.1+0.2), model.NewReel(2, 0.3)}
	cuts := []model.CutRequest{model.NewCutRequest(1, "A", 0.3)}

	result := Allocate(reels, cuts)

	require.True(t, result.Success)
	assert.Len(t, result.Allocations[0].AssignedCuts, 1)
	assert.Equal(t, 0.0, result.Allocations[0].Remaining, "remaining should snap to zero")
}

func TestAllocate_RoundingNeverLeavesNegativeRemaining(t *testing.T) {
	reels := []model.Reel{model.NewReel(1, 0.3)}
	cuts := []model.CutRequest{
		model.NewCutRequest(1, "A", 0.1),
		model.NewCutRequest(2, "B", 0.1),
		model.NewCutRequest(3, "C", 0.1),
	}

	result := Allocate(reels, cuts)

	require.True(t, result.Success, "three 0.1 cuts fit a 0.3 reel")
	assert.GreaterOrEqual(t, result.Allocations[0].Remaining, 0.0)
	assert.Equal(t, 0.0, result.Allocations[0].Remaining)
}

func TestAllocate_StableOrderForEqualLengths(t *testing.T) {
	reels := []model.Reel{model.NewReel(1, 100)}
	cuts := []model.CutRequest{
		model.NewCutRequest(1, "first", 10),
		model.NewCutRequest(2, "long", 30),
		model.NewCutRequest(3, "second", 10),
		model.NewCutRequest(4, "third", 10),
	}

	result := Allocate(reels, cuts)

	var names []string
	for _, c := range result.Allocations[0].AssignedCuts {
		names = append(names, c.Name)
	}
	want := []string{"long", "first", "second", "third"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("assignment order mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocate_BestFitAcrossReels(t *testing.T) {
	reels := []model.Reel{
		model.NewReel(1, 100),
		model.NewReel(2, 45),
		model.NewReel(3, 70),
	}
	cuts := []model.CutRequest{
		model.NewCutRequest(1, "A", 40), // fits 45 best (waste 5)
		model.NewCutRequest(2, "B", 65), // fits 70 best (waste 5)
		model.NewCutRequest(3, "C", 90), // only 100 fits
	}

	result := Allocate(reels, cuts)

	require.True(t, result.Success)
	got := map[string]int{}
	for _, a := range result.Allocations {
		for _, c := range a.AssignedCuts {
			got[c.Name] = a.ReelID
		}
	}
	want := map[string]int{"A": 2, "B": 3, "C": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("placement mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocate_PartialAllocation(t *testing.T) {
	reels := []model.Reel{model.NewReel(1, 100)}
	cuts := []model.CutRequest{
		model.NewCutRequest(1, "A", 70),
		model.NewCutRequest(2, "B", 50),
		model.NewCutRequest(3, "C", 30),
	}

	result := Allocate(reels, cuts)

	assert.False(t, result.Success)
	require.Len(t, result.UnallocatedCuts, 1)
	assert.Equal(t, "B", result.UnallocatedCuts[0].Name)
	assert.Len(t, result.Allocations[0].AssignedCuts, 2)
	assert.InDelta(t, 0, result.Allocations[0].Remaining, tolerance)
}

func TestAllocate_DoesNotModifyInput(t *testing.T) {
	reels := []model.Reel{model.NewReel(1, 100), model.NewReel(2, 50)}
	cuts := []model.CutRequest{
		model.NewCutRequest(1, "A", 10),
		model.NewCutRequest(2, "B", 40),
	}
	reelsCopy := append([]model.Reel(nil), reels...)
	cutsCopy := append([]model.CutRequest(nil), cuts...)

	result := Allocate(reels, cuts)

	assert.Equal(t, reelsCopy, reels)
	assert.Equal(t, cutsCopy, cuts)
	assert.Equal(t, reelsCopy, result.ReelsBefore)

	// Mutating the snapshot must not reach the caller's slice.
	result.ReelsBefore[0].Length = 1
	assert.Equal(t, 100.0, reels[0].Length)
}

func TestAllocate_AllocationsFollowReelOrder(t *testing.T) {
	reels := []model.Reel{model.NewReel(5, 10), model.NewReel(2, 10), model.NewReel(9, 10)}
	cuts := []model.CutRequest{model.NewCutRequest(1, "A", 1)}

	result := Allocate(reels, cuts)

	var ids []int
	for _, a := range result.Allocations {
		ids = append(ids, a.ReelID)
	}
	assert.Equal(t, []int{5, 2, 9}, ids)
}

// randomInput builds a valid random instance within the input caps.
func randomInput(rng *rand.Rand) ([]model.Reel, []model.CutRequest) {
	nReels := 1 + rng.Intn(model.MaxReels)
	nCuts := 1 + rng.Intn(model.MaxCuts)
	reels := make([]model.Reel, nReels)
	for i := range reels {
		reels[i] = model.NewReel(i+1, math.Round((1+rng.Float64()*(model.MaxReelLength-1))*10)/10)
	}
	cuts := make([]model.CutRequest, nCuts)
	for i := range cuts {
		cuts[i] = model.NewCutRequest(i+1, "cut", math.Round((0.5+rng.Float64()*120)*10)/10)
	}
	return reels, cuts
}

func TestAllocate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		reels, cuts := randomInput(rng)
		result := Allocate(reels, cuts)

		// Every cut appears exactly once.
		seen := map[int]int{}
		for _, a := range result.Allocations {
			for _, c := range a.AssignedCuts {
				seen[c.ID]++
			}
		}
		for _, c := range result.UnallocatedCuts {
			seen[c.ID]++
		}
		require.Len(t, seen, len(cuts), "iteration %d", iter)
		for id, n := range seen {
			require.Equal(t, 1, n, "iteration %d: cut %d seen %d times", iter, id, n)
		}
		assert.Equal(t, len(result.UnallocatedCuts) == 0, result.Success)

		for _, a := range result.Allocations {
			reel, ok := result.ReelBefore(a.ReelID)
			require.True(t, ok)

			var used float64
			prevEnd := reel.StartIndex()
			for _, c := range a.AssignedCuts {
				// Span matches the request and cuts are contiguous, so none overlap.
				require.InDelta(t, c.Length, c.EndIndex-c.StartIndex, tolerance)
				require.InDelta(t, prevEnd, c.StartIndex, tolerance)
				require.LessOrEqual(t, c.EndIndex, reel.EndIndex()+tolerance)
				prevEnd = c.EndIndex
				used += c.Length
			}
			require.GreaterOrEqual(t, a.Remaining, 0.0)
			require.InDelta(t, math.Max(reel.Length-used, 0), a.Remaining, 1e-6)
		}
	}
}

func TestAllocate_BestFitGuarantee(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 200; iter++ {
		reels, cuts := randomInput(rng)
		result := Allocate(reels, cuts)

		placedOn := map[int]int{}
		for _, a := range result.Allocations {
			for _, c := range a.AssignedCuts {
				placedOn[c.ID] = a.ReelID
			}
		}

		// Replay the placements in allocation order and check no other reel
		// would have wasted less at the time each cut was placed.
		remaining := map[int]float64{}
		for _, r := range reels {
			remaining[r.ID] = r.Length
		}
		for _, c := range sortCutsForAllocation(cuts) {
			reelID, ok := placedOn[c.ID]
			if !ok {
				for _, r := range reels {
					require.False(t, fits(remaining[r.ID], c.Length),
						"iteration %d: cut %d unallocated but reel %d fits", iter, c.ID, r.ID)
				}
				continue
			}
			waste := remaining[reelID] - c.Length
			for _, r := range reels {
				if r.ID == reelID || !fits(remaining[r.ID], c.Length) {
					continue
				}
				require.GreaterOrEqual(t, remaining[r.ID]-c.Length, waste-tolerance,
					"iteration %d: cut %d placed on reel %d but reel %d wastes less", iter, c.ID, reelID, r.ID)
			}
			remaining[reelID] = clampRemaining(remaining[reelID] - c.Length)
		}
	}
}

func TestAllocate_AddingFittingReelReducesUnallocated(t *testing.T) {
	tests := []struct {
		name  string
		reels []model.Reel
		cuts  []model.CutRequest
		extra model.Reel
	}{
		{
			name:  "single reel too short",
			reels: []model.Reel{model.NewReel(1, 50)},
			cuts:  []model.CutRequest{model.NewCutRequest(1, "A", 60), model.NewCutRequest(2, "B", 30)},
			extra: model.NewReel(2, 60),
		},
		{
			name:  "middle cut squeezed out",
			reels: []model.Reel{model.NewReel(1, 100), model.NewReel(2, 40)},
			cuts: []model.CutRequest{
				model.NewCutRequest(1, "A", 90),
				model.NewCutRequest(2, "B", 50),
				model.NewCutRequest(3, "C", 35),
			},
			extra: model.NewReel(3, 50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := Allocate(tt.reels, tt.cuts)
			require.False(t, before.Success)

			after := Allocate(append(append([]model.Reel(nil), tt.reels...), tt.extra), tt.cuts)

			assert.Less(t, len(after.UnallocatedCuts), len(before.UnallocatedCuts))
			assert.True(t, after.Success)
		})
	}
}

func TestSelectBestFit_NoCandidates(t *testing.T) {
	states := []reelState{{id: 1, remaining: 5}, {id: 2, remaining: 9.99}}
	assert.Equal(t, -1, selectBestFit(states, 10))
	assert.Equal(t, -1, selectBestFit(nil, 1))
}

func TestSortCutsForAllocation_NearEqualLengthsIndependentOfInputOrder(t *testing.T) {
	a := model.NewCutRequest(1, "a", 1)
	b := model.NewCutRequest(2, "b", 1+0.6e-9)
	c := model.NewCutRequest(3, "c", 1+1.2e-9)

	orders := [][]model.CutRequest{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, in := range orders {
		var ids []int
		for _, cut := range sortCutsForAllocation(in) {
			ids = append(ids, cut.ID)
		}
		if diff := cmp.Diff([]int{3, 2, 1}, ids); diff != "" {
			t.Errorf("sort of %v mismatch (-want +got):\n%s", in, diff)
		}
	}
}

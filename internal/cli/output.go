package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/ReelCut/internal/engine"
	"github.com/piwi3910/ReelCut/internal/model"
)

func printResult(w io.Writer, result model.AllocationResult, policy model.Policy) {
	fmt.Fprintf(w, "Policy: %s\n\n", policy)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REEL\tBEFORE\tCUTS\tSTART\tNEXT START\tREMAINING")
	for _, a := range result.Allocations {
		before, _ := result.ReelBefore(a.ReelID)
		fmt.Fprintf(tw, "#%d\t%.1fm\t%d\t%.1f\t%.1f\t%.1fm\n",
			a.ReelID, before.Length, len(a.AssignedCuts), before.StartIndex(), a.NewStartIndex, a.Remaining)
		for _, c := range a.AssignedCuts {
			fmt.Fprintf(tw, "\t  #%d %s\t%.1fm\t%.1f\t%.1f\t\n", c.ID, c.Name, c.Length, c.StartIndex, c.EndIndex)
		}
	}
	tw.Flush()

	fmt.Fprintf(w, "\nReels used: %d  Cuts placed: %d  Leftover: %.1fm  Efficiency: %.1f%%\n",
		result.ReelsUsed(), result.PlacedCount(), result.TotalLeftover(), result.Efficiency())

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, msg := range result.Warnings {
			fmt.Fprintf(w, "  %s\n", msg)
		}
	}
	if len(result.UnallocatedCuts) > 0 {
		fmt.Fprintln(w, "\nUnallocated cuts:")
		for _, c := range result.UnallocatedCuts {
			fmt.Fprintf(w, "  #%d %s (%.1fm)\n", c.ID, c.Name, c.Length)
		}
	}
}

// printEstimate explains an infeasible plan in terms of missing stock.
func printEstimate(w io.Writer, est model.StockEstimate) {
	fmt.Fprintf(w, "\nRequested %.1fm, available %.1fm on the given reels.\n", est.TotalRequested, est.TotalAvailable)
	if est.OversizeCuts > 0 {
		fmt.Fprintf(w, "%d cuts are longer than a full %.0fm reel.\n", est.OversizeCuts, model.MaxReelLength)
	}
	if est.Shortfall > 0 {
		fmt.Fprintf(w, "Short by %.1fm: at least %d more full reels are needed.\n", est.Shortfall, est.ExtraReelsMin)
	}
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tPOLICY\tREELS USED\tLEFTOVER\tEFFICIENCY\tWARNINGS\tUNALLOCATED")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1fm\t%.1f%%\t%d\t%d\n",
			r.Scenario.Name, r.Scenario.Policy, r.ReelsUsed, r.TotalLeftover, r.Efficiency, r.WarningCount, r.UnallocatedCount)
	}
	tw.Flush()
}

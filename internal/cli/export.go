package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ReelCut/internal/engine"
	"github.com/piwi3910/ReelCut/internal/export"
	"github.com/piwi3910/ReelCut/internal/model"
	"github.com/piwi3910/ReelCut/internal/project"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		dir      string
		formats  []string
		planFile string
		batchID  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the cut journal (xlsx, tags) or a plan (pdf, dxf)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := export.ParseFormats(formats)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = a.cfg.ExportDir
			}

			journal, closeJournal, err := a.openJournal()
			if err != nil {
				return err
			}
			defer closeJournal()

			entries, err := journal.List(cmd.Context())
			if err != nil {
				return err
			}
			if batchID != "" {
				var filtered []model.CutLogEntry
				for _, e := range entries {
					if e.BatchID == batchID {
						filtered = append(filtered, e)
					}
				}
				if len(filtered) == 0 {
					return fmt.Errorf("no journal entries for batch %q", batchID)
				}
				entries = filtered
			}

			b := export.Bundle{Entries: entries, Now: time.Now()}
			if planFile != "" {
				plan, err := project.LoadPlan(planFile)
				if err != nil {
					return err
				}
				result, err := engine.Run(plan.Reels, plan.Cuts, plan.Policy)
				if err != nil {
					return err
				}
				b.Result = &result
				b.Report = export.PlanReport{Title: plan.Name, Policy: plan.Policy}
			}

			paths, err := export.ExportAll(cmd.Context(), dir, b, fs)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default from config)")
	cmd.Flags().StringSliceVar(&formats, "format", []string{"xlsx"}, "Export formats: xlsx, tags, pdf, dxf or all")
	cmd.Flags().StringVar(&planFile, "plan", "", "Plan file to calculate for pdf and dxf exports")
	cmd.Flags().StringVar(&batchID, "batch", "", "Only export entries of this batch")
	return cmd
}

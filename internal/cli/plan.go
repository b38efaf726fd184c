package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/ReelCut/internal/engine"
	"github.com/piwi3910/ReelCut/internal/export"
	"github.com/piwi3910/ReelCut/internal/importer"
	"github.com/piwi3910/ReelCut/internal/model"
	"github.com/piwi3910/ReelCut/internal/planner"
	"github.com/piwi3910/ReelCut/internal/project"
)

// inputFlags select where reels, cuts and the policy come from.
type inputFlags struct {
	reelsFile string
	cutsFile  string
	useStock  bool
	stockPath string
	mode      string
	limit     int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.reelsFile, "reels", "", "CSV/XLSX file with reels (id,length)")
	cmd.Flags().StringVar(&f.cutsFile, "cuts", "", "CSV/XLSX file with cuts (id,name,length[,qty])")
	cmd.Flags().BoolVar(&f.useStock, "stock", false, "Take reels from the reel stock")
	cmd.Flags().StringVar(&f.stockPath, "stock-file", "", "Reel stock file (default ~/.reelcut/stock.json)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Policy mode: standard or strict")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Strict policy limit in metres (5 or 10)")
}

func (f *inputFlags) stockFile() string {
	if f.stockPath != "" {
		return f.stockPath
	}
	return project.DefaultStockPath()
}

// loadPlan assembles a plan from an optional plan file, imported lists,
// the reel stock and the policy flags, in that order of precedence.
func (a *app) loadPlan(cmd *cobra.Command, args []string, f *inputFlags) (model.Plan, error) {
	plan := model.NewPlan()
	a.cfg.ApplyToPlan(&plan)

	if len(args) > 0 {
		loaded, err := project.LoadPlan(args[0])
		if err != nil {
			return model.Plan{}, err
		}
		plan = loaded
	}

	if f.reelsFile != "" {
		reels, err := a.importList(f.reelsFile, importer.KindReels)
		if err != nil {
			return model.Plan{}, err
		}
		plan.Reels = reels.Reels
	}
	if f.cutsFile != "" {
		cuts, err := a.importList(f.cutsFile, importer.KindCuts)
		if err != nil {
			return model.Plan{}, err
		}
		plan.Cuts = cuts.Cuts
	}
	if f.useStock {
		stock, err := project.LoadStock(f.stockFile())
		if err != nil {
			return model.Plan{}, err
		}
		plan.Reels = stock.Reels
	}

	if cmd.Flags().Changed("mode") || cmd.Flags().Changed("limit") {
		mode := f.mode
		if mode == "" && f.limit != 0 {
			mode = string(model.PolicyStrict)
		}
		policy, err := model.ParsePolicy(mode, f.limit)
		if err != nil {
			return model.Plan{}, err
		}
		plan.Policy = policy
	}

	if len(plan.Reels) == 0 || len(plan.Cuts) == 0 {
		return model.Plan{}, fmt.Errorf("need reels and cuts: pass a plan file, or --reels/--stock and --cuts")
	}
	return plan, nil
}

func (a *app) importList(path string, kind importer.Kind) (importer.ImportResult, error) {
	res := importer.ImportFile(path, kind)
	for _, w := range res.Warnings {
		a.log.WithField("file", path).Warn(w)
	}
	if len(res.Errors) > 0 {
		return res, fmt.Errorf("cannot import %s from %s:\n  %s", kind, path, strings.Join(res.Errors, "\n  "))
	}
	return res, nil
}

func newPlanCmd(a *app) *cobra.Command {
	var (
		in        inputFlags
		dryRun    bool
		consume   bool
		saveTo    string
		exportDir string
		formats   []string
	)

	cmd := &cobra.Command{
		Use:   "plan [plan-file]",
		Short: "Allocate cuts to reels and record them in the journal",
		Long: "Allocate every cut to a reel, longest first, picking the reel that is left\n" +
			"with the least stock. When every cut fits, the cuts are appended to the\n" +
			"journal. Exits with status 2 when some cuts could not be placed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if consume && !in.useStock {
				return fmt.Errorf("--consume needs --stock: only reels taken from the stock can be consumed")
			}
			plan, err := a.loadPlan(cmd, args, &in)
			if err != nil {
				return err
			}

			journal, closeJournal, err := a.openJournal()
			if err != nil {
				return err
			}
			defer closeJournal()

			p := planner.New(journal, planner.WithLogger(a.log), planner.WithDryRun(dryRun))
			out, err := p.Calculate(cmd.Context(), plan.Reels, plan.Cuts, plan.Policy)
			if errors.Is(err, engine.ErrInvalidInput) {
				return err
			}

			w := cmd.OutOrStdout()
			printResult(w, out.Result, plan.Policy)
			if err != nil {
				return err
			}
			if !out.Result.Success {
				printEstimate(w, model.CalculateStockEstimate(plan.Reels, plan.Cuts))
			}
			if len(out.Entries) > 0 {
				fmt.Fprintf(w, "\nRecorded %d cuts in the journal (batch %s).\n", len(out.Entries), out.BatchID)
			} else if dryRun && out.Result.Success {
				fmt.Fprintln(w, "\nDry run: journal not updated.")
			}

			if saveTo != "" {
				if err := project.SavePlan(saveTo, plan); err != nil {
					return err
				}
				a.log.WithField("path", saveTo).Info("plan saved")
			}

			if consume && out.Result.Success && !dryRun {
				if err := a.consumeStock(in.stockFile(), out.Result); err != nil {
					return err
				}
			}

			if exportDir != "" {
				fs, err := export.ParseFormats(formats)
				if err != nil {
					return err
				}
				result := out.Result
				paths, err := export.ExportAll(cmd.Context(), exportDir, export.Bundle{
					Entries: out.Entries,
					Result:  &result,
					Report:  export.PlanReport{Title: plan.Name, Policy: plan.Policy},
					Now:     time.Now(),
				}, fs)
				if err != nil {
					return err
				}
				for _, path := range paths {
					fmt.Fprintf(w, "Wrote %s\n", path)
				}
			}

			if !out.Result.Success {
				return ErrInfeasible
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Calculate without touching the journal or stock")
	cmd.Flags().BoolVar(&consume, "consume", false, "Replace used stock reels by their leftovers after a successful run (needs --stock)")
	cmd.Flags().StringVar(&saveTo, "save", "", "Save the resolved plan to this file (.reelcut/.json/.yaml)")
	cmd.Flags().StringVar(&exportDir, "export", "", "Directory to write exports to")
	cmd.Flags().StringSliceVar(&formats, "format", []string{"pdf"}, "Export formats: xlsx, tags, pdf, dxf or all")
	return cmd
}

func (a *app) consumeStock(path string, result model.AllocationResult) error {
	stock, err := project.LoadStock(path)
	if err != nil {
		return err
	}
	before := len(stock.Reels)
	stock.Consume(result)
	if err := project.SaveStock(path, stock); err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"path":    path,
		"removed": before - len(stock.Reels),
	}).Info("reel stock updated")
	return nil
}

func newCompareCmd(a *app) *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Show how the plan fares under each clean-reel policy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(cmd, args, &in)
			if err != nil {
				return err
			}
			results, err := engine.CompareScenarios(engine.BuildDefaultScenarios(plan.Policy), plan.Reels, plan.Cuts)
			if err != nil {
				return err
			}
			printComparison(cmd.OutOrStdout(), results)
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/ReelCut/internal/model"
	"github.com/piwi3910/ReelCut/internal/project"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import configuration and journal in one file",
	}

	var planFile string
	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write config, journal and optionally a plan to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, closeJournal, err := a.openJournal()
			if err != nil {
				return err
			}
			defer closeJournal()

			entries, err := journal.List(cmd.Context())
			if err != nil {
				return err
			}

			var plan *model.Plan
			if planFile != "" {
				p, err := project.LoadPlan(planFile)
				if err != nil {
					return err
				}
				plan = &p
			}

			if err := project.ExportAllData(args[0], a.cfg, plan, entries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d journal entries to %s\n", len(entries), args[0])
			return nil
		},
	}
	exportCmd.Flags().StringVar(&planFile, "plan", "", "Plan file to include")

	var (
		withConfig bool
		planOut    string
	)
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Append a backup's journal entries to the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}

			if withConfig {
				if err := project.SaveAppConfig(a.configPath, data.Config); err != nil {
					return err
				}
				a.cfg = data.Config
				a.log.WithField("path", a.configPath).Info("configuration restored")
			}

			journal, closeJournal, err := a.openJournal()
			if err != nil {
				return err
			}
			defer closeJournal()

			if len(data.Journal) > 0 {
				if err := journal.Append(cmd.Context(), data.Journal); err != nil {
					return fmt.Errorf("failed to restore journal: %w", err)
				}
			}

			if planOut != "" && data.Plan != nil {
				if err := project.SavePlan(planOut, *data.Plan); err != nil {
					return err
				}
			}

			a.log.WithFields(logrus.Fields{
				"version": data.Version,
				"entries": len(data.Journal),
			}).Debug("backup imported")
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d journal entries from %s\n", len(data.Journal), args[0])
			return nil
		},
	}
	importCmd.Flags().BoolVar(&withConfig, "config", false, "Also replace the configuration with the backed up one")
	importCmd.Flags().StringVar(&planOut, "plan-out", "", "Write the backed up plan to this file")

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}

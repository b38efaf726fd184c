package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ReelCut/internal/cutlog"
)

func newLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect or clear the cut journal",
	}

	var (
		asJSON  bool
		oldest  bool
		batchID string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Args:  cobra.NoArgs,
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
			if batchID != "" {
				filtered := entries[:0:0]
				for _, e := range entries {
					if e.BatchID == batchID {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}
			if !oldest {
				entries = cutlog.NewestFirst(entries)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(w, "The journal is empty.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CUT AT\tREEL\tNAME\tLENGTH\tSTART\tEND\tID")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t#%d\t%s\t%.1fm\t%.1f\t%.1f\t%s\n",
					e.Timestamp.Local().Format("2006-01-02 15:04"), e.ReelID, e.Name, e.Length, e.StartIndex, e.EndIndex, e.ID)
			}
			return tw.Flush()
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	list.Flags().BoolVar(&oldest, "oldest-first", false, "Print in append order")
	list.Flags().StringVar(&batchID, "batch", "", "Only show entries of this batch")

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show totals of the journal",
		Args:  cobra.NoArgs,
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
			s := cutlog.Summarize(entries)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Total cuts: %d\n", s.TotalCuts)
			fmt.Fprintf(w, "Total length cut: %.1fm\n", s.TotalLength)
			fmt.Fprintf(w, "Batches: %d\n", len(cutlog.Batches(entries)))
			return nil
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the journal without --yes")
			}
			journal, closeJournal, err := a.openJournal()
			if err != nil {
				return err
			}
			defer closeJournal()

			if err := journal.Clear(cmd.Context()); err != nil {
				return err
			}
			a.log.Info("journal cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "Confirm clearing the journal")

	cmd.AddCommand(list, summary, clearCmd)
	return cmd
}

package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ReelCut/internal/importer"
	"github.com/piwi3910/ReelCut/internal/model"
	"github.com/piwi3910/ReelCut/internal/project"
)

func newStockCmd(a *app) *cobra.Command {
	var stockPath string
	path := func() string {
		if stockPath != "" {
			return stockPath
		}
		return project.DefaultStockPath()
	}

	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Manage the reels on hand",
	}
	cmd.PersistentFlags().StringVar(&stockPath, "file", "", "Reel stock file (default ~/.reelcut/stock.json)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List reels in stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stock, err := project.LoadStock(path())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(stock.Reels) == 0 {
				fmt.Fprintln(w, "No reels in stock.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "REEL\tLENGTH\tSTART INDEX")
			for _, r := range stock.Reels {
				fmt.Fprintf(tw, "#%d\t%.1fm\t%.1f\n", r.ID, r.Length, r.StartIndex())
			}
			tw.Flush()
			fmt.Fprintf(w, "\n%d reels, %.1fm on hand\n", len(stock.Reels), stock.TotalLength())
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <length>...",
		Short: "Add reels with the given usable lengths in metres",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stock, err := project.LoadStock(path())
			if err != nil {
				return err
			}
			for _, arg := range args {
				length, err := strconv.ParseFloat(strings.ReplaceAll(arg, ",", "."), 64)
				if err != nil {
					return fmt.Errorf("invalid length %q", arg)
				}
				if length <= 0 || length > model.MaxReelLength {
					return fmt.Errorf("reel length %.1f must be in (0, %.0f]", length, model.MaxReelLength)
				}
				r := stock.Add(length)
				fmt.Fprintf(cmd.OutOrStdout(), "Added reel #%d (%.1fm)\n", r.ID, r.Length)
			}
			return project.SaveStock(path(), stock)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <id>...",
		Short: "Remove reels from stock",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stock, err := project.LoadStock(path())
			if err != nil {
				return err
			}
			for _, arg := range args {
				id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
				if err != nil {
					return fmt.Errorf("invalid reel id %q", arg)
				}
				if !stock.Remove(id) {
					return fmt.Errorf("reel #%d is not in stock", id)
				}
			}
			return project.SaveStock(path(), stock)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge reels from a stock JSON, CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stock, err := project.LoadStock(path())
			if err != nil {
				return err
			}

			var added int
			if strings.EqualFold(filepath.Ext(args[0]), ".json") {
				stock, added, err = project.ImportStock(args[0], stock)
				if err != nil {
					return err
				}
			} else {
				res, err := a.importList(args[0], importer.KindReels)
				if err != nil {
					return err
				}
				added = stock.Merge(model.Stock{Reels: res.Reels})
			}

			if err := project.SaveStock(path(), stock); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d reels\n", added)
			return nil
		},
	}

	cmd.AddCommand(list, add, remove, importCmd)
	return cmd
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/datojulien/liftlog/internal/analysis"
	"github.com/datojulien/liftlog/internal/models"
)

func daysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "days [date]",
		Short: "Show workout days, or the full set tables for one day",
		Long: `Without an argument, lists every workout day (newest first) with its
summary. With a YYYY-MM-DD argument, shows the set-by-set tables for that
day, grouped by exercise. Record-holding sets are marked PR.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			snap, err := loadSnapshot(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("days: %w", err)
			}

			if len(args) == 0 {
				printDayList(snap)
				return nil
			}

			day, found := snap.DayByKey(args[0])
			if !found {
				return fmt.Errorf("days: no sets logged on %s", args[0])
			}
			printDayDetail(day)
			return nil
		},
	}
	return cmd
}

func printDayList(snap *analysis.Snapshot) {
	if len(snap.Days) == 0 {
		fmt.Println("No workout data found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSETS\tVOLUME\tTOP LIFT")
	for _, d := range snap.Days {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", d.Key, d.Summary.TotalSets, kg(d.Summary.TotalVolume), kg(d.Summary.TopLift))
	}
	_ = w.Flush()
}

func printDayDetail(day analysis.DayGroup) {
	fmt.Printf("Summary for %s: %d sets, %s volume, %s top lift\n",
		day.Key, day.Summary.TotalSets, kg(day.Summary.TotalVolume), kg(day.Summary.TopLift))

	// Exercises in first-set order within the day.
	var order []string
	byKey := make(map[string][]*models.SetRecord)
	for _, rec := range day.Sets {
		if _, ok := byKey[rec.Key]; !ok {
			order = append(order, rec.Key)
		}
		byKey[rec.Key] = append(byKey[rec.Key], rec)
	}

	for _, key := range order {
		sets := byKey[key]
		fmt.Printf("\n%s\n", sets[0].Exercise)
		printSetTable(sets)
	}
}

// printSetTable renders one group of sets in the dashboard column layout.
func printSetTable(sets []*models.SetRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SET\tREPS\tWEIGHT\tMULT\tACTUAL\tVOLUME\tPR")
	for _, rec := range sets {
		pr := ""
		if rec.IsRecord {
			pr = "PR"
		}
		fmt.Fprintf(w, "%d\t%d\t%.2f\t%g\t%.2f\t%.2f\t%s\n",
			rec.SetNumber, rec.Reps, rec.Weight, rec.Multiplier, rec.ActualWeight, rec.Volume, pr)
	}
	_ = w.Flush()
}

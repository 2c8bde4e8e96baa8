package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/datojulien/liftlog/internal/analysis"
)

func recordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Show the personal record for every exercise",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			snap, err := loadSnapshot(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("records: %w", err)
			}

			if len(snap.Exercises) == 0 {
				fmt.Println("No workout data found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EXERCISE\tACTUAL\tWEIGHT\tMULT\tREPS\tDATE")
			for _, e := range snap.Exercises {
				rec := e.Record
				if rec == nil {
					continue
				}
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%g\t%d\t%s\n",
					e.Name, rec.ActualWeight, rec.Weight, rec.Multiplier, rec.Reps,
					rec.Day().Format(analysis.DayKeyLayout))
			}
			return w.Flush()
		},
	}
}

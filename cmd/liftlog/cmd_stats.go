package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datojulien/liftlog/internal/analysis"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dataset statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			snap, err := loadSnapshot(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}

			stats := snap.Stats
			fmt.Printf("Rows accepted: %d\n", stats.RowsAccepted)
			fmt.Printf("Rows filtered: %d\n", stats.RowsFiltered)
			fmt.Printf("Rows rejected: %d\n", stats.RowsRejected)

			if len(stats.RejectedByReason) > 0 {
				fmt.Println("\nRejections by reason:")
				for reason, count := range stats.RejectedByReason {
					fmt.Printf("  %-18s %d\n", reason, count)
				}
			}

			fmt.Printf("\nDays:      %d\n", stats.Days)
			fmt.Printf("Exercises: %d\n", stats.Exercises)
			if !stats.FirstDate.IsZero() {
				fmt.Printf("Span:      %s to %s\n",
					stats.FirstDate.Format(analysis.DayKeyLayout),
					stats.LastDate.Format(analysis.DayKeyLayout))
			}

			return nil
		},
	}
}

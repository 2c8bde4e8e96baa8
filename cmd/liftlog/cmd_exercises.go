package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/datojulien/liftlog/internal/analysis"
	"github.com/datojulien/liftlog/internal/models"
)

func exercisesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercises [name]",
		Short: "Show exercises, or the full set history for one exercise",
		Long: `Without an argument, lists every exercise alphabetically with its
summary and personal record. With a name argument (case-insensitive),
shows the set-by-set tables for that exercise, newest day first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			snap, err := loadSnapshot(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("exercises: %w", err)
			}

			if len(args) == 0 {
				printExerciseList(snap)
				return nil
			}

			exercise, found := snap.ExerciseByName(args[0])
			if !found {
				return fmt.Errorf("exercises: %q not found", args[0])
			}
			printExerciseDetail(exercise)
			return nil
		},
	}
	return cmd
}

func printExerciseList(snap *analysis.Snapshot) {
	if len(snap.Exercises) == 0 {
		fmt.Println("No workout data found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EXERCISE\tSETS\tVOLUME\tBEST LIFT\tPR DATE")
	for _, e := range snap.Exercises {
		prDate := "-"
		if e.Record != nil {
			prDate = e.Record.Day().Format(analysis.DayKeyLayout)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			e.Name, e.Summary.TotalSets, kg(e.Summary.TotalVolume), kg(e.Summary.TopLift), prDate)
	}
	_ = w.Flush()
}

func printExerciseDetail(exercise analysis.ExerciseGroup) {
	fmt.Printf("Summary for %s: %d sets, %s volume, %s best lift\n",
		exercise.Name, exercise.Summary.TotalSets, kg(exercise.Summary.TotalVolume), kg(exercise.Summary.TopLift))
	if exercise.Record != nil {
		fmt.Printf("Personal record: %s x %d on %s\n",
			kg(exercise.Record.ActualWeight), exercise.Record.Reps,
			exercise.Record.Day().Format(analysis.DayKeyLayout))
	}

	// Days newest first; sets within a day are already in timestamp order.
	var order []string
	byDay := make(map[string][]*models.SetRecord)
	for _, rec := range exercise.Sets {
		key := rec.Day().Format(analysis.DayKeyLayout)
		if _, ok := byDay[key]; !ok {
			order = append(order, key)
		}
		byDay[key] = append(byDay[key], rec)
	}

	for i := len(order) - 1; i >= 0; i-- {
		key := order[i]
		fmt.Printf("\n%s\n", key)
		printSetTable(byDay[key])
	}
}

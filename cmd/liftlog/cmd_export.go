package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		outPath string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full computed snapshot as JSON",
		Long: `Exports the complete snapshot — both groupings with annotated sets,
summaries, personal records, and the rejected-row report — as JSON.

Use - as the output path to write to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			snap, err := loadSnapshot(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			var w io.Writer
			if outPath == "" || outPath == "-" {
				w = os.Stdout
			} else {
				f, createErr := os.Create(outPath)
				if createErr != nil {
					return fmt.Errorf("export: creating file: %w", createErr)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			enc := json.NewEncoder(w)
			if !compact {
				enc.SetIndent("", "  ")
			}
			if encErr := enc.Encode(snap); encErr != nil {
				return fmt.Errorf("export: encoding snapshot: %w", encErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "-", "path to output file (- for stdout)")
	cmd.Flags().BoolVar(&compact, "compact", false, "emit compact JSON instead of indented")
	return cmd
}

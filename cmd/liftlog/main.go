package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/datojulien/liftlog/internal/analysis"
	"github.com/datojulien/liftlog/internal/config"
	"github.com/datojulien/liftlog/internal/ingest"
	"github.com/datojulien/liftlog/internal/source"
)

var (
	cfg      *config.Config
	flagFile string
	flagURL  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:   "liftlog",
		Short: "liftlog — workout log metrics and personal records",
		Long:  "liftlog ingests a workout export (CSV) and computes per-set lifted weight and volume, per-day and per-exercise summaries, and personal records.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if flagFile != "" {
				cfg.Source.Path = flagFile
				cfg.Source.URL = ""
			}
			if flagURL != "" {
				cfg.Source.URL = flagURL
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "path to the workout export CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "URL of the workout export CSV (overrides config)")

	rootCmd.AddCommand(
		daysCmd(),
		exercisesCmd(),
		recordsCmd(),
		statsCmd(),
		exportCmd(),
		serveCmd(),
		mcpCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// snapshotLoader wires source, ingest and the aggregation engine into an
// analysis.Loader: each Load rereads the export and recomputes everything.
type snapshotLoader struct {
	src    *source.Source
	keep   analysis.Predicate
	logger *slog.Logger
}

func newLoader(logger *slog.Logger) *snapshotLoader {
	preds := []analysis.Predicate{
		analysis.ExcludeExercises(cfg.Filters.ExcludeExercises),
	}
	if cfg.Filters.ExcludeWarmups {
		preds = append(preds, analysis.ExcludeWarmups())
	}
	return &snapshotLoader{
		src:    source.New(cfg.Source.Path, cfg.Source.URL, logger),
		keep:   analysis.All(preds...),
		logger: logger,
	}
}

func (l *snapshotLoader) Load(ctx context.Context) (*analysis.Snapshot, error) {
	r, err := l.src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	batch, err := ingest.ReadAll(r)
	if err != nil {
		return nil, err
	}

	snap := analysis.Build(batch.Records, batch.Rejected, l.keep)
	l.logger.Debug("snapshot built",
		"id", snap.ID,
		"days", len(snap.Days),
		"exercises", len(snap.Exercises),
		"rejected", len(snap.Rejected),
	)
	return snap, nil
}

// loadSnapshot is the shared one-shot pipeline used by the display commands.
func loadSnapshot(ctx context.Context, logger *slog.Logger) (*analysis.Snapshot, error) {
	return newLoader(logger).Load(ctx)
}

// kg formats a weight or volume for table output.
func kg(v float64) string {
	return fmt.Sprintf("%.1f kg", v)
}

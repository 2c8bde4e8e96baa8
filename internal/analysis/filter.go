package analysis

import (
	"strings"

	"github.com/datojulien/liftlog/internal/models"
)

// Predicate decides whether a set record is kept for analysis.
// Filters run over the normalized record sequence before grouping, so the
// engine itself stays filter-free.
type Predicate func(models.SetRecord) bool

// KeepAll keeps every record.
func KeepAll() Predicate {
	return func(models.SetRecord) bool { return true }
}

// All combines predicates; a record is kept only if every predicate keeps it.
func All(preds ...Predicate) Predicate {
	return func(rec models.SetRecord) bool {
		for _, p := range preds {
			if !p(rec) {
				return false
			}
		}
		return true
	}
}

// ExcludeExercises drops records whose exercise name contains any of the
// given patterns, case-insensitively. This is how cardio entries like
// "Stair Stepper" are kept out of lifting metrics.
func ExcludeExercises(patterns []string) Predicate {
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			lowered = append(lowered, p)
		}
	}
	return func(rec models.SetRecord) bool {
		for _, p := range lowered {
			if strings.Contains(rec.Key, p) {
				return false
			}
		}
		return true
	}
}

// ExcludeWarmups drops warm-up sets.
func ExcludeWarmups() Predicate {
	return func(rec models.SetRecord) bool { return !rec.Warmup }
}

// Apply returns the records kept by the predicate, preserving input order.
func Apply(records []models.SetRecord, keep Predicate) []models.SetRecord {
	if keep == nil {
		return records
	}
	out := make([]models.SetRecord, 0, len(records))
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

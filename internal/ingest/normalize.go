// Package ingest parses raw workout-export rows into normalized set records.
// Row-level failures are collected per row and never abort the batch.
package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/datojulien/liftlog/internal/models"
)

// Sentinel reject reasons. Normalize wraps these so callers can classify
// a rejection with errors.Is.
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidNumeric  = errors.New("invalid numeric value")
	ErrMissingExercise = errors.New("missing exercise name")
)

// dateLayouts are the accepted timestamp formats, tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// RawRow is one undecoded row as read from the export, all fields as strings.
// Line is the 1-based line number in the source, for rejection reporting.
type RawRow struct {
	Line       int
	Date       string
	Exercise   string
	Reps       string
	Weight     string
	Duration   string
	Distance   string
	Incline    string
	Resistance string
	Warmup     string
	Note       string
	Multiplier string
}

// Normalize validates and converts a raw row into a SetRecord with derived
// metrics attached. It is a pure per-row transform with no side effects.
//
// Policy notes: a missing, blank or non-positive multiplier defaults to 1
// and is not an error. The warm-up field accepts TRUE/FALSE in any case;
// any other token reads as false because the field is advisory.
func Normalize(raw RawRow) (models.SetRecord, error) {
	var rec models.SetRecord

	date, err := parseDate(raw.Date)
	if err != nil {
		return rec, err
	}

	exercise := strings.TrimSpace(raw.Exercise)
	if exercise == "" {
		return rec, ErrMissingExercise
	}

	reps, err := parseReps(raw.Reps)
	if err != nil {
		return rec, err
	}

	weight, err := parseWeight(raw.Weight)
	if err != nil {
		return rec, err
	}

	rec = models.SetRecord{
		Date:       date,
		Exercise:   exercise,
		Key:        models.ExerciseKey(exercise),
		Reps:       reps,
		Weight:     weight,
		Multiplier: parseMultiplier(raw.Multiplier),
		Warmup:     strings.EqualFold(strings.TrimSpace(raw.Warmup), "TRUE"),
		Duration:   strings.TrimSpace(raw.Duration),
		Distance:   strings.TrimSpace(raw.Distance),
		Incline:    strings.TrimSpace(raw.Incline),
		Resistance: strings.TrimSpace(raw.Resistance),
		Note:       strings.TrimSpace(raw.Note),
	}
	rec.Derive()
	return rec, nil
}

// ReasonFor maps a Normalize error to its reject reason.
func ReasonFor(err error) models.RejectReason {
	switch {
	case errors.Is(err, ErrInvalidDate):
		return models.RejectInvalidDate
	case errors.Is(err, ErrMissingExercise):
		return models.RejectMissingExercise
	default:
		return models.RejectInvalidNumeric
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func parseReps(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil // a set with no rep count (e.g. timed work) is 0 reps
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: reps %q", ErrInvalidNumeric, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative reps %d", ErrInvalidNumeric, n)
	}
	return n, nil
}

func parseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil // bodyweight or cardio rows log no weight
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: weight %q", ErrInvalidNumeric, s)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: negative weight %g", ErrInvalidNumeric, f)
	}
	return f, nil
}

// parseMultiplier applies the policy default: absent, blank, unparsable or
// non-positive values all read as 1.
func parseMultiplier(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 1
	}
	return f
}

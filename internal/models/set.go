package models

import (
	"strings"
	"time"
)

// RejectReason classifies why a raw row was excluded from the dataset.
type RejectReason string

const (
	RejectInvalidDate     RejectReason = "invalid_date"
	RejectInvalidNumeric  RejectReason = "invalid_numeric"
	RejectMissingExercise RejectReason = "missing_exercise"
)

// ValidRejectReasons is the set of all recognized reject reasons.
var ValidRejectReasons = []RejectReason{
	RejectInvalidDate,
	RejectInvalidNumeric,
	RejectMissingExercise,
}

// IsValid returns true if the reject reason is recognized.
func (r RejectReason) IsValid() bool {
	for _, v := range ValidRejectReasons {
		if r == v {
			return true
		}
	}
	return false
}

// SetRecord is one logged exercise set, normalized and metric-annotated.
// Weight is the raw logged weight; ActualWeight and Volume are derived by
// Derive and are the only values downstream consumers may display.
type SetRecord struct {
	Date       time.Time `json:"date"`
	Exercise   string    `json:"exercise"` // original spelling, display only
	Key        string    `json:"key"`      // canonical grouping key
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight_kg"`
	Multiplier float64   `json:"multiplier"`
	Warmup     bool      `json:"is_warmup"`

	// Auxiliary fields carried through unmodified; never interpreted.
	Duration   string `json:"duration_s,omitempty"`
	Distance   string `json:"distance_m,omitempty"`
	Incline    string `json:"incline,omitempty"`
	Resistance string `json:"resistance,omitempty"`
	Note       string `json:"note,omitempty"`

	// Derived metrics.
	ActualWeight float64 `json:"actual_weight_kg"`
	Volume       float64 `json:"volume_kg"`

	// Annotations filled in during snapshot assembly.
	SetNumber int  `json:"set_number,omitempty"` // 1-based within (day, exercise)
	IsRecord  bool `json:"is_record,omitempty"`  // record-holding set of its exercise
}

// Derive computes ActualWeight and Volume from the raw fields.
// No rounding is applied; presentation rounding is a display concern.
func (s *SetRecord) Derive() {
	s.ActualWeight = s.Weight * s.Multiplier
	s.Volume = s.ActualWeight * float64(s.Reps)
}

// Day returns the calendar date of the set with the time of day stripped,
// in the set's own location.
func (s *SetRecord) Day() time.Time {
	y, m, d := s.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.Date.Location())
}

// ExerciseKey returns the canonical comparison key for an exercise name:
// whitespace-trimmed and lower-cased. The original spelling is preserved
// separately for display.
func ExerciseKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RejectedRow records a raw row that failed normalization.
// Rejections are data, not errors: they never abort a batch.
type RejectedRow struct {
	Line   int          `json:"line"`
	Reason RejectReason `json:"reason"`
	Detail string       `json:"detail,omitempty"`
}

// Summary is an ephemeral aggregate over a group of sets.
type Summary struct {
	TotalVolume float64 `json:"total_volume_kg"`
	TotalSets   int     `json:"total_sets"`
	TopLift     float64 `json:"top_lift_kg"`
}

// DatasetStats summarizes one loaded dataset.
type DatasetStats struct {
	RowsAccepted     int                  `json:"rows_accepted"`
	RowsRejected     int                  `json:"rows_rejected"`
	RowsFiltered     int                  `json:"rows_filtered"`
	RejectedByReason map[RejectReason]int `json:"rejected_by_reason,omitempty"`
	Days             int                  `json:"days"`
	Exercises        int                  `json:"exercises"`
	FirstDate        time.Time            `json:"first_date,omitzero"`
	LastDate         time.Time            `json:"last_date,omitzero"`
}

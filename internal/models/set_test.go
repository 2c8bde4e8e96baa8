package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	rec := SetRecord{
		Date:       time.Date(2025, 7, 16, 9, 9, 40, 0, time.UTC),
		Exercise:   "Dumbbell Row",
		Reps:       5,
		Weight:     31.75,
		Multiplier: 2,
	}
	rec.Derive()

	assert.InDelta(t, 63.5, rec.ActualWeight, 1e-9)
	assert.InDelta(t, 317.5, rec.Volume, 1e-9)
}

func TestDeriveIdentities(t *testing.T) {
	cases := []struct {
		reps       int
		weight     float64
		multiplier float64
	}{
		{5, 100, 1},
		{0, 50, 2},
		{12, 0, 1},
		{8, 22.5, 0.5},
	}
	for _, tc := range cases {
		rec := SetRecord{Reps: tc.reps, Weight: tc.weight, Multiplier: tc.multiplier}
		rec.Derive()
		assert.InDelta(t, tc.weight*tc.multiplier, rec.ActualWeight, 1e-9)
		assert.InDelta(t, rec.ActualWeight*float64(tc.reps), rec.Volume, 1e-9)
	}
}

func TestDay(t *testing.T) {
	rec := SetRecord{Date: time.Date(2025, 7, 16, 18, 30, 5, 0, time.UTC)}
	day := rec.Day()

	assert.Equal(t, time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC), day)
}

func TestExerciseKey(t *testing.T) {
	assert.Equal(t, "dumbbell row", ExerciseKey("  Dumbbell Row "))
	assert.Equal(t, "squat", ExerciseKey("SQUAT"))
	assert.Equal(t, "", ExerciseKey("   "))
}

func TestRejectReasonIsValid(t *testing.T) {
	for _, r := range ValidRejectReasons {
		t.Run(string(r), func(t *testing.T) {
			assert.True(t, r.IsValid())
		})
	}

	invalid := RejectReason("bogus")
	assert.False(t, invalid.IsValid())
}

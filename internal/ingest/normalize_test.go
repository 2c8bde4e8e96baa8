package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datojulien/liftlog/internal/models"
)

func validRaw() RawRow {
	return RawRow{
		Line:       2,
		Date:       "2025-07-16 09:09:40",
		Exercise:   "Dumbbell Row",
		Reps:       "5",
		Weight:     "31.75",
		Warmup:     "FALSE",
		Multiplier: "2",
	}
}

func TestNormalize(t *testing.T) {
	rec, err := Normalize(validRaw())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 7, 16, 9, 9, 40, 0, time.UTC), rec.Date)
	assert.Equal(t, "Dumbbell Row", rec.Exercise)
	assert.Equal(t, "dumbbell row", rec.Key)
	assert.Equal(t, 5, rec.Reps)
	assert.InDelta(t, 31.75, rec.Weight, 1e-9)
	assert.InDelta(t, 2, rec.Multiplier, 1e-9)
	assert.False(t, rec.Warmup)
	assert.InDelta(t, 63.5, rec.ActualWeight, 1e-9)
	assert.InDelta(t, 317.5, rec.Volume, 1e-9)
}

func TestNormalizeMultiplierDefault(t *testing.T) {
	for _, v := range []string{"", "  ", "0", "-1.5", "abc"} {
		t.Run("value="+v, func(t *testing.T) {
			raw := validRaw()
			raw.Multiplier = v
			rec, err := Normalize(raw)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, rec.Multiplier, 1e-9)
			assert.InDelta(t, 31.75, rec.ActualWeight, 1e-9)
		})
	}
}

func TestNormalizeWarmupToken(t *testing.T) {
	cases := map[string]bool{
		"TRUE":  true,
		"true":  true,
		" True": true,
		"FALSE": false,
		"":      false,
		"yes":   false, // advisory field: unknown tokens read as false
		"1":     false,
	}
	for token, want := range cases {
		raw := validRaw()
		raw.Warmup = token
		rec, err := Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, want, rec.Warmup, "token %q", token)
	}
}

func TestNormalizeDateLayouts(t *testing.T) {
	for _, v := range []string{
		"2025-07-16 09:09:40",
		"2025-07-16T09:09:40",
		"2025-07-16T09:09:40Z",
		"2025-07-16",
	} {
		raw := validRaw()
		raw.Date = v
		_, err := Normalize(raw)
		assert.NoError(t, err, "date %q", v)
	}
}

func TestNormalizeInvalidDate(t *testing.T) {
	for _, v := range []string{"", "yesterday", "16/07/2025"} {
		raw := validRaw()
		raw.Date = v
		_, err := Normalize(raw)
		require.Error(t, err, "date %q", v)
		assert.ErrorIs(t, err, ErrInvalidDate)
		assert.Equal(t, models.RejectInvalidDate, ReasonFor(err))
	}
}

func TestNormalizeInvalidNumeric(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RawRow)
	}{
		{"reps non-numeric", func(r *RawRow) { r.Reps = "abc" }},
		{"reps negative", func(r *RawRow) { r.Reps = "-3" }},
		{"reps fractional", func(r *RawRow) { r.Reps = "2.5" }},
		{"weight non-numeric", func(r *RawRow) { r.Weight = "heavy" }},
		{"weight negative", func(r *RawRow) { r.Weight = "-10" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRaw()
			tc.mutate(&raw)
			_, err := Normalize(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidNumeric)
			assert.Equal(t, models.RejectInvalidNumeric, ReasonFor(err))
		})
	}
}

func TestNormalizeBlankRepsAndWeight(t *testing.T) {
	// Timed or bodyweight entries leave reps/weight blank; that is a zero
	// value, not a malformed row.
	raw := validRaw()
	raw.Reps = ""
	raw.Weight = ""
	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Zero(t, rec.Reps)
	assert.Zero(t, rec.Weight)
	assert.Zero(t, rec.Volume)
}

func TestNormalizeMissingExercise(t *testing.T) {
	raw := validRaw()
	raw.Exercise = "   "
	_, err := Normalize(raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingExercise)
	assert.Equal(t, models.RejectMissingExercise, ReasonFor(err))
}

func TestNormalizeAuxPassthrough(t *testing.T) {
	raw := validRaw()
	raw.Duration = "60"
	raw.Distance = "0"
	raw.Incline = "2"
	raw.Resistance = "8"
	raw.Note = "felt strong"

	rec, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "60", rec.Duration)
	assert.Equal(t, "0", rec.Distance)
	assert.Equal(t, "2", rec.Incline)
	assert.Equal(t, "8", rec.Resistance)
	assert.Equal(t, "felt strong", rec.Note)
}

package analysis

import (
	"time"

	"github.com/datojulien/liftlog/internal/models"
)

// set builds a derived SetRecord for tests.
func set(exercise, date string, reps int, weight, multiplier float64) models.SetRecord {
	d, err := time.Parse("2006-01-02 15:04:05", date)
	if err != nil {
		panic(err)
	}
	rec := models.SetRecord{
		Date:       d,
		Exercise:   exercise,
		Key:        models.ExerciseKey(exercise),
		Reps:       reps,
		Weight:     weight,
		Multiplier: multiplier,
	}
	rec.Derive()
	return rec
}

// ptrs copies records onto the heap and returns a pointer slice, the shape
// groups use.
func ptrs(records ...models.SetRecord) []*models.SetRecord {
	out := make([]*models.SetRecord, len(records))
	for i := range records {
		rec := records[i]
		out[i] = &rec
	}
	return out
}

// Package analysis is the metrics aggregation and personal-record engine.
// It turns a normalized batch of set records into an immutable snapshot of
// date- and exercise-indexed views, recomputed in full on every build.
package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/datojulien/liftlog/internal/metrics"
	"github.com/datojulien/liftlog/internal/models"
)

// DayKeyLayout formats a day-group key, e.g. "2025-07-16".
const DayKeyLayout = "2006-01-02"

// DayGroup holds every set logged on one calendar date, ascending by
// time of day. Sets are shared with the exercise groups of the same
// snapshot; groups never copy record data.
type DayGroup struct {
	Date    time.Time           `json:"date"`
	Key     string              `json:"key"` // Date formatted with DayKeyLayout
	Sets    []*models.SetRecord `json:"sets"`
	Summary models.Summary      `json:"summary"`
}

// ExerciseGroup holds every set of one exercise, ascending by timestamp.
type ExerciseGroup struct {
	Name    string              `json:"name"` // first-seen original spelling
	Key     string              `json:"key"`  // canonical key
	Sets    []*models.SetRecord `json:"sets"`
	Summary models.Summary      `json:"summary"`
	Record  *models.SetRecord   `json:"record,omitempty"`
}

// Snapshot is one full computation over one input batch. It is never
// mutated after Build returns; a refresh builds a new snapshot.
type Snapshot struct {
	ID        string               `json:"id"`
	LoadedAt  time.Time            `json:"loaded_at"`
	Days      []DayGroup           `json:"days"`      // newest day first
	Exercises []ExerciseGroup      `json:"exercises"` // A–Z by display name
	Stats     models.DatasetStats  `json:"stats"`
	Rejected  []models.RejectedRow `json:"rejected,omitempty"`
}

// Build computes a snapshot from normalized records. The keep predicate
// runs before grouping (nil keeps everything); rejected rows are carried
// through for reporting only and never contribute to any group.
func Build(records []models.SetRecord, rejected []models.RejectedRow, keep Predicate) *Snapshot {
	accepted := len(records)
	kept := Apply(records, keep)

	// Groups hold pointers into this one backing slice, so an annotation
	// (set number, record flag) is visible through both views.
	sets := make([]*models.SetRecord, len(kept))
	for i := range kept {
		rec := kept[i]
		sets[i] = &rec
	}

	// Intra-group order is ascending full timestamp, stable on ties.
	// Sorting once up front establishes it for both groupings.
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].Date.Before(sets[j].Date)
	})

	snap := &Snapshot{
		ID:        uuid.NewString(),
		LoadedAt:  time.Now().UTC(),
		Days:      buildDays(sets),
		Exercises: buildExercises(sets),
		Rejected:  rejected,
	}

	for i := range snap.Exercises {
		g := &snap.Exercises[i]
		if rec, ok := RecordFor(g.Sets); ok {
			g.Record = rec
			rec.IsRecord = true
		}
	}

	numberSets(snap.Days)

	snap.Stats = buildStats(snap, accepted, len(kept), rejected)
	metrics.Inc(metrics.SnapshotsBuilt)
	return snap
}

// buildDays partitions timestamp-ordered sets by calendar date,
// newest day first.
func buildDays(sets []*models.SetRecord) []DayGroup {
	byDay := make(map[string]*DayGroup)
	var keys []string
	for _, rec := range sets {
		key := rec.Day().Format(DayKeyLayout)
		g, ok := byDay[key]
		if !ok {
			g = &DayGroup{Date: rec.Day(), Key: key}
			byDay[key] = g
			keys = append(keys, key)
		}
		g.Sets = append(g.Sets, rec)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	days := make([]DayGroup, 0, len(keys))
	for _, key := range keys {
		g := byDay[key]
		g.Summary = Summarize(g.Sets)
		days = append(days, *g)
	}
	return days
}

// buildExercises partitions timestamp-ordered sets by canonical exercise
// key, A–Z by display name.
func buildExercises(sets []*models.SetRecord) []ExerciseGroup {
	byKey := make(map[string]*ExerciseGroup)
	var keys []string
	for _, rec := range sets {
		g, ok := byKey[rec.Key]
		if !ok {
			g = &ExerciseGroup{Name: rec.Exercise, Key: rec.Key}
			byKey[rec.Key] = g
			keys = append(keys, rec.Key)
		}
		g.Sets = append(g.Sets, rec)
	}

	sort.Slice(keys, func(i, j int) bool {
		return strings.Compare(byKey[keys[i]].Name, byKey[keys[j]].Name) < 0
	})

	exercises := make([]ExerciseGroup, 0, len(keys))
	for _, key := range keys {
		g := byKey[key]
		g.Summary = Summarize(g.Sets)
		exercises = append(exercises, *g)
	}
	return exercises
}

// numberSets assigns the 1-based set number within each (day, exercise)
// pair, in timestamp order.
func numberSets(days []DayGroup) {
	for _, day := range days {
		counts := make(map[string]int)
		for _, rec := range day.Sets {
			counts[rec.Key]++
			rec.SetNumber = counts[rec.Key]
		}
	}
}

func buildStats(snap *Snapshot, accepted, kept int, rejected []models.RejectedRow) models.DatasetStats {
	stats := models.DatasetStats{
		RowsAccepted: accepted,
		RowsRejected: len(rejected),
		RowsFiltered: accepted - kept,
		Days:         len(snap.Days),
		Exercises:    len(snap.Exercises),
	}
	if len(rejected) > 0 {
		stats.RejectedByReason = make(map[models.RejectReason]int)
		for _, r := range rejected {
			stats.RejectedByReason[r.Reason]++
		}
	}
	if len(snap.Days) > 0 {
		stats.FirstDate = snap.Days[len(snap.Days)-1].Date
		stats.LastDate = snap.Days[0].Date
	}
	return stats
}

// DayByKey returns the day group with the given formatted key.
func (s *Snapshot) DayByKey(key string) (DayGroup, bool) {
	for _, d := range s.Days {
		if d.Key == key {
			return d, true
		}
	}
	return DayGroup{}, false
}

// ExerciseByName returns the exercise group matching name under the
// canonical comparison key.
func (s *Snapshot) ExerciseByName(name string) (ExerciseGroup, bool) {
	key := models.ExerciseKey(name)
	for _, e := range s.Exercises {
		if e.Key == key {
			return e, true
		}
	}
	return ExerciseGroup{}, false
}

package analysis

import "github.com/datojulien/liftlog/internal/models"

// RecordFor selects the personal-record set of an exercise group.
// The second return is false only for an empty group.
//
// Selection policy, applied over every set in the group:
//  1. maximum ActualWeight;
//  2. among ties, greater Reps;
//  3. among remaining ties, the earliest Date — the first time the
//     weight was achieved is the record.
//
// Sets identical in weight, reps and timestamp resolve to the one earliest
// in the group's order, which Build keeps stable on input order.
// The scan is stateless: the result depends only on the group's contents.
func RecordFor(group []*models.SetRecord) (*models.SetRecord, bool) {
	if len(group) == 0 {
		return nil, false
	}
	best := group[0]
	for _, rec := range group[1:] {
		if beats(rec, best) {
			best = rec
		}
	}
	return best, true
}

// beats reports whether a ranks strictly above b under the record policy.
func beats(a, b *models.SetRecord) bool {
	if a.ActualWeight != b.ActualWeight {
		return a.ActualWeight > b.ActualWeight
	}
	if a.Reps != b.Reps {
		return a.Reps > b.Reps
	}
	return a.Date.Before(b.Date)
}

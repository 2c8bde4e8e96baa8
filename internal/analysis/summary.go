package analysis

import "github.com/datojulien/liftlog/internal/models"

// Summarize folds a group of sets into its aggregate statistics.
// The fold is commutative and associative, so partial summaries over any
// split of the group combine into the whole-group summary. An empty group
// yields the zero Summary.
func Summarize(records []*models.SetRecord) models.Summary {
	var sum models.Summary
	for _, rec := range records {
		sum.TotalSets++
		sum.TotalVolume += rec.Volume
		if rec.ActualWeight > sum.TopLift {
			sum.TopLift = rec.ActualWeight
		}
	}
	return sum
}

// MergeSummaries combines partial summaries of disjoint subgroups.
func MergeSummaries(parts ...models.Summary) models.Summary {
	var sum models.Summary
	for _, p := range parts {
		sum.TotalSets += p.TotalSets
		sum.TotalVolume += p.TotalVolume
		if p.TopLift > sum.TopLift {
			sum.TopLift = p.TopLift
		}
	}
	return sum
}

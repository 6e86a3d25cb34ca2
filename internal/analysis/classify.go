package analysis

import "access-review/internal/domain"

// ClassifyMode selects which side of the threshold cut a classification keeps.
type ClassifyMode int

const (
	// ClassifyBaseline keeps keys whose prevalence is at or above the threshold.
	ClassifyBaseline ClassifyMode = iota
	// ClassifyRare keeps keys whose prevalence is at or below the threshold.
	ClassifyRare
)

// Classify converts a prevalence table into the set of entitlement keys
// passing the threshold test. Both comparisons are inclusive: a key held by
// exactly threshold percent of the group passes a baseline check and a rare
// check at the same threshold. The two cuts are independent lines, not a
// partition — callers must not assume the sets are disjoint.
func Classify(table PrevalenceTable, threshold float64, mode ClassifyMode) domain.EntitlementSet {
	// Compare the integer holder count against threshold% of the identity
	// total to keep exact-boundary keys on the inclusive side.
	cut := threshold / 100 * float64(table.Total)
	set := make(domain.EntitlementSet, len(table.Counts))
	for key, count := range table.Counts {
		switch mode {
		case ClassifyBaseline:
			if float64(count) >= cut {
				set.Add(key)
			}
		case ClassifyRare:
			if float64(count) <= cut {
				set.Add(key)
			}
		}
	}
	return set
}

package analysis

import "access-review/internal/domain"

// ComputeGaps reports, per peer group in records, the baseline entitlements
// absent from the grants actually held anywhere in that group. The records
// are re-grouped independently of how the baseline map was built — the two
// may come from different filtered subsets. A group with no entry in the
// baseline map contributes nothing: a group whose baseline could not be
// computed cannot have a meaningful gap.
func ComputeGaps(records []domain.AccessRecord, baseline domain.BaselineMap, mode domain.GroupingMode) ([]domain.GapRecord, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	groups := Groups(records, mode)
	var gaps []domain.GapRecord
	for _, key := range sortedGroupKeys(groups) {
		expected, ok := baseline[key]
		if !ok {
			continue
		}

		held := make(domain.EntitlementSet)
		for _, rec := range groups[key] {
			held.Add(rec.Grant())
		}

		for _, grant := range expected.Sorted() {
			if !held.Contains(grant) {
				gaps = append(gaps, domain.GapRecord{
					Group:       key,
					Role:        grant.Role,
					Entitlement: grant.Entitlement,
				})
			}
		}
	}
	return gaps, nil
}

package analysis

import "access-review/internal/domain"

// ComputeBaseline maps every peer group in records to the set of entitlement
// keys held by at least threshold percent of the group's distinct identities.
// Groups with no baseline entitlements still appear, with an empty set.
func ComputeBaseline(records []domain.AccessRecord, threshold float64, mode domain.GroupingMode) (domain.BaselineMap, error) {
	if err := checkThreshold("baseline", threshold); err != nil {
		return nil, err
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	baseline := make(domain.BaselineMap)
	for key, group := range Groups(records, mode) {
		baseline[key] = Classify(Prevalence(group), threshold, ClassifyBaseline)
	}
	return baseline, nil
}

// BaselineEntries flattens a baseline computation into per-grant rows with
// observed prevalence, ordered by group then entitlement key, for display
// and report rendering.
func BaselineEntries(records []domain.AccessRecord, threshold float64, mode domain.GroupingMode) ([]domain.BaselineEntry, error) {
	if err := checkThreshold("baseline", threshold); err != nil {
		return nil, err
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	groups := Groups(records, mode)
	var entries []domain.BaselineEntry
	for _, key := range sortedGroupKeys(groups) {
		table := Prevalence(groups[key])
		for _, grant := range Classify(table, threshold, ClassifyBaseline).Sorted() {
			entries = append(entries, domain.BaselineEntry{
				Group:       key,
				Role:        grant.Role,
				Entitlement: grant.Entitlement,
				Prevalence:  table.Fraction(grant),
			})
		}
	}
	return entries, nil
}

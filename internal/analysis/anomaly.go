package analysis

import (
	"sort"

	"access-review/internal/domain"
)

// ComputeAnomalies emits one record per (identity, rare grant) pair: for each
// peer group, the grants held by at or below threshold percent of the group's
// distinct identities are rare, and every identity holding one is flagged.
// Output is ordered by group, then identity, then entitlement key.
func ComputeAnomalies(records []domain.AccessRecord, threshold float64, mode domain.GroupingMode) ([]domain.AnomalyRecord, error) {
	if err := checkThreshold("anomaly", threshold); err != nil {
		return nil, err
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	groups := Groups(records, mode)
	var anomalies []domain.AnomalyRecord
	for _, key := range sortedGroupKeys(groups) {
		group := groups[key]
		rare := Classify(Prevalence(group), threshold, ClassifyRare)
		if len(rare) == 0 {
			continue
		}

		held := make(map[string]domain.EntitlementSet)
		names := make(map[string]string)
		var ids []string
		for _, rec := range group {
			if held[rec.UserID] == nil {
				held[rec.UserID] = make(domain.EntitlementSet)
				ids = append(ids, rec.UserID)
				// First-seen display name wins when rows disagree.
				names[rec.UserID] = rec.Username
			}
			held[rec.UserID].Add(rec.Grant())
		}
		sort.Strings(ids)

		for _, id := range ids {
			for _, grant := range held[id].Sorted() {
				if rare.Contains(grant) {
					anomalies = append(anomalies, domain.AnomalyRecord{
						Group:       key,
						UserID:      id,
						Username:    names[id],
						Role:        grant.Role,
						Entitlement: grant.Entitlement,
					})
				}
			}
		}
	}
	return anomalies, nil
}

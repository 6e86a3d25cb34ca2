// Package analysis implements the peer-group prevalence core: grouping,
// per-entitlement prevalence counting, threshold classification, and the
// baseline, anomaly, and gap engines built on top of them. Every function is
// a pure function of its inputs; nothing here mutates the record collection
// or holds state across runs.
package analysis

import (
	"sort"

	"access-review/internal/domain"
)

// Groups partitions records into peer groups under the given mode. Every
// input record lands in exactly one group; no filtering or deduplication.
// An empty title is a distinct, valid group value under unit+title grouping —
// excluding titleless identities is the caller's policy decision.
func Groups(records []domain.AccessRecord, mode domain.GroupingMode) map[domain.PeerGroupKey][]domain.AccessRecord {
	groups := make(map[domain.PeerGroupKey][]domain.AccessRecord)
	for _, rec := range records {
		key := rec.GroupKey(mode)
		groups[key] = append(groups[key], rec)
	}
	return groups
}

// sortedGroupKeys returns the group keys in lexicographic order so engine
// output is reproducible across runs.
func sortedGroupKeys(groups map[domain.PeerGroupKey][]domain.AccessRecord) []domain.PeerGroupKey {
	keys := make([]domain.PeerGroupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// validateRecords rejects the whole run when a record is missing a required
// attribute. Ingestion is expected to prevent this; failing fast here beats
// silently producing a wrong grouping.
func validateRecords(records []domain.AccessRecord) error {
	for i, rec := range records {
		switch {
		case rec.UserID == "":
			return domain.ErrValidation("record %d: missing user id", i)
		case rec.Role == "":
			return domain.ErrValidation("record %d: missing role", i)
		case rec.Entitlement == "":
			return domain.ErrValidation("record %d: missing entitlement", i)
		case rec.Unit == "":
			return domain.ErrValidation("record %d: missing organizational unit", i)
		}
	}
	return nil
}

// checkThreshold enforces the (0, 100] percentage range before any grouping
// work. Out-of-range thresholds are rejected, never clamped.
func checkThreshold(name string, t float64) error {
	if t <= 0 || t > 100 {
		return domain.ErrValidation("%s threshold must be in (0, 100], got %v", name, t)
	}
	return nil
}

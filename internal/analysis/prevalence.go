package analysis

import "access-review/internal/domain"

// PrevalenceTable holds, for one peer group, the number of distinct
// identities and the distinct-holder count per entitlement key. It is built
// once per run and never mutated afterwards.
type PrevalenceTable struct {
	// Total is the number of distinct identities in the group.
	Total int
	// Counts maps each observed entitlement key to the number of distinct
	// identities holding it. An identity with duplicate rows for the same
	// grant counts once.
	Counts map[domain.EntitlementKey]int
}

// Prevalence computes the prevalence table for a single peer group.
func Prevalence(group []domain.AccessRecord) PrevalenceTable {
	identities := make(map[string]struct{})
	holders := make(map[domain.EntitlementKey]map[string]struct{})
	for _, rec := range group {
		identities[rec.UserID] = struct{}{}
		key := rec.Grant()
		if holders[key] == nil {
			holders[key] = make(map[string]struct{})
		}
		holders[key][rec.UserID] = struct{}{}
	}

	counts := make(map[domain.EntitlementKey]int, len(holders))
	for key, ids := range holders {
		counts[key] = len(ids)
	}
	return PrevalenceTable{Total: len(identities), Counts: counts}
}

// Fraction returns the share of the group's identities holding the key.
// A zero-identity group cannot come out of Groups, but if one ever reaches
// here the fraction is 0 rather than a division by zero.
func (t PrevalenceTable) Fraction(key domain.EntitlementKey) float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Counts[key]) / float64(t.Total)
}

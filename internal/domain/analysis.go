package domain

import "sort"

// EntitlementSet is a set of entitlement keys.
type EntitlementSet map[EntitlementKey]struct{}

// Add inserts a key into the set.
func (s EntitlementSet) Add(k EntitlementKey) { s[k] = struct{}{} }

// Contains reports set membership.
func (s EntitlementSet) Contains(k EntitlementKey) bool {
	_, ok := s[k]
	return ok
}

// Sorted returns the set's keys in lexicographic order.
func (s EntitlementSet) Sorted() []EntitlementKey {
	keys := make([]EntitlementKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// BaselineMap maps each peer group to its baseline entitlement set. Every
// group with at least one input record appears, even with an empty set.
type BaselineMap map[PeerGroupKey]EntitlementSet

// BaselineEntry is one baseline grant with its observed prevalence, used by
// the presentation layer.
type BaselineEntry struct {
	Group       PeerGroupKey `json:"group"`
	Role        string       `json:"role"`
	Entitlement string       `json:"entitlement"`
	Prevalence  float64      `json:"prevalence"` // fraction in [0,1]
}

// AnomalyRecord identifies a single rare grant held by a single identity.
type AnomalyRecord struct {
	Group       PeerGroupKey `json:"group"`
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	Role        string       `json:"role"`
	Entitlement string       `json:"entitlement"`
}

// GapRecord identifies a baseline grant absent from a group's actually-held
// entitlements in the comparison dataset.
type GapRecord struct {
	Group       PeerGroupKey `json:"group"`
	Role        string       `json:"role"`
	Entitlement string       `json:"entitlement"`
}

// ReviewParams are the knobs for one analysis run. Thresholds are percentages
// in (0, 100].
type ReviewParams struct {
	BaselineThreshold float64      `json:"baseline_threshold"`
	AnomalyThreshold  float64      `json:"anomaly_threshold"`
	Grouping          GroupingMode `json:"grouping"`
}

// Validate checks the parameter ranges.
func (p ReviewParams) Validate() error {
	if p.BaselineThreshold <= 0 || p.BaselineThreshold > 100 {
		return ErrValidation("baseline threshold must be in (0, 100], got %v", p.BaselineThreshold)
	}
	if p.AnomalyThreshold <= 0 || p.AnomalyThreshold > 100 {
		return ErrValidation("anomaly threshold must be in (0, 100], got %v", p.AnomalyThreshold)
	}
	if !p.Grouping.Valid() {
		return ErrValidation("unknown grouping mode %q", string(p.Grouping))
	}
	return nil
}

// DatasetMetrics summarizes one uploaded export.
type DatasetMetrics struct {
	TotalRecords       int `json:"total_records"`
	UniqueUsers        int `json:"unique_users"`
	UniqueUnits        int `json:"unique_units"`
	UniqueTitles       int `json:"unique_titles"`
	UniqueRoles        int `json:"unique_roles"`
	UniqueEntitlements int `json:"unique_entitlements"`
	UniqueCategories   int `json:"unique_categories"`
	UniqueAccessGroups int `json:"unique_access_groups"`
	UsersWithoutTitle  int `json:"users_without_title"`
}

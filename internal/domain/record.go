package domain

import "strings"

// GroupingMode selects how identities are partitioned into peer groups.
type GroupingMode string

const (
	// GroupByUnit makes all identities within an organizational unit peers.
	GroupByUnit GroupingMode = "unit"
	// GroupByUnitAndTitle narrows peers to identities sharing both the
	// organizational unit and the job title.
	GroupByUnitAndTitle GroupingMode = "unit-title"
)

// ParseGroupingMode converts a user-supplied string into a GroupingMode.
func ParseGroupingMode(s string) (GroupingMode, error) {
	switch GroupingMode(strings.TrimSpace(strings.ToLower(s))) {
	case GroupByUnit:
		return GroupByUnit, nil
	case GroupByUnitAndTitle:
		return GroupByUnitAndTitle, nil
	}
	return "", ErrValidation("grouping must be %q or %q", GroupByUnit, GroupByUnitAndTitle)
}

// Valid reports whether the mode is one of the two supported values.
func (m GroupingMode) Valid() bool {
	return m == GroupByUnit || m == GroupByUnitAndTitle
}

// AccessRecord is one row of a validated entitlement export. Records are
// immutable once ingested; the analysis engines never modify them.
type AccessRecord struct {
	UserID      string `json:"user_id" validate:"required"`
	Username    string `json:"username"`
	TID         string `json:"tid"`
	Category    string `json:"category"`
	Role        string `json:"role" validate:"required"`
	Entitlement string `json:"entitlement" validate:"required"`
	AccessGroup string `json:"access_group"`
	Title       string `json:"title"`
	Unit        string `json:"unit" validate:"required"`
}

// HasTitle reports whether the record carries a non-blank job title.
func (r AccessRecord) HasTitle() bool {
	return strings.TrimSpace(r.Title) != ""
}

// GroupKey derives the record's peer-group key for the given mode.
func (r AccessRecord) GroupKey(mode GroupingMode) PeerGroupKey {
	if mode == GroupByUnitAndTitle {
		return PeerGroupKey{Unit: r.Unit, Title: r.Title, ByTitle: true}
	}
	return PeerGroupKey{Unit: r.Unit}
}

// Grant returns the (role, entitlement) pair held by this record.
func (r AccessRecord) Grant() EntitlementKey {
	return EntitlementKey{Role: r.Role, Entitlement: r.Entitlement}
}

// PeerGroupKey identifies a peer group. The tagged ByTitle field resolves the
// unit-only vs unit+title variants once at the grouping boundary; downstream
// code never re-inspects a key's shape. An empty Title under ByTitle is a
// distinct, valid group value.
type PeerGroupKey struct {
	Unit    string `json:"unit"`
	Title   string `json:"title,omitempty"`
	ByTitle bool   `json:"by_title,omitempty"`
}

// Label renders the key for display and reports.
func (k PeerGroupKey) Label() string {
	if !k.ByTitle {
		return k.Unit
	}
	title := k.Title
	if strings.TrimSpace(title) == "" {
		title = "(no title)"
	}
	return k.Unit + " / " + title
}

// Less orders keys lexicographically by unit, then title.
func (k PeerGroupKey) Less(o PeerGroupKey) bool {
	if k.Unit != o.Unit {
		return k.Unit < o.Unit
	}
	return k.Title < o.Title
}

// EntitlementKey is the atomic unit of access being analyzed: a role plus an
// entitlement name. Records sharing both inside a group are the same grant.
type EntitlementKey struct {
	Role        string `json:"role"`
	Entitlement string `json:"entitlement"`
}

// Less orders keys lexicographically by role, then entitlement.
func (k EntitlementKey) Less(o EntitlementKey) bool {
	if k.Role != o.Role {
		return k.Role < o.Role
	}
	return k.Entitlement < o.Entitlement
}

// Package ingest parses and validates entitlement-export CSV files into
// domain records. The schema contract is passed in explicitly; nothing
// downstream consults a package global.
package ingest

import "access-review/internal/domain"

// Schema is the ordered list of required CSV columns. An upload must match it
// exactly: same names, same order, no extras.
type Schema []string

// DefaultSchema matches the entitlement export produced by the upstream
// access-control system.
func DefaultSchema() Schema {
	return Schema{
		"UserID",
		"Username",
		"TID",
		"Acc Priv Category",
		"Role",
		"Entitlement",
		"Acc Priv Group",
		"Title",
		"Department",
	}
}

// Matches reports whether a parsed header row satisfies the schema.
func (s Schema) Matches(header []string) bool {
	if len(header) != len(s) {
		return false
	}
	for i, col := range s {
		if header[i] != col {
			return false
		}
	}
	return true
}

// record maps one positional CSV row onto a domain record.
func (s Schema) record(row []string) domain.AccessRecord {
	return domain.AccessRecord{
		UserID:      row[0],
		Username:    row[1],
		TID:         row[2],
		Category:    row[3],
		Role:        row[4],
		Entitlement: row[5],
		AccessGroup: row[6],
		Title:       row[7],
		Unit:        row[8],
	}
}

// Package report renders review results as CSV, plain text, and PDF
// downloads.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"access-review/internal/domain"
)

// BaselineCSV writes baseline entries with their observed prevalence.
func BaselineCSV(w io.Writer, entries []domain.BaselineEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Peer Group", "Role", "Entitlement", "Prevalence (%)"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{e.Group.Label(), e.Role, e.Entitlement, fmt.Sprintf("%.1f", e.Prevalence*100)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// AnomaliesCSV writes one row per flagged rare grant.
func AnomaliesCSV(w io.Writer, anomalies []domain.AnomalyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Peer Group", "UserID", "Username", "Role", "Entitlement"}); err != nil {
		return err
	}
	for _, a := range anomalies {
		if err := cw.Write([]string{a.Group.Label(), a.UserID, a.Username, a.Role, a.Entitlement}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// GapsCSV writes one row per missing baseline grant.
func GapsCSV(w io.Writer, gaps []domain.GapRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Peer Group", "Role", "Entitlement"}); err != nil {
		return err
	}
	for _, g := range gaps {
		if err := cw.Write([]string{g.Group.Label(), g.Role, g.Entitlement}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

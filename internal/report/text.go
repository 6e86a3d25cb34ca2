package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"access-review/internal/service"
)

// Sections selects which result tables a consolidated report includes.
type Sections struct {
	Baseline  bool
	Anomalies bool
	Gaps      bool
}

// AllSections includes every result table.
func AllSections() Sections {
	return Sections{Baseline: true, Anomalies: true, Gaps: true}
}

// Text writes a plain-text consolidated review report.
func Text(w io.Writer, result *service.ReviewResult, sections Sections) error {
	fmt.Fprintln(w, "ENTITLEMENT REVIEW REPORT")
	fmt.Fprintf(w, "Generated: %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	if result.Source != "" {
		fmt.Fprintf(w, "Dataset: %s\n", result.Source)
	}
	fmt.Fprintf(w, "Peer grouping: %s | Baseline threshold: %.1f%% | Anomaly threshold: %.1f%%\n",
		result.Params.Grouping, result.Params.BaselineThreshold, result.Params.AnomalyThreshold)
	if result.ExcludedFromBaseline > 0 {
		fmt.Fprintf(w, "Records excluded from baseline input (no title): %d\n", result.ExcludedFromBaseline)
	}

	m := result.Metrics
	fmt.Fprintf(w, "\nDATASET METRICS\n")
	fmt.Fprintf(w, "  Records: %d  Users: %d  Units: %d  Titles: %d\n",
		m.TotalRecords, m.UniqueUsers, m.UniqueUnits, m.UniqueTitles)
	fmt.Fprintf(w, "  Roles: %d  Entitlements: %d  Categories: %d  Access groups: %d  Users w/o title: %d\n",
		m.UniqueRoles, m.UniqueEntitlements, m.UniqueCategories, m.UniqueAccessGroups, m.UsersWithoutTitle)

	if sections.Baseline {
		fmt.Fprintf(w, "\nBASELINE ACCESS (%d entries)\n", len(result.Baseline))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  Peer Group\tRole\tEntitlement\tPrevalence")
		for _, e := range result.Baseline {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%.1f%%\n", e.Group.Label(), e.Role, e.Entitlement, e.Prevalence*100)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if sections.Anomalies {
		fmt.Fprintf(w, "\nANOMALOUS ACCESS (%d entries)\n", len(result.Anomalies))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  Peer Group\tUserID\tUsername\tRole\tEntitlement")
		for _, a := range result.Anomalies {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", a.Group.Label(), a.UserID, a.Username, a.Role, a.Entitlement)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if sections.Gaps {
		fmt.Fprintf(w, "\nGAP REPORT (%d entries)\n", len(result.Gaps))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  Peer Group\tRole\tEntitlement")
		for _, g := range result.Gaps {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", g.Group.Label(), g.Role, g.Entitlement)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"access-review/internal/service"
)

const pdfFont = "Helvetica"

// PDF writes a consolidated review report as a PDF document: a header with
// the generation timestamp, the dataset metrics grid, the run configuration,
// and one table per selected section.
func PDF(w io.Writer, result *service.ReviewResult, sections Sections) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 18)
	pdf.CellFormat(0, 15, "Entitlement Review Report", "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, 10, "Generated: "+result.GeneratedAt.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeMetrics(pdf, result)

	config := fmt.Sprintf(
		"Analysis configuration: peer grouping %q, baseline threshold %.1f%%, anomaly threshold %.1f%%.",
		result.Params.Grouping, result.Params.BaselineThreshold, result.Params.AnomalyThreshold,
	)
	if result.ExcludedFromBaseline > 0 {
		config += fmt.Sprintf(" %d records without a title were excluded from the baseline input.", result.ExcludedFromBaseline)
	}
	pdf.SetFont(pdfFont, "I", 9)
	pdf.MultiCell(0, 5, config, "", "C", false)
	pdf.Ln(4)

	if sections.Baseline {
		rows := make([][]string, 0, len(result.Baseline))
		for _, e := range result.Baseline {
			rows = append(rows, []string{e.Group.Label(), e.Role, e.Entitlement, fmt.Sprintf("%.1f", e.Prevalence*100)})
		}
		writeTable(pdf, "Baseline Access", []string{"Peer Group", "Role", "Entitlement", "Prevalence (%)"}, rows)
	}
	if sections.Anomalies {
		rows := make([][]string, 0, len(result.Anomalies))
		for _, a := range result.Anomalies {
			rows = append(rows, []string{a.Group.Label(), a.UserID, a.Username, a.Role, a.Entitlement})
		}
		writeTable(pdf, "Anomalous Access", []string{"Peer Group", "UserID", "Username", "Role", "Entitlement"}, rows)
	}
	if sections.Gaps {
		rows := make([][]string, 0, len(result.Gaps))
		for _, g := range result.Gaps {
			rows = append(rows, []string{g.Group.Label(), g.Role, g.Entitlement})
		}
		writeTable(pdf, "Gap Report (Missing Baseline Access)", []string{"Peer Group", "Role", "Entitlement"}, rows)
	}

	return pdf.Output(w)
}

func writeMetrics(pdf *fpdf.Fpdf, result *service.ReviewResult) {
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 10, "Dataset Metrics", "", 1, "L", false, 0, "")

	m := result.Metrics
	metrics := []struct {
		label string
		value int
	}{
		{"Total Records", m.TotalRecords},
		{"Unique Users", m.UniqueUsers},
		{"Unique Units", m.UniqueUnits},
		{"Unique Titles", m.UniqueTitles},
		{"Unique Roles", m.UniqueRoles},
		{"Unique Entitlements", m.UniqueEntitlements},
		{"Unique Categories", m.UniqueCategories},
		{"Unique Access Groups", m.UniqueAccessGroups},
		{"Users w/o Title", m.UsersWithoutTitle},
	}

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / 2

	// Two metrics per line, label right-aligned against its value.
	for i := 0; i < len(metrics); i += 2 {
		pdf.SetX(left)
		for j := i; j < i+2 && j < len(metrics); j++ {
			pdf.SetFont(pdfFont, "B", 9)
			pdf.CellFormat(colW*0.6, 6, metrics[j].label+":", "", 0, "R", false, 0, "")
			pdf.SetFont(pdfFont, "", 9)
			pdf.CellFormat(colW*0.4, 6, fmt.Sprintf("%d", metrics[j].value), "", 0, "L", false, 0, "")
		}
		pdf.Ln(6)
	}
	pdf.Ln(4)
}

func writeTable(pdf *fpdf.Fpdf, title string, columns []string, rows [][]string) {
	if len(rows) == 0 {
		pdf.SetFont(pdfFont, "I", 10)
		pdf.CellFormat(0, 10, "No data available for "+title+".", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	widths := columnWidths(pdf, columns)

	pdf.SetFont(pdfFont, "B", 8)
	pdf.SetFillColor(220, 220, 220)
	for i, col := range columns {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 7)
	pdf.SetFillColor(255, 255, 255)
	for _, row := range rows {
		for i := range columns {
			pdf.CellFormat(widths[i], 6, truncateCell(pdf, row[i], widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(5)
}

// columnWidths spreads the printable width over the columns, widening the
// role and entitlement columns and narrowing user ids, then re-normalizing.
func columnWidths(pdf *fpdf.Fpdf, columns []string) []float64 {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	available := pageW - left - right

	widths := make([]float64, len(columns))
	base := available / float64(len(columns))
	for i, col := range columns {
		widths[i] = base
		switch col {
		case "Role":
			widths[i] = base * 1.2
		case "Entitlement":
			widths[i] = base * 1.5
		case "UserID":
			widths[i] = base * 0.8
		}
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > available {
		scale := available / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}

func truncateCell(pdf *fpdf.Fpdf, text string, width float64) string {
	const pad = 2
	if pdf.GetStringWidth(text) <= width-pad {
		return text
	}
	for len(text) > 5 && pdf.GetStringWidth(text+"...") > width-pad {
		text = text[:len(text)-1]
	}
	return text + "..."
}

package ui

import (
	"strconv"
	"time"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"access-review/internal/domain"
	"access-review/internal/service"
)

func uploadCard() gomponents.Node {
	return html.Div(
		html.Class("card"),
		html.H2(gomponents.Text("Upload access export")),
		html.P(html.Class("muted"), gomponents.Text("CSV with the standard nine-column access export header. Uploading replaces the current dataset.")),
		html.Form(
			html.Method("post"),
			html.Action("/ui/upload"),
			html.EncType("multipart/form-data"),
			html.Input(html.Type("file"), html.Name("file"), html.Accept(".csv,text/csv")),
			html.Button(html.Type("submit"), html.Class("btn btn-primary"), gomponents.Text("Upload")),
		),
	)
}

func datasetCard(ds service.Dataset) gomponents.Node {
	return html.Div(
		html.Class("card"),
		html.H2(gomponents.Text("Current dataset")),
		html.Ul(
			html.Li(gomponents.Text("Source: "+ds.Source)),
			html.Li(gomponents.Text("Uploaded: "+ds.UploadedAt.Format(time.RFC3339))),
			html.Li(gomponents.Text("Dataset ID: "+ds.ID)),
		),
	)
}

func metricsCard(m domain.DatasetMetrics) gomponents.Node {
	entry := func(label string, value int) gomponents.Node {
		return html.Div(
			html.Class("metric"),
			html.Strong(gomponents.Text(strconv.Itoa(value))),
			html.Span(html.Class("muted"), gomponents.Text(label)),
		)
	}
	return html.Div(
		html.Class("card"),
		html.H2(gomponents.Text("Dataset metrics")),
		html.Div(
			html.Class("metrics-grid"),
			entry("Records", m.TotalRecords),
			entry("Users", m.UniqueUsers),
			entry("Departments", m.UniqueUnits),
			entry("Titles", m.UniqueTitles),
			entry("Roles", m.UniqueRoles),
			entry("Entitlements", m.UniqueEntitlements),
			entry("Categories", m.UniqueCategories),
			entry("Access groups", m.UniqueAccessGroups),
			entry("Users without title", m.UsersWithoutTitle),
		),
	)
}

func previewCard(records []domain.AccessRecord) gomponents.Node {
	if len(records) == 0 {
		return emptyCard("Dataset is empty.")
	}
	rows := make([]gomponents.Node, 0, len(records))
	for i := range records {
		rec := records[i]
		rows = append(rows, html.Tr(
			html.Td(gomponents.Text(rec.UserID)),
			html.Td(gomponents.Text(rec.Username)),
			html.Td(gomponents.Text(rec.Unit)),
			html.Td(gomponents.Text(rec.Title)),
			html.Td(gomponents.Text(rec.Role)),
			html.Td(gomponents.Text(rec.Entitlement)),
		))
	}
	return html.Div(
		html.Class("card table-wrap"),
		html.H2(gomponents.Text("Preview")),
		html.Table(
			html.THead(html.Tr(
				html.Th(gomponents.Text("User ID")),
				html.Th(gomponents.Text("Username")),
				html.Th(gomponents.Text("Department")),
				html.Th(gomponents.Text("Title")),
				html.Th(gomponents.Text("Role")),
				html.Th(gomponents.Text("Entitlement")),
			)),
			html.TBody(gomponents.Group(rows)),
		),
	)
}

func downloadsCard() gomponents.Node {
	link := func(href, label string) gomponents.Node {
		return html.Li(html.A(html.Href(href), gomponents.Text(label)))
	}
	return html.Div(
		html.Class("card"),
		html.H2(gomponents.Text("Downloads")),
		html.Ul(
			link("/v1/reports/baseline.csv", "Baseline access (CSV)"),
			link("/v1/reports/anomalies.csv", "Anomalous access (CSV)"),
			link("/v1/reports/gaps.csv", "Gap report (CSV)"),
			link("/v1/reports/review.pdf", "Consolidated review (PDF)"),
			link("/v1/reports/review.txt", "Consolidated review (text)"),
		),
	)
}

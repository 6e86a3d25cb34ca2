package ui

import (
	"net/http"
	"strconv"

	gomponents "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	html "maragu.dev/gomponents/html"

	"access-review/internal/domain"
	"access-review/internal/ingest"
	"access-review/internal/service"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.Store.Current()

	body := []gomponents.Node{uploadCard()}
	if !ok {
		body = append(body, emptyCard("No dataset uploaded yet. Upload an access export to begin."))
	} else {
		body = append(body,
			datasetCard(ds),
			metricsCard(service.Metrics(ds.Records)),
			paramsForm("/ui/baseline", h.Defaults),
			previewCard(ingest.Preview(ds.Records)),
			downloadsCard(),
		)
	}

	renderHTML(w, http.StatusOK, appPage("Overview", "home", body...))
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		h.renderServiceError(w, domain.ErrValidation("invalid upload: %v", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderServiceError(w, domain.ErrValidation("choose a CSV file to upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	records, err := h.Reader.Read(file)
	if err != nil {
		h.renderServiceError(w, err)
		return
	}

	ds := h.Store.Put(header.Filename, records)
	h.Logger.Info("dataset uploaded via ui",
		"dataset_id", ds.ID, "source", ds.Source, "records", len(records))
	http.Redirect(w, r, "/ui", http.StatusSeeOther)
}

func (h *Handler) BaselinePage(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runReview(w, r)
	if !ok {
		return
	}

	rows := make([]gomponents.Node, 0, len(result.Baseline))
	for i := range result.Baseline {
		e := result.Baseline[i]
		label := e.Group.Label()
		rows = append(rows, html.Tr(
			data.Show(containsExpr(label+" "+e.Role+" "+e.Entitlement)),
			html.Td(gomponents.Text(label)),
			html.Td(gomponents.Text(e.Role)),
			html.Td(gomponents.Text(e.Entitlement)),
			html.Td(gomponents.Text(formatPercent(e.Prevalence))),
		))
	}

	body := []gomponents.Node{paramsForm("/ui/baseline", result.Params)}
	if result.ExcludedFromBaseline > 0 {
		body = append(body, emptyCard(
			strconv.Itoa(result.ExcludedFromBaseline)+" records without a title were excluded from the baseline."))
	}
	if len(rows) == 0 {
		body = append(body, emptyCard("No entitlements meet the baseline threshold."))
	} else {
		body = append(body, filteredTable(
			[]string{"Peer Group", "Role", "Entitlement", "Prevalence"}, rows,
			"Filter by group, role, or entitlement"))
	}
	body = append(body, downloadCard("/v1/reports/baseline.csv", result.Params))
	renderHTML(w, http.StatusOK, appPage("Baseline Access", "baseline", body...))
}

func (h *Handler) AnomaliesPage(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runReview(w, r)
	if !ok {
		return
	}

	rows := make([]gomponents.Node, 0, len(result.Anomalies))
	for i := range result.Anomalies {
		a := result.Anomalies[i]
		label := a.Group.Label()
		rows = append(rows, html.Tr(
			data.Show(containsExpr(label+" "+a.UserID+" "+a.Username+" "+a.Role+" "+a.Entitlement)),
			html.Td(gomponents.Text(label)),
			html.Td(gomponents.Text(a.UserID)),
			html.Td(gomponents.Text(a.Username)),
			html.Td(gomponents.Text(a.Role)),
			html.Td(gomponents.Text(a.Entitlement)),
		))
	}

	body := []gomponents.Node{paramsForm("/ui/anomalies", result.Params)}
	if len(rows) == 0 {
		body = append(body, emptyCard("No anomalous grants at this threshold."))
	} else {
		body = append(body, filteredTable(
			[]string{"Peer Group", "User ID", "Username", "Role", "Entitlement"}, rows,
			"Filter by group, user, role, or entitlement"))
	}
	body = append(body, downloadCard("/v1/reports/anomalies.csv", result.Params))
	renderHTML(w, http.StatusOK, appPage("Anomalous Access", "anomalies", body...))
}

func (h *Handler) GapsPage(w http.ResponseWriter, r *http.Request) {
	result, ok := h.runReview(w, r)
	if !ok {
		return
	}

	rows := make([]gomponents.Node, 0, len(result.Gaps))
	for i := range result.Gaps {
		g := result.Gaps[i]
		label := g.Group.Label()
		rows = append(rows, html.Tr(
			data.Show(containsExpr(label+" "+g.Role+" "+g.Entitlement)),
			html.Td(gomponents.Text(label)),
			html.Td(gomponents.Text(g.Role)),
			html.Td(gomponents.Text(g.Entitlement)),
		))
	}

	body := []gomponents.Node{paramsForm("/ui/gaps", result.Params)}
	if len(rows) == 0 {
		body = append(body, emptyCard("Every group holds its full baseline."))
	} else {
		body = append(body, filteredTable(
			[]string{"Peer Group", "Role", "Entitlement"}, rows,
			"Filter by group, role, or entitlement"))
	}
	body = append(body, downloadCard("/v1/reports/gaps.csv", result.Params))
	renderHTML(w, http.StatusOK, appPage("Gap Report", "gaps", body...))
}

func (h *Handler) runReview(w http.ResponseWriter, r *http.Request) (*service.ReviewResult, bool) {
	params, err := h.paramsFromRequest(r)
	if err != nil {
		h.renderServiceError(w, err)
		return nil, false
	}
	result, err := h.Review.Run(r.Context(), params)
	if err != nil {
		h.renderServiceError(w, err)
		return nil, false
	}
	return result, true
}

func filteredTable(headers []string, rows []gomponents.Node, placeholder string) gomponents.Node {
	ths := make([]gomponents.Node, 0, len(headers))
	for _, header := range headers {
		ths = append(ths, html.Th(gomponents.Text(header)))
	}
	return html.Div(
		data.Signals(map[string]any{"q": ""}),
		html.Div(
			html.Class("card"),
			html.Label(gomponents.Text("Quick filter")),
			html.Input(html.Type("text"), data.Bind("q"), html.Placeholder(placeholder)),
		),
		html.Div(
			html.Class("card table-wrap"),
			html.Table(
				html.THead(html.Tr(gomponents.Group(ths))),
				html.TBody(gomponents.Group(rows)),
			),
		),
	)
}

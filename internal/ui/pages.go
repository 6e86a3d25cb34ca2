package ui

import (
	"fmt"
	"strconv"
	"strings"

	"access-review/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type navItem struct {
	Label string
	Href  string
	Key   string
	Icon  string
}

var navItems = []navItem{
	{Label: "Overview", Href: "/ui", Key: "home", Icon: "house"},
	{Label: "Baseline", Href: "/ui/baseline", Key: "baseline", Icon: "shield-check"},
	{Label: "Anomalies", Href: "/ui/anomalies", Key: "anomalies", Icon: "triangle-alert"},
	{Label: "Gaps", Href: "/ui/gaps", Key: "gaps", Icon: "circle-minus"},
}

func appPage(title, active string, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		className := "app-nav-link d-flex flex-items-center"
		if item.Key == active {
			className += " active"
		}
		nav = append(nav, A(
			Href(item.Href),
			Class(className),
			I(Class("nav-icon"), Attr("data-lucide", item.Icon), Attr("aria-hidden", "true")),
			Span(Text(item.Label)),
		))
	}

	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		pageHead(title),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("Entitlement Review")),
						P(Class("muted text-small mb-0"), Text("Peer-group access baselines")),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						H1(Class("page-title"), Text(title)),
					),
					Div(Class("content"), Group(body)),
				),
			),
			Script(Raw("if (window.lucide) { window.lucide.createIcons(); }")),
		),
	)
}

func errorPage(title, message string) Node {
	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		pageHead(title),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/ui"), Text("Back to overview"))),
			),
		),
	)
}

func pageHead(title string) Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		TitleEl(Text(title+" | Entitlement Review")),
		Link(Rel("icon"), Href("data:,")),
		Link(Rel("preconnect"), Href("https://fonts.googleapis.com")),
		Link(Rel("preconnect"), Href("https://fonts.gstatic.com"), Attr("crossorigin", "")),
		Link(Rel("stylesheet"), Href("https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap")),
		Link(Rel("stylesheet"), Href("/ui/static/app.css")),
		Script(Src("https://unpkg.com/lucide@latest/dist/umd/lucide.min.js")),
		Script(
			Type("module"),
			Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
		),
	)
}

// containsExpr is the datastar expression for the quick filter signal.
func containsExpr(value string) string {
	lower := strings.ToLower(value)
	return "$q === '' || " + strconv.Quote(lower) + ".includes($q.toLowerCase())"
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// paramsForm renders the analysis controls shared by the three report pages.
// Submitting reloads the page with the chosen thresholds in the query string.
func paramsForm(action string, params domain.ReviewParams) Node {
	return Form(
		Method("get"),
		Action(action),
		Class("card params-form"),
		Div(
			Class("params-grid"),
			Div(
				Label(For("baseline_threshold"), Text("Baseline threshold (%)")),
				Input(Type("number"), ID("baseline_threshold"), Name("baseline_threshold"),
					Step("0.5"), Min("0.5"), Max("100"),
					Value(strconv.FormatFloat(params.BaselineThreshold, 'f', -1, 64))),
			),
			Div(
				Label(For("anomaly_threshold"), Text("Anomaly threshold (%)")),
				Input(Type("number"), ID("anomaly_threshold"), Name("anomaly_threshold"),
					Step("0.5"), Min("0.5"), Max("100"),
					Value(strconv.FormatFloat(params.AnomalyThreshold, 'f', -1, 64))),
			),
			Div(
				Label(For("grouping"), Text("Peer grouping")),
				Select(ID("grouping"), Name("grouping"),
					groupingOption(domain.GroupByUnit, "Department", params.Grouping),
					groupingOption(domain.GroupByUnitAndTitle, "Department + Title", params.Grouping),
				),
			),
			Div(
				Class("params-submit"),
				Button(Type("submit"), Class("btn btn-primary"), Text("Recompute")),
			),
		),
	)
}

func groupingOption(mode domain.GroupingMode, label string, selected domain.GroupingMode) Node {
	opt := []Node{Value(string(mode)), Text(label)}
	if mode == selected {
		opt = append(opt, Selected())
	}
	return Option(opt...)
}

func emptyCard(message string) Node {
	return Div(Class("card"), P(Class("muted"), Text(message)))
}

// downloadCard links to the CSV download for the same parameters as the page.
func downloadCard(path string, params domain.ReviewParams) Node {
	href := fmt.Sprintf("%s?baseline_threshold=%s&anomaly_threshold=%s&grouping=%s",
		path,
		strconv.FormatFloat(params.BaselineThreshold, 'f', -1, 64),
		strconv.FormatFloat(params.AnomalyThreshold, 'f', -1, 64),
		string(params.Grouping))
	return Div(Class("card"), A(Href(href), Text("Download as CSV")))
}

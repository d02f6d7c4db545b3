package server

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/jacksonlee411/medcover-console/internal/console"
	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"
)

// Rendering turns console screens and view descriptors into HTML fragments. Every
// dynamic value passes through esc; nothing from the backend is written raw.

func esc(s string) string { return html.EscapeString(s) }

func attr(name string, value string) string {
	return " " + name + `="` + esc(value) + `"`
}

func sectionPath(s types.Section) string { return "/app/" + string(s) }

func recordPath(kind types.Kind, id string) string {
	return "/app/" + string(kind) + "/" + url.PathEscape(id)
}

func oobAttr(oob bool) string {
	if oob {
		return ` hx-swap-oob="true"`
	}
	return ""
}

// renderPage is the full document body: navigation, content, modal and notifications.
func renderPage(screen console.Screen, modal console.Modal, notes []console.ActiveNotification) string {
	var b strings.Builder
	b.WriteString(`<header class="topbar"><h1>Medical Coverage Console</h1>`)
	b.WriteString(`<span id="loading" class="htmx-indicator">Loading...</span></header>`)
	b.WriteString(`<div class="layout">`)
	b.WriteString(renderNav(screen.Nav, false))
	b.WriteString(renderContent(screen, false))
	b.WriteString(`</div>`)
	b.WriteString(`<div id="modal">` + renderModal(modal) + `</div>`)
	b.WriteString(renderNotifications(notes, false))
	return b.String()
}

func renderNav(items []console.NavItem, oob bool) string {
	var b strings.Builder
	b.WriteString(`<nav id="nav"` + oobAttr(oob) + `><ul>`)
	for _, it := range items {
		if it.Active {
			b.WriteString(`<li class="active">`)
		} else {
			b.WriteString(`<li>`)
		}
		p := sectionPath(it.Section)
		b.WriteString(`<a` + attr("href", p) + attr("hx-get", p) + ` hx-target="#content" hx-swap="outerHTML" hx-push-url="true" hx-sync="#nav:replace" hx-indicator="#loading">`)
		b.WriteString(esc(it.Title))
		b.WriteString(`</a></li>`)
	}
	b.WriteString(`</ul></nav>`)
	return b.String()
}

// renderContent is one section: header, placeholder banner, filters and results.
func renderContent(s console.Screen, oob bool) string {
	var b strings.Builder
	b.WriteString(`<main id="content"` + oobAttr(oob) + attr("data-section", string(s.Section)) + `>`)
	b.WriteString(`<div class="screen-header"><h2>` + esc(s.Section.Title()) + `</h2>`)
	if kind, ok := s.Section.Kind(); ok {
		b.WriteString(renderHeaderActions(kind))
	}
	b.WriteString(`</div>`)
	if s.Placeholder {
		b.WriteString(`<p class="placeholder-banner">Backend unavailable, showing sample data.</p>`)
	}
	if kind, ok := s.Section.Kind(); ok {
		b.WriteString(renderFilters(kind, s))
	}
	b.WriteString(`<div id="results">` + renderResults(s) + `</div>`)
	b.WriteString(`</main>`)
	return b.String()
}

func renderHeaderActions(kind types.Kind) string {
	switch kind {
	case types.KindBilling:
		return `<button class="btn" hx-get="/app/reports/billing" hx-target="#modal">Generate Report</button>`
	default:
		return `<button class="btn btn-primary"` + attr("hx-get", "/app/"+string(kind)+"/new") + ` hx-target="#modal">Add ` + esc(kind.Singular()) + `</button>`
	}
}

func renderFilters(kind types.Kind, s console.Screen) string {
	var b strings.Builder
	p := sectionPath(s.Section) + "/search"
	b.WriteString(`<form class="filters"` + attr("action", p) + ` method="get"` + attr("hx-get", p))
	b.WriteString(` hx-trigger="input changed, change, submit" hx-target="#results" hx-sync="this:replace">`)
	for _, f := range viewmodels.FilterFields(kind, s.Criteria) {
		b.WriteString(renderField(f))
	}
	b.WriteString(`</form>`)
	return b.String()
}

// renderResults is the part of a screen that a search replaces.
func renderResults(s console.Screen) string {
	var b strings.Builder
	if s.Dashboard != nil {
		b.WriteString(renderDashboard(*s.Dashboard))
	}
	if s.Summary != nil {
		b.WriteString(renderBillingSummary(*s.Summary))
	}
	if s.Table != nil {
		b.WriteString(renderTable(*s.Table))
	}
	if s.Section == types.SectionPolicies {
		b.WriteString(renderPolicyCards(s.Policies))
	}
	return b.String()
}

func renderSearchError(msg string) string {
	return `<p class="field-error">` + esc(msg) + `</p>`
}

func renderDashboard(v viewmodels.DashboardView) string {
	var b strings.Builder
	b.WriteString(`<div class="stats">`)
	for _, st := range v.Stats {
		b.WriteString(`<div class="stat"><span class="stat-value">` + esc(st.Value) + `</span>`)
		b.WriteString(`<span class="stat-label">` + esc(st.Label) + `</span></div>`)
	}
	b.WriteString(`</div>`)
	b.WriteString(renderChart(v.ServiceUsage))
	b.WriteString(renderChart(v.CoverageDistribution))
	return b.String()
}

// renderChart draws a series as bars scaled to its maximum.
func renderChart(s viewmodels.Series) string {
	var b strings.Builder
	b.WriteString(`<figure class="chart"><figcaption>` + esc(s.Label) + `</figcaption><div class="bars">`)
	maxValue := s.Max()
	for _, p := range s.Points {
		pct := strconv.FormatFloat(p.Value/maxValue*100, 'f', 0, 64)
		value := strconv.FormatFloat(p.Value, 'f', -1, 64)
		b.WriteString(`<div class="bar"` + attr("title", p.Label+": "+value) + `>`)
		b.WriteString(`<span class="bar-fill" style="height:` + pct + `%"></span>`)
		b.WriteString(`<span class="bar-label">` + esc(p.Label) + `</span></div>`)
	}
	b.WriteString(`</div></figure>`)
	return b.String()
}

func renderTable(t viewmodels.Table) string {
	var b strings.Builder
	b.WriteString(`<table class="records"` + attr("data-kind", string(t.Kind)) + `><thead><tr>`)
	for _, c := range t.Columns {
		b.WriteString(`<th>` + esc(c) + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	if t.Empty() {
		b.WriteString(`<tr><td class="empty"` + attr("colspan", strconv.Itoa(len(t.Columns))) + `>No records found</td></tr>`)
	}
	for _, row := range t.Rows {
		b.WriteString(`<tr` + attr("data-id", row.ID) + `>`)
		for _, cell := range row.Cells {
			b.WriteString(`<td>` + renderCell(cell) + `</td>`)
		}
		b.WriteString(`<td class="actions">`)
		for _, a := range row.Actions {
			b.WriteString(renderAction(t.Kind, a))
		}
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderCell(c viewmodels.Cell) string {
	if c.Badge == "" {
		return esc(c.Text)
	}
	return `<span` + attr("class", "badge "+c.Badge) + `>` + esc(c.Text) + `</span>`
}

func renderAction(kind types.Kind, a viewmodels.Action) string {
	p := recordPath(kind, a.RecordID)
	switch a.Verb {
	case viewmodels.VerbEdit:
		p += "/edit"
	case viewmodels.VerbDelete:
		p += "/delete"
	}
	return `<button` + attr("class", "btn btn-"+string(a.Verb)) + attr("hx-get", p) + ` hx-target="#modal">` + esc(a.Label) + `</button>`
}

func renderBillingSummary(s viewmodels.BillingSummary) string {
	var b strings.Builder
	b.WriteString(`<div class="billing-summary">`)
	b.WriteString(`<div class="stat"><span class="stat-value">` + strconv.Itoa(s.Pending) + `</span><span class="stat-label">Pending Claims</span></div>`)
	b.WriteString(`<div class="stat"><span class="stat-value">` + strconv.Itoa(s.Processed) + `</span><span class="stat-label">Processed Claims</span></div>`)
	b.WriteString(`<div class="stat"><span class="stat-value">` + esc(s.TotalText()) + `</span><span class="stat-label">Total Amount</span></div>`)
	b.WriteString(`</div>`)
	return b.String()
}

func renderPolicyCards(cards []viewmodels.PolicyCard) string {
	if len(cards) == 0 {
		return `<p class="empty">No policies found</p>`
	}
	var b strings.Builder
	b.WriteString(`<div class="policy-grid">`)
	for _, c := range cards {
		b.WriteString(`<article class="policy-card"` + attr("data-id", c.ID) + `>`)
		b.WriteString(`<h3>` + esc(c.Name) + `</h3><dl>`)
		b.WriteString(`<dt>Annual Limit</dt><dd>` + esc(c.AnnualLimit) + `</dd>`)
		b.WriteString(`<dt>Deductible</dt><dd>` + esc(c.Deductible) + `</dd>`)
		b.WriteString(`<dt>Coverage</dt><dd>` + esc(c.Coverage) + `</dd>`)
		b.WriteString(`<dt>Status</dt><dd>` + renderCell(c.Status) + `</dd>`)
		b.WriteString(`</dl></article>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// renderModal is the inner markup of #modal; a closed modal renders as nothing.
func renderModal(m console.Modal) string {
	if !m.Open {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="modal-backdrop"><div class="modal" role="dialog" aria-modal="true">`)
	b.WriteString(`<header><h3>` + esc(m.Title) + `</h3>`)
	b.WriteString(`<button class="close" hx-post="/app/modal/close" hx-target="#modal" aria-label="Close">&times;</button></header>`)
	switch {
	case m.Form != nil:
		b.WriteString(renderForm(*m.Form))
	case m.Detail != nil:
		b.WriteString(renderDetail(*m.Detail))
	case m.Confirm != nil:
		b.WriteString(renderConfirm(*m.Confirm))
	case m.Report != nil:
		b.WriteString(renderReport(*m.Report))
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

func formAction(f viewmodels.Form) string {
	if f.Kind == "" {
		return "/app/reports/billing"
	}
	if f.Editing() {
		return recordPath(f.Kind, f.RecordID)
	}
	return "/app/" + string(f.Kind)
}

func renderForm(f viewmodels.Form) string {
	var b strings.Builder
	action := formAction(f)
	b.WriteString(`<form method="post"` + attr("action", action) + attr("hx-post", action) + ` hx-target="#modal" hx-indicator="#loading">`)
	if f.Error != "" {
		b.WriteString(`<p class="form-error">` + esc(f.Error) + `</p>`)
	}
	for _, fd := range f.Fields {
		b.WriteString(renderField(fd))
	}
	b.WriteString(`<div class="form-actions">`)
	b.WriteString(`<button type="button" class="btn" hx-post="/app/modal/close" hx-target="#modal">Cancel</button>`)
	b.WriteString(`<button type="submit" class="btn btn-primary">` + esc(f.Submit) + `</button>`)
	b.WriteString(`</div></form>`)
	return b.String()
}

func renderField(f viewmodels.Field) string {
	var b strings.Builder
	id := "f-" + f.Name
	b.WriteString(`<div class="field"><label` + attr("for", id) + `>` + esc(f.Label) + `</label>`)
	switch f.Type {
	case viewmodels.FieldSelect:
		b.WriteString(`<select` + attr("id", id) + attr("name", f.Name))
		if f.Required {
			b.WriteString(` required`)
		}
		if f.ReadOnly {
			b.WriteString(` disabled`)
		}
		b.WriteString(`>`)
		if f.Prompt != "" {
			b.WriteString(`<option value="">` + esc(f.Prompt) + `</option>`)
		}
		for _, o := range f.Options {
			b.WriteString(`<option` + attr("value", o.Value))
			if o.Selected {
				b.WriteString(` selected`)
			}
			b.WriteString(`>` + esc(o.Label) + `</option>`)
		}
		b.WriteString(`</select>`)
	default:
		b.WriteString(`<input` + attr("id", id) + attr("type", string(f.Type)) + attr("name", f.Name) + attr("value", f.Value))
		if f.Prompt != "" {
			b.WriteString(attr("placeholder", f.Prompt))
		}
		if f.Min != "" {
			b.WriteString(attr("min", f.Min))
		}
		if f.Max != "" {
			b.WriteString(attr("max", f.Max))
		}
		if f.Step != "" {
			b.WriteString(attr("step", f.Step))
		}
		if f.Required {
			b.WriteString(` required`)
		}
		if f.ReadOnly {
			b.WriteString(` readonly`)
		}
		b.WriteString(`>`)
	}
	if f.Error != "" {
		b.WriteString(`<span class="field-error">` + esc(f.Error) + `</span>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderDetail(d viewmodels.Detail) string {
	var b strings.Builder
	b.WriteString(`<h4>` + esc(d.Heading) + `</h4><dl class="detail">`)
	for _, it := range d.Items {
		b.WriteString(`<dt>` + esc(it.Label) + `</dt><dd>` + esc(it.Value) + `</dd>`)
	}
	b.WriteString(`</dl><div class="form-actions">`)
	b.WriteString(`<button class="btn" hx-post="/app/modal/close" hx-target="#modal">Close</button></div>`)
	return b.String()
}

// renderConfirm offers both answers as posts; only confirm=yes deletes.
func renderConfirm(c viewmodels.Confirmation) string {
	p := recordPath(c.Kind, c.RecordID) + "/delete"
	var b strings.Builder
	b.WriteString(`<p>` + esc(c.Message) + `</p>`)
	b.WriteString(`<form method="post"` + attr("action", p) + attr("hx-post", p) + ` hx-target="#modal" class="form-actions">`)
	b.WriteString(`<button type="submit" name="confirm" value="no" class="btn">Cancel</button>`)
	b.WriteString(`<button type="submit" name="confirm" value="yes" class="btn btn-danger">Delete</button>`)
	b.WriteString(`</form>`)
	return b.String()
}

func renderReport(r viewmodels.ReportView) string {
	var b strings.Builder
	b.WriteString(`<dl class="detail"><dt>Period</dt><dd>` + esc(r.Period) + `</dd>`)
	if r.Generated != "" {
		b.WriteString(`<dt>Generated</dt><dd>` + esc(r.Generated) + `</dd>`)
	}
	b.WriteString(`</dl><h4>Summary</h4><dl class="detail">`)
	for _, it := range r.Summary {
		b.WriteString(`<dt>` + esc(it.Label) + `</dt><dd>` + esc(it.Value) + `</dd>`)
	}
	b.WriteString(`</dl><p>` + strconv.Itoa(r.RecordCount) + ` detailed records</p>`)
	b.WriteString(`<div class="form-actions"><a class="btn btn-primary" href="/app/reports/billing.csv" download>Export CSV</a>`)
	b.WriteString(`<button class="btn" hx-post="/app/modal/close" hx-target="#modal">Close</button></div>`)
	return b.String()
}

func renderNotifications(notes []console.ActiveNotification, oob bool) string {
	var b strings.Builder
	b.WriteString(`<div id="notifications" class="notifications"` + oobAttr(oob))
	b.WriteString(` hx-get="/app/notifications" hx-trigger="every 1s" hx-swap="outerHTML">`)
	for _, n := range notes {
		b.WriteString(`<div` + attr("class", "notification notification-"+string(n.Level)+" "+string(n.Phase)) + attr("data-id", n.ID) + ` role="status">`)
		b.WriteString(esc(n.Message) + `</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

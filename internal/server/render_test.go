package server

import (
	"strings"
	"testing"

	"github.com/jacksonlee411/medcover-console/internal/console"
	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"
)

func TestRenderTable_EscapesBackendText(t *testing.T) {
	tbl := viewmodels.EmployeesTable([]types.Employee{{
		ID: `x"1`, EmployeeID: "EMP<1>", FirstName: "<script>alert(1)</script>", LastName: "O'Hara", Status: types.StatusActive,
	}})
	out := renderTable(tbl)
	if strings.Contains(out, "<script>") {
		t.Fatalf("unescaped markup: %s", out)
	}
	for _, want := range []string{"&lt;script&gt;", "O&#39;Hara", "EMP&lt;1&gt;", `data-id="x&#34;1"`, `hx-get="/app/employees/x%221/edit"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	out := renderTable(viewmodels.BillingTable(nil))
	if !strings.Contains(out, "No records found") || !strings.Contains(out, `colspan="`) {
		t.Fatalf("out=%s", out)
	}
}

func TestRenderModal_Closed(t *testing.T) {
	if out := renderModal(console.Modal{}); out != "" {
		t.Fatalf("out=%q", out)
	}
}

func TestRenderForm_Actions(t *testing.T) {
	create := renderForm(viewmodels.EmployeeForm(nil))
	if !strings.Contains(create, `hx-post="/app/employees"`) {
		t.Fatalf("create=%s", create)
	}
	edit := renderForm(viewmodels.EmployeeForm(&types.Employee{ID: "e1", EmployeeID: "EMP1"}))
	if !strings.Contains(edit, `hx-post="/app/employees/e1"`) || !strings.Contains(edit, "readonly") {
		t.Fatalf("edit=%s", edit)
	}
	report := renderForm(viewmodels.ReportForm("2024-01-01", "2024-01-31"))
	if !strings.Contains(report, `hx-post="/app/reports/billing"`) || !strings.Contains(report, `type="date"`) {
		t.Fatalf("report=%s", report)
	}
}

func TestRenderConfirm_OnlyYesDeletes(t *testing.T) {
	out := renderConfirm(viewmodels.DeleteConfirmation(types.KindServices, "s1"))
	for _, want := range []string{`hx-post="/app/services/s1/delete"`, `name="confirm" value="no"`, `name="confirm" value="yes"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}

func TestRenderChart_ScalesToMax(t *testing.T) {
	out := renderChart(viewmodels.Series{Label: "Usage", Points: []viewmodels.Point{{Label: "Jan", Value: 50}, {Label: "Feb", Value: 100}}})
	if !strings.Contains(out, "height:50%") || !strings.Contains(out, "height:100%") {
		t.Fatalf("out=%s", out)
	}
}

func TestRenderFilters_PerKind(t *testing.T) {
	screen := console.Screen{Section: types.SectionServices}
	out := renderFilters(types.KindServices, screen)
	for _, want := range []string{`name="term"`, `name="serviceType"`, `name="date"`, `name="expr"`, `hx-get="/app/services/search"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
	if strings.Contains(out, `name="relationship"`) {
		t.Fatal("services have no relationship filter")
	}
}

func TestRenderNav_ReplacesInFlightNavigation(t *testing.T) {
	out := renderNav([]console.NavItem{
		{Section: types.SectionEmployees, Title: "Employees"},
		{Section: types.SectionBilling, Title: "Billing", Active: true},
	}, false)
	if strings.Count(out, `hx-sync="#nav:replace"`) != 2 {
		t.Fatalf("out=%s", out)
	}
	if !strings.Contains(out, `<li class="active"><a href="/app/billing"`) {
		t.Fatalf("out=%s", out)
	}
}

// Package viewmodels projects coverage records into view descriptors. Descriptors are
// plain data; internal/server turns them into HTML.
package viewmodels

import (
	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

type Verb string

const (
	VerbView   Verb = "view"
	VerbEdit   Verb = "edit"
	VerbDelete Verb = "delete"
)

type Action struct {
	Verb     Verb
	Label    string
	RecordID string
}

type Cell struct {
	Text  string
	Badge string
}

type Row struct {
	ID      string
	Cells   []Cell
	Actions []Action
}

type Table struct {
	Kind    types.Kind
	Columns []string
	Rows    []Row
}

func (t Table) Empty() bool { return len(t.Rows) == 0 }

func text(s string) Cell { return Cell{Text: s} }

func badge(status string) Cell { return Cell{Text: status, Badge: statusBadge(status)} }

func actions(id string, verbs ...Verb) []Action {
	out := make([]Action, 0, len(verbs))
	for _, v := range verbs {
		out = append(out, Action{Verb: v, Label: verbLabel(v), RecordID: id})
	}
	return out
}

func verbLabel(v Verb) string {
	switch v {
	case VerbView:
		return "View"
	case VerbEdit:
		return "Edit"
	case VerbDelete:
		return "Delete"
	default:
		return string(v)
	}
}

var crud = []Verb{VerbView, VerbEdit, VerbDelete}

func EmployeesTable(records []types.Employee) Table {
	t := Table{
		Kind:    types.KindEmployees,
		Columns: []string{"Employee ID", "Name", "Department", "Position", "Coverage Plan", "Status", "Actions"},
		Rows:    make([]Row, 0, len(records)),
	}
	for _, e := range records {
		t.Rows = append(t.Rows, Row{
			ID: e.ID,
			Cells: []Cell{
				text(e.EmployeeID),
				text(e.FullName()),
				text(e.Department),
				text(e.Position),
				text(string(e.CoveragePlan)),
				badge(string(e.Status)),
			},
			Actions: actions(e.ID, crud...),
		})
	}
	return t
}

func BeneficiariesTable(records []types.Beneficiary) Table {
	t := Table{
		Kind:    types.KindBeneficiaries,
		Columns: []string{"Beneficiary ID", "Name", "Relationship", "Employee", "Coverage", "Status", "Actions"},
		Rows:    make([]Row, 0, len(records)),
	}
	for _, b := range records {
		t.Rows = append(t.Rows, Row{
			ID: b.ID,
			Cells: []Cell{
				text(b.BeneficiaryID),
				text(b.FullName()),
				text(string(b.Relationship)),
				text(orNA(b.EmployeeName)),
				text(string(b.Coverage)),
				badge(string(b.Status)),
			},
			Actions: actions(b.ID, crud...),
		})
	}
	return t
}

func ServicesTable(records []types.Service) Table {
	t := Table{
		Kind:    types.KindServices,
		Columns: []string{"Service ID", "Date", "Patient", "Service Type", "Provider", "Cost", "Status", "Actions"},
		Rows:    make([]Row, 0, len(records)),
	}
	for _, s := range records {
		t.Rows = append(t.Rows, Row{
			ID: s.ID,
			Cells: []Cell{
				text(s.ServiceID),
				text(FormatDate(s.Date)),
				text(s.PatientName),
				text(string(s.ServiceType)),
				text(s.Provider),
				text(FormatMoney(s.Cost)),
				badge(string(s.Status)),
			},
			Actions: actions(s.ID, crud...),
		})
	}
	return t
}

// BillingTable has no delete action: claims are only viewed or re-rated.
func BillingTable(records []types.Claim) Table {
	t := Table{
		Kind:    types.KindBilling,
		Columns: []string{"Claim ID", "Service Date", "Patient", "Service", "Amount", "Coverage", "Status", "Actions"},
		Rows:    make([]Row, 0, len(records)),
	}
	for _, c := range records {
		t.Rows = append(t.Rows, Row{
			ID: c.ID,
			Cells: []Cell{
				text(c.ClaimID),
				text(FormatDate(c.ServiceDate)),
				text(c.PatientName),
				text(c.Service),
				text(FormatMoney(c.Amount)),
				text(FormatPercent(c.Coverage)),
				badge(string(c.Status)),
			},
			Actions: actions(c.ID, VerbView, VerbEdit),
		})
	}
	return t
}

type BillingSummary struct {
	Pending   int
	Processed int
	Total     decimal.Decimal
}

func (s BillingSummary) TotalText() string { return FormatMoney(s.Total) }

// Summarize counts claims by status and sums every amount, whatever its status.
func Summarize(records []types.Claim) BillingSummary {
	var s BillingSummary
	for _, c := range records {
		switch c.Status {
		case types.ClaimPending:
			s.Pending++
		case types.ClaimProcessed:
			s.Processed++
		}
		s.Total = s.Total.Add(c.Amount)
	}
	return s
}

// PolicyCard is the read-only policy tile; policies have no row actions.
type PolicyCard struct {
	ID          string
	Name        string
	AnnualLimit string
	Deductible  string
	Coverage    string
	Status      Cell
}

func PolicyCards(records []types.Policy) []PolicyCard {
	out := make([]PolicyCard, 0, len(records))
	for _, p := range records {
		out = append(out, PolicyCard{
			ID:          p.ID,
			Name:        p.PolicyName,
			AnnualLimit: FormatMoney(p.AnnualLimit),
			Deductible:  FormatMoney(p.Deductible),
			Coverage:    FormatPercent(p.Coverage),
			Status:      badge(string(p.Status)),
		})
	}
	return out
}
